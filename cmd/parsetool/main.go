// Command parsetool runs the resume parsing pipeline against a local
// file, for exercising extraction and parse prompts without the HTTP
// server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"darzi-backend/internal/extract"
	"darzi-backend/internal/extract/vision"
	"darzi-backend/internal/hybrid"
	"darzi-backend/internal/llm"
	"darzi-backend/internal/llm/gemini"
	"darzi-backend/internal/llm/openai"
	"darzi-backend/internal/parser"
	"darzi-backend/internal/shared/config"
	"darzi-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.SetLevel(cfg.LogLevel)

	resumePath := flag.String("resume", "", "Path to resume file (pdf, image or text)")
	mode := flag.String("mode", "local", "Parse mode: local, llm or hybrid")
	provider := flag.String("provider", "", "Preferred LLM provider name (optional)")
	showPrompt := flag.Bool("show-prompt", false, "Print the LLM parse prompt instead of parsing")
	outPath := flag.String("out", "", "Path to write JSON output (optional)")
	flag.Parse()

	if strings.TrimSpace(*resumePath) == "" {
		exitErr("resume path is required")
	}

	data, err := os.ReadFile(*resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}
	fileName := filepath.Base(*resumePath)

	extractSvc := extract.NewService(vision.New(cfg.VisionAPIKey()))
	text, err := extractText(extractSvc, fileName, data)
	if err != nil {
		exitErr(fmt.Sprintf("extract resume text: %v", err))
	}

	if *showPrompt {
		fmt.Println(llm.ParsePrompt(text))
		return
	}

	manager := llm.NewManager(cfg.LLMTimeout,
		gemini.New(cfg.LLMAPIKey(), cfg.LLMModel),
		openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel),
	)
	svc := hybrid.NewService(&parser.Service{}, manager)

	var payload any
	switch strings.ToLower(strings.TrimSpace(*mode)) {
	case "local":
		payload = svc.ParseLocalOnly(text)
	case "llm":
		parsed, err := svc.ParseLLMOnly(context.Background(), text, *provider)
		if err != nil {
			exitErr(fmt.Sprintf("llm parse: %v", err))
		}
		payload = parsed
	case "hybrid":
		payload = svc.Parse(context.Background(), text, hybrid.ParseOptions{
			UseLLM:            true,
			PreferredProvider: *provider,
		})
	default:
		exitErr(fmt.Sprintf("unsupported mode: %s", *mode))
	}

	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	if len(pretty) == 0 || pretty[len(pretty)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
}

// extractText uses the extractor's normal routing, falling back to the
// local PDF text layer when no Vision key is configured.
func extractText(svc *extract.Service, fileName string, data []byte) (string, error) {
	text, err := svc.ExtractFile(context.Background(), fileName, data)
	if errors.Is(err, extract.ErrVisionKeyMissing) && strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return svc.PDFText(data)
	}
	return text, err
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
