// Command templatecheck writes the predefined LaTeX resume templates to
// disk and verifies each one is a complete document.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"darzi-backend/internal/generator"
)

func main() {
	outDir := flag.String("out", "./out/templates", "output directory for template files")
	only := flag.String("template", "", "check a single template by name")
	flag.Parse()

	names := generator.TemplateNames()
	if strings.TrimSpace(*only) != "" {
		names = []string{strings.TrimSpace(*only)}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, name := range names {
		content, ok := generator.Template(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown template: %s\n", name)
			failed = true
			continue
		}

		path := filepath.Join(*outDir, name+".tex")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
			failed = true
			continue
		}

		v := generator.ValidateTemplate(content)
		if !v.IsValid {
			fmt.Fprintf(os.Stderr, "INVALID %s: documentclass=%t begin=%t end=%t\n",
				name, v.HasDocumentClass, v.HasBeginDocument, v.HasEndDocument)
			failed = true
			continue
		}
		fmt.Printf("OK %s -> %s (placeholders=%t)\n", name, path, v.HasPlaceholders)
	}

	if failed {
		os.Exit(1)
	}
}
