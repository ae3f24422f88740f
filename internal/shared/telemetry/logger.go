package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

var minLevel atomic.Int32

// SetLevel sets the minimum level emitted. Call once at startup before
// serving; lines below the threshold are dropped.
func SetLevel(level string) {
	minLevel.Store(rank(level))
}

func rank(level string) int32 {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		return 2
	case "warn", "warning":
		return 1
	default:
		return 0
	}
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write("info", msg, fields)
}

// Warn writes a warn-level log line. Used on degradation paths, e.g. when the
// LLM branch of a hybrid parse fails and the request continues local-only.
func Warn(msg string, fields map[string]any) {
	write("warn", msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write("error", msg, fields)
}

func write(level, msg string, fields map[string]any) {
	if rank(level) < minLevel.Load() {
		return
	}
	entry := make(map[string]any, len(fields)+3)
	entry["ts"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["msg"] = msg
	for k, v := range fields {
		entry[k] = v
	}
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stdout, `{"ts":"%s","level":"error","msg":"logger marshal failed","err":%q}`+"\n", time.Now().UTC().Format(time.RFC3339), err.Error())
		return
	}
	fmt.Fprintln(os.Stdout, string(data))
}
