package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "drilldown-menu.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	// sink overrides the log file; tests point it at a buffer.
	sink io.Writer
)

// Error appends err to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	write(func(w io.Writer) error {
		l := log.New(w, "", log.LstdFlags)
		l.Println(err)
		return nil
	})
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}
	write(func(w io.Writer) error {
		return json.NewEncoder(w).Encode(entry)
	})
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetOutput redirects every entry to w until it is called with nil.
func SetOutput(w io.Writer) {
	mu.Lock()
	sink = w
	mu.Unlock()
}

func write(fn func(io.Writer) error) {
	mu.Lock()
	defer mu.Unlock()
	if sink != nil {
		if err := fn(sink); err != nil {
			fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		}
		return
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	if err := fn(f); err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
	}
}
