package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/oarkflow/log"
)

var logLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// newLogger returns nil when logging is off.
func newLogger(level string, w io.Writer) (*log.Logger, error) {
	if level == "" || level == "off" {
		return nil, nil
	}
	if _, ok := logLevels[level]; !ok {
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	if w == nil {
		w = os.Stderr
	}
	return &log.Logger{
		Level:  log.ParseLevel(level),
		Writer: &log.IOWriter{Writer: w},
	}, nil
}

// diagnosticPrinter writes each reported error on its own line.
type diagnosticPrinter struct {
	w     io.Writer
	color bool
}

func newDiagnosticPrinter(w io.Writer, color bool) *diagnosticPrinter {
	return &diagnosticPrinter{w: w, color: color}
}

func (p *diagnosticPrinter) Report(err error) {
	text := err.Error()
	if p.color {
		text = diagnosticStyle.Render(text)
	}
	fmt.Fprintln(p.w, text)
}

var diagnosticStyle = lipgloss.NewStyle().Foreground(colorError)
