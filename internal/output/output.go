// Package output handles installer progress messages and report formatting.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format represents an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format string into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// Writer handles output in the specified format.
type Writer struct {
	format Format
	w      io.Writer
}

// NewWriter creates a new output writer.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{format: format, w: w}
}

// Write outputs the given value in the configured format.
func (w *Writer) Write(v interface{}) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w.w)
		enc.SetIndent(2)
		return enc.Encode(v)
	default:
		if s, ok := v.(fmt.Stringer); ok {
			_, err := fmt.Fprintln(w.w, s.String())
			return err
		}
		_, err := fmt.Fprintf(w.w, "%+v\n", v)
		return err
	}
}

// Console prints installer progress messages.
type Console struct {
	w io.Writer
}

// NewConsole creates a console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Step announces the start of a pipeline stage.
func (c *Console) Step(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.w, "=> "+format+"\n", args...)
}

// Info prints a plain informational line.
func (c *Console) Info(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.w, format+"\n", args...)
}

// Warn prints a visible warning, used for degraded but non-fatal paths.
func (c *Console) Warn(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.w, "WARNING: "+format+"\n", args...)
}

// Success prints a completed-stage line.
func (c *Console) Success(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.w, "✓ "+format+"\n", args...)
}
