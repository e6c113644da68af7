// Package output provides styling helpers for terminal output.
package output

import (
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Styles colours CLI output. Colours are dropped when the writer is not a
// terminal.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates a new Styles instance for the given writer.
func NewStyles(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w),
	}
}

func (s *Styles) color(text, code string) termenv.Style {
	return s.output.String(text).Foreground(s.output.Color(code))
}

// Success returns a styled success string (green + bold).
func (s *Styles) Success(text string) string {
	return s.color(text, "2").Bold().String()
}

// Error returns a styled error string (red + bold).
func (s *Styles) Error(text string) string {
	return s.color(text, "1").Bold().String()
}

// FilePath returns a styled file path (cyan).
func (s *Styles) FilePath(text string) string {
	return s.color(text, "6").String()
}

// Commodity returns a styled commodity symbol (yellow).
func (s *Styles) Commodity(text string) string {
	return s.color(text, "3").String()
}

// Amount styles a printed amount: magenta, or red when it is negative.
func (s *Styles) Amount(text string) string {
	if strings.HasPrefix(strings.TrimSpace(text), "-") || strings.Contains(text, " -") {
		return s.color(text, "1").String()
	}
	return s.color(text, "5").String()
}

func (s *Styles) Keyword(text string) string {
	return s.output.String(text).Bold().String()
}

// Dim returns dimmed text (for secondary information).
func (s *Styles) Dim(text string) string {
	return s.output.String(text).Faint().String()
}

// Warning returns a styled warning (yellow + bold).
func (s *Styles) Warning(text string) string {
	return s.color(text, "3").Bold().String()
}

// Timing dims fast timings and turns slow ones red.
func (s *Styles) Timing(text string, slow bool) string {
	if slow {
		return s.color(text, "1").String()
	}
	return s.Dim(text)
}

// Output returns the underlying termenv Output for advanced usage.
func (s *Styles) Output() *termenv.Output {
	return s.output
}
