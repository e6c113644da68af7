// Package errors renders loader and ledger errors for people and programs.
// TextFormatter writes plain messages with source context, in the style of
// a compiler; JSONFormatter writes structured records.
//
// The error types themselves stay in the loader and ledger packages; this
// package only decides how they are presented.
package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/robinvdvleuten/commodities/ledger"
	"github.com/robinvdvleuten/commodities/loader"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	Format(err error) string

	// FormatAll formats multiple errors. Aggregates such as
	// loader.LoadErrors are flattened first.
	FormatAll(errs []error) string
}

// positioned is implemented by errors that point into a source file.
type positioned interface {
	error
	GetPosition() loader.Position
}

// Flatten expands joined errors and loader.LoadErrors into their parts.
func Flatten(errs ...error) []error {
	var out []error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if multi, ok := err.(interface{ Unwrap() []error }); ok {
			out = append(out, Flatten(multi.Unwrap()...)...)
			continue
		}
		out = append(out, err)
	}
	return out
}

// TextFormatter formats errors for terminal output.
type TextFormatter struct {
	sources map[string][]byte
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource provides the content of filename so positioned errors in it
// are shown with the surrounding lines.
func WithSource(filename string, source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sources[filename] = source
	}
}

func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{sources: make(map[string][]byte)}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

func (tf *TextFormatter) Format(err error) string {
	switch all := Flatten(err); len(all) {
	case 0:
		return ""
	case 1:
		err = all[0]
	default:
		return tf.FormatAll(all)
	}

	var perr positioned
	if stderrors.As(err, &perr) {
		if source, ok := tf.sources[perr.GetPosition().Filename]; ok {
			return formatWithSourceContext(perr.GetPosition(), err.Error(), source)
		}
	}
	return err.Error()
}

// FormatAll separates errors with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	errs = Flatten(errs...)

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(tf.Format(err))
		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}
	return buf.String()
}

// formatWithSourceContext writes message followed by the two lines before
// the error line, the line itself with a caret under the column, and one
// line after.
func formatWithSourceContext(pos loader.Position, message string, source []byte) string {
	var buf bytes.Buffer
	buf.WriteString(message)
	buf.WriteString("\n\n")

	lines := strings.Split(strings.TrimRight(string(source), "\n"), "\n")
	start := max(pos.Line-3, 0)
	end := min(pos.Line, len(lines)-1)

	for i := start; i <= end; i++ {
		buf.WriteString("   ")
		buf.WriteString(lines[i])
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString("^\n")
		}
	}
	return buf.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON is the JSON form of one error.
type ErrorJSON struct {
	Type     string         `json:"type"`
	Message  string         `json:"message"`
	Position *PositionJSON  `json:"position,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as an indented JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	errs = Flatten(errs...)
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	out := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		Details: make(map[string]any),
	}

	var perr positioned
	if stderrors.As(err, &perr) {
		pos := perr.GetPosition()
		out.Position = &PositionJSON{Filename: pos.Filename, Line: pos.Line, Column: pos.Column}
	}

	var (
		amountErr *ledger.AmountError
		graphErr  *ledger.GraphError
		parseErr  *ledger.ParseError
		argErr    *ledger.ArgumentError
	)
	switch {
	case stderrors.As(err, &amountErr):
		out.Details["kind"] = amountErr.GetKind().Error()
	case stderrors.As(err, &graphErr):
		out.Details["kind"] = ledger.ErrGraphInvariant.Error()
		out.Details["source"] = graphErr.Source
		out.Details["target"] = graphErr.Target
	case stderrors.As(err, &parseErr):
		out.Details["kind"] = ledger.ErrParse.Error()
		if input := parseErr.GetInput(); input != "" {
			out.Details["input"] = input
		}
	case stderrors.As(err, &argErr):
		out.Details["kind"] = ledger.ErrInvalidArgument.Error()
		out.Details["argument"] = argErr.Name
	}
	return out
}
