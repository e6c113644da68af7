package cli

import (
	stderrors "errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/commodities/errors"
	"github.com/robinvdvleuten/commodities/loader"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	filename string
	source   []byte
}

// NewErrorRenderer creates a renderer that shows context from source for
// errors positioned in filename. Errors in other files (includes) are
// rendered without context.
func NewErrorRenderer(filename string, source []byte) *ErrorRenderer {
	return &ErrorRenderer{filename: filename, source: source}
}

// Render formats a single error with styling and context.
func (r *ErrorRenderer) Render(err error) string {
	var perr *loader.ParseError
	if stderrors.As(err, &perr) && r.source != nil && perr.Pos.Filename == r.filename {
		return r.renderWithSourceContext(perr.Pos, err.Error(), r.source)
	}
	return errorStyle.Render(err.Error())
}

// RenderAll formats multiple errors, separating them with blank lines.
// Aggregates such as loader.LoadErrors are expanded.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	errs = errors.Flatten(errs...)
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(r.Render(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

func (r *ErrorRenderer) renderWithSourceContext(pos loader.Position, message string, sourceContent []byte) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")

	sourceLines := strings.Split(string(sourceContent), "\n")

	startLine := max(pos.Line-3, 0)
	endLine := min(pos.Line, len(sourceLines)-1)

	for i := startLine; i <= endLine; i++ {
		buf.WriteString("   ")
		buf.WriteString(errContextStyle.Render(sourceLines[i]))
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString(errCaretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}
