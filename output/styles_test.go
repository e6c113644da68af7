package output

import (
	"bytes"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestStylesPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)
	assert.True(t, styles.Output() != nil)

	tests := []struct {
		name  string
		style func(string) string
		text  string
	}{
		{"success", styles.Success, "loaded 12 prices"},
		{"error", styles.Error, "2 errors"},
		{"file", styles.FilePath, "prices.db"},
		{"commodity", styles.Commodity, "EUR"},
		{"amount", styles.Amount, "$1,234.56"},
		{"negative amount", styles.Amount, "-10 EUR"},
		{"keyword", styles.Keyword, "Total"},
		{"dim", styles.Dim, "(3 includes)"},
		{"warning", styles.Warning, "stale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.style(tt.text), tt.text)
		})
	}
}

func TestTiming(t *testing.T) {
	styles := NewStyles(&bytes.Buffer{})
	assert.Contains(t, styles.Timing("15ms", false), "15ms")
	assert.Contains(t, styles.Timing("1.20s", true), "1.20s")
}
