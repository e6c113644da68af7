package quantity

import (
	"strings"
)

// Style controls how Print renders the decimal mark and digit groups.
// The zero Style prints a period and no grouping.
type Style struct {
	DecimalMark    string
	GroupSeparator string
}

// Print renders q with at most precision fractional digits, of which the
// first zeros are always written and the rest only when non-zero. The value
// is first rounded half-to-even to precision when its own precision tag is
// wider.
func (q Quantity) Print(precision, zeros int, style Style) string {
	if precision < 0 {
		precision = 0
	}
	mandatory := min(max(zeros, 0), precision)

	v := q.value
	if q.prec > precision {
		v = v.RoundBank(int32(precision))
	}
	v = v.Round(int32(precision))

	fixed := v.Abs().StringFixed(int32(precision))
	intPart, frac, _ := strings.Cut(fixed, ".")
	for len(frac) > mandatory && frac[len(frac)-1] == '0' {
		frac = frac[:len(frac)-1]
	}

	mark := style.DecimalMark
	if mark == "" {
		mark = "."
	}

	var b strings.Builder
	if v.Sign() < 0 {
		b.WriteByte('-')
	}
	if style.GroupSeparator != "" {
		writeGrouped(&b, intPart, style.GroupSeparator)
	} else {
		b.WriteString(intPart)
	}
	if frac != "" {
		b.WriteString(mark)
		b.WriteString(frac)
	}
	return b.String()
}

func writeGrouped(b *strings.Builder, digits, sep string) {
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
}
