package quantity

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

func isQuantityChar(r rune) bool {
	return (r >= '0' && r <= '9') || r == '-' || r == ',' || r == '.'
}

// Scan reads the longest run of digits, '-', ',' and '.' after leading
// whitespace. Trailing characters that are not digits are handed back, so
// "10." yields "10" and leaves "." in the remainder.
func Scan(line string) (literal, rest string) {
	if line == "" {
		return "", ""
	}
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	end := strings.IndexFunc(trimmed, func(r rune) bool { return !isQuantityChar(r) })
	if end < 0 {
		end = len(trimmed)
	}
	s := trimmed[:end]
	lastDigit := strings.LastIndexAny(s, "0123456789")
	return s[:lastDigit+1], trimmed[lastDigit+1:]
}

// Parse consumes a signed numeric literal from the front of text. Commas are
// thousands separators and a period is the decimal mark; the precision is
// the number of digits after the mark. Commas must sit between groups of
// three digits, so "1,5" is rejected rather than read as 15. Empty or blank
// input yields an empty quantity and the unmodified text.
func Parse(text string) (Quantity, string, error) {
	if strings.TrimSpace(text) == "" {
		return Quantity{}, text, nil
	}
	lit, rest := Scan(text)
	if lit == "" {
		return Quantity{}, text, nil
	}

	neg := false
	body := lit
	if strings.HasPrefix(body, "-") {
		neg = true
		body = body[1:]
	}
	if strings.Count(body, ".") > 1 || strings.Contains(body, "-") || body == "" {
		return Quantity{}, text, fmt.Errorf("%w: %q", ErrSyntax, lit)
	}

	prec := 0
	whole := body
	if i := strings.IndexByte(body, '.'); i >= 0 {
		if strings.Contains(body[i:], ",") {
			return Quantity{}, text, fmt.Errorf("%w: %q", ErrSyntax, lit)
		}
		prec = len(body) - i - 1
		whole = body[:i]
	}
	if !validGrouping(whole) {
		return Quantity{}, text, fmt.Errorf("%w: %q", ErrSyntax, lit)
	}
	q, err := ParseDigits(strings.NewReplacer(",", "", ".", "").Replace(body), prec)
	if err != nil {
		return Quantity{}, text, fmt.Errorf("%w: %q", ErrSyntax, lit)
	}
	if neg {
		q = q.Negate()
	}
	return q, rest, nil
}

// validGrouping reports whether the commas in whole separate a leading group
// of one to three digits from groups of exactly three.
func validGrouping(whole string) bool {
	if !strings.Contains(whole, ",") {
		return true
	}
	groups := strings.Split(whole, ",")
	if n := len(groups[0]); n == 0 || n > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

// ParseDigits reads an unsigned or signed run of digits and scales it down
// by prec places: ParseDigits("12345", 2) is 123.45 at precision 2.
func ParseDigits(digits string, prec int) (Quantity, error) {
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return Quantity{}, err
	}
	if d.Exponent() != 0 {
		return Quantity{}, fmt.Errorf("%w: %q", ErrSyntax, digits)
	}
	return FromDecimal(d.Shift(int32(-prec)), prec), nil
}

// MustParse is like Parse but panics when text is not entirely a number.
func MustParse(text string) Quantity {
	q, rest, err := Parse(text)
	if err != nil {
		panic(err)
	}
	if strings.TrimSpace(rest) != "" || q.IsEmpty() {
		panic(fmt.Sprintf("quantity: cannot parse %q", text))
	}
	return q
}
