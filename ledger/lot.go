package ledger

import (
	"fmt"
	"strings"
	"time"
)

// Annotation holds the lot details attached to an annotated commodity: the
// per-unit cost, the acquisition date, a free-form tag and a valuation
// expression. The *Calculated flags mark details that were derived rather
// than written by the user.
type Annotation struct {
	Price     *Amount
	Date      time.Time
	Tag       string
	ValueExpr string

	IsPriceNotPerUnit     bool
	IsPriceFixated        bool
	IsPriceCalculated     bool
	IsDateCalculated      bool
	IsTagCalculated       bool
	IsValueExprCalculated bool
}

// HasDate reports whether a lot date is set.
func (a *Annotation) HasDate() bool {
	return a != nil && !a.Date.IsZero()
}

// IsEmpty reports whether no detail is set.
func (a *Annotation) IsEmpty() bool {
	if a == nil {
		return true
	}
	return (a.Price == nil || a.Price.IsEmpty()) && a.Date.IsZero() && a.Tag == "" && a.ValueExpr == ""
}

// Equal compares price, date, tag and valuation expression. Flags are not
// part of a lot's identity.
func (a *Annotation) Equal(o *Annotation) bool {
	if a == nil || o == nil {
		return a == o
	}
	if (a.Price == nil) != (o.Price == nil) {
		return false
	}
	if a.Price != nil && !a.Price.Equal(o.Price) {
		return false
	}
	return a.Date.Equal(o.Date) && a.Tag == o.Tag && a.ValueExpr == o.ValueExpr
}

func (a *Annotation) clone() *Annotation {
	c := *a
	return &c
}

// annotationKey identifies an annotated commodity in the pool. Two
// annotations produce the same key exactly when Equal reports true.
type annotationKey struct {
	symbol    string
	hasPrice  bool
	priceComm *Commodity
	price     string
	date      time.Time
	tag       string
	valueExpr string
}

func (a *Annotation) key(symbol string) annotationKey {
	k := annotationKey{
		symbol:    symbol,
		date:      a.Date.UTC(),
		tag:       a.Tag,
		valueExpr: a.ValueExpr,
	}
	if a.Price != nil {
		k.hasPrice = true
		k.price = a.Price.quantity.Key()
		if a.Price.HasCommodity() {
			k.priceComm = a.Price.commodity
		}
	}
	return k
}

// Print renders the annotation as it appears after a commodity symbol:
// " {=price} [date] (tag) ((expr))". Prices are unreduced unless keepBase is
// set. With noComputed, details flagged as calculated are left out.
func (a *Annotation) Print(keepBase, noComputed bool) string {
	if a == nil {
		return ""
	}
	var b strings.Builder

	if a.Price != nil && (!noComputed || !a.IsPriceCalculated) {
		price := a.Price
		if !keepBase {
			if u, err := price.Unreduced(); err == nil {
				price = u
			}
		}
		b.WriteString(" {")
		if a.IsPriceFixated {
			b.WriteByte('=')
		}
		b.WriteString(price.String())
		b.WriteByte('}')
	}
	if a.HasDate() && (!noComputed || !a.IsDateCalculated) {
		fmt.Fprintf(&b, " [%s]", a.Date.Format("2006/01/02"))
	}
	if a.Tag != "" && (!noComputed || !a.IsTagCalculated) {
		fmt.Fprintf(&b, " (%s)", a.Tag)
	}
	if a.ValueExpr != "" && !a.IsValueExprCalculated {
		fmt.Fprintf(&b, " ((%s))", a.ValueExpr)
	}
	return b.String()
}

func (a *Annotation) String() string {
	return a.Print(false, false)
}

// ParseAnnotation reads lot details from the front of line until text that is
// not an annotation. A "(@" sequence starts a cost expression and ends the
// annotation.
func (p *Pool) ParseAnnotation(line string) (*Annotation, string, error) {
	a := &Annotation{}
	for {
		original := line
		line = strings.TrimLeft(line, " \t\r\n")

		switch {
		case strings.HasPrefix(line, "{"):
			if a.Price != nil {
				return nil, original, parseError("", "Commodity specifies more than one price")
			}
			line = line[1:]
			if strings.HasPrefix(line, "{") {
				line = line[1:]
				a.IsPriceNotPerUnit = true
			}
			line = strings.TrimLeft(line, " \t")
			if strings.HasPrefix(line, "=") {
				line = line[1:]
				a.IsPriceFixated = true
			}
			buf, rest, ok := strings.Cut(line, "}")
			if !ok {
				return nil, original, parseError("", "Commodity lot price lacks closing brace")
			}
			line = rest
			if a.IsPriceNotPerUnit {
				if !strings.HasPrefix(line, "}") {
					return nil, original, parseError("", "Commodity lot price lacks double closing brace")
				}
				line = line[1:]
			}
			price, _, err := p.parseAmount(buf, ParseNoMigrate)
			if err != nil {
				return nil, original, err
			}
			a.Price = price
			p.logger("commodity.annotations").Debug("parsed annotation price", "price", price)

		case strings.HasPrefix(line, "["):
			if a.HasDate() {
				return nil, original, parseError("", "Commodity specifies more than one date")
			}
			buf, rest, ok := strings.Cut(line[1:], "]")
			if !ok {
				return nil, original, parseError("", "Commodity date lacks closing bracket")
			}
			line = rest
			d, err := ParseDate(buf)
			if err != nil {
				return nil, original, parseError(buf, "Invalid date in commodity annotation")
			}
			a.Date = d

		case strings.HasPrefix(line, "("):
			inner := line[1:]
			if strings.HasPrefix(inner, "@") {
				return a, original, nil
			}
			if strings.HasPrefix(inner, "(") {
				if a.ValueExpr != "" {
					return nil, original, parseError("", "Commodity specifies more than one valuation expresion")
				}
				buf, rest, ok := strings.Cut(inner[1:], ")")
				if !ok || !strings.HasPrefix(rest, ")") {
					return nil, original, parseError("", "Commodity valuation expression lacks closing parentheses")
				}
				line = rest[1:]
				a.ValueExpr = buf
				continue
			}
			if a.Tag != "" {
				return nil, original, parseError("", "Commodity specifies more than one tag")
			}
			buf, rest, ok := strings.Cut(inner, ")")
			if !ok {
				return nil, original, parseError("", "Commodity tag lacks closing parenthesis")
			}
			line = rest
			a.Tag = buf

		default:
			return a, original, nil
		}
	}
}

// KeepDetails selects which lot details survive StripAnnotations.
type KeepDetails struct {
	KeepPrice   bool
	KeepDate    bool
	KeepTag     bool
	OnlyActuals bool
}

// KeepAll reports whether every detail would be kept.
func (k KeepDetails) KeepAll() bool {
	return k.KeepPrice && k.KeepDate && k.KeepTag && !k.OnlyActuals
}

// KeepAllFor reports whether stripping c with k is a no-op.
func (k KeepDetails) KeepAllFor(c *Commodity) bool {
	return !c.IsAnnotated() || k.KeepAll()
}

func (k KeepDetails) KeepAny() bool {
	return k.KeepPrice || k.KeepDate || k.KeepTag
}

func (k KeepDetails) KeepAnyOf(c *Commodity) bool {
	return c.IsAnnotated() && k.KeepAny()
}

var dateLayouts = []string{"2006/01/02", "2006-01-02", "2006.01.02"}

// ParseDate parses a date in YYYY/MM/DD, YYYY-MM-DD or YYYY.MM.DD form.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

var dateTimeLayouts = []string{"2006/01/02 15:04:05", "2006-01-02 15:04:05", "2006/01/02 15:04", "2006-01-02 15:04"}

func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range dateTimeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
