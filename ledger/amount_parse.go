package ledger

import (
	"strings"
	"unicode"

	"github.com/robinvdvleuten/commodities/quantity"
)

// invalidSymbolChars may not appear in a bare commodity symbol. A symbol
// containing any of them is printed in double quotes.
const invalidSymbolChars = " \t\n\r0123456789.,;:?!-+*/^&|=<>{}[]()@"

var reservedSymbols = map[string]bool{
	"and": true, "div": true, "else": true, "false": true,
	"if": true, "or": true, "not": true, "true": true,
}

// SymbolNeedsQuotes reports whether symbol must be quoted to be read back.
func SymbolNeedsQuotes(symbol string) bool {
	return strings.ContainsAny(symbol, invalidSymbolChars)
}

// ParseSymbol reads a commodity symbol from the front of line: either a
// double quoted string or a run of characters that are valid in a bare
// symbol. Expression keywords are not symbols. When no symbol is found the
// line is handed back unchanged.
func ParseSymbol(line string) (symbol, rest string, err error) {
	if line == "" {
		return "", "", nil
	}
	original := line
	line = strings.TrimLeftFunc(line, unicode.IsSpace)

	if strings.HasPrefix(line, `"`) {
		end := strings.IndexByte(line[1:], '"')
		if end < 0 {
			return "", original, parseError("", "Quoted commodity symbol lacks closing quote")
		}
		symbol, rest = line[1:end+1], line[end+2:]
	} else {
		end := strings.IndexAny(line, invalidSymbolChars)
		if end < 0 {
			end = len(line)
		}
		symbol, rest = line[:end], line[end:]
		if reservedSymbols[symbol] {
			symbol = ""
		}
	}

	if symbol == "" {
		return "", original, nil
	}
	return symbol, rest, nil
}

func startsWithSpace(s string) bool {
	return s != "" && unicode.IsSpace(rune(s[0]))
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// parseAmount reads "[-]SYM[ ]NUM" or "[-]NUM[ ]SYM", optionally followed by
// a lot annotation, from the front of line and returns the remainder. The
// style observed in the text is recorded on the commodity unless flags
// contain ParseNoMigrate. With ParseSoftFail a missing quantity yields a nil
// amount and no error.
func (p *Pool) parseAmount(line string, flags ParseFlags) (*Amount, string, error) {
	var (
		literal  string
		symbol   string
		negative bool
		style    = StyleDefaults
		details  *Annotation
		err      error
	)
	original := line

	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	if strings.HasPrefix(line, "-") {
		negative = true
		line = strings.TrimLeftFunc(line[1:], unicode.IsSpace)
	}

	if startsWithDigit(line) {
		literal, line = quantity.Scan(line)
		if line != "" {
			if startsWithSpace(line) {
				style = StyleSeparated
			}
			if symbol, line, err = ParseSymbol(line); err != nil {
				return nil, original, err
			}
			if symbol != "" {
				style |= StyleSuffixed
			}
			if !flags.has(ParseNoAnnot) && strings.TrimSpace(line) != "" {
				if details, line, err = p.ParseAnnotation(line); err != nil {
					return nil, original, err
				}
			}
		}
	} else {
		if symbol, line, err = ParseSymbol(line); err != nil {
			return nil, original, err
		}
		if startsWithSpace(line) {
			style = StyleSeparated
		}
		literal, line = quantity.Scan(line)
		if !flags.has(ParseNoAnnot) && literal != "" && strings.TrimSpace(line) != "" {
			if details, line, err = p.ParseAnnotation(line); err != nil {
				return nil, original, err
			}
		}
	}

	if literal == "" {
		if flags.has(ParseSoftFail) {
			return nil, original, nil
		}
		return nil, original, parseError(original, "No quantity specified for amount")
	}

	comm := p.null
	if symbol != "" {
		comm = p.FindOrCreate(symbol)
	}

	prec, style, err := scanPunctuation(literal, style, p.cfg.DecimalCommaByDefault || comm.Flags().Has(StyleDecimalComma))
	if err != nil {
		return nil, original, err
	}

	keep := flags.has(ParseNoMigrate)
	if !keep && comm != p.null && !comm.Flags().Has(StyleNoMigrate) {
		comm.AddFlags(style)
		if prec > comm.Precision() {
			comm.SetPrecision(prec)
		}
	}

	q, err := quantity.ParseDigits(strings.NewReplacer(",", "", ".", "").Replace(literal), prec)
	if err != nil {
		return nil, original, parseError(literal, "Invalid quantity in amount")
	}
	if negative {
		q = q.Negate()
	}
	p.logger("amount.parse").Debug("parsed quantity", "literal", literal, "quantity", q, "precision", prec)

	a := &Amount{quantity: q, commodity: comm, keepPrecision: keep}
	if !flags.has(ParseNoReduce) {
		if _, err := a.InPlaceReduce(); err != nil {
			return nil, original, err
		}
	}

	if a.HasCommodity() && details != nil && !details.IsEmpty() {
		if details.IsPriceNotPerUnit {
			if details.Price == nil {
				return nil, original, parseError(original, "Lot cost is missing a price")
			}
			abs, _ := a.Abs()
			if details.Price, err = details.Price.Divide(abs); err != nil {
				return nil, original, err
			}
		}
		if a.commodity, err = p.FindOrCreateAnnotated(a.commodity, details); err != nil {
			return nil, original, err
		}
	}

	if err := a.Verify(); err != nil {
		return nil, original, err
	}
	return a, line, nil
}

// scanPunctuation walks literal from the right and works out which of '.'
// and ',' is the decimal mark, returning the precision and the style flags
// the text implies.
func scanPunctuation(literal string, style CommodityFlags, decimalComma bool) (int, CommodityFlags, error) {
	var (
		offset, prec        int
		lastComma           = -1
		lastPeriod          = -1
		noCommas, noPeriods bool
	)

	for i := len(literal) - 1; i >= 0; i-- {
		switch literal[i] {
		case '.':
			if noPeriods {
				return 0, style, parseError(literal, "Too many periods in amount")
			}
			switch {
			case decimalComma:
				if offset%3 != 0 {
					return 0, style, parseError(literal, "Incorrect use of thousand-mark period")
				}
				style |= StyleThousands
				noCommas = true
			case lastComma != -1:
				decimalComma = true
				if offset%3 != 0 {
					return 0, style, parseError(literal, "Incorrect use of thousand-mark period")
				}
			default:
				noPeriods = true
				prec = offset
				offset = 0
			}
			if lastPeriod == -1 {
				lastPeriod = i
			}

		case ',':
			if noCommas {
				return 0, style, parseError(literal, "Too many commas in amount")
			}
			switch {
			case decimalComma:
				if lastPeriod != -1 {
					return 0, style, parseError(literal, "Incorrect use of decimal comma")
				}
				noCommas = true
				prec = offset
				offset = 0
			case offset%3 != 0:
				if lastComma != -1 || lastPeriod != -1 {
					return 0, style, parseError(literal, "Incorrect use of thousand-mark comma")
				}
				decimalComma = true
				noCommas = true
				prec = offset
				offset = 0
			default:
				style |= StyleThousands
				noPeriods = true
			}
			if lastComma == -1 {
				lastComma = i
			}

		default:
			offset++
		}
	}

	if decimalComma {
		style |= StyleDecimalComma
	}
	return prec, style, nil
}

// Parse reads an amount from the front of line into a, resolving the
// commodity in p, and returns the unconsumed remainder. ok is false when
// flags contain ParseSoftFail and no quantity was found; a is left alone
// then.
func (a *Amount) Parse(p *Pool, line string, flags ParseFlags) (rest string, ok bool, err error) {
	parsed, rest, err := p.parseAmount(line, flags)
	if err != nil || parsed == nil {
		return rest, false, err
	}
	*a = *parsed
	return rest, true, nil
}

// ParseAmount parses text as an amount; anything after the amount is
// ignored. With ParseSoftFail a missing quantity yields a nil amount.
func (p *Pool) ParseAmount(text string, flags ParseFlags) (*Amount, error) {
	a, _, err := p.parseAmount(text, flags)
	return a, err
}

// ExactAmount parses text without touching the commodity's display style;
// the amount keeps and prints its own precision.
func (p *Pool) ExactAmount(text string) (*Amount, error) {
	return p.ParseAmount(text, ParseNoMigrate)
}

// NewAmount binds q to c, or to the null commodity when c is nil.
func (p *Pool) NewAmount(q quantity.Quantity, c *Commodity) *Amount {
	if c == nil {
		c = p.null
	}
	return NewAmount(q, c)
}

// NewAmountInt returns v as a bare number.
func (p *Pool) NewAmountInt(v int64) *Amount {
	return NewAmount(quantity.FromInt64(v, 0), p.null)
}

// ParseConversion links two units of a scaling chain: after
// ParseConversion("1.0m", "60s"), one m reduces to 60s and 60s unreduces to
// one m. The larger commodity inherits the smaller one's style and is
// excluded from market pricing.
func (p *Pool) ParseConversion(larger, smaller string) error {
	l, err := p.ParseAmount(larger, ParseNoReduce)
	if err != nil {
		return err
	}
	s, err := p.ParseAmount(smaller, ParseNoReduce)
	if err != nil {
		return err
	}
	if l, err = l.Multiply(s); err != nil {
		return err
	}

	if l.HasCommodity() {
		l.commodity.SetSmaller(s)
		l.commodity.AddFlags(s.commodity.Flags() | NoMarket)
	}
	if s.HasCommodity() {
		s.commodity.SetLarger(l)
	}
	p.logger("amount.parse").Debug("parsed conversion", "larger", l, "smaller", s)
	return nil
}
