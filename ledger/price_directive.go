package ledger

import (
	"strings"
	"time"
	"unicode"
)

// nextField splits line at the first run of whitespace.
func nextField(line string) (field, rest string) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimLeftFunc(line[i:], unicode.IsSpace)
}

// ParsePriceDirective reads the body of a price line, "DATE [TIME] SYMBOL
// PRICE" or, when the first field is not a date, "SYMBOL PRICE" at the
// current time. noDate forces the second form. Unless doNotAddPrice is set
// the price is recorded in the history. The commodity is marked Known.
//
// A nil commodity and no error mean the line has too few fields.
func (p *Pool) ParsePriceDirective(line string, doNotAddPrice, noDate bool) (*Commodity, PricePoint, error) {
	dateField, rest := nextField(line)
	if strings.TrimSpace(rest) == "" {
		return nil, PricePoint{}, nil
	}

	var (
		symbolAndPrice string
		symbol         string
		when           time.Time
		err            error
	)
	switch {
	case !noDate && startsWithDigit(dateField) && startsWithDigit(rest):
		var timeField string
		timeField, symbolAndPrice = nextField(rest)
		if strings.TrimSpace(symbolAndPrice) == "" {
			return nil, PricePoint{}, nil
		}
		if when, err = parseDateTime(dateField + " " + timeField); err != nil {
			return nil, PricePoint{}, parseError(dateField+" "+timeField, "Invalid date/time in price directive")
		}
	case !noDate && startsWithDigit(dateField):
		symbolAndPrice = rest
		if when, err = ParseDate(dateField); err != nil {
			return nil, PricePoint{}, parseError(dateField, "Invalid date in price directive")
		}
	default:
		symbol = dateField
		symbolAndPrice = rest
		when = p.cfg.now()
	}

	if symbol == "" {
		if symbol, symbolAndPrice, err = ParseSymbol(symbolAndPrice); err != nil {
			return nil, PricePoint{}, err
		}
	}

	price, err := p.ParseAmount(symbolAndPrice, ParseNoMigrate)
	if err != nil {
		return nil, PricePoint{}, err
	}
	point := PricePoint{When: when, Price: price}

	log := p.logger("commodity.download")
	log.Debug("looking up symbol", "symbol", symbol)
	c := p.FindOrCreate(symbol)
	log.Debug("adding price", "symbol", symbol, "when", when, "price", price)
	if !doNotAddPrice {
		if err := c.AddPrice(when, price, true); err != nil {
			return nil, PricePoint{}, err
		}
	}
	c.AddFlags(Known)
	return c, point, nil
}

// ParsePriceExpression reads "SYMBOL" or "SYMBOL=PRICE[;PRICE...]" and
// returns the commodity. With addPrice each price is recorded at moment, or
// at the current day when moment is zero.
func (p *Pool) ParsePriceExpression(expr string, addPrice bool, moment time.Time) (*Commodity, error) {
	symbol, prices, _ := strings.Cut(expr, "=")
	c := p.FindOrCreate(strings.TrimSpace(symbol))

	prices = strings.TrimSpace(prices)
	if prices == "" || !addPrice {
		return c, nil
	}
	when := moment
	if when.IsZero() {
		y, m, d := p.cfg.now().Date()
		when = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	for _, text := range strings.Split(prices, ";") {
		price, err := p.ParseAmount(text, ParseDefault)
		if err != nil {
			return nil, err
		}
		if err := c.AddPrice(when, price, true); err != nil {
			return nil, err
		}
	}
	return c, nil
}
