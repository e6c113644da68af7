package ledger

import "strings"

// CommodityFlags record how a commodity is displayed and how it has been
// used. Style flags are learned from parsed amounts; the rest are set by the
// pool and price history.
type CommodityFlags uint32

const (
	StyleDefaults      CommodityFlags = 0x0000
	StyleSuffixed      CommodityFlags = 0x0001
	StyleSeparated     CommodityFlags = 0x0002
	StyleDecimalComma  CommodityFlags = 0x0004
	StyleThousands     CommodityFlags = 0x0008
	NoMarket           CommodityFlags = 0x0010
	Builtin            CommodityFlags = 0x0020
	Walked             CommodityFlags = 0x0040
	Known              CommodityFlags = 0x0080
	Primary            CommodityFlags = 0x0100
	SawAnnotated       CommodityFlags = 0x0200
	SawAnnPriceFloat   CommodityFlags = 0x0400
	SawAnnPriceFixated CommodityFlags = 0x0800
	StyleTimeColon     CommodityFlags = 0x1000
	StyleNoMigrate     CommodityFlags = 0x2000
)

var flagNames = []struct {
	flag CommodityFlags
	name string
}{
	{StyleSuffixed, "SUFFIXED"},
	{StyleSeparated, "SEPARATED"},
	{StyleDecimalComma, "DECIMAL_COMMA"},
	{StyleThousands, "THOUSANDS"},
	{NoMarket, "NOMARKET"},
	{Builtin, "BUILTIN"},
	{Walked, "WALKED"},
	{Known, "KNOWN"},
	{Primary, "PRIMARY"},
	{SawAnnotated, "SAW_ANNOTATED"},
	{SawAnnPriceFloat, "SAW_ANN_PRICE_FLOAT"},
	{SawAnnPriceFixated, "SAW_ANN_PRICE_FIXATED"},
	{StyleTimeColon, "TIME_COLON"},
	{StyleNoMigrate, "NO_MIGRATE"},
}

// Has reports whether every bit of flag is set.
func (f CommodityFlags) Has(flag CommodityFlags) bool {
	return f&flag == flag
}

func (f CommodityFlags) String() string {
	if f == StyleDefaults {
		return "DEFAULTS"
	}
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseFlags alter how amount text is interpreted.
type ParseFlags uint8

const (
	ParseDefault ParseFlags = 0
	// ParseNoMigrate leaves the commodity's display style alone and marks the
	// amount to keep its own precision.
	ParseNoMigrate ParseFlags = 1 << iota
	// ParseNoReduce skips reduction to the smallest scaling unit.
	ParseNoReduce
	// ParseSoftFail reports a missing quantity with ok=false instead of an error.
	ParseSoftFail
	// ParseNoAnnot stops before any lot annotation.
	ParseNoAnnot
)

func (f ParseFlags) has(flag ParseFlags) bool {
	return f&flag != 0
}

// PrintFlags alter Amount.Print output.
type PrintFlags uint8

const (
	PrintNoFlags      PrintFlags = 0
	PrintRightJustify PrintFlags = 1 << iota
	PrintColorize
	PrintNoComputedAnnotations
	PrintElideCommodityQuotes
)

func (f PrintFlags) has(flag PrintFlags) bool {
	return f&flag != 0
}
