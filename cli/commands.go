package cli

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry     bool   `help:"Show timing telemetry and counters for operations."`
	Debug         bool   `help:"Log price lookups and parsing at debug level on stderr."`
	PriceDB       string `name:"price-db" help:"Price database to load before running the command." env:"COMMODITIES_PRICE_DB" type:"existingfile"`
	DecimalComma  bool   `help:"Parse amounts with a comma as decimal mark by default." env:"COMMODITIES_DECIMAL_COMMA"`
	ISOCurrencies bool   `name:"iso-currencies" help:"Pre-create common ISO 4217 currencies with their precision and style."`
}

type Commands struct {
	Globals

	Check    CheckCmd    `cmd:"" help:"Load and check a price database."`
	Parse    ParseCmd    `cmd:"" help:"Parse amounts and show how they are interpreted."`
	Value    ValueCmd    `cmd:"" help:"Convert an amount into another commodity using known prices."`
	Prices   PricesCmd   `cmd:"" help:"List the prices recorded for a commodity."`
	Graph    GraphCmd    `cmd:"" help:"Print the price graph in GraphViz format."`
	Describe DescribeCmd `cmd:"" help:"Describe a commodity."`
	Exchange ExchangeCmd `cmd:"" help:"Compute the cost breakdown of exchanging an amount."`
}
