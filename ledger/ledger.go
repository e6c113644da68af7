// Package ledger implements commodities, amounts and the price history that
// connects them. Every commodity belongs to a Pool, which interns plain and
// annotated commodities, learns their display style from parsed amounts and
// owns the price graph used for valuation.
//
// Amounts carry an exact decimal quantity with a precision tag (see package
// quantity). Arithmetic follows the precision rules of ledger-style
// accounting tools: multiplication adds precisions, division extends them so
// no accuracy is lost, and printing rounds to the commodity's display
// precision unless the amount keeps its own.
//
// Pools are independent of each other, so several ledgers can be processed
// in one program.
//
// Example usage:
//
//	pool := ledger.NewPool()
//	if _, _, err := pool.ParsePriceDirective("2024/01/02 EUR 1.10 USD", false, false); err != nil {
//	    log.Fatal(err)
//	}
//
//	amount, err := pool.ParseAmount("10 EUR", ledger.ParseDefault)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	value, err := amount.Value(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), pool.Find("USD"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(value) // 11 USD
package ledger
