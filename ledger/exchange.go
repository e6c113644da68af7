package ledger

import "time"

// CostBreakdown is the outcome of exchanging an amount for a cost.
type CostBreakdown struct {
	// Amount is the exchanged amount annotated with its per-unit cost and,
	// when given, the exchange date and tag.
	Amount *Amount
	// FinalCost is the total paid.
	FinalCost *Amount
	// BasisCost is the total the amount was originally acquired for: its lot
	// price times the amount when it has one, else FinalCost.
	BasisCost *Amount
}

// Exchange records perUnitCost as the price of c's plain commodity at
// moment.
func (p *Pool) Exchange(c *Commodity, perUnitCost *Amount, moment time.Time) error {
	p.logger("commodity.prices.add").Debug("exchanging commodity", "commodity", c, "cost", perUnitCost, "moment", moment)
	return c.Referent().AddPrice(moment, perUnitCost, true)
}

// ExchangeAmount books amount against cost. cost is a total unless
// isPerUnit is set. When addPrice is set the per-unit cost becomes a market
// price of amount's commodity, except for lots with a fixated price. A zero
// moment means now, and leaves the lot date unset.
func (p *Pool) ExchangeAmount(amount, cost *Amount, isPerUnit, addPrice bool, moment time.Time, tag string) (*CostBreakdown, error) {
	if amount == nil {
		return nil, &ArgumentError{Name: "amount"}
	}
	if cost == nil {
		return nil, &ArgumentError{Name: "cost"}
	}
	log := p.logger("commodity.prices.add")
	log.Debug("exchange", "amount", amount, "cost", cost, "per_unit", isPerUnit, "moment", moment, "tag", tag)

	comm := amount.commodity
	current := comm.Annotation()

	var (
		perUnitCost *Amount
		err         error
	)
	realZero, err := amount.IsRealZero()
	if err != nil {
		return nil, err
	}
	if isPerUnit || realZero {
		perUnitCost, err = cost.Abs()
	} else {
		var q *Amount
		if q, err = cost.Divide(amount); err == nil {
			perUnitCost, err = q.Abs()
		}
	}
	if err != nil {
		return nil, err
	}
	if !cost.HasCommodity() {
		perUnitCost.ClearCommodity()
	}
	log.Debug("exchange", "per_unit_cost", perUnitCost)

	fixated := current != nil && current.Price != nil && current.IsPriceFixated
	if costZero, _ := perUnitCost.IsRealZero(); addPrice && !costZero && !fixated && comm.Referent() != perUnitCost.commodity.Referent() {
		when := moment
		if when.IsZero() {
			when = p.cfg.now()
		}
		if err := p.Exchange(comm, perUnitCost, when); err != nil {
			return nil, err
		}
	}

	b := &CostBreakdown{FinalCost: cost}
	if isPerUnit {
		abs, err := amount.Abs()
		if err != nil {
			return nil, err
		}
		if b.FinalCost, err = cost.Multiply(abs); err != nil {
			return nil, err
		}
	}
	log.Debug("exchange", "final_cost", b.FinalCost)

	b.BasisCost = b.FinalCost
	if current != nil && current.Price != nil {
		basis, err := current.Price.Multiply(amount)
		if err != nil {
			return nil, err
		}
		if b.BasisCost, err = basis.Unrounded(); err != nil {
			return nil, err
		}
	}
	log.Debug("exchange", "basis_cost", b.BasisCost)

	details := &Annotation{
		Price:             perUnitCost,
		Tag:               tag,
		IsPriceCalculated: true,
		IsPriceFixated:    current != nil && current.IsPriceFixated,
		IsDateCalculated:  !moment.IsZero(),
		IsTagCalculated:   tag != "",
	}
	if !moment.IsZero() {
		y, m, d := moment.Date()
		details.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	b.Amount = amount.Copy()
	if err := b.Amount.Annotate(details); err != nil {
		return nil, err
	}
	log.Debug("exchange", "result", b.Amount)
	return b, nil
}
