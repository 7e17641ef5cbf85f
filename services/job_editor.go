package services

// JobEditor owns one draft and the rates of an editing session. Every
// mutating method recalculates before returning, so Draft never exposes
// stale fees.
type JobEditor struct {
	draft JobDraft
	rates PricingRates
}

// NewJobEditor seeds an editor from draft. Aggregates are rebuilt from the
// component list and pricing is recalculated once.
func NewJobEditor(draft JobDraft, rates PricingRates) *JobEditor {
	draft.Components = append([]RampComponent(nil), draft.Components...)
	RebuildAggregates(&draft)
	ed := &JobEditor{draft: draft, rates: rates}
	ed.recalculate()
	return ed
}

func (ed *JobEditor) recalculate() {
	ed.draft = Recalculate(ed.draft, ed.rates)
}

// Draft returns a copy of the current draft.
func (ed *JobEditor) Draft() JobDraft {
	d := ed.draft
	d.Components = append([]RampComponent(nil), ed.draft.Components...)
	return d
}

// Rates returns the rates the editor prices with.
func (ed *JobEditor) Rates() PricingRates {
	return ed.rates
}

func (ed *JobEditor) AddComponent(c RampComponent) {
	AddComponent(&ed.draft, c)
	ed.recalculate()
}

func (ed *JobEditor) RemoveComponent(index int) (RampComponent, error) {
	removed, err := RemoveComponent(&ed.draft, index)
	if err != nil {
		return RampComponent{}, err
	}
	ed.recalculate()
	return removed, nil
}

func (ed *JobEditor) SetDistance(miles float64) {
	ed.draft.DistanceFromWarehouse = miles
	ed.recalculate()
}

func (ed *JobEditor) SetRates(rates PricingRates) {
	ed.rates = rates
	ed.recalculate()
}

// SetOverride toggles manual pricing. Turning it off resyncs the fees to
// computed values; turning it on freezes the current fees for editing.
func (ed *JobEditor) SetOverride(enabled bool) {
	SetOverride(&ed.draft, enabled)
	ed.recalculate()
}

// SetFees stores manually entered fees. It reports false and changes
// nothing when override pricing is off.
func (ed *JobEditor) SetFees(deliveryFee, installFee, rentalRate float64) bool {
	if !ed.draft.OverridePricing {
		return false
	}
	ed.draft.DeliveryFee = deliveryFee
	ed.draft.InstallFee = installFee
	ed.draft.RentalRate = rentalRate
	ed.recalculate()
	return true
}
