// Package services provides pricing, distance, intake and export logic for
// ramp rental jobs.
package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ComponentType identifies a ramp section (RS*) or landing platform (L*).
type ComponentType string

const (
	ComponentRS4 ComponentType = "RS4"
	ComponentRS5 ComponentType = "RS5"
	ComponentRS6 ComponentType = "RS6"
	ComponentRS7 ComponentType = "RS7"
	ComponentRS8 ComponentType = "RS8"
	ComponentL55 ComponentType = "L55"
	ComponentL45 ComponentType = "L45"
	ComponentL85 ComponentType = "L85"
)

// ComponentTypeOptions lists the component types in the order the job form offers them.
var ComponentTypeOptions = []ComponentType{
	ComponentRS4, ComponentRS5, ComponentRS6, ComponentRS7, ComponentRS8,
	ComponentL55, ComponentL45, ComponentL85,
}

// ErrComponentIndex is returned when a component index is outside the list.
var ErrComponentIndex = errors.New("component index out of range")

// ErrComponentType is returned for a type outside ComponentTypeOptions.
var ErrComponentType = errors.New("unknown component type")

// Valid reports whether t is one of the known component types.
func (t ComponentType) Valid() bool {
	for _, o := range ComponentTypeOptions {
		if t == o {
			return true
		}
	}
	return false
}

// IsRampSection reports whether t contributes ramp length.
func (t ComponentType) IsRampSection() bool {
	return strings.HasPrefix(string(t), "RS")
}

// IsLanding reports whether t contributes to the landing count.
func (t ComponentType) IsLanding() bool {
	return strings.HasPrefix(string(t), "L")
}

// SectionLength returns the length in feet of one RS section, 0 for landings.
func (t ComponentType) SectionLength() int {
	if !t.IsRampSection() {
		return 0
	}
	n, err := strconv.Atoi(string(t)[2:])
	if err != nil {
		return 0
	}
	return n
}

// Description is the human label used on quotes.
func (t ComponentType) Description() string {
	switch {
	case t.IsRampSection():
		return fmt.Sprintf("Ramp section %s (%d ft)", t, t.SectionLength())
	case t.IsLanding():
		return fmt.Sprintf("Landing platform %s", t)
	}
	return string(t)
}

// RampComponent is one line of a job's component list.
type RampComponent struct {
	Type     ComponentType `json:"type"`
	Quantity int           `json:"quantity"`
}

// Length is the component's contribution to total ramp length.
func (c RampComponent) Length() int {
	return c.Type.SectionLength() * c.Quantity
}

// Landings is the component's contribution to the landing count.
func (c RampComponent) Landings() int {
	if c.Type.IsLanding() {
		return c.Quantity
	}
	return 0
}

func (c RampComponent) String() string {
	return fmt.Sprintf("%s x%d", c.Type, c.Quantity)
}

// PricingRates are the per-unit prices configured in settings.
type PricingRates struct {
	DeliveryFeePerMile     float64 `json:"deliveryFeePerMile"`
	InstallFeePerComponent float64 `json:"installFeePerComponent"`
	RentalRatePerFoot      float64 `json:"rentalRatePerFoot"`
}

// JobDraft is the editable pricing state of a job. TotalRampLength and
// TotalLandings always equal the sums over Components.
type JobDraft struct {
	Components            []RampComponent `json:"components"`
	TotalRampLength       int             `json:"totalRampLength"`
	TotalLandings         int             `json:"totalLandings"`
	DistanceFromWarehouse float64         `json:"distanceFromWarehouse"`
	OverridePricing       bool            `json:"overridePricing"`
	DeliveryFee           float64         `json:"deliveryFee"`
	InstallFee            float64         `json:"installFee"`
	RentalRate            float64         `json:"rentalRate"`
	TotalCost             float64         `json:"totalCost"`
}

// AddComponent appends c and adds its contribution to the aggregates.
func AddComponent(d *JobDraft, c RampComponent) {
	d.Components = append(d.Components, c)
	d.TotalRampLength += c.Length()
	d.TotalLandings += c.Landings()
}

// RemoveComponent removes the component at index and subtracts its
// contribution. The draft is left untouched when index is out of range.
func RemoveComponent(d *JobDraft, index int) (RampComponent, error) {
	if index < 0 || index >= len(d.Components) {
		return RampComponent{}, fmt.Errorf("%w: %d (have %d)", ErrComponentIndex, index, len(d.Components))
	}
	removed := d.Components[index]
	d.Components = append(d.Components[:index:index], d.Components[index+1:]...)
	d.TotalRampLength -= removed.Length()
	d.TotalLandings -= removed.Landings()
	return removed, nil
}

// SetOverride flips the override flag. Stored fees are kept.
func SetOverride(d *JobDraft, enabled bool) {
	d.OverridePricing = enabled
}

// TotalComponentCount sums the quantities of all components.
func TotalComponentCount(components []RampComponent) int {
	var n int
	for _, c := range components {
		n += c.Quantity
	}
	return n
}

// Recalculate returns d with fees and total cost derived from rates. With
// override on only TotalCost is recomputed from the stored fees.
func Recalculate(d JobDraft, rates PricingRates) JobDraft {
	if !d.OverridePricing {
		d.DeliveryFee = d.DistanceFromWarehouse * rates.DeliveryFeePerMile
		d.InstallFee = float64(TotalComponentCount(d.Components)) * rates.InstallFeePerComponent
		d.RentalRate = float64(d.TotalRampLength) * rates.RentalRatePerFoot
	}
	d.TotalCost = d.DeliveryFee + d.InstallFee + d.RentalRate
	return d
}

// RebuildAggregates recomputes the length and landing totals from scratch.
// Used when a draft is seeded from stored or client-supplied data whose
// totals cannot be trusted.
func RebuildAggregates(d *JobDraft) {
	d.TotalRampLength = 0
	d.TotalLandings = 0
	for _, c := range d.Components {
		d.TotalRampLength += c.Length()
		d.TotalLandings += c.Landings()
	}
}

// ParseComponent validates the raw type and quantity supplied by a client.
func ParseComponent(rawType string, quantity int) (RampComponent, error) {
	t := ComponentType(strings.ToUpper(strings.TrimSpace(rawType)))
	if !t.Valid() {
		return RampComponent{}, fmt.Errorf("%w: %q", ErrComponentType, rawType)
	}
	if quantity < 1 {
		return RampComponent{}, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}
	return RampComponent{Type: t, Quantity: quantity}, nil
}
