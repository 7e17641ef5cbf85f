package services

import (
	"context"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// DistanceLookup resolves the driving distance in miles from the warehouse.
type DistanceLookup interface {
	DistanceFromWarehouse(ctx context.Context, address string) (float64, error)
}

// DraftFromRecord seeds a draft from a stored job. Aggregates are rebuilt
// from the component list rather than trusted from the record.
func DraftFromRecord(rec *core.Record) (JobDraft, error) {
	var components []RampComponent
	if raw := rec.GetString("components"); raw != "" && raw != "null" {
		if err := rec.UnmarshalJSONField("components", &components); err != nil {
			return JobDraft{}, fmt.Errorf("job %s components: %w", rec.Id, err)
		}
	}
	if components == nil {
		components = []RampComponent{}
	}

	d := JobDraft{
		Components:            components,
		DistanceFromWarehouse: rec.GetFloat("distance_from_warehouse"),
		OverridePricing:       rec.GetBool("override_pricing"),
		DeliveryFee:           rec.GetFloat("delivery_fee"),
		InstallFee:            rec.GetFloat("install_fee"),
		RentalRate:            rec.GetFloat("rental_rate"),
		TotalCost:             rec.GetFloat("total_cost"),
	}
	RebuildAggregates(&d)
	return d, nil
}

// ApplyDraft copies the pricing state of d onto rec.
func ApplyDraft(rec *core.Record, d JobDraft) {
	components := d.Components
	if components == nil {
		components = []RampComponent{}
	}
	rec.Set("components", components)
	rec.Set("total_ramp_length", d.TotalRampLength)
	rec.Set("total_landings", d.TotalLandings)
	rec.Set("distance_from_warehouse", d.DistanceFromWarehouse)
	rec.Set("override_pricing", d.OverridePricing)
	rec.Set("delivery_fee", d.DeliveryFee)
	rec.Set("install_fee", d.InstallFee)
	rec.Set("rental_rate", d.RentalRate)
	rec.Set("total_cost", d.TotalCost)
}
