package services

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

const pricingSettingsCollection = "pricing_settings"

// Validate rejects negative rates.
func (r PricingRates) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DeliveryFeePerMile, validation.Min(0.0)),
		validation.Field(&r.InstallFeePerComponent, validation.Min(0.0)),
		validation.Field(&r.RentalRatePerFoot, validation.Min(0.0)),
	)
}

func findPricingRecord(app *pocketbase.PocketBase) (*core.Collection, *core.Record, error) {
	col, err := app.FindCollectionByNameOrId(pricingSettingsCollection)
	if err != nil {
		return nil, nil, fmt.Errorf("pricing settings collection: %w", err)
	}
	records, err := app.FindRecordsByFilter(col, "id != ''", "created", 1, 0)
	if err != nil {
		return col, nil, fmt.Errorf("query pricing settings: %w", err)
	}
	if len(records) == 0 {
		return col, nil, nil
	}
	return col, records[0], nil
}

// FetchPricingVariables returns the configured rates. A missing settings
// record yields zero rates.
func FetchPricingVariables(app *pocketbase.PocketBase) (PricingRates, error) {
	_, rec, err := findPricingRecord(app)
	if err != nil {
		return PricingRates{}, err
	}
	if rec == nil {
		return PricingRates{}, nil
	}
	return PricingRates{
		DeliveryFeePerMile:     rec.GetFloat("delivery_fee_per_mile"),
		InstallFeePerComponent: rec.GetFloat("install_fee_per_component"),
		RentalRatePerFoot:      rec.GetFloat("rental_rate_per_foot"),
	}, nil
}

// UpdatePricingVariables validates and stores rates, creating the settings
// record on first use.
func UpdatePricingVariables(app *pocketbase.PocketBase, rates PricingRates) (PricingRates, error) {
	if err := rates.Validate(); err != nil {
		return PricingRates{}, err
	}

	col, rec, err := findPricingRecord(app)
	if err != nil {
		return PricingRates{}, err
	}
	if rec == nil {
		rec = core.NewRecord(col)
	}
	rec.Set("delivery_fee_per_mile", rates.DeliveryFeePerMile)
	rec.Set("install_fee_per_component", rates.InstallFeePerComponent)
	rec.Set("rental_rate_per_foot", rates.RentalRatePerFoot)

	if err := app.Save(rec); err != nil {
		return PricingRates{}, fmt.Errorf("save pricing settings: %w", err)
	}
	return rates, nil
}
