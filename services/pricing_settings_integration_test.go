package services

import (
	"testing"

	"rampcrm/testhelpers"
)

func TestFetchPricingVariables_NoRecordIsZero(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	rates, err := FetchPricingVariables(app)
	if err != nil {
		t.Fatalf("FetchPricingVariables() error: %v", err)
	}
	if rates != (PricingRates{}) {
		t.Errorf("expected zero rates, got %+v", rates)
	}
}

func TestUpdatePricingVariables_CreatesThenUpdates(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	first := PricingRates{DeliveryFeePerMile: 2.5, InstallFeePerComponent: 15, RentalRatePerFoot: 3}
	if _, err := UpdatePricingVariables(app, first); err != nil {
		t.Fatalf("UpdatePricingVariables() error: %v", err)
	}
	second := PricingRates{DeliveryFeePerMile: 3, InstallFeePerComponent: 20, RentalRatePerFoot: 4.5}
	if _, err := UpdatePricingVariables(app, second); err != nil {
		t.Fatalf("UpdatePricingVariables() second error: %v", err)
	}

	got, err := FetchPricingVariables(app)
	if err != nil {
		t.Fatalf("FetchPricingVariables() error: %v", err)
	}
	if got != second {
		t.Errorf("got %+v, want %+v", got, second)
	}

	records, _ := app.FindAllRecords("pricing_settings")
	if len(records) != 1 {
		t.Errorf("expected a single settings record, got %d", len(records))
	}
}

func TestUpdatePricingVariables_RejectsNegative(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	_, err := UpdatePricingVariables(app, PricingRates{DeliveryFeePerMile: -1})
	if err == nil {
		t.Fatal("expected validation error for negative rate")
	}
}
