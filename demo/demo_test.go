package demo_test

import (
	"testing"

	"rampcrm/demo"
	"rampcrm/services"
	"rampcrm/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := demo.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	customers, err := app.FindAllRecords("customers")
	if err != nil {
		t.Fatalf("query customers error: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(customers))
	}

	jobs, _ := app.FindAllRecords("jobs")
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jobs))
	}

	rates, err := services.FetchPricingVariables(app)
	if err != nil {
		t.Fatalf("FetchPricingVariables() error: %v", err)
	}
	if rates != demo.Rates {
		t.Errorf("unexpected demo rates: %+v", rates)
	}
}

func TestSeed_ScheduledJobMatchesWorkedExample(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := demo.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	jobs, err := app.FindRecordsByFilter("jobs", "status = 'Scheduled'", "", 1, 0)
	if err != nil || len(jobs) != 1 {
		t.Fatalf("expected one scheduled job, got %d (%v)", len(jobs), err)
	}
	j := jobs[0]
	if j.GetInt("total_ramp_length") != 10 || j.GetInt("total_landings") != 1 {
		t.Errorf("aggregates = %d / %d", j.GetInt("total_ramp_length"), j.GetInt("total_landings"))
	}
	if j.GetFloat("delivery_fee") != 25 || j.GetFloat("install_fee") != 45 ||
		j.GetFloat("rental_rate") != 30 || j.GetFloat("total_cost") != 100 {
		t.Errorf("fees = %v/%v/%v total %v", j.GetFloat("delivery_fee"), j.GetFloat("install_fee"),
			j.GetFloat("rental_rate"), j.GetFloat("total_cost"))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := demo.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := demo.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	customers, _ := app.FindAllRecords("customers")
	if len(customers) != 2 {
		t.Errorf("expected 2 customers after idempotent seed, got %d", len(customers))
	}
	settings, _ := app.FindAllRecords("pricing_settings")
	if len(settings) != 1 {
		t.Errorf("expected 1 pricing settings record, got %d", len(settings))
	}
}

func TestSeed_PricesWithExistingRates(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.SetTestRates(t, app, 9, 9, 9)

	if err := demo.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	rates, _ := services.FetchPricingVariables(app)
	if rates.DeliveryFeePerMile != 9 {
		t.Fatalf("seed overwrote configured rates: %+v", rates)
	}

	jobs, _ := app.FindAllRecords("jobs")
	for _, j := range jobs {
		d, err := services.DraftFromRecord(j)
		if err != nil {
			t.Fatalf("DraftFromRecord(%s): %v", j.Id, err)
		}
		want := services.Recalculate(d, rates)
		if j.GetFloat("total_cost") != want.TotalCost {
			t.Errorf("job %s total = %v, want %v", j.Id, j.GetFloat("total_cost"), want.TotalCost)
		}
		if j.GetInt("total_ramp_length") != d.TotalRampLength {
			t.Errorf("job %s stored length %d, computed %d", j.Id, j.GetInt("total_ramp_length"), d.TotalRampLength)
		}
	}
}
