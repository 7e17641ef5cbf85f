package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"rampcrm/testhelpers"
)

type stubDistance struct {
	miles float64
	err   error
}

func (s stubDistance) DistanceFromWarehouse(ctx context.Context, address string) (float64, error) {
	return s.miles, s.err
}

func TestSaveRentalRequest(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	r := validRentalRequest()
	r.FirstName = "  Jane  "
	rec, fields, err := SaveRentalRequest(app, r)
	if err != nil {
		t.Fatalf("SaveRentalRequest() error: %v", err)
	}
	if fields != nil {
		t.Fatalf("unexpected field errors: %v", fields)
	}
	if rec.GetString("status") != "new" || rec.GetString("first_name") != "Jane" {
		t.Errorf("stored status=%q first_name=%q", rec.GetString("status"), rec.GetString("first_name"))
	}

	got := RequestFromRecord(rec)
	if len(got.MobilityAids) != 1 || got.MobilityAids[0] != "Wheelchair" {
		t.Errorf("mobility aids = %v", got.MobilityAids)
	}
}

func TestSaveRentalRequest_Invalid(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	r := validRentalRequest()
	r.Phone = "555"
	rec, fields, err := SaveRentalRequest(app, r)
	if err != nil {
		t.Fatalf("SaveRentalRequest() error: %v", err)
	}
	if rec != nil || fields["phone"] == "" {
		t.Errorf("expected phone error, got rec=%v fields=%v", rec, fields)
	}
}

func TestConvertRentalRequest(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.SetTestRates(t, app, 2.5, 15, 3)
	rr := testhelpers.CreateTestRentalRequest(t, app, "rita@example.com")

	res, err := ConvertRentalRequest(context.Background(), app, rr.Id, stubDistance{miles: 12})
	if err != nil {
		t.Fatalf("ConvertRentalRequest() error: %v", err)
	}

	if res.Customer.GetString("first_name") != "Rita" || res.Customer.GetString("email") != "rita@example.com" {
		t.Errorf("customer = %v", res.Customer)
	}
	notes := res.Customer.GetString("notes")
	if !strings.Contains(notes, "Within a week") || !strings.Contains(notes, "16 ft") || !strings.Contains(notes, "Wheelchair") {
		t.Errorf("customer notes = %q", notes)
	}
	if strings.Contains(notes, "Rental duration") {
		t.Errorf("unknown rental duration should be omitted: %q", notes)
	}

	job := res.Job
	if job.GetString("customer") != res.Customer.Id || job.GetString("status") != "New" {
		t.Errorf("job customer=%q status=%q", job.GetString("customer"), job.GetString("status"))
	}
	if job.GetFloat("distance_from_warehouse") != 12 || job.GetFloat("total_cost") != 30 {
		t.Errorf("job pricing distance=%v total=%v", job.GetFloat("distance_from_warehouse"), job.GetFloat("total_cost"))
	}

	stored, _ := app.FindRecordById("rental_requests", rr.Id)
	if stored.GetString("status") != "converted" || stored.GetString("job") != job.Id {
		t.Errorf("request status=%q job=%q", stored.GetString("status"), stored.GetString("job"))
	}

	_, err = ConvertRentalRequest(context.Background(), app, rr.Id, nil)
	if !errors.Is(err, ErrAlreadyConverted) {
		t.Errorf("second convert error = %v, want ErrAlreadyConverted", err)
	}
}

func TestConvertRentalRequest_DistanceFailureIsZero(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.SetTestRates(t, app, 2.5, 15, 3)
	rr := testhelpers.CreateTestRentalRequest(t, app, "rita@example.com")

	res, err := ConvertRentalRequest(context.Background(), app, rr.Id, stubDistance{err: ErrDistanceUnavailable})
	if err != nil {
		t.Fatalf("ConvertRentalRequest() error: %v", err)
	}
	if res.Job.GetFloat("distance_from_warehouse") != 0 || res.Job.GetFloat("total_cost") != 0 {
		t.Errorf("expected zero distance and cost, got %v / %v",
			res.Job.GetFloat("distance_from_warehouse"), res.Job.GetFloat("total_cost"))
	}
}

func TestConvertRentalRequest_PricingUnavailable(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rr := testhelpers.CreateTestRentalRequest(t, app, "rita@example.com")

	col, _ := app.FindCollectionByNameOrId("pricing_settings")
	if err := app.Delete(col); err != nil {
		t.Fatalf("delete pricing_settings: %v", err)
	}

	_, err := ConvertRentalRequest(context.Background(), app, rr.Id, nil)
	if !errors.Is(err, ErrPricingUnavailable) {
		t.Errorf("error = %v, want ErrPricingUnavailable", err)
	}
	if n, _ := app.CountRecords("customers"); n != 0 {
		t.Errorf("created %d customers", n)
	}
}
