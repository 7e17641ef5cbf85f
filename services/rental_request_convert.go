package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

var (
	// ErrAlreadyConverted is returned when a rental request already has a job.
	ErrAlreadyConverted = errors.New("rental request already converted")
	// ErrPricingUnavailable is returned when the pricing settings cannot be read.
	ErrPricingUnavailable = errors.New("pricing settings unavailable")
)

// ConversionResult links a converted request to the records it produced.
type ConversionResult struct {
	Request  *core.Record
	Customer *core.Record
	Job      *core.Record
}

// RequestFromRecord reads a stored rental request.
func RequestFromRecord(rec *core.Record) RentalRequest {
	r := RentalRequest{
		FirstName:             rec.GetString("first_name"),
		LastName:              rec.GetString("last_name"),
		Email:                 rec.GetString("email"),
		Phone:                 rec.GetString("phone"),
		KnowRampLength:        rec.GetString("know_ramp_length"),
		EstimatedRampLength:   rec.GetString("estimated_ramp_length"),
		KnowRentalDuration:    rec.GetString("know_rental_duration"),
		RentalDuration:        rec.GetString("rental_duration"),
		InstallationTimeframe: rec.GetString("installation_timeframe"),
		InstallAddress:        rec.GetString("install_address"),
	}
	_ = rec.UnmarshalJSONField("mobility_aids", &r.MobilityAids)
	if r.MobilityAids == nil {
		r.MobilityAids = []string{}
	}
	return r
}

// SaveRentalRequest normalises, validates and stores a new request. The
// returned map holds field errors when validation fails.
func SaveRentalRequest(app *pocketbase.PocketBase, r RentalRequest) (*core.Record, map[string]string, error) {
	r.Normalize()
	if errs := r.Validate(); len(errs) > 0 {
		return nil, errs, nil
	}

	col, err := app.FindCollectionByNameOrId("rental_requests")
	if err != nil {
		return nil, nil, fmt.Errorf("rental_requests collection: %w", err)
	}

	rec := core.NewRecord(col)
	rec.Set("first_name", r.FirstName)
	rec.Set("last_name", r.LastName)
	rec.Set("email", r.Email)
	rec.Set("phone", r.Phone)
	rec.Set("know_ramp_length", r.KnowRampLength)
	rec.Set("estimated_ramp_length", r.EstimatedRampLength)
	rec.Set("know_rental_duration", r.KnowRentalDuration)
	rec.Set("rental_duration", r.RentalDuration)
	rec.Set("installation_timeframe", r.InstallationTimeframe)
	rec.Set("mobility_aids", r.MobilityAids)
	rec.Set("install_address", r.InstallAddress)
	rec.Set("status", "new")

	if err := app.Save(rec); err != nil {
		return nil, nil, fmt.Errorf("save rental request: %w", err)
	}
	return rec, nil, nil
}

// ConvertRentalRequest creates a customer and a New job from a stored
// request and marks the request converted. The distance is looked up when
// distance is non-nil; a failed lookup leaves the job at zero miles.
func ConvertRentalRequest(ctx context.Context, app *pocketbase.PocketBase, requestID string, distance DistanceLookup) (*ConversionResult, error) {
	reqRec, err := app.FindRecordById("rental_requests", requestID)
	if err != nil {
		return nil, fmt.Errorf("rental request %s: %w", requestID, err)
	}
	if reqRec.GetString("status") == "converted" {
		return nil, ErrAlreadyConverted
	}

	rates, err := FetchPricingVariables(app)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
	}

	r := RequestFromRecord(reqRec)

	var miles float64
	if distance != nil {
		miles, err = distance.DistanceFromWarehouse(ctx, r.InstallAddress)
		if err != nil {
			log.Printf("rental_request: distance lookup for %s failed: %v", requestID, err)
			miles = 0
		}
	}
	editor := NewJobEditor(JobDraft{}, rates)
	editor.SetDistance(miles)

	result := &ConversionResult{Request: reqRec}
	err = app.RunInTransaction(func(txApp core.App) error {
		customersCol, err := txApp.FindCollectionByNameOrId("customers")
		if err != nil {
			return err
		}
		jobsCol, err := txApp.FindCollectionByNameOrId("jobs")
		if err != nil {
			return err
		}

		cust := core.NewRecord(customersCol)
		cust.Set("first_name", r.FirstName)
		cust.Set("last_name", r.LastName)
		cust.Set("email", r.Email)
		cust.Set("phone", r.Phone)
		cust.Set("notes", conversionNotes(r))
		if err := txApp.Save(cust); err != nil {
			return fmt.Errorf("save customer: %w", err)
		}

		job := core.NewRecord(jobsCol)
		job.Set("customer", cust.Id)
		job.Set("install_address", r.InstallAddress)
		job.Set("status", "New")
		job.Set("notes", "Created from rental request "+reqRec.Id)
		ApplyDraft(job, editor.Draft())
		if err := txApp.Save(job); err != nil {
			return fmt.Errorf("save job: %w", err)
		}

		reqRec.Set("status", "converted")
		reqRec.Set("customer", cust.Id)
		reqRec.Set("job", job.Id)
		if err := txApp.Save(reqRec); err != nil {
			return fmt.Errorf("update rental request: %w", err)
		}

		result.Customer = cust
		result.Job = job
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("convert rental request %s: %w", requestID, err)
	}
	return result, nil
}

func conversionNotes(r RentalRequest) string {
	notes := "Installation timeframe: " + r.InstallationTimeframe
	if r.KnowRampLength == "yes" {
		notes += "\nEstimated ramp length: " + r.EstimatedRampLength
	}
	if r.KnowRentalDuration == "yes" {
		notes += "\nRental duration: " + r.RentalDuration
	}
	if len(r.MobilityAids) > 0 {
		notes += "\nMobility aids: "
		for i, a := range r.MobilityAids {
			if i > 0 {
				notes += ", "
			}
			notes += a
		}
	}
	return notes
}
