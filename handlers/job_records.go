package handlers

import (
	"slices"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"rampcrm/collections"
	"rampcrm/services"
)

// jobResponse is a stored job as the API returns it. The pricing draft is
// flattened into the top level.
type jobResponse struct {
	ID             string `json:"id"`
	Customer       string `json:"customer"`
	CustomerName   string `json:"customerName,omitempty"`
	InstallAddress string `json:"installAddress"`
	Status         string `json:"status"`
	ScheduledDate  string `json:"scheduledDate"`
	Notes          string `json:"notes"`
	services.JobDraft
	Created string `json:"created"`
	Updated string `json:"updated"`
}

// componentInput is a component as the client sends it.
type componentInput struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// jobInput is the create/update body. Nil fields keep their stored value
// on update.
type jobInput struct {
	Customer              *string           `json:"customer"`
	InstallAddress        *string           `json:"installAddress"`
	Status                *string           `json:"status"`
	ScheduledDate         *string           `json:"scheduledDate"`
	Notes                 *string           `json:"notes"`
	Components            *[]componentInput `json:"components"`
	DistanceFromWarehouse *float64          `json:"distanceFromWarehouse"`
	OverridePricing       *bool             `json:"overridePricing"`
	DeliveryFee           *float64          `json:"deliveryFee"`
	InstallFee            *float64          `json:"installFee"`
	RentalRate            *float64          `json:"rentalRate"`
}

func jobToResponse(rec *core.Record) (jobResponse, error) {
	draft, err := services.DraftFromRecord(rec)
	if err != nil {
		return jobResponse{}, err
	}
	resp := jobResponse{
		ID:             rec.Id,
		Customer:       rec.GetString("customer"),
		InstallAddress: rec.GetString("install_address"),
		Status:         rec.GetString("status"),
		ScheduledDate:  rec.GetString("scheduled_date"),
		Notes:          rec.GetString("notes"),
		JobDraft:       draft,
		Created:        rec.GetString("created"),
		Updated:        rec.GetString("updated"),
	}
	if c := rec.ExpandedOne("customer"); c != nil {
		resp.CustomerName = strings.TrimSpace(c.GetString("first_name") + " " + c.GetString("last_name"))
	}
	return resp, nil
}

// parseComponents validates client components. Errors are keyed
// "components.<index>".
func parseComponents(in []componentInput) ([]services.RampComponent, map[string]string) {
	out := make([]services.RampComponent, 0, len(in))
	var fields map[string]string
	for i, c := range in {
		comp, err := services.ParseComponent(c.Type, c.Quantity)
		if err != nil {
			if fields == nil {
				fields = make(map[string]string)
			}
			fields["components."+strconv.Itoa(i)] = err.Error()
			continue
		}
		out = append(out, comp)
	}
	return out, fields
}

// buildEditor seeds a job editor from the stored draft with the supplied
// pricing inputs applied in order: components, distance, override, fees.
func buildEditor(base services.JobDraft, in jobInput, rates services.PricingRates) (*services.JobEditor, map[string]string) {
	fields := make(map[string]string)

	if in.Components != nil {
		comps, errs := parseComponents(*in.Components)
		for k, v := range errs {
			fields[k] = v
		}
		base.Components = comps
	}
	if in.DistanceFromWarehouse != nil {
		if *in.DistanceFromWarehouse < 0 {
			fields["distanceFromWarehouse"] = "Distance cannot be negative"
		}
		base.DistanceFromWarehouse = *in.DistanceFromWarehouse
	}
	if len(fields) > 0 {
		return nil, fields
	}

	editor := services.NewJobEditor(base, rates)
	if in.OverridePricing != nil {
		editor.SetOverride(*in.OverridePricing)
	}
	if editor.Draft().OverridePricing {
		d := editor.Draft()
		delivery, install, rental := d.DeliveryFee, d.InstallFee, d.RentalRate
		if in.DeliveryFee != nil {
			delivery = *in.DeliveryFee
		}
		if in.InstallFee != nil {
			install = *in.InstallFee
		}
		if in.RentalRate != nil {
			rental = *in.RentalRate
		}
		editor.SetFees(delivery, install, rental)
	}
	return editor, nil
}

// applyJobFields copies the non-pricing job fields onto rec and validates
// them.
func applyJobFields(app core.App, rec *core.Record, in jobInput) map[string]string {
	fields := make(map[string]string)

	if in.Customer != nil {
		id := strings.TrimSpace(*in.Customer)
		if _, err := app.FindRecordById("customers", id); err != nil {
			fields["customer"] = "Customer not found"
		}
		rec.Set("customer", id)
	}
	if rec.GetString("customer") == "" {
		fields["customer"] = "Customer is required"
	}
	if in.InstallAddress != nil {
		rec.Set("install_address", strings.TrimSpace(*in.InstallAddress))
	}
	if in.Status != nil {
		rec.Set("status", *in.Status)
	}
	if rec.GetString("status") == "" {
		rec.Set("status", "New")
	}
	if !slices.Contains(collections.JobStatuses, rec.GetString("status")) {
		fields["status"] = "Invalid status"
	}
	if in.ScheduledDate != nil {
		date, err := collections.NormalizeScheduledDate(*in.ScheduledDate)
		if err != nil {
			fields["scheduledDate"] = "Scheduled date must be YYYY-MM-DD"
		}
		rec.Set("scheduled_date", date)
	}
	if in.Notes != nil {
		rec.Set("notes", *in.Notes)
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
