package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"rampcrm/services"
)

type overrideInput struct {
	Enabled bool `json:"enabled"`
}

// feesInput holds manual fees. Unsent fees keep their stored value.
type feesInput struct {
	DeliveryFee *float64 `json:"deliveryFee"`
	InstallFee  *float64 `json:"installFee"`
	RentalRate  *float64 `json:"rentalRate"`
}

// HandleJobOverride turns manual pricing on or off for a stored job.
func HandleJobOverride(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in overrideInput
		if err := e.BindBody(&in); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}

		rec, editor, err := loadJobEditor(app, e)
		if rec == nil {
			return err
		}
		editor.SetOverride(in.Enabled)
		return saveJobEditor(app, e, rec, editor)
	}
}

// HandleJobFees stores manually entered fees. Only valid with override on.
func HandleJobFees(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in feesInput
		if err := e.BindBody(&in); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}

		rec, editor, err := loadJobEditor(app, e)
		if rec == nil {
			return err
		}
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
		if !editor.SetFees(delivery, install, rental) {
			return jsonError(e, http.StatusConflict, "Enable override pricing before editing fees")
		}
		return saveJobEditor(app, e, rec, editor)
	}
}

// HandleJobDistance looks up the driving distance for the job's install
// address and re-prices the job.
func HandleJobDistance(app *pocketbase.PocketBase, distance services.DistanceLookup) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, editor, err := loadJobEditor(app, e)
		if rec == nil {
			return err
		}

		miles, err := distance.DistanceFromWarehouse(e.Request.Context(), rec.GetString("install_address"))
		if err != nil {
			log.Printf("jobs: distance for %s: %v", rec.Id, err)
			if errors.Is(err, services.ErrDistanceUnavailable) {
				return jsonError(e, http.StatusBadGateway, err.Error())
			}
			return jsonError(e, http.StatusBadGateway, "Distance lookup failed")
		}

		editor.SetDistance(miles)
		return saveJobEditor(app, e, rec, editor)
	}
}
