package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"rampcrm/services"
)

// HandlePricingGet returns the configured pricing variables.
func HandlePricingGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rates, err := services.FetchPricingVariables(app)
		if err != nil {
			log.Printf("settings: %v", err)
			return jsonError(e, http.StatusServiceUnavailable, msgReferenceData)
		}
		return e.JSON(http.StatusOK, rates)
	}
}

// HandlePricingUpdate replaces the pricing variables. Stored jobs keep their
// prices until they are next edited.
func HandlePricingUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in services.PricingRates
		if err := e.BindBody(&in); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		if err := in.Validate(); err != nil {
			return jsonFieldErrors(e, validationFields(err))
		}

		rates, err := services.UpdatePricingVariables(app, in)
		if err != nil {
			log.Printf("settings: update: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to update pricing variables")
		}

		log.Printf("settings: pricing updated %+v", rates)
		return e.JSON(http.StatusOK, rates)
	}
}
