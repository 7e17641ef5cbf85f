package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"rampcrm/services"
)

type contextKey string

const PricingRatesKey contextKey = "pricingRates"

// GetPricingRates extracts the rates loaded by PricingRatesMiddleware.
func GetPricingRates(r *http.Request) (services.PricingRates, bool) {
	rates, ok := r.Context().Value(PricingRatesKey).(services.PricingRates)
	return rates, ok
}

// PricingRatesMiddleware loads the pricing settings once per request and
// stores them in the request context. Requests are rejected with 503 when
// the settings cannot be read so no job is priced with zero rates.
func PricingRatesMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rates, err := services.FetchPricingVariables(app)
		if err != nil {
			log.Printf("middleware: pricing settings unavailable: %v", err)
			return jsonError(e, http.StatusServiceUnavailable, msgReferenceData)
		}

		ctx := context.WithValue(e.Request.Context(), PricingRatesKey, rates)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

// ratesFor returns the request's rates, loading them when the middleware
// did not run.
func ratesFor(app *pocketbase.PocketBase, e *core.RequestEvent) (services.PricingRates, error) {
	if rates, ok := GetPricingRates(e.Request); ok {
		return rates, nil
	}
	return services.FetchPricingVariables(app)
}
