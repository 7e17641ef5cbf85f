package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"rampcrm/services"
	"rampcrm/testhelpers"
)

func TestGetPricingRates_FromContext(t *testing.T) {
	expected := services.PricingRates{DeliveryFeePerMile: 2.5, InstallFeePerComponent: 15, RentalRatePerFoot: 3}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), PricingRatesKey, expected))

	got, ok := GetPricingRates(req)
	if !ok {
		t.Fatal("expected rates in context")
	}
	if got != expected {
		t.Errorf("got %+v, want %+v", got, expected)
	}
}

func TestGetPricingRates_NotInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := GetPricingRates(req); ok {
		t.Error("expected no rates")
	}
}

func TestPricingRatesMiddleware_StoresRates(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.SetTestRates(t, app, 2.5, 15, 3)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := PricingRatesMiddleware(app)(e); err != nil {
		t.Fatalf("middleware error: %v", err)
	}

	got, ok := GetPricingRates(e.Request)
	if !ok {
		t.Fatal("middleware did not store rates")
	}
	if got.RentalRatePerFoot != 3 || got.InstallFeePerComponent != 15 || got.DeliveryFeePerMile != 2.5 {
		t.Errorf("rates = %+v", got)
	}
}

func TestPricingRatesMiddleware_UnavailableIs503(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	dropPricingSettings(t, app)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
	rec := httptest.NewRecorder()

	if err := PricingRatesMiddleware(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), msgReferenceData)
}
