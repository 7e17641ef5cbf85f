package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// dropPricingSettings deletes the pricing_settings collection so rate lookups fail.
func dropPricingSettings(t *testing.T, app *pocketbase.PocketBase) {
	t.Helper()
	col, err := app.FindCollectionByNameOrId("pricing_settings")
	if err != nil {
		t.Fatalf("find pricing_settings: %v", err)
	}
	if err := app.Delete(col); err != nil {
		t.Fatalf("delete pricing_settings: %v", err)
	}
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeJSON unmarshals the recorded body into v.
func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
}

// fakeDistance returns a fixed distance or error.
type fakeDistance struct {
	miles float64
	err   error
	calls int
}

func (f *fakeDistance) DistanceFromWarehouse(ctx context.Context, address string) (float64, error) {
	f.calls++
	return f.miles, f.err
}
