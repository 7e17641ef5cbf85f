// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"rampcrm/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestCustomer creates a customer record and returns it.
func CreateTestCustomer(t *testing.T, app *pocketbase.PocketBase, firstName, lastName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("customers")
	if err != nil {
		t.Fatalf("failed to find customers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("first_name", firstName)
	record.Set("last_name", lastName)
	record.Set("email", strings.ToLower(firstName)+"@example.com")
	record.Set("phone", "(214) 555-0100")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test customer: %v", err)
	}

	return record
}

// CreateTestJob creates a New job for the customer. fields override or add
// stored values, e.g. "components" or "distance_from_warehouse".
func CreateTestJob(t *testing.T, app *pocketbase.PocketBase, customerID string, fields map[string]any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("jobs")
	if err != nil {
		t.Fatalf("failed to find jobs collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("customer", customerID)
	record.Set("install_address", "123 Elm St, Denton, TX 76201")
	record.Set("status", "New")
	record.Set("components", []any{})
	for k, v := range fields {
		record.Set(k, v)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test job: %v", err)
	}

	return record
}

// SetTestRates stores the pricing settings record.
func SetTestRates(t *testing.T, app *pocketbase.PocketBase, deliveryPerMile, installPerComponent, rentalPerFoot float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("pricing_settings")
	if err != nil {
		t.Fatalf("failed to find pricing_settings collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("delivery_fee_per_mile", deliveryPerMile)
	record.Set("install_fee_per_component", installPerComponent)
	record.Set("rental_rate_per_foot", rentalPerFoot)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test pricing settings: %v", err)
	}

	return record
}

// CreateTestStaff creates a staff login.
func CreateTestStaff(t *testing.T, app *pocketbase.PocketBase, email, password string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("staff")
	if err != nil {
		t.Fatalf("failed to find staff collection: %v", err)
	}

	record := core.NewRecord(col)
	record.SetEmail(email)
	record.SetPassword(password)
	record.SetVerified(true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test staff: %v", err)
	}

	return record
}

// CreateTestRentalRequest stores a complete rental request with status new.
func CreateTestRentalRequest(t *testing.T, app *pocketbase.PocketBase, email string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("rental_requests")
	if err != nil {
		t.Fatalf("failed to find rental_requests collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("first_name", "Rita")
	record.Set("last_name", "Nguyen")
	record.Set("email", email)
	record.Set("phone", "(469) 555-0199")
	record.Set("know_ramp_length", "yes")
	record.Set("estimated_ramp_length", "16 ft")
	record.Set("know_rental_duration", "no")
	record.Set("installation_timeframe", "Within a week")
	record.Set("mobility_aids", []string{"Wheelchair"})
	record.Set("install_address", "77 Cedar Ln, Frisco, TX 75034")
	record.Set("status", "new")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test rental request: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
