package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// EnsureStaff creates the staff login from the configured credentials when
// no staff account with that email exists. Missing credentials are skipped.
func EnsureStaff(app *pocketbase.PocketBase, email, password string) error {
	if email == "" || password == "" {
		log.Println("seed: STAFF_EMAIL or STAFF_PASSWORD not set, skipping staff account")
		return nil
	}

	if _, err := app.FindAuthRecordByEmail("staff", email); err == nil {
		return nil
	}

	col, err := app.FindCollectionByNameOrId("staff")
	if err != nil {
		return fmt.Errorf("seed: could not find staff collection: %w", err)
	}

	r := core.NewRecord(col)
	r.SetEmail(email)
	r.SetPassword(password)
	r.SetVerified(true)
	r.Set("name", "Staff")
	if err := app.Save(r); err != nil {
		return fmt.Errorf("seed: save staff %q: %w", email, err)
	}

	log.Printf("seed: created staff account %s\n", email)
	return nil
}
