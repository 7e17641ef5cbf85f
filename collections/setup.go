package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// JobStatuses are the workflow states a job moves through.
var JobStatuses = []string{"New", "Quoted", "Scheduled", "Installed", "Completed"}

// RentalRequestStatuses track whether a public request became a job.
var RentalRequestStatuses = []string{"new", "converted"}

// Setup programmatically creates/ensures the staff, customers, jobs,
// pricing_settings and rental_requests collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureAuthCollection(app, "staff", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name"})
	})

	customers := ensureCollection(app, "customers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "first_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "last_name", Required: true})
		c.Fields.Add(&core.EmailField{Name: "email"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.TextField{Name: "notes"})
		addTimestamps(c)
	})

	jobs := ensureCollection(app, "jobs", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:         "customer",
			Required:     true,
			CollectionId: customers.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "install_address"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    JobStatuses,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "scheduled_date"})
		c.Fields.Add(&core.TextField{Name: "notes"})
		c.Fields.Add(&core.JSONField{Name: "components"})
		c.Fields.Add(&core.NumberField{Name: "total_ramp_length", OnlyInt: true})
		c.Fields.Add(&core.NumberField{Name: "total_landings", OnlyInt: true})
		c.Fields.Add(&core.NumberField{Name: "distance_from_warehouse"})
		c.Fields.Add(&core.BoolField{Name: "override_pricing"})
		c.Fields.Add(&core.NumberField{Name: "delivery_fee"})
		c.Fields.Add(&core.NumberField{Name: "install_fee"})
		c.Fields.Add(&core.NumberField{Name: "rental_rate"})
		c.Fields.Add(&core.NumberField{Name: "total_cost"})
		addTimestamps(c)
	})

	ensureCollection(app, "pricing_settings", func(c *core.Collection) {
		c.Fields.Add(&core.NumberField{Name: "delivery_fee_per_mile"})
		c.Fields.Add(&core.NumberField{Name: "install_fee_per_component"})
		c.Fields.Add(&core.NumberField{Name: "rental_rate_per_foot"})
		addTimestamps(c)
	})

	ensureCollection(app, "rental_requests", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "first_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "last_name", Required: true})
		c.Fields.Add(&core.EmailField{Name: "email", Required: true})
		c.Fields.Add(&core.TextField{Name: "phone", Required: true})
		c.Fields.Add(&core.SelectField{Name: "know_ramp_length", Values: []string{"yes", "no"}, MaxSelect: 1})
		c.Fields.Add(&core.TextField{Name: "estimated_ramp_length"})
		c.Fields.Add(&core.SelectField{Name: "know_rental_duration", Values: []string{"yes", "no"}, MaxSelect: 1})
		c.Fields.Add(&core.TextField{Name: "rental_duration"})
		c.Fields.Add(&core.TextField{Name: "installation_timeframe", Required: true})
		c.Fields.Add(&core.JSONField{Name: "mobility_aids"})
		c.Fields.Add(&core.TextField{Name: "install_address", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    RentalRequestStatuses,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.RelationField{Name: "customer", CollectionId: customers.Id, MaxSelect: 1})
		c.Fields.Add(&core.RelationField{Name: "job", CollectionId: jobs.Id, MaxSelect: 1})
		addTimestamps(c)
	})
}

func addTimestamps(c *core.Collection) {
	c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	return ensure(app, name, func(n string) *core.Collection { return core.NewBaseCollection(n) }, addFields)
}

// ensureAuthCollection is ensureCollection for auth collections.
func ensureAuthCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	return ensure(app, name, func(n string) *core.Collection { return core.NewAuthCollection(n) }, addFields)
}

func ensure(app *pocketbase.PocketBase, name string, newCollection func(string) *core.Collection, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := newCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
