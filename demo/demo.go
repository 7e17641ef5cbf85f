// Package demo seeds a fresh install with sample customers and jobs.
package demo

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"rampcrm/services"
)

// Rates are stored when no pricing settings exist yet.
var Rates = services.PricingRates{
	DeliveryFeePerMile:     2.5,
	InstallFeePerComponent: 15,
	RentalRatePerFoot:      3,
}

type customerDef struct {
	firstName string
	lastName  string
	email     string
	phone     string
	notes     string
	jobs      []jobDef
}

type jobDef struct {
	installAddress string
	status         string
	scheduledDate  string
	notes          string
	components     []services.RampComponent
	distance       float64
}

var customers = []customerDef{
	{
		firstName: "Margaret",
		lastName:  "Ellis",
		email:     "margaret.ellis@example.com",
		phone:     "(214) 555-0142",
		notes:     "Prefers morning installs. Side gate code 4412.",
		jobs: []jobDef{{
			installAddress: "2217 Oak Hollow Dr, Denton, TX 76209",
			status:         "Scheduled",
			scheduledDate:  "2026-11-03",
			components: []services.RampComponent{
				{Type: services.ComponentRS5, Quantity: 2},
				{Type: services.ComponentL45, Quantity: 1},
			},
			distance: 10,
		}},
	},
	{
		firstName: "Luis",
		lastName:  "Ortega",
		email:     "lortega@example.com",
		phone:     "(972) 555-0187",
		jobs: []jobDef{
			{
				installAddress: "408 Juniper Ct, Lewisville, TX 75067",
				status:         "Completed",
				scheduledDate:  "2026-08-14",
				notes:          "Ramp returned in good condition.",
				components: []services.RampComponent{
					{Type: services.ComponentRS8, Quantity: 1},
					{Type: services.ComponentRS4, Quantity: 1},
					{Type: services.ComponentL55, Quantity: 2},
				},
				distance: 4.2,
			},
			{
				installAddress: "408 Juniper Ct, Lewisville, TX 75067",
				status:         "New",
				distance:       4.2,
			},
		},
	},
}

// Seed inserts demo pricing, customers and jobs. It is safe to call on
// every startup because it returns early if any customers already exist.
// Jobs are priced with the stored rates.
func Seed(app *pocketbase.PocketBase) error {
	customersCol, err := app.FindCollectionByNameOrId("customers")
	if err != nil {
		return fmt.Errorf("seed: could not find customers collection: %w", err)
	}
	existing, err := app.FindAllRecords(customersCol)
	if err != nil {
		return fmt.Errorf("seed: could not query customers: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("seed: customers collection is empty, inserting demo data")

	jobsCol, err := app.FindCollectionByNameOrId("jobs")
	if err != nil {
		return fmt.Errorf("seed: could not find jobs collection: %w", err)
	}

	settings, err := app.FindAllRecords("pricing_settings")
	if err != nil {
		return fmt.Errorf("seed: could not query pricing_settings: %w", err)
	}
	if len(settings) == 0 {
		if _, err := services.UpdatePricingVariables(app, Rates); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	rates, err := services.FetchPricingVariables(app)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	for _, cd := range customers {
		c := core.NewRecord(customersCol)
		c.Set("first_name", cd.firstName)
		c.Set("last_name", cd.lastName)
		c.Set("email", cd.email)
		c.Set("phone", cd.phone)
		c.Set("notes", cd.notes)
		if err := app.Save(c); err != nil {
			return fmt.Errorf("seed: save customer %s %s: %w", cd.firstName, cd.lastName, err)
		}

		for _, jd := range cd.jobs {
			editor := services.NewJobEditor(services.JobDraft{
				Components:            jd.components,
				DistanceFromWarehouse: jd.distance,
			}, rates)

			j := core.NewRecord(jobsCol)
			j.Set("customer", c.Id)
			j.Set("install_address", jd.installAddress)
			j.Set("status", jd.status)
			j.Set("scheduled_date", jd.scheduledDate)
			j.Set("notes", jd.notes)
			services.ApplyDraft(j, editor.Draft())
			if err := app.Save(j); err != nil {
				return fmt.Errorf("seed: save job at %q: %w", jd.installAddress, err)
			}
		}
	}

	log.Printf("seed: inserted %d demo customers\n", len(customers))
	return nil
}
