package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"rampcrm/collections"
	"rampcrm/config"
	"rampcrm/demo"
	"rampcrm/handlers"
	"rampcrm/services"
)

func main() {
	cfg := config.Load()
	app := pocketbase.New()
	distance := services.NewDistanceService(cfg.Distance(), nil)

	// Create collections, seed and migrate on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.EnsureStaff(app, cfg.StaffEmail, cfg.StaffPassword); err != nil {
			log.Printf("Warning: staff account setup failed: %v", err)
		}
		if cfg.SeedDemoData {
			if err := demo.Seed(app); err != nil {
				log.Printf("Warning: seed data failed: %v", err)
			}
		}
		if err := collections.MigrateScheduledDates(app); err != nil {
			log.Printf("Warning: scheduled date migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		rates := handlers.PricingRatesMiddleware(app)

		// ── Public ───────────────────────────────────────────────
		se.Router.GET("/rental-request", handlers.HandleRentalFormPage())
		se.Router.POST("/rental-request", handlers.HandleRentalFormStep(app))

		public := se.Router.Group("/api")
		public.POST("/auth/login", handlers.HandleLogin(app))
		public.POST("/rental-requests", handlers.HandleRentalRequestSubmit(app))
		public.POST("/rental-requests/validate", handlers.HandleRentalRequestValidate())

		// ── Staff only ───────────────────────────────────────────
		api := se.Router.Group("/api")
		api.Bind(apis.RequireAuth("staff"))

		api.GET("/dashboard", handlers.HandleDashboard(app))

		// Customers
		api.GET("/customers", handlers.HandleCustomerList(app))
		api.POST("/customers", handlers.HandleCustomerCreate(app))
		api.GET("/customers/{id}", handlers.HandleCustomerGet(app))
		api.PUT("/customers/{id}", handlers.HandleCustomerUpdate(app))
		api.DELETE("/customers/{id}", handlers.HandleCustomerDelete(app))

		// Jobs
		api.GET("/jobs", handlers.HandleJobList(app))
		api.GET("/jobs/export/excel", handlers.HandleJobsExportExcel(app))
		api.POST("/jobs", handlers.HandleJobCreate(app)).BindFunc(rates)
		api.POST("/jobs/quote", handlers.HandleJobQuote(app)).BindFunc(rates)
		api.GET("/jobs/{id}", handlers.HandleJobGet(app))
		api.PUT("/jobs/{id}", handlers.HandleJobUpdate(app)).BindFunc(rates)
		api.DELETE("/jobs/{id}", handlers.HandleJobDelete(app))
		api.GET("/jobs/{id}/quote.pdf", handlers.HandleJobQuotePDF(app))

		// Job pricing actions
		api.POST("/jobs/{id}/components", handlers.HandleJobAddComponent(app)).BindFunc(rates)
		api.DELETE("/jobs/{id}/components/{index}", handlers.HandleJobRemoveComponent(app)).BindFunc(rates)
		api.PUT("/jobs/{id}/override", handlers.HandleJobOverride(app)).BindFunc(rates)
		api.PUT("/jobs/{id}/fees", handlers.HandleJobFees(app)).BindFunc(rates)
		api.POST("/jobs/{id}/distance", handlers.HandleJobDistance(app, distance)).BindFunc(rates)

		// Settings
		api.GET("/settings/pricing", handlers.HandlePricingGet(app))
		api.PUT("/settings/pricing", handlers.HandlePricingUpdate(app))

		// Rental requests
		api.GET("/rental-requests", handlers.HandleRentalRequestList(app))
		api.POST("/rental-requests/{id}/convert", handlers.HandleRentalRequestConvert(app, distance)).BindFunc(rates)

		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/rental-request")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
