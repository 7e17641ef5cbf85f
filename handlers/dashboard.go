package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"rampcrm/collections"
)

type dashboardResponse struct {
	Customers        int64            `json:"customers"`
	Jobs             int64            `json:"jobs"`
	JobsByStatus     map[string]int64 `json:"jobsByStatus"`
	NewRequests      int64            `json:"newRentalRequests"`
	CompletedRevenue float64          `json:"completedRevenue"`
	OpenPipeline     float64          `json:"openPipeline"`
}

// HandleDashboard returns headline counts for the CRM home page.
func HandleDashboard(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var resp dashboardResponse
		var err error

		if resp.Customers, err = app.CountRecords("customers"); err != nil {
			log.Printf("dashboard: count customers: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to load dashboard")
		}
		if resp.Jobs, err = app.CountRecords("jobs"); err != nil {
			log.Printf("dashboard: count jobs: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to load dashboard")
		}

		resp.JobsByStatus = make(map[string]int64, len(collections.JobStatuses))
		for _, s := range collections.JobStatuses {
			n, err := app.CountRecords("jobs", dbx.HashExp{"status": s})
			if err != nil {
				log.Printf("dashboard: count %s jobs: %v", s, err)
				return jsonError(e, http.StatusInternalServerError, "Failed to load dashboard")
			}
			resp.JobsByStatus[s] = n
		}

		if resp.NewRequests, err = app.CountRecords("rental_requests", dbx.HashExp{"status": "new"}); err != nil {
			log.Printf("dashboard: count rental requests: %v", err)
		}

		if resp.CompletedRevenue, err = sumJobTotals(app, dbx.HashExp{"status": "Completed"}); err != nil {
			log.Printf("dashboard: revenue: %v", err)
		}
		open := dbx.NotIn("status", "Completed")
		if resp.OpenPipeline, err = sumJobTotals(app, open); err != nil {
			log.Printf("dashboard: pipeline: %v", err)
		}

		return e.JSON(http.StatusOK, resp)
	}
}

func sumJobTotals(app *pocketbase.PocketBase, where dbx.Expression) (float64, error) {
	var total float64
	err := app.DB().
		Select("COALESCE(SUM(total_cost), 0)").
		From("jobs").
		Where(where).
		Row(&total)
	return total, err
}
