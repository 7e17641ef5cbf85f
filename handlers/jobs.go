package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"rampcrm/services"
)

// HandleJobList returns all jobs, newest first, optionally narrowed with
// ?customerId=.
func HandleJobList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}
		if customerID := e.Request.URL.Query().Get("customerId"); customerID != "" {
			filter = "customer = {:customerId}"
			params["customerId"] = customerID
		}

		records, err := app.FindRecordsByFilter("jobs", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("jobs: list: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to load jobs")
		}
		if errs := app.ExpandRecords(records, []string{"customer"}, nil); len(errs) > 0 {
			log.Printf("jobs: expand customers: %v", errs)
		}

		out := make([]jobResponse, 0, len(records))
		for _, r := range records {
			resp, err := jobToResponse(r)
			if err != nil {
				log.Printf("jobs: %v", err)
				continue
			}
			out = append(out, resp)
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleJobGet returns one job.
func HandleJobGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("jobs", e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Job not found")
		}
		return respondJob(app, e, http.StatusOK, rec)
	}
}

// HandleJobCreate prices and stores a new job.
func HandleJobCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("jobs")
		if err != nil {
			log.Printf("jobs: collection: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Internal error")
		}
		return submitJob(app, e, core.NewRecord(col), http.StatusCreated)
	}
}

// HandleJobUpdate re-prices and stores an existing job.
func HandleJobUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("jobs", e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Job not found")
		}
		return submitJob(app, e, rec, http.StatusOK)
	}
}

// submitJob applies the request body to rec, recalculates pricing and saves.
// The stored job is unchanged when anything fails.
func submitJob(app *pocketbase.PocketBase, e *core.RequestEvent, rec *core.Record, status int) error {
	var in jobInput
	if err := e.BindBody(&in); err != nil {
		return jsonError(e, http.StatusBadRequest, "Invalid request body")
	}

	rates, err := ratesFor(app, e)
	if err != nil {
		log.Printf("jobs: rates: %v", err)
		return jsonError(e, http.StatusServiceUnavailable, msgReferenceData)
	}

	base := services.JobDraft{Components: []services.RampComponent{}}
	if !rec.IsNew() {
		base, err = services.DraftFromRecord(rec)
		if err != nil {
			log.Printf("jobs: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Stored job is unreadable")
		}
	}

	fields := applyJobFields(app, rec, in)
	editor, pricingFields := buildEditor(base, in, rates)
	for k, v := range pricingFields {
		if fields == nil {
			fields = make(map[string]string)
		}
		fields[k] = v
	}
	if len(fields) > 0 {
		return jsonFieldErrors(e, fields)
	}

	services.ApplyDraft(rec, editor.Draft())
	if err := app.Save(rec); err != nil {
		log.Printf("jobs: save: %v", err)
		return jsonError(e, http.StatusInternalServerError, "Failed to save job")
	}

	log.Printf("jobs: saved %s (total=%s)", rec.Id, services.FormatUSD(editor.Draft().TotalCost))
	return respondJob(app, e, status, rec)
}

// HandleJobQuote prices a draft without saving it.
func HandleJobQuote(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in jobInput
		if err := e.BindBody(&in); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}

		rates, err := ratesFor(app, e)
		if err != nil {
			log.Printf("jobs: rates: %v", err)
			return jsonError(e, http.StatusServiceUnavailable, msgReferenceData)
		}

		editor, fields := buildEditor(services.JobDraft{Components: []services.RampComponent{}}, in, rates)
		if fields != nil {
			return jsonFieldErrors(e, fields)
		}
		return e.JSON(http.StatusOK, editor.Draft())
	}
}

// HandleJobDelete removes a job.
func HandleJobDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jobID := e.Request.PathValue("id")
		rec, err := app.FindRecordById("jobs", jobID)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Job not found")
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("jobs: delete %s: %v", jobID, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to delete job")
		}
		log.Printf("jobs: deleted %s", jobID)
		return e.NoContent(http.StatusNoContent)
	}
}

func respondJob(app *pocketbase.PocketBase, e *core.RequestEvent, status int, rec *core.Record) error {
	if errs := app.ExpandRecord(rec, []string{"customer"}, nil); len(errs) > 0 {
		log.Printf("jobs: expand customer for %s: %v", rec.Id, errs)
	}
	resp, err := jobToResponse(rec)
	if err != nil {
		log.Printf("jobs: %v", err)
		return jsonError(e, http.StatusInternalServerError, "Stored job is unreadable")
	}
	return e.JSON(status, resp)
}
