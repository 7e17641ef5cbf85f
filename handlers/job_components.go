package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"rampcrm/services"
)

// loadJobEditor fetches the job named by the {id} path value and seeds an
// editor from it. A nil record means the error response has already been
// written; return the accompanying error.
func loadJobEditor(app *pocketbase.PocketBase, e *core.RequestEvent) (*core.Record, *services.JobEditor, error) {
	rec, err := app.FindRecordById("jobs", e.Request.PathValue("id"))
	if err != nil {
		return nil, nil, jsonError(e, http.StatusNotFound, "Job not found")
	}

	rates, err := ratesFor(app, e)
	if err != nil {
		log.Printf("jobs: rates: %v", err)
		return nil, nil, jsonError(e, http.StatusServiceUnavailable, msgReferenceData)
	}

	draft, err := services.DraftFromRecord(rec)
	if err != nil {
		log.Printf("jobs: %v", err)
		return nil, nil, jsonError(e, http.StatusInternalServerError, "Stored job is unreadable")
	}
	return rec, services.NewJobEditor(draft, rates), nil
}

// saveJobEditor persists the editor's draft onto rec and responds with the job.
func saveJobEditor(app *pocketbase.PocketBase, e *core.RequestEvent, rec *core.Record, editor *services.JobEditor) error {
	services.ApplyDraft(rec, editor.Draft())
	if err := app.Save(rec); err != nil {
		log.Printf("jobs: save %s: %v", rec.Id, err)
		return jsonError(e, http.StatusInternalServerError, "Failed to save job")
	}
	return respondJob(app, e, http.StatusOK, rec)
}

// HandleJobAddComponent appends a component to a stored job.
func HandleJobAddComponent(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in componentInput
		if err := e.BindBody(&in); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		comp, err := services.ParseComponent(in.Type, in.Quantity)
		if err != nil {
			return jsonFieldErrors(e, map[string]string{"component": err.Error()})
		}

		rec, editor, err := loadJobEditor(app, e)
		if rec == nil {
			return err
		}
		editor.AddComponent(comp)

		log.Printf("jobs: %s add component %s", rec.Id, comp)
		return saveJobEditor(app, e, rec, editor)
	}
}

// HandleJobRemoveComponent removes the component at {index} from a stored job.
func HandleJobRemoveComponent(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		index, err := strconv.Atoi(e.Request.PathValue("index"))
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid component index")
		}

		rec, editor, err := loadJobEditor(app, e)
		if rec == nil {
			return err
		}

		removed, err := editor.RemoveComponent(index)
		if errors.Is(err, services.ErrComponentIndex) {
			return jsonError(e, http.StatusBadRequest, err.Error())
		}
		if err != nil {
			return jsonError(e, http.StatusInternalServerError, err.Error())
		}

		log.Printf("jobs: %s remove component %d (%s)", rec.Id, index, removed)
		return saveJobEditor(app, e, rec, editor)
	}
}
