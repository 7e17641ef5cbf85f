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

type rentalRequestResponse struct {
	ID string `json:"id"`
	services.RentalRequest
	Status   string `json:"status"`
	Customer string `json:"customer,omitempty"`
	Job      string `json:"job,omitempty"`
	Created  string `json:"created"`
}

func rentalRequestToResponse(rec *core.Record) rentalRequestResponse {
	return rentalRequestResponse{
		ID:            rec.Id,
		RentalRequest: services.RequestFromRecord(rec),
		Status:        rec.GetString("status"),
		Customer:      rec.GetString("customer"),
		Job:           rec.GetString("job"),
		Created:       rec.GetString("created"),
	}
}

// HandleRentalRequestList returns stored requests, newest first. ?status=
// narrows to new or converted.
func HandleRentalRequestList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}
		if status := e.Request.URL.Query().Get("status"); status != "" {
			filter = "status = {:status}"
			params["status"] = status
		}

		records, err := app.FindRecordsByFilter("rental_requests", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("rental_requests: list: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to load rental requests")
		}

		out := make([]rentalRequestResponse, 0, len(records))
		for _, r := range records {
			out = append(out, rentalRequestToResponse(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleRentalRequestSubmit stores a public request after validating every
// page.
func HandleRentalRequestSubmit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		in := services.NewRentalRequest()
		if err := e.BindBody(&in); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}

		rec, fields, err := services.SaveRentalRequest(app, in)
		if err != nil {
			log.Printf("rental_requests: save: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to submit rental request")
		}
		if fields != nil {
			return jsonFieldErrors(e, fields)
		}

		log.Printf("rental_requests: received %s", rec.Id)
		return e.JSON(http.StatusCreated, rentalRequestToResponse(rec))
	}
}

// HandleRentalRequestValidate checks one page of the form (?page=1|2) so the
// client can gate its Next button on the same rules the server applies.
func HandleRentalRequestValidate() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		page, err := strconv.Atoi(e.Request.URL.Query().Get("page"))
		if err != nil || page < 1 || page > services.RentalRequestPages {
			return jsonError(e, http.StatusBadRequest, "Invalid page")
		}

		in := services.NewRentalRequest()
		if err := e.BindBody(&in); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		in.Normalize()

		fields := in.ValidatePage(page)
		return e.JSON(http.StatusOK, map[string]any{
			"page":   page,
			"valid":  len(fields) == 0,
			"fields": fields,
		})
	}
}

// HandleRentalRequestConvert turns a request into a customer and a New job.
func HandleRentalRequestConvert(app *pocketbase.PocketBase, distance services.DistanceLookup) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		requestID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("rental_requests", requestID); err != nil {
			return jsonError(e, http.StatusNotFound, "Rental request not found")
		}

		result, err := services.ConvertRentalRequest(e.Request.Context(), app, requestID, distance)
		if errors.Is(err, services.ErrAlreadyConverted) {
			return jsonError(e, http.StatusConflict, "Rental request already converted")
		}
		if errors.Is(err, services.ErrPricingUnavailable) {
			log.Printf("rental_requests: convert %s: %v", requestID, err)
			return jsonError(e, http.StatusServiceUnavailable, msgReferenceData)
		}
		if err != nil {
			log.Printf("rental_requests: convert %s: %v", requestID, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to convert rental request")
		}

		job, err := jobToResponse(result.Job)
		if err != nil {
			log.Printf("rental_requests: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Internal error")
		}

		log.Printf("rental_requests: converted %s -> customer %s job %s", requestID, result.Customer.Id, result.Job.Id)
		return e.JSON(http.StatusCreated, map[string]any{
			"request":  rentalRequestToResponse(result.Request),
			"customer": customerToResponse(result.Customer),
			"job":      job,
		})
	}
}
