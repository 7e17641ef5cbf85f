package handlers

import (
	"log"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// customerInput is the create/update body. Nil fields are left unchanged on
// update.
type customerInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Notes     *string `json:"notes"`
}

type customerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
	Created   string `json:"created"`
	Updated   string `json:"updated"`
}

func customerToResponse(rec *core.Record) customerResponse {
	return customerResponse{
		ID:        rec.Id,
		FirstName: rec.GetString("first_name"),
		LastName:  rec.GetString("last_name"),
		Email:     rec.GetString("email"),
		Phone:     rec.GetString("phone"),
		Notes:     rec.GetString("notes"),
		Created:   rec.GetString("created"),
		Updated:   rec.GetString("updated"),
	}
}

// applyTo copies the provided fields onto rec and validates the result.
func (in customerInput) applyTo(rec *core.Record) map[string]string {
	set := func(field string, v *string) {
		if v != nil {
			rec.Set(field, strings.TrimSpace(*v))
		}
	}
	set("first_name", in.FirstName)
	set("last_name", in.LastName)
	set("email", in.Email)
	set("phone", in.Phone)
	set("notes", in.Notes)

	first := rec.GetString("first_name")
	last := rec.GetString("last_name")
	email := rec.GetString("email")
	err := validation.Errors{
		"firstName": validation.Validate(first, validation.Required.Error("First name is required")),
		"lastName":  validation.Validate(last, validation.Required.Error("Last name is required")),
		"email":     validation.Validate(email, is.EmailFormat.Error("Email is invalid")),
	}.Filter()
	if err != nil {
		return validationFields(err)
	}
	return nil
}

// HandleCustomerList returns all customers, newest first.
func HandleCustomerList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("customers", "id != ''", "-created", 0, 0)
		if err != nil {
			log.Printf("customers: list: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to load customers")
		}

		out := make([]customerResponse, 0, len(records))
		for _, r := range records {
			out = append(out, customerToResponse(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleCustomerGet returns one customer.
func HandleCustomerGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("customers", e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Customer not found")
		}
		return e.JSON(http.StatusOK, customerToResponse(rec))
	}
}

// HandleCustomerCreate stores a new customer.
func HandleCustomerCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in customerInput
		if err := e.BindBody(&in); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}

		col, err := app.FindCollectionByNameOrId("customers")
		if err != nil {
			log.Printf("customers: collection: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Internal error")
		}

		rec := core.NewRecord(col)
		if fields := in.applyTo(rec); fields != nil {
			return jsonFieldErrors(e, fields)
		}
		if err := app.Save(rec); err != nil {
			log.Printf("customers: create: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to create customer")
		}

		log.Printf("customers: created %s", rec.Id)
		return e.JSON(http.StatusCreated, customerToResponse(rec))
	}
}

// HandleCustomerUpdate updates the supplied customer fields.
func HandleCustomerUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("customers", e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Customer not found")
		}

		var in customerInput
		if err := e.BindBody(&in); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		if fields := in.applyTo(rec); fields != nil {
			return jsonFieldErrors(e, fields)
		}
		if err := app.Save(rec); err != nil {
			log.Printf("customers: update %s: %v", rec.Id, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to update customer")
		}
		return e.JSON(http.StatusOK, customerToResponse(rec))
	}
}

// HandleCustomerDelete removes a customer. A customer with jobs is only
// deleted with ?delete_jobs=true, which removes the jobs as well.
func HandleCustomerDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customerID := e.Request.PathValue("id")
		rec, err := app.FindRecordById("customers", customerID)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Customer not found")
		}

		jobs, err := app.FindRecordsByFilter("jobs", "customer = {:customerId}", "", 0, 0,
			map[string]any{"customerId": customerID})
		if err != nil {
			log.Printf("customers: jobs for %s: %v", customerID, err)
			return jsonError(e, http.StatusInternalServerError, "Internal error")
		}

		deleteJobs := e.Request.URL.Query().Get("delete_jobs") == "true"
		if len(jobs) > 0 && !deleteJobs {
			return e.JSON(http.StatusConflict, map[string]any{
				"error":    "Customer has jobs",
				"jobCount": len(jobs),
			})
		}

		err = app.RunInTransaction(func(txApp core.App) error {
			for _, job := range jobs {
				if err := txApp.Delete(job); err != nil {
					return err
				}
			}
			return txApp.Delete(rec)
		})
		if err != nil {
			log.Printf("customers: delete %s: %v", customerID, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to delete customer")
		}

		log.Printf("customers: deleted %s (delete_jobs=%v, job_count=%d)\n", customerID, deleteJobs, len(jobs))
		return e.NoContent(http.StatusNoContent)
	}
}
