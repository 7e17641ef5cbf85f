package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"rampcrm/services"
	"rampcrm/templates"
)

// HandleRentalFormPage renders the first page of the public intake form.
func HandleRentalFormPage() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		w := services.NewRentalRequestWizard()
		return renderRentalForm(e, w)
	}
}

// HandleRentalFormStep applies a Back, Next or Submit action posted from the
// intake form.
func HandleRentalFormStep(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}
		form := e.Request.PostForm

		w := services.NewRentalRequestWizard()
		if page, err := strconv.Atoi(form.Get("page")); err == nil && page >= 1 && page <= services.RentalRequestPages {
			w.Page = page
		}
		w.Request = services.RentalRequest{
			FirstName:             form.Get("firstName"),
			LastName:              form.Get("lastName"),
			Email:                 form.Get("email"),
			Phone:                 form.Get("phone"),
			KnowRampLength:        form.Get("knowRampLength"),
			EstimatedRampLength:   form.Get("estimatedRampLength"),
			KnowRentalDuration:    form.Get("knowRentalDuration"),
			RentalDuration:        form.Get("rentalDuration"),
			InstallationTimeframe: form.Get("installationTimeframe"),
			MobilityAids:          form["mobilityAids"],
			InstallAddress:        form.Get("installAddress"),
		}
		w.Request.Normalize()

		switch form.Get("action") {
		case "back":
			w.Back()
		case "submit":
			if !w.ReadyToSubmit() {
				return renderRentalForm(e, w)
			}
			rec, fields, err := services.SaveRentalRequest(app, w.Request)
			if err != nil {
				log.Printf("rental_form: save: %v", err)
				return e.String(http.StatusInternalServerError, "Failed to submit rental request")
			}
			if fields != nil {
				w.Errors = fields
				return renderRentalForm(e, w)
			}
			log.Printf("rental_form: received %s", rec.Id)
			return templates.RentalRequestThanks(w.Request.FirstName).Render(e.Request.Context(), e.Response)
		default:
			w.Next()
		}
		return renderRentalForm(e, w)
	}
}

func renderRentalForm(e *core.RequestEvent, w *services.RentalRequestWizard) error {
	view := templates.RentalRequestView{
		Page:    w.Page,
		Pages:   services.RentalRequestPages,
		Request: w.Request,
		Errors:  w.Errors,
	}
	return templates.RentalRequestPage(view).Render(e.Request.Context(), e.Response)
}
