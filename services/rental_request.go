package services

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// RentalRequestPages is the number of pages in the intake form.
const RentalRequestPages = 2

var usPhonePattern = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)

// InstallationTimeframeOptions are the choices offered on page 2.
var InstallationTimeframeOptions = []string{
	"Immediately",
	"Within a week",
	"Within two weeks",
	"Within a month",
	"No rush",
}

// MobilityAidOptions are the mobility aids a customer can select.
var MobilityAidOptions = []string{
	"Wheelchair",
	"Motorized scooter",
	"Walker/cane",
	"None",
}

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhoneNumber rewrites input holding exactly ten digits as
// (XXX) XXX-XXXX. Anything else is returned trimmed and unchanged.
func FormatPhoneNumber(raw string) string {
	raw = strings.TrimSpace(raw)
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) != 10 {
		return raw
	}
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}

func oneOf(options []string) []any {
	out := make([]any, len(options))
	for i, o := range options {
		out[i] = o
	}
	return out
}

// RentalRequest is a public ramp rental enquiry.
type RentalRequest struct {
	FirstName             string   `json:"firstName"`
	LastName              string   `json:"lastName"`
	Email                 string   `json:"email"`
	Phone                 string   `json:"phone"`
	KnowRampLength        string   `json:"knowRampLength"`
	EstimatedRampLength   string   `json:"estimatedRampLength"`
	KnowRentalDuration    string   `json:"knowRentalDuration"`
	RentalDuration        string   `json:"rentalDuration"`
	InstallationTimeframe string   `json:"installationTimeframe"`
	MobilityAids          []string `json:"mobilityAids"`
	InstallAddress        string   `json:"installAddress"`
}

// NewRentalRequest returns an empty request with the form defaults.
func NewRentalRequest() RentalRequest {
	return RentalRequest{KnowRampLength: "no", KnowRentalDuration: "no", MobilityAids: []string{}}
}

// Normalize trims whitespace and defaults the yes/no answers.
func (r *RentalRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = FormatPhoneNumber(r.Phone)
	r.EstimatedRampLength = strings.TrimSpace(r.EstimatedRampLength)
	r.RentalDuration = strings.TrimSpace(r.RentalDuration)
	r.InstallationTimeframe = strings.TrimSpace(r.InstallationTimeframe)
	r.InstallAddress = strings.TrimSpace(r.InstallAddress)
	if r.KnowRampLength != "yes" {
		r.KnowRampLength = "no"
	}
	if r.KnowRentalDuration != "yes" {
		r.KnowRentalDuration = "no"
	}
	aids := make([]string, 0, len(r.MobilityAids))
	for _, a := range r.MobilityAids {
		if a = strings.TrimSpace(a); a != "" {
			aids = append(aids, a)
		}
	}
	r.MobilityAids = aids
}

// ValidatePage returns field -> message for the given page (1 or 2). An
// empty map means the page is valid.
func (r RentalRequest) ValidatePage(page int) map[string]string {
	var err error
	switch page {
	case 1:
		err = validation.ValidateStruct(&r,
			validation.Field(&r.FirstName, validation.Required.Error("First name is required")),
			validation.Field(&r.LastName, validation.Required.Error("Last name is required")),
			validation.Field(&r.Email,
				validation.Required.Error("Email is required"),
				is.EmailFormat.Error("Email is invalid"),
			),
			validation.Field(&r.Phone,
				validation.Required.Error("Phone number is required"),
				validation.Match(usPhonePattern).Error("Phone number is invalid"),
			),
		)
	case 2:
		err = validation.ValidateStruct(&r,
			validation.Field(&r.EstimatedRampLength,
				validation.When(r.KnowRampLength == "yes",
					validation.Required.Error("Please provide an estimated ramp length"))),
			validation.Field(&r.RentalDuration,
				validation.When(r.KnowRentalDuration == "yes",
					validation.Required.Error("Please provide the rental duration"))),
			validation.Field(&r.InstallationTimeframe,
				validation.Required.Error("Please select when you need the ramp installed"),
				validation.In(oneOf(InstallationTimeframeOptions)...).Error("Please select a listed timeframe")),
			validation.Field(&r.MobilityAids,
				validation.Required.Error("Please select at least one mobility aid"),
				validation.Each(validation.In(oneOf(MobilityAidOptions)...).Error("Unknown mobility aid"))),
			validation.Field(&r.InstallAddress,
				validation.Required.Error("Installation address is required")),
		)
	}
	return fieldErrors(err)
}

// Validate checks every page and merges the errors.
func (r RentalRequest) Validate() map[string]string {
	all := make(map[string]string)
	for page := 1; page <= RentalRequestPages; page++ {
		for k, v := range r.ValidatePage(page) {
			all[k] = v
		}
	}
	return all
}

// fieldErrors flattens an ozzo validation error into field -> message.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	if err == nil {
		return out
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, fe := range verrs {
			out[field] = fe.Error()
		}
		return out
	}
	out["_"] = err.Error()
	return out
}

// RentalRequestWizard tracks page navigation for the intake form.
type RentalRequestWizard struct {
	Page    int
	Request RentalRequest
	Errors  map[string]string
}

// NewRentalRequestWizard starts on page 1 with an empty request.
func NewRentalRequestWizard() *RentalRequestWizard {
	return &RentalRequestWizard{Page: 1, Request: NewRentalRequest(), Errors: map[string]string{}}
}

// Next advances when the current page validates and reports whether it did.
func (w *RentalRequestWizard) Next() bool {
	w.Errors = w.Request.ValidatePage(w.Page)
	if len(w.Errors) > 0 {
		return false
	}
	if w.Page < RentalRequestPages {
		w.Page++
	}
	return true
}

// Back returns to the previous page without validating.
func (w *RentalRequestWizard) Back() {
	w.Errors = map[string]string{}
	if w.Page > 1 {
		w.Page--
	}
}

// ReadyToSubmit validates every page. On failure the wizard moves to the
// first page that has errors.
func (w *RentalRequestWizard) ReadyToSubmit() bool {
	for page := 1; page <= RentalRequestPages; page++ {
		if errs := w.Request.ValidatePage(page); len(errs) > 0 {
			w.Page = page
			w.Errors = errs
			return false
		}
	}
	w.Errors = map[string]string{}
	return true
}
