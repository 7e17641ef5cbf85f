package handlers

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
)

const msgReferenceData = "Failed to fetch necessary data"

// errorBody is the JSON shape of every API error.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func jsonError(e *core.RequestEvent, status int, msg string) error {
	return e.JSON(status, errorBody{Error: msg})
}

func jsonFieldErrors(e *core.RequestEvent, fields map[string]string) error {
	return e.JSON(http.StatusBadRequest, errorBody{Error: "Validation failed", Fields: fields})
}

// validationFields flattens an ozzo error into field -> message. Non-field
// errors land under "_".
func validationFields(err error) map[string]string {
	out := make(map[string]string)
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for k, v := range verrs {
			out[k] = v.Error()
		}
		return out
	}
	out["_"] = err.Error()
	return out
}
