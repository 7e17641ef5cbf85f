package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin exchanges staff credentials for an auth token.
func HandleLogin(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req loginRequest
		if err := e.BindBody(&req); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Password == "" {
			return jsonError(e, http.StatusBadRequest, "Email and password are required")
		}

		staff, err := app.FindAuthRecordByEmail("staff", req.Email)
		if err != nil || !staff.ValidatePassword(req.Password) {
			log.Printf("auth: failed login for %s", req.Email)
			return jsonError(e, http.StatusUnauthorized, "Invalid credentials")
		}

		token, err := staff.NewAuthToken()
		if err != nil {
			log.Printf("auth: token for %s: %v", staff.Id, err)
			return jsonError(e, http.StatusInternalServerError, "Could not create session")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"token": token,
			"staff": map[string]any{
				"id":    staff.Id,
				"email": staff.Email(),
				"name":  staff.GetString("name"),
			},
		})
	}
}
