// Package templates renders the public server-side pages. Components live in
// .templ files; run `templ generate` after editing them.
package templates

import "rampcrm/services"

// RentalRequestView is the state of the intake form for one render.
type RentalRequestView struct {
	Page    int
	Pages   int
	Request services.RentalRequest
	Errors  map[string]string
}
