// Package authz holds the single authorization predicate for the review
// queue. Client and server both go through it; the server check is the one
// that matters, the client check only short-circuits doomed requests.
package authz

import (
	"strings"

	"github.com/bookbazaar/bookbazaar/config"
)

// IsAdmin reports whether email identifies the review-queue admin.
// Matching is case-insensitive.
func IsAdmin(email string) bool {
	if email == "" {
		return false
	}
	if config.Opts == nil {
		config.GetDefaultOptions()
	}
	return strings.EqualFold(email, config.Opts.AdminEmail)
}
