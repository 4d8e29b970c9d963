package api

import (
	"fmt"

	"taskboard/internal/service"
)

// ErrUnauthorized is returned after the gateway's global 401 policy has
// already run: the persisted credentials are cleared and the OnUnauthorized
// hook has fired. Callers route to the login view instead of surfacing it
// as an ordinary error.
var ErrUnauthorized = service.ErrUnauthorized

// Error is a server-reported failure. Message carries the server's
// `{message}` payload verbatim when one was provided.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
