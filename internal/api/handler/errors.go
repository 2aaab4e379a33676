package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mcoot/lobbyregistry/internal/api/apierr"
	"github.com/mcoot/lobbyregistry/internal/api/middleware"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// pathID parses the uuid in the named path variable
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, NewInvalidRequestError(name + " must be a uuid")
	}
	return id, nil
}

// privateID returns the private id named by the request itself, falling back
// to the bearer credential
func privateID(r *http.Request, explicit, field string) (uuid.UUID, error) {
	if explicit != "" {
		id, err := uuid.Parse(explicit)
		if err != nil {
			return uuid.Nil, NewInvalidRequestError(field + " must be a uuid")
		}
		return id, nil
	}
	if id, ok := middleware.GetCredential(r.Context()); ok {
		return id, nil
	}
	return uuid.Nil, NewInvalidRequestError(field + " is required")
}
