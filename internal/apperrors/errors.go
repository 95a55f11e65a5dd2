package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}

// NewShowNotFoundError creates a specific error for when a show id is unknown upstream.
func NewShowNotFoundError(showID int) *ErrNotFound {
	return &ErrNotFound{
		Resource: "show",
		ID:       showID,
	}
}

// ErrNetwork is returned when the request never produced an HTTP response
// (DNS failure, refused connection, timeout, broken body).
type ErrNetwork struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *ErrNetwork) Error() string {
	return fmt.Sprintf("network failure requesting %s: %v", e.URL, e.Err)
}

// Unwrap exposes the transport error.
func (e *ErrNetwork) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrNetwork) Is(target error) bool {
	_, ok := target.(*ErrNetwork)
	return ok
}

// ErrHTTPStatus is returned when the upstream API answers with a non-2xx status.
type ErrHTTPStatus struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *ErrHTTPStatus) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
}

// Is matches any *ErrHTTPStatus, and *ErrNotFound when the status is 404.
func (e *ErrHTTPStatus) Is(target error) bool {
	switch target.(type) {
	case *ErrHTTPStatus:
		return true
	case *ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// Resource-specific messages shown to the user when a load fails.
const (
	ShowsUnavailableMessage    = "We couldn’t load the list of shows. Please check your connection and try again."
	EpisodesUnavailableMessage = "We couldn’t load episodes for this show. Please try again later."
)

// UserMessage converts a failure into the single human-readable line displayed
// in the UI. resource is either "shows" or "episodes".
func UserMessage(resource string, err error) string {
	if err == nil {
		return ""
	}
	if resource == "episodes" {
		if errors.Is(err, &ErrNotFound{}) {
			return "This show could not be found. Please pick another one."
		}
		return EpisodesUnavailableMessage
	}
	return ShowsUnavailableMessage
}
