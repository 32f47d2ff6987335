// Package domain holds the sentinel errors shared across layers.
package domain

import "errors"

var (
	// ErrValidation signals a request rejected before dispatch (missing
	// required fields). The message is safe to show to the user.
	ErrValidation = errors.New("validation failed")
	// ErrBackendUnavailable signals that the retrieval backend could not
	// be reached or returned an unusable response.
	ErrBackendUnavailable = errors.New("search backend unreachable")
	// ErrSuperseded signals an autocomplete response that arrived after a
	// newer request was already dispatched. Callers discard the payload.
	ErrSuperseded = errors.New("superseded by a newer request")
	// ErrQueryTooShort signals an autocomplete query below the minimum length.
	ErrQueryTooShort = errors.New("query too short")
	// ErrLocationUnavailable signals that the current position could not
	// be determined. Users are guided to enter coordinates manually.
	ErrLocationUnavailable = errors.New("location unavailable")
)
