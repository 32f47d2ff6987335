package searchkit

import (
	"errors"
	"fmt"

	"github.com/chronomap/georetrieve/internal/domain"
)

// Public sentinel errors. Check with errors.Is.
var (
	// ErrInvalidRequest reports parameters that fail validation; the
	// backend is never called.
	ErrInvalidRequest = errors.New("searchkit: invalid request")
	// ErrBackendUnavailable reports a transport failure, a non-2xx
	// status, or an undecodable response.
	ErrBackendUnavailable = errors.New("searchkit: backend unavailable")
	// ErrQueryTooShort reports an autocomplete query under the minimum
	// length; no request was made.
	ErrQueryTooShort = errors.New("searchkit: query too short")
	// ErrSuperseded reports an autocomplete response that arrived after
	// a newer lookup was dispatched.
	ErrSuperseded = errors.New("searchkit: superseded by a newer lookup")
	// ErrLocationUnavailable reports that the position could not be
	// determined.
	ErrLocationUnavailable = errors.New("searchkit: location unavailable")
)

// mapErr converts internal sentinels to the public ones, keeping the
// original message for context.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrValidation):
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	case errors.Is(err, domain.ErrQueryTooShort):
		return ErrQueryTooShort
	case errors.Is(err, domain.ErrSuperseded):
		return ErrSuperseded
	case errors.Is(err, domain.ErrBackendUnavailable):
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	case errors.Is(err, domain.ErrLocationUnavailable):
		return ErrLocationUnavailable
	default:
		return err
	}
}
