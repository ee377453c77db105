package allocation

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict is returned when a patient already has an allocation in flight.
	ErrConflict = errors.New("patient already being processed")

	// ErrNoCandidates is returned when the directory has no hospital for the
	// requested service. Terminal for the request, retrying will not help.
	ErrNoCandidates = errors.New("no candidate hospital for requested service")

	// ErrUpstream is returned when a collaborator is unreachable.
	ErrUpstream = errors.New("upstream service unavailable")

	// ErrUnknownSpecialty is returned when a specialty name is not registered.
	ErrUnknownSpecialty = errors.New("unknown specialty")

	// ErrNotFound is returned when no result exists for an outcome id.
	ErrNotFound = errors.New("result not found")
)

// ValidationError reports malformed request input. The caller must correct
// the request, retrying as-is will not help.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
