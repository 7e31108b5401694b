package formstamp

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for the stamping boundary. Every failure returned
// by Stamper.Stamp matches exactly one of these via errors.Is.
var (
	// ErrTemplate reports a template that is missing, empty, or whose
	// first-page geometry cannot be read.
	ErrTemplate = errors.New("formstamp: bad template")

	// ErrResolution reports an input record whose shape cannot be coerced
	// onto the profile's field set.
	ErrResolution = errors.New("formstamp: value resolution failed")

	// ErrRender reports a failure while measuring or drawing overlay text,
	// or while serializing the output document.
	ErrRender = errors.New("formstamp: render failed")
)

// StampError wraps an underlying error with the failing operation and the
// taxonomy kind it maps to. No partial output accompanies a StampError.
type StampError struct {
	Op   string // operation name, e.g. "Resolve", "Compose"
	Kind error  // one of the sentinel kinds above
	Err  error  // underlying error
}

func (e *StampError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("formstamp.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("formstamp.%s: %v", e.Op, e.Kind)
}

func (e *StampError) Unwrap() error {
	return e.Err
}

// Is matches a StampError against its sentinel kind.
func (e *StampError) Is(target error) bool {
	return target == e.Kind
}

// newStampError creates a StampError for the given operation and kind.
func newStampError(op string, kind, err error) *StampError {
	return &StampError{Op: op, Kind: kind, Err: err}
}
