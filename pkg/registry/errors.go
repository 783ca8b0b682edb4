package registry

import (
	"errors"
	"fmt"
)

// ErrNotRegistered is returned by Replace when no registered entity equals
// the replacement.
var ErrNotRegistered = errors.New("response is not registered")

// NotRegisteredError carries the display identifier of the entity that could
// not be replaced.
type NotRegisteredError struct {
	Identifier string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("response is not registered for URL %s", e.Identifier)
}

// Is reports whether target is ErrNotRegistered.
func (e *NotRegisteredError) Is(target error) bool {
	return target == ErrNotRegistered
}
