package contacts

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrContactNotFound is returned when a contact does not exist
	ErrContactNotFound = errors.New("contact not found")
)

// ValidationError carries one client-facing message per offending field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "contacts: invalid submission: " + strings.Join(names, ", ")
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
