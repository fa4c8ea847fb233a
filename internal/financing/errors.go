package financing

import (
	"fmt"
)

// ValidationError reports the first parameter constraint that failed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UnsupportedTypeError is returned by the registry for unknown type tags.
type UnsupportedTypeError struct {
	Type Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("Unsupported financing type: %s", e.Type)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
