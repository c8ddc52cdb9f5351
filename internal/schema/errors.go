package schema

import "errors"

// Kind classifies a validation failure.
type Kind int

const (
	MissingFields Kind = iota + 1
	InvalidField
	InvalidIDFormat
	NoFieldsToUpdate
)

func (k Kind) String() string {
	switch k {
	case MissingFields:
		return "MissingFields"
	case InvalidField:
		return "InvalidField"
	case InvalidIDFormat:
		return "InvalidIdFormat"
	case NoFieldsToUpdate:
		return "NoFieldsToUpdate"
	default:
		return "Unknown"
	}
}

// Error is the first rule a payload violated.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// AsError unwraps err into a validation failure if it is one.
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
