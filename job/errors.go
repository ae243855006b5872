package job

import (
	"errors"
	"fmt"

	"github.com/ncobase/longrun/ecode"
)

var (
	ErrJobNotFound        = errors.New(ecode.NotExist("job"))
	ErrAlreadyRegistered  = errors.New(ecode.AlreadyExist("job"))
	ErrAlreadyStarted     = errors.New("job already started")
	ErrServiceClosed      = errors.New("service is closed")
	ErrInvalidParams      = errors.New("invalid parameters")
	ErrNilJob             = errors.New("nil job")
	ErrDuplicateJob       = errors.New("duplicate job id")
	ErrInvalidJobDocument = errors.New("invalid job document")
)

// MissingFieldError reports a required document field that is absent or
// has the wrong type.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidJobDocument, ecode.FieldIsRequired(e.Field))
}

// Is lets errors.Is match any MissingFieldError against ErrInvalidJobDocument.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrInvalidJobDocument
}
