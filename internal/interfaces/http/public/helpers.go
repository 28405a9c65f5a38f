package public

import (
	"errors"

	intakeapp "github.com/twotable/twotable-services/api/internal/intake/application"
)

func isValidationError(err error) bool {
	return errors.Is(err, intakeapp.ErrValidation)
}
