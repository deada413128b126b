package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"real-time-messenger/apperror"
)

// validationError turns validator output into an InvalidArgument naming each failed field.
func validationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return apperror.Wrap(apperror.CodeInvalidArgument, "invalid request", err)
	}
	parts := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return apperror.Wrap(apperror.CodeInvalidArgument, strings.Join(parts, "; "), err)
}
