package validators

import (
	"errors"
	"fmt"
	"mgMessenger/internal/errs"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct checks payload against its validate tags and returns one
// error per failing field.
func ValidateStruct(payload any) []error {
	err := getValidator().Struct(payload)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []error{errs.ErrInvalidRequest}
	}
	result := make([]error, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		result = append(result, errs.Error(fmt.Sprintf("%s failed on %s", strings.ToLower(fieldErr.Field()), fieldErr.Tag())))
	}
	return result
}
