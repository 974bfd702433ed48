package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/datatree/pkg/colormap"
	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

// validate is the shared validator with the config-specific rules.
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("colormap", validateColormap)
	_ = validate.RegisterValidation("duration", validateDuration)
}

func validateColormap(fl validator.FieldLevel) bool {
	_, err := colormap.Lookup(fl.Field().String())
	return err == nil
}

func validateDuration(fl validator.FieldLevel) bool {
	d, err := time.ParseDuration(fl.Field().String())
	return err == nil && d >= 0
}

// Validate checks every section and reports all failures in one error.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dterrors.Wrap(dterrors.ErrCodeInvalidConfig, err, "validate config")
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = describe(fe)
	}
	return dterrors.New(dterrors.ErrCodeInvalidConfig, "invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "colormap":
		return fmt.Sprintf("%s: unknown colormap %q", field, fe.Value())
	case "duration":
		return fmt.Sprintf("%s: %q is not a duration", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s: %v is not one of %s", field, fe.Value(), fe.Param())
	case "len":
		return fmt.Sprintf("%s: want %s values", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s", field, fe.Tag())
	}
}
