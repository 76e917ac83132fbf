package service

import (
	"errors"
	"reflect"
	"strings"

	catalogerrors "github.com/abgdnv/storecatalog/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// NewValidator returns a validator that knows the notblank rule and reports fields by JSON name.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic("failed to register notblank validation: " + err.Error())
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct converts validator failures into a *ValidationError.
func (s *Service) validateStruct(req any) error {
	return toValidationError(s.validate.Struct(req), nil)
}

func (s *Service) validateProduct(req ProductRequest) error {
	var extra map[string]string
	if req.Price != nil && req.Price.IsNegative() {
		extra = map[string]string{"price": "min"}
	}
	return toValidationError(s.validate.Struct(req), extra)
}

func toValidationError(err error, extra map[string]string) error {
	fields := make(map[string]string, len(extra))
	for field, rule := range extra {
		fields[field] = rule
	}
	if err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		for _, fieldErr := range validationErrors {
			fields[fieldErr.Field()] = fieldErr.Tag()
		}
	}
	return catalogerrors.NewValidationError(fields)
}
