package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
)

// Validator checks configuration structs against their validate tags
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the config-specific rules on top of the tag set
func NewValidator() *Validator {
	v := validator.New()

	// fuelgrade: a grade the airport model knows how to sell
	_ = v.RegisterValidation("fuelgrade", func(fl validator.FieldLevel) bool {
		return airport.IsKnownFuelType(fl.Field().String())
	})
	v.RegisterStructValidation(validateLogging, LoggingConfig{})

	return &Validator{validate: v}
}

func validateLogging(sl validator.StructLevel) {
	lc := sl.Current().Interface().(LoggingConfig)
	if lc.Output == "file" && lc.FilePath == "" {
		sl.ReportError(lc.FilePath, "FilePath", "file_path", "required_with_file_output", "")
	}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError lists every failing field by its full path
func (v *Validator) formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf("%s: failed %s (value: '%v')", e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
