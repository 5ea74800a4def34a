// Package config provides configuration management for the inventory API.
package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error with user-friendly message.
type ValidationError struct {
	Field   string      // Field path (e.g., "server.listen")
	Tag     string      // Validation tag that failed (e.g., "required", "url")
	Value   interface{} // Actual value that failed validation
	Message string      // User-friendly error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  - %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// validate is the package-level validator instance.
var validate *validator.Validate

// init initializes the validator with custom validations.
func init() {
	validate = validator.New()

	// Report field paths using the mapstructure keys users write in config files
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Register custom validation for timezone
	validate.RegisterValidation("timezone", validateTimezone)
}

// Validate validates the configuration and returns user-friendly error messages.
func Validate(cfg *Config) error {
	var validationErrors ValidationErrors

	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrors {
				validationErrors = append(validationErrors, &ValidationError{
					Field:   formatFieldName(fe.Namespace()),
					Tag:     fe.Tag(),
					Value:   fe.Value(),
					Message: translateError(fe),
				})
			}
		}
	}

	// Run custom business logic validations
	if errs := validateServerTimeouts(cfg); len(errs) > 0 {
		validationErrors = append(validationErrors, errs...)
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

// validateTimezone is a custom validator for timezone strings.
func validateTimezone(fl validator.FieldLevel) bool {
	tz := fl.Field().String()
	if tz == "" {
		return true // Empty is allowed, will use default
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// validateServerTimeouts validates that the server can drain in-flight requests on shutdown.
func validateServerTimeouts(cfg *Config) ValidationErrors {
	var errors ValidationErrors

	if cfg.Server.ShutdownTimeout <= 0 {
		errors = append(errors, &ValidationError{
			Field:   "server.shutdown_timeout",
			Tag:     "positive_duration",
			Value:   cfg.Server.ShutdownTimeout,
			Message: fmt.Sprintf("shutdown timeout must be positive, got %v", cfg.Server.ShutdownTimeout),
		})
	}

	return errors
}

// formatFieldName strips the root struct from a validator namespace.
// Example: "Config.server.read_timeout" -> "server.read_timeout"
func formatFieldName(namespace string) string {
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}
	return namespace
}

// fieldMessages maps validation tags to user-facing messages.
var fieldMessages = map[string]func(fe validator.FieldError) string{
	"required": func(validator.FieldError) string {
		return "this field is required"
	},
	"url": func(fe validator.FieldError) string {
		return fmt.Sprintf("invalid URL format: %v", fe.Value())
	},
	"gte": func(fe validator.FieldError) string {
		return "value must be greater than or equal to " + fe.Param()
	},
	"lte": func(fe validator.FieldError) string {
		return "value must be less than or equal to " + fe.Param()
	},
	"oneof": func(fe validator.FieldError) string {
		return fmt.Sprintf("%q is not one of: %s", fe.Value(), fe.Param())
	},
	"timezone": func(fe validator.FieldError) string {
		return fmt.Sprintf("invalid timezone: %v", fe.Value())
	},
	"hostname_port": func(fe validator.FieldError) string {
		return fmt.Sprintf("invalid listen address, expected host:port: %v", fe.Value())
	},
}

// translateError converts a validator.FieldError to a user-friendly message.
func translateError(fe validator.FieldError) string {
	if message, ok := fieldMessages[fe.Tag()]; ok {
		return message(fe)
	}
	return fmt.Sprintf("validation failed on '%s' tag for field '%s'", fe.Tag(), formatFieldName(fe.Namespace()))
}
