package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/mzhur/enable-fn/internal/errors"
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "fnmode":
		return "must be an fnmode value between 0 and 3"
	case "abs_path":
		return "must be an absolute filesystem path"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	FieldPath string // Dot-notation field path (e.g., "paths.backup_dir")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("fnmode", validateFnmode); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("abs_path", validateAbsPath); err != nil {
		panic(err)
	}

	// Register function to get field name from "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateFnmode accepts the four fnmode values the hid_apple driver knows.
func validateFnmode(fl validator.FieldLevel) bool {
	return fl.Field().Uint() <= 3
}

func validateAbsPath(fl validator.FieldLevel) bool {
	return filepath.IsAbs(fl.Field().String())
}

// ValidateConfig checks the configuration structure and returns a combined
// error listing every violated constraint.
func (c *Config) ValidateConfig() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(apperrors.ErrCodeValidation, "configuration validation failed", err)
	}

	var result ValidationErrors
	for _, fe := range verrs {
		result = append(result, ValidationError{
			FieldPath: fieldPath(fe),
			Message:   getValidationMessage(fe),
		})
	}
	return result
}

// fieldPath converts validator's namespace (Config.paths.backup_dir) into a
// config-file-relative dotted path (paths.backup_dir).
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
