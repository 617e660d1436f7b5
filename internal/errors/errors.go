// Package errors provides domain-specific error types for enable-fn.
//
// This package defines structured errors with error codes, making it easier
// to handle and test different error conditions consistently across the
// application. The privilege error code is special: main maps it to process
// exit code 2.
package errors

import "fmt"

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodePrivilege indicates the process lacks root privileges.
	ErrCodePrivilege ErrorCode = "PRIVILEGE_ERROR"

	// ErrCodeSysfs indicates a failure reading or writing the sysfs
	// parameter file.
	ErrCodeSysfs ErrorCode = "SYSFS_ERROR"

	// ErrCodeModprobe indicates a kernel module load failure.
	ErrCodeModprobe ErrorCode = "MODPROBE_ERROR"

	// ErrCodeConf indicates a failure editing the modprobe.d config file.
	ErrCodeConf ErrorCode = "CONF_ERROR"

	// ErrCodeBackup indicates a failure creating or listing backups.
	ErrCodeBackup ErrorCode = "BACKUP_ERROR"

	// ErrCodeTool indicates a required external tool is missing or failed.
	ErrCodeTool ErrorCode = "TOOL_ERROR"

	// ErrCodeValidation indicates a configuration validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new domain error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// HasCode reports whether err (or any error in its chain) carries the code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
