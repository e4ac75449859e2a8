package errors

import (
	"errors"
)

// As is a wrapper around errors.As for the package's Error type.
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is is a wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the code from an error, returning CodeOK for nil and
// CodeInternal for plain errors.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var structured *Error
	if errors.As(err, &structured) {
		return structured.Code
	}

	return CodeInternal
}

// GetMeta extracts metadata from an error, if any.
func GetMeta(err error) map[string]interface{} {
	var structured *Error
	if errors.As(err, &structured) {
		return structured.Meta
	}
	return nil
}

// GetMessage extracts the user-facing message from an error.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var structured *Error
	if errors.As(err, &structured) {
		return structured.Message
	}

	return err.Error()
}

// IsNotFound reports whether the error carries CodeNotFound.
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument reports whether the error carries CodeInvalidArgument.
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsAlreadyExists reports whether the error carries CodeAlreadyExists.
func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}

// IsFailedPrecondition reports whether the error carries CodeFailedPrecondition.
func IsFailedPrecondition(err error) bool {
	return GetCode(err) == CodeFailedPrecondition
}

// IsDataLoss reports whether the error carries CodeDataLoss.
func IsDataLoss(err error) bool {
	return GetCode(err) == CodeDataLoss
}

// IsInternal reports whether the error carries CodeInternal.
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}
