package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound             = NewAppError("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrUnauthorized         = NewAppError("UNAUTHORIZED", "Not authorized", http.StatusUnauthorized)
	ErrForbidden            = NewAppError("FORBIDDEN", "Access denied", http.StatusForbidden)
	ErrBadRequest           = NewAppError("BAD_REQUEST", "Invalid request", http.StatusBadRequest)
	ErrInternalServer       = NewAppError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
	ErrConflict             = NewAppError("CONFLICT", "Resource conflict", http.StatusConflict)
	ErrValidation           = NewAppError("VALIDATION_ERROR", "Validation failed", http.StatusBadRequest)
	ErrDatabase             = NewAppError("DATABASE_ERROR", "Database operation failed", http.StatusInternalServerError)
	ErrAccountNotFound      = NewAppError("ACCOUNT_NOT_FOUND", "Account not found", http.StatusNotFound)
	ErrPlanNotFound         = NewAppError("PLAN_NOT_FOUND", "Investment plan not found", http.StatusNotFound)
	ErrSubscriptionNotFound = NewAppError("SUBSCRIPTION_NOT_FOUND", "Subscription not found", http.StatusNotFound)
	ErrTransactionNotFound  = NewAppError("TRANSACTION_NOT_FOUND", "Transaction not found", http.StatusNotFound)
	ErrInvoiceNotFound      = NewAppError("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
)

type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	clone := e.clone()
	clone.Details = make(map[string]interface{}, len(details))
	for k, v := range details {
		clone.Details[k] = v
	}
	return clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := e.clone()
	clone.Err = err
	return clone
}

func (e *AppError) clone() *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Details = make(map[string]interface{}, len(e.Details))
	for k, v := range e.Details {
		clone.Details[k] = v
	}
	return &clone
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func WrapError(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
		Details:    make(map[string]interface{}),
	}
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

func FromError(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	if errors.Is(err, context.Canceled) {
		return WrapError(err, "REQUEST_CANCELED", "Request canceled by the client", http.StatusRequestTimeout)
	}

	return WrapError(err, "UNKNOWN_ERROR", "Unknown error", http.StatusInternalServerError)
}

func NewValidationError(field, message string) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"field": field,
		},
	}
}

func NewDatabaseError(err error) *AppError {
	return WrapError(err, "DATABASE_ERROR", "Database operation failed", http.StatusInternalServerError)
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
		Details: map[string]interface{}{
			"resource": resource,
		},
	}
}

func NewConflictError(resource string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    fmt.Sprintf("%s already exists", resource),
		StatusCode: http.StatusConflict,
		Details: map[string]interface{}{
			"resource": resource,
		},
	}
}

// NewInsufficientFundsError carries the usable-funds figure so the caller
// can present it verbatim.
func NewInsufficientFundsError(usable float64) *AppError {
	return &AppError{
		Code:       "INSUFFICIENT_FUNDS",
		Message:    fmt.Sprintf("Insufficient usable funds: %.2f available", usable),
		StatusCode: http.StatusUnprocessableEntity,
		Details: map[string]interface{}{
			"usable_funds": usable,
		},
	}
}

func NewInvalidStateError(message string) *AppError {
	return &AppError{
		Code:       "INVALID_STATE",
		Message:    message,
		StatusCode: http.StatusConflict,
		Details:    make(map[string]interface{}),
	}
}

// NewAlreadyProcessedError names the status the record already settled in.
func NewAlreadyProcessedError(status string) *AppError {
	return &AppError{
		Code:       "ALREADY_PROCESSED",
		Message:    fmt.Sprintf("Transaction was already processed with status %s", status),
		StatusCode: http.StatusConflict,
		Details: map[string]interface{}{
			"status": status,
		},
	}
}

func NewModificationInProgressError() *AppError {
	return &AppError{
		Code:       "MODIFICATION_IN_PROGRESS",
		Message:    "A pending modification already exists for this subscription",
		StatusCode: http.StatusConflict,
		Details:    make(map[string]interface{}),
	}
}

// NewDuplicateInvoiceError surfaces the pre-existing invoice number.
func NewDuplicateInvoiceError(invoiceNumber string, month, year int) *AppError {
	return &AppError{
		Code:       "DUPLICATE_INVOICE",
		Message:    fmt.Sprintf("A return was already issued for %02d/%d under invoice %s", month, year, invoiceNumber),
		StatusCode: http.StatusConflict,
		Details: map[string]interface{}{
			"invoice_number": invoiceNumber,
			"month":          month,
			"year":           year,
		},
	}
}

func NewNotSubscribedError(planName string) *AppError {
	return &AppError{
		Code:       "NOT_SUBSCRIBED",
		Message:    fmt.Sprintf("Account has no subscription to plan %q", planName),
		StatusCode: http.StatusNotFound,
		Details: map[string]interface{}{
			"plan": planName,
		},
	}
}

func NewStorageConflictError(err error) *AppError {
	return WrapError(err, "STORAGE_CONFLICT", "Concurrent update conflict, please retry", http.StatusConflict)
}

func ParseValidationErrors(err error) *AppError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ErrBadRequest.WithError(err)
	}

	fieldErrors := make([]map[string]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fieldErrors = append(fieldErrors, map[string]string{
			"field":   strings.ToLower(fieldErr.Field()),
			"message": describeValidationError(fieldErr),
		})
	}

	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    "Validation failed for one or more fields",
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"fields": fieldErrors,
		},
	}
}

func describeValidationError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("validation %q failed for %s", fe.Tag(), field)
	}
}
