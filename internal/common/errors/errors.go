// Package errors defines the closed error taxonomy of the franchise catalog:
// domain validation failures raised by entity constructors, lookup and
// conflict failures raised by the mutation engine, and the few technical
// codes used at the API and job-worker edges.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Error Codes
// ==========================

// ErrorCode identifies an error kind. Callers branch on the code, never on
// the message.
type ErrorCode string

// Domain validation (raised by models constructors)
const (
	ErrCodeInvalidBranch    ErrorCode = "DOMAIN_001"
	ErrCodeInvalidProduct   ErrorCode = "DOMAIN_003"
	ErrCodeInvalidFranchise ErrorCode = "DOMAIN_004"
)

// Aggregate lookup and conflict faults (raised by the mutation engine)
const (
	ErrCodeFranchiseNotFound      ErrorCode = "FRANCHISE_001"
	ErrCodeDuplicateFranchiseName ErrorCode = "FRANCHISE_002"
	ErrCodeBranchNotFound         ErrorCode = "BRANCH_001"
	ErrCodeDuplicateBranchName    ErrorCode = "BRANCH_002"
	ErrCodeProductNotFound        ErrorCode = "PRODUCT_001"
	ErrCodeDuplicateProductName   ErrorCode = "PRODUCT_002"

	ErrCodeConcurrentModification ErrorCode = "CONCURRENCY_001"
)

// Edge codes (API and workers)
const (
	ErrCodeValidation   ErrorCode = "VALIDATION_001"
	ErrCodeBadRequest   ErrorCode = "REQUEST_001"
	ErrCodeStoreFailure ErrorCode = "DB_001"
	ErrCodeInternal     ErrorCode = "SYSTEM_001"
)

// Error categories returned by GetErrorCategory.
const (
	CategoryValidation  = "VALIDATION"
	CategoryNotFound    = "NOT_FOUND"
	CategoryConflict    = "CONFLICT"
	CategoryConcurrency = "CONCURRENCY"
	CategoryStore       = "STORE"
	CategoryOther       = "OTHER"
)

// StandardError is the structured error value returned across the module.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is reports whether target is a StandardError with the same code, so the
// sentinels below work with errors.Is regardless of details.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// ==========================
// 2. Sentinels
// ==========================

var (
	ErrInvalidBranch    = &StandardError{Code: ErrCodeInvalidBranch, Message: "Invalid branch"}
	ErrInvalidProduct   = &StandardError{Code: ErrCodeInvalidProduct, Message: "Invalid product"}
	ErrInvalidFranchise = &StandardError{Code: ErrCodeInvalidFranchise, Message: "Invalid franchise"}

	ErrFranchiseNotFound      = &StandardError{Code: ErrCodeFranchiseNotFound, Message: "Franchise not found"}
	ErrDuplicateFranchiseName = &StandardError{Code: ErrCodeDuplicateFranchiseName, Message: "Duplicate franchise name"}
	ErrBranchNotFound         = &StandardError{Code: ErrCodeBranchNotFound, Message: "Branch not found"}
	ErrDuplicateBranchName    = &StandardError{Code: ErrCodeDuplicateBranchName, Message: "Duplicate branch name"}
	ErrProductNotFound        = &StandardError{Code: ErrCodeProductNotFound, Message: "Product not found"}
	ErrDuplicateProductName   = &StandardError{Code: ErrCodeDuplicateProductName, Message: "Duplicate product name"}

	ErrConcurrentModification = &StandardError{Code: ErrCodeConcurrentModification, Message: "Franchise modified concurrently", Retryable: true}

	ErrValidation   = &StandardError{Code: ErrCodeValidation, Message: "Error validating request"}
	ErrBadRequest   = &StandardError{Code: ErrCodeBadRequest, Message: "Invalid request"}
	ErrStoreFailure = &StandardError{Code: ErrCodeStoreFailure, Message: "Database error", Retryable: true}
	ErrInternal     = &StandardError{Code: ErrCodeInternal, Message: "Internal server error"}
)

// ==========================
// 3. Constructors
// ==========================

func newError(sentinel *StandardError, details string) *StandardError {
	return &StandardError{
		Code:      sentinel.Code,
		Message:   sentinel.Message,
		Details:   details,
		Retryable: sentinel.Retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewDomainValidationError builds a constructor failure. code must be one of
// the DOMAIN_* codes.
func NewDomainValidationError(code ErrorCode, message string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewFranchiseNotFoundError(franchiseID string) *StandardError {
	return newError(ErrFranchiseNotFound, fmt.Sprintf("franchiseId: %s", franchiseID))
}

func NewDuplicateFranchiseNameError(name string) *StandardError {
	return newError(ErrDuplicateFranchiseName, fmt.Sprintf("name: %s", name))
}

func NewBranchNotFoundError(franchiseID, branchName string) *StandardError {
	return newError(ErrBranchNotFound, fmt.Sprintf("franchiseId: %s, branch: %s", franchiseID, branchName))
}

func NewDuplicateBranchNameError(franchiseID, branchName string) *StandardError {
	return newError(ErrDuplicateBranchName, fmt.Sprintf("franchiseId: %s, branch: %s", franchiseID, branchName))
}

func NewProductNotFoundError(branchName, productName string) *StandardError {
	return newError(ErrProductNotFound, fmt.Sprintf("branch: %s, product: %s", branchName, productName))
}

func NewDuplicateProductNameError(branchName, productName string) *StandardError {
	return newError(ErrDuplicateProductName, fmt.Sprintf("branch: %s, product: %s", branchName, productName))
}

func NewConcurrentModificationError(franchiseID string, attempts int) *StandardError {
	return newError(ErrConcurrentModification, fmt.Sprintf("franchiseId: %s, attempts: %d", franchiseID, attempts))
}

func NewValidationError(details string) *StandardError {
	return newError(ErrValidation, details)
}

func NewBadRequestError(details string) *StandardError {
	return newError(ErrBadRequest, details)
}

func NewStoreFailureError(err error) *StandardError {
	return newError(ErrStoreFailure, err.Error())
}

func NewInternalError(err error) *StandardError {
	return newError(ErrInternal, err.Error())
}

// ==========================
// 4. Lookups
// ==========================

// GetErrorCategory groups codes the way callers map them to responses.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeInvalidBranch, ErrCodeInvalidProduct, ErrCodeInvalidFranchise,
		ErrCodeValidation, ErrCodeBadRequest:
		return CategoryValidation
	case ErrCodeFranchiseNotFound, ErrCodeBranchNotFound, ErrCodeProductNotFound:
		return CategoryNotFound
	case ErrCodeDuplicateFranchiseName, ErrCodeDuplicateBranchName, ErrCodeDuplicateProductName:
		return CategoryConflict
	case ErrCodeConcurrentModification:
		return CategoryConcurrency
	case ErrCodeStoreFailure:
		return CategoryStore
	default:
		return CategoryOther
	}
}

// HTTPStatus returns the response status for a code.
func HTTPStatus(code ErrorCode) int {
	switch GetErrorCategory(code) {
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryConflict, CategoryConcurrency:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetRetryCount returns how many times a job worker should retry a code.
// Business faults are never retried.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeConcurrentModification:
		return 3
	case ErrCodeStoreFailure:
		return 2
	default:
		return 0
	}
}

// IsRetryableErrorCode reports whether a code has a non-zero retry budget.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// Normalize returns err as a StandardError. Values that are not already a
// StandardError become SYSTEM_001 with the original text in Details.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var std *StandardError
	if As(err, &std) {
		return std
	}
	return NewInternalError(err)
}

// NormalizeEngineError is Normalize for errors returned by the catalog
// engine. The engine forwards store failures untouched, so anything that is
// not already a StandardError becomes a retryable DB_001.
func NormalizeEngineError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var std *StandardError
	if As(err, &std) {
		return std
	}
	return NewStoreFailureError(err)
}

// Is and As forward to the standard library so callers importing this
// package under the name "errors" keep both.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target interface{}) bool { return stderrors.As(err, target) }

func New(text string) error { return stderrors.New(text) }
