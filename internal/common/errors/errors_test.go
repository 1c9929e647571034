package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Matching
// ==========================

func TestIs_MatchesByCode(t *testing.T) {
	err := NewBranchNotFoundError("f-1", "Centro")
	wrapped := fmt.Errorf("add product: %w", err)

	assert.True(t, Is(wrapped, ErrBranchNotFound))
	assert.False(t, Is(wrapped, ErrProductNotFound))
	assert.Equal(t, "franchiseId: f-1, branch: Centro", err.Details)
}

func TestNormalize(t *testing.T) {
	assert.Nil(t, Normalize(nil))

	dup := NewDuplicateProductNameError("Centro", "Widget")
	assert.Same(t, dup, Normalize(fmt.Errorf("wrapped: %w", dup)))

	std := Normalize(New("boom"))
	assert.Equal(t, ErrCodeInternal, std.Code)
	assert.Equal(t, "boom", std.Details)
	assert.False(t, std.Retryable)
}

func TestNormalizeEngineError(t *testing.T) {
	assert.Nil(t, NormalizeEngineError(nil))

	std := NormalizeEngineError(New("connection reset by peer"))
	assert.Equal(t, ErrCodeStoreFailure, std.Code)
	assert.True(t, std.Retryable)

	nf := NewFranchiseNotFoundError("f-9")
	assert.Same(t, nf, NormalizeEngineError(nf))
}

// ==========================
// Lookups
// ==========================

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeInvalidProduct, http.StatusBadRequest},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeFranchiseNotFound, http.StatusNotFound},
		{ErrCodeProductNotFound, http.StatusNotFound},
		{ErrCodeDuplicateBranchName, http.StatusConflict},
		{ErrCodeConcurrentModification, http.StatusConflict},
		{ErrCodeStoreFailure, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.code), string(tt.code))
	}
}

func TestGetRetryCount(t *testing.T) {
	assert.Equal(t, 3, GetRetryCount(ErrCodeConcurrentModification))
	assert.Equal(t, 2, GetRetryCount(ErrCodeStoreFailure))
	assert.Equal(t, 0, GetRetryCount(ErrCodeDuplicateFranchiseName))
	assert.True(t, IsRetryableErrorCode(ErrCodeStoreFailure))
	assert.False(t, IsRetryableErrorCode(ErrCodeInvalidBranch))
}

// ==========================
// BPMN conversion
// ==========================

func TestConvertToBPMNError(t *testing.T) {
	t.Run("retryable", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewConcurrentModificationError("f-1", 3))

		assert.Equal(t, "CONCURRENCY_001", bpmn.Code)
		assert.Equal(t, 3, bpmn.Retries)
		assert.True(t, bpmn.Retryable)

		vars := bpmn.ToErrorVariables()
		assert.Equal(t, "CONCURRENCY_001", vars["errorCode"])
		assert.Equal(t, CategoryConcurrency, vars["errorCategory"])
		assert.NotEmpty(t, vars["timestamp"])
	})

	t.Run("business fault", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewProductNotFoundError("Centro", "Widget"))

		assert.Equal(t, "PRODUCT_001", bpmn.Code)
		assert.Zero(t, bpmn.Retries)
		assert.False(t, bpmn.Retryable)
		require.Contains(t, bpmn.ToErrorVariables(), "errorDetails")
	})

	t.Run("domain error without timestamp", func(t *testing.T) {
		bpmn := ConvertToBPMNError(&StandardError{Code: ErrCodeInvalidProduct, Message: "Product stock cannot be negative"})

		assert.Equal(t, "DOMAIN_003", bpmn.Code)
		assert.Equal(t, CategoryValidation, bpmn.ErrorVariables["errorCategory"])
		assert.NotEmpty(t, bpmn.ErrorVariables["timestamp"])
	})
}
