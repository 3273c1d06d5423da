package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInvalidSignature, http.StatusBadRequest},
		{ErrCodeUnauthenticated, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodePlanLimitExceeded, http.StatusPaymentRequired},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeNotConfigured, http.StatusInternalServerError},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestDomainErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, DomainErrorStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusPaymentRequired, DomainErrorStatus(ErrCodePlanLimitExceeded))
	assert.Equal(t, http.StatusBadRequest, DomainErrorStatus("INVALID_DATE"))
	assert.Equal(t, http.StatusBadRequest, DomainErrorStatus("INVALID_AMOUNT"))
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"UNAUTHENTICATED", ErrCodeUnauthenticated},
		{"PLAN_LIMIT_EXCEEDED", ErrCodePlanLimitExceeded},
		{"INVALID_INPUT", ErrCodeInvalidInput},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists},
		{ErrCodeNotFound, ErrCodeNotFound},
		{"INVALID_DATE", "INVALID_DATE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestEveryCodeHasAStatus(t *testing.T) {
	for _, code := range LegacyErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[code]
		assert.True(t, ok, "missing status for %s", code)
	}
}

func TestErrorResponseJSON(t *testing.T) {
	raw, err := json.Marshal(NewErrorResponseWithRequestID(ErrCodeNotFound, "Resource not found", "req-1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"code":"ERR_NOT_FOUND","message":"Resource not found","request_id":"req-1"}}`, string(raw))

	raw, err = json.Marshal(NewSuccessResponse(map[string]int{"n": 1}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"n":1}}`, string(raw))
}

func TestValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-2", []ValidationDetail{
		{Field: "date", Message: "Must be a YYYY-MM-DD date"},
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-2", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
}
