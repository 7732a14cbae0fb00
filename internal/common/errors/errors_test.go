// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Constructor behavior
// ==========================

func TestCredentialMissingErrorNamesTheCredential(t *testing.T) {
	err := NewCredentialMissingError("engine.api_key")

	assert.Equal(t, ErrCodeCredentialMissing, err.Code)
	assert.False(t, err.Retryable)
	assert.Contains(t, err.Error(), "engine.api_key")
}

func TestDelegationErrorCarriesCause(t *testing.T) {
	cause := fmt.Errorf("connection reset by peer")
	err := NewEngineDelegationFailedError(cause)

	assert.Equal(t, ErrCodeEngineDelegationFailed, err.Code)
	assert.True(t, err.Retryable)
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestRetryableClassification(t *testing.T) {
	assert.False(t, NewEngineAcquisitionFailedError(fmt.Errorf("x")).Retryable)
	assert.False(t, NewPipelineConfigInvalidError("x").Retryable)
	assert.False(t, NewEngineOutputInvalidError("x").Retryable)
	assert.True(t, NewEngineTimeoutError().Retryable)
	assert.True(t, NewCacheUnavailableError(fmt.Errorf("x")).Retryable)
	assert.True(t, NewUsageSinkFailedError(fmt.Errorf("x")).Retryable)
	assert.True(t, NewCRMExportFailedError(fmt.Errorf("x")).Retryable)
}

// ==========================
// Classification helpers
// ==========================

func TestIsAcquisition(t *testing.T) {
	assert.True(t, IsAcquisition(ErrCodeEngineAcquisitionFailed))
	assert.True(t, IsAcquisition(ErrCodePipelineConfigInvalid))
	assert.True(t, IsAcquisition(ErrCodeCredentialMissing))
	assert.False(t, IsAcquisition(ErrCodeEngineDelegationFailed))
	assert.False(t, IsAcquisition(ErrCodeCRMExportFailed))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "ACQUISITION", GetErrorCategory(ErrCodeCredentialMissing))
	assert.Equal(t, "DELEGATION", GetErrorCategory(ErrCodeEngineTimeout))
	assert.Equal(t, "INFRASTRUCTURE", GetErrorCategory(ErrCodeUsageSinkFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrorCode("SOMETHING_ELSE")))
}
