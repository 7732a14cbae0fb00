// internal/common/errors/errors.go
// Package errors provides standardized error handling for the lead
// generation service. Every error produced here is absorbed before it
// reaches a caller of the facade; the codes exist for logs and metrics.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Probe-time: the engine or its tool bindings could not be acquired.
	ErrCodeEngineAcquisitionFailed ErrorCode = "ENGINE_ACQUISITION_FAILED"
	ErrCodePipelineConfigInvalid   ErrorCode = "PIPELINE_CONFIG_INVALID"
	ErrCodeCredentialMissing       ErrorCode = "CREDENTIAL_MISSING"

	// Run-time: the engine pipeline raised during execution.
	ErrCodeEngineDelegationFailed ErrorCode = "ENGINE_DELEGATION_FAILED"
	ErrCodeEngineTimeout          ErrorCode = "ENGINE_TIMEOUT"
	ErrCodeEngineOutputInvalid    ErrorCode = "ENGINE_OUTPUT_INVALID"

	// Supporting infrastructure. None of these ever surface to callers.
	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeUsageSinkFailed  ErrorCode = "USAGE_SINK_FAILED"
	ErrCodeCRMExportFailed  ErrorCode = "CRM_EXPORT_FAILED"
)

// StandardError represents a structured application error.
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
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewEngineAcquisitionFailedError records a probe-time acquisition failure.
// Never propagated past the prober; degraded state is a valid outcome.
func NewEngineAcquisitionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEngineAcquisitionFailed,
		Message:   "Orchestration engine could not be acquired",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPipelineConfigInvalidError records a role/task configuration problem.
func NewPipelineConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePipelineConfigInvalid,
		Message:   "Pipeline role/task configuration is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCredentialMissingError records an absent engine credential.
func NewCredentialMissingError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCredentialMissing,
		Message:   "Required credential is not configured",
		Details:   fmt.Sprintf("credential: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEngineDelegationFailedError records a pipeline execution failure.
func NewEngineDelegationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEngineDelegationFailed,
		Message:   "Engine pipeline raised during execution",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEngineTimeoutError records an engine call timeout.
func NewEngineTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEngineTimeout,
		Message:   "Engine pipeline call timed out",
		Details:   "kickoff exceeded the configured timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEngineOutputInvalidError records a schema violation in the pipeline output.
func NewEngineOutputInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEngineOutputInvalid,
		Message:   "Engine pipeline output failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError records a result cache failure.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Result cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUsageSinkFailedError records a usage accounting write failure.
func NewUsageSinkFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUsageSinkFailed,
		Message:   "Usage accounting write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCRMExportFailedError records a CRM lead export failure.
func NewCRMExportFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCRMExportFailed,
		Message:   "CRM lead export failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsAcquisition reports whether the code belongs to the probe-time family.
func IsAcquisition(code ErrorCode) bool {
	switch code {
	case ErrCodeEngineAcquisitionFailed, ErrCodePipelineConfigInvalid, ErrCodeCredentialMissing:
		return true
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "ACQUISITION") || strings.Contains(codeStr, "CONFIG") || strings.Contains(codeStr, "CREDENTIAL"):
		return "ACQUISITION"
	case strings.Contains(codeStr, "ENGINE"):
		return "DELEGATION"
	case strings.Contains(codeStr, "CACHE") || strings.Contains(codeStr, "USAGE") || strings.Contains(codeStr, "CRM"):
		return "INFRASTRUCTURE"
	default:
		return "OTHER"
	}
}
