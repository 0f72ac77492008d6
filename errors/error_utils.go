// Package errors provides the coded error type used across the ledger, together with helpers for
// categorizing errors.
package errors

import (
	"context"
	"errors"
)

// IsBlockValidationError reports whether err is a rejection of a candidate block, as opposed to an
// infrastructure failure (storage, context, configuration) while processing it.
func IsBlockValidationError(err error) bool {
	if err == nil {
		return false
	}

	var tErr *Error
	if !As(err, &tErr) {
		return false
	}

	switch tErr.Code() {
	case ERR_BLOCK_INVALID,
		ERR_BLOCK_MISMATCHED_INDEX,
		ERR_BLOCK_INVALID_HASH,
		ERR_BLOCK_ACHRON_TIMESTAMP,
		ERR_BLOCK_MISMATCHED_PREV_HASH,
		ERR_BLOCK_INVALID_GENESIS,
		ERR_TX_INVALID,
		ERR_TX_INVALID_INPUT,
		ERR_TX_INSUFFICIENT_INPUT_VALUE,
		ERR_TX_INVALID_COINBASE,
		ERR_TX_VALUE_OVERFLOW:
		return true
	}

	return false
}

// IsContextError determines if an error is related to context cancellation or deadline.
//
// Parameters:
//   - err: Error to check
//
// Returns:
//   - bool: true if error is context-related
func IsContextError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var tErr *Error
	if As(err, &tErr) {
		if tErr.Code() == ERR_CONTEXT_CANCELED || tErr.Code() == ERR_CONTEXT {
			return true
		}
	}

	return false
}

// GetErrorCategory returns a string representing the category of the error.
// This is useful for logging and metrics labels.
func GetErrorCategory(err error) string {
	if err == nil {
		return "none"
	}

	if IsContextError(err) {
		return "context"
	}

	var tErr *Error
	if As(err, &tErr) {
		// Group by error code ranges
		code := tErr.Code()
		switch {
		case code >= 10 && code <= 19:
			return "block"
		case code >= 30 && code <= 49:
			return "transaction"
		case code >= 50 && code <= 59:
			return "service"
		case code >= 60 && code <= 69:
			return "storage"
		case code >= 100 && code <= 109:
			return "state"
		}
	}

	return "unknown"
}
