package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlockValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"mismatched index", NewBlockMismatchedIndexError("index"), true},
		{"invalid genesis", NewBlockInvalidGenesisError("genesis"), true},
		{"invalid input", NewTxInvalidInputError("input"), true},
		{"coinbase", NewTxInvalidCoinbaseError("coinbase"), true},
		{"value overflow", NewTxValueOverflowError("overflow"), true},
		{"wrapped validation", NewServiceError("process block", NewTxInsufficientInputValueError("value")), false},
		{"storage", NewStorageError("store"), false},
		{"plain error", fmt.Errorf("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsBlockValidationError(tt.err))
		})
	}
}

func TestIsContextError(t *testing.T) {
	assert.False(t, IsContextError(nil))
	assert.True(t, IsContextError(context.Canceled))
	assert.True(t, IsContextError(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.True(t, IsContextError(NewContextCanceledError("mining canceled")))
	assert.False(t, IsContextError(NewBlockInvalidHashError("hash")))
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{nil, "none"},
		{context.Canceled, "context"},
		{NewBlockAchronTimestampError("ts"), "block"},
		{NewTxInvalidInputError("input"), "transaction"},
		{NewServiceNotStartedError("miner"), "service"},
		{NewStorageError("store"), "storage"},
		{NewStateError("fsm"), "state"},
		{NewProcessingError("other"), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetErrorCategory(tt.err))
	}
}
