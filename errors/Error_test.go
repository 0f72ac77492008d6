package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Test_NewCustomError tests the creation of custom errors.
func Test_NewCustomError(t *testing.T) {
	err := New(ERR_NOT_FOUND, "resource not found")
	require.NotNil(t, err)
	require.Equal(t, ERR_NOT_FOUND, err.Code())
	require.Equal(t, "resource not found", err.Message())

	secondErr := New(ERR_INVALID_ARGUMENT, "[UpdateWithBlock][%s] failed to apply block: ", "_test_string_", err)
	thirdErr := New(ERR_TX_INVALID_INPUT, "[UpdateWithBlock][%s] failed to apply block: ", "_test_string_", secondErr)
	anotherErr := New(ERR_TX_INVALID_INPUT, "Another ERR, tx input is spent")
	fourthErr := New(ERR_SERVICE_ERROR, "older error: ", thirdErr)
	fifthErr := New(ERR_BLOCK_INVALID, "invalid tx input error", fourthErr)

	require.True(t, anotherErr.Is(thirdErr))
	require.True(t, fourthErr.Is(New(ERR_TX_INVALID_INPUT, "")))
	require.True(t, fourthErr.Is(ErrTxInvalidInput))

	require.True(t, fourthErr.Is(err))
	require.True(t, fifthErr.Is(thirdErr))
	require.True(t, fifthErr.Is(err))

	require.False(t, anotherErr.Is(fourthErr))
	require.False(t, fifthErr.Is(ErrBlockMismatchedIndex))
}

func Test_NewFormatsParams(t *testing.T) {
	err := New(ERR_BLOCK_MISMATCHED_INDEX, "expected index %d, got %d", 3, 5)
	require.Equal(t, "expected index 3, got 5", err.Message())
	require.Nil(t, err.WrappedErr())
}

func Test_NewInvalidCode(t *testing.T) {
	err := New(ERR(12345), "some message")
	require.Equal(t, ERR(12345), err.Code())
	require.Equal(t, "invalid error code", err.Message())
	require.Equal(t, "ERR(12345)", err.Code().String())
}

func Test_FmtErrorCustomError(t *testing.T) {
	err := New(ERR_NOT_FOUND, "resource not found")

	fmtError := fmt.Errorf("error: %w", err)
	require.NotNil(t, fmtError)

	secondErr := New(ERR_INVALID_ARGUMENT, "[UpdateWithBlock][%s] failed: ", "_test_string_", fmtError)
	require.NotNil(t, secondErr)

	// If we FMT Err, then the inner code is no longer visible to Is
	require.False(t, secondErr.Is(New(ERR_NOT_FOUND, "")))

	altErr := New(ERR_INVALID_ARGUMENT, "invalid argument", err)
	require.True(t, secondErr.Is(altErr))
}

func Test_ErrorIs(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
	}{
		{"mismatched index", New(ERR_BLOCK_MISMATCHED_INDEX, "index")},
		{"invalid hash", New(ERR_BLOCK_INVALID_HASH, "hash")},
		{"achron timestamp", New(ERR_BLOCK_ACHRON_TIMESTAMP, "timestamp")},
		{"mismatched prev hash", New(ERR_BLOCK_MISMATCHED_PREV_HASH, "prev hash")},
		{"invalid genesis", New(ERR_BLOCK_INVALID_GENESIS, "genesis")},
		{"invalid input", New(ERR_TX_INVALID_INPUT, "input")},
		{"insufficient input value", New(ERR_TX_INSUFFICIENT_INPUT_VALUE, "value")},
		{"invalid coinbase", New(ERR_TX_INVALID_COINBASE, "coinbase")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, New(tt.err.Code(), "")))
			assert.False(t, errors.Is(tt.err, New(ERR_UNKNOWN, "")))
		})
	}
}

func Test_ErrorWrapWithAdditionalContext(t *testing.T) {
	originalErr := New(ERR_TX_INVALID_INPUT, "original error")
	wrappedErr := New(ERR_BLOCK_INVALID, "Some more additional context", originalErr)

	require.True(t, errors.Is(wrappedErr, originalErr))
	require.True(t, strings.Contains(wrappedErr.Error(), "Some more additional context"))
	require.True(t, strings.Contains(wrappedErr.Error(), "original error"))
}

func Test_ErrorData(t *testing.T) {
	err := New(ERR_BLOCK_MISMATCHED_INDEX, "bad index")
	err.SetData("expected", 2)
	err.SetData("actual", 7)

	require.Equal(t, 2, err.GetData("expected"))
	require.Equal(t, 7, err.GetData("actual"))
	require.Nil(t, err.GetData("missing"))
	require.Contains(t, err.Error(), "Data:")
}

// Test_WrapGRPC tests wrapping a custom error for gRPC.
func Test_WrapGRPC(t *testing.T) {
	t.Run("validation errors map to failed precondition", func(t *testing.T) {
		wrappedErr := WrapGRPC(New(ERR_TX_INVALID_INPUT, "spent"))

		s, ok := status.FromError(wrappedErr)
		require.True(t, ok)
		require.Equal(t, codes.FailedPrecondition, s.Code())
		require.Equal(t, "spent", s.Message())
	})

	t.Run("nil stays nil", func(t *testing.T) {
		require.NoError(t, WrapGRPC(nil))
	})

	t.Run("plain errors become unknown", func(t *testing.T) {
		s, ok := status.FromError(WrapGRPC(errors.New("boom")))
		require.True(t, ok)
		require.Equal(t, codes.Unknown, s.Code())
	})
}

func Test_UnwrapGRPC(t *testing.T) {
	t.Run("round trip keeps the chain", func(t *testing.T) {
		inner := New(ERR_STORAGE_ERROR, "store failed")
		outer := New(ERR_BLOCK_ERROR, "could not apply block", inner)
		outer.SetData("index", 4)

		unwrapped := UnwrapGRPC(WrapGRPC(outer))
		require.NotNil(t, unwrapped)
		require.Equal(t, ERR_BLOCK_ERROR, unwrapped.Code())
		require.Equal(t, "could not apply block", unwrapped.Message())
		require.Equal(t, float64(4), unwrapped.GetData("index"))

		var innerErr *Error
		require.True(t, errors.As(unwrapped.WrappedErr(), &innerErr))
		require.Equal(t, ERR_STORAGE_ERROR, innerErr.Code())
		require.True(t, Is(WrapGRPC(outer), ErrStorageError))
	})

	t.Run("status without details", func(t *testing.T) {
		unwrapped := UnwrapGRPC(status.Error(codes.NotFound, "not found"))
		require.Equal(t, ERR_ERROR, unwrapped.Code())
	})

	t.Run("non grpc error", func(t *testing.T) {
		unwrapped := UnwrapGRPC(errors.New("plain"))
		require.Equal(t, ERR_ERROR, unwrapped.Code())
		require.Equal(t, "error unwrapping gRPC details", unwrapped.Message())
	})
}

func Test_AsData(t *testing.T) {
	err := New(ERR_TX_INVALID_INPUT, "spent", New(ERR_STORAGE_ERROR, "inner"))
	err.SetData("utxo", "abcd")

	var data *ErrData
	require.True(t, AsData(err, &data))
	require.Equal(t, "abcd", data.GetData("utxo"))

	require.False(t, AsData(New(ERR_TX_INVALID_INPUT, "no data"), &data))
}

func Test_Join(t *testing.T) {
	require.NoError(t, Join(nil, nil))
	require.EqualError(t, Join(errors.New("a"), nil, errors.New("b")), "a, b")
}
