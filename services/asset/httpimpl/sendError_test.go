package httpimpl

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendCodedError(t *testing.T) {
	_, parseErr := strconv.Atoi("x")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   errors.ERR
	}{
		{"not found", errors.NewNotFoundError("block 3 not found"), http.StatusNotFound, errors.ERR_NOT_FOUND},
		{"invalid argument wrapping a plain error", errors.NewInvalidArgumentError("bad index", parseErr), http.StatusBadRequest, errors.ERR_INVALID_ARGUMENT},
		{"storage unavailable", errors.NewStorageUnavailableError("store down"), http.StatusServiceUnavailable, errors.ERR_STORAGE_UNAVAILABLE},
		{"rejected block", errors.NewTxInvalidCoinbaseError("coinbase too small"), http.StatusUnprocessableEntity, errors.ERR_TX_INVALID_COINBASE},
		{"storage error wrapping a rejection keeps the outer code", errors.NewStorageError("apply failed", errors.NewBlockInvalidHashError("bad hash")), http.StatusInternalServerError, errors.ERR_STORAGE_ERROR},
		{"plain error", parseErr, http.StatusInternalServerError, errors.ERR_ERROR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			require.NoError(t, sendCodedError(c, tt.err))

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

			assert.Equal(t, int32(tt.wantStatus), body.Status)
			assert.Equal(t, int32(tt.wantCode), body.Code)
			assert.Equal(t, tt.err.Error(), body.Err)
		})
	}
}
