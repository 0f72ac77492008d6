package httpimpl

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mrlucciola/pow-blockchain/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type errorResponse struct {
	Status int32  `json:"status"`
	Code   int32  `json:"code"`
	Err    string `json:"error"`
}

func sendError(c echo.Context, statusCode int, code errors.ERR, err error) error {
	e := &errorResponse{
		Status: int32(statusCode),
		Code:   int32(code),
		Err:    err.Error(),
	}

	return c.JSON(statusCode, e)
}

// sendCodedError converts err to its gRPC status, the form errors cross service boundaries in, and
// answers with the http status matching the gRPC code. The body carries the code of the outermost
// error recovered from the status details.
func sendCodedError(c echo.Context, err error) error {
	st, _ := status.FromError(errors.WrapGRPC(err))

	code := errors.ERR_ERROR
	if tErr := errors.UnwrapGRPC(st.Err()); tErr != nil {
		code = tErr.Code()
	}

	return sendError(c, httpStatus(st.Code()), code, err)
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.NotFound:
		return http.StatusNotFound
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.FailedPrecondition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
