package errors

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type Error struct {
	code       ERR
	message    string
	wrappedErr error
	data       ErrDataI
}

type Interface interface {
	Error() string
	Is(target error) bool
	As(target interface{}) bool
	Unwrap() error

	Code() ERR
	Message() string
	WrappedErr() error
	Data() ErrDataI
}

func (e *Error) Error() string {
	// Error() can be called on wrapped errors, which can be nil, for example predefined errors
	if e == nil {
		return "<nil>"
	}

	dataMsg := ""
	if e.Data() != nil {
		dataMsg = e.data.Error()
	}

	if e.WrappedErr() == nil {
		if dataMsg == "" {
			return fmt.Sprintf("Error: %s (error code: %d), Message: %v", e.code.Enum(), e.code, e.message)
		}

		return fmt.Sprintf("Error: %s (error code: %d), Message: %v, Data:%s", e.code.Enum(), e.code, e.message, dataMsg)
	}

	if dataMsg == "" {
		return fmt.Sprintf("Error: %s (error code: %d), Message: %v, Wrapped err: %v", e.code.Enum(), e.code, e.message, e.wrappedErr)
	}

	return fmt.Sprintf("Error: %s (error code: %d), Message: %v, Wrapped err: %v, Data:%s", e.code.Enum(), e.code, e.message, e.wrappedErr, dataMsg)
}

// Is reports whether error codes match.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}

	targetError, ok := target.(*Error)
	if !ok {
		return strings.Contains(e.Error(), target.Error())
	}

	if e.code == targetError.code {
		return true
	}

	if e.wrappedErr == nil {
		return false
	}

	// Unwrap the current error and recursively call Is on the unwrapped error
	if unwrapped := errors.Unwrap(e); unwrapped != nil {
		if ue, ok := unwrapped.(*Error); ok {
			return ue.Is(target)
		}
	}

	return false
}

func (e *Error) As(target interface{}) bool {
	if e == nil {
		return false
	}

	if targetErr, ok := target.(**Error); ok {
		*targetErr = e
		return true
	}

	// check if Data matches the target type
	if e.data != nil {
		if data, ok := e.data.(error); ok && errors.As(data, target) {
			return true
		}
	}

	if e.wrappedErr != nil {
		// use reflect to see if the value is nil. If it is, return false
		v := reflect.ValueOf(e.wrappedErr)
		if v.Kind() == reflect.Ptr && v.IsNil() {
			return false
		}

		return errors.As(e.wrappedErr, target)
	}

	return false
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.wrappedErr
}

func (e *Error) Code() ERR {
	if e == nil {
		return ERR_UNKNOWN
	}

	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}

	return e.message
}

func (e *Error) WrappedErr() error {
	if e == nil {
		return nil
	}

	return e.wrappedErr
}

func (e *Error) Data() ErrDataI {
	if e == nil {
		return nil
	}

	return e.data
}

func (e *Error) SetData(key string, value interface{}) {
	if e.data == nil {
		e.data = &ErrData{}
	}

	var data *ErrData
	if errors.As(e.data, &data) {
		data.SetData(key, value)
	}
}

func (e *Error) GetData(key string) interface{} {
	if e.data == nil {
		return nil
	}

	return e.data.GetData(key)
}

// New creates an *Error with the given code. The message is formatted with params, except when the
// last param is an error: that one is wrapped instead.
func New(code ERR, message string, params ...interface{}) *Error {
	var wErr error

	if len(params) > 0 {
		lastParam := params[len(params)-1]

		switch err := lastParam.(type) {
		case *Error:
			wErr = err
			params = params[:len(params)-1]
		case error:
			wErr = &Error{code: ERR_ERROR, message: err.Error(), wrappedErr: err}
			params = params[:len(params)-1]
		}
	}

	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}

	// Check if the code exists in the ERR enum
	if _, ok := ERR_name[int32(code)]; !ok {
		return &Error{
			code:       code,
			message:    "invalid error code",
			wrappedErr: wErr,
		}
	}

	return &Error{
		code:       code,
		message:    message,
		wrappedErr: wErr,
	}
}

// WrapGRPC wraps an error with gRPC status details, one detail per error in the wrap chain.
func WrapGRPC(err error) error {
	if err == nil {
		return nil
	}

	castedErr, ok := err.(*Error)
	if !ok {
		st := status.New(ErrorCodeToGRPCCode(ERR_UNKNOWN), err.Error())

		details, detailsErr := errorDetails(ERR_ERROR, err.Error(), nil)
		if detailsErr == nil {
			if withDetails, wErr := st.WithDetails(details); wErr == nil {
				st = withDetails
			}
		}

		return st.Err()
	}

	// check if the error is already wrapped, don't wrap it with gRPC details
	if castedErr.wrappedErr != nil {
		if _, ok := status.FromError(castedErr.wrappedErr); ok && !isOwnError(castedErr.wrappedErr) {
			return err
		}
	}

	var wrappedErrDetails []protoadapt.MessageV1

	var currErr error = castedErr
	for currErr != nil {
		tErr, isOwn := currErr.(*Error)
		if !isOwn {
			details, detailsErr := errorDetails(ERR_ERROR, currErr.Error(), nil)
			if detailsErr != nil {
				return New(ERR_ERROR, "error serializing error details to protobuf Any", err)
			}

			wrappedErrDetails = append(wrappedErrDetails, details)

			break
		}

		details, detailsErr := errorDetails(tErr.code, tErr.message, tErr.data)
		if detailsErr != nil {
			return New(ERR_ERROR, "error serializing error details to protobuf Any", err)
		}

		wrappedErrDetails = append(wrappedErrDetails, details)
		currErr = tErr.wrappedErr
	}

	st := status.New(ErrorCodeToGRPCCode(castedErr.code), castedErr.message)

	st, detailsErr := st.WithDetails(wrappedErrDetails...)
	if detailsErr != nil {
		return New(ERR_ERROR, "error adding details to the error's gRPC status", err)
	}

	return st.Err()
}

func errorDetails(code ERR, message string, data ErrDataI) (*anypb.Any, error) {
	fields := map[string]interface{}{
		"code":    int32(code),
		"message": message,
	}

	if data != nil {
		fields["data"] = string(data.EncodeErrorData())
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}

	return anypb.New(s)
}

// UnwrapGRPC rebuilds the *Error chain carried in the details of a gRPC status error.
func UnwrapGRPC(err error) *Error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return &Error{
			code:       ERR_ERROR,
			message:    "error unwrapping gRPC details",
			wrappedErr: err,
		}
	}

	details := st.Proto().GetDetails()
	if len(details) == 0 {
		return &Error{
			code:    ERR_ERROR,
			message: err.Error(),
		}
	}

	var prevErr, currErr *Error

	for i := len(details) - 1; i >= 0; i-- {
		var customDetails structpb.Struct
		if uErr := anypb.UnmarshalTo(details[i], &customDetails, proto.UnmarshalOptions{}); uErr != nil {
			continue
		}

		fields := customDetails.GetFields()
		code := ERR(int32(fields["code"].GetNumberValue()))
		currErr = New(code, fields["message"].GetStringValue())

		if dataValue, ok := fields["data"]; ok {
			data, dataErr := GetErrorData(code, []byte(dataValue.GetStringValue()))
			if dataErr == nil {
				currErr.data = data
			}
		}

		if prevErr != nil {
			currErr.wrappedErr = prevErr
		}

		prevErr = currErr
	}

	if currErr == nil {
		return &Error{
			code:    ERR_ERROR,
			message: err.Error(),
		}
	}

	return currErr
}

// ErrorCodeToGRPCCode maps application-specific error codes to gRPC status codes.
func ErrorCodeToGRPCCode(code ERR) codes.Code {
	switch code {
	case ERR_UNKNOWN:
		return codes.Unknown
	case ERR_INVALID_ARGUMENT:
		return codes.InvalidArgument
	case ERR_NOT_FOUND:
		return codes.NotFound
	case ERR_CONTEXT_CANCELED:
		return codes.Canceled
	case ERR_SERVICE_UNAVAILABLE, ERR_STORAGE_UNAVAILABLE:
		return codes.Unavailable
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
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

func Join(errs ...error) error {
	var messages []string

	for _, err := range errs {
		if err != nil {
			messages = append(messages, err.Error())
		}
	}

	if len(messages) == 0 {
		return nil
	}

	return errors.New(strings.Join(messages, ", "))
}

func Is(err, target error) bool {
	if isGRPCWrappedError(err) {
		err = UnwrapGRPC(err)
	}

	return errors.Is(err, target)
}

func AsData(err error, target interface{}) bool {
	if isGRPCWrappedError(err) {
		err = UnwrapGRPC(err)
	}

	// cycle through the wrapped errors and check if any of them match the target
	if castedErr, ok := err.(*Error); ok {
		if castedErr.data != nil && errors.As(castedErr.data, target) {
			return true
		}

		if castedErr.wrappedErr != nil {
			return AsData(castedErr.wrappedErr, target)
		}
	}

	return false
}

func As(err error, target any) bool {
	if isGRPCWrappedError(err) {
		err = UnwrapGRPC(err)
	}

	return errors.As(err, target)
}

func isOwnError(err error) bool {
	_, ok := err.(*Error)
	return ok
}

// isGRPCWrappedError reports whether err is a bare gRPC status error (and not one of ours).
func isGRPCWrappedError(err error) bool {
	if err == nil || isOwnError(err) {
		return false
	}

	_, ok := status.FromError(err)

	return ok
}
