package errors

var (
	ErrUnknown            = New(ERR_UNKNOWN, "unknown error")
	ErrInvalidArgument    = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrNotFound           = New(ERR_NOT_FOUND, "not found")
	ErrProcessing         = New(ERR_PROCESSING, "error processing")
	ErrConfiguration      = New(ERR_CONFIGURATION, "configuration error")
	ErrContext            = New(ERR_CONTEXT, "context error")
	ErrContextCanceled    = New(ERR_CONTEXT_CANCELED, "context canceled")
	ErrError              = New(ERR_ERROR, "generic error")
	ErrServiceUnavailable = New(ERR_SERVICE_UNAVAILABLE, "service unavailable")
	ErrServiceNotStarted  = New(ERR_SERVICE_NOT_STARTED, "service not started")
	ErrServiceError       = New(ERR_SERVICE_ERROR, "service error")
	ErrStorageUnavailable = New(ERR_STORAGE_UNAVAILABLE, "storage unavailable")
	ErrStorageError       = New(ERR_STORAGE_ERROR, "storage error")
	ErrStateError         = New(ERR_STATE_ERROR, "error in state")

	ErrBlockInvalid            = New(ERR_BLOCK_INVALID, "block invalid")
	ErrBlockMismatchedIndex    = New(ERR_BLOCK_MISMATCHED_INDEX, "block index does not match chain length")
	ErrBlockInvalidHash        = New(ERR_BLOCK_INVALID_HASH, "block hash does not meet difficulty target")
	ErrBlockAchronTimestamp    = New(ERR_BLOCK_ACHRON_TIMESTAMP, "block timestamp is not after its predecessor")
	ErrBlockMismatchedPrevHash = New(ERR_BLOCK_MISMATCHED_PREV_HASH, "block previous hash does not match predecessor")
	ErrBlockInvalidGenesis     = New(ERR_BLOCK_INVALID_GENESIS, "genesis block previous hash is not zero")
	ErrBlockError              = New(ERR_BLOCK_ERROR, "block error")

	ErrTxInvalid                = New(ERR_TX_INVALID, "tx invalid")
	ErrTxInvalidInput           = New(ERR_TX_INVALID_INPUT, "tx input is not an unspent output")
	ErrTxInsufficientInputValue = New(ERR_TX_INSUFFICIENT_INPUT_VALUE, "tx outputs exceed inputs")
	ErrTxInvalidCoinbase        = New(ERR_TX_INVALID_COINBASE, "invalid coinbase tx")
	ErrTxValueOverflow          = New(ERR_TX_VALUE_OVERFLOW, "tx value overflow")
	ErrTxError                  = New(ERR_TX_ERROR, "tx error")
)

// errors initialization functions

func NewUnknownError(message string, params ...interface{}) error {
	return New(ERR_UNKNOWN, message, params...)
}
func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewNotFoundError(message string, params ...interface{}) error {
	return New(ERR_NOT_FOUND, message, params...)
}
func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewContextError(message string, params ...interface{}) error {
	return New(ERR_CONTEXT, message, params...)
}
func NewContextCanceledError(message string, params ...interface{}) error {
	return New(ERR_CONTEXT_CANCELED, message, params...)
}
func NewError(message string, params ...interface{}) error {
	return New(ERR_ERROR, message, params...)
}
func NewServiceUnavailableError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_UNAVAILABLE, message, params...)
}
func NewServiceNotStartedError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_NOT_STARTED, message, params...)
}
func NewServiceError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_ERROR, message, params...)
}
func NewStorageUnavailableError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_UNAVAILABLE, message, params...)
}
func NewStorageError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_ERROR, message, params...)
}
func NewStateInitializationError(message string, params ...interface{}) error {
	return New(ERR_STATE_INITIALIZATION, message, params...)
}
func NewStateError(message string, params ...interface{}) error {
	return New(ERR_STATE_ERROR, message, params...)
}
func NewBlockInvalidError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_INVALID, message, params...)
}
func NewBlockMismatchedIndexError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_MISMATCHED_INDEX, message, params...)
}
func NewBlockInvalidHashError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_INVALID_HASH, message, params...)
}
func NewBlockAchronTimestampError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_ACHRON_TIMESTAMP, message, params...)
}
func NewBlockMismatchedPrevHashError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_MISMATCHED_PREV_HASH, message, params...)
}
func NewBlockInvalidGenesisError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_INVALID_GENESIS, message, params...)
}
func NewBlockError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_ERROR, message, params...)
}
func NewTxInvalidError(message string, params ...interface{}) error {
	return New(ERR_TX_INVALID, message, params...)
}
func NewTxInvalidInputError(message string, params ...interface{}) error {
	return New(ERR_TX_INVALID_INPUT, message, params...)
}
func NewTxInsufficientInputValueError(message string, params ...interface{}) error {
	return New(ERR_TX_INSUFFICIENT_INPUT_VALUE, message, params...)
}
func NewTxInvalidCoinbaseError(message string, params ...interface{}) error {
	return New(ERR_TX_INVALID_COINBASE, message, params...)
}
func NewTxValueOverflowError(message string, params ...interface{}) error {
	return New(ERR_TX_VALUE_OVERFLOW, message, params...)
}
func NewTxError(message string, params ...interface{}) error {
	return New(ERR_TX_ERROR, message, params...)
}
