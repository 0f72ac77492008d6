package errors

import "strconv"

// ERR is the numeric error code carried by every *Error.
// Codes are grouped in ranges of ten so GetErrorCategory can classify them.
type ERR int32

const (
	ERR_UNKNOWN          ERR = 0
	ERR_INVALID_ARGUMENT ERR = 1
	ERR_NOT_FOUND        ERR = 3
	ERR_PROCESSING       ERR = 4
	ERR_CONFIGURATION    ERR = 5
	ERR_CONTEXT          ERR = 6
	ERR_CONTEXT_CANCELED ERR = 7
	ERR_ERROR            ERR = 9

	// block validation
	ERR_BLOCK_INVALID              ERR = 10
	ERR_BLOCK_MISMATCHED_INDEX     ERR = 11
	ERR_BLOCK_INVALID_HASH         ERR = 12
	ERR_BLOCK_ACHRON_TIMESTAMP     ERR = 13
	ERR_BLOCK_MISMATCHED_PREV_HASH ERR = 14
	ERR_BLOCK_INVALID_GENESIS      ERR = 15
	ERR_BLOCK_ERROR                ERR = 19

	// transaction validation
	ERR_TX_INVALID                  ERR = 30
	ERR_TX_INVALID_INPUT            ERR = 31
	ERR_TX_INSUFFICIENT_INPUT_VALUE ERR = 32
	ERR_TX_INVALID_COINBASE         ERR = 33
	ERR_TX_VALUE_OVERFLOW           ERR = 34
	ERR_TX_ERROR                    ERR = 39

	ERR_SERVICE_UNAVAILABLE ERR = 50
	ERR_SERVICE_NOT_STARTED ERR = 51
	ERR_SERVICE_ERROR       ERR = 52

	ERR_STORAGE_UNAVAILABLE ERR = 60
	ERR_STORAGE_ERROR       ERR = 62

	ERR_STATE_INITIALIZATION ERR = 100
	ERR_STATE_ERROR          ERR = 101
)

var ERR_name = map[int32]string{
	0:   "UNKNOWN",
	1:   "INVALID_ARGUMENT",
	3:   "NOT_FOUND",
	4:   "PROCESSING",
	5:   "CONFIGURATION",
	6:   "CONTEXT",
	7:   "CONTEXT_CANCELED",
	9:   "ERROR",
	10:  "BLOCK_INVALID",
	11:  "BLOCK_MISMATCHED_INDEX",
	12:  "BLOCK_INVALID_HASH",
	13:  "BLOCK_ACHRON_TIMESTAMP",
	14:  "BLOCK_MISMATCHED_PREV_HASH",
	15:  "BLOCK_INVALID_GENESIS",
	19:  "BLOCK_ERROR",
	30:  "TX_INVALID",
	31:  "TX_INVALID_INPUT",
	32:  "TX_INSUFFICIENT_INPUT_VALUE",
	33:  "TX_INVALID_COINBASE",
	34:  "TX_VALUE_OVERFLOW",
	39:  "TX_ERROR",
	50:  "SERVICE_UNAVAILABLE",
	51:  "SERVICE_NOT_STARTED",
	52:  "SERVICE_ERROR",
	60:  "STORAGE_UNAVAILABLE",
	62:  "STORAGE_ERROR",
	100: "STATE_INITIALIZATION",
	101: "STATE_ERROR",
}

var ERR_value = func() map[string]int32 {
	m := make(map[string]int32, len(ERR_name))
	for k, v := range ERR_name {
		m[v] = k
	}

	return m
}()

func (x ERR) String() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return "ERR(" + strconv.Itoa(int(x)) + ")"
}

func (x ERR) Enum() *ERR {
	p := new(ERR)
	*p = x

	return p
}
