package llm

import "errors"

var (
	// ErrDisabled is returned when a call is attempted with the LLM turned off.
	ErrDisabled = errors.New("llm integration disabled")

	// ErrUnavailable indicates the model server is unreachable.
	ErrUnavailable = errors.New("llm server unavailable")

	// ErrTimeout is returned when a call runs past LLMConfig.TimeoutMs.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput means the reply held no JSON matching the target type.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted wraps the last failure once MaxRetries is spent.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)

// ErrorCode is the short label used in call logs.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrDisabled):
		return "DISABLED"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
