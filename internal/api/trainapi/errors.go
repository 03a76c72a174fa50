package trainapi

import "fmt"

// The client reports every failure as exactly one of the four types below so
// that an orchestrating caller can pick a retry policy with errors.As. Nothing
// in this package retries or downgrades a failure to a zero value.

// TransportError means no response was received: the connection failed, the
// request could not be sent, or it was cancelled or timed out in flight.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("train api: transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError means a response arrived with a status outside the 2xx
// range. The raw code is preserved; this layer does not interpret it.
type HTTPStatusError struct {
	Code int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("train api: unexpected status code: %d", e.Code)
}

// DecodeError means the response body was not valid JSON or did not match the
// expected shape for the operation.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("train api: decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EmptyResponseError means the body parsed as JSON but yielded no value where
// one is mandatory (a literal null body on search or book).
type EmptyResponseError struct {
	Operation string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("train api: %s returned an empty response", e.Operation)
}
