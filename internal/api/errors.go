package api

import "fmt"

// genericErrMsg is shown when the service fails without a structured
// {error} body.
const genericErrMsg = "the fleet service returned an unexpected response"

// TransportError indicates the service could not be reached or did not
// answer in time.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("fleet service unreachable during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error { return e.Err }

// ServerError indicates the service answered with a failure. Message holds
// the server-supplied error string when one was present, otherwise the
// generic fallback.
type ServerError struct {
	Op         string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *ServerError) Error() string { return e.Message }

// SchemaError indicates a 2xx payload whose shape did not match the
// contract (for example, an expected collection that is not a sequence).
// Consumers treat it exactly like a transport failure.
type SchemaError struct {
	Op     string
	Detail string
}

// Error implements the error interface.
func (e *SchemaError) Error() string { return "invalid data format" }
