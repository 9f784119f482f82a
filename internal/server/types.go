package server

import "encoding/json"

// singleRequest is the body of POST /fib. Fields are kept raw so that
// negative, fractional and oversized indices are reported precisely.
type singleRequest struct {
	N json.RawMessage `json:"n"`
}

// rangeRequest is the body of POST /range.
type rangeRequest struct {
	Start json.RawMessage `json:"start"`
	End   json.RawMessage `json:"end"`
}

// SingleResponse carries F(n) as an exact decimal string.
type SingleResponse struct {
	F string `json:"F"`
}

// RangeResponse carries F(start)..F(end) in index order.
type RangeResponse struct {
	F []string `json:"F"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the HTTP status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}
