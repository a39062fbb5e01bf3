// Package httputil provides JSON request and response helpers for the HTTP
// API.
//
// # Overview
//
//   - [DecodeJSON]: strict, size-limited request body decoding
//   - [WriteJSON]: JSON responses with a status code
//   - [WriteError]: error responses whose status follows the error code
//
// # Errors
//
// [WriteError] maps structured error codes from pkg/errors to HTTP status
// codes ([StatusFor]) and writes a body of the form:
//
//	{"error": {"code": "INVALID_WIDTH", "message": "width cannot be negative: -1"}}
//
// Errors without a code are reported as 500 with a generic message so that
// internal details do not leak to clients.
package httputil
