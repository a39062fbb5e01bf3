package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	serrors "github.com/matzehuels/sectionflow/pkg/errors"
)

// DefaultMaxBody is the request body limit used when none is given.
const DefaultMaxBody = 4 << 20

// ErrorBody is the JSON shape of an error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code and the user message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON decodes the request body into v, rejecting unknown fields,
// trailing data and bodies larger than limit bytes. A limit <= 0 uses
// [DefaultMaxBody]. Failures are INVALID_INPUT errors.
func DecodeJSON(r *http.Request, v any, limit int64) error {
	if limit <= 0 {
		limit = DefaultMaxBody
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, limit+1))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return serrors.New(serrors.ErrCodeInvalidInput, "request body is empty or truncated (limit %d bytes)", limit)
		}
		return serrors.Wrap(serrors.ErrCodeInvalidInput, err, "invalid request body")
	}
	if dec.More() {
		return serrors.New(serrors.ErrCodeInvalidInput, "request body must contain a single JSON object")
	}
	return nil
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteError writes err as an error response and returns the status used.
func WriteError(w http.ResponseWriter, err error) int {
	status := StatusFor(err)
	detail := ErrorDetail{
		Code:    string(serrors.GetCode(err)),
		Message: serrors.UserMessage(err),
	}
	if detail.Code == "" || status == http.StatusInternalServerError {
		detail = ErrorDetail{Code: string(serrors.ErrCodeInternal), Message: "internal error"}
	}
	_ = WriteJSON(w, status, ErrorBody{Error: detail})
	return status
}

// StatusFor returns the HTTP status code for an error.
func StatusFor(err error) int {
	switch serrors.GetCode(err) {
	case serrors.ErrCodeInvalidInput, serrors.ErrCodeInvalidFormat, serrors.ErrCodeInvalidDocument,
		serrors.ErrCodeInvalidAlignment, serrors.ErrCodeInvalidMode, serrors.ErrCodeInvalidPath,
		serrors.ErrCodeInvalidWidth, serrors.ErrCodeInvalidColumns, serrors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case serrors.ErrCodeNotFound, serrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case serrors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}
