package web

// errors.go translates application errors into HTTP responses. The upload
// pipeline and stores classify their failures (internal/apperr); this file
// is the single place where kinds become status codes. Technical detail is
// logged with the request ID; clients only ever see the classified message
// and its support code.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mkovtun/receiptd/internal/apperr"
	"github.com/mkovtun/receiptd/internal/ingest"

	"github.com/go-chi/chi/v5/middleware"
)

// respondError logs the technical error and writes the client-facing JSON
// payload with the mapped status code.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := apperr.UserMessageFor(err)
	if errors.Is(err, ingest.ErrTooManyUploads) {
		msg = apperr.UserMessage{
			Message: "Too many uploads in progress",
			Action:  "Please wait a moment and try again",
			Code:    "UPL001",
		}
	}

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	writeJSON(w, status, msg)
}

// statusFor maps an error to its HTTP status. The four user-correctable
// parse failures are client errors; conflicts are retryable; everything
// unclassified is a server error.
func statusFor(err error) int {
	if errors.Is(err, ingest.ErrTooManyUploads) {
		return http.StatusTooManyRequests
	}
	switch apperr.KindOf(err) {
	case apperr.KindUnsupportedFormat,
		apperr.KindDecode,
		apperr.KindInsufficientData,
		apperr.KindHeaderNotFound:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes v with the given status. Encoding failures are logged;
// the header is already written at that point.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
