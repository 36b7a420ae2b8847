package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/estate/pkg/types"
)

// Error codes carried in ErrorResponse.Code.
const (
	ErrCodeInvalidPayload   = "invalid_payload"
	ErrCodeValidation       = "validation_error"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternal         = "internal_server_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes payload with the given status. The body is marshalled
// before the header goes out, so a payload that cannot be encoded becomes a
// 500 rather than a success status with an empty body.
func respondJSON(w http.ResponseWriter, log logrus.FieldLogger, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).WithField("status", status).Error("encoding response")
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Code: ErrCodeInternal, Message: "Internal server error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// respondError writes an ErrorResponse. devErr, when present, is logged but
// never sent to the client.
func respondError(w http.ResponseWriter, log logrus.FieldLogger, status int, code, msg string, devErr error) {
	respondJSON(w, log, status, ErrorResponse{Code: code, Message: msg})

	entry := log.WithFields(logrus.Fields{"status": status, "code": code})
	if devErr != nil {
		entry = entry.WithError(devErr)
	}
	if status >= http.StatusInternalServerError {
		entry.Error(msg)
	} else {
		entry.Debug(msg)
	}
}

// respondServiceError maps an operation failure to its status and code.
// Untyped errors are internal; their text stays in the log.
func respondServiceError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	var e *types.Error
	if !errors.As(err, &e) {
		respondError(w, log, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", err)
		return
	}
	switch e.Kind {
	case types.KindNotFound:
		respondError(w, log, http.StatusNotFound, ErrCodeNotFound, e.Msg, nil)
	case types.KindValidation:
		respondError(w, log, http.StatusBadRequest, ErrCodeValidation, e.Msg, nil)
	case types.KindUnauthorized:
		respondError(w, log, http.StatusUnauthorized, ErrCodeUnauthorized, e.Msg, nil)
	default:
		respondError(w, log, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", err)
	}
}
