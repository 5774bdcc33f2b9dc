package web

import (
	"encoding/json"
	"net/http"

	"github.com/M4rkoza7/aces/internal/core"
	"github.com/M4rkoza7/aces/internal/logging"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// statusFor maps a user message code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case "TBL002":
		return http.StatusNotFound
	case "TBL001":
		return http.StatusConflict
	case "TBL003", "SES001":
		return http.StatusUnprocessableEntity
	case "FMT001", "FMT002":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError converts an internal error into a JSON error response.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	msg := core.MapError(err)
	status := statusFor(msg.Code)

	log := logging.FromContext(r.Context())
	if status >= 500 {
		log.Error("request failed", "code", msg.Code, "error", err)
	} else {
		log.Warn("request rejected", "code", msg.Code, "error", err)
	}

	respondJSON(w, status, ErrorResponse{
		Code:    msg.Code,
		Message: msg.Message,
		Action:  msg.Action,
	})
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
