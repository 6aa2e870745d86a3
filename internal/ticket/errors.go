package ticket

import (
	"encoding/json"
	"net/http"

	"github.com/k1networth/itdesk/internal/shared/httpx"
)

type apiErrorResponse struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ValidationError reports a rejected create input. It is returned by the
// request validator and by every Store at its boundary.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

func WriteErrorR(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	rid := httpx.GetRequestID(r.Context())

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiErrorResponse{
		Error: apiError{Code: code, Message: message, RequestID: rid},
	})
}
