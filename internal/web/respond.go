package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/justestif/go-ytmusic/ytmusic"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps a catalog error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ytmusic.ErrInvalidVideoID):
		return http.StatusBadRequest
	case errors.Is(err, ytmusic.ErrNotInitialized):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		// Parse failures, malformed responses and transport errors all
		// come from upstream.
		return http.StatusBadGateway
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("web: %v", err)
	}
	writeError(w, status, err.Error())
}

// listResponse wraps paginated results. When a later page fails the
// items gathered so far are returned with Incomplete set.
type listResponse struct {
	Items      any    `json:"items"`
	Incomplete bool   `json:"incomplete,omitempty"`
	Error      string `json:"error,omitempty"`
}

// writeList writes a paginated result. An error with no items is a failure;
// an error after some items is reported inside a 200 response.
func writeList[T any](w http.ResponseWriter, items []T, err error) {
	if err != nil && len(items) == 0 {
		writeServiceError(w, err)
		return
	}
	resp := listResponse{Items: items}
	if err != nil {
		log.Printf("web: partial result: %v", err)
		resp.Incomplete = true
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}
