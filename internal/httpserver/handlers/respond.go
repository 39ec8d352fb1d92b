package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/linkbridge/internal/dispatch"
	"github.com/MrSnakeDoc/linkbridge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbridge/internal/logger"
)

// maxBodyBytes bounds the JSON body of POST/PUT requests.
const maxBodyBytes = 1 << 20

var (
	errInvalidJSON  = errors.New("invalid JSON body")
	errBodyTooLarge = errors.New("request body too large")
)

// apiError is the Shaarli error body.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status and writes the Shaarli error body.
// Server-side failures only carry the status text: details stay in the logs.
// Once the request deadline has passed the timeout middleware answers 504,
// so nothing is written here.
func writeError(d deps.Deps, w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	expired := errors.Is(r.Context().Err(), context.DeadlineExceeded)
	if expired {
		status = http.StatusGatewayTimeout
	}

	fields := []logger.Field{
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
		logger.Int("status", status),
		logger.String("request_id", middleware.GetReqID(r.Context())),
		logger.Error(err),
	}
	if status >= http.StatusInternalServerError {
		d.Logger.Error("request failed", fields...)
	} else {
		d.Logger.Warn("request rejected", fields...)
	}

	if expired {
		return
	}
	writeJSON(w, status, apiError{Code: status, Message: errorMessage(status, err)})
}

func errorMessage(status int, err error) string {
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return http.StatusText(status) + ": " + err.Error()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errInvalidJSON), errors.Is(err, dispatch.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, dispatch.ErrBackend):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// readBody reads exactly Content-Length bytes. A missing or unparsable
// length reads nothing.
func readBody(r *http.Request) ([]byte, error) {
	n := r.ContentLength
	if n <= 0 {
		return []byte{}, nil
	}
	if n > maxBodyBytes {
		return nil, fmt.Errorf("%w: %d bytes", errBodyTooLarge, n)
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r.Body, body); err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}

// decodeBody reads the body and decodes it into v.
func decodeBody(r *http.Request, v any) ([]byte, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return body, fmt.Errorf("%w: %w", errInvalidJSON, err)
	}
	return body, nil
}
