package response // import "github.com/bookbazaar/bookbazaar/http/response"

import (
	"encoding/json"
	"net/http"

	"github.com/bookbazaar/bookbazaar/http/request"
	"github.com/bookbazaar/bookbazaar/log"
	"go.uber.org/zap"
)

const contentTypeHeader = `application/json`

// Error codes on the wire. Clients match on these, not on messages.
const (
	CodeInvalidInput       = "invalid_input"
	CodeInvalidImage       = "invalid_image"
	CodeEmailExists        = "email_exists"
	CodeInvalidCredentials = "invalid_credentials"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeInternal           = "internal"
)

// OK creates a new JSON response with a 200 status code.
func OK(w http.ResponseWriter, r *http.Request, body interface{}) {
	builder := New(w, r)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSON(body))
	builder.Write()
}

// Created sends a created response to the client.
func Created(w http.ResponseWriter, r *http.Request, body interface{}) {
	builder := New(w, r)
	builder.WithStatus(http.StatusCreated)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSON(body))
	builder.Write()
}

// NoContent sends a no content response to the client.
func NoContent(w http.ResponseWriter, r *http.Request) {
	builder := New(w, r)
	builder.WithStatus(http.StatusNoContent)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.Write()
}

// ServerError sends an internal error to the client.
func ServerError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error(http.StatusText(http.StatusInternalServerError),
		zap.Error(err),
		zap.String("request_id", request.RequestID(r)),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.String("request.user_agent", r.UserAgent()),
		zap.Int("response.status_code", http.StatusInternalServerError),
	)

	writeErrorCode(w, r, http.StatusInternalServerError, CodeInternal)
}

// BadRequest sends a bad request error with the given code to the client.
func BadRequest(w http.ResponseWriter, r *http.Request, code string) {
	log.Warn(http.StatusText(http.StatusBadRequest),
		zap.String("error_code", code),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.String("request.user_agent", r.UserAgent()),
		zap.Int("response.status_code", http.StatusBadRequest),
	)

	writeErrorCode(w, r, http.StatusBadRequest, code)
}

// Unauthorized rejects a sign-in attempt.
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	log.Warn(http.StatusText(http.StatusUnauthorized),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.String("request.user_agent", r.UserAgent()),
		zap.Int("response.status_code", http.StatusUnauthorized),
	)

	writeErrorCode(w, r, http.StatusUnauthorized, CodeInvalidCredentials)
}

// Forbidden sends a forbidden error to the client.
func Forbidden(w http.ResponseWriter, r *http.Request) {
	log.Warn(http.StatusText(http.StatusForbidden),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.String("request.user_agent", r.UserAgent()),
		zap.Int("response.status_code", http.StatusForbidden),
	)

	writeErrorCode(w, r, http.StatusForbidden, CodeForbidden)
}

// NotFound sends a page not found error to the client.
func NotFound(w http.ResponseWriter, r *http.Request) {
	log.Warn(http.StatusText(http.StatusNotFound),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.String("request.user_agent", r.UserAgent()),
		zap.Int("response.status_code", http.StatusNotFound),
	)

	writeErrorCode(w, r, http.StatusNotFound, CodeNotFound)
}

// Conflict sends a conflict error with the given code to the client.
func Conflict(w http.ResponseWriter, r *http.Request, code string) {
	log.Warn(http.StatusText(http.StatusConflict),
		zap.String("error_code", code),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.String("request.user_agent", r.UserAgent()),
		zap.Int("response.status_code", http.StatusConflict),
	)

	writeErrorCode(w, r, http.StatusConflict, code)
}

func writeErrorCode(w http.ResponseWriter, r *http.Request, status int, code string) {
	builder := New(w, r)
	builder.WithStatus(status)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSONError(code))
	builder.Write()
}

func toJSONError(code string) []byte {
	type errorMsg struct {
		Error string `json:"error"`
	}

	return toJSON(errorMsg{Error: code})
}

func toJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error("Unable to marshal JSON response", zap.Any("error", err))
		return []byte("")
	}

	return b
}
