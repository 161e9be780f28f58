package request //import "github.com/bookbazaar/bookbazaar/http/request"

import (
	"net"
	"net/http"
	"strings"
)

type ContextKey int

const (
	RequestIDContextKey ContextKey = iota
	UserEmailContextKey
	UserNameContextKey
)

func getContextStringValue(r *http.Request, key ContextKey) string {
	if v := r.Context().Value(key); v != nil {
		if value, valid := v.(string); valid {
			return value
		}
	}
	return ""
}

// RequestID returns the request ID assigned by the logging middleware.
func RequestID(r *http.Request) string {
	return getContextStringValue(r, RequestIDContextKey)
}

// GetUserEmail returns the authenticated user's email, if any.
func GetUserEmail(r *http.Request) string {
	return getContextStringValue(r, UserEmailContextKey)
}

// GetUserName returns the authenticated user's name, if any.
func GetUserName(r *http.Request) string {
	return getContextStringValue(r, UserNameContextKey)
}

// FindClientIP resolves the client address, honoring X-Forwarded-For.
func FindClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
