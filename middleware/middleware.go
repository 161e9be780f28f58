package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/bookbazaar/bookbazaar/http/request"
	"github.com/bookbazaar/bookbazaar/log"
	"github.com/bookbazaar/bookbazaar/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Middleware struct {
	store *store.Store
}

func NewMiddleware(store *store.Store) *Middleware {
	return &Middleware{store: store}
}

func (m *Middleware) HandleCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "X-Auth-Token, Authorization, Content-Type, Accept")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Max-Age", "7200")
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoggingRequest tags every request with an ID and logs it on completion.
func (m *Middleware) LoggingRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := request.FindClientIP(r)
		requestID := uuid.New().String()

		ctx := context.WithValue(r.Context(), request.RequestIDContextKey, requestID)
		r = r.WithContext(ctx)

		t1 := time.Now()
		defer func() {
			log.Debug("Incoming request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("proto", r.Proto),
				zap.String("client_ip", clientIP),
				zap.Duration("duration", time.Since(t1)))
		}()

		next.ServeHTTP(w, r)
	})
}

// Compress serves brotli-encoded bodies to clients that accept them.
func (m *Middleware) Compress(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "br") {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Encoding", "br")
		w.Header().Add("Vary", "Accept-Encoding")

		bw := brotli.NewWriterLevel(w, brotli.DefaultCompression)
		defer bw.Close()

		next.ServeHTTP(&brotliResponseWriter{ResponseWriter: w, writer: bw}, r)
	})
}

type brotliResponseWriter struct {
	http.ResponseWriter
	writer *brotli.Writer
}

func (b *brotliResponseWriter) Write(p []byte) (int, error) {
	return b.writer.Write(p)
}
