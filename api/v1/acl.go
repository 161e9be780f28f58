package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/bookbazaar/bookbazaar/api/auth"
	"github.com/bookbazaar/bookbazaar/http/request"
	"github.com/bookbazaar/bookbazaar/log"
	"github.com/bookbazaar/bookbazaar/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type AuthInterceptor struct {
	store  *store.Store
	secret string
}

func NewAuthInterceptor(store *store.Store, secret string) *AuthInterceptor {
	return &AuthInterceptor{store: store, secret: secret}
}

// AuthenticationInterceptor resolves the caller identity from a bearer token
// when one is present. Requests without a valid token pass through
// anonymously, handlers decide for themselves what requires identity.
func (m *AuthInterceptor) AuthenticationInterceptor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isUnauthorizeAllowed(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		accessToken := getAccessToken(r)
		if accessToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.authenticate(accessToken)
		if err != nil {
			log.Debug("Failed to authenticate request",
				zap.String("client_ip", request.FindClientIP(r)),
				zap.String("user_agent", r.UserAgent()),
				zap.Error(err),
			)
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, request.UserEmailContextKey, claims.Subject)
		ctx = context.WithValue(ctx, request.UserNameContextKey, claims.Name)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthInterceptor) authenticate(accessToken string) (*auth.ClaimsMessage, error) {
	claims := &auth.ClaimsMessage{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Name {
			return nil, errors.New("unexpected signing method")
		}
		if kid, ok := t.Header["kid"].(string); !ok || kid != auth.KeyID {
			return nil, errors.New("unexpected key id")
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, errors.New("invalid or expired access token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

func getAccessToken(r *http.Request) string {
	authorizationHeader := r.Header.Get("Authorization")
	if authorizationHeader != "" {
		splitToken := strings.Split(authorizationHeader, "Bearer ")
		if len(splitToken) == 2 {
			return splitToken[1]
		}
	}
	return ""
}
