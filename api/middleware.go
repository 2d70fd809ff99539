package api

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"
)

// MiddlewareAuth holds the shared service token expected from callers of the
// dispatch endpoint. The mobile backend is the only intended caller.
type MiddlewareAuth struct {
	ServiceToken string
}

var authenticator auth.Authenticator
var cache store.Cache

// Middleware adds bearer token authentication around accessing the routes
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		user, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		zap.S().Debugf("caller %s authenticated\n", user.UserName())
		next.ServeHTTP(w, r)
	})
}

// SetupGoGuardian sets up the go-guardian middleware
func (m MiddlewareAuth) SetupGoGuardian() {
	authenticator = auth.New()
	cache = store.NewFIFO(context.Background(), 12*time.Hour)
	tokenStrategy := bearer.New(m.validateServiceToken, cache)

	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// validateServiceToken accepts the configured shared service token
func (m MiddlewareAuth) validateServiceToken(ctx context.Context, r *http.Request, token string) (auth.Info, error) {
	if m.ServiceToken == "" {
		return nil, fmt.Errorf("service token not configured")
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(m.ServiceToken)) != 1 {
		return nil, fmt.Errorf("invalid service token")
	}
	return auth.NewDefaultUser("service", "0", nil, nil), nil
}
