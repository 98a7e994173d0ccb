package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shagunapp/shagun-api/internal/model"
	"github.com/shagunapp/shagun-api/internal/repository"
	"github.com/shagunapp/shagun-api/shared/auth"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// UserFromContext returns the authenticated user placed by RequireAuth.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	return user, ok
}

// ContextWithUser returns a copy of ctx carrying the authenticated user.
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// Authenticator guards routes behind a bearer session token. The token
// is validated and the account is loaded fresh on every request, so a
// deleted account is locked out immediately even with a valid token.
type Authenticator struct {
	jwtAuth  auth.JWTAuthenticator
	secret   string
	userRepo repository.UserRepository
	logger   *zerolog.Logger
}

// NewAuthenticator creates a new Authenticator instance.
func NewAuthenticator(
	jwtAuth auth.JWTAuthenticator,
	secret string,
	userRepo repository.UserRepository,
	logger *zerolog.Logger,
) *Authenticator {
	return &Authenticator{
		jwtAuth:  jwtAuth,
		secret:   secret,
		userRepo: userRepo,
		logger:   logger,
	}
}

// RequireAuth rejects requests without a valid bearer token and injects
// the authenticated user into the request context.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(w, "Not authorized, no token")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenString == "" {
			unauthorized(w, "Not authorized, no token")
			return
		}

		claims := &auth.SessionClaims{}
		if _, err := a.jwtAuth.ValidateTokenWithClaims(tokenString, a.secret, claims); err != nil {
			a.logger.Debug().Err(err).Msg("session token rejected")
			unauthorized(w, "Not authorized, token failed")
			return
		}

		user, err := a.userRepo.GetUser(r.Context(), claims.UserID)
		if err != nil {
			a.logger.Debug().Err(err).Str("user_id", claims.UserID).Msg("session user lookup failed")
			unauthorized(w, "Not authorized, token failed")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
