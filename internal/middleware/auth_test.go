package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/shagunapp/shagun-api/internal/model"
	"github.com/shagunapp/shagun-api/internal/repository"
	"github.com/shagunapp/shagun-api/shared/auth"
)

const testSecret = "test-secret"

type stubUserRepo struct {
	user *model.User
}

func (r *stubUserRepo) CreateUser(_ context.Context, _ *model.User) (*model.User, error) {
	return nil, nil
}

func (r *stubUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	if r.user == nil || r.user.ID.Hex() != id {
		return nil, mongo.ErrNoDocuments
	}
	return r.user, nil
}

func (r *stubUserRepo) GetUserByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *stubUserRepo) GetUserByMobile(_ context.Context, _ string) (*model.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *stubUserRepo) UpdateUser(_ context.Context, _ string, _ repository.UpdateUserParams) (*model.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *stubUserRepo) DeleteUser(_ context.Context, _ string) (*model.User, error) {
	return nil, mongo.ErrNoDocuments
}

func newTestAuthenticator(user *model.User) *Authenticator {
	logger := zerolog.Nop()
	jwtAuth := auth.NewJWTAuthenticator("shagun-api", "shagun-api")

	return NewAuthenticator(jwtAuth, testSecret, &stubUserRepo{user: user}, &logger)
}

func issueToken(t *testing.T, userID string, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	jwtAuth := auth.NewJWTAuthenticator("shagun-api", "shagun-api")
	token, err := jwtAuth.GenerateToken(auth.SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "shagun-api",
			Audience:  jwt.ClaimStrings{"shagun-api"},
		},
	}, testSecret)
	require.NoError(t, err)

	return token
}

func protected(authn *Authenticator) (http.Handler, *bool, **model.User) {
	called := false
	var seen *model.User

	h := authn.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	return h, &called, &seen
}

func TestRequireAuth_ValidToken(t *testing.T) {
	user := &model.User{ID: bson.NewObjectID(), Name: "Ravi", IsVerified: true}
	authn := newTestAuthenticator(user)
	h, called, seen := protected(authn)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, user.ID.Hex(), time.Hour))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
	require.NotNil(t, *seen)
	assert.Equal(t, user.ID, (*seen).ID)
}

func TestRequireAuth_MissingToken(t *testing.T) {
	authn := newTestAuthenticator(nil)
	h, called, _ := protected(authn)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized, no token")
	assert.False(t, *called)
}

func TestRequireAuth_BadToken(t *testing.T) {
	authn := newTestAuthenticator(nil)
	h, called, _ := protected(authn)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized, token failed")
	assert.False(t, *called)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	user := &model.User{ID: bson.NewObjectID()}
	authn := newTestAuthenticator(user)
	h, called, _ := protected(authn)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, user.ID.Hex(), -time.Minute))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestRequireAuth_DeletedAccount(t *testing.T) {
	// Token is valid but the account is gone: the request is rejected.
	deletedID := bson.NewObjectID()
	authn := newTestAuthenticator(nil)
	h, called, _ := protected(authn)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, deletedID.Hex(), time.Hour))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}
