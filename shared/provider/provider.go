// Package provider mediates social login. Each provider exchanges a
// client-side identity assertion for a verified Identity. Providers are
// selected at startup; handlers never branch on platform at call time.
package provider

import (
	"context"
	"errors"
)

var (
	ErrMissingEmail = errors.New("social account does not have an email associated")
	ErrInvalidToken = errors.New("invalid provider token")
)

// Assertion is the identity assertion forwarded by the client after its
// exchange with the provider SDK.
type Assertion struct {
	Email string
	Name  string
	Photo string
	// Token is the provider credential (Google ID token, Facebook access
	// token, Apple identity token). Optional in trust mode.
	Token string
}

// Identity is a provider-attested identity.
type Identity struct {
	Email string
	Name  string
	Photo string
}

// SocialProvider verifies a client assertion against the provider.
type SocialProvider interface {
	Name() string
	Verify(ctx context.Context, assertion Assertion) (*Identity, error)
}

// trusted returns the asserted identity as-is. Used when a provider has
// no verification credentials configured (development / demo mode).
func trusted(assertion Assertion) (*Identity, error) {
	if assertion.Email == "" {
		return nil, ErrMissingEmail
	}

	return &Identity{
		Email: assertion.Email,
		Name:  assertion.Name,
		Photo: assertion.Photo,
	}, nil
}
