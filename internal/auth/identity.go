package auth

import (
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the external account proven by a verified ID token.
type Identity struct {
	UID   string
	Email string
}

// IdentityVerifier checks ID tokens issued by the external identity
// provider. Keys come from the provider's JWKS endpoint and refresh in
// the background.
type IdentityVerifier interface {
	Verify(idToken string) (*Identity, error)
	Close()
}

type jwksVerifier struct {
	jwks *keyfunc.JWKS
}

// NewIdentityVerifier fetches the provider's key set and keeps it fresh.
func NewIdentityVerifier(jwksURL string) (IdentityVerifier, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch JWKS from %s: %w", jwksURL, err)
	}
	return &jwksVerifier{jwks: jwks}, nil
}

func (v *jwksVerifier) Verify(idToken string) (*Identity, error) {
	token, err := jwt.Parse(idToken, v.jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("verify ID token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("ID token not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected ID token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("ID token missing subject")
	}
	email, _ := claims["email"].(string)

	return &Identity{UID: sub, Email: email}, nil
}

func (v *jwksVerifier) Close() {
	v.jwks.EndBackground()
}
