package usecase

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avdeev/module-certification/internal/core/domain"
)

// ErrInvalidToken indicates the identity token is malformed or its signature
// failed verification.
var ErrInvalidToken = errors.New("invalid identity token")

// TokenVerifier validates HMAC-signed identity tokens issued by the identity
// platform and extracts the caller identity.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier constructs a verifier for the given shared secret.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses the token and returns the embedded identity. The optional
// role claim is carried through untouched; role resolution happens during
// authentication.
func (v *TokenVerifier) Verify(tokenString string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	uid, _ := claims["sub"].(string)
	if uid == "" {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &domain.Identity{UID: uid, Email: email, RoleClaim: role}, nil
}
