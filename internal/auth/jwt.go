package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/tagihin/tagihin/internal/config"
	ierr "github.com/tagihin/tagihin/internal/errors"
)

// Claims carries the authenticated identity inside a JWT.
type Claims struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	jwt.RegisteredClaims
}

// Provider issues and validates access tokens.
type Provider interface {
	GenerateToken(userID, companyID string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type jwtProvider struct {
	secret []byte
}

// NewProvider creates a JWT provider from the configured signing secret.
func NewProvider(cfg *config.Configuration) Provider {
	return &jwtProvider{secret: []byte(cfg.Auth.Secret)}
}

func (p *jwtProvider) GenerateToken(userID, companyID string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		UserID:    userID,
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to issue token").
			Mark(ierr.ErrSystem)
	}
	return signed, nil
}

func (p *jwtProvider) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid token").
			Mark(ierr.ErrPermissionDenied)
	}
	if !token.Valid {
		return nil, ierr.NewError("token is not valid").
			WithHint("Invalid token").
			Mark(ierr.ErrPermissionDenied)
	}
	return claims, nil
}
