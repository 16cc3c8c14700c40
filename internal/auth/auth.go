// Package auth issues and validates the bearer tokens that guard the
// scorekeeping endpoints.
package auth

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/festy23/softball_scoreboard/internal/config"
)

// Role is the access level carried by a token.
type Role string

// Known roles.
const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

var (
	// ErrDisabled indicates that no signing secret is configured.
	ErrDisabled = errors.New("auth disabled")
	// ErrInvalidToken indicates a malformed or wrongly signed token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates a token past its expiry.
	ErrExpiredToken = errors.New("token expired")
	// ErrForbidden indicates a valid token without admin rights.
	ErrForbidden = errors.New("forbidden")
)

// Claims are the token claims.
type Claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// Issuer signs and checks HS256 tokens.
type Issuer struct {
	secret   []byte
	issuer   string
	ttl      time.Duration
	subjects []string
	now      func() time.Time
}

// NewIssuer creates an issuer from cfg.
func NewIssuer(cfg config.AuthConfig) *Issuer {
	return &Issuer{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		ttl:      cfg.TokenTTL,
		subjects: cfg.AdminSubjects,
		now:      time.Now,
	}
}

// Enabled reports whether tokens can be issued and validated.
func (i *Issuer) Enabled() bool {
	return len(i.secret) > 0
}

// Issue signs a token for subject. ttl <= 0 uses the configured lifetime.
func (i *Issuer) Issue(subject string, role Role, ttl time.Duration) (string, error) {
	if !i.Enabled() {
		return "", ErrDisabled
	}
	if ttl <= 0 {
		ttl = i.ttl
	}

	now := i.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns its claims.
func (i *Issuer) Parse(token string) (*Claims, error) {
	if !i.Enabled() {
		return nil, ErrDisabled
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authorize checks that claims grant admin access.
func (i *Issuer) Authorize(claims *Claims) error {
	if claims.Role != RoleAdmin {
		return ErrForbidden
	}
	if len(i.subjects) > 0 && !slices.Contains(i.subjects, claims.Subject) {
		return ErrForbidden
	}
	return nil
}
