package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the cookie carrying the session token for browser pages.
const SessionCookie = "__session"

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 30 * 24 * time.Hour

var ErrInvalidSession = errors.New("invalid session")

// Metadata mirrors the identity provider's public metadata block.
type Metadata struct {
	Role string `json:"role,omitempty"`
}

// Claims extends jwt.RegisteredClaims with the principal's profile.
type Claims struct {
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Metadata Metadata `json:"metadata"`
	jwt.RegisteredClaims
}

// Issue signs a session token for p valid until now+SessionTTL.
func Issue(p Principal, key []byte, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(SessionTTL)
	claims := &Claims{
		Name:     p.Name,
		Email:    p.Email,
		Metadata: Metadata{Role: string(p.Role)},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(key)
	if err != nil {
		return "", time.Time{}, err
	}
	return s, expiresAt, nil
}

// Resolver turns session tokens into principals.
type Resolver struct {
	key   []byte
	roles Roles
}

func NewResolver(key []byte, roles Roles) *Resolver {
	return &Resolver{key: key, roles: roles}
}

// Resolve validates token and returns its principal with a canonical role.
func (r *Resolver) Resolve(token string) (*Principal, error) {
	token = BearerToken(token)
	if token == "" {
		return nil, ErrInvalidSession
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return r.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidSession
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrInvalidSession
	}

	return &Principal{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  r.roles.Normalize(claims.Metadata.Role),
	}, nil
}

// BearerToken strips an optional "Bearer " prefix.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
