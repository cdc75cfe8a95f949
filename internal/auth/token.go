package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/student-records-api/internal/models"
)

var (
	// ErrTokenInvalid means the signature did not verify or the token is
	// structurally broken.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired means the token verified but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the identity assertion embedded in every issued token.
type Claims struct {
	UserID    int64       `json:"id"`
	Email     string      `json:"email"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	FirstName string      `json:"f_name"`
	LastName  string      `json:"l_name"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 tokens with a single process-wide
// secret. Rotating the secret invalidates all outstanding tokens;
// revocation before expiry is not supported.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer with the given signing secret and
// token lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue creates a signed token carrying the user's identity claims.
func (t *TokenIssuer) Issue(user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.secret)
}

// Verify checks signature and expiry and returns the decoded claims.
func (t *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
