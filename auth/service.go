// Package auth implements the token and password core of the application:
// bcrypt credential hashing and HS256 session tokens carrying a snapshot of
// the user's identity (id, email, role, name).
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SeniduRavihara/usj-event-calendar/config"
	"github.com/SeniduRavihara/usj-event-calendar/models"
)

// TokenTTL is the lifetime encoded into every issued token. Note this is
// longer than the 24h login cookie: a token extracted from the cookie keeps
// verifying for up to 7 days after the cookie itself has lapsed.
const TokenTTL = 7 * 24 * time.Hour

// Verification failures, distinguished so callers can tell a missing token
// from a lapsed or forged one.
var (
	ErrNoToken      = errors.New("no token present")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the signed session payload. It is a point-in-time snapshot taken
// at login; role or profile changes after login are not reflected until the
// user signs in again.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Service issues and verifies session tokens. The signing secret is fixed at
// construction; verification never reads ambient environment state.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(cfg *config.Config) *Service {
	return &Service{secret: []byte(cfg.JWTSecret), ttl: TokenTTL}
}

// Issue signs a token for the given user, expiring after the service TTL.
func (s *Service) Issue(user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a signed token. It returns ErrTokenExpired for
// a lapsed token and ErrTokenInvalid for anything else that fails to verify
// (bad signature, malformed payload, wrong signing method).
func (s *Service) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
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
