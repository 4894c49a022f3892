// Package token issues and verifies the signed bearer tokens that
// authenticate every protected request. Tokens are stateless: validity is
// determined entirely by the HMAC signature and the embedded expiry, so
// rotating the secret invalidates everything outstanding.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
)

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the given subject, valid from now for the
// configured window.
func (s *Service) Issue(userID uuid.UUID) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the subject. Failures are
// one of ErrMalformed, ErrSignatureInvalid or ErrExpired; the distinction is
// kept so callers can report expired tokens differently from garbage.
func (s *Service) Verify(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return uuid.Nil, ErrSignatureInvalid
		default:
			return uuid.Nil, ErrMalformed
		}
	}
	if !token.Valid {
		return uuid.Nil, ErrSignatureInvalid
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrMalformed
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrMalformed
	}
	return userID, nil
}
