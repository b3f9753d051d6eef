package service

import (
	"errors"
	"time"

	"github.com/MRDEADPOOL12/To-do/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and verifies signed session tokens. It is
// constructed once with the server secret and passed where needed.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Generate(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     now.Add(s.ttl).Unix(),
		"iat":     now.Unix(),
		"nbf":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies signature and time claims and returns the encoded user
// id. Expiry is reported as domain.ErrTokenExpired, every other failure
// as domain.ErrInvalidToken.
func (s *TokenService) Parse(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, domain.ErrTokenExpired
		}
		return uuid.Nil, domain.ErrInvalidToken
	}
	if !token.Valid {
		return uuid.Nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrInvalidToken
	}

	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, domain.ErrInvalidToken
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return userID, nil
}
