package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

const issuer = "traceblog"

// JWTManager signs and verifies HS256 access tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTManager creates a manager. ttl <= 0 selects 15 minutes.
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateAccessToken issues a token for userID and returns its expiry.
func (m *JWTManager) GenerateAccessToken(userID string, userType entity.UserType) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := entity.Claims{
		UserID:   userID,
		UserType: userType,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(exp),
		},
	}
	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, exp, nil
}

// VerifyToken checks signature, algorithm, issuer and expiry.
func (m *JWTManager) VerifyToken(tokenStr string) (*entity.Claims, error) {
	claims := &entity.Claims{}
	token, err := gojwt.ParseWithClaims(tokenStr, claims, func(t *gojwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithIssuer(issuer),
		gojwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
