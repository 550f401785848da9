package jwt

import (
	"time"

	"github.com/mikiasgoitom/traceblog/internal/backend"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

// JWTServiceAdapter adapts JWTManager to the backend.JWTService interface.
type JWTServiceAdapter struct {
	mgr *JWTManager
}

var _ backend.JWTService = (*JWTServiceAdapter)(nil)

// NewJWTService creates a backend.JWTService from JWTManager.
func NewJWTService(mgr *JWTManager) backend.JWTService {
	return &JWTServiceAdapter{mgr: mgr}
}

func (a *JWTServiceAdapter) GenerateAccessToken(userID string, userType entity.UserType) (string, time.Time, error) {
	return a.mgr.GenerateAccessToken(userID, userType)
}

// ParseAccessToken validates an access token and returns its claims. Tokens
// without the uid claim fall back to the subject.
func (a *JWTServiceAdapter) ParseAccessToken(tokenStr string) (*entity.Claims, error) {
	claims, err := a.mgr.VerifyToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return claims, nil
}
