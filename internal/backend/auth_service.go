package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/traceblog/internal/usecase/contract"
)

// AuthService logs users in with phone number and password.
type AuthService struct {
	users  contract.IUserRepository
	hasher contract.IHasher
	jwt    JWTService
	logger usecasecontract.IAppLogger
}

func NewAuthService(users contract.IUserRepository, hasher contract.IHasher, jwt JWTService, logger usecasecontract.IAppLogger) *AuthService {
	return &AuthService{users: users, hasher: hasher, jwt: jwt, logger: logger}
}

// LoginWithCredentials verifies the password and issues an access token.
// An unknown phone number and a wrong password fail the same way.
func (s *AuthService) LoginWithCredentials(ctx context.Context, phone, password string) (*entity.AuthResult, error) {
	user, err := s.users.GetUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, contract.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		s.logger.Warnf("failed login for user %s", user.ID)
		return nil, ErrInvalidCredentials
	}
	token, _, err := s.jwt.GenerateAccessToken(user.ID, user.UserType)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	return &entity.AuthResult{User: *user, AccessToken: token}, nil
}

// Me returns the user behind a verified token.
func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// Authenticate verifies a bearer token and returns its claims.
func (s *AuthService) Authenticate(tokenStr string) (*entity.Claims, error) {
	claims, err := s.jwt.ParseAccessToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no user id")
	}
	return claims, nil
}
