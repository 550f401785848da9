package blogapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mikiasgoitom/traceblog/internal/domain/apperror"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"golang.org/x/oauth2"
)

// AuthClient calls the auth endpoints of the blog API.
type AuthClient struct {
	c *Client
}

// NewAuthClient builds an auth client. Login does not need a token source;
// Me does.
func NewAuthClient(opts Options) (*AuthClient, error) {
	c, err := NewClient(opts)
	if err != nil {
		return nil, err
	}
	return &AuthClient{c: c}, nil
}

// LoginWithCredentials exchanges a phone number and password for tokens.
func (a *AuthClient) LoginWithCredentials(ctx context.Context, req entity.LoginWithCredentialsRequest) (*entity.AuthResult, error) {
	var result entity.AuthResult
	status, err := a.c.do(ctx, http.MethodPost, "/auth/login-with-credentials", nil, req, &result)
	if err != nil {
		return nil, err
	}
	if result.AccessToken == "" {
		return nil, apperror.Malformed(status, errors.New("login response without access token"))
	}
	return &result, nil
}

// Me returns the user the current token belongs to.
func (a *AuthClient) Me(ctx context.Context) (*entity.User, error) {
	var user entity.User
	if _, err := a.c.do(ctx, http.MethodPost, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// defaultTokenLifetime is assumed when the access token carries no exp claim.
const defaultTokenLifetime = 15 * time.Minute

// loginTokenSource logs in with fixed credentials whenever a token is needed.
type loginTokenSource struct {
	auth *AuthClient
	req  entity.LoginWithCredentialsRequest
}

// LoginTokenSource returns a token source that logs in lazily and reuses the
// access token until it expires. auth must not itself use a token source.
func LoginTokenSource(auth *AuthClient, phone, password string) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &loginTokenSource{
		auth: auth,
		req:  entity.LoginWithCredentialsRequest{PhoneNumber: phone, Password: password},
	})
}

// StaticTokenSource wraps an access token obtained elsewhere.
func StaticTokenSource(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
}

func (s *loginTokenSource) Token() (*oauth2.Token, error) {
	result, err := s.auth.LoginWithCredentials(context.Background(), s.req)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       tokenExpiry(result.AccessToken),
	}, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// server remains the only judge of validity.
func tokenExpiry(accessToken string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(defaultTokenLifetime)
}
