package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/traceblog/internal/backend"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/mikiasgoitom/traceblog/internal/handler/http/dto"
)

type AuthHandler struct {
	authService backend.IAuthService
}

func NewAuthHandler(authService backend.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginWithCredentials serves POST /auth/login-with-credentials.
func (h *AuthHandler) LoginWithCredentials(c *gin.Context) {
	var req entity.LoginWithCredentialsRequest
	if !BindAndValidate(c, &req) {
		return
	}
	result, err := h.authService.LoginWithCredentials(c.Request.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, "Login successful", dto.LoginResponse{
		User:        dto.ToUserResponse(result.User),
		AccessToken: result.AccessToken,
	})
}

// Me serves POST /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, "OK", dto.ToUserResponse(*user))
}
