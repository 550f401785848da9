package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/traceblog/internal/backend"
	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/mikiasgoitom/traceblog/internal/handler/http/dto"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/validator"
)

// ctxUserID is the gin context key the auth middleware stores the user id under.
const ctxUserID = "userID"

// ErrorHandler centralizes error responses. message is a string or []string.
func ErrorHandler(c *gin.Context, statusCode int, message interface{}) {
	c.AbortWithStatusJSON(statusCode, dto.ErrorResponse{
		Message:    message,
		StatusCode: statusCode,
		Error:      http.StatusText(statusCode),
	})
}

// SuccessHandler centralizes success responses in the {meta, data} envelope.
func SuccessHandler(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, dto.Envelope{
		Meta: entity.ResponseMeta{StatusCode: statusCode, Message: message},
		Data: data,
	})
}

// BindAndValidate binds the JSON body and writes a 400 with one message per
// failed field when it does not validate.
func BindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, validator.Messages(err))
		return false
	}
	return true
}

// BindQuery is BindAndValidate for the query string.
func BindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, validator.Messages(err))
		return false
	}
	return true
}

// HandleServiceError maps service and repository errors to HTTP statuses.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, contract.ErrBlogNotFound):
		ErrorHandler(c, http.StatusNotFound, "Blog not found")
	case errors.Is(err, contract.ErrCommentNotFound):
		ErrorHandler(c, http.StatusNotFound, "Comment not found")
	case errors.Is(err, contract.ErrUserNotFound):
		ErrorHandler(c, http.StatusNotFound, "User not found")
	case errors.Is(err, backend.ErrForbidden):
		ErrorHandler(c, http.StatusForbidden, "You can only modify your own content")
	case errors.Is(err, backend.ErrInvalidCredentials):
		ErrorHandler(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, backend.ErrEmptyPatch):
		ErrorHandler(c, http.StatusBadRequest, "Nothing to update")
	default:
		_ = c.Error(err)
		ErrorHandler(c, http.StatusInternalServerError, "Internal server error")
	}
}

// currentUserID returns the authenticated user id, or "" for anonymous requests.
func currentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// requireUserID writes a 401 and returns false when the request is anonymous.
func requireUserID(c *gin.Context) (string, bool) {
	userID := currentUserID(c)
	if userID == "" {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return "", false
	}
	return userID, true
}
