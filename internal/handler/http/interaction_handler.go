package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/traceblog/internal/backend"
)

type InteractionHandler struct {
	blogService backend.IBlogService
}

func NewInteractionHandler(blogService backend.IBlogService) *InteractionHandler {
	return &InteractionHandler{blogService: blogService}
}

// LikeBlogHandler serves POST /blogs/:blogID/like.
func (h *InteractionHandler) LikeBlogHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	state, err := h.blogService.LikeBlog(c.Request.Context(), userID, c.Param("blogID"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, "Blog liked successfully", state)
}

// UnlikeBlogHandler serves DELETE /blogs/:blogID/unlike.
func (h *InteractionHandler) UnlikeBlogHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	state, err := h.blogService.UnlikeBlog(c.Request.Context(), userID, c.Param("blogID"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, "Blog unliked successfully", state)
}
