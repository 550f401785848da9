package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/traceblog/internal/backend"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/mikiasgoitom/traceblog/internal/handler/http/dto"
)

type CommentHandler struct {
	commentService backend.ICommentService
}

func NewCommentHandler(commentService backend.ICommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// GetBlogComments serves GET /blogs/:blogID/comments?page&limit.
func (h *CommentHandler) GetBlogComments(c *gin.Context) {
	var query dto.CommentListQuery
	if !BindQuery(c, &query) {
		return
	}
	page, err := h.commentService.ListComments(c.Request.Context(), c.Param("blogID"), query.ToParams())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, "OK", page)
}

// CreateComment serves POST /blogs/:blogID/comment.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req entity.CreateCommentRequest
	if !BindAndValidate(c, &req) {
		return
	}
	comment, err := h.commentService.CreateComment(c.Request.Context(), userID, c.Param("blogID"), req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, "Comment created successfully", comment)
}

// UpdateComment serves PATCH /blogs/:blogID/comment/:commentID.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req entity.UpdateCommentRequest
	if !BindAndValidate(c, &req) {
		return
	}
	comment, err := h.commentService.UpdateComment(c.Request.Context(), userID, c.Param("blogID"), c.Param("commentID"), req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, "Comment updated successfully", comment)
}

// DeleteComment serves DELETE /blogs/:blogID/comment/:commentID.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.commentService.DeleteComment(c.Request.Context(), userID, c.Param("blogID"), c.Param("commentID")); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, "Comment deleted successfully", nil)
}
