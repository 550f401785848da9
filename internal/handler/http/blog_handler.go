package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/traceblog/internal/backend"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/mikiasgoitom/traceblog/internal/handler/http/dto"
)

// BlogHandlerInterface defines the methods for Blog handler to allow interface-based dependency injection (for testing/mocking)
type BlogHandlerInterface interface {
	GetBlogsHandler(*gin.Context)
	GetBlogDetailHandler(*gin.Context)
	CreateBlogHandler(*gin.Context)
	UpdateBlogHandler(*gin.Context)
	DeleteBlogHandler(*gin.Context)
}

var _ BlogHandlerInterface = (*BlogHandler)(nil)

type BlogHandler struct {
	blogService backend.IBlogService
}

func NewBlogHandler(blogService backend.IBlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// GetBlogsHandler serves GET /blogs?page&limit&q.
func (h *BlogHandler) GetBlogsHandler(c *gin.Context) {
	var query dto.BlogListQuery
	if !BindQuery(c, &query) {
		return
	}
	page, err := h.blogService.ListBlogs(c.Request.Context(), currentUserID(c), query.ToParams())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, "OK", page)
}

// GetBlogDetailHandler serves GET /blogs/:blogID.
func (h *BlogHandler) GetBlogDetailHandler(c *gin.Context) {
	blog, err := h.blogService.GetBlog(c.Request.Context(), currentUserID(c), c.Param("blogID"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, "OK", blog)
}

// CreateBlogHandler serves POST /blogs.
func (h *BlogHandler) CreateBlogHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req entity.CreateBlogRequest
	if !BindAndValidate(c, &req) {
		return
	}
	blog, err := h.blogService.CreateBlog(c.Request.Context(), userID, req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, "Blog created successfully", blog)
}

// UpdateBlogHandler serves PATCH /blogs/:blogID.
func (h *BlogHandler) UpdateBlogHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req entity.UpdateBlogRequest
	if !BindAndValidate(c, &req) {
		return
	}
	blog, err := h.blogService.UpdateBlog(c.Request.Context(), userID, c.Param("blogID"), req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, "Blog updated successfully", blog)
}

// DeleteBlogHandler serves DELETE /blogs/:blogID.
func (h *BlogHandler) DeleteBlogHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.blogService.DeleteBlog(c.Request.Context(), userID, c.Param("blogID")); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, "Blog deleted successfully", nil)
}
