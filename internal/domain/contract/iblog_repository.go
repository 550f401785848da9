package contract

import (
	"context"
	"errors"

	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

// Repository sentinel errors, mapped to HTTP statuses by the handlers.
var (
	ErrBlogNotFound    = errors.New("blog not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrUserNotFound    = errors.New("user not found")
)

// IBlogRepository provides methods for managing blog data in the fake API's store.
type IBlogRepository interface {
	CreateBlog(ctx context.Context, blog *entity.BlogPost) error
	GetBlogByID(ctx context.Context, blogID string) (*entity.BlogPost, error)
	GetBlogs(ctx context.Context, filterOptions *BlogFilterOptions) ([]*entity.BlogPost, int64, error)
	UpdateBlog(ctx context.Context, blog *entity.BlogPost) error
	DeleteBlog(ctx context.Context, blogID string) error
	// AdjustCounts adds the deltas to likes_count and comments_count, never going below zero.
	AdjustCounts(ctx context.Context, blogID string, likesDelta, commentsDelta int) error
}

// BlogFilterOptions encapsulates filtering and pagination parameters for blog retrieval.
type BlogFilterOptions struct {
	Page     int
	PageSize int
	// Search matches title, content and tags case-insensitively.
	Search string
	// Type keeps only posts of that type when set.
	Type entity.BlogType
	// Tags keeps only posts carrying at least one of the tags when set.
	Tags []string
}
