package contract

import (
	"context"

	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type ICommentRepository interface {
	Create(ctx context.Context, comment *entity.BlogComment) error
	GetByID(ctx context.Context, id string) (*entity.BlogComment, error)
	Update(ctx context.Context, comment *entity.BlogComment) error
	Delete(ctx context.Context, id string) error

	// ListByBlog returns one page of a blog's comments, oldest first.
	ListByBlog(ctx context.Context, blogID string, pagination Pagination) ([]*entity.BlogComment, int64, error)
	DeleteByBlog(ctx context.Context, blogID string) error
}
