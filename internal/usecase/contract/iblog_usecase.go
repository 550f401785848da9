package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

// IBlogUseCase executes blog writes and invalidates the cached queries they affect.
type IBlogUseCase interface {
	CreateBlog(ctx context.Context, req entity.CreateBlogRequest) (*entity.BlogPost, error)
	UpdateBlog(ctx context.Context, blogID string, req entity.UpdateBlogRequest) (*entity.BlogPost, error)
	DeleteBlog(ctx context.Context, blogID string) error
	ILikeUseCase
}
