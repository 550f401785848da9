package contract

import (
	"context"

	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

// IBlogService is the remote blog API as seen by the client core. Every
// method returns either a value or an *apperror.Error.
type IBlogService interface {
	ListBlogs(ctx context.Context, params entity.ListParams) (*entity.Page[entity.BlogPost], error)
	GetBlog(ctx context.Context, id string) (*entity.BlogPost, error)
	CreateBlog(ctx context.Context, req entity.CreateBlogRequest) (*entity.BlogPost, error)
	UpdateBlog(ctx context.Context, id string, req entity.UpdateBlogRequest) (*entity.BlogPost, error)
	DeleteBlog(ctx context.Context, id string) error
	LikeBlog(ctx context.Context, id string) (*entity.LikeState, error)
	UnlikeBlog(ctx context.Context, id string) (*entity.LikeState, error)

	ListComments(ctx context.Context, blogID string, params entity.CommentListParams) (*entity.Page[entity.BlogComment], error)
	CreateComment(ctx context.Context, blogID string, req entity.CreateCommentRequest) (*entity.BlogComment, error)
	UpdateComment(ctx context.Context, blogID, commentID string, req entity.UpdateCommentRequest) (*entity.BlogComment, error)
	DeleteComment(ctx context.Context, blogID, commentID string) error
}
