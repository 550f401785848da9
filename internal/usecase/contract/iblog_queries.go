package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/mikiasgoitom/traceblog/internal/querycache"
)

// IBlogQueries is the read side a view binds to.
type IBlogQueries interface {
	Blogs(ctx context.Context, params entity.ListParams) (*entity.Page[entity.BlogPost], error)
	Blog(ctx context.Context, blogID string) (*entity.BlogPost, error)
	Comments(ctx context.Context, blogID string, params entity.CommentListParams) (*entity.Page[entity.BlogComment], error)

	WatchBlogs(ctx context.Context, params entity.ListParams, fn func(querycache.Snapshot)) (unsubscribe func())
	WatchBlog(ctx context.Context, blogID string, fn func(querycache.Snapshot)) (unsubscribe func())
	WatchComments(ctx context.Context, blogID string, params entity.CommentListParams, fn func(querycache.Snapshot)) (unsubscribe func())
}
