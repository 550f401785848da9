package contract

import (
	"context"

	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

// IBlogSnapshotCache is a second-level store of server-confirmed query
// results, keyed by the query identity key. Entries read from it are only
// used to hydrate an empty in-memory entry and are always refetched.
type IBlogSnapshotCache interface {
	// Detail (by id)
	GetBlog(ctx context.Context, key string) (*entity.BlogPost, bool, error)
	SetBlog(ctx context.Context, key string, blog *entity.BlogPost) error
	InvalidateBlog(ctx context.Context, blogID string) error

	// List pages (key built by the query layer)
	GetBlogsPage(ctx context.Context, key string) (*entity.Page[entity.BlogPost], bool, error)
	SetBlogsPage(ctx context.Context, key string, page *entity.Page[entity.BlogPost]) error
	InvalidateBlogLists(ctx context.Context) error

	// Comment pages of one blog
	GetCommentsPage(ctx context.Context, key string) (*entity.Page[entity.BlogComment], bool, error)
	SetCommentsPage(ctx context.Context, key string, page *entity.Page[entity.BlogComment]) error
	InvalidateComments(ctx context.Context, blogID string) error
}
