package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikiasgoitom/traceblog/internal/domain/apperror"
	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/mikiasgoitom/traceblog/internal/querycache"
	usecasecontract "github.com/mikiasgoitom/traceblog/internal/usecase/contract"
)

// A superseded fetch means a newer invalidation happened; the read is simply
// issued again, a bounded number of times.
const maxSupersededRetries = 3

// BlogQueries is the read side of the blog core. Every read goes through the
// query cache, so concurrent reads of one query share a single request.
type BlogQueries struct {
	svc    contract.IBlogService
	store  *querycache.Store
	mirror contract.IBlogSnapshotCache
	retry  RetryPolicy
	logger usecasecontract.IAppLogger
}

var _ usecasecontract.IBlogQueries = (*BlogQueries)(nil)

// NewBlogQueries creates the read side. mirror may be nil; when set, every
// fetched value the store accepts is copied into it.
func NewBlogQueries(svc contract.IBlogService, store *querycache.Store, mirror contract.IBlogSnapshotCache, retry RetryPolicy, logger usecasecontract.IAppLogger) *BlogQueries {
	q := &BlogQueries{
		svc:    svc,
		store:  store,
		mirror: mirror,
		retry:  retry,
		logger: logger,
	}
	if mirror != nil {
		store.OnCommit(q.mirrorCommitted)
	}
	return q
}

// Blogs returns one page of the blog list, served from cache when fresh.
func (q *BlogQueries) Blogs(ctx context.Context, params entity.ListParams) (*entity.Page[entity.BlogPost], error) {
	params = params.Normalize()
	snap, err := q.read(ctx, querycache.ListIdentity(params), q.listFetcher(params))
	if err != nil {
		return nil, err
	}
	page, ok := snap.Value.(*entity.Page[entity.BlogPost])
	if !ok {
		return nil, unexpectedValue(snap)
	}
	return clonePostPage(page), nil
}

// Blog returns one post.
func (q *BlogQueries) Blog(ctx context.Context, blogID string) (*entity.BlogPost, error) {
	if err := requireID("blogId", blogID); err != nil {
		return nil, err
	}
	snap, err := q.read(ctx, querycache.DetailIdentity(blogID), q.detailFetcher(blogID))
	if err != nil {
		return nil, err
	}
	post, ok := snap.Value.(*entity.BlogPost)
	if !ok {
		return nil, unexpectedValue(snap)
	}
	return post.Clone(), nil
}

// Comments returns one page of a post's comments.
func (q *BlogQueries) Comments(ctx context.Context, blogID string, params entity.CommentListParams) (*entity.Page[entity.BlogComment], error) {
	if err := requireID("blogId", blogID); err != nil {
		return nil, err
	}
	params = params.Normalize()
	snap, err := q.read(ctx, querycache.CommentsIdentity(blogID, params), q.commentsFetcher(blogID, params))
	if err != nil {
		return nil, err
	}
	page, ok := snap.Value.(*entity.Page[entity.BlogComment])
	if !ok {
		return nil, unexpectedValue(snap)
	}
	return cloneCommentPage(page), nil
}

// WatchBlogs calls fn with the current snapshot of the list query and with
// every change after it, and makes sure the query is fresh. Values inside
// snapshots are shared and must be treated as read-only.
func (q *BlogQueries) WatchBlogs(ctx context.Context, params entity.ListParams, fn func(querycache.Snapshot)) func() {
	params = params.Normalize()
	return q.watch(ctx, querycache.ListIdentity(params), q.listFetcher(params), fn)
}

// WatchBlog is WatchBlogs for one post.
func (q *BlogQueries) WatchBlog(ctx context.Context, blogID string, fn func(querycache.Snapshot)) func() {
	return q.watch(ctx, querycache.DetailIdentity(blogID), q.detailFetcher(blogID), fn)
}

// WatchComments is WatchBlogs for one page of a post's comments.
func (q *BlogQueries) WatchComments(ctx context.Context, blogID string, params entity.CommentListParams, fn func(querycache.Snapshot)) func() {
	params = params.Normalize()
	return q.watch(ctx, querycache.CommentsIdentity(blogID, params), q.commentsFetcher(blogID, params), fn)
}

func (q *BlogQueries) watch(ctx context.Context, id querycache.QueryIdentity, fetcher querycache.Fetcher, fn func(querycache.Snapshot)) func() {
	q.hydrate(ctx, id)
	unsubscribe := q.store.Subscribe(id, fn)
	fn(q.store.Read(id))
	q.store.EnsureFresh(ctx, id, fetcher)
	return unsubscribe
}

func (q *BlogQueries) read(ctx context.Context, id querycache.QueryIdentity, fetcher querycache.Fetcher) (querycache.Snapshot, error) {
	q.hydrate(ctx, id)
	for attempt := 0; ; attempt++ {
		snap, err := q.store.EnsureFresh(ctx, id, fetcher).Wait(ctx)
		if errors.Is(err, querycache.ErrSuperseded) {
			if attempt < maxSupersededRetries {
				q.logger.Debugf("query %s superseded, reading again", id)
				continue
			}
			q.logger.Warningf("query %s kept being superseded after %d reads", id, attempt+1)
			return snap, &apperror.Error{
				Kind:    apperror.KindServer,
				Message: "Data changed while loading, please try again",
				Err:     err,
			}
		}
		return snap, err
	}
}

// mirrorCommitted copies an accepted fetch into the snapshot mirror. Mirror
// failures are logged and otherwise ignored.
func (q *BlogQueries) mirrorCommitted(ctx context.Context, id querycache.QueryIdentity, value interface{}) {
	var err error
	switch v := value.(type) {
	case *entity.Page[entity.BlogPost]:
		err = q.mirror.SetBlogsPage(ctx, id.Key(), v)
	case *entity.BlogPost:
		err = q.mirror.SetBlog(ctx, id.Key(), v)
	case *entity.Page[entity.BlogComment]:
		err = q.mirror.SetCommentsPage(ctx, id.Key(), v)
	default:
		return
	}
	if err != nil {
		q.logger.Warningf("snapshot mirror write failed for %s: %v", id, err)
	}
}

// hydrate seeds an empty entry from the snapshot mirror. Seeded values are
// stale, so they are shown while the live fetch runs and then replaced.
func (q *BlogQueries) hydrate(ctx context.Context, id querycache.QueryIdentity) {
	if q.mirror == nil || q.store.Read(id).HasValue {
		return
	}
	var (
		value interface{}
		found bool
		err   error
	)
	switch id.Kind {
	case querycache.KindList:
		value, found, err = q.mirror.GetBlogsPage(ctx, id.Key())
	case querycache.KindDetail:
		value, found, err = q.mirror.GetBlog(ctx, id.Key())
	case querycache.KindComments:
		value, found, err = q.mirror.GetCommentsPage(ctx, id.Key())
	}
	if err != nil {
		q.logger.Warningf("snapshot mirror read failed for %s: %v", id, err)
		return
	}
	if found && q.store.Seed(id, value) {
		q.logger.Debugf("query %s hydrated from snapshot mirror", id)
	}
}

func (q *BlogQueries) listFetcher(params entity.ListParams) querycache.Fetcher {
	return func(ctx context.Context) (interface{}, error) {
		return q.retry.do(ctx, func(ctx context.Context) (interface{}, error) {
			return q.svc.ListBlogs(ctx, params)
		})
	}
}

func (q *BlogQueries) detailFetcher(blogID string) querycache.Fetcher {
	return func(ctx context.Context) (interface{}, error) {
		return q.retry.do(ctx, func(ctx context.Context) (interface{}, error) {
			return q.svc.GetBlog(ctx, blogID)
		})
	}
}

func (q *BlogQueries) commentsFetcher(blogID string, params entity.CommentListParams) querycache.Fetcher {
	return func(ctx context.Context) (interface{}, error) {
		return q.retry.do(ctx, func(ctx context.Context) (interface{}, error) {
			return q.svc.ListComments(ctx, blogID, params)
		})
	}
}

func unexpectedValue(snap querycache.Snapshot) error {
	return apperror.Malformed(0, fmt.Errorf("query %s holds %T", snap.Identity, snap.Value))
}

func clonePostPage(p *entity.Page[entity.BlogPost]) *entity.Page[entity.BlogPost] {
	out := &entity.Page[entity.BlogPost]{Meta: p.Meta, Items: make([]entity.BlogPost, len(p.Items))}
	for i := range p.Items {
		out.Items[i] = *p.Items[i].Clone()
	}
	return out
}

func cloneCommentPage(p *entity.Page[entity.BlogComment]) *entity.Page[entity.BlogComment] {
	return &entity.Page[entity.BlogComment]{
		Meta:  p.Meta,
		Items: append([]entity.BlogComment(nil), p.Items...),
	}
}
