package usecase

import (
	"context"

	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/querycache"
	usecasecontract "github.com/mikiasgoitom/traceblog/internal/usecase/contract"
)

// staleSet names the cached queries a successful write makes stale.
type staleSet struct {
	lists    bool
	detail   string
	comments string
}

// A new post can land on any page under any filter, so every list goes.
func afterCreateBlog() staleSet {
	return staleSet{lists: true}
}

// Update, delete, like and unlike change the post and its list rows.
func afterBlogChange(blogID string) staleSet {
	return staleSet{lists: true, detail: blogID}
}

// Comment writes change the comment pages and the post's commentsCount.
func afterCommentChange(blogID string) staleSet {
	return staleSet{comments: blogID, detail: blogID}
}

func (s staleSet) predicate() querycache.Predicate {
	var preds []querycache.Predicate
	if s.lists {
		preds = append(preds, querycache.AllLists())
	}
	if s.detail != "" {
		preds = append(preds, querycache.Detail(s.detail))
	}
	if s.comments != "" {
		preds = append(preds, querycache.Comments(s.comments))
	}
	return querycache.AnyOf(preds...)
}

// invalidator marks queries stale in the in-memory store and, when one is
// configured, drops them from the snapshot mirror.
type invalidator struct {
	store  *querycache.Store
	mirror contract.IBlogSnapshotCache
	logger usecasecontract.IAppLogger
}

func (inv *invalidator) invalidate(ctx context.Context, op string, set staleSet) []querycache.QueryIdentity {
	matched := inv.store.Invalidate(set.predicate())
	inv.logger.Infof("%s: %d cached queries marked stale", op, len(matched))

	if inv.mirror == nil {
		return matched
	}
	// the write already succeeded; a cancelled caller must not skip this
	ctx = context.WithoutCancel(ctx)
	if set.lists {
		if err := inv.mirror.InvalidateBlogLists(ctx); err != nil {
			inv.logger.Warningf("%s: snapshot mirror list invalidation failed: %v", op, err)
		}
	}
	if set.detail != "" {
		if err := inv.mirror.InvalidateBlog(ctx, set.detail); err != nil {
			inv.logger.Warningf("%s: snapshot mirror detail invalidation failed for blog %s: %v", op, set.detail, err)
		}
	}
	if set.comments != "" {
		if err := inv.mirror.InvalidateComments(ctx, set.comments); err != nil {
			inv.logger.Warningf("%s: snapshot mirror comments invalidation failed for blog %s: %v", op, set.comments, err)
		}
	}
	return matched
}
