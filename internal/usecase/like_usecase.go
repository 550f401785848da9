package usecase

import (
	"context"

	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/metrics"
	"github.com/mikiasgoitom/traceblog/internal/querycache"
)

// LikeBlog likes a post. The server's answer is the only source of the new
// like state; it is patched into a cached detail and then the post and every
// list page are marked stale.
func (uc *BlogUseCase) LikeBlog(ctx context.Context, blogID string) (*entity.LikeState, error) {
	return uc.react(ctx, "like_blog", blogID, uc.svc.LikeBlog)
}

// UnlikeBlog removes the viewer's like. Unliking a post that is not liked is
// left to the server; whatever it returns is what gets cached.
func (uc *BlogUseCase) UnlikeBlog(ctx context.Context, blogID string) (*entity.LikeState, error) {
	return uc.react(ctx, "unlike_blog", blogID, uc.svc.UnlikeBlog)
}

func (uc *BlogUseCase) react(ctx context.Context, op, blogID string, call func(context.Context, string) (*entity.LikeState, error)) (*entity.LikeState, error) {
	if err := requireID("blogId", blogID); err != nil {
		return nil, err
	}
	state, err := call(ctx, blogID)
	metrics.IncMutation(op, err)
	if err != nil {
		uc.logger.Errorf("failed to %s %s: %v", op, blogID, err)
		return nil, err
	}

	confirmed := *state
	uc.store.Update(querycache.DetailIdentity(blogID), func(v interface{}) interface{} {
		post, ok := v.(*entity.BlogPost)
		if !ok {
			return v
		}
		next := post.Clone()
		next.ApplyLikeState(confirmed)
		return next
	})
	uc.inv.invalidate(ctx, op, afterBlogChange(blogID))
	return state, nil
}
