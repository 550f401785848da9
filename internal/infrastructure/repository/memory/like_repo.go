package memory

import (
	"context"
	"sync"

	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
)

type likeKey struct{ userID, blogID string }

type LikeRepository struct {
	mu    sync.RWMutex
	likes map[likeKey]struct{}
}

var _ contract.ILikeRepository = (*LikeRepository)(nil)

func NewLikeRepository() *LikeRepository {
	return &LikeRepository{likes: make(map[likeKey]struct{})}
}

func (r *LikeRepository) AddLike(_ context.Context, userID, blogID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := likeKey{userID, blogID}
	if _, ok := r.likes[k]; ok {
		return false, nil
	}
	r.likes[k] = struct{}{}
	return true, nil
}

func (r *LikeRepository) RemoveLike(_ context.Context, userID, blogID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := likeKey{userID, blogID}
	if _, ok := r.likes[k]; !ok {
		return false, nil
	}
	delete(r.likes, k)
	return true, nil
}

func (r *LikeRepository) IsLiked(_ context.Context, userID, blogID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.likes[likeKey{userID, blogID}]
	return ok, nil
}

func (r *LikeRepository) LikedAmong(_ context.Context, userID string, blogIDs []string) (map[string]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	liked := make(map[string]bool, len(blogIDs))
	for _, id := range blogIDs {
		if _, ok := r.likes[likeKey{userID, id}]; ok {
			liked[id] = true
		}
	}
	return liked, nil
}

func (r *LikeRepository) DeleteByBlog(_ context.Context, blogID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.likes {
		if k.blogID == blogID {
			delete(r.likes, k)
		}
	}
	return nil
}
