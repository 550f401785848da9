package contract

import (
	"context"
)

// ILikeRepository defines the interface for blog like persistence.
type ILikeRepository interface {
	// AddLike records the like and reports whether it was newly created.
	AddLike(ctx context.Context, userID, blogID string) (bool, error)
	// RemoveLike deletes the like and reports whether one existed.
	RemoveLike(ctx context.Context, userID, blogID string) (bool, error)
	IsLiked(ctx context.Context, userID, blogID string) (bool, error)
	// LikedAmong returns the subset of blogIDs the user has liked.
	LikedAmong(ctx context.Context, userID string, blogIDs []string) (map[string]bool, error)
	DeleteByBlog(ctx context.Context, blogID string) error
}
