// Package memory holds map-backed repositories for the blog API. They are
// the default store and the one tests run against.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

// BlogRepository keeps blog posts in memory. Stored posts are copied on the
// way in and out so callers never share them.
type BlogRepository struct {
	mu    sync.RWMutex
	blogs map[string]*entity.BlogPost
}

var _ contract.IBlogRepository = (*BlogRepository)(nil)

func NewBlogRepository() *BlogRepository {
	return &BlogRepository{blogs: make(map[string]*entity.BlogPost)}
}

func (r *BlogRepository) CreateBlog(_ context.Context, blog *entity.BlogPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blogs[blog.ID] = blog.Clone()
	return nil
}

func (r *BlogRepository) GetBlogByID(_ context.Context, blogID string) (*entity.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.blogs[blogID]
	if !ok {
		return nil, contract.ErrBlogNotFound
	}
	return b.Clone(), nil
}

// GetBlogs returns one page of matching posts, newest first.
func (r *BlogRepository) GetBlogs(_ context.Context, opts *contract.BlogFilterOptions) ([]*entity.BlogPost, int64, error) {
	r.mu.RLock()
	matched := make([]*entity.BlogPost, 0, len(r.blogs))
	for _, b := range r.blogs {
		if matches(b, opts) {
			matched = append(matched, b.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	start, ok := entity.Offset(opts.Page, opts.PageSize)
	if !ok || start >= len(matched) {
		return []*entity.BlogPost{}, total, nil
	}
	end := len(matched)
	if opts.PageSize < end-start {
		end = start + opts.PageSize
	}
	return matched[start:end], total, nil
}

// matches applies the type and tag filters, then a case-insensitive
// substring search over title, content and tags.
func matches(b *entity.BlogPost, opts *contract.BlogFilterOptions) bool {
	if opts.Type != "" && b.Type != opts.Type {
		return false
	}
	if len(opts.Tags) > 0 && !slices.ContainsFunc(b.Tags, func(tag string) bool {
		return slices.Contains(opts.Tags, tag)
	}) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(opts.Search))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.Content), q) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func (r *BlogRepository) UpdateBlog(_ context.Context, blog *entity.BlogPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.blogs[blog.ID]
	if !ok {
		return contract.ErrBlogNotFound
	}
	next := blog.Clone()
	// counters are only changed through AdjustCounts
	next.LikesCount, next.CommentsCount = current.LikesCount, current.CommentsCount
	r.blogs[blog.ID] = next
	return nil
}

func (r *BlogRepository) DeleteBlog(_ context.Context, blogID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blogs[blogID]; !ok {
		return contract.ErrBlogNotFound
	}
	delete(r.blogs, blogID)
	return nil
}

func (r *BlogRepository) AdjustCounts(_ context.Context, blogID string, likesDelta, commentsDelta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blogs[blogID]
	if !ok {
		return contract.ErrBlogNotFound
	}
	b.LikesCount = clampZero(b.LikesCount + likesDelta)
	b.CommentsCount = clampZero(b.CommentsCount + commentsDelta)
	return nil
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
