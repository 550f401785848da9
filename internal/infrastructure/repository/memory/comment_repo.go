package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

type CommentRepository struct {
	mu       sync.RWMutex
	comments map[string]entity.BlogComment
}

var _ contract.ICommentRepository = (*CommentRepository)(nil)

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[string]entity.BlogComment)}
}

func (r *CommentRepository) Create(_ context.Context, comment *entity.BlogComment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments[comment.ID] = *comment
	return nil
}

func (r *CommentRepository) GetByID(_ context.Context, id string) (*entity.BlogComment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, contract.ErrCommentNotFound
	}
	return &c, nil
}

func (r *CommentRepository) Update(_ context.Context, comment *entity.BlogComment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[comment.ID]
	if !ok {
		return contract.ErrCommentNotFound
	}
	c.Content = comment.Content
	c.UpdatedAt = comment.UpdatedAt
	r.comments[comment.ID] = c
	return nil
}

func (r *CommentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return contract.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

// ListByBlog returns one page of a blog's comments, oldest first.
func (r *CommentRepository) ListByBlog(_ context.Context, blogID string, p contract.Pagination) ([]*entity.BlogComment, int64, error) {
	r.mu.RLock()
	var matched []*entity.BlogComment
	for _, c := range r.comments {
		if c.BlogID == blogID {
			c := c
			matched = append(matched, &c)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	start, ok := entity.Offset(p.Page, p.PageSize)
	if !ok || start >= len(matched) {
		return []*entity.BlogComment{}, total, nil
	}
	end := len(matched)
	if p.PageSize < end-start {
		end = start + p.PageSize
	}
	return matched[start:end], total, nil
}

func (r *CommentRepository) DeleteByBlog(_ context.Context, blogID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.comments {
		if c.BlogID == blogID {
			delete(r.comments, id)
		}
	}
	return nil
}
