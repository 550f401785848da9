package entity

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageMeta describes one page of a paginated collection.
type PageMeta struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	ItemCount       int  `json:"itemCount"`
	PageCount       int  `json:"pageCount"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// NewPageMeta derives the page counters from page, limit and itemCount.
func NewPageMeta(page, limit, itemCount int) PageMeta {
	pageCount := 0
	if limit > 0 {
		pageCount = itemCount / limit
		if itemCount%limit != 0 {
			pageCount++
		}
	}
	return PageMeta{
		Page:            page,
		Limit:           limit,
		ItemCount:       itemCount,
		PageCount:       pageCount,
		HasPreviousPage: page > 1,
		HasNextPage:     page < pageCount,
	}
}

// Offset returns how many items precede page. ok is false when page or
// limit is below 1 or the offset does not fit in an int; no stored
// collection reaches such a page, so callers return it empty.
func Offset(page, limit int) (offset int, ok bool) {
	if page < 1 || limit < 1 || page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}

// Validate checks that the derived counters agree with page, limit and itemCount.
func (m PageMeta) Validate() error {
	if m.Page < 1 || m.Limit < 1 || m.ItemCount < 0 {
		return fmt.Errorf("invalid page meta: page=%d limit=%d itemCount=%d", m.Page, m.Limit, m.ItemCount)
	}
	if want := NewPageMeta(m.Page, m.Limit, m.ItemCount); want != m {
		return fmt.Errorf("inconsistent page meta: got %+v, want %+v", m, want)
	}
	return nil
}

// Page is one page of items plus its meta.
type Page[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// ListParams are the filters of a blog list query. Tags is sent as one
// repeated tags parameter; a post matches when it carries any of them.
type ListParams struct {
	Page  int      `url:"page,omitempty"`
	Limit int      `url:"limit,omitempty"`
	Q     string   `url:"q,omitempty"`
	Type  BlogType `url:"type,omitempty"`
	Tags  []string `url:"tags,omitempty"`
}

// Normalize fills defaults, clamps the limit and sorts the tags with blanks
// and duplicates removed.
func (p ListParams) Normalize() ListParams {
	p.Page, p.Limit = normalizePaging(p.Page, p.Limit)
	p.Tags = normalizeTags(p.Tags)
	return p
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	if len(out) == 0 {
		return nil
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// CommentListParams are the filters of a comment list query.
type CommentListParams struct {
	Page  int `url:"page,omitempty"`
	Limit int `url:"limit,omitempty"`
}

// Normalize fills defaults and clamps the limit.
func (p CommentListParams) Normalize() CommentListParams {
	p.Page, p.Limit = normalizePaging(p.Page, p.Limit)
	return p
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
