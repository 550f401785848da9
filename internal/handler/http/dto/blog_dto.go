package dto

import (
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

// BlogListQuery binds the query string of GET /blogs.
type BlogListQuery struct {
	Page  int      `form:"page" json:"page" binding:"omitempty,min=1"`
	Limit int      `form:"limit" json:"limit" binding:"omitempty,min=1,max=100"`
	Q     string   `form:"q" json:"q" binding:"omitempty,max=200"`
	Type  string   `form:"type" json:"type" binding:"omitempty,oneof=experience tutorial news review"`
	Tags  []string `form:"tags" json:"tags" binding:"omitempty,max=20,dive,max=64"`
}

func (q BlogListQuery) ToParams() entity.ListParams {
	return entity.ListParams{
		Page:  q.Page,
		Limit: q.Limit,
		Q:     q.Q,
		Type:  entity.BlogType(q.Type),
		Tags:  q.Tags,
	}.Normalize()
}

// CommentListQuery binds the query string of GET /blogs/:blogID/comments.
type CommentListQuery struct {
	Page  int `form:"page" json:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" json:"limit" binding:"omitempty,min=1,max=100"`
}

func (q CommentListQuery) ToParams() entity.CommentListParams {
	return entity.CommentListParams{Page: q.Page, Limit: q.Limit}.Normalize()
}
