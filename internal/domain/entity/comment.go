package entity

import "time"

// BlogComment is a comment on a blog post.
type BlogComment struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	BlogID    string    `bson:"blog_id" json:"-"`
	Content   string    `bson:"content" json:"content"`
	AuthorID  string    `bson:"author_id" json:"-"`
	Author    string    `bson:"author" json:"author"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt,omitempty"`
}

// CreateCommentRequest is the payload for a new comment.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,notblank,max=2000" binding:"required,notblank,max=2000"`
	Author  string `json:"author,omitempty"`
}

// UpdateCommentRequest is the payload for editing a comment.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,notblank,max=2000" binding:"required,notblank,max=2000"`
}
