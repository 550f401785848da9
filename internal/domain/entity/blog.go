package entity

import (
	"time"
)

// BlogType is the category a post is published under.
type BlogType string

const (
	BlogTypeExperience BlogType = "experience"
	BlogTypeTutorial   BlogType = "tutorial"
	BlogTypeNews       BlogType = "news"
	BlogTypeReview     BlogType = "review"
)

// BlogTypes lists every accepted BlogType.
var BlogTypes = []BlogType{BlogTypeExperience, BlogTypeTutorial, BlogTypeNews, BlogTypeReview}

// IsValid reports whether t is one of the known blog types.
func (t BlogType) IsValid() bool {
	for _, known := range BlogTypes {
		if t == known {
			return true
		}
	}
	return false
}

// BlogImage is an image attached to a post. Index defines display order.
type BlogImage struct {
	ImageURL string `bson:"image_url" json:"imageUrl" validate:"required,url" binding:"required,url"`
	Index    int    `bson:"index" json:"index" validate:"gte=0" binding:"gte=0"`
}

// BlogPost represents a blog post as seen by one viewer.
type BlogPost struct {
	ID            string      `bson:"_id,omitempty" json:"id"`
	Title         string      `bson:"title" json:"title"`
	Content       string      `bson:"content" json:"content"`
	Tags          []string    `bson:"tags" json:"tags"`
	Type          BlogType    `bson:"type" json:"type"`
	ThumbnailURL  string      `bson:"thumbnail_url" json:"thumbnailUrl,omitempty"`
	Images        []BlogImage `bson:"images" json:"images"`
	AuthorID      string      `bson:"author_id" json:"-"`
	Author        string      `bson:"author" json:"author,omitempty"`
	CreatedAt     time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time   `bson:"updated_at" json:"updatedAt"`
	LikesCount    int         `bson:"likes_count" json:"likesCount"`
	CommentsCount int         `bson:"comments_count" json:"commentsCount"`
	// IsLiked is per viewer and never persisted.
	IsLiked bool `bson:"-" json:"isLiked"`
}

// Clone returns a deep copy so cached snapshots are never shared with callers.
func (b *BlogPost) Clone() *BlogPost {
	if b == nil {
		return nil
	}
	c := *b
	c.Tags = append([]string(nil), b.Tags...)
	c.Images = append([]BlogImage(nil), b.Images...)
	return &c
}

// ApplyLikeState copies a server-confirmed like state onto the post.
func (b *BlogPost) ApplyLikeState(s LikeState) {
	b.IsLiked = s.IsLiked
	b.LikesCount = s.LikesCount
	if b.LikesCount < 0 {
		b.LikesCount = 0
	}
}

// LikeState is what the server returns from like and unlike.
type LikeState struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likesCount"`
}

// CreateBlogRequest is the draft sent to create a post.
type CreateBlogRequest struct {
	Title        string      `json:"title" validate:"required,notblank" binding:"required,notblank"`
	Content      string      `json:"content"`
	Tags         []string    `json:"tags" validate:"dive,max=64" binding:"dive,max=64"`
	Type         BlogType    `json:"type" validate:"required,oneof=experience tutorial news review" binding:"required,oneof=experience tutorial news review"`
	ThumbnailURL string      `json:"thumbnailUrl" validate:"required,url" binding:"required,url"`
	Images       []BlogImage `json:"images,omitempty" validate:"uniqueimageindex,dive" binding:"uniqueimageindex,dive"`
}

// UpdateBlogRequest is a partial update; nil fields are left untouched.
type UpdateBlogRequest struct {
	Title        *string     `json:"title,omitempty" validate:"omitempty,notblank" binding:"omitempty,notblank"`
	Content      *string     `json:"content,omitempty"`
	Tags         []string    `json:"tags,omitempty" validate:"omitempty,dive,max=64" binding:"omitempty,dive,max=64"`
	Type         *BlogType   `json:"type,omitempty" validate:"omitempty,oneof=experience tutorial news review" binding:"omitempty,oneof=experience tutorial news review"`
	ThumbnailURL *string     `json:"thumbnailUrl,omitempty" validate:"omitempty,url" binding:"omitempty,url"`
	Images       []BlogImage `json:"images,omitempty" validate:"omitempty,uniqueimageindex,dive" binding:"omitempty,uniqueimageindex,dive"`
}

// IsEmpty reports whether the patch changes nothing.
func (r UpdateBlogRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.Tags == nil && r.Type == nil && r.ThumbnailURL == nil && r.Images == nil
}

// Apply writes the present fields of the patch onto b.
func (r UpdateBlogRequest) Apply(b *BlogPost) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Content != nil {
		b.Content = *r.Content
	}
	if r.Tags != nil {
		b.Tags = append([]string(nil), r.Tags...)
	}
	if r.Type != nil {
		b.Type = *r.Type
	}
	if r.ThumbnailURL != nil {
		b.ThumbnailURL = *r.ThumbnailURL
	}
	if r.Images != nil {
		b.Images = append([]BlogImage(nil), r.Images...)
	}
}
