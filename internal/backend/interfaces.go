// Package backend holds the services behind the blog API server: posts,
// likes, comments and credential login, on top of the repository contracts.
package backend

import (
	"context"
	"errors"
	"time"

	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

var (
	// ErrForbidden is returned when a user changes content they do not own.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is returned by a failed credential login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmptyPatch is returned by an update that changes nothing.
	ErrEmptyPatch = errors.New("nothing to update")
)

// JWTService issues and verifies access tokens.
type JWTService interface {
	GenerateAccessToken(userID string, userType entity.UserType) (string, time.Time, error)
	ParseAccessToken(tokenStr string) (*entity.Claims, error)
}

// clock is swapped by tests.
type clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

// IBlogService is the post and like surface the HTTP handlers call.
type IBlogService interface {
	ListBlogs(ctx context.Context, viewerID string, params entity.ListParams) (*entity.Page[entity.BlogPost], error)
	GetBlog(ctx context.Context, viewerID, blogID string) (*entity.BlogPost, error)
	CreateBlog(ctx context.Context, userID string, req entity.CreateBlogRequest) (*entity.BlogPost, error)
	UpdateBlog(ctx context.Context, userID, blogID string, req entity.UpdateBlogRequest) (*entity.BlogPost, error)
	DeleteBlog(ctx context.Context, userID, blogID string) error
	LikeBlog(ctx context.Context, userID, blogID string) (*entity.LikeState, error)
	UnlikeBlog(ctx context.Context, userID, blogID string) (*entity.LikeState, error)
}

// ICommentService is the comment surface the HTTP handlers call.
type ICommentService interface {
	ListComments(ctx context.Context, blogID string, params entity.CommentListParams) (*entity.Page[entity.BlogComment], error)
	CreateComment(ctx context.Context, userID, blogID string, req entity.CreateCommentRequest) (*entity.BlogComment, error)
	UpdateComment(ctx context.Context, userID, blogID, commentID string, req entity.UpdateCommentRequest) (*entity.BlogComment, error)
	DeleteComment(ctx context.Context, userID, blogID, commentID string) error
}

// IAuthService logs users in and verifies their tokens.
type IAuthService interface {
	LoginWithCredentials(ctx context.Context, phone, password string) (*entity.AuthResult, error)
	Me(ctx context.Context, userID string) (*entity.User, error)
	Authenticate(tokenStr string) (*entity.Claims, error)
}

var (
	_ IBlogService    = (*BlogService)(nil)
	_ ICommentService = (*CommentService)(nil)
	_ IAuthService    = (*AuthService)(nil)
)
