package backend

import (
	"context"

	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/traceblog/internal/usecase/contract"
)

// CommentService manages the comments of a post and keeps the post's
// commentsCount in step with them.
type CommentService struct {
	blogs    contract.IBlogRepository
	comments contract.ICommentRepository
	users    contract.IUserRepository
	uuidGen  contract.IUUIDGenerator
	logger   usecasecontract.IAppLogger
	now      clock
}

func NewCommentService(blogs contract.IBlogRepository, comments contract.ICommentRepository, users contract.IUserRepository, uuidGen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *CommentService {
	return &CommentService{
		blogs:    blogs,
		comments: comments,
		users:    users,
		uuidGen:  uuidGen,
		logger:   logger,
		now:      utcNow,
	}
}

// ListComments returns one page of a post's comments, oldest first.
func (s *CommentService) ListComments(ctx context.Context, blogID string, params entity.CommentListParams) (*entity.Page[entity.BlogComment], error) {
	if _, err := s.blogs.GetBlogByID(ctx, blogID); err != nil {
		return nil, err
	}
	params = params.Normalize()
	comments, total, err := s.comments.ListByBlog(ctx, blogID, contract.Pagination{Page: params.Page, PageSize: params.Limit})
	if err != nil {
		return nil, err
	}
	items := make([]entity.BlogComment, len(comments))
	for i, c := range comments {
		items[i] = *c
	}
	return &entity.Page[entity.BlogComment]{
		Items: items,
		Meta:  entity.NewPageMeta(params.Page, params.Limit, int(total)),
	}, nil
}

// CreateComment adds a comment by userID. The author name comes from the
// user record and falls back to the name sent in the request.
func (s *CommentService) CreateComment(ctx context.Context, userID, blogID string, req entity.CreateCommentRequest) (*entity.BlogComment, error) {
	if _, err := s.blogs.GetBlogByID(ctx, blogID); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	author := user.Name
	if author == "" {
		author = req.Author
	}
	now := s.now()
	comment := &entity.BlogComment{
		ID:        s.uuidGen.NewUUID(),
		BlogID:    blogID,
		Content:   req.Content,
		AuthorID:  userID,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.blogs.AdjustCounts(ctx, blogID, 0, 1); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment edits a comment. Only its author may edit it.
func (s *CommentService) UpdateComment(ctx context.Context, userID, blogID, commentID string, req entity.UpdateCommentRequest) (*entity.BlogComment, error) {
	comment, err := s.owned(ctx, userID, blogID, commentID)
	if err != nil {
		return nil, err
	}
	comment.Content = req.Content
	comment.UpdatedAt = s.now()
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Only its author may remove it.
func (s *CommentService) DeleteComment(ctx context.Context, userID, blogID, commentID string) error {
	if _, err := s.owned(ctx, userID, blogID, commentID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}
	return s.blogs.AdjustCounts(ctx, blogID, 0, -1)
}

// owned loads a comment of blogID. A comment of another post is reported
// as not found.
func (s *CommentService) owned(ctx context.Context, userID, blogID, commentID string) (*entity.BlogComment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.BlogID != blogID {
		return nil, contract.ErrCommentNotFound
	}
	if comment.AuthorID != userID {
		return nil, ErrForbidden
	}
	return comment, nil
}
