package backend

import (
	"context"
	"fmt"

	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/traceblog/internal/usecase/contract"
)

// BlogService serves posts as seen by one viewer. viewerID may be empty for
// anonymous reads, in which case isLiked is always false.
type BlogService struct {
	blogs    contract.IBlogRepository
	comments contract.ICommentRepository
	likes    contract.ILikeRepository
	users    contract.IUserRepository
	uuidGen  contract.IUUIDGenerator
	logger   usecasecontract.IAppLogger
	now      clock
}

func NewBlogService(blogs contract.IBlogRepository, comments contract.ICommentRepository, likes contract.ILikeRepository, users contract.IUserRepository, uuidGen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *BlogService {
	return &BlogService{
		blogs:    blogs,
		comments: comments,
		likes:    likes,
		users:    users,
		uuidGen:  uuidGen,
		logger:   logger,
		now:      utcNow,
	}
}

// ListBlogs returns one page of posts, newest first, filtered by search
// text, type and tags.
func (s *BlogService) ListBlogs(ctx context.Context, viewerID string, params entity.ListParams) (*entity.Page[entity.BlogPost], error) {
	params = params.Normalize()
	blogs, total, err := s.blogs.GetBlogs(ctx, &contract.BlogFilterOptions{
		Page:     params.Page,
		PageSize: params.Limit,
		Search:   params.Q,
		Type:     params.Type,
		Tags:     params.Tags,
	})
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}

	ids := make([]string, len(blogs))
	for i, b := range blogs {
		ids[i] = b.ID
	}
	liked := map[string]bool{}
	if viewerID != "" {
		if liked, err = s.likes.LikedAmong(ctx, viewerID, ids); err != nil {
			return nil, fmt.Errorf("list blogs: %w", err)
		}
	}

	items := make([]entity.BlogPost, len(blogs))
	for i, b := range blogs {
		items[i] = *b
		items[i].IsLiked = liked[b.ID]
	}
	return &entity.Page[entity.BlogPost]{
		Items: items,
		Meta:  entity.NewPageMeta(params.Page, params.Limit, int(total)),
	}, nil
}

// GetBlog returns one post with the viewer's like flag.
func (s *BlogService) GetBlog(ctx context.Context, viewerID, blogID string) (*entity.BlogPost, error) {
	blog, err := s.blogs.GetBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if err := s.markLiked(ctx, viewerID, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// CreateBlog stores a new post authored by userID.
func (s *BlogService) CreateBlog(ctx context.Context, userID string, req entity.CreateBlogRequest) (*entity.BlogPost, error) {
	author, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	now := s.now()
	blog := &entity.BlogPost{
		ID:           s.uuidGen.NewUUID(),
		Title:        req.Title,
		Content:      req.Content,
		Tags:         append([]string{}, req.Tags...),
		Type:         req.Type,
		ThumbnailURL: req.ThumbnailURL,
		Images:       append([]entity.BlogImage{}, req.Images...),
		AuthorID:     author.ID,
		Author:       author.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.blogs.CreateBlog(ctx, blog); err != nil {
		return nil, err
	}
	s.logger.Infof("blog %s created by user %s", blog.ID, userID)
	return blog, nil
}

// UpdateBlog applies a partial update. Only the author may update a post.
func (s *BlogService) UpdateBlog(ctx context.Context, userID, blogID string, req entity.UpdateBlogRequest) (*entity.BlogPost, error) {
	if req.IsEmpty() {
		return nil, ErrEmptyPatch
	}
	blog, err := s.owned(ctx, userID, blogID)
	if err != nil {
		return nil, err
	}
	req.Apply(blog)
	blog.UpdatedAt = s.now()
	if err := s.blogs.UpdateBlog(ctx, blog); err != nil {
		return nil, err
	}
	return s.GetBlog(ctx, userID, blogID)
}

// DeleteBlog removes a post together with its comments and likes.
func (s *BlogService) DeleteBlog(ctx context.Context, userID, blogID string) error {
	if _, err := s.owned(ctx, userID, blogID); err != nil {
		return err
	}
	if err := s.blogs.DeleteBlog(ctx, blogID); err != nil {
		return err
	}
	if err := s.comments.DeleteByBlog(ctx, blogID); err != nil {
		s.logger.Errorf("failed to delete comments of blog %s: %v", blogID, err)
	}
	if err := s.likes.DeleteByBlog(ctx, blogID); err != nil {
		s.logger.Errorf("failed to delete likes of blog %s: %v", blogID, err)
	}
	s.logger.Infof("blog %s deleted by user %s", blogID, userID)
	return nil
}

// LikeBlog likes a post. Liking twice changes nothing.
func (s *BlogService) LikeBlog(ctx context.Context, userID, blogID string) (*entity.LikeState, error) {
	if _, err := s.blogs.GetBlogByID(ctx, blogID); err != nil {
		return nil, err
	}
	added, err := s.likes.AddLike(ctx, userID, blogID)
	if err != nil {
		return nil, err
	}
	if added {
		if err := s.blogs.AdjustCounts(ctx, blogID, 1, 0); err != nil {
			return nil, err
		}
	}
	return s.likeState(ctx, blogID, true)
}

// UnlikeBlog removes the viewer's like. Unliking a post that is not liked
// changes nothing.
func (s *BlogService) UnlikeBlog(ctx context.Context, userID, blogID string) (*entity.LikeState, error) {
	if _, err := s.blogs.GetBlogByID(ctx, blogID); err != nil {
		return nil, err
	}
	removed, err := s.likes.RemoveLike(ctx, userID, blogID)
	if err != nil {
		return nil, err
	}
	if removed {
		if err := s.blogs.AdjustCounts(ctx, blogID, -1, 0); err != nil {
			return nil, err
		}
	}
	return s.likeState(ctx, blogID, false)
}

func (s *BlogService) likeState(ctx context.Context, blogID string, liked bool) (*entity.LikeState, error) {
	blog, err := s.blogs.GetBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return &entity.LikeState{IsLiked: liked, LikesCount: blog.LikesCount}, nil
}

func (s *BlogService) owned(ctx context.Context, userID, blogID string) (*entity.BlogPost, error) {
	blog, err := s.blogs.GetBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != userID {
		return nil, ErrForbidden
	}
	return blog, nil
}

func (s *BlogService) markLiked(ctx context.Context, viewerID string, blog *entity.BlogPost) error {
	if viewerID == "" {
		blog.IsLiked = false
		return nil
	}
	liked, err := s.likes.IsLiked(ctx, viewerID, blog.ID)
	if err != nil {
		return err
	}
	blog.IsLiked = liked
	return nil
}
