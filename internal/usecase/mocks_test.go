package usecase

import (
	"context"

	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) ListBlogs(ctx context.Context, params entity.ListParams) (*entity.Page[entity.BlogPost], error) {
	args := m.Called(ctx, params)
	page, _ := args.Get(0).(*entity.Page[entity.BlogPost])
	return page, args.Error(1)
}

func (m *MockBlogService) GetBlog(ctx context.Context, id string) (*entity.BlogPost, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*entity.BlogPost)
	return post, args.Error(1)
}

func (m *MockBlogService) CreateBlog(ctx context.Context, req entity.CreateBlogRequest) (*entity.BlogPost, error) {
	args := m.Called(ctx, req)
	post, _ := args.Get(0).(*entity.BlogPost)
	return post, args.Error(1)
}

func (m *MockBlogService) UpdateBlog(ctx context.Context, id string, req entity.UpdateBlogRequest) (*entity.BlogPost, error) {
	args := m.Called(ctx, id, req)
	post, _ := args.Get(0).(*entity.BlogPost)
	return post, args.Error(1)
}

func (m *MockBlogService) DeleteBlog(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBlogService) LikeBlog(ctx context.Context, id string) (*entity.LikeState, error) {
	args := m.Called(ctx, id)
	state, _ := args.Get(0).(*entity.LikeState)
	return state, args.Error(1)
}

func (m *MockBlogService) UnlikeBlog(ctx context.Context, id string) (*entity.LikeState, error) {
	args := m.Called(ctx, id)
	state, _ := args.Get(0).(*entity.LikeState)
	return state, args.Error(1)
}

func (m *MockBlogService) ListComments(ctx context.Context, blogID string, params entity.CommentListParams) (*entity.Page[entity.BlogComment], error) {
	args := m.Called(ctx, blogID, params)
	page, _ := args.Get(0).(*entity.Page[entity.BlogComment])
	return page, args.Error(1)
}

func (m *MockBlogService) CreateComment(ctx context.Context, blogID string, req entity.CreateCommentRequest) (*entity.BlogComment, error) {
	args := m.Called(ctx, blogID, req)
	c, _ := args.Get(0).(*entity.BlogComment)
	return c, args.Error(1)
}

func (m *MockBlogService) UpdateComment(ctx context.Context, blogID, commentID string, req entity.UpdateCommentRequest) (*entity.BlogComment, error) {
	args := m.Called(ctx, blogID, commentID, req)
	c, _ := args.Get(0).(*entity.BlogComment)
	return c, args.Error(1)
}

func (m *MockBlogService) DeleteComment(ctx context.Context, blogID, commentID string) error {
	return m.Called(ctx, blogID, commentID).Error(0)
}

type MockSnapshotCache struct {
	mock.Mock
}

func (m *MockSnapshotCache) GetBlog(ctx context.Context, key string) (*entity.BlogPost, bool, error) {
	args := m.Called(ctx, key)
	post, _ := args.Get(0).(*entity.BlogPost)
	return post, args.Bool(1), args.Error(2)
}

func (m *MockSnapshotCache) SetBlog(ctx context.Context, key string, blog *entity.BlogPost) error {
	return m.Called(ctx, key, blog).Error(0)
}

func (m *MockSnapshotCache) InvalidateBlog(ctx context.Context, blogID string) error {
	return m.Called(ctx, blogID).Error(0)
}

func (m *MockSnapshotCache) GetBlogsPage(ctx context.Context, key string) (*entity.Page[entity.BlogPost], bool, error) {
	args := m.Called(ctx, key)
	page, _ := args.Get(0).(*entity.Page[entity.BlogPost])
	return page, args.Bool(1), args.Error(2)
}

func (m *MockSnapshotCache) SetBlogsPage(ctx context.Context, key string, page *entity.Page[entity.BlogPost]) error {
	return m.Called(ctx, key, page).Error(0)
}

func (m *MockSnapshotCache) InvalidateBlogLists(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSnapshotCache) GetCommentsPage(ctx context.Context, key string) (*entity.Page[entity.BlogComment], bool, error) {
	args := m.Called(ctx, key)
	page, _ := args.Get(0).(*entity.Page[entity.BlogComment])
	return page, args.Bool(1), args.Error(2)
}

func (m *MockSnapshotCache) SetCommentsPage(ctx context.Context, key string, page *entity.Page[entity.BlogComment]) error {
	return m.Called(ctx, key, page).Error(0)
}

func (m *MockSnapshotCache) InvalidateComments(ctx context.Context, blogID string) error {
	return m.Called(ctx, blogID).Error(0)
}
