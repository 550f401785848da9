package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/mikiasgoitom/traceblog/internal/backend"
	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

// ValidToken is the only bearer token MockAuthService accepts.
const ValidToken = "mock_access_token"

// MockUserID is the user behind ValidToken.
const MockUserID = "mock-user-id"

// MockBlogService is a mock implementation of backend.IBlogService and
// backend.ICommentService. Calls records the user id each call was made for.
type MockBlogService struct {
	// Err, when set, is returned by every method
	Err error

	MockBlog    entity.BlogPost
	MockComment entity.BlogComment
	Calls       []string
	LastParams  entity.ListParams
}

var (
	_ backend.IBlogService    = (*MockBlogService)(nil)
	_ backend.ICommentService = (*MockBlogService)(nil)
)

func NewMockBlogService() *MockBlogService {
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return &MockBlogService{
		MockBlog: entity.BlogPost{
			ID:           "1",
			Title:        "Mock blog",
			Content:      "Mock content",
			Tags:         []string{"mock"},
			Type:         entity.BlogTypeNews,
			ThumbnailURL: "https://img.example.com/1.png",
			Images:       []entity.BlogImage{},
			Author:       "Mock Author",
			CreatedAt:    created,
			UpdatedAt:    created,
			LikesCount:   3,
		},
		MockComment: entity.BlogComment{ID: "c1", Content: "Mock comment", Author: "Mock Author", CreatedAt: created},
	}
}

func (m *MockBlogService) record(call, userID string) error {
	m.Calls = append(m.Calls, call+":"+userID)
	return m.Err
}

func (m *MockBlogService) ListBlogs(_ context.Context, viewerID string, params entity.ListParams) (*entity.Page[entity.BlogPost], error) {
	m.LastParams = params
	if err := m.record("ListBlogs", viewerID); err != nil {
		return nil, err
	}
	return &entity.Page[entity.BlogPost]{
		Items: []entity.BlogPost{m.MockBlog},
		Meta:  entity.NewPageMeta(params.Page, params.Limit, 1),
	}, nil
}

func (m *MockBlogService) GetBlog(_ context.Context, viewerID, _ string) (*entity.BlogPost, error) {
	if err := m.record("GetBlog", viewerID); err != nil {
		return nil, err
	}
	b := m.MockBlog
	return &b, nil
}

func (m *MockBlogService) CreateBlog(_ context.Context, userID string, req entity.CreateBlogRequest) (*entity.BlogPost, error) {
	if err := m.record("CreateBlog", userID); err != nil {
		return nil, err
	}
	b := m.MockBlog
	b.Title = req.Title
	return &b, nil
}

func (m *MockBlogService) UpdateBlog(_ context.Context, userID, _ string, req entity.UpdateBlogRequest) (*entity.BlogPost, error) {
	if err := m.record("UpdateBlog", userID); err != nil {
		return nil, err
	}
	b := m.MockBlog
	req.Apply(&b)
	return &b, nil
}

func (m *MockBlogService) DeleteBlog(_ context.Context, userID, _ string) error {
	return m.record("DeleteBlog", userID)
}

func (m *MockBlogService) LikeBlog(_ context.Context, userID, _ string) (*entity.LikeState, error) {
	if err := m.record("LikeBlog", userID); err != nil {
		return nil, err
	}
	return &entity.LikeState{IsLiked: true, LikesCount: m.MockBlog.LikesCount + 1}, nil
}

func (m *MockBlogService) UnlikeBlog(_ context.Context, userID, _ string) (*entity.LikeState, error) {
	if err := m.record("UnlikeBlog", userID); err != nil {
		return nil, err
	}
	return &entity.LikeState{IsLiked: false, LikesCount: m.MockBlog.LikesCount}, nil
}

func (m *MockBlogService) ListComments(_ context.Context, _ string, params entity.CommentListParams) (*entity.Page[entity.BlogComment], error) {
	if err := m.record("ListComments", ""); err != nil {
		return nil, err
	}
	return &entity.Page[entity.BlogComment]{
		Items: []entity.BlogComment{m.MockComment},
		Meta:  entity.NewPageMeta(params.Page, params.Limit, 1),
	}, nil
}

func (m *MockBlogService) CreateComment(_ context.Context, userID, _ string, req entity.CreateCommentRequest) (*entity.BlogComment, error) {
	if err := m.record("CreateComment", userID); err != nil {
		return nil, err
	}
	c := m.MockComment
	c.Content = req.Content
	return &c, nil
}

func (m *MockBlogService) UpdateComment(_ context.Context, userID, _, _ string, req entity.UpdateCommentRequest) (*entity.BlogComment, error) {
	if err := m.record("UpdateComment", userID); err != nil {
		return nil, err
	}
	c := m.MockComment
	c.Content = req.Content
	return &c, nil
}

func (m *MockBlogService) DeleteComment(_ context.Context, userID, _, _ string) error {
	return m.record("DeleteComment", userID)
}

// MockAuthService accepts ValidToken and the password "Password123!".
type MockAuthService struct {
	MockUser entity.User
}

var _ backend.IAuthService = (*MockAuthService)(nil)

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{MockUser: entity.User{
		ID:          MockUserID,
		Name:        "testuser",
		PhoneNumber: "0900000000",
		UserType:    entity.UserTypeFarmer,
	}}
}

func (m *MockAuthService) LoginWithCredentials(_ context.Context, phone, password string) (*entity.AuthResult, error) {
	if phone != m.MockUser.PhoneNumber || password != "Password123!" {
		return nil, backend.ErrInvalidCredentials
	}
	return &entity.AuthResult{User: m.MockUser, AccessToken: ValidToken}, nil
}

func (m *MockAuthService) Me(_ context.Context, userID string) (*entity.User, error) {
	if userID != m.MockUser.ID {
		return nil, contract.ErrUserNotFound
	}
	u := m.MockUser
	return &u, nil
}

func (m *MockAuthService) Authenticate(tokenStr string) (*entity.Claims, error) {
	if tokenStr != ValidToken {
		return nil, errors.New("invalid token")
	}
	return &entity.Claims{UserID: m.MockUser.ID, UserType: m.MockUser.UserType}, nil
}
