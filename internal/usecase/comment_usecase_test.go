package usecase

import (
	"context"
	"testing"

	"github.com/mikiasgoitom/traceblog/internal/domain/apperror"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/mikiasgoitom/traceblog/internal/querycache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func commentPage(page int, comments ...entity.BlogComment) *entity.Page[entity.BlogComment] {
	return &entity.Page[entity.BlogComment]{Items: comments, Meta: entity.NewPageMeta(page, 10, 20)}
}

func TestCommentUseCase_WritesMarkCommentsAndDetailStale(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		run  func(c *core) error
	}{
		{"create", func(c *core) error {
			req := entity.CreateCommentRequest{Content: "Great read"}
			c.svc.On("CreateComment", mock.Anything, "1", req).Return(&entity.BlogComment{ID: "c9", Content: "Great read"}, nil).Once()
			_, err := c.comments.CreateComment(ctx, "1", req)
			return err
		}},
		{"update", func(c *core) error {
			req := entity.UpdateCommentRequest{Content: "Edited"}
			c.svc.On("UpdateComment", mock.Anything, "1", "c1", req).Return(&entity.BlogComment{ID: "c1", Content: "Edited"}, nil).Once()
			_, err := c.comments.UpdateComment(ctx, "1", "c1", req)
			return err
		}},
		{"delete", func(c *core) error {
			c.svc.On("DeleteComment", mock.Anything, "1", "c1").Return(nil).Once()
			return c.comments.DeleteComment(ctx, "1", "c1")
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newCore(t)
			page1 := querycache.CommentsIdentity("1", entity.CommentListParams{Page: 1})
			page2 := querycache.CommentsIdentity("1", entity.CommentListParams{Page: 2})
			otherBlog := querycache.CommentsIdentity("2", entity.CommentListParams{})
			detail := querycache.DetailIdentity("1")
			list := querycache.ListIdentity(entity.ListParams{})
			c.store.Write(page1, commentPage(1))
			c.store.Write(page2, commentPage(2))
			c.store.Write(otherBlog, commentPage(1))
			c.store.Write(detail, post("1", 0, false))
			c.store.Write(list, postPage(post("1", 0, false)))

			require.NoError(t, tc.run(c))

			assert.True(t, stale(c.store, page1))
			assert.True(t, stale(c.store, page2))
			assert.True(t, stale(c.store, detail))
			assert.False(t, stale(c.store, otherBlog))
			assert.False(t, stale(c.store, list))
			c.svc.AssertExpectations(t)
		})
	}
}

func TestCommentUseCase_FailureLeavesCacheAlone(t *testing.T) {
	c := newCore(t)
	page := querycache.CommentsIdentity("1", entity.CommentListParams{})
	c.store.Write(page, commentPage(1))

	forbidden := apperror.FromResponse(403, []byte(`{"message":"You can only edit your own comments","statusCode":403,"error":"Forbidden"}`))
	c.svc.On("DeleteComment", mock.Anything, "1", "c1").Return(forbidden).Once()

	err := c.comments.DeleteComment(context.Background(), "1", "c1")
	assert.Same(t, forbidden, err)
	assert.False(t, stale(c.store, page))
}

func TestCommentUseCase_ValidatesBeforeSending(t *testing.T) {
	c := newCore(t)
	_, err := c.comments.CreateComment(context.Background(), "1", entity.CreateCommentRequest{Content: "  "})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	_, err = c.comments.UpdateComment(context.Background(), "1", "", entity.UpdateCommentRequest{Content: "x"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	c.svc.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
	c.svc.AssertNotCalled(t, "UpdateComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBlogQueries_CommentsArePagedSeparately(t *testing.T) {
	c := newCore(t)
	c.svc.On("ListComments", mock.Anything, "1", entity.CommentListParams{Page: 1, Limit: 10}).
		Return(commentPage(1, entity.BlogComment{ID: "a"}), nil).Once()
	c.svc.On("ListComments", mock.Anything, "1", entity.CommentListParams{Page: 2, Limit: 10}).
		Return(commentPage(2, entity.BlogComment{ID: "b"}), nil).Once()

	p1, err := c.queries.Comments(context.Background(), "1", entity.CommentListParams{})
	require.NoError(t, err)
	p2, err := c.queries.Comments(context.Background(), "1", entity.CommentListParams{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, "a", p1.Items[0].ID)
	assert.Equal(t, "b", p2.Items[0].ID)
	c.svc.AssertExpectations(t)
}

func TestStaleSets(t *testing.T) {
	list := querycache.ListIdentity(entity.ListParams{Q: "tea"})
	detail1 := querycache.DetailIdentity("1")
	detail2 := querycache.DetailIdentity("2")
	comments1 := querycache.CommentsIdentity("1", entity.CommentListParams{Page: 4})

	create := afterCreateBlog().predicate()
	assert.True(t, create(list))
	assert.False(t, create(detail1))
	assert.False(t, create(comments1))

	change := afterBlogChange("1").predicate()
	assert.True(t, change(list))
	assert.True(t, change(detail1))
	assert.False(t, change(detail2))
	assert.False(t, change(comments1))

	comment := afterCommentChange("1").predicate()
	assert.False(t, comment(list))
	assert.True(t, comment(detail1))
	assert.True(t, comment(comments1))
	assert.False(t, comment(detail2))
}
