package blogapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mikiasgoitom/traceblog/internal/domain/apperror"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, data interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
		"meta": map[string]interface{}{"statusCode": status, "message": "OK", "error": ""},
		"data": data,
	}))
}

func writeError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func newTestClient(t *testing.T, srv *httptest.Server, opts Options) *Client {
	t.Helper()
	opts.BaseURL = srv.URL
	c, err := NewClient(opts)
	require.NoError(t, err)
	return c
}

func samplePost(id string) entity.BlogPost {
	return entity.BlogPost{
		ID:           id,
		Title:        "Harvest notes",
		Content:      "content",
		Tags:         []string{"farm"},
		Type:         entity.BlogTypeExperience,
		ThumbnailURL: "https://img.example.com/t.png",
		Author:       "Demo",
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		LikesCount:   3,
	}
}

func TestNewClient_RejectsRelativeBaseURL(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "/only/a/path"})
	assert.Error(t, err)
}

func TestClient_ListBlogs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/blogs", r.URL.Path)
		assert.Equal(t, "limit=10&page=1&q=farm", r.URL.RawQuery)
		writeEnvelope(t, w, http.StatusOK, entity.Page[entity.BlogPost]{
			Items: []entity.BlogPost{samplePost("1"), samplePost("2")},
			Meta:  entity.NewPageMeta(1, 10, 2),
		})
	}))
	defer srv.Close()

	page, err := newTestClient(t, srv, Options{}).ListBlogs(context.Background(), entity.ListParams{Q: "farm"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.Meta.PageCount)
	assert.False(t, page.Meta.HasNextPage)
	assert.False(t, page.Meta.HasPreviousPage)
}

func TestClient_ListBlogs_OmitsEmptySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "limit=5&page=2", r.URL.RawQuery)
		writeEnvelope(t, w, http.StatusOK, entity.Page[entity.BlogPost]{
			Items: []entity.BlogPost{},
			Meta:  entity.NewPageMeta(2, 5, 5),
		})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, Options{}).ListBlogs(context.Background(), entity.ListParams{Page: 2, Limit: 5})
	require.NoError(t, err)
}

func TestClient_ListBlogs_SendsTypeAndTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "limit=10&page=1&tags=coffee&tags=farm&type=review", r.URL.RawQuery)
		writeEnvelope(t, w, http.StatusOK, entity.Page[entity.BlogPost]{
			Items: []entity.BlogPost{},
			Meta:  entity.NewPageMeta(1, 10, 0),
		})
	}))
	defer srv.Close()

	params := entity.ListParams{Type: entity.BlogTypeReview, Tags: []string{"farm", " coffee", "farm", ""}}
	_, err := newTestClient(t, srv, Options{}).ListBlogs(context.Background(), params)
	require.NoError(t, err)
}

func TestClient_ListBlogs_InconsistentMetaIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meta := entity.NewPageMeta(1, 10, 2)
		meta.HasNextPage = true
		writeEnvelope(t, w, http.StatusOK, entity.Page[entity.BlogPost]{Items: []entity.BlogPost{samplePost("1")}, Meta: meta})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, Options{}).ListBlogs(context.Background(), entity.ListParams{})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindMalformed))
	assert.True(t, apperror.Is(err, apperror.KindServer))
	assert.ErrorIs(t, err, apperror.ErrServer)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    apperror.Kind
		message string
	}{
		{"not found", http.StatusNotFound, `{"message":"Blog not found","statusCode":404,"error":"Not Found"}`, apperror.KindNotFound, "Blog not found"},
		{"unauthorized", http.StatusUnauthorized, `{"message":"Unauthorized","statusCode":401}`, apperror.KindUnauthorized, "Unauthorized"},
		{"validation list", http.StatusBadRequest, `{"message":["title should not be empty","type must be valid"],"statusCode":400,"error":"Bad Request"}`, apperror.KindValidation, "title should not be empty; type must be valid"},
		{"forbidden", http.StatusForbidden, `{"message":"not the author","statusCode":403,"error":"Forbidden"}`, apperror.KindValidation, "not the author"},
		{"server html", http.StatusBadGateway, `<html>bad gateway</html>`, apperror.KindServer, "An error occurred (HTTP 502)"},
		{"server empty", http.StatusInternalServerError, ``, apperror.KindServer, "An error occurred (HTTP 500)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeError(w, tc.status, tc.body)
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv, Options{}).GetBlog(context.Background(), "1")
			require.Error(t, err)
			kind, msg := apperror.Describe(err)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.message, msg)

			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tc.status, appErr.Status)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestClient(t, srv, Options{})
	srv.Close()

	_, err := c.GetBlog(context.Background(), "1")
	require.Error(t, err)
	kind, msg := apperror.Describe(err)
	assert.Equal(t, apperror.KindNetwork, kind)
	assert.Equal(t, "Network error occurred", msg)
	assert.True(t, apperror.Retryable(err))
}

func TestClient_MissingDataIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusOK, `{"meta":{"statusCode":200}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, Options{}).GetBlog(context.Background(), "1")
	assert.True(t, apperror.Is(err, apperror.KindMalformed))
}

func TestClient_WritesUseDocumentedRoutes(t *testing.T) {
	type call struct{ method, path string }
	var (
		mu    sync.Mutex
		calls []call
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, call{r.Method, r.URL.Path})
		mu.Unlock()
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/blogs/9":
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/api/v1/blogs/9/like" || r.URL.Path == "/api/v1/blogs/9/unlike":
			writeEnvelope(t, w, http.StatusOK, entity.LikeState{IsLiked: r.Method == http.MethodPost, LikesCount: 4})
		case r.URL.Path == "/api/v1/blogs/9/comment" || r.URL.Path == "/api/v1/blogs/9/comment/c1":
			if r.Method == http.MethodDelete {
				writeEnvelope(t, w, http.StatusOK, map[string]bool{"deleted": true})
				return
			}
			writeEnvelope(t, w, http.StatusOK, entity.BlogComment{ID: "c1", Content: "hi"})
		default:
			body, _ := io.ReadAll(r.Body)
			if r.Method == http.MethodPatch {
				assert.JSONEq(t, `{"title":"New"}`, string(body))
			}
			writeEnvelope(t, w, http.StatusOK, samplePost("9"))
		}
	}))
	defer srv.Close()
	c := newTestClient(t, srv, Options{})
	ctx := context.Background()

	_, err := c.CreateBlog(ctx, entity.CreateBlogRequest{Title: "T", Type: entity.BlogTypeNews, ThumbnailURL: "https://x.y/z.png"})
	require.NoError(t, err)
	title := "New"
	_, err = c.UpdateBlog(ctx, "9", entity.UpdateBlogRequest{Title: &title})
	require.NoError(t, err)
	liked, err := c.LikeBlog(ctx, "9")
	require.NoError(t, err)
	assert.Equal(t, entity.LikeState{IsLiked: true, LikesCount: 4}, *liked)
	unliked, err := c.UnlikeBlog(ctx, "9")
	require.NoError(t, err)
	assert.False(t, unliked.IsLiked)
	_, err = c.CreateComment(ctx, "9", entity.CreateCommentRequest{Content: "hi"})
	require.NoError(t, err)
	_, err = c.UpdateComment(ctx, "9", "c1", entity.UpdateCommentRequest{Content: "edited"})
	require.NoError(t, err)
	require.NoError(t, c.DeleteComment(ctx, "9", "c1"))
	require.NoError(t, c.DeleteBlog(ctx, "9"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []call{
		{http.MethodPost, "/api/v1/blogs"},
		{http.MethodPatch, "/api/v1/blogs/9"},
		{http.MethodPost, "/api/v1/blogs/9/like"},
		{http.MethodDelete, "/api/v1/blogs/9/unlike"},
		{http.MethodPost, "/api/v1/blogs/9/comment"},
		{http.MethodPatch, "/api/v1/blogs/9/comment/c1"},
		{http.MethodDelete, "/api/v1/blogs/9/comment/c1"},
		{http.MethodDelete, "/api/v1/blogs/9"},
	}, calls)
}

func TestClient_ListComments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/blogs/3/comments", r.URL.Path)
		assert.Equal(t, "limit=10&page=1", r.URL.RawQuery)
		writeEnvelope(t, w, http.StatusOK, entity.Page[entity.BlogComment]{
			Items: []entity.BlogComment{{ID: "c1", Content: "first"}},
			Meta:  entity.NewPageMeta(1, 10, 1),
		})
	}))
	defer srv.Close()

	page, err := newTestClient(t, srv, Options{}).ListComments(context.Background(), "3", entity.CommentListParams{})
	require.NoError(t, err)
	assert.Equal(t, "first", page.Items[0].Content)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		writeEnvelope(t, w, http.StatusOK, samplePost("1"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{TokenSource: StaticTokenSource("secret-token")})
	_, err := c.GetBlog(context.Background(), "1")
	require.NoError(t, err)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})
	s, err := tok.SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func TestLoginTokenSource_LogsInOnceAndReusesToken(t *testing.T) {
	var logins int32
	token := signedToken(t, time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login-with-credentials":
			atomic.AddInt32(&logins, 1)
			var req entity.LoginWithCredentialsRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "0900000000", req.PhoneNumber)
			writeEnvelope(t, w, http.StatusOK, entity.AuthResult{User: entity.User{ID: "u1"}, AccessToken: token})
		case "/api/v1/auth/me":
			assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
			writeEnvelope(t, w, http.StatusOK, entity.User{ID: "u1", Name: "Demo"})
		default:
			assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
			writeEnvelope(t, w, http.StatusOK, samplePost("1"))
		}
	}))
	defer srv.Close()

	login, err := NewAuthClient(Options{BaseURL: srv.URL})
	require.NoError(t, err)
	ts := LoginTokenSource(login, "0900000000", "secret")

	c := newTestClient(t, srv, Options{TokenSource: ts})
	_, err = c.GetBlog(context.Background(), "1")
	require.NoError(t, err)
	_, err = c.GetBlog(context.Background(), "1")
	require.NoError(t, err)

	me, err := NewAuthClient(Options{BaseURL: srv.URL, TokenSource: ts})
	require.NoError(t, err)
	user, err := me.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Demo", user.Name)

	assert.EqualValues(t, 1, atomic.LoadInt32(&logins))
}

func TestLoginTokenSource_FailedLoginIsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/login-with-credentials" {
			writeError(w, http.StatusUnauthorized, `{"message":"Invalid credentials","statusCode":401,"error":"Unauthorized"}`)
			return
		}
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))
	defer srv.Close()

	login, err := NewAuthClient(Options{BaseURL: srv.URL})
	require.NoError(t, err)
	c := newTestClient(t, srv, Options{TokenSource: LoginTokenSource(login, "x", "y")})

	_, err = c.LikeBlog(context.Background(), "1")
	require.Error(t, err)
	kind, msg := apperror.Describe(err)
	assert.Equal(t, apperror.KindUnauthorized, kind)
	assert.Equal(t, "Invalid credentials", msg)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	assert.WithinDuration(t, exp, tokenExpiry(signedToken(t, exp)), time.Second)
	assert.WithinDuration(t, time.Now().Add(defaultTokenLifetime), tokenExpiry("not-a-jwt"), 5*time.Second)
}
