// Package blogapi is the typed client of the remote blog REST API.
package blogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/mikiasgoitom/traceblog/internal/domain/apperror"
	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"golang.org/x/oauth2"
)

const defaultTimeout = 10 * time.Second

// Options configures a Client.
type Options struct {
	// BaseURL is the API origin, e.g. http://localhost:8080.
	BaseURL string
	// APIVersion is the version path segment; "v1" when empty.
	APIVersion string
	Timeout    time.Duration
	// TokenSource, when set, attaches "Authorization: Bearer <token>" to every request.
	TokenSource oauth2.TokenSource
	// HTTPClient supplies the base transport. http.DefaultTransport when nil.
	HTTPClient *http.Client
}

// Client issues the blog API calls. It keeps no state besides its
// configuration and never retries.
type Client struct {
	base       *url.URL
	httpClient *http.Client
}

var _ contract.IBlogService = (*Client)(nil)

// NewClient builds a client rooted at <BaseURL>/api/<APIVersion>.
func NewClient(opts Options) (*Client, error) {
	base, err := versionedBase(opts.BaseURL, opts.APIVersion)
	if err != nil {
		return nil, err
	}
	return &Client{base: base, httpClient: newHTTPClient(opts)}, nil
}

func versionedBase(rawURL, version string) (*url.URL, error) {
	base, err := url.Parse(strings.TrimRight(rawURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", rawURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme and host are required", rawURL)
	}
	if version == "" {
		version = "v1"
	}
	base.Path = strings.TrimRight(base.Path, "/") + "/api/" + strings.Trim(version, "/")
	return base, nil
}

func newHTTPClient(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := http.DefaultTransport
	if opts.HTTPClient != nil && opts.HTTPClient.Transport != nil {
		transport = opts.HTTPClient.Transport
	}
	if opts.TokenSource != nil {
		transport = &oauth2.Transport{Source: opts.TokenSource, Base: transport}
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}

// ListBlogs fetches one page of posts, optionally filtered by search text.
func (c *Client) ListBlogs(ctx context.Context, params entity.ListParams) (*entity.Page[entity.BlogPost], error) {
	var page entity.Page[entity.BlogPost]
	status, err := c.do(ctx, http.MethodGet, "/blogs", params.Normalize(), nil, &page)
	if err != nil {
		return nil, err
	}
	if err := validatePage(page.Meta, len(page.Items)); err != nil {
		return nil, apperror.Malformed(status, err)
	}
	for i := range page.Items {
		if err := validatePost(&page.Items[i]); err != nil {
			return nil, apperror.Malformed(status, err)
		}
	}
	return &page, nil
}

// GetBlog fetches one post.
func (c *Client) GetBlog(ctx context.Context, blogID string) (*entity.BlogPost, error) {
	return c.postCall(ctx, http.MethodGet, blogPath(blogID), nil)
}

// CreateBlog publishes a new post and returns it as stored by the server.
func (c *Client) CreateBlog(ctx context.Context, req entity.CreateBlogRequest) (*entity.BlogPost, error) {
	return c.postCall(ctx, http.MethodPost, "/blogs", req)
}

// UpdateBlog applies a partial update.
func (c *Client) UpdateBlog(ctx context.Context, blogID string, req entity.UpdateBlogRequest) (*entity.BlogPost, error) {
	return c.postCall(ctx, http.MethodPatch, blogPath(blogID), req)
}

// DeleteBlog removes a post.
func (c *Client) DeleteBlog(ctx context.Context, blogID string) error {
	_, err := c.do(ctx, http.MethodDelete, blogPath(blogID), nil, nil, nil)
	return err
}

// LikeBlog likes a post and returns the server-confirmed like state.
func (c *Client) LikeBlog(ctx context.Context, blogID string) (*entity.LikeState, error) {
	return c.likeCall(ctx, http.MethodPost, blogPath(blogID)+"/like")
}

// UnlikeBlog removes the viewer's like and returns the server-confirmed like state.
func (c *Client) UnlikeBlog(ctx context.Context, blogID string) (*entity.LikeState, error) {
	return c.likeCall(ctx, http.MethodDelete, blogPath(blogID)+"/unlike")
}

// ListComments fetches one page of a post's comments.
func (c *Client) ListComments(ctx context.Context, blogID string, params entity.CommentListParams) (*entity.Page[entity.BlogComment], error) {
	var page entity.Page[entity.BlogComment]
	status, err := c.do(ctx, http.MethodGet, blogPath(blogID)+"/comments", params.Normalize(), nil, &page)
	if err != nil {
		return nil, err
	}
	if err := validatePage(page.Meta, len(page.Items)); err != nil {
		return nil, apperror.Malformed(status, err)
	}
	return &page, nil
}

func (c *Client) CreateComment(ctx context.Context, blogID string, req entity.CreateCommentRequest) (*entity.BlogComment, error) {
	return c.commentCall(ctx, http.MethodPost, blogPath(blogID)+"/comment", req)
}

func (c *Client) UpdateComment(ctx context.Context, blogID, commentID string, req entity.UpdateCommentRequest) (*entity.BlogComment, error) {
	return c.commentCall(ctx, http.MethodPatch, commentPath(blogID, commentID), req)
}

func (c *Client) DeleteComment(ctx context.Context, blogID, commentID string) error {
	_, err := c.do(ctx, http.MethodDelete, commentPath(blogID, commentID), nil, nil, nil)
	return err
}

func (c *Client) postCall(ctx context.Context, method, path string, body interface{}) (*entity.BlogPost, error) {
	var post entity.BlogPost
	status, err := c.do(ctx, method, path, nil, body, &post)
	if err != nil {
		return nil, err
	}
	if err := validatePost(&post); err != nil {
		return nil, apperror.Malformed(status, err)
	}
	return &post, nil
}

func (c *Client) likeCall(ctx context.Context, method, path string) (*entity.LikeState, error) {
	var state entity.LikeState
	status, err := c.do(ctx, method, path, nil, nil, &state)
	if err != nil {
		return nil, err
	}
	if state.LikesCount < 0 {
		return nil, apperror.Malformed(status, fmt.Errorf("negative likesCount %d", state.LikesCount))
	}
	return &state, nil
}

func (c *Client) commentCall(ctx context.Context, method, path string, body interface{}) (*entity.BlogComment, error) {
	var comment entity.BlogComment
	status, err := c.do(ctx, method, path, nil, body, &comment)
	if err != nil {
		return nil, err
	}
	if comment.ID == "" {
		return nil, apperror.Malformed(status, errors.New("comment without id"))
	}
	return &comment, nil
}

// do performs one request and decodes the envelope's data into out. A nil
// out accepts any 2xx body, including an empty one.
func (c *Client) do(ctx context.Context, method, path string, params interface{}, body, out interface{}) (int, error) {
	req, err := c.newRequest(ctx, method, path, params, body)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			// token source failures keep their own kind
			return 0, appErr
		}
		return 0, apperror.Network(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, apperror.Network(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, apperror.FromResponse(resp.StatusCode, raw)
	}
	if out == nil {
		return resp.StatusCode, nil
	}
	if err := decodeEnvelope(raw, out); err != nil {
		return resp.StatusCode, apperror.Malformed(resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, params, body interface{}) (*http.Request, error) {
	u := *c.base
	rawPath := c.base.EscapedPath() + path
	unescaped, err := url.PathUnescape(rawPath)
	if err != nil {
		return nil, apperror.Validation("invalid request path", err)
	}
	u.Path, u.RawPath = unescaped, rawPath
	if params != nil {
		values, err := query.Values(params)
		if err != nil {
			return nil, apperror.Validation("invalid query parameters", err)
		}
		u.RawQuery = values.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperror.Validation("invalid request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// decodeEnvelope unpacks {meta, data} into out. The data member is required.
func decodeEnvelope(raw []byte, out interface{}) error {
	var env struct {
		Meta entity.ResponseMeta `json:"meta"`
		Data json.RawMessage     `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return errors.New("response envelope has no data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func validatePage(meta entity.PageMeta, items int) error {
	if err := meta.Validate(); err != nil {
		return err
	}
	if items > meta.Limit {
		return fmt.Errorf("page holds %d items but limit is %d", items, meta.Limit)
	}
	return nil
}

func validatePost(p *entity.BlogPost) error {
	switch {
	case p.ID == "":
		return errors.New("blog post without id")
	case p.LikesCount < 0 || p.CommentsCount < 0:
		return fmt.Errorf("blog post %s has negative counters", p.ID)
	}
	return nil
}

func blogPath(blogID string) string {
	return "/blogs/" + url.PathEscape(blogID)
}

func commentPath(blogID, commentID string) string {
	return blogPath(blogID) + "/comment/" + url.PathEscape(commentID)
}
