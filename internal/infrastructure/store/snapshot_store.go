// Package store is the Redis snapshot mirror of server-confirmed query
// results. It outlives the process so a restarted client has something to
// show while its first fetches run.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/metrics"
)

const (
	defaultTTL = 30 * time.Minute
	scanCount  = 1000
	delBatch   = 200
)

// SnapshotStore implements contract.IBlogSnapshotCache on Redis. Values are
// stored as JSON under the query identity key they were fetched for.
type SnapshotStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ contract.IBlogSnapshotCache = (*SnapshotStore)(nil)

// NewSnapshotStore creates the mirror. ttl <= 0 selects 30 minutes.
func NewSnapshotStore(rdb *redis.Client, ttl time.Duration) *SnapshotStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SnapshotStore{rdb: rdb, ttl: ttl}
}

func detailKey(blogID string) string { return "blogs:detail:" + blogID }

func (s *SnapshotStore) GetBlog(ctx context.Context, key string) (*entity.BlogPost, bool, error) {
	return get[entity.BlogPost](ctx, s.rdb, "get_blog", key)
}

func (s *SnapshotStore) SetBlog(ctx context.Context, key string, blog *entity.BlogPost) error {
	return s.set(ctx, "set_blog", key, blog)
}

func (s *SnapshotStore) InvalidateBlog(ctx context.Context, blogID string) error {
	err := s.rdb.Del(ctx, detailKey(blogID)).Err()
	metrics.IncSnapshotOp("invalidate_blog", result(err))
	return err
}

func (s *SnapshotStore) GetBlogsPage(ctx context.Context, key string) (*entity.Page[entity.BlogPost], bool, error) {
	return get[entity.Page[entity.BlogPost]](ctx, s.rdb, "get_list", key)
}

func (s *SnapshotStore) SetBlogsPage(ctx context.Context, key string, page *entity.Page[entity.BlogPost]) error {
	return s.set(ctx, "set_list", key, page)
}

// InvalidateBlogLists drops every mirrored list page, under any filters.
func (s *SnapshotStore) InvalidateBlogLists(ctx context.Context) error {
	err := s.deleteMatching(ctx, "blogs:list*")
	metrics.IncSnapshotOp("invalidate_lists", result(err))
	return err
}

func (s *SnapshotStore) GetCommentsPage(ctx context.Context, key string) (*entity.Page[entity.BlogComment], bool, error) {
	return get[entity.Page[entity.BlogComment]](ctx, s.rdb, "get_comments", key)
}

func (s *SnapshotStore) SetCommentsPage(ctx context.Context, key string, page *entity.Page[entity.BlogComment]) error {
	return s.set(ctx, "set_comments", key, page)
}

// InvalidateComments drops every mirrored comment page of one blog.
func (s *SnapshotStore) InvalidateComments(ctx context.Context, blogID string) error {
	prefix := "blogs:comments:" + blogID
	err := s.rdb.Del(ctx, prefix).Err()
	if err == nil {
		err = s.deleteMatching(ctx, escapeGlob(prefix)+":*")
	}
	metrics.IncSnapshotOp("invalidate_comments", result(err))
	return err
}

func get[T any](ctx context.Context, rdb *redis.Client, op, key string) (*T, bool, error) {
	b, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.IncSnapshotOp(op, "miss")
			return nil, false, nil
		}
		metrics.IncSnapshotOp(op, "error")
		return nil, false, err
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		// an unreadable snapshot is just a miss; the next fetch overwrites it
		metrics.IncSnapshotOp(op, "corrupt")
		return nil, false, nil
	}
	metrics.IncSnapshotOp(op, "hit")
	return &v, true, nil
}

func (s *SnapshotStore) set(ctx context.Context, op, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		metrics.IncSnapshotOp(op, "error")
		return err
	}
	err = s.rdb.Set(ctx, key, data, s.ttl).Err()
	metrics.IncSnapshotOp(op, result(err))
	return err
}

// deleteMatching removes every key matching pattern, pipelining the deletes.
func (s *SnapshotStore) deleteMatching(ctx context.Context, pattern string) error {
	iter := s.rdb.Scan(ctx, 0, pattern, scanCount).Iterator()
	pipe := s.rdb.Pipeline()
	n := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		n++
		if n%delBatch == 0 {
			if _, err := pipe.Exec(ctx); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if n%delBatch == 0 {
		return nil
	}
	_, err := pipe.Exec(ctx)
	return err
}

var globReplacer = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapeGlob quotes the characters SCAN MATCH treats as pattern syntax.
func escapeGlob(s string) string { return globReplacer.Replace(s) }

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
