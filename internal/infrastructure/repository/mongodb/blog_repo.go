package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BlogRepository represents the MongoDB implementation of the IBlogRepository interface.
type BlogRepository struct {
	collection *mongo.Collection
}

var _ contract.IBlogRepository = (*BlogRepository)(nil)

// NewBlogRepository creates and returns a new BlogRepository instance.
func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{collection: db.Collection("blogs")}
}

// buildBlogFilter narrows by type and tags, then matches the search text
// against title, content and tags.
func buildBlogFilter(opts *contract.BlogFilterOptions) bson.M {
	filter := bson.M{}
	if opts == nil {
		return filter
	}
	if opts.Type != "" {
		filter["type"] = opts.Type
	}
	if len(opts.Tags) > 0 {
		filter["tags"] = bson.M{"$in": opts.Tags}
	}
	if opts.Search == "" {
		return filter
	}
	pattern := searchPattern(opts.Search)
	filter["$or"] = bson.A{
		bson.M{"title": pattern},
		bson.M{"content": pattern},
		bson.M{"tags": pattern},
	}
	return filter
}

func searchPattern(text string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(text), "$options": "i"}
}

// CreateBlog inserts a new blog post record into the database.
func (r *BlogRepository) CreateBlog(ctx context.Context, blog *entity.BlogPost) error {
	if blog.Tags == nil {
		blog.Tags = []string{}
	}
	if blog.Images == nil {
		blog.Images = []entity.BlogImage{}
	}
	if _, err := r.collection.InsertOne(ctx, blog); err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}
	return nil
}

// GetBlogByID retrieves a single blog post by its unique id.
func (r *BlogRepository) GetBlogByID(ctx context.Context, blogID string) (*entity.BlogPost, error) {
	var blog entity.BlogPost
	err := r.collection.FindOne(ctx, bson.M{"_id": blogID}).Decode(&blog)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contract.ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to retrieve blog post: %w", err)
	}
	return &blog, nil
}

// GetBlogs retrieves one page of blog posts, newest first, with the total count.
func (r *BlogRepository) GetBlogs(ctx context.Context, filterOptions *contract.BlogFilterOptions) ([]*entity.BlogPost, int64, error) {
	filter := buildBlogFilter(filterOptions)

	totalCount, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total blog count: %w", err)
	}

	skip, ok := entity.Offset(filterOptions.Page, filterOptions.PageSize)
	if !ok || int64(skip) >= totalCount {
		return []*entity.BlogPost{}, totalCount, nil
	}
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(filterOptions.PageSize))

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve blog posts: %w", err)
	}
	defer cursor.Close(ctx)

	var blogs []*entity.BlogPost
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode blog posts: %w", err)
	}
	return blogs, totalCount, nil
}

// UpdateBlog overwrites the editable fields of an existing post.
func (r *BlogRepository) UpdateBlog(ctx context.Context, blog *entity.BlogPost) error {
	update := bson.M{"$set": bson.M{
		"title":         blog.Title,
		"content":       blog.Content,
		"tags":          blog.Tags,
		"type":          blog.Type,
		"thumbnail_url": blog.ThumbnailURL,
		"images":        blog.Images,
		"updated_at":    blog.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": blog.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update blog post: %w", err)
	}
	if res.MatchedCount == 0 {
		return contract.ErrBlogNotFound
	}
	return nil
}

// DeleteBlog removes a blog post record.
func (r *BlogRepository) DeleteBlog(ctx context.Context, blogID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": blogID})
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	if res.DeletedCount == 0 {
		return contract.ErrBlogNotFound
	}
	return nil
}

// AdjustCounts adds the deltas to the counters in one pipeline update so
// neither can drop below zero.
func (r *BlogRepository) AdjustCounts(ctx context.Context, blogID string, likesDelta, commentsDelta int) error {
	clamp := func(field string, delta int) bson.M {
		return bson.M{"$max": bson.A{0, bson.M{"$add": bson.A{"$" + field, delta}}}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"likes_count":    clamp("likes_count", likesDelta),
			"comments_count": clamp("comments_count", commentsDelta),
		}}},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": blogID}, pipeline)
	if err != nil {
		return fmt.Errorf("failed to adjust blog counters: %w", err)
	}
	if res.MatchedCount == 0 {
		return contract.ErrBlogNotFound
	}
	return nil
}
