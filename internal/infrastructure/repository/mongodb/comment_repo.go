package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrInvalidPagination = errors.New("invalid pagination parameters")

type CommentRepository struct {
	collection *mongo.Collection
}

var _ contract.ICommentRepository = (*CommentRepository)(nil)

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{collection: db.Collection("comments")}
}

func (r *CommentRepository) Create(ctx context.Context, comment *entity.BlogComment) error {
	if _, err := r.collection.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.BlogComment, error) {
	var comment entity.BlogComment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contract.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *entity.BlogComment) error {
	update := bson.M{"$set": bson.M{
		"content":    comment.Content,
		"updated_at": comment.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": comment.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if result.MatchedCount == 0 {
		return contract.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.DeletedCount == 0 {
		return contract.ErrCommentNotFound
	}
	return nil
}

// ListByBlog returns one page of a blog's comments, oldest first.
func (r *CommentRepository) ListByBlog(ctx context.Context, blogID string, pagination contract.Pagination) ([]*entity.BlogComment, int64, error) {
	if pagination.Page < 1 || pagination.PageSize < 1 {
		return nil, 0, ErrInvalidPagination
	}
	skip, ok := entity.Offset(pagination.Page, pagination.PageSize)
	filter := bson.M{"blog_id": blogID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	if !ok || int64(skip) >= total {
		return []*entity.BlogComment{}, total, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(pagination.PageSize))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []*entity.BlogComment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, 0, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, total, nil
}

// DeleteByBlog removes every comment of a blog.
func (r *CommentRepository) DeleteByBlog(ctx context.Context, blogID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"blog_id": blogID}); err != nil {
		return fmt.Errorf("failed to delete comments of blog %s: %w", blogID, err)
	}
	return nil
}
