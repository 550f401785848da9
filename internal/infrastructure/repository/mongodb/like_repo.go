package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LikeRepository represents the MongoDB implementation of the ILikeRepository interface.
type LikeRepository struct {
	collection *mongo.Collection
}

var _ contract.ILikeRepository = (*LikeRepository)(nil)

// likeRecord is one viewer's like on one blog.
type likeRecord struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	BlogID    string    `bson:"blog_id"`
	CreatedAt time.Time `bson:"created_at"`
}

// NewLikeRepository creates and returns a new LikeRepository instance.
func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{collection: db.Collection("blog_likes")}
}

// EnsureIndexes creates the unique (user_id, blog_id) index that keeps likes idempotent.
func (r *LikeRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "blog_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create like index: %w", err)
	}
	return nil
}

// AddLike upserts the like and reports whether a new record was created.
func (r *LikeRepository) AddLike(ctx context.Context, userID, blogID string) (bool, error) {
	filter := bson.M{"user_id": userID, "blog_id": blogID}
	update := bson.M{"$setOnInsert": bson.M{
		"_id":        uuid.New().String(),
		"created_at": time.Now().UTC(),
	}}
	res, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// a concurrent like won the upsert
			return false, nil
		}
		return false, fmt.Errorf("failed to record like: %w", err)
	}
	return res.UpsertedCount == 1, nil
}

// RemoveLike deletes the like and reports whether one existed.
func (r *LikeRepository) RemoveLike(ctx context.Context, userID, blogID string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "blog_id": blogID})
	if err != nil {
		return false, fmt.Errorf("failed to remove like: %w", err)
	}
	return res.DeletedCount == 1, nil
}

func (r *LikeRepository) IsLiked(ctx context.Context, userID, blogID string) (bool, error) {
	var rec likeRecord
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "blog_id": blogID}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to retrieve like: %w", err)
	}
	return true, nil
}

// LikedAmong returns the subset of blogIDs the user has liked.
func (r *LikeRepository) LikedAmong(ctx context.Context, userID string, blogIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(blogIDs))
	if userID == "" || len(blogIDs) == 0 {
		return liked, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID, "blog_id": bson.M{"$in": blogIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to find likes: %w", err)
	}
	defer cursor.Close(ctx)

	var records []likeRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode likes: %w", err)
	}
	for _, rec := range records {
		liked[rec.BlogID] = true
	}
	return liked, nil
}

func (r *LikeRepository) DeleteByBlog(ctx context.Context, blogID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"blog_id": blogID}); err != nil {
		return fmt.Errorf("failed to delete likes of blog %s: %w", blogID, err)
	}
	return nil
}
