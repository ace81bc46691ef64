package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"autoplay/models"
)

// PostRepository persists user posts. Every filter includes user_id so a
// caller can never reach past the authenticated user's rows; the backing
// store's own row-level scoping remains the authority.
type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection("posts")}
}

// Insert stores a new post (draft or published) and returns it with its id.
func (r *PostRepository) Insert(ctx context.Context, p *models.Post) (*models.Post, error) {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListByUser returns a user's posts filtered by draft state, newest first.
func (r *PostRepository) ListByUser(ctx context.Context, userID string, isDraft bool) ([]models.Post, error) {
	filter := bson.M{"user_id": userID, "is_draft": isDraft}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := make([]models.Post, 0)
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateContent patches only the content field. Returns the matched count so
// callers can distinguish a missing row.
func (r *PostRepository) UpdateContent(ctx context.Context, userID string, id primitive.ObjectID, content string) (int64, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"content": content, "updated_at": time.Now()}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// UpdateImage patches only the image field.
func (r *PostRepository) UpdateImage(ctx context.Context, userID string, id primitive.ObjectID, imageURL string) (int64, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"image": imageURL, "updated_at": time.Now()}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// SetPublished flips a draft to published. A post already published is left
// as is (the filter requires is_draft=true), so the flip happens at most once.
func (r *PostRepository) SetPublished(ctx context.Context, userID string, id primitive.ObjectID) (int64, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID, "is_draft": true},
		bson.M{"$set": bson.M{"is_draft": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// Delete removes at most one post. Returns the deleted count; deleting an
// already-deleted id yields 0 with no error.
func (r *PostRepository) Delete(ctx context.Context, userID string, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
