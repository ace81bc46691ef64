package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"autoplay/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// FindByID returns a user by its user code.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByIdentity returns a user by its OAuth identity.
func (r *UserRepository) FindByIdentity(ctx context.Context, provider, providerSub string) (*models.User, error) {
	var u models.User
	filter := bson.M{"provider": provider, "provider_sub": providerSub}
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertIdentity writes the identity half of a user row at login time,
// keyed by (provider, provider_sub). The profile half is left untouched so
// repeat logins never clobber onboarding data.
func (r *UserRepository) UpsertIdentity(ctx context.Context, u *models.User) error {
	now := time.Now()
	filter := bson.M{"provider": u.Provider, "provider_sub": u.ProviderSub}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":        u.ID,
			"created_at": now,
		},
		"$set": bson.M{
			"email":      u.Email,
			"updated_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, filter, update, opts)
	return err
}

// UpsertProfile writes the onboarding profile fields for a user.
// An empty profilePicture leaves the stored picture unchanged.
func (r *UserRepository) UpsertProfile(ctx context.Context, id, username string, age int, genres []string, profilePicture string) error {
	set := bson.M{
		"username":   username,
		"age":        age,
		"genres":     genres,
		"updated_at": time.Now(),
	}
	if profilePicture != "" {
		set["profile_picture"] = profilePicture
	}
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}
