package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"post-dashboard/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// FindByEmail 은 이메일(대소문자 무시)로 계정을 찾는다.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpsertByEmail 은 시드 계정을 만들거나 비밀번호/이름을 갱신한다.
func (r *UserRepository) UpsertByEmail(ctx context.Context, u *models.User) (*mongo.UpdateResult, error) {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	email := strings.ToLower(strings.TrimSpace(u.Email))

	filter := bson.M{"email": email}
	update := bson.M{
		"$setOnInsert": bson.M{
			"created_at": u.CreatedAt,
		},
		"$set": bson.M{
			"updated_at":    u.UpdatedAt,
			"email":         email,
			"name":          u.Name,
			"password_hash": u.PasswordHash,
		},
	}
	opts := options.Update().SetUpsert(true)
	return r.col.UpdateOne(ctx, filter, update, opts)
}
