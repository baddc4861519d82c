package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "github.com/tograil/Mongocore/internal/errors"
	"github.com/tograil/Mongocore/internal/identity/domain"
	"github.com/tograil/Mongocore/pkg/constant"
)

// UserRepository stores User documents in a mongo collection. Ids come from
// the shared sequence allocator under the user entity type.
type UserRepository struct {
	users Collection
	seq   domain.Sequence
}

func NewUserRepository(users Collection, seq domain.Sequence) *UserRepository {
	return &UserRepository{users: users, seq: seq}
}

// Create allocates the user's id and inserts the document. A duplicate key
// from the store is surfaced, not swallowed; with atomic allocation it
// indicates a misconfigured counter collection.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	id, err := r.seq.Next(ctx, constant.UserEntity)
	if err != nil {
		return err
	}
	user.ID = id

	if _, err := r.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: user id %d", apperrors.ErrDuplicateKey, user.ID)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// Update replaces the document matching the user's id. Zero matched
// documents (already deleted) is success with no effect.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	if _, err := r.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user); err != nil {
		return fmt.Errorf("replace user %d: %w", user.ID, err)
	}
	return nil
}

// Delete removes the document matching the user's id; absent is a no-op.
func (r *UserRepository) Delete(ctx context.Context, user *domain.User) error {
	if _, err := r.users.DeleteOne(ctx, bson.M{"_id": user.ID}); err != nil {
		return fmt.Errorf("delete user %d: %w", user.ID, err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByNormalizedUserName(ctx context.Context, name string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"normalizedUserName": name})
}

func (r *UserRepository) FindByNormalizedEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"normalizedEmail": email})
}

// List returns every user document.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	cursor, err := r.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := r.users.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
