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

// RoleRepository mirrors UserRepository over the roles collection. Role ids
// come from their own counter sequence, so user and role ids are
// independent integer spaces.
type RoleRepository struct {
	roles Collection
	seq   domain.Sequence
}

func NewRoleRepository(roles Collection, seq domain.Sequence) *RoleRepository {
	return &RoleRepository{roles: roles, seq: seq}
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	id, err := r.seq.Next(ctx, constant.RoleEntity)
	if err != nil {
		return err
	}
	role.ID = id

	if _, err := r.roles.InsertOne(ctx, role); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: role id %d", apperrors.ErrDuplicateKey, role.ID)
		}
		return fmt.Errorf("insert role: %w", err)
	}

	return nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	if _, err := r.roles.ReplaceOne(ctx, bson.M{"_id": role.ID}, role); err != nil {
		return fmt.Errorf("replace role %d: %w", role.ID, err)
	}
	return nil
}

func (r *RoleRepository) Delete(ctx context.Context, role *domain.Role) error {
	if _, err := r.roles.DeleteOne(ctx, bson.M{"_id": role.ID}); err != nil {
		return fmt.Errorf("delete role %d: %w", role.ID, err)
	}
	return nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id int) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *RoleRepository) FindByNormalizedName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"normalizedName": name})
}

func (r *RoleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Role, error) {
	var role domain.Role
	err := r.roles.FindOne(ctx, filter).Decode(&role)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &role, nil
}
