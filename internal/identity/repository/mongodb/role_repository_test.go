package mongodb_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "github.com/tograil/Mongocore/internal/errors"
	"github.com/tograil/Mongocore/internal/identity/domain"
	"github.com/tograil/Mongocore/internal/identity/repository/mongodb"
	"github.com/tograil/Mongocore/internal/mocks"
)

func TestRoleRepository_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	roles := mocks.NewMockCollection(ctrl)
	seq := mocks.NewMockSequence(ctrl)
	repo := mongodb.NewRoleRepository(roles, seq)

	role := domain.NewRole("Admin")

	// Role ids draw from the "role" sequence, not the user one.
	seq.EXPECT().Next(gomock.Any(), "role").Return(1, nil)
	roles.EXPECT().InsertOne(gomock.Any(), role).Return(&mongo.InsertOneResult{InsertedID: 1}, nil)

	err := repo.Create(context.Background(), role)

	require.NoError(t, err)
	assert.Equal(t, 1, role.ID)
	assert.Equal(t, "ADMIN", role.NormalizedName)
}

func TestRoleRepository_Create_DuplicateKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	roles := mocks.NewMockCollection(ctrl)
	seq := mocks.NewMockSequence(ctrl)
	repo := mongodb.NewRoleRepository(roles, seq)

	seq.EXPECT().Next(gomock.Any(), "role").Return(1, nil)
	roles.EXPECT().InsertOne(gomock.Any(), gomock.Any()).Return(nil, mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000}},
	})

	err := repo.Create(context.Background(), domain.NewRole("Admin"))

	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)
}

func TestRoleRepository_UpdateAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	roles := mocks.NewMockCollection(ctrl)
	repo := mongodb.NewRoleRepository(roles, mocks.NewMockSequence(ctrl))

	role := domain.NewRole("Admin")
	role.ID = 3

	roles.EXPECT().
		ReplaceOne(gomock.Any(), bson.M{"_id": 3}, role).
		Return(&mongo.UpdateResult{MatchedCount: 0}, nil)
	assert.NoError(t, repo.Update(context.Background(), role))

	roles.EXPECT().
		DeleteOne(gomock.Any(), bson.M{"_id": 3}).
		Return(&mongo.DeleteResult{DeletedCount: 0}, nil)
	assert.NoError(t, repo.Delete(context.Background(), role))
}

func TestRoleRepository_FindByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	roles := mocks.NewMockCollection(ctrl)
	repo := mongodb.NewRoleRepository(roles, mocks.NewMockSequence(ctrl))

	stored := domain.NewRole("Admin")
	stored.ID = 3

	roles.EXPECT().
		FindOne(gomock.Any(), bson.M{"_id": 3}).
		Return(mongo.NewSingleResultFromDocument(stored, nil, nil))

	role, err := repo.FindByID(context.Background(), 3)

	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, "Admin", role.Name)
}

func TestRoleRepository_FindByNormalizedName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	roles := mocks.NewMockCollection(ctrl)
	repo := mongodb.NewRoleRepository(roles, mocks.NewMockSequence(ctrl))

	t.Run("found", func(t *testing.T) {
		stored := domain.NewRole("Admin")
		stored.ID = 3

		roles.EXPECT().
			FindOne(gomock.Any(), bson.M{"normalizedName": "ADMIN"}).
			Return(mongo.NewSingleResultFromDocument(stored, nil, nil))

		role, err := repo.FindByNormalizedName(context.Background(), "ADMIN")

		require.NoError(t, err)
		require.NotNil(t, role)
		assert.Equal(t, 3, role.ID)
	})

	t.Run("miss returns nil, nil", func(t *testing.T) {
		roles.EXPECT().
			FindOne(gomock.Any(), bson.M{"normalizedName": "AUDITOR"}).
			Return(mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil))

		role, err := repo.FindByNormalizedName(context.Background(), "AUDITOR")

		require.NoError(t, err)
		assert.Nil(t, role)
	})
}
