package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/tograil/Mongocore/internal/errors"
)

type counter struct {
	ID    string `bson:"_id"`
	Value int    `bson:"value"`
}

// SequenceAllocator issues ids from one counter document per entity type.
// The increment and the read of the new value are a single findAndModify
// round-trip, so concurrent callers never see the same id.
type SequenceAllocator struct {
	counters Collection
}

func NewSequenceAllocator(counters Collection) *SequenceAllocator {
	return &SequenceAllocator{counters: counters}
}

// Next returns the value after increment. An unseen entity type starts at
// zero and therefore yields 1.
func (a *SequenceAllocator) Next(ctx context.Context, entityType string) (int, error) {
	res := a.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": entityType},
		bson.M{"$inc": bson.M{"value": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	)

	var c counter
	if err := res.Decode(&c); err != nil {
		return 0, fmt.Errorf("%w: next %q id: %v", apperrors.ErrStorageUnavailable, entityType, err)
	}

	return c.Value, nil
}
