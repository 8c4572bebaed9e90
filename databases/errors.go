package databases

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when a filter matched no document
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a write violates a unique index
	ErrDuplicate = errors.New("duplicate key")
)

// translate maps driver errors onto the package sentinels, keeping the
// original message for the logs
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// insertedID pulls the ObjectID out of an insert result
func insertedID(res InsertOneResultHelper) (primitive.ObjectID, error) {
	if res == nil {
		return primitive.NilObjectID, errors.New("missing insert result")
	}
	id, ok := res.Decode().(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.Decode())
	}
	return id, nil
}

// matched turns an update result into ErrNotFound when nothing matched
func matched(res *mongo.UpdateResult, err error) error {
	if err != nil {
		return err
	}
	if res != nil && res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// deleted turns a zero delete count into ErrNotFound
func deleted(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
