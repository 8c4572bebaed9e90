package databases

// go generate: mockery --name TokenDatabase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ne-attend/ne-attend-api/models"
)

const tokenName = "revokedtokens"

// TokenDatabase tracks revoked session tokens
type TokenDatabase interface {
	InsertOne(ctx context.Context, token models.RevokedToken) error
	Exists(ctx context.Context, jti string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type tokenDatabase struct {
	db DatabaseHelper
}

// NewTokenDatabase initializes a new instance of token database with the provided db connection
func NewTokenDatabase(db DatabaseHelper) TokenDatabase {
	return &tokenDatabase{
		db: db,
	}
}

// InsertOne records a revocation; revoking the same token twice is not an error
func (t *tokenDatabase) InsertOne(ctx context.Context, token models.RevokedToken) error {
	_, err := t.db.Collection(tokenName).InsertOne(ctx, token)
	if errors.Is(err, ErrDuplicate) {
		return nil
	}
	return err
}

func (t *tokenDatabase) Exists(ctx context.Context, jti string) (bool, error) {
	n, err := t.db.Collection(tokenName).CountDocuments(ctx, bson.M{"jti": jti})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (t *tokenDatabase) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return t.db.Collection(tokenName).DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lte": now}})
}
