package repository

import (
	"context"

	"coursehub/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type CreatorRepository interface {
	Create(ctx context.Context, c *model.Creator) error
	GetByEmail(ctx context.Context, email string) (*model.Creator, error)
	GetByID(ctx context.Context, id string) (*model.Creator, error)
}

type creatorRepo struct {
	store *Store
}

func NewCreatorRepo(store *Store) CreatorRepository {
	return &creatorRepo{store: store}
}

func (r *creatorRepo) Create(ctx context.Context, c *model.Creator) error {
	id, err := insertOne(ctx, r.store.col(ColCreators), c)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *creatorRepo) GetByEmail(ctx context.Context, email string) (*model.Creator, error) {
	return findOne[model.Creator](ctx, r.store.col(ColCreators), bson.D{{Key: "email", Value: email}})
}

func (r *creatorRepo) GetByID(ctx context.Context, id string) (*model.Creator, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, nil
	}
	return findOne[model.Creator](ctx, r.store.col(ColCreators), bson.D{{Key: "_id", Value: oid}})
}
