package repository

import (
	"context"

	"coursehub/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type userRepo struct {
	store *Store
}

func NewUserRepo(store *Store) UserRepository {
	return &userRepo{store: store}
}

// Create inserts the user and fills in the store-generated id.
// Returns ErrDuplicate when the email is already registered.
func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	id, err := insertOne(ctx, r.store.col(ColUsers), u)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// GetByEmail returns (nil, nil) when no user has the email.
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return findOne[model.User](ctx, r.store.col(ColUsers), bson.D{{Key: "email", Value: email}})
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, nil
	}
	return findOne[model.User](ctx, r.store.col(ColUsers), bson.D{{Key: "_id", Value: oid}})
}
