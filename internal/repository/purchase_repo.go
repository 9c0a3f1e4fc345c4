package repository

import (
	"context"

	"coursehub/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PurchaseRepository interface {
	Create(ctx context.Context, p *model.Purchase) error
	ListByUser(ctx context.Context, userID string) ([]model.Purchase, error)
	Exists(ctx context.Context, userID, courseID string) (bool, error)
}

type purchaseRepo struct {
	store *Store
}

func NewPurchaseRepo(store *Store) PurchaseRepository {
	return &purchaseRepo{store: store}
}

func (r *purchaseRepo) Create(ctx context.Context, p *model.Purchase) error {
	id, err := insertOne(ctx, r.store.col(ColPurchases), p)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// ListByUser returns purchases in insertion order. ObjectIDs are
// monotonic, so sorting by _id preserves purchase order.
func (r *purchaseRepo) ListByUser(ctx context.Context, userID string) ([]model.Purchase, error) {
	oid, err := parseID(userID)
	if err != nil {
		return []model.Purchase{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findMany[model.Purchase](ctx, r.store.col(ColPurchases), bson.D{{Key: "userId", Value: oid}}, opts)
}

func (r *purchaseRepo) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	uid, err := parseID(userID)
	if err != nil {
		return false, nil
	}
	cid, err := parseID(courseID)
	if err != nil {
		return false, nil
	}
	p, err := findOne[model.Purchase](ctx, r.store.col(ColPurchases), bson.D{
		{Key: "userId", Value: uid},
		{Key: "courseId", Value: cid},
	})
	if err != nil {
		return false, err
	}
	return p != nil, nil
}
