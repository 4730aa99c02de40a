package inventory

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore implements StockStore on the products collection. The filter on
// Decrement carries the stock guard, so the update is atomic on the server:
// either a document with enough stock matched and was decremented, or nothing
// changed.
type MongoStore struct {
	products *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{products: db.Collection("products")}
}

func (s *MongoStore) Decrement(ctx context.Context, productID primitive.ObjectID, qty int) (bool, error) {
	filter := bson.M{
		"_id":       productID,
		"isDeleted": bson.M{"$ne": true},
		"isActive":  true,
		"stock":     bson.M{"$gte": qty},
	}
	update := bson.M{"$inc": bson.M{"stock": -qty}}

	res, err := s.products.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *MongoStore) Increment(ctx context.Context, productID primitive.ObjectID, qty int) error {
	_, err := s.products.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$inc": bson.M{"stock": qty}},
	)
	return err
}

func (s *MongoStore) SetStock(ctx context.Context, productID primitive.ObjectID, qty int) (bool, error) {
	res, err := s.products.UpdateOne(ctx,
		bson.M{"_id": productID, "isDeleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"stock": qty}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
