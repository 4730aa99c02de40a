package orders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

// MongoProducts implements ProductSource on the products collection.
type MongoProducts struct {
	products *mongo.Collection
}

func NewMongoProducts(db *mongo.Database) *MongoProducts {
	return &MongoProducts{products: db.Collection("products")}
}

func (m *MongoProducts) Product(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := m.products.FindOne(ctx, bson.M{
		"_id":       id,
		"isDeleted": bson.M{"$ne": true},
		"isActive":  true,
	}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ProductNotFoundError{ProductID: id}
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// MongoStore implements Store on the orders collection. The unique index on
// orderNumber (created at startup) turns a suffix collision into a duplicate
// key error, surfaced as ErrDuplicateNumber.
type MongoStore struct {
	orders *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{orders: db.Collection("orders")}
}

func (m *MongoStore) Insert(ctx context.Context, order *models.Order) error {
	res, err := m.orders.InsertOne(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateNumber
	}
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

func (m *MongoStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := m.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, NotFoundError{Kind: "order", ID: id.Hex()}
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (m *MongoStore) ByNumber(ctx context.Context, number string) (*models.Order, error) {
	var order models.Order
	err := m.orders.FindOne(ctx, bson.M{"orderNumber": number}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, NotFoundError{Kind: "order", ID: number}
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (m *MongoStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := m.orders.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (m *MongoStore) SetStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, payment models.PaymentStatus, updatedAt time.Time) error {
	res, err := m.orders.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"status":        status,
			"paymentStatus": payment,
			"updatedAt":     updatedAt,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return NotFoundError{Kind: "order", ID: id.Hex()}
	}
	return nil
}
