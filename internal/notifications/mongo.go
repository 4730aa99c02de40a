package notifications

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

// MongoSink writes notification documents to the store the notification API
// reads from.
type MongoSink struct {
	notifications *mongo.Collection
}

func NewMongoSink(db *mongo.Database) *MongoSink {
	return &MongoSink{notifications: db.Collection("notifications")}
}

func (s *MongoSink) Write(ctx context.Context, n *models.Notification) error {
	_, err := s.notifications.InsertOne(ctx, n)
	return err
}
