package orders

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUnresolvedDelivery means checkout was attempted before a delivery fee
// was resolved. A fault of the caller, not of the engine.
var ErrUnresolvedDelivery = errors.New("delivery fee not resolved")

// ErrDuplicateNumber is returned by the store when the generated order number
// collides with an existing one. The service retries generation.
var ErrDuplicateNumber = errors.New("order number already exists")

type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

type ProductNotFoundError struct {
	ProductID primitive.ObjectID
}

func (e ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID.Hex())
}
