package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"storefront/internal/inventory"
	"storefront/internal/orders"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func ensureDBConnection(ctx context.Context, db *mongo.Database) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(checkCtx, readpref.Primary())
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondOrderError maps the order-core error taxonomy to HTTP responses.
// Callers get one machine-readable kind plus a human message; internals are
// logged, never exposed.
func respondOrderError(c *gin.Context, route string, err error) {
	var verr orders.ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"kind":  "validation",
			"error": verr.Message,
		})
		return
	}

	var oos inventory.OutOfStockError
	if errors.As(err, &oos) {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"kind":      "out_of_stock",
			"error":     "insufficient stock",
			"productId": oos.ProductID.Hex(),
			"available": oos.Available,
			"requested": oos.Requested,
		})
		return
	}

	var pnf orders.ProductNotFoundError
	if errors.As(err, &pnf) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"kind":      "not_found",
			"error":     "product not found",
			"productId": pnf.ProductID.Hex(),
		})
		return
	}

	var nf orders.NotFoundError
	if errors.As(err, &nf) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"kind":  "not_found",
			"error": nf.Error(),
		})
		return
	}

	if errors.Is(err, orders.ErrUnresolvedDelivery) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"kind":  "unresolved_delivery",
			"error": "delivery fee must be resolved before checkout",
		})
		return
	}

	log.Printf("[%s] internal error: %v", route, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"kind":  "internal",
		"error": "internal server error",
	})
}
