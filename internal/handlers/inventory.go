package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/inventory"
	"storefront/internal/models"
)

type updateStockRequest struct {
	Stock *int `json:"stock"`
	Add   *int `json:"add"`
}

// UpdateProductStock sets or tops up a product's stock counter through the
// ledger. Routed behind the inventory:write capability.
func UpdateProductStock(db *mongo.Database, ledger *inventory.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/products/:id/stock"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateStockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if (req.Stock == nil) == (req.Add == nil) {
			respondWithError(c, http.StatusBadRequest, route, "exactly one of stock or add is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if req.Stock != nil {
			ok, err := ledger.SetStock(ctx, productID, *req.Stock)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			if !ok {
				respondWithError(c, http.StatusNotFound, route, "product not found")
				return
			}
		} else {
			if err := ledger.AddStock(ctx, productID, *req.Add); err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
		}

		product, err := loadProduct(ctx, db, productID)
		if err != nil {
			log.Println("[INVENTORY] [ERROR] reload after stock update failed:", err)
			c.JSON(http.StatusOK, gin.H{"message": "stock updated"})
			return
		}

		log.Printf("[INVENTORY] [INFO] stock for %s now %d", productID.Hex(), product.Stock)
		c.JSON(http.StatusOK, product)
	}
}

func loadProduct(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (models.Product, error) {
	var raw bson.M
	err := db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		return models.Product{}, err
	}
	return normalizeProductDocument(raw)
}
