package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
	"storefront/internal/orders"
)

type updateOrderStatusRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
}

// UpdateOrderStatus applies an admin transition to an order's status and/or
// payment status. Routed behind the orders:write capability.
func UpdateOrderStatus(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/orders/:id/status"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		var input orders.UpdateStatusInput
		if req.Status != nil {
			status := models.OrderStatus(*req.Status)
			input.Status = &status
		}
		if req.PaymentStatus != nil {
			payment := models.PaymentStatus(*req.PaymentStatus)
			input.PaymentStatus = &payment
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := svc.UpdateStatus(ctx, orderID, input)
		if err != nil {
			respondOrderError(c, route, err)
			return
		}

		log.Printf("[ORDER] [INFO] order %s updated to status=%s payment=%s",
			order.OrderNumber, order.Status, order.PaymentStatus)
		c.JSON(http.StatusOK, order)
	}
}
