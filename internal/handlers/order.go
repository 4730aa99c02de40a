package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/delivery"
	"storefront/internal/models"
	"storefront/internal/orders"
)

/* =========================
   REQUEST DTOs
========================= */

type createOrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type shippingAddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type coordinatesRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type createOrderRequest struct {
	Items           []createOrderItemRequest `json:"items" binding:"required"`
	ShippingAddress shippingAddressRequest   `json:"shippingAddress"`
	Coordinates     *coordinatesRequest      `json:"coordinates"`
	PaymentMethod   string                   `json:"paymentMethod" binding:"required"`
	DeliveryType    string                   `json:"deliveryType" binding:"required"`
	// DeliveryFee is what the checkout UI displayed. It is accepted for
	// compatibility but never trusted; the fee is recomputed server-side.
	DeliveryFee   float64 `json:"deliveryFee"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	Phone         string  `json:"phone" binding:"required"`
	Notes         string  `json:"notes"`
}

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(db *mongo.Database, svc *orders.Service, deliveryCfg delivery.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		items := make([]orders.ItemInput, 0, len(req.Items))
		for _, item := range req.Items {
			productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(item.ProductID))
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid productId")
				return
			}
			items = append(items, orders.ItemInput{ProductID: productID, Quantity: item.Quantity})
		}

		var coords *delivery.Point
		if req.Coordinates != nil {
			coords = &delivery.Point{Lat: req.Coordinates.Lat, Lng: req.Coordinates.Lng}
		}
		quote, err := deliveryCfg.Quote(delivery.Request{
			Type:     delivery.Type(req.DeliveryType),
			CityName: strings.TrimSpace(req.ShippingAddress.City),
			Coords:   coords,
		})
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		userID := optionalUserID(c)
		customer := models.OrderCustomer{
			Name:  strings.TrimSpace(req.CustomerName),
			Email: strings.TrimSpace(req.CustomerEmail),
			Phone: strings.TrimSpace(req.Phone),
		}
		if userID != nil {
			fillCustomerFromAccount(ctx, db, *userID, &customer)
		}

		order, err := svc.Create(ctx, orders.CreateInput{
			UserID:   userID,
			Customer: customer,
			Items:    items,
			Shipping: models.ShippingAddress{
				Street:     strings.TrimSpace(req.ShippingAddress.Street),
				City:       strings.TrimSpace(req.ShippingAddress.City),
				Region:     strings.TrimSpace(req.ShippingAddress.Region),
				PostalCode: strings.TrimSpace(req.ShippingAddress.PostalCode),
				Country:    strings.TrimSpace(req.ShippingAddress.Country),
			},
			PaymentMethod: models.PaymentMethod(req.PaymentMethod),
			DeliveryType:  models.DeliveryType(req.DeliveryType),
			Quote:         quote,
			Notes:         strings.TrimSpace(req.Notes),
		})
		if err != nil {
			respondOrderError(c, route, err)
			return
		}

		if order.UserID != nil {
			log.Println("[ORDER] [INFO] order created for user:", order.UserID.Hex())
		} else {
			log.Println("[ORDER] [INFO] guest order created")
		}

		c.JSON(http.StatusCreated, gin.H{
			"orderNumber":   order.OrderNumber,
			"status":        order.Status,
			"paymentStatus": order.PaymentStatus,
			"totalAmount":   order.TotalAmount,
			"deliveryFee":   order.DeliveryFee,
			"items":         order.Items,
			"createdAt":     order.CreatedAt,
		})
	}
}

// optionalUserID reads the userId set by the OptionalUser middleware.
func optionalUserID(c *gin.Context) *primitive.ObjectID {
	value, ok := c.Get("userId")
	if !ok {
		return nil
	}
	userID, ok := value.(primitive.ObjectID)
	if !ok {
		return nil
	}
	return &userID
}

// fillCustomerFromAccount backfills the customer snapshot from the account
// document. Request-supplied values win; the account is only a fallback.
func fillCustomerFromAccount(ctx context.Context, db *mongo.Database, userID primitive.ObjectID, customer *models.OrderCustomer) {
	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		log.Println("[ORDER] [ERROR] account lookup failed:", err)
		return
	}
	if customer.Name == "" {
		customer.Name = user.Name
	}
	if customer.Email == "" {
		customer.Email = user.Email
	}
	if customer.Phone == "" {
		customer.Phone = user.Phone
	}
}

/* =========================
   READ ORDERS
========================= */

func GetMyOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"

		userID := optionalUserID(c)
		if userID == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, err := svc.ListForUser(ctx, *userID)
		if err != nil {
			respondOrderError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func GetOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:number"

		userID := optionalUserID(c)
		if userID == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := svc.GetByNumber(ctx, strings.TrimSpace(c.Param("number")))
		if err != nil {
			respondOrderError(c, route, err)
			return
		}

		// Owners only; guest orders have no owner to show them to.
		if order.UserID == nil || *order.UserID != *userID {
			c.JSON(http.StatusNotFound, gin.H{"kind": "not_found", "error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
