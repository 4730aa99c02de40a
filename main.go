package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/inventory"
	"storefront/internal/middleware"
	"storefront/internal/notifications"
	"storefront/internal/orders"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("⚠️ product index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}
	if err := database.EnsureNotificationIndexes(db); err != nil {
		log.Printf("⚠️ notification index warning: %v", err)
	}

	ledger := inventory.NewLedger(inventory.NewMongoStore(db))
	dispatcher := notifications.NewDispatcher(notifications.NewMongoSink(db))
	orderService := orders.NewService(
		orders.NewMongoProducts(db),
		orders.NewMongoStore(db),
		ledger,
		dispatcher,
		config.AppEnv.OrderPrefix,
	)

	r := gin.Default()

	r.GET("/delivery/quote", handlers.QuoteDelivery(config.AppEnv.Delivery))

	r.POST("/orders",
		middleware.OptionalUser(config.AppEnv.JWTSecret),
		handlers.CreateOrder(db, orderService, config.AppEnv.Delivery),
	)
	r.GET("/orders",
		middleware.UserAuth(config.AppEnv.JWTSecret),
		handlers.GetMyOrders(orderService),
	)
	r.GET("/orders/:number",
		middleware.UserAuth(config.AppEnv.JWTSecret),
		handlers.GetOrder(orderService),
	)

	admin := r.Group("/admin/api")
	{
		admin.PATCH("/orders/:id/status",
			middleware.RequireCapability(config.AppEnv.JWTSecret, middleware.CapOrdersWrite),
			handlers.UpdateOrderStatus(orderService),
		)
		admin.PUT("/products/:id/stock",
			middleware.RequireCapability(config.AppEnv.JWTSecret, middleware.CapInventoryWrite),
			handlers.UpdateProductStock(db, ledger),
		)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
