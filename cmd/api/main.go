package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"marketplace-backend/internal/application/command"
	"marketplace-backend/internal/application/query"
	"marketplace-backend/internal/application/services"
	"marketplace-backend/internal/domain/event"
	"marketplace-backend/internal/infrastructure/bus"
	"marketplace-backend/internal/infrastructure/cloudinary"
	httpapi "marketplace-backend/internal/infrastructure/http"
	"marketplace-backend/internal/infrastructure/mongo"
	"marketplace-backend/internal/infrastructure/payos"
	"marketplace-backend/internal/infrastructure/projection"
	jwtutil "marketplace-backend/pkg/jwt"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded")
	}

	log.Println("Starting Marketplace API...")

	mongoConfig := &mongo.MongoConfig{
		URI:      getEnv("MONGO_URI", ""),
		Database: getEnv("MONGO_DATABASE", "marketplace"),
		Timeout:  30 * time.Second,
	}

	mongoClient, err := mongo.NewMongoClient(mongoConfig)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Close(); err != nil {
			log.Printf("Error closing MongoDB connection: %v", err)
		}
	}()

	if err := mongoClient.Ping(); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	database := mongoClient.GetDatabase()
	eventBus := bus.NewInMemoryEventBus()
	uowFactory := mongo.NewMongoUnitOfWorkFactory(mongoClient.GetClient(), database)

	// Read models
	userProjection := projection.NewMongoUserProjection(database)
	vendorProjection := projection.NewMongoVendorProjection(database)
	productProjection := projection.NewMongoProductProjection(database)
	orderProjection := projection.NewMongoOrderProjection(database)
	walletProjection := projection.NewMongoWalletProjection(database)

	subscribeProjections(eventBus, userProjection, vendorProjection, productProjection, orderProjection, walletProjection)

	jwtTTL := time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour
	jwtManager, err := jwtutil.NewJWTManager(getEnv("JWT_SECRET", ""), jwtTTL)
	if err != nil {
		log.Fatalf("Failed to initialize JWT manager: %v", err)
	}

	checkoutService, err := payos.NewCheckoutService(&payos.Config{
		ClientID:    getEnv("PAYOS_CLIENT_ID", ""),
		APIKey:      getEnv("PAYOS_API_KEY", ""),
		ChecksumKey: getEnv("PAYOS_CHECKSUM_KEY", ""),
		PartnerCode: getEnv("PAYOS_PARTNER_CODE", ""),
		ReturnURL:   getEnv("PAYOS_RETURN_URL", ""),
		CancelURL:   getEnv("PAYOS_CANCEL_URL", ""),
	})
	if err != nil {
		log.Fatalf("Failed to initialize PayOS checkout: %v", err)
	}

	transferService := payos.NewTransferService(&payos.TransferConfig{
		ClientID:    getEnv("PAYOS_CLIENT_ID", ""),
		APIKey:      getEnv("PAYOS_API_KEY", ""),
		ChecksumKey: getEnv("PAYOS_CHECKSUM_KEY", ""),
	})

	cloudinaryConfig, err := cloudinary.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to load Cloudinary config: %v", err)
	}
	imageService, err := cloudinary.NewService(cloudinaryConfig)
	if err != nil {
		log.Fatalf("Failed to initialize Cloudinary: %v", err)
	}

	// Repositories used outside the unit of work (login, webhook lookups)
	userRepo := mongo.NewMongoUserRepository(database)
	orderRepo := mongo.NewMongoOrderRepository(database)

	// Services
	userService := services.NewUserService(
		command.NewRegisterUserWithUoWHandler(uowFactory, eventBus),
		command.NewLoginUserHandler(userRepo, jwtManager),
		command.NewUpdateUserProfileWithUoWHandler(uowFactory, eventBus),
		command.NewChangeUserPasswordWithUoWHandler(uowFactory, eventBus),
		command.NewPromoteUserWithUoWHandler(uowFactory, eventBus),
		command.NewDeleteUserWithUoWHandler(uowFactory, eventBus),
		query.NewGetUserHandler(userProjection),
		query.NewListUsersHandler(userProjection),
	)

	vendorService := services.NewVendorService(
		command.NewRegisterVendorWithUoWHandler(uowFactory, eventBus),
		command.NewApproveVendorWithUoWHandler(uowFactory, eventBus),
		command.NewRejectVendorWithUoWHandler(uowFactory, eventBus),
		command.NewSuspendVendorWithUoWHandler(uowFactory, eventBus),
		command.NewUpdateVendorProfileWithUoWHandler(uowFactory, eventBus),
		query.NewGetVendorHandler(vendorProjection),
		query.NewListVendorsHandler(vendorProjection),
	)

	productService := services.NewProductService(
		command.NewSubmitProductWithUoWHandler(uowFactory, eventBus),
		command.NewApproveProductWithUoWHandler(uowFactory, eventBus),
		command.NewRejectProductWithUoWHandler(uowFactory, eventBus),
		command.NewUpdateProductWithUoWHandler(uowFactory, eventBus),
		command.NewSetProductImageWithUoWHandler(uowFactory, eventBus),
		query.NewGetProductHandler(productProjection),
		query.NewListProductsHandler(productProjection),
		query.NewListVendorProductsHandler(productProjection),
		query.NewListPendingProductsHandler(productProjection),
	)

	orderService := services.NewOrderService(
		command.NewPlaceOrderWithUoWHandler(uowFactory, eventBus),
		command.NewCompleteOrderWithUoWHandler(uowFactory, eventBus),
		command.NewFailOrderWithUoWHandler(uowFactory, eventBus),
		command.NewCancelOrderWithUoWHandler(uowFactory, eventBus),
		query.NewGetOrderHandler(orderProjection),
		query.NewListBuyerOrdersHandler(orderProjection),
		query.NewListOrdersHandler(orderProjection),
	)

	walletService := services.NewWalletService(
		command.NewRequestWithdrawalWithUoWHandler(uowFactory, eventBus),
		command.NewCompleteWithdrawalWithUoWHandler(uowFactory, eventBus),
		command.NewFailWithdrawalWithUoWHandler(uowFactory, eventBus),
		query.NewGetVendorWalletHandler(walletProjection),
		query.NewListWalletTransactionsHandler(walletProjection),
	)

	dashboardStore := mongo.NewMongoDashboardStore(database)
	dashboardHandler := query.NewAdminDashboardHandler(dashboardStore)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus:", err)
	}

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Auth:        httpapi.NewAuthController(userService, jwtManager),
		Users:       httpapi.NewUserController(userService),
		Vendors:     httpapi.NewVendorController(vendorService),
		Products:    httpapi.NewProductController(productService, imageService),
		Orders:      httpapi.NewOrderController(orderService),
		Payments:    httpapi.NewPaymentController(checkoutService, orderService, orderRepo),
		Wallets:     httpapi.NewWalletController(walletService, transferService),
		Dashboard:   httpapi.NewAdminDashboardController(dashboardHandler),
		JWTManager:  jwtManager,
		RateLimit:   getEnvInt("RATE_LIMIT", 100),
		RateWindow:  time.Minute,
		HTTPTimeout: 30 * time.Second,
	})

	port := getEnv("PORT", "8080")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	eventBus.Stop()
	log.Println("Server stopped")
}

// subscribeProjections routes domain events to the read model handlers
func subscribeProjections(
	eventBus *bus.InMemoryEventBus,
	users *projection.MongoUserProjection,
	vendors *projection.MongoVendorProjection,
	products *projection.MongoProductProjection,
	orders *projection.MongoOrderProjection,
	wallets *projection.MongoWalletProjection,
) {
	subscribe := func(eventType string, handler func(ctx context.Context, e event.DomainEvent) error) {
		eventBus.Subscribe(eventType, bus.EventHandlerFunc(handler))
	}

	subscribe("UserCreated", func(ctx context.Context, e event.DomainEvent) error {
		return users.HandleUserCreated(ctx, e.(*event.UserCreated))
	})
	subscribe("UserProfileUpdated", func(ctx context.Context, e event.DomainEvent) error {
		return users.HandleUserProfileUpdated(ctx, e.(*event.UserProfileUpdated))
	})
	subscribe("UserRoleUpdated", func(ctx context.Context, e event.DomainEvent) error {
		return users.HandleUserRoleUpdated(ctx, e.(*event.UserRoleUpdated))
	})
	subscribe("UserDeleted", func(ctx context.Context, e event.DomainEvent) error {
		return users.HandleUserDeleted(ctx, e.(*event.UserDeleted))
	})

	subscribe("VendorRegistered", func(ctx context.Context, e event.DomainEvent) error {
		return vendors.HandleVendorRegistered(ctx, e.(*event.VendorRegistered))
	})
	subscribe("VendorApproved", func(ctx context.Context, e event.DomainEvent) error {
		return vendors.HandleVendorApproved(ctx, e.(*event.VendorApproved))
	})
	subscribe("VendorRejected", func(ctx context.Context, e event.DomainEvent) error {
		return vendors.HandleVendorRejected(ctx, e.(*event.VendorRejected))
	})
	subscribe("VendorSuspended", func(ctx context.Context, e event.DomainEvent) error {
		return vendors.HandleVendorSuspended(ctx, e.(*event.VendorSuspended))
	})
	subscribe("VendorProfileUpdated", func(ctx context.Context, e event.DomainEvent) error {
		return vendors.HandleVendorProfileUpdated(ctx, e.(*event.VendorProfileUpdated))
	})

	subscribe("ProductSubmitted", func(ctx context.Context, e event.DomainEvent) error {
		return products.HandleProductSubmitted(ctx, e.(*event.ProductSubmitted))
	})
	subscribe("ProductApproved", func(ctx context.Context, e event.DomainEvent) error {
		return products.HandleProductApproved(ctx, e.(*event.ProductApproved))
	})
	subscribe("ProductRejected", func(ctx context.Context, e event.DomainEvent) error {
		return products.HandleProductRejected(ctx, e.(*event.ProductRejected))
	})
	subscribe("ProductUpdated", func(ctx context.Context, e event.DomainEvent) error {
		return products.HandleProductUpdated(ctx, e.(*event.ProductUpdated))
	})
	subscribe("ProductImageUpdated", func(ctx context.Context, e event.DomainEvent) error {
		return products.HandleProductImageUpdated(ctx, e.(*event.ProductImageUpdated))
	})

	subscribe("OrderPlaced", func(ctx context.Context, e event.DomainEvent) error {
		return orders.HandleOrderPlaced(ctx, e.(*event.OrderPlaced))
	})
	subscribe("OrderCompleted", func(ctx context.Context, e event.DomainEvent) error {
		return orders.HandleOrderCompleted(ctx, e.(*event.OrderCompleted))
	})
	subscribe("OrderFailed", func(ctx context.Context, e event.DomainEvent) error {
		return orders.HandleOrderFailed(ctx, e.(*event.OrderFailed))
	})
	subscribe("OrderCancelled", func(ctx context.Context, e event.DomainEvent) error {
		return orders.HandleOrderCancelled(ctx, e.(*event.OrderCancelled))
	})

	subscribe("WalletOpened", func(ctx context.Context, e event.DomainEvent) error {
		return wallets.HandleWalletOpened(ctx, e.(*event.WalletOpened))
	})
	subscribe("SaleCredited", func(ctx context.Context, e event.DomainEvent) error {
		return wallets.HandleSaleCredited(ctx, e.(*event.SaleCredited))
	})
	subscribe("WithdrawalRequested", func(ctx context.Context, e event.DomainEvent) error {
		return wallets.HandleWithdrawalRequested(ctx, e.(*event.WithdrawalRequested))
	})
	subscribe("WithdrawalCompleted", func(ctx context.Context, e event.DomainEvent) error {
		return wallets.HandleWithdrawalCompleted(ctx, e.(*event.WithdrawalCompleted))
	})
	subscribe("WithdrawalFailed", func(ctx context.Context, e event.DomainEvent) error {
		return wallets.HandleWithdrawalFailed(ctx, e.(*event.WithdrawalFailed))
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
