package http

import (
	"net/http"
	"time"

	jwtutil "marketplace-backend/pkg/jwt"
	"marketplace-backend/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

// RouterConfig groups the controllers mounted on the API router
type RouterConfig struct {
	Auth        *AuthController
	Users       *UserController
	Vendors     *VendorController
	Products    *ProductController
	Orders      *OrderController
	Payments    *PaymentController
	Wallets     *WalletController
	Dashboard   *AdminDashboardController
	JWTManager  *jwtutil.JWTManager
	RateLimit   int
	RateWindow  time.Duration
	HTTPTimeout time.Duration
}

// NewRouter builds the chi router with the full middleware chain
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.ErrorHandler)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		r.Use(limiter.Middleware)
	}
	if cfg.HTTPTimeout > 0 {
		r.Use(middleware.TimeoutMiddleware(cfg.HTTPTimeout))
	}

	requireAuth := middleware.JWTAuthMiddleware(cfg.JWTManager)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","service":"marketplace-backend"}`))
	})

	// Public routes
	r.Post("/auth/register", cfg.Auth.Register)
	r.Post("/auth/login", cfg.Auth.Login)
	r.Get("/products", cfg.Products.ListProducts)
	r.Get("/products/{id}", cfg.Products.GetProduct)
	r.Get("/vendors", cfg.Vendors.ListVendors)
	r.Get("/vendors/{id}", cfg.Vendors.GetVendor)
	r.Get("/vendors/{id}/products", cfg.Products.ListVendorProducts)
	r.Post("/payments/webhook", cfg.Payments.HandleWebhook)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/auth/me", cfg.Auth.GetCurrentUser)
		r.Post("/auth/change-password", cfg.Auth.ChangePassword)
		r.Put("/users/me", cfg.Users.UpdateProfile)
		r.Get("/users/{id}", cfg.Users.GetUser)

		r.Post("/vendors", cfg.Vendors.RegisterVendor)

		r.Post("/orders", cfg.Orders.PlaceOrder)
		r.Get("/orders", cfg.Orders.ListMyOrders)
		r.Get("/orders/{id}", cfg.Orders.GetOrder)
		r.Post("/orders/{id}/cancel", cfg.Orders.CancelOrder)
		r.Post("/orders/{id}/checkout", cfg.Payments.CreateCheckout)
		r.Get("/orders/{id}/checkout", cfg.Payments.GetCheckoutStatus)
	})

	// Vendor routes
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(middleware.RequireVendor)

		r.Post("/products", cfg.Products.SubmitProduct)
		r.Put("/products/{id}", cfg.Products.UpdateProduct)
		r.Post("/products/{id}/image", cfg.Products.UploadProductImage)
		r.Put("/vendors/{id}", cfg.Vendors.UpdateVendor)

		r.Get("/vendors/{id}/wallet", cfg.Wallets.GetVendorWallet)
		r.Get("/wallets/{id}/transactions", cfg.Wallets.ListTransactions)
		r.Post("/wallets/withdrawals", cfg.Wallets.RequestWithdrawal)
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(middleware.RequireAdmin)

		r.Get("/admin/dashboard", cfg.Dashboard.GetDashboard)

		r.Get("/admin/users", cfg.Users.ListUsers)
		r.Put("/admin/users/{id}/role", cfg.Users.PromoteUser)
		r.Delete("/admin/users/{id}", cfg.Users.DeleteUser)

		r.Post("/admin/vendors/{id}/approve", cfg.Vendors.ApproveVendor)
		r.Post("/admin/vendors/{id}/reject", cfg.Vendors.RejectVendor)
		r.Post("/admin/vendors/{id}/suspend", cfg.Vendors.SuspendVendor)

		r.Get("/admin/products/pending", cfg.Products.ListPendingProducts)
		r.Post("/admin/products/{id}/approve", cfg.Products.ApproveProduct)
		r.Post("/admin/products/{id}/reject", cfg.Products.RejectProduct)

		r.Get("/admin/orders", cfg.Orders.ListOrders)
		r.Post("/admin/orders/{id}/complete", cfg.Orders.CompleteOrder)
		r.Post("/admin/orders/{id}/fail", cfg.Orders.FailOrder)

		r.Post("/admin/withdrawals/settle", cfg.Wallets.SettleWithdrawal)
		r.Post("/admin/withdrawals/fail", cfg.Wallets.FailWithdrawal)
	})

	return r
}
