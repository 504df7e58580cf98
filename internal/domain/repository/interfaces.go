package repository

import (
	"context"

	"marketplace-backend/internal/domain/aggregate"
)

// UserRepository defines persistence operations for the user aggregate
type UserRepository interface {
	Save(ctx context.Context, user *aggregate.User) error
	GetByID(ctx context.Context, id string) (*aggregate.User, error)
	GetByEmail(ctx context.Context, email string) (*aggregate.User, error)
}

// VendorRepository defines persistence operations for the vendor aggregate
type VendorRepository interface {
	Save(ctx context.Context, vendor *aggregate.Vendor) error
	GetByID(ctx context.Context, id string) (*aggregate.Vendor, error)
	GetByOwnerID(ctx context.Context, ownerID string) (*aggregate.Vendor, error)
}

// ProductRepository defines persistence operations for the product aggregate
type ProductRepository interface {
	Save(ctx context.Context, product *aggregate.Product) error
	GetByID(ctx context.Context, id string) (*aggregate.Product, error)
}

// OrderRepository defines persistence operations for the order aggregate
type OrderRepository interface {
	Save(ctx context.Context, order *aggregate.Order) error
	GetByID(ctx context.Context, id string) (*aggregate.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*aggregate.Order, error)
}

// WalletRepository defines persistence operations for the wallet aggregate
type WalletRepository interface {
	Save(ctx context.Context, wallet *aggregate.Wallet) error
	GetByID(ctx context.Context, id string) (*aggregate.Wallet, error)
	GetByVendorID(ctx context.Context, vendorID string) (*aggregate.Wallet, error)
}
