package command

import "marketplace-backend/internal/domain/aggregate"

// User commands

type RegisterUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserProfile struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type ChangeUserPassword struct {
	UserID          string `json:"user_id"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type PromoteUser struct {
	UserID string             `json:"user_id"`
	Role   aggregate.UserRole `json:"role"`
}

type DeleteUser struct {
	UserID string `json:"user_id"`
}

type LoginUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Vendor commands

type RegisterVendor struct {
	OwnerID   string `json:"owner_id"`
	StoreName string `json:"store_name"`
	Email     string `json:"email"`
}

type ApproveVendor struct {
	VendorID   string `json:"vendor_id"`
	ApprovedBy string `json:"approved_by"`
}

type RejectVendor struct {
	VendorID string `json:"vendor_id"`
	Reason   string `json:"reason"`
}

type SuspendVendor struct {
	VendorID string `json:"vendor_id"`
	Reason   string `json:"reason"`
}

type UpdateVendorProfile struct {
	VendorID  string `json:"vendor_id"`
	StoreName string `json:"store_name"`
	Email     string `json:"email"`
}

// Product commands

type SubmitProduct struct {
	VendorID    string  `json:"vendor_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type ApproveProduct struct {
	ProductID  string `json:"product_id"`
	ApprovedBy string `json:"approved_by"`
}

type RejectProduct struct {
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
}

type UpdateProduct struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type SetProductImage struct {
	ProductID string `json:"product_id"`
	ImageURL  string `json:"image_url"`
}

// Order commands

type PlaceOrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type PlaceOrder struct {
	BuyerID string           `json:"buyer_id"`
	Items   []PlaceOrderItem `json:"items"`
}

type CompleteOrder struct {
	OrderID string `json:"order_id"`
}

type FailOrder struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

type CancelOrder struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// Wallet commands

type RequestWithdrawal struct {
	VendorID string  `json:"vendor_id"`
	Amount   float64 `json:"amount"`
}

type CompleteWithdrawal struct {
	WalletID      string `json:"wallet_id"`
	TransactionID string `json:"transaction_id"`
	TransferRef   string `json:"transfer_ref"`
}

type FailWithdrawal struct {
	WalletID      string `json:"wallet_id"`
	TransactionID string `json:"transaction_id"`
	Reason        string `json:"reason"`
}
