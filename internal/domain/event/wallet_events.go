package event

import "time"

// WalletOpened event
type WalletOpened struct {
	WalletID  string    `json:"wallet_id"`
	VendorID  string    `json:"vendor_id"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *WalletOpened) EventType() string     { return "WalletOpened" }
func (e *WalletOpened) AggregateID() string   { return e.WalletID }
func (e *WalletOpened) OccurredAt() time.Time { return e.Timestamp }
func (e *WalletOpened) Version() int          { return 1 }

// SaleCredited event
type SaleCredited struct {
	WalletID      string    `json:"wallet_id"`
	TransactionID string    `json:"transaction_id"`
	OrderID       string    `json:"order_id"`
	Amount        float64   `json:"amount"`
	EventVersion  int       `json:"version"`
	Timestamp     time.Time `json:"timestamp"`
}

func (e *SaleCredited) EventType() string     { return "SaleCredited" }
func (e *SaleCredited) AggregateID() string   { return e.WalletID }
func (e *SaleCredited) OccurredAt() time.Time { return e.Timestamp }
func (e *SaleCredited) Version() int          { return e.EventVersion }

// WithdrawalRequested event
type WithdrawalRequested struct {
	WalletID      string    `json:"wallet_id"`
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	EventVersion  int       `json:"version"`
	Timestamp     time.Time `json:"timestamp"`
}

func (e *WithdrawalRequested) EventType() string     { return "WithdrawalRequested" }
func (e *WithdrawalRequested) AggregateID() string   { return e.WalletID }
func (e *WithdrawalRequested) OccurredAt() time.Time { return e.Timestamp }
func (e *WithdrawalRequested) Version() int          { return e.EventVersion }

// WithdrawalCompleted event
type WithdrawalCompleted struct {
	WalletID      string    `json:"wallet_id"`
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	TransferRef   string    `json:"transfer_ref"`
	EventVersion  int       `json:"version"`
	Timestamp     time.Time `json:"timestamp"`
}

func (e *WithdrawalCompleted) EventType() string     { return "WithdrawalCompleted" }
func (e *WithdrawalCompleted) AggregateID() string   { return e.WalletID }
func (e *WithdrawalCompleted) OccurredAt() time.Time { return e.Timestamp }
func (e *WithdrawalCompleted) Version() int          { return e.EventVersion }

// WithdrawalFailed event
type WithdrawalFailed struct {
	WalletID      string    `json:"wallet_id"`
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	Reason        string    `json:"reason"`
	EventVersion  int       `json:"version"`
	Timestamp     time.Time `json:"timestamp"`
}

func (e *WithdrawalFailed) EventType() string     { return "WithdrawalFailed" }
func (e *WithdrawalFailed) AggregateID() string   { return e.WalletID }
func (e *WithdrawalFailed) OccurredAt() time.Time { return e.Timestamp }
func (e *WithdrawalFailed) Version() int          { return e.EventVersion }
