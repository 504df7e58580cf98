package aggregate

import (
	"fmt"
	"time"

	"marketplace-backend/internal/domain/event"

	"github.com/google/uuid"
)

// TransactionType represents the kind of wallet transaction
type TransactionType string

const (
	TransactionTypeSale       TransactionType = "SALE"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// TransactionStatus represents the processing status of a wallet transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// WalletTransaction is a single ledger entry on a vendor wallet
type WalletTransaction struct {
	ID        string
	WalletID  string
	Type      TransactionType
	Status    TransactionStatus
	Amount    float64
	Reference string
	CreatedAt time.Time
}

// Wallet is a vendor's ledger of sale credits and withdrawal debits
type Wallet struct {
	id           string
	vendorID     string
	balance      float64
	transactions []WalletTransaction
	version      int
	createdAt    time.Time
	updatedAt    time.Time

	uncommittedEvents []event.DomainEvent
}

// NewWallet opens a wallet for an approved vendor
func NewWallet(vendorID string) (*Wallet, error) {
	if vendorID == "" {
		return nil, fmt.Errorf("vendor ID cannot be empty")
	}

	now := time.Now()
	wallet := &Wallet{
		id:        uuid.New().String(),
		vendorID:  vendorID,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}

	wallet.raiseEvent(&event.WalletOpened{
		WalletID:  wallet.id,
		VendorID:  vendorID,
		Timestamp: now,
	})

	return wallet, nil
}

// ReconstructWallet rebuilds a wallet from persisted state
func ReconstructWallet(id, vendorID string, balance float64, transactions []WalletTransaction, version int, createdAt, updatedAt time.Time) *Wallet {
	return &Wallet{
		id:           id,
		vendorID:     vendorID,
		balance:      balance,
		transactions: transactions,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// CreditSale records a completed-sale credit against the wallet
func (w *Wallet) CreditSale(orderID string, amount float64) (*WalletTransaction, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order ID cannot be empty")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("sale amount must be positive")
	}

	now := time.Now()
	tx := WalletTransaction{
		ID:        uuid.New().String(),
		WalletID:  w.id,
		Type:      TransactionTypeSale,
		Status:    TransactionStatusCompleted,
		Amount:    amount,
		Reference: orderID,
		CreatedAt: now,
	}

	w.balance += amount
	w.transactions = append(w.transactions, tx)
	w.version++
	w.updatedAt = now

	w.raiseEvent(&event.SaleCredited{
		WalletID:      w.id,
		TransactionID: tx.ID,
		OrderID:       orderID,
		Amount:        amount,
		EventVersion:  w.version,
		Timestamp:     now,
	})

	return &tx, nil
}

// RequestWithdrawal reserves balance for a cash-out; it stays pending until
// the transfer settles
func (w *Wallet) RequestWithdrawal(amount float64) (*WalletTransaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("withdrawal amount must be positive")
	}
	if amount > w.balance {
		return nil, fmt.Errorf("insufficient balance: requested %.2f, available %.2f", amount, w.balance)
	}

	now := time.Now()
	tx := WalletTransaction{
		ID:        uuid.New().String(),
		WalletID:  w.id,
		Type:      TransactionTypeWithdrawal,
		Status:    TransactionStatusPending,
		Amount:    amount,
		CreatedAt: now,
	}

	w.balance -= amount
	w.transactions = append(w.transactions, tx)
	w.version++
	w.updatedAt = now

	w.raiseEvent(&event.WithdrawalRequested{
		WalletID:      w.id,
		TransactionID: tx.ID,
		Amount:        amount,
		EventVersion:  w.version,
		Timestamp:     now,
	})

	return &tx, nil
}

// CompleteWithdrawal settles a pending withdrawal after the transfer succeeds
func (w *Wallet) CompleteWithdrawal(transactionID, transferRef string) error {
	tx := w.findTransaction(transactionID)
	if tx == nil {
		return fmt.Errorf("transaction not found: %s", transactionID)
	}
	if tx.Type != TransactionTypeWithdrawal {
		return fmt.Errorf("transaction %s is not a withdrawal", transactionID)
	}
	if tx.Status != TransactionStatusPending {
		return fmt.Errorf("only pending withdrawals can be completed (current status: %s)", tx.Status)
	}

	now := time.Now()
	tx.Status = TransactionStatusCompleted
	tx.Reference = transferRef
	w.version++
	w.updatedAt = now

	w.raiseEvent(&event.WithdrawalCompleted{
		WalletID:      w.id,
		TransactionID: transactionID,
		Amount:        tx.Amount,
		TransferRef:   transferRef,
		EventVersion:  w.version,
		Timestamp:     now,
	})

	return nil
}

// FailWithdrawal returns the reserved amount after a transfer failure
func (w *Wallet) FailWithdrawal(transactionID, reason string) error {
	tx := w.findTransaction(transactionID)
	if tx == nil {
		return fmt.Errorf("transaction not found: %s", transactionID)
	}
	if tx.Type != TransactionTypeWithdrawal {
		return fmt.Errorf("transaction %s is not a withdrawal", transactionID)
	}
	if tx.Status != TransactionStatusPending {
		return fmt.Errorf("only pending withdrawals can be failed (current status: %s)", tx.Status)
	}

	now := time.Now()
	tx.Status = TransactionStatusFailed
	w.balance += tx.Amount
	w.version++
	w.updatedAt = now

	w.raiseEvent(&event.WithdrawalFailed{
		WalletID:      w.id,
		TransactionID: transactionID,
		Amount:        tx.Amount,
		Reason:        reason,
		EventVersion:  w.version,
		Timestamp:     now,
	})

	return nil
}

func (w *Wallet) findTransaction(id string) *WalletTransaction {
	for i := range w.transactions {
		if w.transactions[i].ID == id {
			return &w.transactions[i]
		}
	}
	return nil
}

func (w *Wallet) raiseEvent(ev event.DomainEvent) {
	w.uncommittedEvents = append(w.uncommittedEvents, ev)
}

func (w *Wallet) GetUncommittedEvents() []event.DomainEvent {
	return w.uncommittedEvents
}

func (w *Wallet) MarkEventsAsCommitted() {
	w.uncommittedEvents = nil
}

// Getters
func (w *Wallet) ID() string                        { return w.id }
func (w *Wallet) VendorID() string                  { return w.vendorID }
func (w *Wallet) Balance() float64                  { return w.balance }
func (w *Wallet) Transactions() []WalletTransaction { return w.transactions }
func (w *Wallet) Version() int                      { return w.version }
func (w *Wallet) CreatedAt() time.Time              { return w.createdAt }
func (w *Wallet) UpdatedAt() time.Time              { return w.updatedAt }
