package aggregate

import (
	"testing"

	"marketplace-backend/internal/domain/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWallet(t *testing.T) {
	wallet, err := NewWallet("vendor-1")
	require.NoError(t, err)

	assert.NotEmpty(t, wallet.ID())
	assert.Equal(t, "vendor-1", wallet.VendorID())
	assert.Equal(t, float64(0), wallet.Balance())
	assert.Equal(t, 1, wallet.Version())

	events := wallet.GetUncommittedEvents()
	require.Len(t, events, 1)
	opened, ok := events[0].(*event.WalletOpened)
	require.True(t, ok)
	assert.Equal(t, wallet.ID(), opened.WalletID)

	_, err = NewWallet("")
	assert.Error(t, err)
}

func TestWalletCreditSale(t *testing.T) {
	wallet, err := NewWallet("vendor-1")
	require.NoError(t, err)
	wallet.MarkEventsAsCommitted()

	tx, err := wallet.CreditSale("order-1", 150000)
	require.NoError(t, err)

	assert.Equal(t, float64(150000), wallet.Balance())
	assert.Equal(t, TransactionTypeSale, tx.Type)
	assert.Equal(t, TransactionStatusCompleted, tx.Status)
	assert.Equal(t, "order-1", tx.Reference)
	require.Len(t, wallet.Transactions(), 1)

	events := wallet.GetUncommittedEvents()
	require.Len(t, events, 1)
	credited, ok := events[0].(*event.SaleCredited)
	require.True(t, ok)
	assert.Equal(t, tx.ID, credited.TransactionID)
	assert.Equal(t, float64(150000), credited.Amount)

	_, err = wallet.CreditSale("", 100)
	assert.Error(t, err)
	_, err = wallet.CreditSale("order-2", 0)
	assert.Error(t, err)
}

func TestWalletRequestWithdrawal(t *testing.T) {
	wallet, err := NewWallet("vendor-1")
	require.NoError(t, err)
	_, err = wallet.CreditSale("order-1", 200000)
	require.NoError(t, err)
	wallet.MarkEventsAsCommitted()

	tx, err := wallet.RequestWithdrawal(80000)
	require.NoError(t, err)

	// reserved immediately
	assert.Equal(t, float64(120000), wallet.Balance())
	assert.Equal(t, TransactionTypeWithdrawal, tx.Type)
	assert.Equal(t, TransactionStatusPending, tx.Status)

	events := wallet.GetUncommittedEvents()
	require.Len(t, events, 1)
	requested, ok := events[0].(*event.WithdrawalRequested)
	require.True(t, ok)
	assert.Equal(t, float64(80000), requested.Amount)
}

func TestWalletRequestWithdrawalInsufficientBalance(t *testing.T) {
	wallet, err := NewWallet("vendor-1")
	require.NoError(t, err)
	_, err = wallet.CreditSale("order-1", 50000)
	require.NoError(t, err)

	_, err = wallet.RequestWithdrawal(60000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient balance")
	assert.Equal(t, float64(50000), wallet.Balance())

	_, err = wallet.RequestWithdrawal(-1)
	assert.Error(t, err)
}

func TestWalletCompleteWithdrawal(t *testing.T) {
	wallet, err := NewWallet("vendor-1")
	require.NoError(t, err)
	_, err = wallet.CreditSale("order-1", 200000)
	require.NoError(t, err)
	tx, err := wallet.RequestWithdrawal(80000)
	require.NoError(t, err)
	wallet.MarkEventsAsCommitted()

	require.NoError(t, wallet.CompleteWithdrawal(tx.ID, "payout-ref-42"))

	// balance stays debited, the entry settles
	assert.Equal(t, float64(120000), wallet.Balance())
	settled := wallet.Transactions()[1]
	assert.Equal(t, TransactionStatusCompleted, settled.Status)
	assert.Equal(t, "payout-ref-42", settled.Reference)

	events := wallet.GetUncommittedEvents()
	require.Len(t, events, 1)
	completed, ok := events[0].(*event.WithdrawalCompleted)
	require.True(t, ok)
	assert.Equal(t, "payout-ref-42", completed.TransferRef)

	// cannot settle twice
	assert.Error(t, wallet.CompleteWithdrawal(tx.ID, "payout-ref-43"))
}

func TestWalletFailWithdrawal(t *testing.T) {
	wallet, err := NewWallet("vendor-1")
	require.NoError(t, err)
	_, err = wallet.CreditSale("order-1", 200000)
	require.NoError(t, err)
	tx, err := wallet.RequestWithdrawal(80000)
	require.NoError(t, err)
	wallet.MarkEventsAsCommitted()

	require.NoError(t, wallet.FailWithdrawal(tx.ID, "bank transfer rejected"))

	// reserved amount is returned
	assert.Equal(t, float64(200000), wallet.Balance())
	assert.Equal(t, TransactionStatusFailed, wallet.Transactions()[1].Status)

	events := wallet.GetUncommittedEvents()
	require.Len(t, events, 1)
	failed, ok := events[0].(*event.WithdrawalFailed)
	require.True(t, ok)
	assert.Equal(t, "bank transfer rejected", failed.Reason)

	assert.Error(t, wallet.FailWithdrawal(tx.ID, "again"))
}

func TestWalletWithdrawalTransactionChecks(t *testing.T) {
	wallet, err := NewWallet("vendor-1")
	require.NoError(t, err)
	saleTx, err := wallet.CreditSale("order-1", 100000)
	require.NoError(t, err)

	assert.Error(t, wallet.CompleteWithdrawal("missing-tx", "ref"))
	assert.Error(t, wallet.FailWithdrawal("missing-tx", "reason"))

	// sale entries are not withdrawals
	assert.Error(t, wallet.CompleteWithdrawal(saleTx.ID, "ref"))
	assert.Error(t, wallet.FailWithdrawal(saleTx.ID, "reason"))
}
