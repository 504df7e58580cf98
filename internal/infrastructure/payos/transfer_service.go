package payos

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// TransferConfig holds the configuration for the PayOS payout API
type TransferConfig struct {
	ClientID    string
	APIKey      string
	ChecksumKey string
	BaseURL     string
}

// TransferService executes bank transfers for approved vendor withdrawals
type TransferService struct {
	config     *TransferConfig
	httpClient *http.Client
}

type createTransferRequest struct {
	ReferenceID     string   `json:"referenceId"`
	Amount          int      `json:"amount"`
	Description     string   `json:"description"`
	ToBin           string   `json:"toBin"`
	ToAccountNumber string   `json:"toAccountNumber"`
	Category        []string `json:"category,omitempty"`
}

type transferResponse struct {
	Code string       `json:"code"`
	Desc string       `json:"desc"`
	Data transferData `json:"data"`
}

type transferData struct {
	ID            string                `json:"id"`
	ReferenceID   string                `json:"referenceId"`
	Transactions  []transferTransaction `json:"transactions"`
	ApprovalState string                `json:"approvalState"`
	CreatedAt     time.Time             `json:"createdAt"`
}

type transferTransaction struct {
	ID                  string    `json:"id"`
	ReferenceID         string    `json:"referenceId"`
	Amount              int       `json:"amount"`
	Reference           string    `json:"reference"`
	TransactionDatetime time.Time `json:"transactionDatetime"`
	ErrorMessage        string    `json:"errorMessage,omitempty"`
	ErrorCode           string    `json:"errorCode,omitempty"`
	State               string    `json:"state"`
}

// TransferInfo is the outcome of a requested bank transfer
type TransferInfo struct {
	WithdrawalID string
	ReferenceID  string
	TransferRef  string
	Amount       int
	Status       string
	ErrorMessage string
	ProcessedAt  time.Time
}

// bankCodes maps supported bank names to PayOS bank identification numbers
var bankCodes = map[string]string{
	"VietinBank":   "970415",
	"Vietcombank":  "970436",
	"BIDV":         "970418",
	"Agribank":     "970405",
	"Techcombank":  "970407",
	"MB Bank":      "970422",
	"ACB":          "970416",
	"VPBank":       "970432",
	"Sacombank":    "970403",
	"VIB":          "970441",
	"HDBank":       "970437",
	"TPBank":       "970423",
	"SHB":          "970443",
	"SeABank":      "970440",
	"OCB":          "970448",
	"MSB":          "970426",
	"Eximbank":     "970431",
	"CAKE":         "546034",
	"Timo":         "963388",
	"ViettelMoney": "971005",
}

// GetBankCode returns the PayOS BIN for a bank name, empty when unsupported
func GetBankCode(bankName string) string {
	return bankCodes[bankName]
}

// NewTransferService creates a new transfer service instance
func NewTransferService(config *TransferConfig) *TransferService {
	if config.BaseURL == "" {
		config.BaseURL = "https://api-merchant.payos.vn"
	}

	return &TransferService{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ProcessWithdrawal transfers an approved withdrawal to the vendor's bank account
func (s *TransferService) ProcessWithdrawal(ctx context.Context, withdrawalID, bankName, accountNumber string, amount int, description string) (*TransferInfo, error) {
	bankCode := GetBankCode(bankName)
	if bankCode == "" {
		return nil, fmt.Errorf("unsupported bank: %s", bankName)
	}

	if amount <= 0 {
		return nil, fmt.Errorf("transfer amount must be greater than 0")
	}
	if amount > 500000000 {
		return nil, fmt.Errorf("transfer amount must not exceed 500,000,000 VND")
	}

	req := createTransferRequest{
		ReferenceID:     withdrawalID,
		Amount:          amount,
		Description:     description,
		ToBin:           bankCode,
		ToAccountNumber: accountNumber,
		Category:        []string{"vendor_withdrawal"},
	}

	resp, err := s.createTransfer(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}

	info := &TransferInfo{
		WithdrawalID: withdrawalID,
		ReferenceID:  resp.Data.ReferenceID,
		Amount:       amount,
	}

	if len(resp.Data.Transactions) > 0 {
		tx := resp.Data.Transactions[0]
		info.TransferRef = tx.Reference
		info.Status = tx.State
		info.ErrorMessage = tx.ErrorMessage
		info.ProcessedAt = tx.TransactionDatetime
	}

	if resp.Data.ApprovalState == "APPROVED" && info.Status == "" {
		info.Status = "PROCESSING"
	} else if info.Status == "" {
		info.Status = "PENDING"
	}

	return info, nil
}

// GetTransferInfo retrieves the state of a previously requested transfer
func (s *TransferService) GetTransferInfo(ctx context.Context, withdrawalID string) (*TransferInfo, error) {
	url := fmt.Sprintf("%s/v1/payouts/%s", s.config.BaseURL, withdrawalID)
	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("x-client-id", s.config.ClientID)
	httpReq.Header.Set("x-api-key", s.config.APIKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PayOS API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var transferResp transferResponse
	if err := json.Unmarshal(respBody, &transferResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	info := &TransferInfo{
		WithdrawalID: withdrawalID,
		ReferenceID:  transferResp.Data.ReferenceID,
	}

	if len(transferResp.Data.Transactions) > 0 {
		tx := transferResp.Data.Transactions[0]
		info.TransferRef = tx.Reference
		info.Amount = tx.Amount
		info.Status = tx.State
		info.ErrorMessage = tx.ErrorMessage
		info.ProcessedAt = tx.TransactionDatetime
	}

	return info, nil
}

func (s *TransferService) createTransfer(ctx context.Context, req *createTransferRequest) (*transferResponse, error) {
	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/payouts", s.config.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-client-id", s.config.ClientID)
	httpReq.Header.Set("x-api-key", s.config.APIKey)
	httpReq.Header.Set("x-idempotency-key", uuid.New().String())
	httpReq.Header.Set("x-signature", s.generateSignature(req))

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PayOS API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var transferResp transferResponse
	if err := json.Unmarshal(respBody, &transferResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if transferResp.Code != "00" {
		return nil, fmt.Errorf("PayOS transfer failed: %s - %s", transferResp.Code, transferResp.Desc)
	}

	return &transferResp, nil
}

// generateSignature creates the HMAC-SHA256 request signature expected by PayOS.
// Fields are serialized in alphabetical key order.
func (s *TransferService) generateSignature(req *createTransferRequest) string {
	data := fmt.Sprintf("amount=%d&description=%s&referenceId=%s&toAccountNumber=%s&toBin=%s",
		req.Amount,
		req.Description,
		req.ReferenceID,
		req.ToAccountNumber,
		req.ToBin,
	)

	h := hmac.New(sha256.New, []byte(s.config.ChecksumKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
