package model

import "time"

// MomoTransaction statuses. A transaction is created PENDING and transitions
// exactly once, via the provider callback, to SUCCESSFUL or FAILED.
const (
	MomoStatusPending    = "PENDING"
	MomoStatusSuccessful = "SUCCESSFUL"
	MomoStatusFailed     = "FAILED"
)

// ===============================
// Database Entities (Internal)
// ===============================

// MomoTransaction is one payment attempt. Rows are never deleted; they form
// the financial audit trail. The provider access token used for the request
// is deliberately not persisted.
type MomoTransaction struct {
	ID                     string `gorm:"type:text;primary_key"`
	Amount                 string `gorm:"not null"`
	Currency               string `gorm:"not null"`
	PartyID                string `gorm:"not null"`
	PartyIDType            string `gorm:"not null;default:'MSISDN'"`
	ExternalID             string `gorm:"uniqueIndex;not null"` // caller-supplied idempotency key
	ReferenceID            string `gorm:"uniqueIndex;not null"` // provider correlation id
	Status                 string `gorm:"not null;default:'PENDING'"`
	TransactionDate        time.Time
	PayerMessage           string
	PayeeNote              string
	FinancialTransactionID string // set only on SUCCESSFUL
	Reason                 string // set only on FAILED
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// MomoAPIUser is the application's own identity with the payment provider.
// Created once on first use, reused thereafter.
type MomoAPIUser struct {
	ID          uint   `gorm:"primary_key"`
	ReferenceID string `gorm:"uniqueIndex;not null"`
	APIKey      string `gorm:"not null"`
	CreatedAt   time.Time
}

// ===============================
// API DTOs (External)
// ===============================

type InitiatePaymentAPIRequest struct {
	Amount       string `json:"amount" binding:"required"`
	PartyID      string `json:"party_id" binding:"required"`
	ExternalID   string `json:"external_id" binding:"required"`
	PayerMessage string `json:"payer_message"`
	PayeeNote    string `json:"payee_note"`
}

// MomoCallbackRequest is the provider's asynchronous outcome notification.
type MomoCallbackRequest struct {
	ExternalID             string `json:"externalId" binding:"required"`
	Status                 string `json:"status" binding:"required,oneof=SUCCESSFUL FAILED"`
	FinancialTransactionID string `json:"financialTransactionId"`
	Reason                 string `json:"reason"`
}

type MomoTransactionResponse struct {
	TransactionID          string    `json:"transaction_id"`
	Amount                 string    `json:"amount"`
	Currency               string    `json:"currency"`
	PartyID                string    `json:"party_id"`
	ExternalID             string    `json:"external_id"`
	ReferenceID            string    `json:"reference_id"`
	Status                 string    `json:"status"`
	TransactionDate        time.Time `json:"transaction_date"`
	FinancialTransactionID string    `json:"financial_transaction_id,omitempty"`
	Reason                 string    `json:"reason,omitempty"`
}

func (t *MomoTransaction) ToTransactionResponse() *MomoTransactionResponse {
	return &MomoTransactionResponse{
		TransactionID:          t.ID,
		Amount:                 t.Amount,
		Currency:               t.Currency,
		PartyID:                t.PartyID,
		ExternalID:             t.ExternalID,
		ReferenceID:            t.ReferenceID,
		Status:                 t.Status,
		TransactionDate:        t.TransactionDate,
		FinancialTransactionID: t.FinancialTransactionID,
		Reason:                 t.Reason,
	}
}

type MomoTransactionListResponse struct {
	Transactions []MomoTransactionResponse `json:"transactions"`
	Pagination   Pagination                `json:"pagination"`
}
