package momo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/essomba/schoolhub/apperror"
	"github.com/essomba/schoolhub/model"
	"github.com/essomba/schoolhub/repository"
	"github.com/google/uuid"
)

// Provider is the slice of the MoMo API the orchestrator needs.
type Provider interface {
	CreateAPIUser(ctx context.Context, referenceID string) error
	CreateAPIKey(ctx context.Context, referenceID string) (string, error)
	GetAccessToken(ctx context.Context, referenceID, apiKey string) (*TokenResponse, error)
	RequestToPay(ctx context.Context, accessToken, referenceID string, payment PaymentRequest) error
}

// Service orchestrates payments: credential acquisition, initiation and
// callback reconciliation.
type Service struct {
	provider Provider
	repo     repository.MomoRepository
	currency string

	// serializes api-user provisioning so concurrent first requests do not
	// register the remote user twice
	apiUserMu sync.Mutex
}

func NewService(provider Provider, repo repository.MomoRepository, currency string) *Service {
	return &Service{
		provider: provider,
		repo:     repo,
		currency: currency,
	}
}

// ensureAPIUser returns the application's provider identity, provisioning it
// remotely and recording it locally on first use.
func (s *Service) ensureAPIUser(ctx context.Context) (*model.MomoAPIUser, error) {
	s.apiUserMu.Lock()
	defer s.apiUserMu.Unlock()

	apiUser, err := s.repo.GetAPIUser()
	if err == nil {
		return apiUser, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	referenceID := uuid.New().String()
	if err := s.provider.CreateAPIUser(ctx, referenceID); err != nil && !errors.Is(err, ErrAPIUserExists) {
		return nil, err
	}

	apiKey, err := s.provider.CreateAPIKey(ctx, referenceID)
	if err != nil {
		return nil, err
	}

	return s.repo.SaveAPIUser(referenceID, apiKey)
}

// token acquires a fresh bearer token for one payment request.
func (s *Service) token(ctx context.Context) (*TokenResponse, error) {
	apiUser, err := s.ensureAPIUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.provider.GetAccessToken(ctx, apiUser.ReferenceID, apiUser.APIKey)
}

// InitiatePayment submits a request-to-pay and records a PENDING transaction.
// Credential failures abort before any row is written, so no orphaned
// PENDING rows come out of a broken token exchange. A duplicate externalId
// fails the insert with a conflict and the payment is not re-submitted as a
// new transaction.
func (s *Service) InitiatePayment(ctx context.Context, req model.InitiatePaymentAPIRequest) (*model.MomoTransaction, error) {
	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}

	referenceID := uuid.New().String()
	payment := PaymentRequest{
		Amount:       req.Amount,
		Currency:     s.currency,
		ExternalID:   req.ExternalID,
		Payer:        Payer{PartyIDType: "MSISDN", PartyID: req.PartyID},
		PayerMessage: req.PayerMessage,
		PayeeNote:    req.PayeeNote,
	}

	if err := s.provider.RequestToPay(ctx, token.AccessToken, referenceID, payment); err != nil {
		return nil, err
	}

	txn := &model.MomoTransaction{
		ID:              uuid.New().String(),
		Amount:          req.Amount,
		Currency:        s.currency,
		PartyID:         req.PartyID,
		PartyIDType:     "MSISDN",
		ExternalID:      req.ExternalID,
		ReferenceID:     referenceID,
		Status:          model.MomoStatusPending,
		TransactionDate: time.Now().UTC(),
		PayerMessage:    req.PayerMessage,
		PayeeNote:       req.PayeeNote,
	}
	if err := s.repo.CreateTransaction(txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// HandleCallback reconciles a transaction from the provider's asynchronous
// outcome notification. An unknown externalId is surfaced as not-found; a
// missed reconciliation would mean money moved while the ledger disagrees.
func (s *Service) HandleCallback(ctx context.Context, cb model.MomoCallbackRequest) (*model.MomoTransaction, error) {
	if _, err := s.repo.GetTransactionByExternalID(cb.ExternalID); err != nil {
		return nil, err
	}

	switch cb.Status {
	case model.MomoStatusSuccessful:
		return s.repo.UpdateTransactionStatus(cb.ExternalID, model.MomoStatusSuccessful, cb.FinancialTransactionID, "")
	case model.MomoStatusFailed:
		return s.repo.UpdateTransactionStatus(cb.ExternalID, model.MomoStatusFailed, "", cb.Reason)
	default:
		return nil, apperror.Validation("unknown callback status %q", cb.Status)
	}
}

// ListTransactions exposes the audit trail.
func (s *Service) ListTransactions(filter model.ListFilter) ([]model.MomoTransaction, int, error) {
	return s.repo.ListTransactions(filter)
}
