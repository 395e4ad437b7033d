package momo

import (
	"context"
	"testing"

	"github.com/essomba/schoolhub/apperror"
	"github.com/essomba/schoolhub/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider records calls and fails where configured.
type fakeProvider struct {
	createAPIUserCalls int
	createAPIKeyCalls  int
	tokenCalls         int
	requestToPayCalls  int

	createAPIUserErr error
	tokenErr         error
	requestToPayErr  error

	lastPayment     PaymentRequest
	lastReferenceID string
}

func (p *fakeProvider) CreateAPIUser(ctx context.Context, referenceID string) error {
	p.createAPIUserCalls++
	return p.createAPIUserErr
}

func (p *fakeProvider) CreateAPIKey(ctx context.Context, referenceID string) (string, error) {
	p.createAPIKeyCalls++
	return "api-key", nil
}

func (p *fakeProvider) GetAccessToken(ctx context.Context, referenceID, apiKey string) (*TokenResponse, error) {
	p.tokenCalls++
	if p.tokenErr != nil {
		return nil, p.tokenErr
	}
	return &TokenResponse{AccessToken: "tok", ExpiresIn: 3600}, nil
}

func (p *fakeProvider) RequestToPay(ctx context.Context, accessToken, referenceID string, payment PaymentRequest) error {
	p.requestToPayCalls++
	p.lastPayment = payment
	p.lastReferenceID = referenceID
	return p.requestToPayErr
}

// fakeMomoRepo is an in-memory repository.MomoRepository.
type fakeMomoRepo struct {
	apiUser      *model.MomoAPIUser
	transactions map[string]*model.MomoTransaction
}

func newFakeMomoRepo() *fakeMomoRepo {
	return &fakeMomoRepo{transactions: make(map[string]*model.MomoTransaction)}
}

func (r *fakeMomoRepo) GetAPIUser() (*model.MomoAPIUser, error) {
	if r.apiUser == nil {
		return nil, apperror.NotFound("momo api user not found")
	}
	return r.apiUser, nil
}

func (r *fakeMomoRepo) SaveAPIUser(referenceID, apiKey string) (*model.MomoAPIUser, error) {
	r.apiUser = &model.MomoAPIUser{ID: 1, ReferenceID: referenceID, APIKey: apiKey}
	return r.apiUser, nil
}

func (r *fakeMomoRepo) CreateTransaction(txn *model.MomoTransaction) error {
	if _, exists := r.transactions[txn.ExternalID]; exists {
		return apperror.Conflict("transaction already exists")
	}
	r.transactions[txn.ExternalID] = txn
	return nil
}

func (r *fakeMomoRepo) GetTransactionByExternalID(externalID string) (*model.MomoTransaction, error) {
	txn, ok := r.transactions[externalID]
	if !ok {
		return nil, apperror.NotFound("transaction not found")
	}
	return txn, nil
}

func (r *fakeMomoRepo) UpdateTransactionStatus(externalID, status, financialTransactionID, reason string) (*model.MomoTransaction, error) {
	txn, ok := r.transactions[externalID]
	if !ok {
		return nil, apperror.NotFound("transaction not found")
	}
	txn.Status = status
	txn.FinancialTransactionID = financialTransactionID
	txn.Reason = reason
	return txn, nil
}

func (r *fakeMomoRepo) ListTransactions(filter model.ListFilter) ([]model.MomoTransaction, int, error) {
	var out []model.MomoTransaction
	for _, txn := range r.transactions {
		out = append(out, *txn)
	}
	return out, len(out), nil
}

func paymentRequest(externalID string) model.InitiatePaymentAPIRequest {
	return model.InitiatePaymentAPIRequest{
		Amount:       "1500",
		PartyID:      "237670000001",
		ExternalID:   externalID,
		PayerMessage: "School fees",
		PayeeNote:    "Term 1",
	}
}

func TestInitiatePayment_RecordsPendingTransaction(t *testing.T) {
	provider := &fakeProvider{}
	repo := newFakeMomoRepo()
	svc := NewService(provider, repo, "XAF")

	txn, err := svc.InitiatePayment(context.Background(), paymentRequest("fees-001"))
	require.NoError(t, err)

	assert.Equal(t, model.MomoStatusPending, txn.Status)
	assert.Equal(t, "1500", txn.Amount)
	assert.Equal(t, "XAF", txn.Currency)
	assert.Equal(t, "MSISDN", txn.PartyIDType)
	assert.NotEmpty(t, txn.ID)
	assert.NotEmpty(t, txn.ReferenceID)
	assert.Equal(t, provider.lastReferenceID, txn.ReferenceID, "persisted correlation ID must match the one sent upstream")
	assert.Equal(t, "XAF", provider.lastPayment.Currency)

	stored, err := repo.GetTransactionByExternalID("fees-001")
	require.NoError(t, err)
	assert.Equal(t, txn.ID, stored.ID)
}

func TestInitiatePayment_ProvisionsAPIUserOnce(t *testing.T) {
	provider := &fakeProvider{}
	repo := newFakeMomoRepo()
	svc := NewService(provider, repo, "XAF")

	_, err := svc.InitiatePayment(context.Background(), paymentRequest("fees-001"))
	require.NoError(t, err)
	_, err = svc.InitiatePayment(context.Background(), paymentRequest("fees-002"))
	require.NoError(t, err)

	assert.Equal(t, 1, provider.createAPIUserCalls, "identity is provisioned on first use only")
	assert.Equal(t, 1, provider.createAPIKeyCalls)
	assert.Equal(t, 2, provider.tokenCalls, "each payment acquires a fresh token")
}

func TestInitiatePayment_ReusesStoredAPIUser(t *testing.T) {
	provider := &fakeProvider{}
	repo := newFakeMomoRepo()
	repo.apiUser = &model.MomoAPIUser{ID: 1, ReferenceID: "existing-ref", APIKey: "existing-key"}
	svc := NewService(provider, repo, "XAF")

	_, err := svc.InitiatePayment(context.Background(), paymentRequest("fees-001"))
	require.NoError(t, err)

	assert.Equal(t, 0, provider.createAPIUserCalls)
	assert.Equal(t, 0, provider.createAPIKeyCalls)
}

func TestInitiatePayment_ToleratesAlreadyProvisionedRemote(t *testing.T) {
	provider := &fakeProvider{createAPIUserErr: ErrAPIUserExists}
	repo := newFakeMomoRepo()
	svc := NewService(provider, repo, "XAF")

	_, err := svc.InitiatePayment(context.Background(), paymentRequest("fees-001"))
	require.NoError(t, err)
	assert.Equal(t, 1, provider.createAPIKeyCalls, "409 on api user creation still proceeds to the key")
}

func TestInitiatePayment_CredentialFailureWritesNoRow(t *testing.T) {
	provider := &fakeProvider{tokenErr: ErrUnauthorized}
	repo := newFakeMomoRepo()
	svc := NewService(provider, repo, "XAF")

	_, err := svc.InitiatePayment(context.Background(), paymentRequest("fees-001"))
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, repo.transactions, "no transaction row on a failed token exchange")
	assert.Equal(t, 0, provider.requestToPayCalls)
}

func TestInitiatePayment_RejectedPaymentWritesNoRow(t *testing.T) {
	provider := &fakeProvider{requestToPayErr: &ProviderError{Status: 400, Message: "invalid payer"}}
	repo := newFakeMomoRepo()
	svc := NewService(provider, repo, "XAF")

	_, err := svc.InitiatePayment(context.Background(), paymentRequest("fees-001"))
	assert.Error(t, err)
	assert.Empty(t, repo.transactions)
}

func TestInitiatePayment_DuplicateExternalID(t *testing.T) {
	provider := &fakeProvider{}
	repo := newFakeMomoRepo()
	svc := NewService(provider, repo, "XAF")

	_, err := svc.InitiatePayment(context.Background(), paymentRequest("fees-001"))
	require.NoError(t, err)

	_, err = svc.InitiatePayment(context.Background(), paymentRequest("fees-001"))
	assert.True(t, apperror.IsConflict(err))
}

func TestHandleCallback_Successful(t *testing.T) {
	provider := &fakeProvider{}
	repo := newFakeMomoRepo()
	svc := NewService(provider, repo, "XAF")

	_, err := svc.InitiatePayment(context.Background(), paymentRequest("fees-001"))
	require.NoError(t, err)

	txn, err := svc.HandleCallback(context.Background(), model.MomoCallbackRequest{
		ExternalID:             "fees-001",
		Status:                 model.MomoStatusSuccessful,
		FinancialTransactionID: "fin-42",
	})
	require.NoError(t, err)

	assert.Equal(t, model.MomoStatusSuccessful, txn.Status)
	assert.Equal(t, "fin-42", txn.FinancialTransactionID)
	assert.Empty(t, txn.Reason)
}

func TestHandleCallback_Failed(t *testing.T) {
	provider := &fakeProvider{}
	repo := newFakeMomoRepo()
	svc := NewService(provider, repo, "XAF")

	_, err := svc.InitiatePayment(context.Background(), paymentRequest("fees-001"))
	require.NoError(t, err)

	txn, err := svc.HandleCallback(context.Background(), model.MomoCallbackRequest{
		ExternalID: "fees-001",
		Status:     model.MomoStatusFailed,
		Reason:     "PAYER_NOT_FOUND",
	})
	require.NoError(t, err)

	assert.Equal(t, model.MomoStatusFailed, txn.Status)
	assert.Equal(t, "PAYER_NOT_FOUND", txn.Reason)
	assert.Empty(t, txn.FinancialTransactionID)
}

func TestHandleCallback_UnknownExternalID(t *testing.T) {
	svc := NewService(&fakeProvider{}, newFakeMomoRepo(), "XAF")

	_, err := svc.HandleCallback(context.Background(), model.MomoCallbackRequest{
		ExternalID: "never-initiated",
		Status:     model.MomoStatusSuccessful,
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestHandleCallback_UnknownStatus(t *testing.T) {
	provider := &fakeProvider{}
	repo := newFakeMomoRepo()
	svc := NewService(provider, repo, "XAF")

	_, err := svc.InitiatePayment(context.Background(), paymentRequest("fees-001"))
	require.NoError(t, err)

	_, err = svc.HandleCallback(context.Background(), model.MomoCallbackRequest{
		ExternalID: "fees-001",
		Status:     "PROCESSING",
	})
	assert.Error(t, err)

	// The transaction is untouched
	txn, err := repo.GetTransactionByExternalID("fees-001")
	require.NoError(t, err)
	assert.Equal(t, model.MomoStatusPending, txn.Status)
}
