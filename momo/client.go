package momo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/essomba/schoolhub/config"
)

// Typed failures from the provider API. Each remote call maps a non-success
// status to one of these and aborts the chain; there are no retries at this
// layer.
var (
	ErrAPIUserExists = errors.New("momo: api user already exists")
	ErrUnauthorized  = errors.New("momo: unauthorized")
)

// ProviderError carries an unexpected upstream status through to the caller.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("momo: provider error (status %d): %s", e.Status, e.Message)
}

// TokenResponse is the provider's bearer token grant.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// PaymentRequest is the request-to-pay payload.
type PaymentRequest struct {
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	ExternalID   string `json:"externalId"`
	Payer        Payer  `json:"payer"`
	PayerMessage string `json:"payerMessage"`
	PayeeNote    string `json:"payeeNote"`
}

type Payer struct {
	PartyIDType string `json:"partyIdType"`
	PartyID     string `json:"partyId"`
}

// Client talks to the MTN MoMo collection API.
type Client struct {
	baseURL           string
	subscriptionKey   string
	targetEnvironment string
	callbackHost      string
	httpClient        *http.Client
}

func NewClient(cfg *config.Momo) *Client {
	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:           cfg.BaseURL,
		subscriptionKey:   cfg.SubscriptionKey,
		targetEnvironment: cfg.TargetEnvironment,
		callbackHost:      cfg.CallbackHost,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateAPIUser registers the application's own identity with the provider.
// A 409 means the reference ID was already provisioned.
func (c *Client) CreateAPIUser(ctx context.Context, referenceID string) error {
	payload, err := json.Marshal(map[string]string{
		"providerCallbackHost": c.callbackHost,
	})
	if err != nil {
		return fmt.Errorf("failed to encode api user payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1_0/apiuser", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Reference-Id", referenceID)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.subscriptionKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		return nil
	case http.StatusConflict:
		return ErrAPIUserExists
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return providerError(resp)
	}
}

// CreateAPIKey requests a short-lived API key for a provisioned api user.
func (c *Client) CreateAPIKey(ctx context.Context, referenceID string) (string, error) {
	url := fmt.Sprintf("%s/v1_0/apiuser/%s/apikey", c.baseURL, referenceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.subscriptionKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrUnauthorized
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", providerError(resp)
	}

	var body struct {
		APIKey string `json:"apiKey"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return body.APIKey, nil
}

// GetAccessToken exchanges the api user identity and key for a bearer token.
func (c *Client) GetAccessToken(ctx context.Context, referenceID, apiKey string) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/collection/token/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(referenceID, apiKey)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.subscriptionKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, providerError(resp)
	}

	var token TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &token, nil
}

// RequestToPay submits a payment request under a fresh correlation ID. The
// provider answers 202 Accepted; settlement arrives later on the callback.
func (c *Client) RequestToPay(ctx context.Context, accessToken, referenceID string, payment PaymentRequest) error {
	payload, err := json.Marshal(payment)
	if err != nil {
		return fmt.Errorf("failed to encode payment payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/collection/v1_0/requesttopay", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Reference-Id", referenceID)
	req.Header.Set("X-Target-Environment", c.targetEnvironment)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.subscriptionKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusAccepted:
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return providerError(resp)
	}
}

func providerError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &ProviderError{Status: resp.StatusCode, Message: string(body)}
}
