package momo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/essomba/schoolhub/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return NewClient(&config.Momo{
		BaseURL:           baseURL,
		SubscriptionKey:   "sub-key",
		TargetEnvironment: "sandbox",
		CallbackHost:      "school.test",
		RequestTimeout:    5,
	})
}

func TestCreateAPIUser(t *testing.T) {
	testCases := []struct {
		name        string
		status      int
		expectedErr error
	}{
		{name: "created", status: http.StatusCreated, expectedErr: nil},
		{name: "already exists", status: http.StatusConflict, expectedErr: ErrAPIUserExists},
		{name: "bad subscription key", status: http.StatusUnauthorized, expectedErr: ErrUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1_0/apiuser", r.URL.Path)
				assert.Equal(t, "ref-1", r.Header.Get("X-Reference-Id"))
				assert.Equal(t, "sub-key", r.Header.Get("Ocp-Apim-Subscription-Key"))

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "school.test", body["providerCallbackHost"])

				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			err := testClient(srv.URL).CreateAPIUser(context.Background(), "ref-1")
			if tc.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
		})
	}
}

func TestCreateAPIUser_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("provider down"))
	}))
	defer srv.Close()

	err := testClient(srv.URL).CreateAPIUser(context.Background(), "ref-1")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusInternalServerError, provErr.Status)
	assert.Equal(t, "provider down", provErr.Message)
}

func TestCreateAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_0/apiuser/ref-1/apikey", r.URL.Path)
		assert.Equal(t, "sub-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"apiKey": "key-123"})
	}))
	defer srv.Close()

	apiKey, err := testClient(srv.URL).CreateAPIKey(context.Background(), "ref-1")
	require.NoError(t, err)
	assert.Equal(t, "key-123", apiKey)
}

func TestGetAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collection/token/", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "token exchange must use basic auth")
		assert.Equal(t, "ref-1", user)
		assert.Equal(t, "key-123", pass)

		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "tok", TokenType: "access_token", ExpiresIn: 3600})
	}))
	defer srv.Close()

	token, err := testClient(srv.URL).GetAccessToken(context.Background(), "ref-1", "key-123")
	require.NoError(t, err)
	assert.Equal(t, "tok", token.AccessToken)
	assert.Equal(t, 3600, token.ExpiresIn)
}

func TestGetAccessToken_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GetAccessToken(context.Background(), "ref-1", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRequestToPay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collection/v1_0/requesttopay", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "corr-1", r.Header.Get("X-Reference-Id"))
		assert.Equal(t, "sandbox", r.Header.Get("X-Target-Environment"))
		assert.Equal(t, "sub-key", r.Header.Get("Ocp-Apim-Subscription-Key"))

		var payment PaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payment))
		assert.Equal(t, "1500", payment.Amount)
		assert.Equal(t, "MSISDN", payment.Payer.PartyIDType)
		assert.Equal(t, "237670000001", payment.Payer.PartyID)

		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := testClient(srv.URL).RequestToPay(context.Background(), "tok", "corr-1", PaymentRequest{
		Amount:     "1500",
		Currency:   "XAF",
		ExternalID: "fees-2026-001",
		Payer:      Payer{PartyIDType: "MSISDN", PartyID: "237670000001"},
	})
	assert.NoError(t, err)
}

func TestRequestToPay_RejectedStatuses(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "expired token",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnauthorized)
			},
		},
		{
			name:   "duplicate reference",
			status: http.StatusConflict,
			check: func(t *testing.T, err error) {
				var provErr *ProviderError
				require.ErrorAs(t, err, &provErr)
				assert.Equal(t, http.StatusConflict, provErr.Status)
			},
		},
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			check: func(t *testing.T, err error) {
				var provErr *ProviderError
				assert.True(t, errors.As(err, &provErr))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			err := testClient(srv.URL).RequestToPay(context.Background(), "tok", "corr-1", PaymentRequest{})
			tc.check(t, err)
		})
	}
}
