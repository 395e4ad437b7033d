package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/essomba/schoolhub/apperror"
	"github.com/essomba/schoolhub/model"
	"github.com/essomba/schoolhub/momo"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "provider error passes upstream status through",
			err:            &momo.ProviderError{Status: http.StatusServiceUnavailable, Message: "maintenance"},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "provider_error",
		},
		{
			name:           "provider credential rejection is a bad gateway",
			err:            momo.ErrUnauthorized,
			expectedStatus: http.StatusBadGateway,
			expectedCode:   "provider_error",
		},
		{
			name:           "not found",
			err:            apperror.NotFound("level not found"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   "not_found",
		},
		{
			name:           "conflict",
			err:            apperror.Conflict("email already registered"),
			expectedStatus: http.StatusConflict,
			expectedCode:   "conflict",
		},
		{
			name:           "plain error is an internal error",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "internal_error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			handleError(c, tc.err)

			assert.Equal(t, tc.expectedStatus, w.Code)

			var resp model.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.expectedCode, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestWriteError_HidesDetailInReleaseMode(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	handleError(c, apperror.Internal(errors.New("secret connection string")))

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Details)
	assert.NotContains(t, w.Body.String(), "secret connection string")
}
