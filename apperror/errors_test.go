package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		name     string
		err      *Error
		expected int
	}{
		{name: "validation", err: Validation("bad input"), expected: http.StatusBadRequest},
		{name: "not found", err: NotFound("level not found"), expected: http.StatusNotFound},
		{name: "conflict", err: Conflict("duplicate email"), expected: http.StatusConflict},
		{name: "unauthorized", err: Unauthorized("bad token"), expected: http.StatusUnauthorized},
		{name: "forbidden", err: Forbidden("admins only"), expected: http.StatusForbidden},
		{name: "provider passes upstream status", err: Provider(http.StatusServiceUnavailable, "down"), expected: http.StatusServiceUnavailable},
		{name: "provider without status is a bad gateway", err: &Error{Kind: KindProvider}, expected: http.StatusBadGateway},
		{name: "internal", err: Internal(errors.New("boom")), expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.HTTPStatus())
		})
	}
}

func TestFromDB(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedKind Kind
	}{
		{name: "gorm record not found", err: gorm.ErrRecordNotFound, expectedKind: KindNotFound},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, expectedKind: KindConflict},
		{name: "gorm foreign key violated", err: gorm.ErrForeignKeyViolated, expectedKind: KindValidation},
		{name: "pg unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, expectedKind: KindConflict},
		{name: "pg foreign key violation", err: &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, expectedKind: KindValidation},
		{name: "pg not null violation", err: &pgconn.PgError{Code: pgerrcode.NotNullViolation}, expectedKind: KindValidation},
		{name: "unrecognized error is internal", err: errors.New("connection reset"), expectedKind: KindInternal},
		{name: "wrapped sentinel still translates", err: fmt.Errorf("query: %w", gorm.ErrRecordNotFound), expectedKind: KindNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			translated := FromDB(tc.err, "level")
			appErr, ok := As(translated)
			require.True(t, ok)
			assert.Equal(t, tc.expectedKind, appErr.Kind)
		})
	}
}

func TestFromDB_Nil(t *testing.T) {
	assert.NoError(t, FromDB(nil, "level"))
}

func TestFromDB_PreservesExistingAppError(t *testing.T) {
	original := NotFound("admission not found")
	translated := FromDB(original, "admission")
	appErr, ok := As(translated)
	require.True(t, ok)
	assert.Same(t, original, appErr)
}

func TestInternal_WrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal(cause)
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Message, "disk full", "internal errors hide the cause from clients")
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("x")))
	assert.False(t, IsNotFound(Conflict("x")))
	assert.True(t, IsConflict(fmt.Errorf("wrapped: %w", Conflict("x"))))
	assert.False(t, IsConflict(errors.New("plain")))
}
