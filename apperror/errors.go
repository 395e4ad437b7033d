package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies an application error and maps it to an HTTP status.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindProvider
	KindInternal
)

// Error is the single error type crossing the service boundary. Repository
// and provider errors are translated into it; handlers render it as the
// standard JSON envelope.
type Error struct {
	Kind    Kind
	Message string
	Status  int // set only for KindProvider, where the upstream status passes through
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to a response status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindProvider:
		if e.Status != 0 {
			return e.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Code is the machine-readable error slug used in the response envelope.
func (e *Error) Code() string {
	switch e.Kind {
	case KindValidation:
		return "validation_failed"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindProvider:
		return "provider_error"
	default:
		return "internal_error"
	}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Provider(status int, message string) *Error {
	return &Error{Kind: KindProvider, Status: status, Message: message}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// As extracts an *Error from any error chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == KindNotFound
}

func IsConflict(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == KindConflict
}

// FromDB translates raw database driver errors into the typed taxonomy.
// Known gorm sentinels and Postgres error codes get a specific kind; anything
// unrecognized passes through as internal.
func FromDB(err error, entity string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := As(err); ok {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("%s not found", entity)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict("%s already exists", entity)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return Validation("%s references a missing record", entity)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return Conflict("%s already exists", entity)
		case pgerrcode.ForeignKeyViolation:
			return Validation("%s references a missing record", entity)
		case pgerrcode.NotNullViolation:
			return Validation("%s is missing a required field", entity)
		}
	}

	return Internal(err)
}
