package main

import (
	"errors"
	"net/http"

	"github.com/essomba/schoolhub/apperror"
	"github.com/essomba/schoolhub/model"
	"github.com/essomba/schoolhub/momo"
	"github.com/gin-gonic/gin"
)

// handleError renders any service error as the standard JSON envelope.
// Raw error detail is exposed only outside release mode.
func handleError(c *gin.Context, err error) {
	var providerErr *momo.ProviderError

	switch {
	case errors.As(err, &providerErr):
		writeError(c, providerErr.Status, "provider_error", "Payment provider rejected the request", providerErr.Message)
	case errors.Is(err, momo.ErrUnauthorized):
		writeError(c, http.StatusBadGateway, "provider_error", "Payment provider rejected our credentials", err.Error())
	case errors.Is(err, momo.ErrAPIUserExists):
		writeError(c, http.StatusConflict, "conflict", "Payment provider identity already exists", err.Error())
	default:
		if appErr, ok := apperror.As(err); ok {
			writeError(c, appErr.HTTPStatus(), appErr.Code(), appErr.Message, errDetail(appErr))
			return
		}
		writeError(c, http.StatusInternalServerError, "internal_error", "Something went wrong", err.Error())
	}
}

func errDetail(appErr *apperror.Error) string {
	if appErr.Err == nil {
		return ""
	}
	return appErr.Err.Error()
}

func writeError(c *gin.Context, status int, code, message, detail string) {
	resp := model.ErrorResponse{
		Error:   code,
		Message: message,
	}
	if detail != "" && gin.Mode() != gin.ReleaseMode {
		resp.Details = detail
	}
	c.JSON(status, resp)
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{
		Error:   "validation_failed",
		Message: message,
	})
}
