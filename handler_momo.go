package main

import (
	"net/http"
	"strconv"

	"github.com/essomba/schoolhub/model"
	"github.com/essomba/schoolhub/momo"
	"github.com/gin-gonic/gin"
)

type MomoHandler struct {
	service *momo.Service
}

func NewMomoHandler(service *momo.Service) *MomoHandler {
	return &MomoHandler{service: service}
}

// InitiatePayment starts a request-to-pay. The provider's immediate answer
// is "accepted, pending"; settlement arrives later on the callback.
func (h *MomoHandler) InitiatePayment(c *gin.Context) {
	var req model.InitiatePaymentAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	amount, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil || amount <= 0 {
		badRequest(c, "amount must be a positive decimal")
		return
	}

	txn, err := h.service.InitiatePayment(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, txn.ToTransactionResponse())
}

// Callback reconciles a transaction from the provider's outcome
// notification. An unknown externalId is reported back as 404 so the
// provider can flag the mismatch; a silently dropped callback would leave
// the ledger disagreeing with moved money.
func (h *MomoHandler) Callback(c *gin.Context) {
	var req model.MomoCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	txn, err := h.service.HandleCallback(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn.ToTransactionResponse())
}

// ListTransactions exposes the payment audit trail to administrators.
func (h *MomoHandler) ListTransactions(c *gin.Context) {
	filter := parseListFilter(c)

	txns, total, err := h.service.ListTransactions(filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response := model.MomoTransactionListResponse{
		Transactions: make([]model.MomoTransactionResponse, 0, len(txns)),
		Pagination:   model.NewPagination(filter, total),
	}
	for i := range txns {
		response.Transactions = append(response.Transactions, *txns[i].ToTransactionResponse())
	}

	c.JSON(http.StatusOK, response)
}
