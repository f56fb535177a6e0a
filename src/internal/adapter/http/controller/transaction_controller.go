package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/fiat-ledger-core/src/internal/adapter/http/models"
	"github.com/api-sage/fiat-ledger-core/src/internal/commons"
	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
)

type TransactionService interface {
	Replenish(ctx context.Context, accountID int64, amount domain.Money) (domain.Transaction, error)
	Withdraw(ctx context.Context, accountID int64, amount domain.Money) (domain.Transaction, error)
	Transfer(ctx context.Context, fromAccountID, toAccountID int64, amount domain.Money) (domain.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (domain.Transaction, error)
	GetAccountTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

type TransactionController struct {
	service TransactionService
}

func NewTransactionController(service TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"/transactions":           c.transactions,
		"/transactions/replenish": c.replenish,
		"/transactions/withdraw":  c.withdraw,
		"/transactions/transfer":  c.transfer,
	}

	for path, handler := range routes {
		if authMiddleware != nil {
			handler = authMiddleware(handler).ServeHTTP
		}
		mux.Handle(path, http.HandlerFunc(handler))
	}
}

func (c *TransactionController) transactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionResponse]("method not allowed"))
		return
	}

	if accountID, err := parseIDParam(r, "accountId"); err == nil {
		transactions, err := c.service.GetAccountTransactions(r.Context(), accountID)
		if err != nil {
			writeJSON(w, statusForError(err), commons.FailureResponse[[]models.TransactionResponse]("failed to list transactions", err))
			return
		}

		mapped := make([]models.TransactionResponse, 0, len(transactions))
		for _, transaction := range transactions {
			mapped = append(mapped, mapTransactionToResponse(transaction))
		}

		response := commons.SuccessResponse("transactions retrieved successfully", mapped)
		writeJSON(w, http.StatusOK, response)
		logResponse(r, http.StatusOK, response, start)
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()))
		return
	}

	transaction, err := c.service.GetTransaction(r.Context(), id)
	if err != nil {
		writeJSON(w, statusForError(err), commons.FailureResponse[models.TransactionResponse]("failed to get transaction", err))
		return
	}

	response := commons.SuccessResponse("transaction retrieved successfully", mapTransactionToResponse(transaction))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransactionController) replenish(w http.ResponseWriter, r *http.Request) {
	c.balanceOperation(w, r, "replenish", c.service.Replenish)
}

func (c *TransactionController) withdraw(w http.ResponseWriter, r *http.Request) {
	c.balanceOperation(w, r, "withdraw", c.service.Withdraw)
}

func (c *TransactionController) balanceOperation(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	operation func(ctx context.Context, accountID int64, amount domain.Money) (domain.Transaction, error),
) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionResponse]("method not allowed"))
		return
	}

	var req models.BalanceOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()))
		return
	}

	transaction, err := operation(r.Context(), req.AccountID, domain.NewMoney(domain.Currency(req.Currency), req.Amount))
	if err != nil {
		logError(r, err, nil)
		status := statusForError(err)
		response := commons.FailureResponse[models.TransactionResponse]("failed to "+name, err)
		if transaction.ID != 0 {
			response.Data = transactionResponsePtr(transaction)
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	response := commons.SuccessResponse(name+" successful", mapTransactionToResponse(transaction))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransactionController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionResponse]("method not allowed"))
		return
	}

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()))
		return
	}

	transaction, err := c.service.Transfer(r.Context(), req.FromAccountID, req.ToAccountID,
		domain.NewMoney(domain.Currency(req.Currency), req.Amount))
	if err != nil {
		logError(r, err, nil)
		status := statusForError(err)
		response := commons.FailureResponse[models.TransactionResponse]("failed to transfer", err)
		if transaction.ID != 0 {
			response.Data = transactionResponsePtr(transaction)
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	response := commons.SuccessResponse("transfer successful", mapTransactionToResponse(transaction))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func mapTransactionToResponse(transaction domain.Transaction) models.TransactionResponse {
	return models.TransactionResponse{
		ID:            transaction.ID,
		Reference:     transaction.Reference,
		FromAccountID: transaction.FromAccountID,
		ToAccountID:   transaction.ToAccountID,
		Currency:      string(transaction.Amount.Currency),
		Amount:        transaction.Amount.Amount.StringFixed(2),
		OperationType: string(transaction.Type),
		State:         string(transaction.State),
		CreatedAt:     transaction.CreatedAt.Format(time.RFC3339),
	}
}

func transactionResponsePtr(transaction domain.Transaction) *models.TransactionResponse {
	mapped := mapTransactionToResponse(transaction)
	return &mapped
}
