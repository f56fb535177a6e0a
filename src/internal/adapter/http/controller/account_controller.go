package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/fiat-ledger-core/src/internal/adapter/http/models"
	"github.com/api-sage/fiat-ledger-core/src/internal/commons"
	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
)

type AccountService interface {
	CreateAccount(ctx context.Context, clientID int64, currency domain.Currency, initialDeposit decimal.Decimal) (domain.Account, error)
	GetAccount(ctx context.Context, id int64) (domain.Account, error)
	ListAccounts(ctx context.Context, clientID int64) ([]domain.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handler := http.HandlerFunc(c.accounts)
	if authMiddleware != nil {
		handler = authMiddleware(handler).ServeHTTP
	}

	mux.Handle("/accounts", http.HandlerFunc(handler))
}

func (c *AccountController) accounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.create(w, r)
	case http.MethodGet:
		c.get(w, r)
	case http.MethodDelete:
		c.delete(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse]("method not allowed"))
	}
}

func (c *AccountController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	account, err := c.service.CreateAccount(r.Context(), req.ClientID, domain.Currency(req.Currency), req.InitialDeposit)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), commons.FailureResponse[models.AccountResponse]("failed to create account", err))
		return
	}

	response := commons.SuccessResponse("account created successfully", mapAccountToResponse(account))
	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if clientID, err := parseIDParam(r, "clientId"); err == nil {
		accounts, err := c.service.ListAccounts(r.Context(), clientID)
		if err != nil {
			writeJSON(w, statusForError(err), commons.FailureResponse[[]models.AccountResponse]("failed to list accounts", err))
			return
		}

		mapped := make([]models.AccountResponse, 0, len(accounts))
		for _, account := range accounts {
			mapped = append(mapped, mapAccountToResponse(account))
		}

		response := commons.SuccessResponse("accounts retrieved successfully", mapped)
		writeJSON(w, http.StatusOK, response)
		logResponse(r, http.StatusOK, response, start)
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	account, err := c.service.GetAccount(r.Context(), id)
	if err != nil {
		writeJSON(w, statusForError(err), commons.FailureResponse[models.AccountResponse]("failed to get account", err))
		return
	}

	response := commons.SuccessResponse("account retrieved successfully", mapAccountToResponse(account))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) delete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	if err := c.service.DeleteAccount(r.Context(), id); err != nil {
		writeJSON(w, statusForError(err), commons.FailureResponse[models.AccountResponse]("failed to delete account", err))
		return
	}

	response := commons.Response[models.AccountResponse]{Success: true, Message: "account deleted successfully"}
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:        account.ID,
		ClientID:  account.ClientID,
		Currency:  string(account.Balance.Currency),
		Balance:   account.Balance.Amount.StringFixed(2),
		Active:    account.Active,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
		UpdatedAt: account.UpdatedAt.Format(time.RFC3339),
	}
}
