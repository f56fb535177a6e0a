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

type ClientService interface {
	Register(ctx context.Context, name, surname, pin string) (domain.Client, error)
	GetClient(ctx context.Context, id int64) (domain.Client, error)
	FindClients(ctx context.Context, name, surname string) ([]domain.Client, error)
	DeleteClient(ctx context.Context, id int64) error
	VerifyPin(ctx context.Context, id int64, pin string) error
}

type ClientController struct {
	service ClientService
}

func NewClientController(service ClientService) *ClientController {
	return &ClientController{service: service}
}

func (c *ClientController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	clients := http.HandlerFunc(c.clients)
	verifyPin := http.HandlerFunc(c.verifyPin)
	if authMiddleware != nil {
		clients = authMiddleware(clients).ServeHTTP
		verifyPin = authMiddleware(verifyPin).ServeHTTP
	}

	mux.Handle("/clients", http.HandlerFunc(clients))
	mux.Handle("/clients/verify-pin", http.HandlerFunc(verifyPin))
}

func (c *ClientController) clients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.register(w, r)
	case http.MethodGet:
		c.find(w, r)
	case http.MethodDelete:
		c.delete(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.ClientResponse]("method not allowed"))
	}
}

func (c *ClientController) register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RegisterClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.ClientResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.ClientResponse]("validation failed", err.Error()))
		return
	}

	client, err := c.service.Register(r.Context(), req.Name, req.Surname, req.Pin)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), commons.FailureResponse[models.ClientResponse]("failed to register client", err))
		return
	}

	response := commons.SuccessResponse("client registered successfully", mapClientToResponse(client))
	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *ClientController) find(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if id, err := parseIDParam(r, "id"); err == nil {
		client, err := c.service.GetClient(r.Context(), id)
		if err != nil {
			writeJSON(w, statusForError(err), commons.FailureResponse[models.ClientResponse]("failed to get client", err))
			return
		}

		response := commons.SuccessResponse("client retrieved successfully", mapClientToResponse(client))
		writeJSON(w, http.StatusOK, response)
		logResponse(r, http.StatusOK, response, start)
		return
	}

	clients, err := c.service.FindClients(r.Context(), r.URL.Query().Get("name"), r.URL.Query().Get("surname"))
	if err != nil {
		writeJSON(w, statusForError(err), commons.FailureResponse[[]models.ClientResponse]("failed to find clients", err))
		return
	}

	mapped := make([]models.ClientResponse, 0, len(clients))
	for _, client := range clients {
		mapped = append(mapped, mapClientToResponse(client))
	}

	response := commons.SuccessResponse("clients retrieved successfully", mapped)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *ClientController) delete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.ClientResponse]("validation failed", err.Error()))
		return
	}

	if err := c.service.DeleteClient(r.Context(), id); err != nil {
		writeJSON(w, statusForError(err), commons.FailureResponse[models.ClientResponse]("failed to delete client", err))
		return
	}

	response := commons.Response[models.ClientResponse]{Success: true, Message: "client deleted successfully"}
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *ClientController) verifyPin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.VerifyPinResponse]("method not allowed"))
		return
	}

	var req models.VerifyPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.VerifyPinResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.VerifyPinResponse]("validation failed", err.Error()))
		return
	}

	if err := c.service.VerifyPin(r.Context(), req.ClientID, req.Pin); err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), commons.FailureResponse[models.VerifyPinResponse]("failed to verify pin", err))
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("pin verified successfully", models.VerifyPinResponse{
		ClientID:   req.ClientID,
		IsValidPin: true,
	}))
}

func mapClientToResponse(client domain.Client) models.ClientResponse {
	return models.ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Surname:   client.Surname,
		Active:    client.Active,
		CreatedAt: client.CreatedAt.Format(time.RFC3339),
	}
}
