package main

import (
	"log"
	"net/http"
	"time"

	"github.com/api-sage/fiat-ledger-core/src/internal/adapter/http/controller"
	"github.com/api-sage/fiat-ledger-core/src/internal/adapter/http/middleware"
	"github.com/api-sage/fiat-ledger-core/src/internal/adapter/http/router"
	"github.com/api-sage/fiat-ledger-core/src/internal/adapter/repository/memory"
	"github.com/api-sage/fiat-ledger-core/src/internal/config"
	"github.com/api-sage/fiat-ledger-core/src/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	clientRepo := memory.NewClientRepository()
	accountRepo := memory.NewAccountRepository()
	transactionRepo := memory.NewTransactionRepository()

	clientService := services.NewClientService(clientRepo)
	accountService := services.NewAccountService(accountRepo, clientRepo)
	transactionService := services.NewTransactionService(transactionRepo, accountRepo, clientRepo)

	mux := router.New(
		controller.NewClientController(clientService),
		controller.NewAccountController(accountService),
		controller.NewTransactionController(transactionService),
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
	)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("ledger server listening on %s", cfg.ListenAddr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
