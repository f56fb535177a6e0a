package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/api-sage/fiat-ledger-core/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
	"github.com/api-sage/fiat-ledger-core/src/internal/logger"
	"github.com/api-sage/fiat-ledger-core/src/internal/usecase/commands"
)

// TransactionService turns a high-level balance operation into a
// sequence of reversible mutations with a persisted outcome. Every call
// runs to a terminal state: the transaction record it creates always
// ends COMMITTED or ROLLED_BACK, account locks are released on every
// exit path, and a failed call never leaves one leg of a transfer
// applied without the other.
type TransactionService struct {
	transactionRepo repo_interfaces.TransactionRepository
	accountRepo     repo_interfaces.AccountRepository
	clientRepo      repo_interfaces.ClientRepository
}

func NewTransactionService(
	transactionRepo repo_interfaces.TransactionRepository,
	accountRepo repo_interfaces.AccountRepository,
	clientRepo repo_interfaces.ClientRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		clientRepo:      clientRepo,
	}
}

// operation is the closed variant an entry point resolves its arguments
// into. Exactly one of the three operation types reaches perform; the
// build switch below is exhaustive over them.
type operation struct {
	opType domain.OperationType
	from   *domain.Account
	to     *domain.Account
	amount domain.Money
}

func (s *TransactionService) Replenish(ctx context.Context, accountID int64, amount domain.Money) (domain.Transaction, error) {
	account, err := s.loadActiveAccount(ctx, accountID)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := checkAmount(amount, account.Balance); err != nil {
		return domain.Transaction{}, err
	}

	return s.perform(ctx, operation{
		opType: domain.OperationTypeReplenish,
		from:   &account,
		amount: amount,
	})
}

func (s *TransactionService) Withdraw(ctx context.Context, accountID int64, amount domain.Money) (domain.Transaction, error) {
	account, err := s.loadActiveAccount(ctx, accountID)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := checkAmount(amount, account.Balance); err != nil {
		return domain.Transaction{}, err
	}

	return s.perform(ctx, operation{
		opType: domain.OperationTypeWithdraw,
		from:   &account,
		amount: amount,
	})
}

func (s *TransactionService) Transfer(ctx context.Context, fromAccountID, toAccountID int64, amount domain.Money) (domain.Transaction, error) {
	if fromAccountID == toAccountID {
		return domain.Transaction{}, fmt.Errorf("source and destination account cannot be the same")
	}

	from, err := s.loadActiveAccount(ctx, fromAccountID)
	if err != nil {
		return domain.Transaction{}, err
	}
	to, err := s.loadActiveAccount(ctx, toAccountID)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := checkAmount(amount, from.Balance, to.Balance); err != nil {
		return domain.Transaction{}, err
	}

	return s.perform(ctx, operation{
		opType: domain.OperationTypeTransfer,
		from:   &from,
		to:     &to,
		amount: amount,
	})
}

func (s *TransactionService) GetTransaction(ctx context.Context, id int64) (domain.Transaction, error) {
	return s.transactionRepo.Get(ctx, id)
}

func (s *TransactionService) GetAccountTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	if _, err := s.accountRepo.Get(ctx, accountID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetAllByAccountID(ctx, accountID)
}

// perform runs the invocation state machine: record the attempt, lock,
// execute, finalize, unlock. Validation has already passed, so from
// here on the transaction record always reaches a terminal state.
func (s *TransactionService) perform(ctx context.Context, op operation) (domain.Transaction, error) {
	transaction, err := s.createTransaction(ctx, op)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
	}

	// Locks are taken in ascending account-identity order, the same
	// total order for every caller. Two contending transfers over the
	// same pair therefore cannot hold one lock each and wait forever;
	// the loser of the race fails fast with lock-busy instead.
	locked, err := s.lockAccountsInOrder(ctx, op.from, op.to)
	if err != nil {
		s.finalize(ctx, transaction.ID, domain.TransactionStateRolledBack)
		return transaction, fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
	}
	defer s.unlockAccounts(ctx, locked)

	command := s.buildCommand(op)

	if err := command.Execute(ctx); err != nil {
		// A failed sequence has already undone its completed members;
		// a failed single command never committed. Either way this
		// extra rollback is an idempotent no-op kept for the same
		// reason the locks are released in a defer: every exit path
		// looks the same.
		_ = command.Rollback(ctx)
		s.finalize(ctx, transaction.ID, domain.TransactionStateRolledBack)

		logger.Error("transaction service operation rolled back", err, logger.Fields{
			"transactionId": transaction.ID,
			"operationType": string(op.opType),
		})

		transaction.State = domain.TransactionStateRolledBack
		return transaction, fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
	}

	s.finalize(ctx, transaction.ID, domain.TransactionStateCommitted)
	transaction.State = domain.TransactionStateCommitted

	logger.Info("transaction service operation committed", logger.Fields{
		"transactionId": transaction.ID,
		"reference":     transaction.Reference,
		"operationType": string(op.opType),
	})

	return transaction, nil
}

// buildCommand resolves the operation variant into a concrete command.
// The switch is exhaustive over the closed set of operation types.
func (s *TransactionService) buildCommand(op operation) commands.Command {
	switch op.opType {
	case domain.OperationTypeReplenish:
		return commands.Credit(s.accountRepo, op.from.ID, op.amount)
	case domain.OperationTypeWithdraw:
		return commands.Debit(s.accountRepo, op.from.ID, op.amount)
	case domain.OperationTypeTransfer:
		return commands.NewSequence(
			commands.Debit(s.accountRepo, op.from.ID, op.amount),
			commands.Credit(s.accountRepo, op.to.ID, op.amount),
		)
	default:
		panic(fmt.Sprintf("unsupported operation type %q", op.opType))
	}
}

// createTransaction records the attempt in STARTED state before any
// lock is taken, so even a mutation that fails leaves an observable
// ROLLED_BACK record instead of losing the attempt.
func (s *TransactionService) createTransaction(ctx context.Context, op operation) (domain.Transaction, error) {
	transaction := domain.Transaction{
		Amount: op.amount,
		Type:   op.opType,
	}
	if op.from != nil {
		fromID := op.from.ID
		transaction.FromAccountID = &fromID
	}
	if op.to != nil {
		toID := op.to.ID
		transaction.ToAccountID = &toID
	}

	return s.transactionRepo.Create(ctx, transaction)
}

func (s *TransactionService) lockAccountsInOrder(ctx context.Context, accounts ...*domain.Account) ([]int64, error) {
	ids := make([]int64, 0, len(accounts))
	for _, account := range accounts {
		if account != nil {
			ids = append(ids, account.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	locked := make([]int64, 0, len(ids))
	for _, id := range ids {
		if err := s.accountRepo.TryLock(ctx, id); err != nil {
			s.unlockAccounts(ctx, locked)
			return nil, err
		}
		locked = append(locked, id)
	}

	return locked, nil
}

func (s *TransactionService) unlockAccounts(ctx context.Context, ids []int64) {
	for _, id := range ids {
		if err := s.accountRepo.Unlock(ctx, id); err != nil {
			logger.Error("transaction service unlock account failed", err, logger.Fields{
				"accountId": id,
			})
		}
	}
}

func (s *TransactionService) finalize(ctx context.Context, transactionID int64, state domain.TransactionState) {
	if err := s.transactionRepo.UpdateTransactionState(ctx, transactionID, state); err != nil {
		logger.Error("transaction service finalize state failed", err, logger.Fields{
			"transactionId": transactionID,
			"state":         string(state),
		})
	}
}

func (s *TransactionService) loadActiveAccount(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.accountRepo.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}
	if !accountIsActive(ctx, account, s.clientRepo) {
		return domain.Account{}, fmt.Errorf("%w: account %d", domain.ErrAccountInactive, id)
	}
	return account, nil
}

// checkAmount rejects a non-positive amount and any currency mix-up
// between the amount and the involved balances, before any record is
// created or lock taken.
func checkAmount(amount domain.Money, balances ...domain.Money) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	for _, balance := range balances {
		if !amount.SameCurrency(balance) {
			return fmt.Errorf("%w: %s vs %s", domain.ErrCurrencyMismatch, amount.Currency, balance.Currency)
		}
	}
	return nil
}

// accountIsActive derives an account's effective activity: its own flag
// and the continued resolvability of the owning client. An account
// whose client was deactivated reads inactive even while its own flag
// is still true.
func accountIsActive(ctx context.Context, account domain.Account, clients repo_interfaces.ClientRepository) bool {
	if !account.Active {
		return false
	}
	if _, err := clients.Get(ctx, account.ClientID); err != nil {
		if !errors.Is(err, domain.ErrClientNotFound) {
			logger.Error("account activity client lookup failed", err, logger.Fields{
				"accountId": account.ID,
				"clientId":  account.ClientID,
			})
		}
		return false
	}
	return true
}
