package domain

import "errors"

var ErrClientNotFound = errors.New("client not found")
var ErrClientInactive = errors.New("client is not active")
var ErrClientAlreadyExists = errors.New("client already exists")
var ErrInvalidPin = errors.New("invalid pin")

var ErrAccountNotFound = errors.New("account not found")
var ErrAccountInactive = errors.New("account is not active")
var ErrAccountAlreadyExists = errors.New("account already exists")
var ErrAccountLocked = errors.New("account is locked by another operation")
var ErrAccountConflict = errors.New("account record changed unexpectedly")

var ErrTransactionNotFound = errors.New("transaction not found")
var ErrTransactionStateFinal = errors.New("transaction state is terminal")
var ErrTransactionFailed = errors.New("transaction failed")

var ErrInvalidAmount = errors.New("amount must be greater than zero")
var ErrCurrencyMismatch = errors.New("not working with different currency")
var ErrInsufficientFunds = errors.New("insufficient funds")
