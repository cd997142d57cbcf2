package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/common"
)

// TransactionType indicates the direction of a transaction.
type TransactionType string

const (
	// TransactionTypeExpense represents money leaving a wallet.
	TransactionTypeExpense TransactionType = "Expense"
	// TransactionTypeIncome represents money entering a wallet.
	TransactionTypeIncome TransactionType = "Income"
	// TransactionTypeInvestment represents money moved into an investment.
	TransactionTypeInvestment TransactionType = "Investment"
)

var transactionTypeCodes = map[TransactionType]int{
	TransactionTypeExpense:    0,
	TransactionTypeIncome:     1,
	TransactionTypeInvestment: 2,
}

// Code returns the wire code for t, or an error wrapping
// common.ErrInvalidEnum when t is not a known transaction type.
func (t TransactionType) Code() (int, error) {
	code, ok := transactionTypeCodes[t]
	if !ok {
		return 0, fmt.Errorf("%w: transaction type %q", common.ErrInvalidEnum, string(t))
	}
	return code, nil
}

// TransactionTypeFromCode maps a wire code back to its symbolic type.
// Unrecognized codes decode to TransactionTypeExpense.
func TransactionTypeFromCode(code int) TransactionType {
	for t, c := range transactionTypeCodes {
		if c == code {
			return t
		}
	}
	return TransactionTypeExpense
}

// ParseTransactionType parses user input (case-insensitive) into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	for t := range transactionTypeCodes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: transaction type %q", common.ErrInvalidEnum, s)
}

// TransactionTypes lists all transaction types in wire-code order.
func TransactionTypes() []TransactionType {
	return typesByCode(transactionTypeCodes)
}

// Transaction represents a single ledger movement against one wallet,
// classified under one category. CategoryID and WalletID are foreign
// references owned by their respective collections; callers are expected
// to offer only identifiers that exist at submission time.
type Transaction struct {
	Date        time.Time
	ID          string
	Description string
	Notes       string
	CategoryID  string
	WalletID    string
	Type        TransactionType
	Amount      float64
}
