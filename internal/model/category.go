// Package model defines the ledger entities and the enum families they use,
// together with the wire-code tables the remote ledger service speaks.
package model

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/common"
)

// CategoryType indicates whether a category tracks expenses, income, or investments.
type CategoryType string

const (
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "Expense"
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "Income"
	// CategoryTypeInvestment represents categories for investment transactions.
	CategoryTypeInvestment CategoryType = "Investment"
)

// categoryTypeCodes is the bidirectional wire-code table for CategoryType.
// Both directions derive from this single table so a new variant cannot be
// added to one direction only.
var categoryTypeCodes = map[CategoryType]int{
	CategoryTypeExpense:    0,
	CategoryTypeIncome:     1,
	CategoryTypeInvestment: 2,
}

// Code returns the wire code for t, or an error wrapping
// common.ErrInvalidEnum when t is not a known category type.
func (t CategoryType) Code() (int, error) {
	code, ok := categoryTypeCodes[t]
	if !ok {
		return 0, fmt.Errorf("%w: category type %q", common.ErrInvalidEnum, string(t))
	}
	return code, nil
}

// CategoryTypeFromCode maps a wire code back to its symbolic type.
// Unrecognized codes decode to CategoryTypeExpense.
func CategoryTypeFromCode(code int) CategoryType {
	for t, c := range categoryTypeCodes {
		if c == code {
			return t
		}
	}
	return CategoryTypeExpense
}

// ParseCategoryType parses user input (case-insensitive) into a CategoryType.
func ParseCategoryType(s string) (CategoryType, error) {
	for t := range categoryTypeCodes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: category type %q", common.ErrInvalidEnum, s)
}

// CategoryTypes lists all category types in wire-code order.
func CategoryTypes() []CategoryType {
	return typesByCode(categoryTypeCodes)
}

// Category represents an expense, income, or investment category.
type Category struct {
	ID    string
	Name  string
	Type  CategoryType
	Color string
	Icon  string
}
