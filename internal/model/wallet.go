package model

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/common"
)

// WalletType indicates the kind of account a wallet represents.
type WalletType string

const (
	// WalletTypeCash represents physical cash.
	WalletTypeCash WalletType = "Cash"
	// WalletTypeBank represents a bank account.
	WalletTypeBank WalletType = "Bank"
	// WalletTypeCredit represents a credit card or line of credit.
	WalletTypeCredit WalletType = "Credit"
	// WalletTypeInvestment represents an investment account.
	WalletTypeInvestment WalletType = "Investment"
	// WalletTypeCrypto represents a cryptocurrency wallet.
	WalletTypeCrypto WalletType = "Crypto"
)

var walletTypeCodes = map[WalletType]int{
	WalletTypeCash:       0,
	WalletTypeBank:       1,
	WalletTypeCredit:     2,
	WalletTypeInvestment: 3,
	WalletTypeCrypto:     4,
}

// Code returns the wire code for t, or an error wrapping
// common.ErrInvalidEnum when t is not a known wallet type.
func (t WalletType) Code() (int, error) {
	code, ok := walletTypeCodes[t]
	if !ok {
		return 0, fmt.Errorf("%w: wallet type %q", common.ErrInvalidEnum, string(t))
	}
	return code, nil
}

// WalletTypeFromCode maps a wire code back to its symbolic type.
// Unrecognized codes decode to WalletTypeCash.
func WalletTypeFromCode(code int) WalletType {
	for t, c := range walletTypeCodes {
		if c == code {
			return t
		}
	}
	return WalletTypeCash
}

// ParseWalletType parses user input (case-insensitive) into a WalletType.
func ParseWalletType(s string) (WalletType, error) {
	for t := range walletTypeCodes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: wallet type %q", common.ErrInvalidEnum, s)
}

// WalletTypes lists all wallet types in wire-code order.
func WalletTypes() []WalletType {
	return typesByCode(walletTypeCodes)
}

// Currency is the ISO currency a wallet is denominated in.
type Currency string

const (
	// CurrencyDKK is the Danish krone.
	CurrencyDKK Currency = "DKK"
	// CurrencyEUR is the euro.
	CurrencyEUR Currency = "EUR"
	// CurrencyARS is the Argentine peso.
	CurrencyARS Currency = "ARS"
	// CurrencyUSD is the United States dollar.
	CurrencyUSD Currency = "USD"
)

var currencyCodes = map[Currency]int{
	CurrencyDKK: 0,
	CurrencyEUR: 1,
	CurrencyARS: 2,
	CurrencyUSD: 3,
}

// Code returns the wire code for c, or an error wrapping
// common.ErrInvalidEnum when c is not a known currency.
func (c Currency) Code() (int, error) {
	code, ok := currencyCodes[c]
	if !ok {
		return 0, fmt.Errorf("%w: currency %q", common.ErrInvalidEnum, string(c))
	}
	return code, nil
}

// CurrencyFromCode maps a wire code back to its symbolic currency.
// Unrecognized codes decode to CurrencyUSD.
func CurrencyFromCode(code int) Currency {
	for c, n := range currencyCodes {
		if n == code {
			return c
		}
	}
	return CurrencyUSD
}

// ParseCurrency parses user input (case-insensitive) into a Currency.
func ParseCurrency(s string) (Currency, error) {
	for c := range currencyCodes {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: currency %q", common.ErrInvalidEnum, s)
}

// Currencies lists all currencies in wire-code order.
func Currencies() []Currency {
	return typesByCode(currencyCodes)
}

// Wallet represents an account holding funds. Balance is
// server-authoritative: the client never computes it, only displays it.
type Wallet struct {
	ID          string
	Name        string
	Type        WalletType
	Currency    Currency
	Description string
	Balance     float64
}
