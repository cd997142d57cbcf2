package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/common"
)

func TestCategoryTypeRoundTrip(t *testing.T) {
	for _, ct := range CategoryTypes() {
		code, err := ct.Code()
		require.NoError(t, err, "encoding %q", ct)
		assert.Equal(t, ct, CategoryTypeFromCode(code))
	}
}

func TestTransactionTypeRoundTrip(t *testing.T) {
	for _, tt := range TransactionTypes() {
		code, err := tt.Code()
		require.NoError(t, err, "encoding %q", tt)
		assert.Equal(t, tt, TransactionTypeFromCode(code))
	}
}

func TestWalletTypeRoundTrip(t *testing.T) {
	for _, wt := range WalletTypes() {
		code, err := wt.Code()
		require.NoError(t, err, "encoding %q", wt)
		assert.Equal(t, wt, WalletTypeFromCode(code))
	}
}

func TestCurrencyRoundTrip(t *testing.T) {
	for _, c := range Currencies() {
		code, err := c.Code()
		require.NoError(t, err, "encoding %q", c)
		assert.Equal(t, c, CurrencyFromCode(code))
	}
}

func TestDecodeUnknownCodesFallsBackToDefault(t *testing.T) {
	for _, code := range []int{-1, 5, 42, 1000} {
		assert.Equal(t, CategoryTypeExpense, CategoryTypeFromCode(code), "category code %d", code)
		assert.Equal(t, TransactionTypeExpense, TransactionTypeFromCode(code), "transaction code %d", code)
		assert.Equal(t, CurrencyUSD, CurrencyFromCode(code), "currency code %d", code)
	}
	// Wallet codes 0-4 are all valid; only out-of-range codes default.
	for _, code := range []int{-1, 5, 42} {
		assert.Equal(t, WalletTypeCash, WalletTypeFromCode(code), "wallet code %d", code)
	}
}

func TestEncodeInvalidValueFailsLoudly(t *testing.T) {
	tests := []struct {
		name   string
		encode func() (int, error)
	}{
		{name: "category type", encode: CategoryType("Bogus").Code},
		{name: "transaction type", encode: TransactionType("bogus").Code},
		{name: "wallet type", encode: WalletType("Checking").Code},
		{name: "currency", encode: Currency("GBP").Code},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.encode()
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidEnum)
		})
	}
}

func TestParseIsCaseInsensitive(t *testing.T) {
	ct, err := ParseCategoryType("income")
	require.NoError(t, err)
	assert.Equal(t, CategoryTypeIncome, ct)

	wt, err := ParseWalletType("CRYPTO")
	require.NoError(t, err)
	assert.Equal(t, WalletTypeCrypto, wt)

	c, err := ParseCurrency("eur")
	require.NoError(t, err)
	assert.Equal(t, CurrencyEUR, c)

	tt, err := ParseTransactionType("Investment")
	require.NoError(t, err)
	assert.Equal(t, TransactionTypeInvestment, tt)
}

func TestParseRejectsUnknownValues(t *testing.T) {
	_, err := ParseCategoryType("savings")
	assert.ErrorIs(t, err, common.ErrInvalidEnum)

	_, err = ParseCurrency("")
	assert.ErrorIs(t, err, common.ErrInvalidEnum)
}

func TestTypesListedInWireCodeOrder(t *testing.T) {
	assert.Equal(t, []CategoryType{CategoryTypeExpense, CategoryTypeIncome, CategoryTypeInvestment}, CategoryTypes())
	assert.Equal(t, []WalletType{WalletTypeCash, WalletTypeBank, WalletTypeCredit, WalletTypeInvestment, WalletTypeCrypto}, WalletTypes())
	assert.Equal(t, []Currency{CurrencyDKK, CurrencyEUR, CurrencyARS, CurrencyUSD}, Currencies())
}
