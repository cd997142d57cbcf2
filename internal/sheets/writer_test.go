package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

func TestBuildRows(t *testing.T) {
	categories := []model.Category{
		{ID: "c1", Name: "Groceries", Type: model.CategoryTypeExpense},
		{ID: "c2", Name: "Salary", Type: model.CategoryTypeIncome},
	}
	wallets := []model.Wallet{
		{ID: "w1", Name: "Checking", Type: model.WalletTypeBank, Currency: model.CurrencyUSD},
	}
	transactions := []model.Transaction{
		{
			ID:          "t1",
			Description: "Whole Foods",
			Amount:      82.45,
			Type:        model.TransactionTypeExpense,
			Date:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			CategoryID:  "c1",
			WalletID:    "w1",
			Notes:       "weekly run",
		},
		{
			ID:          "t2",
			Description: "January payroll",
			Amount:      2500,
			Type:        model.TransactionTypeIncome,
			Date:        time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			CategoryID:  "c2",
			WalletID:    "w1",
		},
	}

	rows := BuildRows(transactions, categories, wallets)
	require.Len(t, rows, 3)

	assert.Equal(t, []any{"Date", "Description", "Amount", "Type", "Category", "Wallet", "Notes"}, rows[0])

	// Newest first: payroll before groceries.
	assert.Equal(t, "2024-01-31", rows[1][0])
	assert.Equal(t, "January payroll", rows[1][1])
	assert.Equal(t, "Income", rows[1][3])
	assert.Equal(t, "Salary", rows[1][4])
	assert.Equal(t, "Checking", rows[1][5])

	assert.Equal(t, "2024-01-10", rows[2][0])
	assert.Equal(t, 82.45, rows[2][2])
	assert.Equal(t, "Groceries", rows[2][4])
	assert.Equal(t, "weekly run", rows[2][6])
}

func TestBuildRowsFallsBackToRawIDs(t *testing.T) {
	transactions := []model.Transaction{
		{
			ID:          "t1",
			Description: "Mystery charge",
			Amount:      10,
			Type:        model.TransactionTypeExpense,
			Date:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			CategoryID:  "c-unknown",
			WalletID:    "w-unknown",
		},
	}

	rows := BuildRows(transactions, nil, nil)
	require.Len(t, rows, 2)

	assert.Equal(t, "c-unknown", rows[1][4])
	assert.Equal(t, "w-unknown", rows[1][5])
}

func TestBuildRowsEmptyLedger(t *testing.T) {
	rows := BuildRows(nil, nil, nil)
	require.Len(t, rows, 1, "an empty ledger still writes the header row")
}
