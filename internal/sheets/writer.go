// Package sheets exports the cached ledger view to a Google Sheet.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Writer exports ledger data to Google Sheets.
type Writer struct {
	service         *sheets.Service
	spreadsheetID   string
	spreadsheetName string
}

// NewWriter creates a Sheets writer authenticated by the given token
// source. When spreadsheetID is empty a new spreadsheet is created on
// the first export.
func NewWriter(ctx context.Context, tokens oauth2.TokenSource, spreadsheetID, spreadsheetName string) (*Writer, error) {
	srv, err := sheets.NewService(ctx, option.WithTokenSource(tokens))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		service:         srv,
		spreadsheetID:   spreadsheetID,
		spreadsheetName: spreadsheetName,
	}, nil
}

// Write replaces the spreadsheet contents with the given ledger view
// and returns the spreadsheet ID written to.
func (w *Writer) Write(ctx context.Context, transactions []model.Transaction, categories []model.Category, wallets []model.Wallet) (string, error) {
	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if _, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to clear sheet: %w", err)
	}

	values := BuildRows(transactions, categories, wallets)
	valueRange := &sheets.ValueRange{Values: values}
	_, err = w.service.Spreadsheets.Values.Update(spreadsheetID, "A1", valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to write ledger data: %w", err)
	}

	slog.Info("Exported ledger to spreadsheet",
		"spreadsheet_id", spreadsheetID,
		"rows", len(values))

	return spreadsheetID, nil
}

func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.spreadsheetID != "" {
		if _, err := w.service.Spreadsheets.Get(w.spreadsheetID).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.spreadsheetID, err)
		}
		return w.spreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: w.spreadsheetName,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: "Transactions",
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	slog.Info("Created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	w.spreadsheetID = created.SpreadsheetId
	return created.SpreadsheetId, nil
}

// BuildRows renders transactions into sheet rows, newest first, with
// category and wallet references resolved to their names.
func BuildRows(transactions []model.Transaction, categories []model.Category, wallets []model.Wallet) [][]any {
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}
	walletNames := make(map[string]string, len(wallets))
	for _, w := range wallets {
		walletNames[w.ID] = w.Name
	}

	sorted := make([]model.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	values := make([][]any, 0, len(sorted)+1)
	values = append(values, []any{"Date", "Description", "Amount", "Type", "Category", "Wallet", "Notes"})

	for _, t := range sorted {
		category := categoryNames[t.CategoryID]
		if category == "" {
			category = t.CategoryID
		}
		wallet := walletNames[t.WalletID]
		if wallet == "" {
			wallet = t.WalletID
		}

		values = append(values, []any{
			t.Date.Format("2006-01-02"),
			t.Description,
			t.Amount,
			string(t.Type),
			category,
			wallet,
			t.Notes,
		})
	}

	return values
}
