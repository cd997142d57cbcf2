package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/api"
	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/config"
	"github.com/Veraticus/pocket-ledger/internal/sheets"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the ledger to Google Sheets",
		Long: `Write the current ledger view (transactions with category and wallet
names resolved) to a Google Sheet. Configure sheets.token_file and
optionally sheets.spreadsheet_id; without an ID a new spreadsheet is
created.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sheetsCfg, err := config.LoadSheetsConfig()
			if err != nil {
				return err
			}

			session, err := newSession()
			if err != nil {
				return err
			}

			transactions, err := session.Transactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}
			categories, err := session.Categories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}
			wallets, err := session.Wallets(ctx)
			if err != nil {
				return fmt.Errorf("failed to get wallets: %w", err)
			}

			writer, err := sheets.NewWriter(ctx,
				api.FileTokenSource(sheetsCfg.TokenFile),
				sheetsCfg.SpreadsheetID,
				sheetsCfg.SpreadsheetName)
			if err != nil {
				return err
			}

			spreadsheetID, err := writer.Write(ctx, transactions, categories, wallets)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to spreadsheet %s", len(transactions), spreadsheetID)))
			return nil
		},
	}
}
