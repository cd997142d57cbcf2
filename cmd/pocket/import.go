package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/ofx"
)

func importCmd() *cobra.Command {
	var (
		importCategory string
		importWallet   string
		dryRun         bool
	)

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) statements exported from
your bank. Debits become Expense transactions and credits become Income
transactions, all filed under the given category and wallet.

Examples:
  # Import a single statement into a wallet
  pocket import ~/Downloads/chase_jan_2024.qfx --wallet Checking --category Uncategorized

  # Preview without creating anything
  pocket import ~/Downloads/*.qfx --wallet Checking --category Uncategorized --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Expand globs and collect all files
			var allFiles []string
			for _, pattern := range args {
				matches, err := filepath.Glob(pattern)
				if err != nil {
					return fmt.Errorf("invalid pattern %s: %w", pattern, err)
				}
				if len(matches) == 0 {
					if _, err := os.Stat(pattern); err == nil {
						allFiles = append(allFiles, pattern)
					} else {
						slog.Warn("No files found matching pattern", "pattern", pattern)
					}
				} else {
					allFiles = append(allFiles, matches...)
				}
			}
			if len(allFiles) == 0 {
				return fmt.Errorf("no OFX files found")
			}

			session, err := newSession()
			if err != nil {
				return err
			}

			categoryID, err := resolveCategory(ctx, session, importCategory)
			if err != nil {
				return err
			}
			walletID, err := resolveWallet(ctx, session, importWallet)
			if err != nil {
				return err
			}

			parser := ofx.NewParser()
			var drafts []draftWithSource
			for _, file := range allFiles {
				f, err := os.Open(file) // #nosec G304
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", file, err)
				}

				parsed, err := parser.ParseFile(ctx, f)
				_ = f.Close()
				if err != nil {
					return fmt.Errorf("failed to parse %s: %w", file, err)
				}

				for _, draft := range parsed {
					draft.CategoryID = categoryID
					draft.WalletID = walletID
					drafts = append(drafts, draftWithSource{tx: draft, file: file})
				}
			}

			if len(drafts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found in the given files."))
				return nil
			}

			if dryRun {
				fmt.Println(cli.FormatInfo(fmt.Sprintf("Would import %d transactions (dry run)", len(drafts))))
				for _, d := range drafts {
					fmt.Printf("  %s  %-10s %8.2f  %s\n",
						d.tx.Date.Format("2006-01-02"), d.tx.Type, d.tx.Amount, d.tx.Description)
				}
				return nil
			}

			bar := progressbar.NewOptions(len(drafts),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Importing transactions..."),
			)

			var created, failed int
			for _, d := range drafts {
				if _, err := session.CreateTransaction(ctx, d.tx); err != nil {
					failed++
					common.LogError(err, "Failed to import transaction", common.Fields{
						"description": d.tx.Description,
						"file":        d.file,
					})
				} else {
					created++
				}
				_ = bar.Add(1)
			}
			_ = bar.Finish()
			fmt.Println()

			if failed > 0 {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("Imported %d transactions, %d failed", created, failed)))
				return nil
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions", created)))
			return nil
		},
	}

	cmd.Flags().StringVar(&importCategory, "category", "", "category ID or name for imported transactions (required)")
	cmd.Flags().StringVar(&importWallet, "wallet", "", "wallet ID or name for imported transactions (required)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview import without creating anything")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("wallet")

	return cmd
}

type draftWithSource struct {
	file string
	tx   model.Transaction
}
