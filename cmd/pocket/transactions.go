package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Manage transactions",
		Long:  `List, add, update, and delete ledger transactions.`,
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(updateTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			session, err := newSession()
			if err != nil {
				return err
			}

			transactions, err := session.Transactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}

			if len(transactions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found. Use 'pocket transactions add' to create one."))
				return nil
			}

			// Resolve references so the listing shows names, not raw IDs.
			categoryNames := map[string]string{}
			if categories, err := session.Categories(ctx); err == nil {
				for _, c := range categories {
					categoryNames[c.ID] = c.Name
				}
			}
			walletNames := map[string]string{}
			if wallets, err := session.Wallets(ctx); err == nil {
				for _, w := range wallets {
					walletNames[w.ID] = w.Name
				}
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Description"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Wallet"))

			for _, t := range transactions {
				category := categoryNames[t.CategoryID]
				if category == "" {
					category = t.CategoryID
				}
				wallet := walletNames[t.WalletID]
				if wallet == "" {
					wallet = t.WalletID
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\t%s\n",
					t.ID, t.Date.Format("2006-01-02"), t.Description, t.Amount, t.Type, category, wallet)
			}

			return nil
		},
	}
}

func addTransactionCmd() *cobra.Command {
	var (
		txType     string
		txAmount   float64
		txDate     string
		txNotes    string
		txCategory string
		txWallet   string
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a new transaction",
		Long: `Create a transaction on the ledger. --category and --wallet accept either
an identifier or a name; names are resolved against the cached collections
so only existing entities can be referenced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			parsedType, err := model.ParseTransactionType(txType)
			if err != nil {
				return fmt.Errorf("unknown transaction type %q (valid: %s)", txType, joinTransactionTypes())
			}

			date := time.Now()
			if txDate != "" {
				date, err = time.Parse("2006-01-02", txDate)
				if err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", txDate, err)
				}
			}

			session, err := newSession()
			if err != nil {
				return err
			}

			categoryID, err := resolveCategory(ctx, session, txCategory)
			if err != nil {
				return err
			}
			walletID, err := resolveWallet(ctx, session, txWallet)
			if err != nil {
				return err
			}

			created, err := session.CreateTransaction(ctx, model.Transaction{
				Description: args[0],
				Amount:      txAmount,
				Type:        parsedType,
				Date:        date,
				Notes:       txNotes,
				CategoryID:  categoryID,
				WalletID:    walletID,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created transaction %q", created.Description)))
			return nil
		},
	}

	cmd.Flags().StringVar(&txType, "type", string(model.TransactionTypeExpense), "transaction type ("+joinTransactionTypes()+")")
	cmd.Flags().Float64Var(&txAmount, "amount", 0, "transaction amount (required)")
	cmd.Flags().StringVar(&txDate, "date", "", "transaction date, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&txNotes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&txCategory, "category", "", "category ID or name (required)")
	cmd.Flags().StringVar(&txWallet, "wallet", "", "wallet ID or name (required)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("wallet")

	return cmd
}

func updateTransactionCmd() *cobra.Command {
	var (
		txDescription string
		txType        string
		txAmount      float64
		txDate        string
		txNotes       string
		txCategory    string
		txWallet      string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a transaction",
		Long:  `Replace the fields of an existing transaction. Unspecified flags keep the cached value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			session, err := newSession()
			if err != nil {
				return err
			}

			transactions, err := session.Transactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}

			var current *model.Transaction
			for i := range transactions {
				if transactions[i].ID == id {
					current = &transactions[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("transaction with ID %s not found", id)
			}

			updated := *current
			if txDescription != "" {
				updated.Description = txDescription
			}
			if txType != "" {
				parsedType, err := model.ParseTransactionType(txType)
				if err != nil {
					return fmt.Errorf("unknown transaction type %q (valid: %s)", txType, joinTransactionTypes())
				}
				updated.Type = parsedType
			}
			if cmd.Flags().Changed("amount") {
				updated.Amount = txAmount
			}
			if txDate != "" {
				date, err := time.Parse("2006-01-02", txDate)
				if err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", txDate, err)
				}
				updated.Date = date
			}
			if txNotes != "" {
				updated.Notes = txNotes
			}
			if txCategory != "" {
				categoryID, err := resolveCategory(ctx, session, txCategory)
				if err != nil {
					return err
				}
				updated.CategoryID = categoryID
			}
			if txWallet != "" {
				walletID, err := resolveWallet(ctx, session, txWallet)
				if err != nil {
					return err
				}
				updated.WalletID = walletID
			}

			if err := session.UpdateTransaction(ctx, updated); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated transaction %q", updated.Description)))
			return nil
		},
	}

	cmd.Flags().StringVar(&txDescription, "description", "", "new description")
	cmd.Flags().StringVar(&txType, "type", "", "new transaction type ("+joinTransactionTypes()+")")
	cmd.Flags().Float64Var(&txAmount, "amount", 0, "new amount")
	cmd.Flags().StringVar(&txDate, "date", "", "new date, YYYY-MM-DD")
	cmd.Flags().StringVar(&txNotes, "notes", "", "new notes")
	cmd.Flags().StringVar(&txCategory, "category", "", "new category ID or name")
	cmd.Flags().StringVar(&txWallet, "wallet", "", "new wallet ID or name")

	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			session, err := newSession()
			if err != nil {
				return err
			}

			if _, err := session.Transactions(ctx); err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}

			label, err := session.DeleteTransaction(ctx, args[0])
			if err != nil {
				return err
			}

			if label == "" {
				label = args[0]
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted transaction %q", label)))
			return nil
		},
	}
}

func joinTransactionTypes() string {
	types := model.TransactionTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
