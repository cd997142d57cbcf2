package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

func walletsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallets",
		Short: "Manage wallets",
		Long:  `List, add, update, and delete wallets. Balances are owned by the ledger service and shown as last fetched.`,
	}

	cmd.AddCommand(listWalletsCmd())
	cmd.AddCommand(addWalletCmd())
	cmd.AddCommand(updateWalletCmd())
	cmd.AddCommand(deleteWalletCmd())

	return cmd
}

func listWalletsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all wallets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			session, err := newSession()
			if err != nil {
				return err
			}

			wallets, err := session.Wallets(ctx)
			if err != nil {
				return fmt.Errorf("failed to get wallets: %w", err)
			}

			if len(wallets) == 0 {
				fmt.Println(cli.InfoStyle.Render("No wallets found. Use 'pocket wallets add' to create one."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render(cli.WalletIcon + " Wallets"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Balance"),
				cli.HeaderStyle.Render("Currency"),
				cli.HeaderStyle.Render("Description"))

			for _, wallet := range wallets {
				desc := wallet.Description
				if desc == "" {
					desc = cli.SubtleStyle.Render("(none)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\n",
					wallet.ID, wallet.Name, wallet.Type, wallet.Balance, wallet.Currency, desc)
			}

			return nil
		},
	}
}

func addWalletCmd() *cobra.Command {
	var (
		walletType        string
		walletCurrency    string
		walletBalance     float64
		walletDescription string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			parsedType, err := model.ParseWalletType(walletType)
			if err != nil {
				return fmt.Errorf("unknown wallet type %q (valid: %s)", walletType, joinWalletTypes())
			}
			parsedCurrency, err := model.ParseCurrency(walletCurrency)
			if err != nil {
				return fmt.Errorf("unknown currency %q (valid: %s)", walletCurrency, joinCurrencies())
			}

			session, err := newSession()
			if err != nil {
				return err
			}

			created, err := session.CreateWallet(ctx, model.Wallet{
				Name:        args[0],
				Type:        parsedType,
				Balance:     walletBalance,
				Currency:    parsedCurrency,
				Description: walletDescription,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created wallet %q", created.Name)))
			if created.ID != "" {
				fmt.Println(cli.SubtleStyle.Render("  ID: " + created.ID))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&walletType, "type", string(model.WalletTypeCash), "wallet type ("+joinWalletTypes()+")")
	cmd.Flags().StringVar(&walletCurrency, "currency", string(model.CurrencyUSD), "wallet currency ("+joinCurrencies()+")")
	cmd.Flags().Float64Var(&walletBalance, "balance", 0, "opening balance")
	cmd.Flags().StringVar(&walletDescription, "description", "", "wallet description")

	return cmd
}

func updateWalletCmd() *cobra.Command {
	var (
		walletName        string
		walletType        string
		walletCurrency    string
		walletDescription string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a wallet",
		Long:  `Replace the fields of an existing wallet. Unspecified flags keep the cached value; the balance stays server-owned.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			session, err := newSession()
			if err != nil {
				return err
			}

			wallets, err := session.Wallets(ctx)
			if err != nil {
				return fmt.Errorf("failed to get wallets: %w", err)
			}

			var current *model.Wallet
			for i := range wallets {
				if wallets[i].ID == id {
					current = &wallets[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("wallet with ID %s not found", id)
			}

			updated := *current
			if walletName != "" {
				updated.Name = walletName
			}
			if walletType != "" {
				parsedType, err := model.ParseWalletType(walletType)
				if err != nil {
					return fmt.Errorf("unknown wallet type %q (valid: %s)", walletType, joinWalletTypes())
				}
				updated.Type = parsedType
			}
			if walletCurrency != "" {
				parsedCurrency, err := model.ParseCurrency(walletCurrency)
				if err != nil {
					return fmt.Errorf("unknown currency %q (valid: %s)", walletCurrency, joinCurrencies())
				}
				updated.Currency = parsedCurrency
			}
			if walletDescription != "" {
				updated.Description = walletDescription
			}

			if err := session.UpdateWallet(ctx, updated); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated wallet %q", updated.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&walletName, "name", "", "new wallet name")
	cmd.Flags().StringVar(&walletType, "type", "", "new wallet type ("+joinWalletTypes()+")")
	cmd.Flags().StringVar(&walletCurrency, "currency", "", "new wallet currency ("+joinCurrencies()+")")
	cmd.Flags().StringVar(&walletDescription, "description", "", "new wallet description")

	return cmd
}

func deleteWalletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			session, err := newSession()
			if err != nil {
				return err
			}

			if _, err := session.Wallets(ctx); err != nil {
				return fmt.Errorf("failed to get wallets: %w", err)
			}

			label, err := session.DeleteWallet(ctx, args[0])
			if err != nil {
				return err
			}

			if label == "" {
				label = args[0]
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted wallet %q", label)))
			return nil
		},
	}
}

func joinWalletTypes() string {
	types := model.WalletTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func joinCurrencies() string {
	currencies := model.Currencies()
	names := make([]string, len(currencies))
	for i, c := range currencies {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
