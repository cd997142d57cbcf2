package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

func transferCmd() *cobra.Command {
	var (
		fromWallet     string
		toWallet       string
		amount         float64
		receivedAmount float64
		description    string
		notes          string
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer funds between wallets",
		Long: `Move funds from one wallet to another. The transfer is validated
locally against the cached wallet balances before anything is sent:
the wallets must differ, the amount must be positive and covered by the
source balance, and --received is required when the wallets hold
different currencies. Both balances are applied by the ledger service.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			session, err := newSession()
			if err != nil {
				return err
			}

			fromID, err := resolveWallet(ctx, session, fromWallet)
			if err != nil {
				return err
			}
			toID, err := resolveWallet(ctx, session, toWallet)
			if err != nil {
				return err
			}

			req := model.TransferRequest{
				FromWalletID:   fromID,
				ToWalletID:     toID,
				Amount:         amount,
				ReceivedAmount: receivedAmount,
				Description:    description,
				Notes:          notes,
			}

			if err := session.Transfer(ctx, req); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Transfer completed successfully!"))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromWallet, "from", "", "source wallet ID or name (required)")
	cmd.Flags().StringVar(&toWallet, "to", "", "destination wallet ID or name (required)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount in the source wallet's currency (required)")
	cmd.Flags().Float64Var(&receivedAmount, "received", 0, "amount received in the destination currency (required for cross-currency transfers)")
	cmd.Flags().StringVar(&description, "description", "", "transfer description")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
