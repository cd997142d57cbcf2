package ledger

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Veraticus/pocket-ledger/internal/api"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// transferWire is the JSON shape of a transfer command. ReceivedAmount
// is only sent when the two wallets hold different currencies.
type transferWire struct {
	ReceivedAmount *float64 `json:"receivedAmount,omitempty"`
	FromWalletID   string   `json:"fromWalletId"`
	ToWalletID     string   `json:"toWalletId"`
	Description    string   `json:"description,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	Amount         float64  `json:"amount"`
}

// ValidateTransfer checks a proposed transfer against the current wallet
// collection. Rules are evaluated in order and the first failure is
// reported; later rules are not evaluated. A nil return means the
// request may be submitted.
func ValidateTransfer(req model.TransferRequest, wallets []model.Wallet) error {
	if req.FromWalletID == "" || req.ToWalletID == "" {
		return &ValidationError{Reason: "Both wallets are required."}
	}
	if req.FromWalletID == req.ToWalletID {
		return &ValidationError{Reason: "Cannot transfer to the same wallet."}
	}
	if req.Amount <= 0 {
		return &ValidationError{Reason: "Amount must be greater than zero."}
	}

	from, ok := findWallet(wallets, req.FromWalletID)
	if !ok {
		return &ValidationError{Reason: "Select a source wallet."}
	}
	if from.Balance < req.Amount {
		return &ValidationError{
			Reason: fmt.Sprintf("Insufficient balance in source wallet. Available: %g", from.Balance),
		}
	}

	if to, ok := findWallet(wallets, req.ToWalletID); !ok || to.Currency != from.Currency {
		if req.ReceivedAmount <= 0 {
			return &ValidationError{
				Reason: "Received amount is required and must be greater than zero for different currencies.",
			}
		}
	}

	return nil
}

// Transfer validates and executes an inter-wallet transfer. The wallet
// collection is read through the cache (refetching when stale) so the
// balance check sees the last known server state. On success the wallet
// cache is invalidated: both balances changed server-side and are never
// computed locally. On remote failure the service's error text is
// surfaced verbatim as the user-visible reason.
func (s *Service) Transfer(ctx context.Context, req model.TransferRequest) error {
	wallets, err := s.wallets.Get(ctx)
	if err != nil {
		return err
	}

	if err := ValidateTransfer(req, wallets); err != nil {
		return err
	}

	from, _ := findWallet(wallets, req.FromWalletID)
	body := &transferWire{
		FromWalletID: req.FromWalletID,
		ToWalletID:   req.ToWalletID,
		Amount:       req.Amount,
		Description:  req.Description,
		Notes:        req.Notes,
	}
	if to, ok := findWallet(wallets, req.ToWalletID); !ok || to.Currency != from.Currency {
		received := req.ReceivedAmount
		body.ReceivedAmount = &received
	}

	if _, err := s.api.Do(ctx, http.MethodPost, "/transfers", body); err != nil {
		var remoteErr *api.RemoteError
		if errors.As(err, &remoteErr) && remoteErr.Body != "" {
			return common.NewUserError(remoteErr.Body, nil)
		}
		return err
	}

	s.wallets.Invalidate()
	return nil
}

func findWallet(wallets []model.Wallet, id string) (model.Wallet, bool) {
	for _, w := range wallets {
		if w.ID == id {
			return w, true
		}
	}
	return model.Wallet{}, false
}
