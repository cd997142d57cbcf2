package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// walletWire is the JSON shape the ledger service speaks for wallets.
type walletWire struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Type        int     `json:"type"`
	Currency    int     `json:"currency"`
	Balance     float64 `json:"balance"`
}

func encodeWallet(w model.Wallet) (*walletWire, error) {
	typeCode, err := w.Type.Code()
	if err != nil {
		return nil, err
	}

	currencyCode, err := w.Currency.Code()
	if err != nil {
		return nil, err
	}

	return &walletWire{
		Name:        w.Name,
		Type:        typeCode,
		Balance:     w.Balance,
		Currency:    currencyCode,
		Description: w.Description,
	}, nil
}

func (w walletWire) toModel() model.Wallet {
	return model.Wallet{
		ID:          w.ID,
		Name:        w.Name,
		Type:        model.WalletTypeFromCode(w.Type),
		Balance:     w.Balance,
		Currency:    model.CurrencyFromCode(w.Currency),
		Description: w.Description,
	}
}

func (s *Service) fetchWallets(ctx context.Context) ([]model.Wallet, error) {
	data, err := s.api.Do(ctx, http.MethodGet, "/wallets", nil)
	if err != nil {
		return nil, err
	}

	var wires []walletWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return nil, fmt.Errorf("failed to decode wallets: %w", err)
	}

	wallets := make([]model.Wallet, 0, len(wires))
	for _, w := range wires {
		wallets = append(wallets, w.toModel())
	}

	return wallets, nil
}

// Wallets returns the cached wallet collection, refetching when the
// staleness window has elapsed.
func (s *Service) Wallets(ctx context.Context) ([]model.Wallet, error) {
	return s.wallets.Get(ctx)
}

// CreateWallet creates a wallet on the ledger and invalidates the wallet
// cache.
func (s *Service) CreateWallet(ctx context.Context, w model.Wallet) (model.Wallet, error) {
	body, err := encodeWallet(w)
	if err != nil {
		return model.Wallet{}, &MutationError{Op: string(opCreate), Kind: "wallet", Label: w.Name, Err: err}
	}

	data, err := s.api.Do(ctx, http.MethodPost, "/wallets", body)
	if err != nil {
		return model.Wallet{}, &MutationError{Op: string(opCreate), Kind: "wallet", Label: w.Name, Err: err}
	}

	s.reconcileWallets(opCreate, "")

	created := w
	if len(data) > 0 {
		var wire walletWire
		if err := json.Unmarshal(data, &wire); err != nil {
			common.LogError(err, "Failed to decode create response", common.Fields{
				"kind":  "wallet",
				"label": w.Name,
			})
		} else {
			created = wire.toModel()
		}
	}

	return created, nil
}

// UpdateWallet replaces all non-identity fields of a wallet and
// invalidates the wallet cache.
func (s *Service) UpdateWallet(ctx context.Context, w model.Wallet) error {
	body, err := encodeWallet(w)
	if err != nil {
		return &MutationError{Op: string(opUpdate), Kind: "wallet", Label: w.Name, Err: err}
	}

	if _, err := s.api.Do(ctx, http.MethodPut, "/wallets/"+w.ID, body); err != nil {
		return &MutationError{Op: string(opUpdate), Kind: "wallet", Label: w.Name, Err: err}
	}

	s.reconcileWallets(opUpdate, "")
	return nil
}

// DeleteWallet deletes a wallet and patches the cache in place,
// returning the removed wallet's name for reporting.
func (s *Service) DeleteWallet(ctx context.Context, id string) (string, error) {
	var label string
	if w, ok := s.wallets.Lookup(id); ok {
		label = w.Name
	}

	if _, err := s.api.Do(ctx, http.MethodDelete, "/wallets/"+id, nil); err != nil {
		return "", &MutationError{Op: string(opDelete), Kind: "wallet", Label: label, Err: err}
	}

	s.reconcileWallets(opDelete, id)
	return label, nil
}

func (s *Service) reconcileWallets(op mutationOp, id string) {
	switch reconciliation[op] {
	case reconcileRefetch:
		s.wallets.Invalidate()
	case reconcilePatch:
		s.wallets.Remove(id)
	}
}
