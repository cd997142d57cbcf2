package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// transactionWire is the JSON shape the ledger service speaks for
// transactions. Dates travel as RFC 3339 text.
type transactionWire struct {
	ID          string    `json:"id,omitempty"`
	Description string    `json:"description"`
	Notes       string    `json:"notes,omitempty"`
	CategoryID  string    `json:"categoryId"`
	WalletID    string    `json:"walletId"`
	Date        time.Time `json:"date"`
	Type        int       `json:"type"`
	Amount      float64   `json:"amount"`
}

func encodeTransaction(t model.Transaction) (*transactionWire, error) {
	code, err := t.Type.Code()
	if err != nil {
		return nil, err
	}

	return &transactionWire{
		Description: t.Description,
		Amount:      t.Amount,
		Type:        code,
		Date:        t.Date,
		Notes:       t.Notes,
		CategoryID:  t.CategoryID,
		WalletID:    t.WalletID,
	}, nil
}

func (w transactionWire) toModel() model.Transaction {
	return model.Transaction{
		ID:          w.ID,
		Description: w.Description,
		Amount:      w.Amount,
		Type:        model.TransactionTypeFromCode(w.Type),
		Date:        w.Date,
		Notes:       w.Notes,
		CategoryID:  w.CategoryID,
		WalletID:    w.WalletID,
	}
}

func (s *Service) fetchTransactions(ctx context.Context) ([]model.Transaction, error) {
	data, err := s.api.Do(ctx, http.MethodGet, "/transactions", nil)
	if err != nil {
		return nil, err
	}

	var wires []transactionWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	transactions := make([]model.Transaction, 0, len(wires))
	for _, w := range wires {
		transactions = append(transactions, w.toModel())
	}

	return transactions, nil
}

// Transactions returns the cached transaction collection, refetching
// when the staleness window has elapsed.
func (s *Service) Transactions(ctx context.Context) ([]model.Transaction, error) {
	return s.transactions.Get(ctx)
}

// CreateTransaction creates a transaction on the ledger and invalidates
// the transaction cache. CategoryID and WalletID must reference existing
// entities; the service submits them as given and leaves referential
// integrity to the server.
func (s *Service) CreateTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	body, err := encodeTransaction(t)
	if err != nil {
		return model.Transaction{}, &MutationError{Op: string(opCreate), Kind: "transaction", Label: t.Description, Err: err}
	}

	data, err := s.api.Do(ctx, http.MethodPost, "/transactions", body)
	if err != nil {
		return model.Transaction{}, &MutationError{Op: string(opCreate), Kind: "transaction", Label: t.Description, Err: err}
	}

	s.reconcileTransactions(opCreate, "")

	created := t
	if len(data) > 0 {
		var wire transactionWire
		if err := json.Unmarshal(data, &wire); err != nil {
			common.LogError(err, "Failed to decode create response", common.Fields{
				"kind":  "transaction",
				"label": t.Description,
			})
		} else {
			created = wire.toModel()
		}
	}

	return created, nil
}

// UpdateTransaction replaces all non-identity fields of a transaction
// and invalidates the transaction cache.
func (s *Service) UpdateTransaction(ctx context.Context, t model.Transaction) error {
	body, err := encodeTransaction(t)
	if err != nil {
		return &MutationError{Op: string(opUpdate), Kind: "transaction", Label: t.Description, Err: err}
	}

	if _, err := s.api.Do(ctx, http.MethodPut, "/transactions/"+t.ID, body); err != nil {
		return &MutationError{Op: string(opUpdate), Kind: "transaction", Label: t.Description, Err: err}
	}

	s.reconcileTransactions(opUpdate, "")
	return nil
}

// DeleteTransaction deletes a transaction and patches the cache in
// place, returning the removed transaction's description for reporting.
func (s *Service) DeleteTransaction(ctx context.Context, id string) (string, error) {
	var label string
	if t, ok := s.transactions.Lookup(id); ok {
		label = t.Description
	}

	if _, err := s.api.Do(ctx, http.MethodDelete, "/transactions/"+id, nil); err != nil {
		return "", &MutationError{Op: string(opDelete), Kind: "transaction", Label: label, Err: err}
	}

	s.reconcileTransactions(opDelete, id)
	return label, nil
}

func (s *Service) reconcileTransactions(op mutationOp, id string) {
	switch reconciliation[op] {
	case reconcileRefetch:
		s.transactions.Invalidate()
	case reconcilePatch:
		s.transactions.Remove(id)
	}
}
