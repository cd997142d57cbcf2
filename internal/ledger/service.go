// Package ledger keeps a session-local view of the remote ledger service
// consistent with it: reads go through staleness-aware entity caches,
// writes go to the service and then reconcile the affected cache.
package ledger

import (
	"fmt"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/api"
	"github.com/Veraticus/pocket-ledger/internal/cache"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// mutationOp names one of the three write operations.
type mutationOp string

const (
	opCreate mutationOp = "create"
	opUpdate mutationOp = "update"
	opDelete mutationOp = "delete"
)

// reconcilePolicy selects how a cache is brought back in agreement with
// the ledger after a successful mutation.
type reconcilePolicy int

const (
	// reconcileRefetch invalidates the collection so the next read
	// fetches the canonical server state.
	reconcileRefetch reconcilePolicy = iota
	// reconcilePatch edits the cached collection directly, without a
	// network round-trip.
	reconcilePatch
)

// reconciliation is the per-operation policy table. Create and update
// refetch because the server may compute fields the client cannot
// predict (identities, defaults, ordering); a delete patches locally
// because removal introduces no new state the server would need to
// confirm.
var reconciliation = map[mutationOp]reconcilePolicy{
	opCreate: reconcileRefetch,
	opUpdate: reconcileRefetch,
	opDelete: reconcilePatch,
}

// MutationError reports a failed create, update, or delete. Label is the
// entity's human-readable name, recovered so failures can be reported
// with context.
type MutationError struct {
	Err   error
	Op    string
	Kind  string
	Label string
}

func (e *MutationError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("failed to %s %s %q: %v", e.Op, e.Kind, e.Label, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// ValidationError reports a transfer precondition that failed locally,
// before any network call. Reason is the user-visible message.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Service coordinates reads and writes for one session. Construct it
// once at session start and tear it down on logout; it is safe for
// concurrent use, though concurrent mutations of the same kind race and
// the last reconciliation wins.
type Service struct {
	api          *api.Client
	categories   *cache.Store[model.Category]
	wallets      *cache.Store[model.Wallet]
	transactions *cache.Store[model.Transaction]
}

// NewService creates a session service on top of an authenticated
// client. staleness <= 0 selects the default window.
func NewService(client *api.Client, staleness time.Duration) *Service {
	s := &Service{api: client}

	s.categories = cache.NewStore("categories", staleness, s.fetchCategories,
		func(c model.Category) string { return c.ID })
	s.wallets = cache.NewStore("wallets", staleness, s.fetchWallets,
		func(w model.Wallet) string { return w.ID })
	s.transactions = cache.NewStore("transactions", staleness, s.fetchTransactions,
		func(t model.Transaction) string { return t.ID })

	return s
}
