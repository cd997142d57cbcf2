package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/api"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// fakeLedger is an in-memory stand-in for the remote ledger service. It
// counts requests per method+path so tests can assert exactly when the
// caches go back to the network.
type fakeLedger struct {
	t *testing.T

	mu       sync.Mutex
	counts   map[string]int
	handlers map[string]http.HandlerFunc

	server *httptest.Server
}

func newFakeLedger(t *testing.T) *fakeLedger {
	f := &fakeLedger{
		t:        t,
		counts:   make(map[string]int),
		handlers: make(map[string]http.HandlerFunc),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeLedger) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.counts[key]++
	handler, ok := f.handlers[key]
	f.mu.Unlock()

	if !ok {
		f.t.Errorf("unexpected request: %s", key)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	handler(w, r)
}

func (f *fakeLedger) handle(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[method+" "+path] = h
}

func (f *fakeLedger) respondJSON(method, path string, body any) {
	f.handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(body)
	})
}

func (f *fakeLedger) respondEmpty(method, path string) {
	f.handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func (f *fakeLedger) respondError(method, path string, status int, body string) {
	f.handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func (f *fakeLedger) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[method+" "+path]
}

func (f *fakeLedger) service() *Service {
	client := api.New(f.server.URL, api.StaticTokenSource("test-token"))
	return NewService(client, time.Minute)
}

func serverCategories() []categoryWire {
	return []categoryWire{
		{ID: "c1", Name: "Groceries", Type: 0, Color: "#FF6B6B", Icon: "ShoppingCart"},
		{ID: "c2", Name: "Salary", Type: 1, Color: "#4ECDC4", Icon: "Briefcase"},
	}
}

func serverWallets() []walletWire {
	return []walletWire{
		{ID: "w-usd", Name: "Checking", Type: 1, Currency: 3, Balance: 500},
		{ID: "w-eur", Name: "Travel", Type: 0, Currency: 1, Balance: 200},
	}
}

func TestReadsAreServedFromCacheWithinWindow(t *testing.T) {
	ledger := newFakeLedger(t)
	ledger.respondJSON(http.MethodGet, "/categories", serverCategories())

	svc := ledger.service()
	ctx := context.Background()

	first, err := svc.Categories(ctx)
	require.NoError(t, err)
	second, err := svc.Categories(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, ledger.count(http.MethodGet, "/categories"))

	require.Len(t, first, 2)
	assert.Equal(t, model.CategoryTypeExpense, first[0].Type)
	assert.Equal(t, model.CategoryTypeIncome, first[1].Type)
}

func TestCreateInvalidatesAndReturnsServerRecord(t *testing.T) {
	ledger := newFakeLedger(t)
	ledger.respondJSON(http.MethodGet, "/categories", serverCategories())
	ledger.respondJSON(http.MethodPost, "/categories", categoryWire{
		ID: "c3", Name: "Dividends", Type: 2, Color: "#95E1D3", Icon: "TrendingUp",
	})

	svc := ledger.service()
	ctx := context.Background()

	_, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, ledger.count(http.MethodGet, "/categories"))

	created, err := svc.CreateCategory(ctx, model.Category{
		Name: "Dividends", Type: model.CategoryTypeInvestment,
	})
	require.NoError(t, err)
	assert.Equal(t, "c3", created.ID, "server-assigned identity must win")
	assert.Equal(t, model.CategoryTypeInvestment, created.Type)

	// The create discarded the cached collection; the next read refetches.
	_, err = svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ledger.count(http.MethodGet, "/categories"))
}

func TestCreateToleratesMalformedResponseBody(t *testing.T) {
	ledger := newFakeLedger(t)
	ledger.respondJSON(http.MethodGet, "/categories", serverCategories())
	ledger.handle(http.MethodPost, "/categories", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>created</html>"))
	})

	svc := ledger.service()
	ctx := context.Background()

	_, err := svc.Categories(ctx)
	require.NoError(t, err)

	created, err := svc.CreateCategory(ctx, model.Category{
		Name: "Dividends", Type: model.CategoryTypeInvestment,
	})
	require.NoError(t, err, "an undecodable body on a 2xx create is not a failure")
	assert.Empty(t, created.ID, "the submitted record comes back when the echo is unreadable")
	assert.Equal(t, "Dividends", created.Name)

	// The canonical record still arrives through the refetch.
	_, err = svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ledger.count(http.MethodGet, "/categories"))
}

func TestUpdateAcceptsEmptyResponseAndInvalidates(t *testing.T) {
	ledger := newFakeLedger(t)
	ledger.respondJSON(http.MethodGet, "/wallets", serverWallets())
	ledger.respondEmpty(http.MethodPut, "/wallets/w-usd")

	svc := ledger.service()
	ctx := context.Background()

	_, err := svc.Wallets(ctx)
	require.NoError(t, err)

	err = svc.UpdateWallet(ctx, model.Wallet{
		ID: "w-usd", Name: "Everyday", Type: model.WalletTypeBank, Currency: model.CurrencyUSD, Balance: 500,
	})
	require.NoError(t, err)

	_, err = svc.Wallets(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ledger.count(http.MethodGet, "/wallets"))
}

func TestDeletePatchesCacheWithoutRefetch(t *testing.T) {
	ledger := newFakeLedger(t)
	ledger.respondJSON(http.MethodGet, "/wallets", serverWallets())
	ledger.respondEmpty(http.MethodDelete, "/wallets/w-eur")

	svc := ledger.service()
	ctx := context.Background()

	_, err := svc.Wallets(ctx)
	require.NoError(t, err)

	label, err := svc.DeleteWallet(ctx, "w-eur")
	require.NoError(t, err)
	assert.Equal(t, "Travel", label, "label comes from the pre-delete snapshot")

	wallets, err := svc.Wallets(ctx)
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assert.Equal(t, "w-usd", wallets[0].ID)
	assert.Equal(t, 1, ledger.count(http.MethodGet, "/wallets"), "a delete must not trigger a refetch")
}

func TestFailedMutationLeavesCacheIntact(t *testing.T) {
	ledger := newFakeLedger(t)
	ledger.respondJSON(http.MethodGet, "/categories", serverCategories())
	ledger.respondError(http.MethodPost, "/categories", http.StatusInternalServerError, "database unavailable")

	svc := ledger.service()
	ctx := context.Background()

	_, err := svc.Categories(ctx)
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, model.Category{Name: "Travel", Type: model.CategoryTypeExpense})
	require.Error(t, err)

	var mutErr *MutationError
	require.ErrorAs(t, err, &mutErr)
	assert.Equal(t, "create", mutErr.Op)
	assert.Equal(t, "category", mutErr.Kind)
	assert.Equal(t, "Travel", mutErr.Label)

	var remoteErr *api.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusInternalServerError, remoteErr.Status)

	// The failed create must not have invalidated anything.
	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, 1, ledger.count(http.MethodGet, "/categories"))
}

func TestCreateRejectsUnknownEnumBeforeAnyRequest(t *testing.T) {
	ledger := newFakeLedger(t)

	svc := ledger.service()

	_, err := svc.CreateWallet(context.Background(), model.Wallet{
		Name: "Vault", Type: model.WalletType("vault"), Currency: model.CurrencyUSD,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidEnum)

	var mutErr *MutationError
	require.ErrorAs(t, err, &mutErr)
	assert.Equal(t, "Vault", mutErr.Label)

	assert.Equal(t, 0, ledger.count(http.MethodPost, "/wallets"), "encoding failures never reach the network")
}

func TestTransferSameCurrencyOmitsReceivedAmount(t *testing.T) {
	ledger := newFakeLedger(t)
	ledger.respondJSON(http.MethodGet, "/wallets", []walletWire{
		{ID: "w1", Name: "Checking", Type: 1, Currency: 3, Balance: 500},
		{ID: "w2", Name: "Savings", Type: 1, Currency: 3, Balance: 100},
	})

	var gotBody map[string]any
	ledger.handle(http.MethodPost, "/transfers", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	svc := ledger.service()
	ctx := context.Background()

	err := svc.Transfer(ctx, model.TransferRequest{
		FromWalletID: "w1",
		ToWalletID:   "w2",
		Amount:       50,
		Description:  "monthly savings",
	})
	require.NoError(t, err)

	assert.Equal(t, "w1", gotBody["fromWalletId"])
	assert.Equal(t, "w2", gotBody["toWalletId"])
	assert.Equal(t, float64(50), gotBody["amount"])
	assert.NotContains(t, gotBody, "receivedAmount")

	// Both balances changed server-side; the next read must refetch.
	_, err = svc.Wallets(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ledger.count(http.MethodGet, "/wallets"))
}

func TestTransferCrossCurrencySendsReceivedAmount(t *testing.T) {
	ledger := newFakeLedger(t)
	ledger.respondJSON(http.MethodGet, "/wallets", serverWallets())

	var gotBody map[string]any
	ledger.handle(http.MethodPost, "/transfers", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	svc := ledger.service()

	err := svc.Transfer(context.Background(), model.TransferRequest{
		FromWalletID:   "w-usd",
		ToWalletID:     "w-eur",
		Amount:         100,
		ReceivedAmount: 92,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(92), gotBody["receivedAmount"])
}

func TestTransferValidationFailsBeforeAnyPost(t *testing.T) {
	ledger := newFakeLedger(t)
	ledger.respondJSON(http.MethodGet, "/wallets", serverWallets())

	svc := ledger.service()

	err := svc.Transfer(context.Background(), model.TransferRequest{
		FromWalletID: "w-usd",
		ToWalletID:   "w-usd",
		Amount:       10,
	})
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Cannot transfer to the same wallet.", validationErr.Reason)
	assert.Equal(t, 0, ledger.count(http.MethodPost, "/transfers"))
}

func TestTransferSurfacesRemoteReasonVerbatim(t *testing.T) {
	ledger := newFakeLedger(t)
	ledger.respondJSON(http.MethodGet, "/wallets", serverWallets())
	ledger.respondError(http.MethodPost, "/transfers", http.StatusUnprocessableEntity,
		"Transfer would overdraw the source wallet.")

	svc := ledger.service()
	ctx := context.Background()

	err := svc.Transfer(ctx, model.TransferRequest{
		FromWalletID:   "w-usd",
		ToWalletID:     "w-eur",
		Amount:         100,
		ReceivedAmount: 92,
	})
	require.Error(t, err)

	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "Transfer would overdraw the source wallet.", userErr.UserMessage)

	// A failed transfer leaves the wallet cache alone.
	_, err = svc.Wallets(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, ledger.count(http.MethodGet, "/wallets"))
}
