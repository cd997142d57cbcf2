package main

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"github.com/Veraticus/pocket-ledger/internal/api"
	"github.com/Veraticus/pocket-ledger/internal/config"
	"github.com/Veraticus/pocket-ledger/internal/ledger"
)

// newSession builds the ledger session from the active configuration.
// Each command invocation opens its own session; the cache lives for the
// command's duration.
func newSession() (*ledger.Service, error) {
	cfg, err := config.LoadSessionConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load session config: %w", err)
	}

	var tokens oauth2.TokenSource
	if cfg.TokenFile != "" {
		tokens = api.FileTokenSource(cfg.TokenFile)
	} else {
		tokens = api.StaticTokenSource(cfg.Token)
	}

	client := api.New(cfg.BaseURL, tokens)
	return ledger.NewService(client, cfg.Staleness), nil
}

// resolveCategory turns a category reference (ID or name) into an ID
// using the cached collection. Only existing categories resolve.
func resolveCategory(ctx context.Context, session *ledger.Service, ref string) (string, error) {
	categories, err := session.Categories(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get categories: %w", err)
	}

	for _, c := range categories {
		if c.ID == ref || strings.EqualFold(c.Name, ref) {
			return c.ID, nil
		}
	}

	return "", fmt.Errorf("category %q not found", ref)
}

// resolveWallet turns a wallet reference (ID or name) into an ID using
// the cached collection.
func resolveWallet(ctx context.Context, session *ledger.Service, ref string) (string, error) {
	wallets, err := session.Wallets(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get wallets: %w", err)
	}

	for _, w := range wallets {
		if w.ID == ref || strings.EqualFold(w.Name, ref) {
			return w.ID, nil
		}
	}

	return "", fmt.Errorf("wallet %q not found", ref)
}
