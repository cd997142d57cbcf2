package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/pocket-ledger/internal/common"
)

// SessionConfig holds everything needed to open a session against the
// remote ledger service.
type SessionConfig struct {
	BaseURL   string
	Token     string
	TokenFile string
	Staleness time.Duration
}

// LoadSessionConfig loads the ledger session configuration. Precedence:
// Viper configuration (config file or POCKET_ env vars), then direct
// environment variables, then defaults.
func LoadSessionConfig() (*SessionConfig, error) {
	cfg := &SessionConfig{
		BaseURL:   viper.GetString("api.base_url"),
		Token:     viper.GetString("api.token"),
		TokenFile: ExpandPath(viper.GetString("api.token_file")),
		Staleness: viper.GetDuration("cache.staleness"),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("POCKET_API_URL")
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv("POCKET_API_TOKEN")
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: api.base_url is required", common.ErrMissingConfig)
	}
	if cfg.Token == "" && cfg.TokenFile == "" {
		return nil, fmt.Errorf("%w: set api.token or api.token_file", common.ErrMissingConfig)
	}

	return cfg, nil
}

// SheetsConfig holds the Google Sheets export configuration.
type SheetsConfig struct {
	TokenFile       string
	SpreadsheetID   string
	SpreadsheetName string
}

// LoadSheetsConfig loads the Sheets export configuration from Viper.
func LoadSheetsConfig() (*SheetsConfig, error) {
	cfg := &SheetsConfig{
		TokenFile:       ExpandPath(viper.GetString("sheets.token_file")),
		SpreadsheetID:   viper.GetString("sheets.spreadsheet_id"),
		SpreadsheetName: viper.GetString("sheets.spreadsheet_name"),
	}

	if cfg.SpreadsheetName == "" {
		cfg.SpreadsheetName = "Pocket Ledger"
	}
	if cfg.TokenFile == "" {
		return nil, fmt.Errorf("%w: sheets.token_file is required for export", common.ErrMissingConfig)
	}

	return cfg, nil
}
