package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

const (
	SourceExplorer = "explorer"
	SourceRPC      = "rpc"
)

var balanceSources = []string{SourceExplorer, SourceRPC}

// ErrInvalid is wrapped by every validation failure returned from Parse.
var ErrInvalid = errors.New("invalid configuration")

type options struct {
	BotToken         string        `long:"bot-token" env:"TELEGRAM_BOT_TOKEN" description:"Telegram bot token"`
	ExplorerAPIKey   string        `long:"explorer-api-key" env:"EXPLORER_API_KEY" description:"block explorer API key"`
	ExplorerURL      string        `long:"explorer-url" env:"EXPLORER_URL" description:"block explorer API endpoint" default:"https://api.etherscan.io/v2/api"`
	ChainID          int64         `long:"chain-id" env:"CHAIN_ID" description:"chain id sent to the explorer API" default:"1"`
	TokenContract    string        `long:"token-contract" env:"TOKEN_CONTRACT" description:"monitored token contract address"`
	MaxTokens        string        `long:"max-tokens" env:"MAX_TOKENS" description:"holder threshold in whole tokens" default:"300000"`
	TokenDecimals    int32         `long:"token-decimals" env:"TOKEN_DECIMALS" description:"token decimal places" default:"18"`
	TokenSymbol      string        `long:"token-symbol" env:"TOKEN_SYMBOL" description:"token symbol shown in replies" default:"VGD"`
	HolderGroupLink  string        `long:"holder-group-link" env:"HOLDER_GROUP_LINK" description:"invite link for the holder group"`
	WaitingGroupLink string        `long:"waiting-group-link" env:"WAITING_GROUP_LINK" description:"invite link for the waiting group"`
	LookupTimeout    time.Duration `long:"lookup-timeout" env:"LOOKUP_TIMEOUT" description:"balance lookup timeout" default:"10s"`
	BalanceSource    string        `long:"balance-source" env:"BALANCE_SOURCE" description:"balance source: explorer or rpc" default:"explorer"`
	RPCURL           string        `long:"rpc-url" env:"RPC_URL" description:"ethereum JSON-RPC endpoint"`
	WebhookURL       string        `long:"webhook-url" env:"WEBHOOK_URL" description:"public base URL for the webhook, long polling when empty"`
	WebhookSecret    string        `long:"webhook-secret" env:"WEBHOOK_SECRET" description:"secret webhook path segment, defaults to the bot token"`
	Port             int           `long:"port" env:"PORT" description:"HTTP server port" default:"10000"`
	DatabaseURL      string        `long:"database-url" env:"DATABASE_URL" description:"sqlite file or postgres DSN" default:"sentinela.db"`
	Workers          int           `long:"workers" env:"WORKERS" description:"concurrent update workers" default:"4"`
	Debug            bool          `long:"debug" env:"DEBUG_MODE" description:"development logging"`
}

// Config is built once at startup and shared read-only afterwards.
type Config struct {
	BotToken         string
	ExplorerAPIKey   string
	ExplorerURL      string
	ChainID          int64
	TokenContract    string
	Threshold        decimal.Decimal
	TokenDecimals    int32
	TokenSymbol      string
	HolderGroupLink  string
	WaitingGroupLink string
	LookupTimeout    time.Duration
	BalanceSource    string
	RPCURL           string
	WebhookURL       string
	WebhookSecret    string
	Port             int
	DatabaseURL      string
	Workers          int
	Debug            bool
}

// LoadEnvFiles loads config/.env.<BOT_ENV>.local and config/.env.<BOT_ENV>
// from dir into the process environment. Missing files are skipped and
// variables already present in the environment win.
func LoadEnvFiles(dir string) ([]string, error) {
	botEnv, exists := os.LookupEnv("BOT_ENV")
	if !exists {
		botEnv = "dev"
	}
	var loaded []string
	for _, name := range []string{".env." + botEnv + ".local", ".env." + botEnv} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, fmt.Errorf("load %s: %w", path, err)
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}

// Parse reads flags from args and falls back to environment variables.
func Parse(args []string) (*Config, error) {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	return opts.build()
}

func (o options) build() (*Config, error) {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if o.BotToken == "" {
		invalid("TELEGRAM_BOT_TOKEN is required")
	}
	if o.TokenContract == "" {
		invalid("TOKEN_CONTRACT is required")
	}
	if o.HolderGroupLink == "" {
		invalid("HOLDER_GROUP_LINK is required")
	}
	if o.WaitingGroupLink == "" {
		invalid("WAITING_GROUP_LINK is required")
	}

	threshold, err := decimal.NewFromString(strings.TrimSpace(o.MaxTokens))
	if err != nil {
		invalid("MAX_TOKENS %q is not a number", o.MaxTokens)
	} else if threshold.IsNegative() {
		invalid("MAX_TOKENS %q must not be negative", o.MaxTokens)
	}

	if o.TokenDecimals < 0 || o.TokenDecimals > 36 {
		invalid("TOKEN_DECIMALS %d out of range", o.TokenDecimals)
	}
	if o.LookupTimeout <= 0 {
		invalid("LOOKUP_TIMEOUT must be positive")
	}
	if o.ChainID < 1 {
		invalid("CHAIN_ID must be positive")
	}
	if o.Workers < 1 {
		invalid("WORKERS must be at least 1")
	}

	source := strings.ToLower(o.BalanceSource)
	switch {
	case !slices.Contains(balanceSources, source):
		invalid("BALANCE_SOURCE %q must be one of %v", o.BalanceSource, balanceSources)
	case source == SourceExplorer && o.ExplorerAPIKey == "":
		invalid("EXPLORER_API_KEY is required for the explorer balance source")
	case source == SourceRPC && o.RPCURL == "":
		invalid("RPC_URL is required for the rpc balance source")
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		BotToken:         o.BotToken,
		ExplorerAPIKey:   o.ExplorerAPIKey,
		ExplorerURL:      o.ExplorerURL,
		ChainID:          o.ChainID,
		TokenContract:    o.TokenContract,
		Threshold:        threshold,
		TokenDecimals:    o.TokenDecimals,
		TokenSymbol:      o.TokenSymbol,
		HolderGroupLink:  o.HolderGroupLink,
		WaitingGroupLink: o.WaitingGroupLink,
		LookupTimeout:    o.LookupTimeout,
		BalanceSource:    source,
		RPCURL:           o.RPCURL,
		WebhookURL:       o.WebhookURL,
		WebhookSecret:    o.WebhookSecret,
		Port:             o.Port,
		DatabaseURL:      o.DatabaseURL,
		Workers:          o.Workers,
		Debug:            o.Debug,
	}, nil
}

// WebhookPath is the local route Telegram posts updates to.
func (c *Config) WebhookPath() string {
	secret := c.WebhookSecret
	if secret == "" {
		secret = c.BotToken
	}
	return "/webhook/" + secret
}

// WebhookEndpoint is the public URL registered with Telegram.
func (c *Config) WebhookEndpoint() string {
	return strings.TrimSuffix(c.WebhookURL, "/") + c.WebhookPath()
}
