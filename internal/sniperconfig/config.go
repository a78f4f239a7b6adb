// Package sniperconfig loads and validates the sniper's TOML
// configuration file, using naoina/toml with custom field-name
// matching rather than a bespoke parser.
package sniperconfig

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/naoina/toml"
	"github.com/reactorlabs/pumpfun-sniper/params"
	"github.com/reactorlabs/pumpfun-sniper/types"
)

// EnvVar names the environment variable that selects the config file
// path.
const EnvVar = "SNIPER_CONFIG"

// DefaultPath is used when EnvVar is unset.
const DefaultPath = "config.example.toml"

var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return toSnakeCase(field)
	},
	MissingField: func(rt reflect.Type, field string) error {
		return nil
	},
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// Endpoints holds every configured upstream and submission URL.
// Only RPCHTTPURL is required; the rest enable optional
// components (WebSocket subscriber, LaserStream subscriber, bundle and
// alternate HTTP dispatch paths).
type Endpoints struct {
	RPCHTTPURL         string `toml:"rpc_http_url"`
	WSURL              string `toml:"ws_url"`
	LaserStreamGRPCURL string `toml:"laserstream_grpc_url"`
	JitoAPIURL         string `toml:"jito_api_url"`
	NozomiRPCURL       string `toml:"nozomi_rpc_url"`
}

// PurchaseStrategy is a tagged variant: exactly one of FixedSOL or
// PercentBalance is set.
type PurchaseStrategy struct {
	FixedSOL       *float64 `toml:"fixed_sol"`
	PercentBalance *float64 `toml:"percent_balance"`
}

// ComputeBuyAmount resolves the strategy against a current balance
// (lamports) into a lamport spend amount.
func (p PurchaseStrategy) ComputeBuyAmount(balanceLamports uint64) (uint64, error) {
	switch {
	case p.FixedSOL != nil:
		return uint64(*p.FixedSOL * params.LamportsPerSOL), nil
	case p.PercentBalance != nil:
		return uint64(float64(balanceLamports) * *p.PercentBalance), nil
	default:
		return 0, fmt.Errorf("purchase_strategy: neither fixed_sol nor percent_balance set")
	}
}

// FeeConfig carries the transaction fee knobs. Only PriorityFeeLamports
// is consumed by the core pipeline; UseJitoTip and JitoTipLamports are
// accepted and validated but otherwise unused until a tip-paying
// dispatch path exists.
type FeeConfig struct {
	PriorityFeeLamports uint64 `toml:"priority_fee_lamports"`
	UseJitoTip          bool   `toml:"use_jito_tip"`
	JitoTipLamports     uint64 `toml:"jito_tip_lamports"`
}

// ProfitGuard is parsed and validated but never wired to a decision
// path; exit/sell logic is out of scope for the buy-side pipeline.
type ProfitGuard struct {
	TakeProfitFactor float64 `toml:"take_profit_factor"`
	StopLossFactor   float64 `toml:"stop_loss_factor"`
}

// DevFilters configures the developer whitelist/blacklist and the
// per-developer rate limit.
type DevFilters struct {
	DevWhitelist     []string `toml:"dev_whitelist"`
	DevBlacklist     []string `toml:"dev_blacklist"`
	DevMaxTokensPerMin int    `toml:"dev_max_tokens_per_min"`
}

// Config is the sniper's full startup configuration, parsed once and
// shared immutably by every component thereafter.
type Config struct {
	Endpoints          Endpoints        `toml:"endpoints"`
	KeypairPath        string           `toml:"keypair_path"`
	PumpFunProgram     string           `toml:"pump_fun_program"`
	PurchaseStrategy   PurchaseStrategy `toml:"purchase_strategy"`
	MaxSlippageBps     int              `toml:"max_slippage_bps"`
	FeeConfig          FeeConfig        `toml:"fee_config"`
	ProfitGuard        ProfitGuard      `toml:"profit_guard"`
	DevFilters         DevFilters       `toml:"dev_filters"`
	DryRun             bool             `toml:"dry_run"`
	LogLevel           string           `toml:"log_level"`
	BlockhashRefreshMs int              `toml:"blockhash_refresh_ms"`
	BalanceRefreshMs   int              `toml:"balance_refresh_ms"`
	// SeenMintsJournalPath, if set, persists the seen-mints set to an
	// on-disk leveldb database so a restart does not immediately
	// re-admit mints bought in a prior process lifetime. Empty disables
	// journaling; the set then lives purely in memory.
	SeenMintsJournalPath string `toml:"seen_mints_journal_path"`
}

// applyDefaults fills in the zero-valued fields that carry a default,
// applied after parsing so an explicit zero in the file is
// indistinguishable from "unset" for these particular fields.
func (c *Config) applyDefaults() {
	if c.PumpFunProgram == "" {
		c.PumpFunProgram = params.DefaultBuyProgramBase58
	}
	if c.BlockhashRefreshMs == 0 {
		c.BlockhashRefreshMs = int(params.DefaultBlockhashRefreshInterval.Milliseconds())
	}
	if c.BalanceRefreshMs == 0 {
		c.BalanceRefreshMs = int(params.DefaultBalanceRefreshInterval.Milliseconds())
	}
	if c.DevFilters.DevMaxTokensPerMin == 0 {
		c.DevFilters.DevMaxTokensPerMin = params.DefaultDevMaxTokensPerMinute
	}
}

// Validate checks the invariants required at startup: required fields
// present, base58 keys parseable, purchase strategy well-formed. Any
// failure here is a startup error and should abort the process.
func (c *Config) Validate() error {
	if c.Endpoints.RPCHTTPURL == "" {
		return fmt.Errorf("endpoints.rpc_http_url is required")
	}
	if c.KeypairPath == "" {
		return fmt.Errorf("keypair_path is required")
	}
	if _, err := types.ParsePublicKey(c.PumpFunProgram); err != nil {
		return fmt.Errorf("pump_fun_program: %w", err)
	}
	if c.PurchaseStrategy.FixedSOL == nil && c.PurchaseStrategy.PercentBalance == nil {
		return fmt.Errorf("purchase_strategy: exactly one of fixed_sol or percent_balance is required")
	}
	if c.PurchaseStrategy.FixedSOL != nil && c.PurchaseStrategy.PercentBalance != nil {
		return fmt.Errorf("purchase_strategy: fixed_sol and percent_balance are mutually exclusive")
	}
	if p := c.PurchaseStrategy.PercentBalance; p != nil && (*p < 0 || *p > 1) {
		return fmt.Errorf("purchase_strategy.percent_balance must be within [0, 1], got %v", *p)
	}
	for _, key := range c.DevFilters.DevWhitelist {
		if _, err := types.ParsePublicKey(key); err != nil {
			return fmt.Errorf("dev_filters.dev_whitelist: %w", err)
		}
	}
	for _, key := range c.DevFilters.DevBlacklist {
		if _, err := types.ParsePublicKey(key); err != nil {
			return fmt.Errorf("dev_filters.dev_blacklist: %w", err)
		}
	}
	return nil
}

// WhitelistKeys parses DevFilters.DevWhitelist; callers invoke this
// after Validate has already guaranteed every entry parses.
func (c *Config) WhitelistKeys() []types.PublicKey {
	return mustParseAll(c.DevFilters.DevWhitelist)
}

// BlacklistKeys parses DevFilters.DevBlacklist; see WhitelistKeys.
func (c *Config) BlacklistKeys() []types.PublicKey {
	return mustParseAll(c.DevFilters.DevBlacklist)
}

func mustParseAll(keys []string) []types.PublicKey {
	out := make([]types.PublicKey, 0, len(keys))
	for _, k := range keys {
		out = append(out, types.MustParsePublicKey(k))
	}
	return out
}

// ProgramID parses PumpFunProgram; callers invoke this after Validate.
func (c *Config) ProgramID() types.PublicKey {
	return types.MustParsePublicKey(c.PumpFunProgram)
}

// Load reads and parses the TOML file at path, applies defaults, and
// validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads TOML from r, applies defaults, and validates the result.
// Split out from Load so tests can exercise it against an in-memory
// reader.
func Parse(r io.Reader) (*Config, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := tomlSettings.NewDecoder(bytes.NewReader(buf)).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path resolves the config file path: SNIPER_CONFIG if set, else
// DefaultPath.
func Path() string {
	if p := os.Getenv(EnvVar); p != "" {
		return p
	}
	return DefaultPath
}
