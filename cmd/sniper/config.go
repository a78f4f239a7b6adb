package main

import (
	"fmt"
	"os"

	"github.com/naoina/toml"
	"github.com/reactorlabs/pumpfun-sniper/cmd/utils"
	"github.com/reactorlabs/pumpfun-sniper/internal/sniperconfig"
	"github.com/urfave/cli/v2"
)

// loadConfig resolves the config file path (flag, then SNIPER_CONFIG,
// then the default), loads it, and applies any CLI flag overrides.
func loadConfig(ctx *cli.Context) (*sniperconfig.Config, error) {
	path := sniperconfig.Path()
	if ctx.IsSet(utils.ConfigFileFlag.Name) {
		path = ctx.String(utils.ConfigFileFlag.Name)
	}

	cfg, err := sniperconfig.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	if ctx.IsSet(utils.DryRunFlag.Name) {
		cfg.DryRun = ctx.Bool(utils.DryRunFlag.Name)
	}

	return cfg, nil
}

// dumpConfigAction implements the "dumpconfig" subcommand: load,
// validate, and re-encode the effective configuration to stdout as
// TOML.
func dumpConfigAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	enc := toml.NewEncoder(os.Stdout)
	return enc.Encode(cfg)
}
