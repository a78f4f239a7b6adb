// Command sniper watches for newly-created tokens on a specific
// on-chain program and races a signed buy transaction across several
// redundant submission endpoints.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gofrs/flock"
	"github.com/olekukonko/tablewriter"
	"github.com/reactorlabs/pumpfun-sniper/cmd/utils"
	"github.com/reactorlabs/pumpfun-sniper/internal/sniperconfig"
	"github.com/reactorlabs/pumpfun-sniper/observability"
	"github.com/reactorlabs/pumpfun-sniper/sniper"
	"github.com/urfave/cli/v2"
	_ "go.uber.org/automaxprocs"
)

func main() {
	app := &cli.App{
		Name:  "sniper",
		Usage: "race a buy transaction onto a newly-created token",
		Flags: utils.Flags,
		Action: run,
		Commands: []*cli.Command{
			{
				Name:   "dumpconfig",
				Usage:  "Show the effective configuration and exit",
				Flags:  utils.Flags,
				Action: dumpConfigAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Crit("Fatal error", "err", err)
	}
}

func run(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	lock := flock.New(cfg.KeypairPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire single-instance lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another sniper instance already holds the lock on %s", cfg.KeypairPath)
	}
	defer lock.Unlock()

	node, err := sniper.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize node: %w", err)
	}
	defer func() {
		if err := node.Close(); err != nil {
			log.Warn("Error closing node", "err", err)
		}
	}()

	printBanner(cfg)

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("Shutdown signal received")
		cancel()
	}()

	go observability.Serve(runCtx, observability.Config{
		Enable:      ctx.Bool(utils.ObservabilityEnableFlag.Name),
		Addr:        ctx.String(utils.ObservabilityAddrFlag.Name),
		InfluxURL:   ctx.String(utils.InfluxURLFlag.Name),
		InfluxToken: ctx.String(utils.InfluxTokenFlag.Name),
	})

	node.Run(runCtx)
	return nil
}

func printBanner(cfg *sniperconfig.Config) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"setting", "value"})
	table.Append([]string{"program", cfg.PumpFunProgram})
	table.Append([]string{"rpc endpoint", cfg.Endpoints.RPCHTTPURL})
	table.Append([]string{"dry run", fmt.Sprintf("%v", cfg.DryRun)})
	table.Render()
}
