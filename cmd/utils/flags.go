// Package utils holds the command-line flag definitions shared by the
// sniper binary, one package-level var per flag.
package utils

import (
	"github.com/urfave/cli/v2"
)

var ConfigFileFlag = &cli.StringFlag{
	Name:  "config",
	Usage: "TOML configuration file path (overrides SNIPER_CONFIG)",
}

var DryRunFlag = &cli.BoolFlag{
	Name:  "dry-run",
	Usage: "Build and log transactions without dispatching them",
}

var LogLevelFlag = &cli.StringFlag{
	Name:  "log.level",
	Usage: "Log level: trace, debug, info, warn, error, crit",
	Value: "info",
}

var LogJSONFlag = &cli.BoolFlag{
	Name:  "log.json",
	Usage: "Format logs as JSON instead of human-readable text",
}

var LogFileFlag = &cli.StringFlag{
	Name:  "log.file",
	Usage: "Write rotated logs to this path in addition to stderr",
}

var ObservabilityAddrFlag = &cli.StringFlag{
	Name:  "metrics.addr",
	Usage: "Listen address for the observability HTTP server",
	Value: "127.0.0.1:6060",
}

var ObservabilityEnableFlag = &cli.BoolFlag{
	Name:  "metrics",
	Usage: "Enable the observability HTTP server",
}

var InfluxURLFlag = &cli.StringFlag{
	Name:  "metrics.influx.url",
	Usage: "InfluxDB URL to push metrics to; empty disables the pusher",
}

var InfluxTokenFlag = &cli.StringFlag{
	Name:  "metrics.influx.token",
	Usage: "InfluxDB auth token",
}

// Flags is the full flag set registered on the root command.
var Flags = []cli.Flag{
	ConfigFileFlag,
	DryRunFlag,
	LogLevelFlag,
	LogJSONFlag,
	LogFileFlag,
	ObservabilityAddrFlag,
	ObservabilityEnableFlag,
	InfluxURLFlag,
	InfluxTokenFlag,
}
