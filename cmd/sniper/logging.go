package main

import (
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging configures the process-wide logger: a color-aware
// terminal handler, optionally duplicated to a rotating log file, at
// the level named by the log.level flag.
func setupLogging(ctx *cli.Context) error {
	level, err := log.LvlFromString(ctx.String("log.level"))
	if err != nil {
		return err
	}

	var out io.Writer = os.Stderr
	useColor := isatty.IsTerminal(os.Stderr.Fd()) && !color.NoColor
	if useColor {
		out = colorable.NewColorableStderr()
	}

	handlers := []log.Handler{log.StreamHandler(out, log.TerminalFormat(useColor))}

	if path := ctx.String("log.file"); path != "" {
		rotator := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
		}
		handlers = append(handlers, log.StreamHandler(rotator, log.JSONFormat()))
	}

	log.Root().SetHandler(log.LvlFilterHandler(level, log.MultiHandler(handlers...)))
	return nil
}
