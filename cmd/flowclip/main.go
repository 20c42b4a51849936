// Package main provides the CLI entry point for flowclip.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/flowclip/pkg/adapters/logger"
	"github.com/user/flowclip/pkg/ports"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:        "flowclip",
		Usage:       l10n.T("Cut paired video and flow-line streams into fixed-length training clips"),
		Description: l10n.T("flowclip segments every video or image folder in a directory into clips and writes them with ffmpeg."),
		Version:     version,
		Commands: []*cli.Command{
			splitCommand(),
			metaCommand(),
			previewCommand(),
			ckptCommand(),
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, l10n.F("flowclip version %s", version))
					return nil
				},
			},
		},
	}
}

// logFlags are shared by every command that logs.
func logFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Value:    "info",
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T("Logging"),
		},
	}
}

func newLogger(quiet bool, level string) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(level))
}

func loggerFrom(c *cli.Context) ports.Logger {
	return newLogger(c.Bool("quiet"), c.String("log-level"))
}
