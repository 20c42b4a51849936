package main

import (
	"path/filepath"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/flowclip/pkg/adapters/osfilesystem"
	"github.com/user/flowclip/pkg/metadata"
)

func metaCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "base", Required: true, Usage: l10n.T("Dataset root; paths in the table are relative to it")},
		&cli.StringFlag{Name: "folder", Required: true, Usage: l10n.T("Folder to scan, relative to the dataset root")},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output CSV path (default: {base}/metadata.csv)")},
		&cli.StringFlag{Name: "prompt", Value: metadata.DefaultPrompt, Usage: l10n.T("Prompt written to every row")},
		&cli.StringFlag{Name: "flow-dir", Value: "flow_line", Usage: l10n.T("Directory of the flow-line counterparts inside the folder")},
	}

	return &cli.Command{
		Name:   "meta",
		Usage:  l10n.T("Write the training metadata CSV of a folder"),
		Flags:  append(flags, logFlags()...),
		Action: runMeta,
	}
}

func runMeta(c *cli.Context) error {
	log := loggerFrom(c)
	gen := metadata.New(osfilesystem.New(), log)

	result, err := gen.Generate(metadata.Options{
		Base:        c.String("base"),
		Folder:      c.String("folder"),
		FlowLineDir: c.String("flow-dir"),
		Prompt:      c.String("prompt"),
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	output := c.String("output")
	if output == "" {
		output = filepath.Join(c.String("base"), "metadata.csv")
	}
	return gen.Save(output, result.Rows)
}
