package main

import (
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/flowclip/pkg/adapters/osfilesystem"
	"github.com/user/flowclip/pkg/checkpoint"
	"github.com/user/flowclip/pkg/ports"
)

func ckptCommand() *cli.Command {
	return &cli.Command{
		Name:  "ckpt",
		Usage: l10n.T("Rearrange the keys of safetensors checkpoints"),
		Subcommands: []*cli.Command{
			{
				Name:  "split",
				Usage: l10n.T("Split a checkpoint into adapter and backbone weights"),
				Flags: append([]cli.Flag{
					inputFlag(),
					&cli.StringFlag{Name: "adapter", Usage: l10n.T("Adapter output (default: <input>_adapter.safetensors)")},
					&cli.StringFlag{Name: "backbone", Usage: l10n.T("Backbone output (default: <input>_dit.safetensors)")},
					&cli.StringFlag{Name: "prefix", Value: strings.Join(checkpoint.DefaultAdapterPrefixes, ","), Usage: l10n.T("Adapter key prefixes, comma separated")},
				}, logFlags()...),
				Action: runCkptSplit,
			},
			{
				Name:  "strip",
				Usage: l10n.T("Remove training prefixes from checkpoint keys"),
				Flags: append([]cli.Flag{
					inputFlag(),
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output file (default: <input>_clean.safetensors)")},
					&cli.StringFlag{Name: "prefix", Value: strings.Join(checkpoint.DefaultStripPrefixes, ","), Usage: l10n.T("Prefixes to remove, comma separated; the first match wins")},
				}, logFlags()...),
				Action: runCkptStrip,
			},
			{
				Name:  "filter",
				Usage: l10n.T("Keep only the adapter keys of a checkpoint"),
				Flags: append([]cli.Flag{
					inputFlag(),
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output file (default: <input>_adapter.safetensors)")},
					&cli.StringFlag{Name: "prefix", Value: strings.Join(checkpoint.DefaultAdapterPrefixes, ","), Usage: l10n.T("Key prefixes to keep, comma separated")},
				}, logFlags()...),
				Action: runCkptFilter,
			},
		},
	}
}

func inputFlag() cli.Flag {
	return &cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: l10n.T("Input .safetensors file")}
}

// derivedPath turns "a/epoch-0.safetensors" into "a/epoch-0{suffix}.safetensors".
func derivedPath(input, suffix string) string {
	return strings.TrimSuffix(input, ".safetensors") + suffix + ".safetensors"
}

func pathOr(c *cli.Context, flag, input, suffix string) string {
	if p := c.String(flag); p != "" {
		return p
	}
	return derivedPath(input, suffix)
}

func loadCheckpoint(c *cli.Context) (ports.FileSystem, *checkpoint.File, error) {
	fs := osfilesystem.New()
	f, err := checkpoint.Load(fs, c.String("input"))
	if err != nil {
		return nil, nil, cli.Exit(err.Error(), 1)
	}
	return fs, f, nil
}

func saveCheckpoint(fs ports.FileSystem, log ports.Logger, path string, f *checkpoint.File) error {
	if err := checkpoint.Save(fs, path, f); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	log.Info(l10n.F("Saved %d tensors (%d bytes) to %s", len(f.Tensors), f.Size(), path))
	return nil
}

func runCkptSplit(c *cli.Context) error {
	log := loggerFrom(c)
	fs, f, err := loadCheckpoint(c)
	if err != nil {
		return err
	}

	adapter, backbone := checkpoint.Split(f, checkpoint.ParsePrefixes(c.String("prefix")))
	if len(adapter.Tensors) == 0 {
		log.Warn(l10n.T("No keys matched the adapter prefixes"))
	}

	input := c.String("input")
	if err := saveCheckpoint(fs, log, pathOr(c, "adapter", input, "_adapter"), adapter); err != nil {
		return err
	}
	return saveCheckpoint(fs, log, pathOr(c, "backbone", input, "_dit"), backbone)
}

func runCkptStrip(c *cli.Context) error {
	log := loggerFrom(c)
	fs, f, err := loadCheckpoint(c)
	if err != nil {
		return err
	}

	out, renames, err := checkpoint.StripPrefixes(f, checkpoint.ParsePrefixes(c.String("prefix")))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	for _, r := range renames {
		log.Debug("%s -> %s", r.From, r.To)
	}
	log.Info(l10n.F("Renamed %d of %d keys", len(renames), len(f.Tensors)))

	return saveCheckpoint(fs, log, pathOr(c, "output", c.String("input"), "_clean"), out)
}

func runCkptFilter(c *cli.Context) error {
	log := loggerFrom(c)
	fs, f, err := loadCheckpoint(c)
	if err != nil {
		return err
	}

	out := checkpoint.Filter(f, checkpoint.ParsePrefixes(c.String("prefix")))
	if len(out.Tensors) == 0 {
		log.Warn(l10n.T("No keys matched the adapter prefixes"))
	}
	return saveCheckpoint(fs, log, pathOr(c, "output", c.String("input"), "_adapter"), out)
}
