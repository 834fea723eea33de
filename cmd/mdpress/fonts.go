package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/fonts"
)

// runFonts lists the font catalog, marking families with files on disk.
func runFonts(args []string, env *Environment) error {
	flags, err := parseFontsFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}

	conv, err := env.NewConverter(
		mdpress.WithAssetPath(cfg.Assets.BasePath),
		mdpress.WithLogger(zap.NewNop()),
	)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	registry := conv.Fonts()
	list := fontList(registry)

	if flags.jsonOut {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	for _, f := range list {
		mark := " "
		if f.Registered {
			mark = "*"
		}
		kind := ""
		if f.Monospace {
			kind = "monospace"
		}
		fmt.Fprintf(tw, "%s %s\t%s\n", mark, f.Family, kind)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "\n%d of %d families registered (* = embedded)\n",
			len(registry.Registered()), len(list))
	}
	return nil
}

// fontList describes every catalog family in catalog order.
func fontList(registry *fonts.Registry) []fontInfo {
	families := registry.Families()
	list := make([]fontInfo, 0, len(families))
	for _, family := range families {
		d, _ := registry.Descriptor(family)
		list = append(list, fontInfo{
			Family:     family,
			Registered: registry.Available(family),
			Monospace:  d.Monospace,
		})
	}
	return list
}
