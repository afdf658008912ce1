package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shapewordle/pkg/io"
	"github.com/matzehuels/shapewordle/pkg/pipeline"
	"github.com/matzehuels/shapewordle/pkg/wordle"
)

// renderCommand creates the render command for turning a saved layout into
// artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		of         optionFlags
		output     string
		formatsStr string
		fieldPath  string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a saved layout to SVG, PNG or JSON",
		Long: `Render a saved layout to SVG, PNG or JSON.

The render command takes a layout.json file (produced by 'layout') and draws
it without recomputing placement. Region outlines need the distance field the
layout was computed from (--field).`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeLayoutFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := of.resolve(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
				opts.Formats = parseFormats(formatsStr)
			}
			if opts.Outlines && fieldPath == "" {
				return fmt.Errorf("--outlines needs --field")
			}
			return c.runRender(cmd.Context(), args[0], fieldPath, opts, output, noCache)
		},
	}

	of.registerRender(cmd)
	cmd.Flags().StringVarP(&of.config, "config", "c", "", "TOML options file (flags override it)")
	cmd.Flags().StringVar(&of.opts.FontFamily, "font", "", "font family")
	cmd.Flags().StringToStringVar(&of.opts.FontFiles, "font-file", nil, "register a font file as family=path.ttf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (default: <input>)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVar(&fieldPath, "field", "", "distance field JSON, for region outlines")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender loads the layout and writes each requested artifact.
func (c *CLI) runRender(ctx context.Context, input, fieldPath string, opts pipeline.Options, output string, noCache bool) error {
	l, err := io.ReadLayoutFile(input)
	if err != nil {
		return err
	}

	var outlines []wordle.Region
	if fieldPath != "" {
		field, err := io.ReadFieldFile(fieldPath)
		if err != nil {
			return err
		}
		outlines = pipeline.Input{Field: field}.Outlines()
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	spin := startSpinner(ctx, os.Stderr, "Rendering "+strings.Join(opts.Formats, ", ")+"...")
	defer spin.Stop()

	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, l, outlines, opts)
	if err != nil {
		spin.Fail("Render failed")
		return err
	}

	base, keepExt := output, true
	if base == "" {
		base, keepExt = trimExt(trimExt(input)), false
	}
	paths, err := writeArtifacts(artifacts, base, keepExt)
	if err != nil {
		return err
	}
	spin.Stop()

	printSuccess("Rendered")
	for _, p := range paths {
		printFile(p)
	}
	printStats(pipeline.Stats{
		Keywords:    len(l.Keywords),
		Placed:      len(l.Keywords),
		Fillings:    len(l.Fillings),
		MaxFontSize: l.MaxFontSize,
	}, cached)
	return nil
}
