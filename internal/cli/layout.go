package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shapewordle/pkg/io"
	"github.com/matzehuels/shapewordle/pkg/pipeline"
)

// inputFlags names the three files a layout is computed from.
type inputFlags struct {
	words string
	mask  string
	field string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.words, "words", "", "word list JSON ([{\"name\", \"weight\"}])")
	cmd.Flags().StringVar(&f.mask, "mask", "", "region mask JSON (mask[y][x], -1 = background)")
	cmd.Flags().StringVar(&f.field, "field", "", "distance field JSON ({\"boundaries\", \"dists\"})")
	_ = cmd.MarkFlagRequired("words")
	_ = cmd.MarkFlagRequired("mask")
	_ = cmd.MarkFlagRequired("field")
}

func (f *inputFlags) load() (pipeline.Input, error) {
	return pipeline.LoadInput(f.words, f.mask, f.field)
}

// optionFlags binds pipeline options to flags. Only flags the user actually
// set override the options file.
type optionFlags struct {
	config string
	opts   pipeline.Options
}

func (f *optionFlags) registerLayout(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "TOML options file (flags override it)")
	fs.IntVarP(&f.opts.KeywordNum, "keywords", "k", 0, "number of keywords to place (default 60)")
	fs.IntVar(&f.opts.Width, "width", 0, "canvas width (default 900)")
	fs.IntVar(&f.opts.Height, "height", 0, "canvas height (default 600)")
	fs.StringVar(&f.opts.KeywordColor, "keyword-color", "", "colour for keywords without their own")
	fs.StringVar(&f.opts.FillingWordColor, "filling-color", "", "colour of filling words")
	fs.StringVar(&f.opts.FontFamily, "font", "", "font family")
	fs.StringSliceVar(&f.opts.Colors, "colors", nil, "keyword palette (comma-separated)")
	fs.StringVar(&f.opts.Plan, "plan", "", "region quota plan: area (default), value")
	fs.IntVar(&f.opts.MaxFontSize, "max-font", 0, "largest keyword font size (default 100)")
	fs.IntVar(&f.opts.MinFontSize, "min-font", 0, "smallest keyword font size (default 2)")
	fs.IntVar(&f.opts.FillingFontSize, "filling-font", 0, "filling word font size (default 10)")
	fs.IntVar(&f.opts.AngleMode, "angles", 0, "rotation mode: 0 horizontal, 1 mixed, 2 random, 3 diagonal up, 4 diagonal down, 5 diagonal mix")
	fs.BoolVar(&f.opts.MaxMatch, "max-match", false, "search the largest font that fits every region")
	fs.BoolVar(&f.opts.Experimental, "experimental", false, "enable experimental features")
	fs.Uint64Var(&f.opts.Seed, "seed", 0, "random seed (default 42)")
	fs.StringVar(&f.opts.Glyphs, "glyphs", "", "glyph metrics: opentype (default), mono")
	fs.StringToStringVar(&f.opts.FontFiles, "font-file", nil, "register a font file as family=path.ttf")
}

func (f *optionFlags) registerRender(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.opts.Scale, "scale", 0, "PNG resolution factor (default 4)")
	fs.StringVar(&f.opts.Background, "background", "", "background colour")
	fs.BoolVar(&f.opts.Outlines, "outlines", false, "draw region outlines (svg)")
	fs.BoolVar(&f.opts.NoFillings, "no-fillings", false, "omit filling words")
}

// overrides maps flag names to the field they set.
var overrides = map[string]func(dst, src *pipeline.Options){
	"keywords":      func(d, s *pipeline.Options) { d.KeywordNum = s.KeywordNum },
	"width":         func(d, s *pipeline.Options) { d.Width = s.Width },
	"height":        func(d, s *pipeline.Options) { d.Height = s.Height },
	"keyword-color": func(d, s *pipeline.Options) { d.KeywordColor = s.KeywordColor },
	"filling-color": func(d, s *pipeline.Options) { d.FillingWordColor = s.FillingWordColor },
	"font":          func(d, s *pipeline.Options) { d.FontFamily = s.FontFamily },
	"colors":        func(d, s *pipeline.Options) { d.Colors = s.Colors },
	"plan":          func(d, s *pipeline.Options) { d.Plan = s.Plan },
	"max-font":      func(d, s *pipeline.Options) { d.MaxFontSize = s.MaxFontSize },
	"min-font":      func(d, s *pipeline.Options) { d.MinFontSize = s.MinFontSize },
	"filling-font":  func(d, s *pipeline.Options) { d.FillingFontSize = s.FillingFontSize },
	"angles":        func(d, s *pipeline.Options) { d.AngleMode = s.AngleMode },
	"max-match":     func(d, s *pipeline.Options) { d.MaxMatch = s.MaxMatch },
	"experimental":  func(d, s *pipeline.Options) { d.Experimental = s.Experimental },
	"seed":          func(d, s *pipeline.Options) { d.Seed = s.Seed },
	"glyphs":        func(d, s *pipeline.Options) { d.Glyphs = s.Glyphs },
	"scale":         func(d, s *pipeline.Options) { d.Scale = s.Scale },
	"background":    func(d, s *pipeline.Options) { d.Background = s.Background },
	"outlines":      func(d, s *pipeline.Options) { d.Outlines = s.Outlines },
	"no-fillings":   func(d, s *pipeline.Options) { d.NoFillings = s.NoFillings },
	"font-file": func(d, s *pipeline.Options) {
		if d.FontFiles == nil {
			d.FontFiles = make(map[string]string, len(s.FontFiles))
		}
		for family, path := range s.FontFiles {
			d.FontFiles[family] = path
		}
	},
}

// resolve loads the options file, if any, and applies the flags that were
// set on cmd.
func (f *optionFlags) resolve(cmd *cobra.Command) (pipeline.Options, error) {
	var opts pipeline.Options
	if f.config != "" {
		loaded, err := pipeline.LoadOptionsFile(f.config)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts = loaded
	}
	for name, apply := range overrides {
		if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
			apply(&opts, &f.opts)
		}
	}
	return opts, nil
}

// layoutCommand creates the layout command, the main entry point.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		in         inputFlags
		of         optionFlags
		output     string
		formatsStr string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Place words inside a shape",
		Long: `Place words inside a shape.

The layout command reads a word list, a region mask and the per-region
distance field, places the top keywords around each region's anchor points
and packs filling words into the remaining space.

It writes <output>.layout.json (re-renderable with 'render') plus one file
per requested format. Layouts are cached locally for faster subsequent runs.`,
		Example: `  shapewordle layout --words words.json --mask mask.json --field dist.json -f svg,png
  shapewordle layout -c wordle.toml --words words.json --mask mask.json --field dist.json --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := of.resolve(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
				opts.Formats = parseFormats(formatsStr)
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), in, opts, output, noCache)
		},
	}

	in.register(cmd)
	of.registerLayout(cmd)
	of.registerRender(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "wordle", "output base path")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached layout exists")

	return cmd
}

// runLayout loads the inputs, runs the pipeline and writes every output.
func (c *CLI) runLayout(ctx context.Context, in inputFlags, opts pipeline.Options, output string, noCache bool) error {
	prog := newProgress(c.Logger)

	input, err := in.load()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spin := startSpinner(ctx, os.Stderr, "Computing layout...")
	defer spin.Stop()

	result, err := runner.Execute(ctx, input, opts)
	if err != nil {
		spin.Fail("Layout failed")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	spin.Update("Writing artifacts...")
	base := trimExt(output)
	paths, err := writeArtifacts(result.Artifacts, base, false)
	if err != nil {
		return err
	}
	layoutPath := base + ".layout.json"
	if err := io.WriteLayoutFile(result.Layout, layoutPath); err != nil {
		return fmt.Errorf("write layout %s: %w", layoutPath, err)
	}
	spin.Stop()

	printSuccess("Layout complete")
	printFile(layoutPath)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats, result.CacheInfo.LayoutHit)
	for _, r := range result.Layout.Regions {
		if r.RolledBack {
			printWarning("region %d kept an earlier placement (%d of %d keywords)", r.ID, r.Placed, r.WordsNum)
		}
	}
	printNewline()
	printNextStep("Inspect", appName+" inspect "+layoutPath)
	prog.done("Done")

	return nil
}

// writeArtifacts writes each artifact next to base in a stable format order
// and returns the written paths.
func writeArtifacts(artifacts map[string][]byte, base string, keepExt bool) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := outputPath(base, format, keepExt && len(formats) == 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func trimExt(path string) string {
	return path[:len(path)-len(filepath.Ext(path))]
}
