package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/heft/internal/config"
	"github.com/matzehuels/heft/pkg/importgraph"
	"github.com/matzehuels/heft/pkg/measure"
	"github.com/matzehuels/heft/pkg/observability"
	"github.com/matzehuels/heft/pkg/resolve"
	"github.com/matzehuels/heft/pkg/walk"
)

// weightOpts holds the command-line flags for the weight command.
// Flags override heft.toml and HEFT_* variables only when set.
type weightOpts struct {
	path        string // entry file
	configPath  string // explicit heft.toml
	workers     int    // concurrent measurements
	external    bool   // list bare specifiers instead of failing
	cache       bool   // enable the measurement cache
	noSource    bool   // skip the source dump
	json        bool   // print the report as JSON
	table       bool   // print a summary table instead of per-file sections
	output      string // also write the JSON report to this file
	graph       string // write the import graph (.dot or .svg)
	interactive bool   // browse the report in a terminal UI
}

// weightCommand creates the weight command.
func (c *CLI) weightCommand() *cobra.Command {
	var opts weightOpts

	cmd := &cobra.Command{
		Use:   "weight",
		Short: "Measure a module and everything it imports",
		Long: `Measure a module and everything it imports.

Starting from --path, every relative import is resolved and each reachable
file is minified and brotli-compressed exactly once. The report lists each
file with its source, compressed size and raw length, followed by totals.`,
		Example: `  heft weight -p src/index.ts
  heft weight -p src/index.ts --no-source --workers 8
  heft weight -p src/index.ts --json -o report.json --graph deps.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return c.runWeight(ctx, opts, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "entry file to measure")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default: nearest heft.toml)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "files to measure concurrently")
	cmd.Flags().BoolVar(&opts.external, "external", false, "list package imports instead of failing on them")
	cmd.Flags().BoolVar(&opts.cache, "cache", false, "cache measurements between runs")
	cmd.Flags().BoolVar(&opts.noSource, "no-source", false, "do not print file sources")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print a summary table")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the JSON report to a file")
	cmd.Flags().StringVar(&opts.graph, "graph", "", "write the import graph to a .dot or .svg file")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the report interactively")
	_ = cmd.MarkFlagRequired("path")
	cmd.MarkFlagsMutuallyExclusive("json", "interactive")
	registerWeightCompletions(cmd)

	return cmd
}

// config loads settings for the entry file and applies explicitly set flags.
func (o weightOpts) config(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFor(o.path, o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("external") {
		cfg.External = o.external
	}
	if flags.Changed("cache") {
		cfg.Cache.Enabled = o.cache
	}
	if flags.Changed("no-source") {
		cfg.Output.Source = !o.noSource
	}
	if flags.Changed("json") {
		cfg.Output.JSON = o.json
	}
	if flags.Changed("graph") {
		cfg.Output.Graph = o.graph
	}
	return cfg, cfg.Validate()
}

func (c *CLI) runWeight(ctx context.Context, opts weightOpts, cfg *config.Config) error {
	logger := loggerFromContext(ctx)
	if cfg.Path != "" {
		logger.Debug("config loaded", "file", cfg.Path)
	}

	resolver, err := resolve.New(cfg.ResolveOptions())
	if err != nil {
		return err
	}
	esb, err := measure.NewESBuild(cfg.MeasureOptions())
	if err != nil {
		return err
	}

	var measurer measure.Measurer = esb
	if cfg.Cache.Enabled {
		store, err := newCache(cfg.Cache)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		defer store.Close()
		measurer = measure.NewCached(esb, store, cfg.Cache.TTL.Duration)
	}

	hooks := newLogHooks(logger)
	hooks.install()
	defer observability.Reset()

	w := walk.New(measurer, resolver, walk.Options{
		Workers:  cfg.Workers,
		External: cfg.External,
		Logger:   logger,
	})

	prog := newProgress(logger)
	var spin *Spinner
	if !cfg.Output.JSON && term.IsTerminal(int(os.Stderr.Fd())) {
		spin = newSpinnerWithContext(ctx, os.Stderr, "Weighing "+opts.path)
		spin.Start()
	}
	report, err := w.Walk(ctx, opts.path)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Weighed %d files", len(report.Files)))
	if cfg.Cache.Enabled {
		logger.Info("Cache", "hits", hooks.hits.Load(), "misses", hooks.misses.Load())
	}

	g := report.Graph()
	for _, e := range importgraph.Cycles(g) {
		logger.Warn("import cycle", "from", e.From, "to", e.To)
	}

	if opts.output != "" {
		if err := walk.ExportJSON(report, opts.output); err != nil {
			return err
		}
		logger.Info("Wrote report", "file", opts.output)
	}
	if cfg.Output.Graph != "" {
		if err := writeGraph(ctx, g, report.Root, cfg.Output.Graph); err != nil {
			return err
		}
		logger.Info("Wrote graph", "file", cfg.Output.Graph)
	}

	switch {
	case cfg.Output.JSON:
		return walk.WriteJSON(report, c.Out)
	case opts.interactive:
		return browse(report)
	case opts.table:
		printTable(c.Out, report)
		printTotals(c.Out, report)
		return nil
	default:
		printReport(c.Out, report, cfg.Output.Source)
		return nil
	}
}
