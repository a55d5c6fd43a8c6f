package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/heft/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// --verbose lowers the CLI logger to debug before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   appName,
		Short: "heft weighs TypeScript and JavaScript modules",
		Long: `heft estimates the shippable weight of a TypeScript or JavaScript module.

It follows every relative import from an entry file, minifies each reachable
file once, and reports its brotli-compressed size along with totals for the
whole graph.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each file, import and cache lookup")

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.weightCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
