// Package main provides the CLI entrypoint for true-clone.
//
// true-clone loads an object graph described in YAML, deep-copies it and
// checks the copy against the original:
//   - every composite is a fresh object with the same template link
//   - shared and circular references keep their shape
//   - property flags, accessors and category payloads survive
package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"true-clone/clone"
	"true-clone/internal/graphyaml"
	"true-clone/internal/verify"
	"true-clone/object"
	"true-clone/options"
)

type app struct {
	verbose bool
	logger  *zap.Logger

	dump            bool
	maxDepth        int
	noHooks         bool
	noExtensibility bool
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "true-clone",
		Short: "Deep-copy object graphs and verify the copies",
		Long: `true-clone copies object graphs the way structured cloning does:
shared references stay shared, cycles stay cycles, and every copy is linked to
the same template as its original.

Graphs are written in YAML. Anchors and aliases describe shared references,
local tags such as !set, !map, !regexp and !date pick built-in categories.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}

			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	inspect := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Clone the graph in a YAML file and verify the clone",
		Long: `Loads the graph, clones it and compares the clone with the source.

Example:
  true-clone inspect graph.yaml --dump
  true-clone inspect graph.yaml --max-depth 64 --no-hooks`,
		Args: cobra.ExactArgs(1),
		RunE: a.runInspect,
	}
	inspect.Flags().BoolVar(&a.dump, "dump", false, "Print the cloned graph")
	inspect.Flags().IntVar(&a.maxDepth, "max-depth", 0, "Fail when composites nest deeper than this (0 = unlimited)")
	inspect.Flags().BoolVar(&a.noHooks, "no-hooks", false, "Ignore custom clone hooks")
	inspect.Flags().BoolVar(&a.noExtensibility, "no-extensibility", false, "Do not reproduce frozen, sealed and non-extensible states")

	root.AddCommand(inspect)

	return root
}

func (a *app) flags() options.FlagEnum {
	var flags options.FlagEnum = options.FlagAll
	if a.noHooks {
		flags &^= options.FlagHooks
	}
	if a.noExtensibility {
		flags &^= options.FlagExtensibility
	}

	return flags
}

func (a *app) runInspect(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	src, err := graphyaml.LoadFile(args[0], object.NewRealm())
	if err != nil {
		return err
	}

	cloner := clone.New(
		clone.WithLogger(a.logger.Named("clone")),
		clone.WithFlags(a.flags()),
		clone.WithMaxDepth(a.maxDepth),
	)

	dst, err := cloner.Clone(src)
	if err != nil {
		return fmt.Errorf("failed to clone %s: %w", args[0], err)
	}

	report := verify.Compare(src, dst)
	fmt.Fprintln(out, report.Summary())
	for _, d := range report.Warnings {
		fmt.Fprintln(out, d.String())
	}
	for _, d := range report.Errors {
		fmt.Fprintln(out, d.String())
	}

	if a.dump {
		dumper := spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}
		dumper.Fdump(out, dst)
	}

	if err := report.Error(); err != nil {
		return fmt.Errorf("clone of %s failed verification: %w", args[0], err)
	}

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
