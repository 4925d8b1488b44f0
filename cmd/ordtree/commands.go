package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/ordtree"
	"github.com/npillmayer/ordtree/btree"
	"github.com/npillmayer/ordtree/console"
	"github.com/npillmayer/ordtree/html"
	"github.com/npillmayer/ordtree/kvfile"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

// errNotFound makes `get` exit with a non-zero status for absent keys.
var errNotFound = errors.New("key not found")

type options struct {
	lowerBound int
	trace      string
	separator  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "ordtree",
		Short:         "Build and inspect ordered B-trees",
		Long:          "A command line interface to build B-trees from key/value files, look up keys and inspect the node structure.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupTracing(opts.trace)
		},
	}
	root.PersistentFlags().IntVarP(&opts.lowerBound, "lower-bound", "l", btree.DefaultLowerBound,
		"minimum number of entries per non-root node")
	root.PersistentFlags().StringVar(&opts.trace, "trace", "error", "trace level (error|info|debug)")
	root.PersistentFlags().StringVar(&opts.separator, "separator", "=", "separator between key and value")
	root.AddCommand(
		demoCmd(opts),
		getCmd(opts),
		dumpCmd(opts),
		dotCmd(opts),
		htmlCmd(opts),
	)
	return root
}

func setupTracing(level string) error {
	gtrace.CoreTracer = gologadapter.New()
	switch strings.ToLower(level) {
	case "error":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	case "info":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	case "debug":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	default:
		return fmt.Errorf("unknown trace level %q", level)
	}
	return nil
}

func demoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Build a one-entry tree and look up keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := ordtree.New(1, "taco", opts.lowerBound)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tree.String())
			for _, k := range []int{1, 2} {
				if v, ok := tree.Get(k); ok {
					fmt.Fprintf(out, "get(%d) = %s\n", k, v)
				} else {
					fmt.Fprintf(out, "get(%d) = <absent>\n", k)
				}
			}
			return nil
		},
	}
}

func getCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <key>",
		Short: "Load a key/value file and look up a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			v, ok := tree.Get(args[1])
			if !ok {
				return fmt.Errorf("%w: %s", errNotFound, args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func dumpCmd(opts *options) *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the node structure of a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			config := console.ConfigFromTerminal()
			if width > 0 {
				config.LineWidth = width
			}
			return console.Dump(cmd.OutOrStdout(), tree, config)
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 0, "line width (default: terminal width)")
	return cmd
}

func dotCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dot <file>",
		Short: "Print the node structure in Graphviz DOT format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return ordtree.Tree2Dot(tree, cmd.OutOrStdout())
		},
	}
}

func htmlCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "html <file>",
		Short: "Print the node structure as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if err := html.Render(cmd.OutOrStdout(), tree); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func loadTree(ctx context.Context, name string, opts *options) (*ordtree.BTree[string, string], error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.lowerBound < 1 {
		return nil, fmt.Errorf("%w: lower bound must be >= 1, is %d",
			ordtree.ErrInvalidConfiguration, opts.lowerBound)
	}
	loader, err := kvfile.NewLoader(name, kvfile.Options{
		LowerBound: opts.lowerBound,
		Separator:  opts.separator,
	})
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx)
}
