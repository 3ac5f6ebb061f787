// Package main provides the adcheck CLI: it runs the AD equivalence check on
// the built-in catalog of functions.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/born-ml/adcheck/internal/catalog"
)

const version = "v0.0.1-dev"

func main() {
	err := newRootCommand().Execute()
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "adcheck",
		Short: "Check automatic differentiation against finite differences",
		Long: `adcheck evaluates a catalog function under every combination of
differentiated and fixed arguments and every AD mode, and compares values
and derivatives up to third order with finite-difference estimates.`,
		SilenceUsage: true,
	}

	// klog flags (-v, --logtostderr, ...) are shared by every command.
	goflags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(goflags)
	root.PersistentFlags().AddGoFlagSet(goflags)

	root.AddCommand(
		newVersionCommand(),
		newListCommand(),
		newRunCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "adcheck %s\n", version)
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog functions and their default arguments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, name := range catalog.Names() {
				e, err := catalog.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%-14s %s\n", e.Name, e.Doc)
				for i, a := range e.Args {
					fmt.Fprintf(w, "%14s   arg %d: %v\n", "", i, a)
				}
			}
			return nil
		},
	}
}
