package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/born-ml/adcheck/internal/catalog"
	"github.com/born-ml/adcheck/internal/functional"
	"github.com/born-ml/adcheck/internal/harness"
	"github.com/born-ml/adcheck/internal/parallel"
)

type runOptions struct {
	at       []string
	modes    []string
	failFast bool
	verbose  bool
	parallel bool
}

func (o *runOptions) addFlags(fs *pflag.FlagSet) {
	var all []string
	for _, m := range functional.Modes() {
		all = append(all, m.String())
	}
	fs.StringArrayVar(&o.at, "at", nil,
		"Argument value in YAML flow syntax, once per argument in order (e.g. --at 0.5 --at '[1, 2]'). Missing trailing arguments keep their defaults.")
	fs.StringSliceVar(&o.modes, "modes", all, "AD modes to check")
	fs.BoolVar(&o.failFast, "fail-fast", false, "Stop after the first failing scenario")
	fs.BoolVar(&o.verbose, "verbose", false, "Trace scenarios and skipped finite differences")
	fs.BoolVar(&o.parallel, "parallel", false, "Evaluate third-order finite differences on all CPUs")
}

func (o *runOptions) config() (harness.Config, error) {
	cfg := harness.DefaultConfig()
	cfg.FailFast = o.failFast
	cfg.Verbose = o.verbose
	if o.parallel {
		cfg.Steps.Parallel = parallel.DefaultConfig()
	}
	cfg.Modes = cfg.Modes[:0]
	for _, name := range o.modes {
		m, err := functional.ParseMode(name)
		if err != nil {
			return harness.Config{}, err
		}
		cfg.Modes = append(cfg.Modes, m)
	}
	return cfg, nil
}

func newRunCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run NAME",
		Short: "Check one catalog function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			values, err := e.ParseArgs(opts.at)
			if err != nil {
				return fmt.Errorf("%s: %w", e.Name, err)
			}
			cfg, err := opts.config()
			if err != nil {
				return err
			}

			klog.V(1).Infof("checking %s with %d modes", e.Name, len(cfg.Modes))
			rep := &reporter{}
			report := harness.Run(rep, cfg, e.Func, values...)
			printReport(cmd.OutOrStdout(), report)

			if rep.failures > 0 {
				return fmt.Errorf("%s: %d failures", e.Name, rep.failures)
			}
			return nil
		},
	}
	opts.addFlags(cmd.Flags())
	return cmd
}

func printReport(w io.Writer, report *harness.Report) {
	for _, s := range report.Scenarios {
		status := "ok"
		switch {
		case len(s.Failures) > 0:
			status = "FAIL"
		case s.Raised != nil:
			status = "raise"
		}
		fmt.Fprintf(w, "%-5s %-6s outputs=%d%s\n", status, s.Name, s.Outputs, formatSkipped(s.Skipped))
	}
}

// formatSkipped lists unchecked orders as order@output.
func formatSkipped(skips []harness.Skip) string {
	if len(skips) == 0 {
		return ""
	}
	parts := make([]string, len(skips))
	for i, sk := range skips {
		parts[i] = fmt.Sprintf("%d@%d", sk.Order, sk.Output)
	}
	return " unchecked=" + strings.Join(parts, ",")
}

// reporter is the assert.TestingT the harness reports to when running
// outside of go test.
type reporter struct {
	failures int
}

func (r *reporter) Errorf(format string, args ...any) {
	r.failures++
	klog.ErrorfDepth(1, format, args...)
}

func (r *reporter) Logf(format string, args ...any) {
	klog.InfofDepth(1, format, args...)
}
