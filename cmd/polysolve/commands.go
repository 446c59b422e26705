// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/polysolve/harness"
)

func makePolysolveCommand() *cobra.Command {
	cfg := defaultCLIConfig()
	command := &cobra.Command{
		Use:   "polysolve [command] (flags)",
		Short: "polysolve runs dense factorization and recurrence kernels.",
		Long: `polysolve runs dense factorization and recurrence kernels (LU, Cholesky,
modified Gram-Schmidt QR, triangular solve, Durbin-Levinson) on the standard
dataset sizes. Use it to:

- time a kernel under a sequential or worker-pool strategy (run, bench).
- check that both strategies produce the same golden dump and that the
  result agrees with a float64 reference solver (verify).
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cfg.setupLogger(cmd.ErrOrStderr())
		},
	}
	cfg.bindFlags(command.PersistentFlags())

	command.AddCommand(makeListCommand())
	command.AddCommand(makeRunCommand(cfg))
	command.AddCommand(makeBenchCommand(cfg))
	command.AddCommand(makeVerifyCommand(cfg))
	command.AddCommand(makeInfoCommand(cfg))

	return command
}

func makeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered kernels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KERNEL\tARRAYS\tSUMMARY")
			for _, k := range harness.Kernels() {
				fmt.Fprintf(tw, "%s\t%v\t%s\n", k.Name, k.Arrays, k.Summary)
			}

			return tw.Flush()
		},
	}
}

func makeRunCommand(cfg *cliConfig) *cobra.Command {
	var jobs int
	runCmdFunc := func(cmd *cobra.Command, args []string) error {
		names, err := kernelNames(args)
		if err != nil {
			return err
		}
		ex, release, err := cfg.executor()
		if err != nil {
			return err
		}
		defer release()

		hc := cfg.harnessConfig(ex, cmd.ErrOrStderr())
		cfg.logger.Debug("starting run", "kernels", names, "size", hc.Size, "type", hc.Precision, "jobs", jobs)
		results, err := harness.RunAll(cmd.Context(), names, hc, jobs)
		if err != nil {
			return err
		}
		for _, res := range results {
			cfg.logger.Info("kernel finished", "kernel", res.Kernel, "size", res.Size, "elapsed", res.Elapsed)
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-10s %-8s workers=%-3d %.6f\n",
				res.Kernel, res.Size, res.Precision, res.Workers, res.Elapsed.Seconds())
		}

		return nil
	}

	cmd := &cobra.Command{
		Use:   "run <kernel>... | all",
		Short: "Run kernels once and print the kernel time in seconds",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCmdFunc,
	}
	cmd.Flags().IntVar(&jobs, "jobs", 1, "kernels to run concurrently (0 means no limit)")

	return cmd
}

func makeBenchCommand(cfg *cliConfig) *cobra.Command {
	var iterations int
	runCmdFunc := func(cmd *cobra.Command, args []string) error {
		if _, err := harness.Lookup(args[0]); err != nil {
			return err
		}
		ex, release, err := cfg.executor()
		if err != nil {
			return err
		}
		defer release()

		hc := cfg.harnessConfig(ex, cmd.ErrOrStderr())
		hc.Iterations = iterations
		st, err := harness.Bench(cmd.Context(), args[0], hc)
		if err != nil {
			return err
		}
		cfg.logger.Info("benchmark finished", "kernel", st.Kernel, "size", st.Size, "iterations", st.Iterations, "elapsed", st.Mean)
		fmt.Fprintf(cmd.OutOrStdout(),
			"%s %s %s workers=%d iterations=%d mean=%.6f median=%.6f stddev=%.6f min=%.6f max=%.6f\n",
			st.Kernel, st.Size, st.Precision, st.Workers, st.Iterations,
			st.Mean.Seconds(), st.Median.Seconds(), st.StdDev.Seconds(), st.Min.Seconds(), st.Max.Seconds())

		return nil
	}

	cmd := &cobra.Command{
		Use:   "bench <kernel>",
		Short: "Time a kernel over several fresh runs and print summary statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runCmdFunc,
	}
	cmd.Flags().IntVar(&iterations, "iterations", harness.DefaultIterations, "number of timed runs")

	return cmd
}

var errVerifyFailed = errors.New("verification failed")

func makeVerifyCommand(cfg *cliConfig) *cobra.Command {
	runCmdFunc := func(cmd *cobra.Command, args []string) error {
		names, err := kernelNames(args)
		if err != nil {
			return err
		}
		ex, release, err := cfg.executor()
		if err != nil {
			return err
		}
		defer release()

		hc := cfg.harnessConfig(ex, cmd.ErrOrStderr())
		failed := 0
		for _, name := range names {
			rep, err := harness.Verify(cmd.Context(), name, hc)
			if err != nil {
				return err
			}
			verdict := "OK"
			if vErr := rep.Err(); vErr != nil {
				verdict = "FAIL"
				failed++
				cfg.logger.Error("verification failed", "kernel", name, "err", vErr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-10s %-8s sequential=%.6f parallel=%.6f residual=%.3g %s\n",
				name, rep.Size, rep.Precision, rep.Sequential.Elapsed.Seconds(), rep.Parallel.Elapsed.Seconds(),
				rep.Residual, verdict)
		}
		if failed > 0 {
			return fmt.Errorf("%w: %d of %d kernels", errVerifyFailed, failed, len(names))
		}

		return nil
	}

	return &cobra.Command{
		Use:   "verify <kernel>... | all",
		Short: "Compare sequential and parallel dumps and check results against a reference solver",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCmdFunc,
	}
}

func makeInfoCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the host platform and the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "platform: %s\n", harness.Platform())
			fmt.Fprintf(out, "size: %s\ntype: %s\nstrategy: %s\n", cfg.size, cfg.precision, cfg.strategy)

			return nil
		},
	}
}
