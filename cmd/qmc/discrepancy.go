package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/qmc/report"
)

type discrepancyFlags struct {
	dimensions  []int
	log2Points  int
	concurrency int
	seed        uint64
	format      string
}

func newDiscrepancyCmd(a *app) *cobra.Command {
	var f discrepancyFlags
	cmd := &cobra.Command{
		Use:   "discrepancy",
		Short: "Compare the L2-star discrepancy of the configured generators",
		Long: `Evaluates every configured generator in every configured dimension with
2^j - 1 points and prints the discrepancy next to the expectation for
uniformly random points. Flags override the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDiscrepancy(cmd, f)
		},
	}
	cmd.Flags().IntSliceVar(&f.dimensions, "dimensions", nil, "dimensions to evaluate")
	cmd.Flags().IntVarP(&f.log2Points, "log2-points", "j", 0, "evaluate 2^j - 1 points per cell")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "cells evaluated at once")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for the seeded generators")
	cmd.Flags().StringVar(&f.format, "format", "text", "output format: text or json")
	return cmd
}

func (a *app) runDiscrepancy(cmd *cobra.Command, f discrepancyFlags) error {
	if err := checkFormat(f.format); err != nil {
		return err
	}

	cfg := a.cfg
	flags := cmd.Flags()
	if flags.Changed("dimensions") {
		cfg.Dimensions = f.dimensions
	}
	if flags.Changed("log2-points") {
		cfg.Log2Points = f.log2Points
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}

	opts := []report.Option{report.WithLogger(a.logger)}
	if a.collector != nil {
		opts = append(opts, report.WithMetricsCollector(a.collector))
	}
	r, err := report.Run(cmd.Context(), cfg, opts...)
	if err != nil {
		return err
	}

	if f.format == "json" {
		return report.Encode(cmd.OutOrStdout(), r, cfg.Codec)
	}
	if err := report.WriteText(cmd.OutOrStdout(), r); err != nil {
		return err
	}

	best := r.Best()
	out := cmd.OutOrStdout()
	for _, dim := range r.Dimensions() {
		fmt.Fprintf(out, "best in dimension %d: %s\n", dim, best[dim])
	}
	return nil
}
