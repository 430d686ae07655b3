package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/qmc"
	"github.com/hupe1980/qmc/persistence"
	"github.com/hupe1980/qmc/stats"
)

type statsFlags struct {
	generatorFlags
	count       int
	input       string
	correlation bool
	format      string
}

// summary is the json form of a statistics run.
type summary struct {
	Kind          string      `json:"kind"`
	Samples       int         `json:"samples"`
	Mean          []float64   `json:"mean"`
	StdDev        []float64   `json:"stddev"`
	ErrorEstimate []float64   `json:"error_estimate"`
	Skewness      []float64   `json:"skewness"`
	Kurtosis      []float64   `json:"kurtosis"`
	Min           []float64   `json:"min"`
	Max           []float64   `json:"max"`
	Correlation   [][]float64 `json:"correlation,omitempty"`
}

func newStatsCmd(a *app) *cobra.Command {
	var f statsFlags
	cmd := &cobra.Command{
		Use:   "stats [KIND DIM]",
		Short: "Accumulate moments of generated points or of a point-set file",
		Args: func(cmd *cobra.Command, args []string) error {
			if f.input != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStats(cmd, args, f)
		},
	}
	f.register(cmd)
	cmd.Flags().IntVarP(&f.count, "count", "n", 1023, "number of points to draw")
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "read points from a point-set file")
	cmd.Flags().BoolVar(&f.correlation, "correlation", false, "also compute the correlation matrix")
	cmd.Flags().StringVar(&f.format, "format", "text", "output format: text or json")
	return cmd
}

func (a *app) runStats(cmd *cobra.Command, args []string, f statsFlags) error {
	if err := checkFormat(f.format); err != nil {
		return err
	}

	var ps *persistence.PointSet
	if f.input != "" {
		loaded, err := persistence.LoadFromFile(f.input)
		if err != nil {
			return err
		}
		ps = loaded
	} else {
		kind, dim, err := parseGenerator(args)
		if err != nil {
			return err
		}
		opts, seed := a.options(cmd, kind, f.generatorFlags)
		gen, err := qmc.New(kind, dim, opts...)
		if err != nil {
			return err
		}
		if ps, err = persistence.Capture(gen, f.count); err != nil {
			return err
		}
		ps.Kind, ps.Seed = kind, seed
	}

	var statOpts []stats.Option
	if !f.correlation {
		statOpts = append(statOpts, stats.WithoutCovariance())
	}
	acc, err := stats.NewSequence(ps.Dimension, statOpts...)
	if err != nil {
		return err
	}
	for i := 0; i < ps.Count(); i++ {
		if err := acc.Add(ps.Point(i)); err != nil {
			return err
		}
	}

	s, err := summarize(acc, f.correlation)
	if err != nil {
		return err
	}
	s.Kind = ps.Kind.String()

	if f.format == "json" {
		c, err := a.codec()
		if err != nil {
			return err
		}
		data, err := c.Marshal(s)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	return writeSummary(cmd.OutOrStdout(), s)
}

func summarize(acc *stats.Sequence, correlation bool) (summary, error) {
	s := summary{Samples: acc.Samples()}
	queries := []struct {
		dst *[]float64
		fn  func() ([]float64, error)
	}{
		{&s.Mean, acc.Mean},
		{&s.StdDev, acc.StandardDeviation},
		{&s.ErrorEstimate, acc.ErrorEstimate},
		{&s.Skewness, acc.Skewness},
		{&s.Kurtosis, acc.Kurtosis},
		{&s.Min, acc.Min},
		{&s.Max, acc.Max},
	}
	for _, q := range queries {
		v, err := q.fn()
		if err != nil {
			return s, err
		}
		*q.dst = v
	}
	if correlation {
		corr, err := acc.Correlation()
		if err != nil {
			return s, err
		}
		s.Correlation = corr
	}
	return s, nil
}

func writeSummary(w io.Writer, s summary) error {
	fmt.Fprintf(w, "%s: %d samples\n", s.Kind, s.Samples)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "dim\tmean\tstddev\terror\tskewness\tkurtosis\tmin\tmax\t\n")
	for k := range s.Mean {
		fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.3e\t%.4f\t%.4f\t%.6f\t%.6f\t\n",
			k+1, s.Mean[k], s.StdDev[k], s.ErrorEstimate[k], s.Skewness[k], s.Kurtosis[k], s.Min[k], s.Max[k])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(s.Correlation) == 0 {
		return nil
	}

	fmt.Fprintln(w, "correlation:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, row := range s.Correlation {
		for _, v := range row {
			fmt.Fprintf(tw, "%.4f\t", v)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
