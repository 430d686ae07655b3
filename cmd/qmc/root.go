package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hupe1980/qmc"
	"github.com/hupe1980/qmc/codec"
	"github.com/hupe1980/qmc/metric"
	"github.com/hupe1980/qmc/report"
	"github.com/hupe1980/qmc/sequence"
)

// app holds the state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	metrics    bool
	codecName  string

	cfg       report.Config
	logger    *qmc.Logger
	registry  *prometheus.Registry
	collector *metric.PrometheusCollector
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "qmc",
		Short:         "Quasi-random sequence generator and discrepancy toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.registry == nil {
				return nil
			}
			return metric.WriteText(cmd.ErrOrStderr(), a.registry)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML config file (defaults apply when empty)")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.BoolVar(&a.metrics, "metrics", false, "print Prometheus metrics to stderr on exit")
	flags.StringVar(&a.codecName, "codec", "", fmt.Sprintf("codec for json output %v", codec.Names()))

	root.AddCommand(
		newGenerateCmd(a),
		newStatsCmd(a),
		newDiscrepancyCmd(a),
		newPolynomialsCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = report.DefaultConfig()
	if a.configPath != "" {
		cfg, err := report.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.codecName != "" {
		if _, ok := codec.ByName(a.codecName); !ok {
			return fmt.Errorf("unknown codec %q", a.codecName)
		}
		a.cfg.Codec = a.codecName
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", a.logLevel, err)
	}
	a.logger = qmc.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if a.metrics {
		a.registry = prometheus.NewRegistry()
		collector, err := metric.NewPrometheusCollector(a.registry)
		if err != nil {
			return err
		}
		a.collector = collector
	}
	return nil
}

// generatorFlags are the construction flags shared by generate and stats.
type generatorFlags struct {
	seed        uint64
	unit        bool
	randomStart bool
	randomShift bool
}

func (f *generatorFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "generator seed (package default when unset)")
	cmd.Flags().BoolVar(&f.unit, "unit", false, "sobol: unit direction-number initialization")
	cmd.Flags().BoolVar(&f.randomStart, "random-start", false, "halton: random start offsets")
	cmd.Flags().BoolVar(&f.randomShift, "random-shift", false, "halton: random shift")
}

// options translates the flags into façade options. The returned seed is the
// one the generator will actually use.
func (a *app) options(cmd *cobra.Command, kind sequence.Kind, f generatorFlags) ([]qmc.Option, uint64) {
	opts := []qmc.Option{
		qmc.WithLogger(a.logger),
		qmc.WithUnitInitialization(f.unit),
		qmc.WithRandomStart(f.randomStart),
		qmc.WithRandomShift(f.randomShift),
	}
	if a.collector != nil {
		opts = append(opts, qmc.WithMetricsCollector(a.collector))
	}

	seed := qmc.DefaultSeed(kind)
	if cmd.Flags().Changed("seed") {
		seed = f.seed
		opts = append(opts, qmc.WithSeed(seed))
	}
	// Unit Sobol direction numbers do not depend on the seed.
	if kind == sequence.KindSobol && f.unit {
		seed = 0
	}
	return opts, seed
}

// parseGenerator parses the KIND DIM positional arguments.
func parseGenerator(args []string) (sequence.Kind, int, error) {
	kind, err := sequence.ParseKind(args[0])
	if err != nil {
		return 0, 0, err
	}
	dim, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid dimension %q: %w", args[1], err)
	}
	return kind, dim, nil
}

func (a *app) codec() (codec.Codec, error) {
	c, ok := codec.ByName(a.cfg.Codec)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", a.cfg.Codec)
	}
	return c, nil
}

func checkFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}
}
