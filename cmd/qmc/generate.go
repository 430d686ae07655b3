package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hupe1980/qmc"
	"github.com/hupe1980/qmc/persistence"
	"github.com/hupe1980/qmc/sequence"
)

type generateFlags struct {
	generatorFlags
	count       int
	output      string
	compression string
	format      string
}

// pointsDocument is the json form of a generated point set.
type pointsDocument struct {
	Kind      string      `json:"kind"`
	Dimension int         `json:"dimension"`
	Seed      uint64      `json:"seed"`
	Points    [][]float64 `json:"points"`
}

func newGenerateCmd(a *app) *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate KIND DIM",
		Short: "Draw points from a sobol, halton or uniform generator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, args, f)
		},
	}
	f.register(cmd)
	cmd.Flags().IntVarP(&f.count, "count", "n", 1023, "number of points")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write a point-set file instead of printing")
	cmd.Flags().StringVar(&f.compression, "compression", "none", "point-set file compression: none, zstd or lz4")
	cmd.Flags().StringVar(&f.format, "format", "text", "stdout format: text or json")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, args []string, f generateFlags) error {
	kind, dim, err := parseGenerator(args)
	if err != nil {
		return err
	}
	if f.count < 0 {
		return fmt.Errorf("invalid count %d", f.count)
	}
	if err := checkFormat(f.format); err != nil {
		return err
	}
	compression, err := persistence.ParseCompression(f.compression)
	if err != nil {
		return err
	}

	opts, seed := a.options(cmd, kind, f.generatorFlags)
	gen, err := qmc.New(kind, dim, opts...)
	if err != nil {
		return err
	}
	ps, err := persistence.Capture(gen, f.count)
	if err != nil {
		return err
	}
	ps.Kind = kind
	ps.Seed = seed
	ps.Flags = pointSetFlags(kind, f.generatorFlags)

	if f.output != "" {
		if err := persistence.SaveToFile(f.output, ps, compression); err != nil {
			return err
		}
		a.logger.WithKind(kind).WithDimension(dim).InfoContext(cmd.Context(), "point set written",
			"path", f.output, "points", ps.Count(), "compression", compression.String(),
			"fingerprint", fmt.Sprintf("%016x", ps.Fingerprint()))
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d points to %s (fingerprint %016x)\n",
			ps.Count(), f.output, ps.Fingerprint())
		return err
	}

	if f.format == "json" {
		c, err := a.codec()
		if err != nil {
			return err
		}
		doc := pointsDocument{Kind: kind.String(), Dimension: dim, Seed: seed, Points: make([][]float64, ps.Count())}
		for i := range doc.Points {
			doc.Points[i] = ps.Point(i)
		}
		data, err := c.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	return writePoints(cmd.OutOrStdout(), ps)
}

// pointSetFlags keeps only the variant flags that affect the given kind.
func pointSetFlags(kind sequence.Kind, f generatorFlags) persistence.Flags {
	var flags persistence.Flags
	switch kind {
	case sequence.KindSobol:
		if f.unit {
			flags |= persistence.FlagUnitInitialization
		}
	case sequence.KindHalton:
		if f.randomStart {
			flags |= persistence.FlagRandomStart
		}
		if f.randomShift {
			flags |= persistence.FlagRandomShift
		}
	}
	return flags
}

// writePoints prints one tab-separated point per line with the shortest
// representation that round-trips.
func writePoints(w io.Writer, ps *persistence.PointSet) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for i := 0; i < ps.Count(); i++ {
		buf = buf[:0]
		for k, v := range ps.Point(i) {
			if k > 0 {
				buf = append(buf, '\t')
			}
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
