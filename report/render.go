package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hupe1980/qmc/codec"
)

// WriteText renders the report as an aligned table, one row per cell.
func WriteText(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "generator\tdimension\tpoints\tdiscrepancy\ttrue random\tratio\t\n")
	for _, c := range r.Cells {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.3e\t%.3e\t%.3f\t\n",
			c.Generator, c.Dimension, c.Points, c.Discrepancy, c.TrueRandom, c.Ratio())
	}
	return tw.Flush()
}

// Encode writes the report with the named codec.
func Encode(w io.Writer, r *Report, codecName string) error {
	c, ok := codec.ByName(codecName)
	if !ok {
		return fmt.Errorf("unknown codec %q", codecName)
	}
	data, err := c.Marshal(r)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Decode reads a report written by Encode.
func Decode(data []byte, codecName string) (*Report, error) {
	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", codecName)
	}
	var r Report
	if err := c.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
