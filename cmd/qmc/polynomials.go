package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/qmc/polynomial"
)

func newPolynomialsCmd(a *app) *cobra.Command {
	var (
		maxDegree int
		degree    int
	)
	cmd := &cobra.Command{
		Use:   "polynomials",
		Short: "Summarize or list the primitive polynomials modulo two",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(maxDegree)
			if err != nil {
				return err
			}
			a.logger.DebugContext(cmd.Context(), "polynomial table ready",
				"max_degree", table.MaxDegree(), "polynomials", table.Len())

			out := cmd.OutOrStdout()
			if degree > 0 {
				if degree > table.MaxDegree() {
					return fmt.Errorf("degree %d exceeds table degree %d", degree, table.MaxDegree())
				}
				for _, p := range table.Degree(degree) {
					if p == polynomial.Sentinel {
						break
					}
					fmt.Fprintln(out, p)
				}
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(tw, "degree\tcount\texpected\tdimensions\t\n")
			total := 0
			for d := 1; d <= table.MaxDegree(); d++ {
				expected, err := polynomial.ExpectedCount(d)
				if err != nil {
					return err
				}
				total += table.Count(d)
				fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t\n", d, table.Count(d), expected, total)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&maxDegree, "max-degree", polynomial.DefaultMaxDegree, "highest degree to enumerate")
	cmd.Flags().IntVar(&degree, "degree", 0, "list the encodings of one degree")
	return cmd
}

func loadTable(maxDegree int) (*polynomial.Table, error) {
	if maxDegree == polynomial.DefaultMaxDegree {
		return polynomial.Default()
	}
	return polynomial.New(maxDegree)
}
