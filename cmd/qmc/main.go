// Command qmc generates quasi-random point sets and compares their
// discrepancy.
//
//	qmc generate sobol 5 --count 1023 --output points.qmc --compression zstd
//	qmc stats --input points.qmc
//	qmc discrepancy --config grid.yaml --format json
//	qmc polynomials --degree 5
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
