// Package metric exports generator and report metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	collector, err := metric.NewPrometheusCollector(reg)
//	if err != nil {
//	    return err
//	}
//	gen, err := qmc.New(sequence.KindSobol, 10, qmc.WithMetricsCollector(collector))
package metric
