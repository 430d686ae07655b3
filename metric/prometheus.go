package metric

import (
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/hupe1980/qmc"
)

// Namespace prefixes every metric name.
const Namespace = "qmc"

var _ qmc.MetricsCollector = (*PrometheusCollector)(nil)

// PrometheusCollector implements qmc.MetricsCollector on client_golang
// collectors.
type PrometheusCollector struct {
	generators       *prometheus.CounterVec
	generatorLatency *prometheus.HistogramVec
	draws            *prometheus.CounterVec
	reportPoints     *prometheus.CounterVec
	reportLatency    *prometheus.HistogramVec
	discrepancy      *prometheus.GaugeVec
}

// NewPrometheusCollector creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &PrometheusCollector{
		generators: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "generators_total",
			Help:      "Generator constructions by kind and status.",
		}, []string{"kind", "status"}),
		generatorLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "generator_construct_seconds",
			Help:      "Time spent deriving direction numbers, bases and offsets.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"kind"}),
		draws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "draws_total",
			Help:      "Points drawn from instrumented generators.",
		}, []string{"kind", "status"}),
		reportPoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "report_points_total",
			Help:      "Points accumulated by discrepancy report cells.",
		}, []string{"kind"}),
		reportLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "report_cell_seconds",
			Help:      "Time to evaluate one report cell.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		discrepancy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "discrepancy",
			Help:      "Last L2-star discrepancy per generator and dimension.",
		}, []string{"kind", "dimension"}),
	}

	for _, col := range []prometheus.Collector{
		c.generators, c.generatorLatency, c.draws,
		c.reportPoints, c.reportLatency, c.discrepancy,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordGenerator implements qmc.MetricsCollector.
func (c *PrometheusCollector) RecordGenerator(kind string, _ int, d time.Duration, err error) {
	c.generators.WithLabelValues(kind, status(err)).Inc()
	c.generatorLatency.WithLabelValues(kind).Observe(d.Seconds())
}

// RecordDraw implements qmc.MetricsCollector.
func (c *PrometheusCollector) RecordDraw(kind string, err error) {
	c.draws.WithLabelValues(kind, status(err)).Inc()
}

// RecordDiscrepancy implements qmc.MetricsCollector.
func (c *PrometheusCollector) RecordDiscrepancy(kind string, dim, points int, value float64, d time.Duration) {
	c.reportPoints.WithLabelValues(kind).Add(float64(points))
	c.reportLatency.WithLabelValues(kind).Observe(d.Seconds())
	c.discrepancy.WithLabelValues(kind, strconv.Itoa(dim)).Set(value)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// WriteText gathers g and writes every family in the Prometheus text
// exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
