package stats

import (
	"math"

	"github.com/hupe1980/qmc/sequence"
)

// moments names the embedded Sequence. It stays unexported so every point
// reaches both the moments and the Warnock sums.
type moments = Sequence

// Discrepancy extends Sequence with the L2-star discrepancy of the
// accumulated points, computed with Warnock's closed form. The query methods
// of Sequence are promoted.
type Discrepancy struct {
	moments

	points  [][]float64
	weights []float64

	// Running Warnock terms: pair sum, single sum, and the constant 3^-d.
	pairs, singles float64
	constant       float64
	singleScale    float64
}

// NewDiscrepancy returns an empty discrepancy accumulator of dimension dim.
func NewDiscrepancy(dim int, optFns ...Option) (*Discrepancy, error) {
	d := &Discrepancy{}
	for _, fn := range optFns {
		fn(&d.opts)
	}
	if err := d.Reset(dim); err != nil {
		return nil, err
	}
	return d, nil
}

// Reset clears all samples and retained points. A dim of zero keeps the
// current dimension.
func (d *Discrepancy) Reset(dim int) error {
	if err := d.moments.Reset(dim); err != nil {
		return err
	}
	fd := float64(d.dim)
	d.points = d.points[:0]
	d.weights = d.weights[:0]
	d.pairs, d.singles = 0, 0
	d.constant = math.Pow(3, -fd)
	d.singleScale = math.Pow(2, 1-fd)
	return nil
}

// Add adds a point with unit weight.
func (d *Discrepancy) Add(point []float64) error {
	return d.AddWeighted(point, 1.0)
}

// AddSample adds a generator sample with its weight.
func (d *Discrepancy) AddSample(sample sequence.Sample) error {
	return d.AddWeighted(sample.Value, sample.Weight)
}

// AddWeighted adds a point with weight w and folds it into the Warnock sums
// against every retained point. On error the accumulator is left unchanged.
func (d *Discrepancy) AddWeighted(point []float64, w float64) error {
	if err := d.moments.AddWeighted(point, w); err != nil {
		return err
	}

	for i, q := range d.points {
		prod := 1.0
		for k, x := range point {
			prod *= 1 - math.Max(x, q[k])
		}
		d.pairs += 2 * w * d.weights[i] * prod
	}

	self, single := 1.0, 1.0
	for _, x := range point {
		self *= 1 - x
		single *= 1 - x*x
	}
	d.pairs += w * w * self
	d.singles += w * single

	d.points = append(d.points, append([]float64(nil), point...))
	d.weights = append(d.weights, w)
	return nil
}

// Discrepancy returns the L2-star discrepancy of the accumulated points.
func (d *Discrepancy) Discrepancy() (float64, error) {
	if err := d.require("discrepancy", 1); err != nil {
		return 0, err
	}
	w := d.wsum
	t2 := d.pairs/(w*w) - d.singleScale*d.singles/w + d.constant
	if t2 < 0 {
		return 0, nil
	}
	return math.Sqrt(t2), nil
}

// TrueRandomDiscrepancy returns the expected L2-star discrepancy of n
// independent uniform points in dim dimensions.
func TrueRandomDiscrepancy(dim, n int) float64 {
	if dim <= 0 || n <= 0 {
		return math.NaN()
	}
	fd := float64(dim)
	return math.Sqrt((math.Pow(2, -fd) - math.Pow(3, -fd)) / float64(n))
}
