package stats

import (
	"math"

	"github.com/hupe1980/qmc/sequence"
)

// Option configures an accumulator.
type Option func(*options)

type options struct {
	noCovariance bool
}

// WithoutCovariance skips the d-by-d co-moment matrix, for dimensions where it
// would not fit in memory.
func WithoutCovariance() Option {
	return func(o *options) {
		o.noCovariance = true
	}
}

// Sequence accumulates weighted statistics of d-dimensional points.
type Sequence struct {
	opts options
	dim  int
	n    int

	// Compensated sums give the mean.
	wsum, wcomp float64
	sum, comp   []float64

	// Running central moments.
	mean, m2, m3, m4 []float64
	cov              []float64

	min, max []float64
	delta    []float64
}

// NewSequence returns an empty accumulator of dimension dim.
func NewSequence(dim int, optFns ...Option) (*Sequence, error) {
	s := &Sequence{}
	for _, fn := range optFns {
		fn(&s.opts)
	}
	if err := s.Reset(dim); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset clears all samples and switches to dimension dim. A dim of zero keeps
// the current dimension.
func (s *Sequence) Reset(dim int) error {
	if dim == 0 && s.dim > 0 {
		dim = s.dim
	}
	if dim <= 0 {
		return &sequence.ErrInvalidDimension{Dimension: dim}
	}

	if dim != s.dim || s.sum == nil {
		s.dim = dim
		s.sum = make([]float64, dim)
		s.comp = make([]float64, dim)
		s.mean = make([]float64, dim)
		s.m2 = make([]float64, dim)
		s.m3 = make([]float64, dim)
		s.m4 = make([]float64, dim)
		s.min = make([]float64, dim)
		s.max = make([]float64, dim)
		s.delta = make([]float64, dim)
		s.cov = nil
		if !s.opts.noCovariance {
			s.cov = make([]float64, dim*dim)
		}
	} else {
		clear(s.sum)
		clear(s.comp)
		clear(s.mean)
		clear(s.m2)
		clear(s.m3)
		clear(s.m4)
		clear(s.min)
		clear(s.max)
		clear(s.cov)
	}

	s.n = 0
	s.wsum, s.wcomp = 0, 0
	return nil
}

// Dimension returns the point dimension.
func (s *Sequence) Dimension() int { return s.dim }

// Samples returns the number of points added.
func (s *Sequence) Samples() int { return s.n }

// WeightSum returns the sum of the weights added.
func (s *Sequence) WeightSum() float64 { return s.wsum }

// Add adds a point with unit weight.
func (s *Sequence) Add(point []float64) error {
	return s.AddWeighted(point, 1.0)
}

// AddSample adds a generator sample with its weight.
func (s *Sequence) AddSample(sample sequence.Sample) error {
	return s.AddWeighted(sample.Value, sample.Weight)
}

// AddWeighted adds a point with weight w. On error the accumulator is left
// unchanged.
func (s *Sequence) AddWeighted(point []float64, w float64) error {
	if err := s.check(point, w); err != nil {
		return err
	}

	prev := s.wsum
	s.wsum, s.wcomp = kahan(s.wsum, s.wcomp, w)
	total := prev + w

	for k, x := range point {
		s.sum[k], s.comp[k] = kahan(s.sum[k], s.comp[k], w*x)

		d := x - s.mean[k]
		s.delta[k] = d
		dn := d / total
		m2, m3 := s.m2[k], s.m3[k]

		s.m4[k] += d*d*d*d*prev*w*(prev*prev-prev*w+w*w)/(total*total*total) +
			6*dn*dn*w*w*m2 - 4*dn*w*m3
		s.m3[k] += d*d*d*prev*w*(prev-w)/(total*total) - 3*dn*w*m2
		s.m2[k] += d * d * prev * w / total
		s.mean[k] += dn * w

		if s.n == 0 || x < s.min[k] {
			s.min[k] = x
		}
		if s.n == 0 || x > s.max[k] {
			s.max[k] = x
		}
	}

	if s.cov != nil {
		for i := range s.dim {
			wi := w * s.delta[i]
			row := s.cov[i*s.dim : (i+1)*s.dim]
			for j := range row {
				row[j] += wi * (point[j] - s.mean[j])
			}
		}
	}

	s.n++
	return nil
}

func (s *Sequence) check(point []float64, w float64) error {
	if len(point) != s.dim {
		return &ErrDimensionMismatch{Expected: s.dim, Actual: len(point)}
	}
	if !(w > 0) || math.IsInf(w, 0) {
		return ErrInvalidWeight
	}
	return nil
}

// kahan adds x to the compensated sum (sum, c).
func kahan(sum, c, x float64) (float64, float64) {
	y := x - c
	t := sum + y
	return t, (t - sum) - y
}

func (s *Sequence) require(name string, n int) error {
	if s.n < n {
		return &ErrInsufficientSamples{Statistic: name, Required: n, Got: s.n}
	}
	return nil
}

// Mean returns the weighted mean of every dimension.
func (s *Sequence) Mean() ([]float64, error) {
	if err := s.require("mean", 1); err != nil {
		return nil, err
	}
	out := make([]float64, s.dim)
	for k := range out {
		out[k] = s.sum[k] / s.wsum
	}
	return out, nil
}

// Variance returns the bias-corrected weighted variance of every dimension.
func (s *Sequence) Variance() ([]float64, error) {
	if err := s.require("variance", 2); err != nil {
		return nil, err
	}
	out := make([]float64, s.dim)
	for k := range out {
		out[k] = s.variance(k)
	}
	return out, nil
}

func (s *Sequence) variance(k int) float64 {
	n := float64(s.n)
	return s.m2[k] / s.wsum * n / (n - 1)
}

// StandardDeviation returns the square root of Variance.
func (s *Sequence) StandardDeviation() ([]float64, error) {
	v, err := s.Variance()
	if err != nil {
		return nil, err
	}
	for k := range v {
		v[k] = math.Sqrt(v[k])
	}
	return v, nil
}

// ErrorEstimate returns the standard error of the mean of every dimension.
func (s *Sequence) ErrorEstimate() ([]float64, error) {
	v, err := s.Variance()
	if err != nil {
		return nil, err
	}
	n := float64(s.n)
	for k := range v {
		v[k] = math.Sqrt(v[k] / n)
	}
	return v, nil
}

// Skewness returns the bias-corrected skewness of every dimension. A dimension
// with zero variance has zero skewness.
func (s *Sequence) Skewness() ([]float64, error) {
	if err := s.require("skewness", 3); err != nil {
		return nil, err
	}
	n := float64(s.n)
	adj := n * n / ((n - 1) * (n - 2))
	out := make([]float64, s.dim)
	for k := range out {
		v := s.variance(k)
		if v == 0 {
			continue
		}
		out[k] = adj * (s.m3[k] / s.wsum) / (v * math.Sqrt(v))
	}
	return out, nil
}

// Kurtosis returns the bias-corrected excess kurtosis of every dimension. A
// dimension with zero variance has zero kurtosis.
func (s *Sequence) Kurtosis() ([]float64, error) {
	if err := s.require("kurtosis", 4); err != nil {
		return nil, err
	}
	n := float64(s.n)
	c1 := n * n * (n + 1) / ((n - 1) * (n - 2) * (n - 3))
	c2 := 3 * (n - 1) * (n - 1) / ((n - 2) * (n - 3))
	out := make([]float64, s.dim)
	for k := range out {
		v := s.variance(k)
		if v == 0 {
			continue
		}
		out[k] = c1*(s.m4[k]/s.wsum)/(v*v) - c2
	}
	return out, nil
}

// Covariance returns the bias-corrected weighted covariance matrix.
func (s *Sequence) Covariance() ([][]float64, error) {
	if s.cov == nil {
		return nil, ErrCovarianceDisabled
	}
	if err := s.require("covariance", 2); err != nil {
		return nil, err
	}
	n := float64(s.n)
	adj := n / (n - 1) / s.wsum
	out := make([][]float64, s.dim)
	for i := range out {
		out[i] = make([]float64, s.dim)
		for j := range out[i] {
			out[i][j] = s.cov[i*s.dim+j] * adj
		}
	}
	return out, nil
}

// Correlation returns the correlation matrix. Entries involving a dimension
// with zero variance are zero, except for the unit diagonal.
func (s *Sequence) Correlation() ([][]float64, error) {
	c, err := s.Covariance()
	if err != nil {
		return nil, err
	}
	sd := make([]float64, s.dim)
	for i := range sd {
		sd[i] = math.Sqrt(c[i][i])
	}
	for i := range c {
		for j := range c[i] {
			switch {
			case i == j:
				c[i][j] = 1
			case sd[i] == 0 || sd[j] == 0:
				c[i][j] = 0
			default:
				c[i][j] /= sd[i] * sd[j]
			}
		}
	}
	return c, nil
}

// Min returns the smallest coordinate seen in every dimension.
func (s *Sequence) Min() ([]float64, error) {
	if err := s.require("min", 1); err != nil {
		return nil, err
	}
	return append([]float64(nil), s.min...), nil
}

// Max returns the largest coordinate seen in every dimension.
func (s *Sequence) Max() ([]float64, error) {
	if err := s.require("max", 1); err != nil {
		return nil, err
	}
	return append([]float64(nil), s.max...), nil
}
