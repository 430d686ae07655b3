package polynomial

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

const (
	// MaxDegree is the highest degree with a known reference count.
	MaxDegree = 27

	// DefaultMaxDegree is the degree of the process-wide table.
	DefaultMaxDegree = 18

	// DefaultMaxDimension is the number of polynomials in the default table,
	// which is also the largest dimension supported by the generators.
	DefaultMaxDimension = 21200

	// Sentinel terminates the polynomial list of every degree.
	Sentinel int64 = -1
)

// ReferenceCounts holds the number of primitive polynomials modulo two for
// degrees 1 through MaxDegree.
var ReferenceCounts = [MaxDegree]int{
	1, 1, 2, 2, 6, 6, 18,
	16, 48, 60, 176, 144, 630, 756,
	1800, 2048, 7710, 7776, 27594, 24000, 84672,
	120032, 356960, 276480, 1296000, 1719900, 4202496,
}

// ErrDegreeOutOfRange is returned for degrees outside [1, MaxDegree].
var ErrDegreeOutOfRange = errors.New("polynomial degree out of range")

// ErrCountMismatch reports a degree whose polynomial count disagrees with
// ReferenceCounts.
type ErrCountMismatch struct {
	Degree int
	Got    int
	Want   int
}

func (e *ErrCountMismatch) Error() string {
	return fmt.Sprintf("only %d polynomials in degree %d instead of %d", e.Got, e.Degree, e.Want)
}

// Table is an immutable table of primitive polynomials modulo two, indexed by
// degree. It is safe for concurrent use.
type Table struct {
	maxDegree int
	degrees   []*roaring.Bitmap
	// offsets[i] is the number of polynomials with degree <= i.
	offsets []int
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the process-wide table of degree DefaultMaxDegree. It is
// built and validated on first use.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = New(DefaultMaxDegree)
	})
	return defaultTable, defaultErr
}

// New enumerates the primitive polynomials of every degree up to maxDegree and
// validates the result against ReferenceCounts.
//
// Enumeration cost roughly doubles per degree; degree 18 takes well under a
// second, degree 27 is impractical outside offline use.
func New(maxDegree int) (*Table, error) {
	if maxDegree < 1 || maxDegree > MaxDegree {
		return nil, fmt.Errorf("%w: %d", ErrDegreeOutOfRange, maxDegree)
	}

	t := &Table{
		maxDegree: maxDegree,
		degrees:   make([]*roaring.Bitmap, maxDegree),
		offsets:   make([]int, maxDegree+1),
	}
	for d := 1; d <= maxDegree; d++ {
		t.degrees[d-1] = enumerate(uint(d))
		t.offsets[d] = t.offsets[d-1] + int(t.degrees[d-1].GetCardinality())
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// enumerate collects the encodings of all primitive polynomials of degree n.
func enumerate(n uint) *roaring.Bitmap {
	rb := roaring.New()
	factors := primeFactors(uint64(1)<<n - 1)
	limit := uint64(1) << (n - 1)
	for enc := uint64(0); enc < limit; enc++ {
		if isPrimitive(full(enc, n), n, factors) {
			rb.Add(uint32(enc))
		}
	}
	rb.RunOptimize()
	return rb
}

// Validate checks every degree against ReferenceCounts.
func (t *Table) Validate() error {
	for d := 1; d <= t.maxDegree; d++ {
		got := t.Count(d)
		if want := ReferenceCounts[d-1]; got != want {
			return &ErrCountMismatch{Degree: d, Got: got, Want: want}
		}
	}
	return nil
}

// MaxDegree returns the highest degree held by the table.
func (t *Table) MaxDegree() int { return t.maxDegree }

// Len returns the total number of polynomials.
func (t *Table) Len() int { return t.offsets[t.maxDegree] }

// Count returns the number of polynomials of the given degree, or zero when
// the table does not hold that degree.
func (t *Table) Count(degree int) int {
	if degree < 1 || degree > t.maxDegree {
		return 0
	}
	return t.offsets[degree] - t.offsets[degree-1]
}

// At returns the index-th polynomial of the given degree, or Sentinel when the
// degree has no more polynomials.
func (t *Table) At(degree, index int) int64 {
	if index < 0 || index >= t.Count(degree) {
		return Sentinel
	}
	v, err := t.degrees[degree-1].Select(uint32(index))
	if err != nil {
		return Sentinel
	}
	return int64(v)
}

// Entry returns the k-th polynomial in table order (ascending degree, then
// ascending encoding) together with its degree.
func (t *Table) Entry(k int) (poly uint32, degree int, ok bool) {
	if k < 0 || k >= t.Len() {
		return 0, 0, false
	}
	// First degree whose cumulative count exceeds k.
	degree = sort.Search(t.maxDegree, func(i int) bool { return t.offsets[i+1] > k }) + 1
	v, err := t.degrees[degree-1].Select(uint32(k - t.offsets[degree-1]))
	if err != nil {
		return 0, 0, false
	}
	return v, degree, true
}

// Walk calls fn for every polynomial in table order until fn returns false.
func (t *Table) Walk(fn func(degree int, poly uint32) bool) {
	for d := 1; d <= t.maxDegree; d++ {
		it := t.degrees[d-1].Iterator()
		for it.HasNext() {
			if !fn(d, it.Next()) {
				return
			}
		}
	}
}

// Degree returns the polynomials of one degree followed by Sentinel.
func (t *Table) Degree(degree int) []int64 {
	out := make([]int64, 0, t.Count(degree)+1)
	if degree >= 1 && degree <= t.maxDegree {
		it := t.degrees[degree-1].Iterator()
		for it.HasNext() {
			out = append(out, int64(it.Next()))
		}
	}
	return append(out, Sentinel)
}

// ExpectedCount returns phi(2^n - 1)/n, the closed-form number of primitive
// polynomials of degree n.
func ExpectedCount(degree int) (int, error) {
	if degree < 1 || degree > MaxDegree {
		return 0, fmt.Errorf("%w: %d", ErrDegreeOutOfRange, degree)
	}
	order := uint64(1)<<uint(degree) - 1
	return int(totient(order) / uint64(degree)), nil
}

// MaxDimension returns the number of polynomials in a table of the given
// degree, computed from ReferenceCounts without enumeration.
func MaxDimension(maxDegree int) int {
	if maxDegree > MaxDegree {
		maxDegree = MaxDegree
	}
	total := 0
	for d := 0; d < maxDegree; d++ {
		total += ReferenceCounts[d]
	}
	return total
}
