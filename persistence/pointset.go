package persistence

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/qmc/internal/conv"
	"github.com/hupe1980/qmc/sequence"
)

// PointSet is a block of generator output together with the parameters that
// reproduce it.
type PointSet struct {
	Kind      sequence.Kind
	Seed      uint64
	Flags     Flags
	Dimension int
	// Values holds the points row-major: point i occupies
	// Values[i*Dimension : (i+1)*Dimension].
	Values []float64
}

// Capture draws n points from g into a new point set. Kind, Seed and Flags are
// left for the caller to fill in.
func Capture(g sequence.Generator, n int) (*PointSet, error) {
	dim := g.Dimension()
	size, err := conv.MulInt(n, dim)
	if err != nil {
		return nil, err
	}
	ps := &PointSet{Dimension: dim, Values: make([]float64, size)}
	for i := 0; i < n; i++ {
		if err := g.NextAt(ps.Point(i)); err != nil {
			return nil, fmt.Errorf("draw %d: %w", i, err)
		}
	}
	return ps, nil
}

// Count returns the number of points.
func (ps *PointSet) Count() int {
	if ps.Dimension <= 0 {
		return 0
	}
	return len(ps.Values) / ps.Dimension
}

// Point returns point i as a slice aliasing Values.
func (ps *PointSet) Point(i int) []float64 {
	return ps.Values[i*ps.Dimension : (i+1)*ps.Dimension : (i+1)*ps.Dimension]
}

// Fingerprint returns the xxhash64 of the uncompressed payload. Point sets
// with equal values have equal fingerprints whatever their file compression.
func (ps *PointSet) Fingerprint() uint64 {
	d := xxhash.New()
	_ = writeValues(d, ps.Values)
	return d.Sum64()
}

func (ps *PointSet) validate() error {
	if ps.Dimension <= 0 {
		return fmt.Errorf("%w: dimension %d", ErrInvalidPointSet, ps.Dimension)
	}
	if len(ps.Values)%ps.Dimension != 0 {
		return fmt.Errorf("%w: %d values do not form points of dimension %d", ErrInvalidPointSet, len(ps.Values), ps.Dimension)
	}
	if ps.Kind.String() == "unknown" {
		return fmt.Errorf("%w: %d", ErrInvalidKind, ps.Kind)
	}
	return nil
}

// Write encodes ps to w: a FileHeader followed by the (optionally
// compressed) little-endian float64 payload.
func Write(w io.Writer, ps *PointSet, c Compression) error {
	if err := ps.validate(); err != nil {
		return err
	}
	dim, err := conv.IntToUint32(ps.Dimension)
	if err != nil {
		return err
	}
	count, err := conv.IntToUint64(ps.Count())
	if err != nil {
		return err
	}

	var payload bytes.Buffer
	sink, err := compressor(&payload, c)
	if err != nil {
		return err
	}
	cw := NewChecksumWriter(sink)
	if err := writeValues(cw, ps.Values); err != nil {
		return err
	}
	if err := sink.Close(); err != nil {
		return fmt.Errorf("close %s stream: %w", c, err)
	}

	h := FileHeader{
		Magic:         MagicNumber,
		Version:       Version,
		Kind:          uint8(ps.Kind),
		Compression:   uint8(c),
		Flags:         uint16(ps.Flags),
		Dimension:     dim,
		Count:         count,
		Seed:          ps.Seed,
		PayloadLength: uint64(payload.Len()),
		Checksum:      cw.Sum(),
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := payload.WriteTo(w); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// Read decodes a point set written by Write and verifies its checksum.
func Read(r io.Reader) (*PointSet, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	dim, err := conv.Uint32ToInt(h.Dimension)
	if err != nil {
		return nil, err
	}
	count, err := conv.Uint64ToInt(h.Count)
	if err != nil {
		return nil, err
	}
	values, err := conv.MulInt(count, dim)
	if err != nil {
		return nil, err
	}
	if values > MaxPayloadSize/8 {
		return nil, fmt.Errorf("%w: %d values exceed the payload limit", ErrInvalidPointSet, values)
	}
	if h.PayloadLength > MaxPayloadSize {
		return nil, fmt.Errorf("%w: payload length %d", ErrInvalidPointSet, h.PayloadLength)
	}

	stored := io.LimitReader(r, int64(h.PayloadLength))
	source, err := decompressor(stored, Compression(h.Compression))
	if err != nil {
		return nil, err
	}
	defer source.Close()

	cr := NewChecksumReader(source)
	ps := &PointSet{
		Kind:      sequence.Kind(h.Kind),
		Seed:      h.Seed,
		Flags:     Flags(h.Flags),
		Dimension: dim,
		Values:    make([]float64, values),
	}
	if err := readValues(cr, ps.Values); err != nil {
		return nil, err
	}
	if err := cr.Verify(h.Checksum); err != nil {
		return nil, err
	}

	// Anything left in the stream means the header and payload disagree.
	var extra [1]byte
	if n, _ := io.ReadFull(source, extra[:]); n != 0 {
		return nil, fmt.Errorf("%w: payload longer than %d points", ErrInvalidPointSet, count)
	}

	return ps, nil
}

// ReadHeader reads and validates a FileHeader without touching the payload.
func ReadHeader(r io.Reader) (*FileHeader, error) {
	var h FileHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if h.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: 0x%08x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, h.Version)
	}
	if sequence.Kind(h.Kind).String() == "unknown" {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, h.Kind)
	}
	if Compression(h.Compression) > CompressionLZ4 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, h.Compression)
	}
	if h.Dimension == 0 {
		return nil, fmt.Errorf("%w: dimension 0", ErrInvalidPointSet)
	}
	return &h, nil
}

const chunkValues = 512

func writeValues(w io.Writer, values []float64) error {
	buf := make([]byte, 8*chunkValues)
	for len(values) > 0 {
		n := min(len(values), chunkValues)
		for i, v := range values[:n] {
			binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
		}
		if _, err := w.Write(buf[:8*n]); err != nil {
			return fmt.Errorf("write payload: %w", err)
		}
		values = values[n:]
	}
	return nil
}

func readValues(r io.Reader, values []float64) error {
	buf := make([]byte, 8*chunkValues)
	for len(values) > 0 {
		n := min(len(values), chunkValues)
		if _, err := io.ReadFull(r, buf[:8*n]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return ErrTruncated
			}
			return fmt.Errorf("read payload: %w", err)
		}
		for i := range values[:n] {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[8*i:]))
		}
		values = values[n:]
	}
	return nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func compressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		return enc, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, c)
	}
}

type zstdReadCloser struct{ *zstd.Decoder }

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

func decompressor(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		return zstdReadCloser{dec}, nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, c)
	}
}
