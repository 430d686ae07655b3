package persistence

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/qmc/internal/fs"
	"github.com/hupe1980/qmc/sequence"
	"github.com/hupe1980/qmc/sequence/halton"
	"github.com/hupe1980/qmc/sequence/sobol"
)

var compressions = []Compression{CompressionNone, CompressionZstd, CompressionLZ4}

func sobolPoints(t *testing.T, dim, n int) *PointSet {
	t.Helper()
	g, err := sobol.New(dim, sobol.WithSeed(123456))
	require.NoError(t, err)
	ps, err := Capture(g, n)
	require.NoError(t, err)
	ps.Kind = sequence.KindSobol
	ps.Seed = 123456
	return ps
}

func TestHeaderSize(t *testing.T) {
	assert.Equal(t, HeaderSize, binary.Size(FileHeader{}))
}

func TestRoundTrip(t *testing.T) {
	ps := sobolPoints(t, 5, 1023)
	ps.Values[3] = math.SmallestNonzeroFloat64

	for _, c := range compressions {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, ps, c))

			got, err := Read(&buf)
			require.NoError(t, err)
			assert.Equal(t, ps.Kind, got.Kind)
			assert.Equal(t, ps.Seed, got.Seed)
			assert.Equal(t, ps.Dimension, got.Dimension)
			assert.Equal(t, 1023, got.Count())
			for i := range ps.Values {
				require.Equal(t, math.Float64bits(ps.Values[i]), math.Float64bits(got.Values[i]), "value %d", i)
			}
			assert.Zero(t, buf.Len(), "trailing bytes")
			assert.Equal(t, ps.Fingerprint(), got.Fingerprint())
		})
	}
}

func TestFingerprint(t *testing.T) {
	a := sobolPoints(t, 3, 31)
	b := sobolPoints(t, 3, 31)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Values[0] = math.Nextafter(b.Values[0], 1)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	g, err := sobol.New(3, sobol.WithSeed(1))
	require.NoError(t, err)
	c, err := Capture(g, 31)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestCompressionShrinksPayload(t *testing.T) {
	// Unit Sobol points are dyadic rationals with mostly zero mantissa bits.
	g, err := sobol.New(4, sobol.WithUnitInitialization(true))
	require.NoError(t, err)
	ps, err := Capture(g, 4095)
	require.NoError(t, err)

	var raw, packed bytes.Buffer
	require.NoError(t, Write(&raw, ps, CompressionNone))
	require.NoError(t, Write(&packed, ps, CompressionZstd))
	assert.Equal(t, HeaderSize+8*4*4095, raw.Len())
	assert.Less(t, packed.Len(), raw.Len())
}

func TestFlagsSurvive(t *testing.T) {
	g, err := halton.New(3, halton.WithSeed(7), halton.WithRandomShift(true))
	require.NoError(t, err)
	ps, err := Capture(g, 10)
	require.NoError(t, err)
	ps.Kind = sequence.KindHalton
	ps.Seed = 7
	ps.Flags = FlagRandomShift

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ps, CompressionLZ4))
	got, err := Read(&buf)
	require.NoError(t, err)
	assert.True(t, got.Flags.Has(FlagRandomShift))
	assert.False(t, got.Flags.Has(FlagRandomStart))
	assert.Equal(t, sequence.KindHalton, got.Kind)
	assert.Equal(t, ps.Point(9), got.Point(9))
}

func TestCorruptPayload(t *testing.T) {
	ps := sobolPoints(t, 2, 63)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ps, CompressionNone))

	data := buf.Bytes()
	data[HeaderSize+17] ^= 0x40

	_, err := Read(bytes.NewReader(data))
	require.Error(t, err)
	assert.True(t, IsChecksumMismatch(err))
}

func TestCorruptCompressedPayload(t *testing.T) {
	for _, c := range []Compression{CompressionZstd, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			ps := sobolPoints(t, 2, 255)
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, ps, c))

			data := buf.Bytes()
			data[len(data)-10] ^= 0xFF

			_, err := Read(bytes.NewReader(data))
			assert.Error(t, err)
		})
	}
}

func TestHeaderChecks(t *testing.T) {
	ps := sobolPoints(t, 2, 3)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ps, CompressionNone))
	encoded := buf.Bytes()

	tests := []struct {
		name    string
		mutate  func(b []byte)
		wantErr error
	}{
		{"magic", func(b []byte) { b[0] = 'X' }, ErrInvalidMagic},
		{"version", func(b []byte) { binary.LittleEndian.PutUint32(b[4:], 99) }, ErrInvalidVersion},
		{"kind", func(b []byte) { b[8] = 200 }, ErrInvalidKind},
		{"compression", func(b []byte) { b[9] = 9 }, ErrInvalidCompression},
		{"zero dimension", func(b []byte) { binary.LittleEndian.PutUint32(b[12:], 0) }, ErrInvalidPointSet},
		{"count too large", func(b []byte) { binary.LittleEndian.PutUint64(b[16:], 4) }, ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Clone(encoded)
			tt.mutate(data)
			_, err := Read(bytes.NewReader(data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPayloadLongerThanCount(t *testing.T) {
	ps := sobolPoints(t, 2, 3)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ps, CompressionNone))
	data := buf.Bytes()
	binary.LittleEndian.PutUint64(data[16:], 2)

	// The checksum covers all three points, so decoding two fails verification.
	_, err := Read(bytes.NewReader(data))
	assert.True(t, IsChecksumMismatch(err))
}

func TestWriteRejectsInvalid(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Write(&buf, &PointSet{Dimension: 0}, CompressionNone), ErrInvalidPointSet)
	assert.ErrorIs(t, Write(&buf, &PointSet{Dimension: 2, Values: []float64{1, 2, 3}}, CompressionNone), ErrInvalidPointSet)
	assert.ErrorIs(t, Write(&buf, &PointSet{Dimension: 1, Kind: sequence.Kind(42)}, CompressionNone), ErrInvalidKind)
	assert.ErrorIs(t, Write(&buf, &PointSet{Dimension: 1}, Compression(7)), ErrInvalidCompression)
	assert.Zero(t, buf.Len())
}

func TestParseCompression(t *testing.T) {
	for _, c := range compressions {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := ParseCompression("")
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, got)

	_, err = ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrInvalidCompression)
	assert.Equal(t, "compression(9)", Compression(9).String())
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.qmc")
	ps := sobolPoints(t, 3, 127)

	require.NoError(t, SaveToFile(path, ps, CompressionZstd))
	// Overwrite in place.
	require.NoError(t, SaveToFile(path, ps, CompressionLZ4))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files left behind")

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, ps.Values, got.Values)

	_, err = LoadFromFile(filepath.Join(dir, "missing.qmc"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveToFileCleansUpOnError(t *testing.T) {
	dir := t.TempDir()
	err := SaveToFile(filepath.Join(dir, "bad.qmc"), &PointSet{}, CompressionNone)
	require.ErrorIs(t, err, ErrInvalidPointSet)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestChecksumWriterReader(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChecksumWriter(&buf)
	_, err := cw.Write([]byte("123456789"))
	require.NoError(t, err)
	assert.Equal(t, uint32(0xE3069283), cw.Sum())

	cr := NewChecksumReader(&buf)
	out := make([]byte, 9)
	_, err = cr.Read(out)
	require.NoError(t, err)
	require.NoError(t, cr.Verify(cw.Sum()))

	err = cr.Verify(1)
	assert.True(t, IsChecksumMismatch(err))
	assert.Contains(t, err.Error(), "0x00000001")
}

func BenchmarkWriteZstd(b *testing.B) {
	g, err := sobol.New(10)
	if err != nil {
		b.Fatal(err)
	}
	ps, err := Capture(g, 4095)
	if err != nil {
		b.Fatal(err)
	}
	var buf bytes.Buffer
	for b.Loop() {
		buf.Reset()
		if err := Write(&buf, ps, CompressionZstd); err != nil {
			b.Fatal(err)
		}
	}
}

func TestSaveToFileSyncsDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sets")
	require.NoError(t, os.Mkdir(dir, 0o755))
	path := filepath.Join(dir, "points.qmc")

	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule("sets", fs.Fault{FailAfterBytes: -1, FailOnSync: true})
	err := SaveToFileFS(ffs, path, sobolPoints(t, 3, 15), CompressionNone)
	require.ErrorIs(t, err, fs.ErrInjected)
	assert.Contains(t, err.Error(), "sync dir")

	// The rename happened before the directory sync failed.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Count())
}

func TestSaveToFileFaults(t *testing.T) {
	tests := []struct {
		name  string
		fault fs.Fault
	}{
		{"write", fs.Fault{FailAfterBytes: 100}},
		{"sync", fs.Fault{FailAfterBytes: -1, FailOnSync: true}},
		{"close", fs.Fault{FailAfterBytes: -1, FailOnClose: true}},
		{"rename", fs.Fault{FailAfterBytes: -1, FailOnRename: true}},
	}
	ps := sobolPoints(t, 4, 255)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "points.qmc")
			require.NoError(t, SaveToFile(path, ps, CompressionNone))

			ffs := fs.NewFaultyFS(nil)
			ffs.AddRule(".tmp-", tt.fault)
			other := sobolPoints(t, 2, 7)
			err := SaveToFileFS(ffs, path, other, CompressionNone)
			require.ErrorIs(t, err, fs.ErrInjected)

			// The previous file is untouched and no temporary file remains.
			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, entries, 1)

			got, err := LoadFromFileFS(ffs, path)
			require.NoError(t, err)
			assert.Equal(t, 4, got.Dimension)
			assert.Equal(t, 255, got.Count())
		})
	}
}
