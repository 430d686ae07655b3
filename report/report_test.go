package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/qmc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Generators = []Generator{
		{Kind: "halton"},
		{Kind: "sobol", Unit: true},
		{Kind: "sobol"},
		{Kind: "uniform"},
	}
	cfg.Dimensions = []int{3, 2}
	return cfg
}

func TestRunReferenceGrid(t *testing.T) {
	m := &qmc.BasicMetricsCollector{}
	r, err := Run(context.Background(), smallConfig(), WithMetricsCollector(m), WithLogger(qmc.NoopLogger()))
	require.NoError(t, err)
	require.Len(t, r.Cells, 8)
	assert.Equal(t, uint64(123456), r.Seed)

	// Cells follow the configured order.
	assert.Equal(t, "halton", r.Cells[0].Generator)
	assert.Equal(t, 3, r.Cells[0].Dimension)
	assert.Equal(t, "sobol-unit", r.Cells[1].Generator)
	assert.Equal(t, 2, r.Cells[4].Dimension)

	want := map[string]map[int]float64{
		"halton":     {2: 1.26e-3, 3: 1.63e-3},
		"sobol-unit": {2: 8.33e-4, 3: 1.21e-3},
		"sobol":      {2: 8.33e-4, 3: 1.21e-3},
		"uniform":    {2: 8.84e-3, 3: 7.02e-3},
	}
	for name, dims := range want {
		for dim, v := range dims {
			c, ok := r.Find(name, dim)
			require.True(t, ok, "%s/%d", name, dim)
			assert.Equal(t, 1023, c.Points)
			assert.InEpsilon(t, v, c.Discrepancy, 0.01, "%s/%d", name, dim)
			require.Len(t, c.Trace, 10)
			assert.Equal(t, 1, c.Trace[0].Points)
			assert.Equal(t, c.Discrepancy, c.Trace[9].Discrepancy)
		}
	}

	c, _ := r.Find("halton", 2)
	assert.InEpsilon(t, 1.17e-2, c.TrueRandom, 0.01)
	assert.Less(t, c.Ratio(), 1.0)

	assert.Equal(t, []int{2, 3}, r.Dimensions())
	best := r.Best()
	assert.True(t, strings.HasPrefix(best[2], "sobol"))
	assert.True(t, strings.HasPrefix(best[3], "sobol"))

	snap := m.GetStats()
	assert.Equal(t, int64(8), snap.GeneratorCount)
	assert.Equal(t, int64(8*1023), snap.DrawCount)
	assert.Equal(t, int64(8), snap.ReportCells)
	assert.Equal(t, int64(8*1023), snap.ReportPoints)
}

func TestRunSequentialMatchesConcurrent(t *testing.T) {
	cfg := smallConfig()
	cfg.Log2Points = 6

	cfg.Concurrency = 1
	a, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	cfg.Concurrency = 8
	b, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	for i := range a.Cells {
		assert.Equal(t, a.Cells[i].Generator, b.Cells[i].Generator)
		assert.Equal(t, a.Cells[i].Trace, b.Cells[i].Trace)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, smallConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunConstructionError(t *testing.T) {
	cfg := smallConfig()
	cfg.Dimensions = []int{30000}
	cfg.Log2Points = 2

	_, err := Run(context.Background(), cfg)
	var dimErr *qmc.ErrInvalidDimension
	require.ErrorAs(t, err, &dimErr)
	assert.Contains(t, err.Error(), "dimension 30000")
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no generators", func(c *Config) { c.Generators = nil }},
		{"unknown kind", func(c *Config) { c.Generators = []Generator{{Kind: "faure"}} }},
		{"no dimensions", func(c *Config) { c.Dimensions = nil }},
		{"zero dimension", func(c *Config) { c.Dimensions = []int{2, 0} }},
		{"no points", func(c *Config) { c.Log2Points = 0 }},
		{"too many points", func(c *Config) { c.Log2Points = 21 }},
		{"negative concurrency", func(c *Config) { c.Concurrency = -1 }},
		{"empty kind", func(c *Config) { c.Generators = []Generator{{}} }},
		{"unknown codec", func(c *Config) { c.Codec = "gob" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

			_, err := Run(context.Background(), cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestValidateNamesField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log2Points = 25
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "Config.Log2Points must satisfy max=20")

	cfg = DefaultConfig()
	cfg.Dimensions = []int{3, -2}
	assert.Contains(t, cfg.Validate().Error(), "Config.Dimensions[1] must satisfy gt=0")
}

func TestGeneratorName(t *testing.T) {
	assert.Equal(t, "sobol", Generator{Kind: "sobol"}.Name())
	assert.Equal(t, "sobol-unit", Generator{Kind: "sobol", Unit: true}.Name())
	assert.Equal(t, "halton-start-shift", Generator{Kind: "halton", RandomStart: true, RandomShift: true}.Name())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qmc.yaml")
	data := []byte(`
generators:
  - kind: halton
    random_shift: true
  - kind: sobol
    unit: true
dimensions: [2, 5]
log2_points: 8
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []Generator{{Kind: "halton", RandomShift: true}, {Kind: "sobol", Unit: true}}, cfg.Generators)
	assert.Equal(t, []int{2, 5}, cfg.Dimensions)
	assert.Equal(t, 8, cfg.Log2Points)
	// Unset keys keep their defaults.
	assert.Equal(t, uint64(123456), cfg.Seed)
	assert.Equal(t, "go-json", cfg.Codec)

	out, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "random_shift: true")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("dimensions: [two]\n"), 0o600))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	cfg := smallConfig()
	cfg.Log2Points = 4
	r, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	for _, name := range []string{"json", "go-json"} {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, r, name))
		got, err := Decode(buf.Bytes(), name)
		require.NoError(t, err)
		assert.Equal(t, r, got, name)
	}

	assert.Error(t, Encode(&bytes.Buffer{}, r, "xml"))
	_, err = Decode(nil, "xml")
	assert.Error(t, err)
}

func TestWriteText(t *testing.T) {
	r := &Report{Cells: []Cell{
		{Generator: "sobol-unit", Dimension: 2, Points: 1023, Discrepancy: 8.33e-4, TrueRandom: 1.17e-2},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "discrepancy")
	assert.Contains(t, lines[1], "sobol-unit")
	assert.Contains(t, lines[1], "8.330e-04")
	assert.Contains(t, lines[1], "0.071")
}
