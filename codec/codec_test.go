package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cell struct {
	Kind        string  `json:"kind"`
	Dimension   int     `json:"dimension"`
	Points      int     `json:"points"`
	Discrepancy float64 `json:"discrepancy"`
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecsAgree(t *testing.T) {
	in := []cell{
		{Kind: "sobol", Dimension: 2, Points: 1023, Discrepancy: 8.33e-4},
		{Kind: "halton", Dimension: 15, Points: 1023, Discrepancy: 5.75e-4},
	}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(in)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"kind":"sobol"`)

			var out []cell
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}

	assert.JSONEq(t, string(MustMarshal(JSON{}, in)), string(MustMarshal(nil, in)))
}

func TestMarshalIndent(t *testing.T) {
	data, err := GoJSON{}.MarshalIndent(cell{Kind: "uniform"})
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"kind\": \"uniform\"")
}

func TestMustMarshalPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustMarshal(JSON{}, make(chan int))
	})
}
