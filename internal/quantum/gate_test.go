package quantum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const amplitudeTol = 1e-12

func assertStateEqual(t *testing.T, want, got State) {
	t.Helper()
	assert.InDelta(t, real(want.Alpha), real(got.Alpha), amplitudeTol)
	assert.InDelta(t, imag(want.Alpha), imag(got.Alpha), amplitudeTol)
	assert.InDelta(t, real(want.Beta), real(got.Beta), amplitudeTol)
	assert.InDelta(t, imag(want.Beta), imag(got.Beta), amplitudeTol)
}

func TestApplyBasisStates(t *testing.T) {
	zero := NewState(1, 0, 0, 0)
	one := NewState(0, 0, 1, 0)
	h := complex(1/math.Sqrt2, 0)

	cases := []struct {
		gate     string
		fromZero State
		fromOne  State
	}{
		{"X", State{Alpha: 0, Beta: 1}, State{Alpha: 1, Beta: 0}},
		{"Y", State{Alpha: 0, Beta: 1i}, State{Alpha: -1i, Beta: 0}},
		{"Z", State{Alpha: 1, Beta: 0}, State{Alpha: 0, Beta: -1}},
		{"H", State{Alpha: h, Beta: h}, State{Alpha: h, Beta: -h}},
		{"I", State{Alpha: 1, Beta: 0}, State{Alpha: 0, Beta: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.gate, func(t *testing.T) {
			got, err := Apply(zero, tc.gate)
			require.NoError(t, err)
			assertStateEqual(t, tc.fromZero, got)

			got, err = Apply(one, tc.gate)
			require.NoError(t, err)
			assertStateEqual(t, tc.fromOne, got)
		})
	}
}

func TestApplyPreservesNorm(t *testing.T) {
	state := NewState(0.5, 0.5, 0.5, -0.5)
	for _, gate := range SupportedGates() {
		out, err := Apply(state, gate)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, out.Norm(), 1e-12, "gate %s should preserve the norm", gate)
	}
}

func TestUnsupportedSymbols(t *testing.T) {
	for _, sym := range []string{"Q", "", "XY", "x", "|X|"} {
		assert.False(t, IsSupported(sym), "symbol %q must not be supported", sym)

		_, err := MatrixOf(sym)
		var ugErr *UnsupportedGateError
		require.ErrorAs(t, err, &ugErr)
		assert.Equal(t, sym, ugErr.Symbol)

		_, err = Apply(NewState(1, 0, 0, 0), sym)
		require.ErrorAs(t, err, &ugErr)
	}
}

func TestSupportedGates(t *testing.T) {
	assert.Equal(t, []string{"H", "I", "X", "Y", "Z"}, SupportedGates())
	for _, sym := range SupportedGates() {
		assert.True(t, IsSupported(sym))
	}
}
