package quantum

import (
	"fmt"
	"math"
	"sort"
)

// Matrix is a 2x2 complex gate matrix in row-major order.
type Matrix [2][2]complex128

var invSqrt2 = complex(1/math.Sqrt2, 0)

// Standard single-qubit gate matrices, keyed by symbol.
var gateMatrices = map[string]Matrix{
	"X": {{0, 1}, {1, 0}},
	"Y": {{0, -1i}, {1i, 0}},
	"Z": {{1, 0}, {0, -1}},
	"H": {{invSqrt2, invSqrt2}, {invSqrt2, -invSqrt2}},
	"I": {{1, 0}, {0, 1}},
}

// UnsupportedGateError reports a gate symbol outside the fixed supported set.
type UnsupportedGateError struct {
	Symbol string
}

func (e *UnsupportedGateError) Error() string {
	return fmt.Sprintf("unsupported gate: %q (supported gates: %v)", e.Symbol, SupportedGates())
}

// SupportedGates returns the supported gate symbols in sorted order.
func SupportedGates() []string {
	out := make([]string, 0, len(gateMatrices))
	for sym := range gateMatrices {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// IsSupported reports whether symbol names a standard gate. Total, never fails.
func IsSupported(symbol string) bool {
	_, ok := gateMatrices[symbol]
	return ok
}

// MatrixOf returns the matrix for a standard gate symbol.
func MatrixOf(symbol string) (Matrix, error) {
	m, ok := gateMatrices[symbol]
	if !ok {
		return Matrix{}, &UnsupportedGateError{Symbol: symbol}
	}
	return m, nil
}

// Apply multiplies the gate matrix into the state vector and returns the
// resulting state. The input state is not modified.
func Apply(state State, symbol string) (State, error) {
	m, err := MatrixOf(symbol)
	if err != nil {
		return State{}, err
	}
	return State{
		Alpha: m[0][0]*state.Alpha + m[0][1]*state.Beta,
		Beta:  m[1][0]*state.Alpha + m[1][1]*state.Beta,
	}, nil
}
