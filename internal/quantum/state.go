package quantum

import "math/cmplx"

// State is a single-qubit state vector |ψ⟩ = α|0⟩ + β|1⟩.
//
// Callers are responsible for supplying normalized amplitudes
// (|α|² + |β|² == 1 within 1e-4); the engine trusts its input.
type State struct {
	Alpha complex128
	Beta  complex128
}

// NewState builds a state vector from the four real amplitude components.
func NewState(alphaReal, alphaImgn, betaReal, betaImgn float64) State {
	return State{
		Alpha: complex(alphaReal, alphaImgn),
		Beta:  complex(betaReal, betaImgn),
	}
}

// ProbZero returns |α|², the Born-rule probability of measuring |0⟩.
func (s State) ProbZero() float64 {
	return real(s.Alpha * cmplx.Conj(s.Alpha))
}

// Norm returns |α|² + |β|², the total measurement probability.
func (s State) Norm() float64 {
	return real(s.Alpha*cmplx.Conj(s.Alpha)) + real(s.Beta*cmplx.Conj(s.Beta))
}
