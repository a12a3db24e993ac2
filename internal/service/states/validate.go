// Package states validates quantum state input before it reaches the store.
package states

import (
	"fmt"
	"math"
	"strings"

	"qsim/internal/repository/qcdb"
)

// normTolerance is how far |α|²+|β|² may drift from 1 before input is
// rejected; it matches the engine's trust boundary.
const normTolerance = 1e-4

// Recommended carries normalized replacement amplitudes returned with a
// rejection, so clients can offer a one-click fix.
type Recommended struct {
	AlphaReal float64 `json:"alphaReal"`
	AlphaImgn float64 `json:"alphaImgn"`
	BetaReal  float64 `json:"betaReal"`
	BetaImgn  float64 `json:"betaImgn"`
}

// Violation describes why input was rejected.
type Violation struct {
	Message     string       `json:"message"`
	Recommended *Recommended `json:"recommended,omitempty"`
}

// Input is the raw client payload; Symbol is the bare character before
// ket-wrapping.
type Input struct {
	StateID     int64   `json:"stateID"`
	Name        string  `json:"stateName"`
	Symbol      string  `json:"stateSymbol"`
	AlphaReal   float64 `json:"alphaReal"`
	AlphaImgn   float64 `json:"alphaImgn"`
	BetaReal    float64 `json:"betaReal"`
	BetaImgn    float64 `json:"betaImgn"`
	Description string  `json:"description"`
}

// Validate checks ranges, normalization and field lengths. On success it
// returns the store payload with the symbol wrapped in ket notation.
func Validate(in Input) (qcdb.StateInput, *Violation) {
	for _, v := range []float64{in.AlphaReal, in.AlphaImgn, in.BetaReal, in.BetaImgn} {
		if v < -1 || v > 1 {
			return qcdb.StateInput{}, &Violation{Message: "All amplitude values must be between -1 and 1"}
		}
	}

	if in.AlphaReal == 0 && in.AlphaImgn == 0 && in.BetaReal == 0 && in.BetaImgn == 0 {
		return qcdb.StateInput{}, &Violation{
			Message:     "Invalid quantum state: Coefficients cannot be all zero. Recommended values are given in the form.",
			Recommended: &Recommended{AlphaReal: 0.5, AlphaImgn: 0.5, BetaReal: 0.5, BetaImgn: 0.5},
		}
	}

	normSquared := in.AlphaReal*in.AlphaReal + in.AlphaImgn*in.AlphaImgn +
		in.BetaReal*in.BetaReal + in.BetaImgn*in.BetaImgn
	if math.Abs(normSquared-1) > normTolerance {
		norm := math.Sqrt(normSquared)
		return qcdb.StateInput{}, &Violation{
			Message: fmt.Sprintf(
				"Invalid quantum state: |α|² + |β|² must equal 1 (current: %.4f). Recommended values are given in the form.",
				normSquared),
			Recommended: &Recommended{
				AlphaReal: round8(in.AlphaReal / norm),
				AlphaImgn: round8(in.AlphaImgn / norm),
				BetaReal:  round8(in.BetaReal / norm),
				BetaImgn:  round8(in.BetaImgn / norm),
			},
		}
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 45 {
		return qcdb.StateInput{}, &Violation{Message: "Name must be 1-45 characters"}
	}
	symbol := strings.TrimSpace(in.Symbol)
	if len(symbol) != 1 {
		return qcdb.StateInput{}, &Violation{Message: "Symbol must be exactly 1 character"}
	}
	description := strings.TrimSpace(in.Description)
	if description == "" || len(description) > 100 {
		return qcdb.StateInput{}, &Violation{Message: "Description must be 1-100 characters"}
	}

	return qcdb.StateInput{
		StateID:     in.StateID,
		Name:        name,
		Symbol:      "|" + symbol + ">",
		AlphaReal:   in.AlphaReal,
		AlphaImgn:   in.AlphaImgn,
		BetaReal:    in.BetaReal,
		BetaImgn:    in.BetaImgn,
		Description: description,
	}, nil
}

func round8(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}
