package quantum

import (
	"errors"
	"math/rand"
	"time"
)

// noiseBound bounds the uniform measurement noise added to each recorded
// amplitude component. One scalar is drawn per shot and shared across all
// four components of that shot.
const noiseBound = 0.00005

// ErrInvalidShotCount reports a non-positive requested shot count.
var ErrInvalidShotCount = errors.New("number of shots must be positive")

// Shot is one simulated measurement record: a perturbed snapshot of the
// amplitudes plus the sampled basis-state outcome.
type Shot struct {
	AlphaReal   float64 `json:"alphaReal"`
	AlphaImgn   float64 `json:"alphaImgn"`
	BetaReal    float64 `json:"betaReal"`
	BetaImgn    float64 `json:"betaImgn"`
	OutputState int     `json:"outputState"`
}

// Generator produces measurement shots from its own pseudorandom source.
// A Generator is not safe for concurrent use; create one per job.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator backed by src. A nil src gets a
// time-seeded source; tests inject a fixed seed for reproducible sequences.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{rng: rand.New(src)}
}

func (g *Generator) noise() float64 {
	return g.rng.Float64()*2*noiseBound - noiseBound
}

// GenerateShots applies the named gate to the initial state exactly, then
// samples numShots independent measurement records against the post-gate
// probability |α_f|². Each record carries the post-gate amplitudes perturbed
// by that shot's shared noise scalar.
func (g *Generator) GenerateShots(state State, gateSymbol string, numShots int) ([]Shot, error) {
	if numShots <= 0 {
		return nil, ErrInvalidShotCount
	}

	final, err := Apply(state, gateSymbol)
	if err != nil {
		return nil, err
	}
	probZero := final.ProbZero()

	shots := make([]Shot, 0, numShots)
	for i := 0; i < numShots; i++ {
		variation := g.noise()

		outputState := 1
		if g.rng.Float64() < probZero {
			outputState = 0
		}

		shots = append(shots, Shot{
			AlphaReal:   real(final.Alpha) + variation,
			AlphaImgn:   imag(final.Alpha) + variation,
			BetaReal:    real(final.Beta) + variation,
			BetaImgn:    imag(final.Beta) + variation,
			OutputState: outputState,
		})
	}
	return shots, nil
}

// GenerateShotsNoiseOnly samples numShots records without applying any gate;
// it is the fallback for gate symbols outside the standard set. The initial
// amplitudes are perturbed directly and the outcome probability is recomputed
// per shot from the perturbed alpha components only. The formula ignores
// beta; it is an intentional approximation of the Born rule under noise.
func (g *Generator) GenerateShotsNoiseOnly(state State, numShots int) ([]Shot, error) {
	if numShots <= 0 {
		return nil, ErrInvalidShotCount
	}

	shots := make([]Shot, 0, numShots)
	for i := 0; i < numShots; i++ {
		variation := g.noise()

		alphaReal := real(state.Alpha) + variation
		alphaImgn := imag(state.Alpha) + variation
		probZero := alphaReal*alphaReal + alphaImgn*alphaImgn

		outputState := 1
		if g.rng.Float64() < probZero {
			outputState = 0
		}

		shots = append(shots, Shot{
			AlphaReal:   alphaReal,
			AlphaImgn:   alphaImgn,
			BetaReal:    real(state.Beta) + variation,
			BetaImgn:    imag(state.Beta) + variation,
			OutputState: outputState,
		})
	}
	return shots, nil
}
