// Package simulation orchestrates simulation runs: validation, the async
// start contract, and background shot generation with progress tracking.
package simulation

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"qsim/internal/archive"
	"qsim/internal/quantum"
	"qsim/internal/repository/qcdb"
	"qsim/internal/service/progress"
)

const (
	minShots = 5
	maxShots = 100
)

// ValidationError reports rejected input; handlers map it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports a missing referenced entity; handlers map it to 404.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

type Service struct {
	store    *qcdb.Store
	progress *progress.Store
	archive  archive.Store

	// newSource supplies the per-job random source; tests inject fixed seeds.
	newSource func() rand.Source
}

func New(store *qcdb.Store, prog *progress.Store, arch archive.Store) *Service {
	return &Service{
		store:    store,
		progress: prog,
		archive:  arch,
		newSource: func() rand.Source {
			return rand.NewSource(time.Now().UnixNano())
		},
	}
}

// WithSource overrides the random source factory. Test hook.
func (s *Service) WithSource(factory func() rand.Source) *Service {
	s.newSource = factory
	return s
}

type StartInput struct {
	StateID  int64 `json:"stateID"`
	GateID   int64 `json:"gateID"`
	NumShots int   `json:"numShots"`
}

type StartResult struct {
	SimID int64 `json:"simID"`
	Total int   `json:"total"`
}

// Start validates the request, creates the simulation row and kicks off shot
// generation in the background. It returns as soon as the row exists; callers
// poll or subscribe for progress.
func (s *Service) Start(ctx context.Context, in StartInput) (StartResult, error) {
	log.Printf("START simulation: stateID=%d gateID=%d numShots=%d", in.StateID, in.GateID, in.NumShots)

	if in.StateID <= 0 {
		return StartResult{}, &ValidationError{Msg: "Initial state is required"}
	}
	if in.GateID <= 0 {
		return StartResult{}, &ValidationError{Msg: "Gate is required"}
	}
	if in.NumShots < minShots || in.NumShots > maxShots {
		return StartResult{}, &ValidationError{
			Msg: fmt.Sprintf("Number of shots must be between %d and %d", minShots, maxShots),
		}
	}

	gateSymbol, ok, err := s.store.GateSymbol(ctx, in.GateID)
	if err != nil {
		return StartResult{}, err
	}
	if !ok {
		return StartResult{}, &NotFoundError{Msg: fmt.Sprintf("Gate with ID %d not found", in.GateID)}
	}
	stateSymbol, ok, err := s.store.StateSymbol(ctx, in.StateID)
	if err != nil {
		return StartResult{}, err
	}
	if !ok {
		return StartResult{}, &NotFoundError{Msg: fmt.Sprintf("State with ID %d not found", in.StateID)}
	}

	res, err := s.store.InsertSimulation(ctx, in.StateID, in.GateID)
	if err != nil {
		return StartResult{}, err
	}
	if !res.OK() {
		return StartResult{}, &ValidationError{Msg: res.Message}
	}
	simID := res.ID

	s.progress.Init(simID, in.NumShots, stateSymbol, gateSymbol)

	go s.generateShots(context.Background(), simID, in, gateSymbol)

	return StartResult{SimID: simID, Total: in.NumShots}, nil
}

// generateShots runs the two-path engine and persists every shot, updating
// progress after each one so pollers see the job advance.
func (s *Service) generateShots(ctx context.Context, simID int64, in StartInput, gateSymbolWrapped string) {
	state, ok, err := s.store.StateAmplitudes(ctx, in.StateID)
	if err != nil {
		s.progress.Error(simID, fmt.Sprintf("Error loading state: %v", err))
		return
	}
	if !ok {
		s.progress.Error(simID, "State not found")
		return
	}

	gateSymbol := StripSymbolWrapper(gateSymbolWrapped)
	initial := quantum.NewState(state.AlphaReal, state.AlphaImgn, state.BetaReal, state.BetaImgn)
	gen := quantum.NewGenerator(s.newSource())

	var shots []quantum.Shot
	if quantum.IsSupported(gateSymbol) {
		log.Printf("simID=%d: gate logic for standard gate %s", simID, gateSymbol)
		shots, err = gen.GenerateShots(initial, gateSymbol, in.NumShots)
	} else {
		log.Printf("simID=%d: noise logic for custom gate %s", simID, gateSymbol)
		shots, err = gen.GenerateShotsNoiseOnly(initial, in.NumShots)
	}
	if err != nil {
		s.progress.Error(simID, fmt.Sprintf("Error generating shots: %v", err))
		return
	}

	for i, shot := range shots {
		res, err := s.store.InsertShot(ctx, simID, qcdb.ShotRecord{
			AlphaReal:   shot.AlphaReal,
			AlphaImgn:   shot.AlphaImgn,
			BetaReal:    shot.BetaReal,
			BetaImgn:    shot.BetaImgn,
			OutputState: shot.OutputState,
		})
		if err != nil {
			s.progress.Error(simID, fmt.Sprintf("Error persisting shot %d: %v", i+1, err))
			return
		}
		if !res.OK() {
			s.progress.Error(simID, res.Message)
			return
		}
		s.progress.Update(simID, i+1)
	}

	s.progress.Complete(simID)
	log.Printf("END simulation simID=%d: generated %d shots", simID, len(shots))

	if s.archive != nil {
		go func() {
			if err := s.archiveShots(context.Background(), simID, state.Symbol, gateSymbolWrapped, shots); err != nil {
				log.Printf("failed to archive shots for simID=%d: %v", simID, err)
			}
		}()
	}
}

// Delete removes a simulation (shots cascade) and its progress entry.
func (s *Service) Delete(ctx context.Context, simID int64) (qcdb.SPResult, error) {
	res, err := s.store.DeleteSimulation(ctx, simID)
	if err == nil && res.OK() {
		s.progress.Clear(simID)
	}
	return res, err
}

// StripSymbolWrapper removes the pipe wrapper from a stored gate symbol,
// e.g. "|X|" becomes "X". Unwrapped symbols pass through unchanged.
func StripSymbolWrapper(symbol string) string {
	if len(symbol) >= 2 && strings.HasPrefix(symbol, "|") && strings.HasSuffix(symbol, "|") {
		return symbol[1 : len(symbol)-1]
	}
	return symbol
}
