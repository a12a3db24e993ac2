package qcdb

import (
	"fmt"
	"math"
	"sync"
)

// memoryBackend mimics the Postgres schema and the stored procedures'
// business codes so the rest of the service is backend-agnostic.
type memoryBackend struct {
	mu          sync.RWMutex
	states      map[int64]StateRecord
	gates       map[int64]GateRecord
	simulations map[int64]simulationRow
	shots       map[int64][]ShotRecord

	nextStateID int64
	nextSimID   int64
	nextShotID  int64
}

type simulationRow struct {
	SimID   int64
	StateID int64
	GateID  int64
}

func newMemoryBackend() *memoryBackend {
	b := &memoryBackend{}
	b.reset()
	return b
}

// reset reloads the sample data set: the standard gate catalog plus one
// custom gate, and the familiar basis/superposition states.
func (b *memoryBackend) reset() SPResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	invSqrt2 := 1 / math.Sqrt2

	b.gates = map[int64]GateRecord{
		1: {GateID: 1, Name: "X Gate", Symbol: "|X|", Description: "Pauli-X (bit flip)"},
		2: {GateID: 2, Name: "Y Gate", Symbol: "|Y|", Description: "Pauli-Y (bit and phase flip)"},
		3: {GateID: 3, Name: "Z Gate", Symbol: "|Z|", Description: "Pauli-Z (phase flip)"},
		4: {GateID: 4, Name: "H Gate", Symbol: "|H|", Description: "Hadamard"},
		5: {GateID: 5, Name: "I Gate", Symbol: "|I|", Description: "Identity (no operation)"},
		6: {GateID: 6, Name: "Custom Gate", Symbol: "|C|", Description: "User-defined gate (noise model)"},
	}
	b.states = map[int64]StateRecord{
		1: {StateID: 1, Name: "zero_state", Symbol: "|0>", AlphaReal: 1, Description: "Basis state |0>"},
		2: {StateID: 2, Name: "one_state", Symbol: "|1>", BetaReal: 1, Description: "Basis state |1>"},
		3: {StateID: 3, Name: "plus_state", Symbol: "|+>", AlphaReal: invSqrt2, BetaReal: invSqrt2, Description: "Equal superposition"},
		4: {StateID: 4, Name: "minus_state", Symbol: "|->", AlphaReal: invSqrt2, BetaReal: -invSqrt2, Description: "Equal superposition with phase"},
	}
	b.simulations = make(map[int64]simulationRow)
	b.shots = make(map[int64][]ShotRecord)
	b.nextStateID = int64(len(b.states)) + 1
	b.nextSimID = 1
	b.nextShotID = 1

	return SPResult{Code: 200, Message: "Database reset to initial state"}
}

func (b *memoryBackend) listStates() []StateRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]StateRecord, 0, len(b.states))
	for id := int64(1); id < b.nextStateID; id++ {
		if rec, ok := b.states[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}

func (b *memoryBackend) insertState(in StateInput) SPResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, rec := range b.states {
		if rec.Name == in.Name || rec.Symbol == in.Symbol {
			return SPResult{Code: 409, Message: "State name or symbol already exists"}
		}
	}
	id := b.nextStateID
	b.nextStateID++
	b.states[id] = StateRecord{
		StateID:     id,
		Name:        in.Name,
		Symbol:      in.Symbol,
		AlphaReal:   in.AlphaReal,
		AlphaImgn:   in.AlphaImgn,
		BetaReal:    in.BetaReal,
		BetaImgn:    in.BetaImgn,
		Description: in.Description,
	}
	return SPResult{Code: 201, Message: "State created", ID: id}
}

func (b *memoryBackend) editState(in StateInput) SPResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.states[in.StateID]; !ok {
		return SPResult{Code: 404, Message: fmt.Sprintf("State with ID %d not found", in.StateID)}
	}
	for id, rec := range b.states {
		if id != in.StateID && (rec.Name == in.Name || rec.Symbol == in.Symbol) {
			return SPResult{Code: 409, Message: "State name or symbol already exists"}
		}
	}
	b.states[in.StateID] = StateRecord{
		StateID:     in.StateID,
		Name:        in.Name,
		Symbol:      in.Symbol,
		AlphaReal:   in.AlphaReal,
		AlphaImgn:   in.AlphaImgn,
		BetaReal:    in.BetaReal,
		BetaImgn:    in.BetaImgn,
		Description: in.Description,
	}
	return SPResult{Code: 200, Message: "State updated", ID: in.StateID}
}

func (b *memoryBackend) deleteState(stateID int64) SPResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.states[stateID]; !ok {
		return SPResult{Code: 404, Message: fmt.Sprintf("State with ID %d not found", stateID)}
	}
	for _, sim := range b.simulations {
		if sim.StateID == stateID {
			return SPResult{Code: 409, Message: "State is referenced by existing simulations"}
		}
	}
	delete(b.states, stateID)
	return SPResult{Code: 200, Message: "State deleted"}
}

func (b *memoryBackend) listGates() []GateRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]GateRecord, 0, len(b.gates))
	for id := int64(1); id <= int64(len(b.gates)); id++ {
		if rec, ok := b.gates[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}

func (b *memoryBackend) gateSymbol(gateID int64) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rec, ok := b.gates[gateID]
	return rec.Symbol, ok
}

func (b *memoryBackend) stateSymbol(stateID int64) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rec, ok := b.states[stateID]
	return rec.Symbol, ok
}

func (b *memoryBackend) state(stateID int64) (StateRecord, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rec, ok := b.states[stateID]
	return rec, ok
}

func (b *memoryBackend) listSimulations() []SimulationView {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]SimulationView, 0, len(b.simulations))
	for id := int64(1); id < b.nextSimID; id++ {
		sim, ok := b.simulations[id]
		if !ok {
			continue
		}
		out = append(out, SimulationView{
			SimID:        sim.SimID,
			InitialState: b.states[sim.StateID].Symbol,
			GateSymbol:   b.gates[sim.GateID].Symbol,
			NumShots:     len(b.shots[sim.SimID]),
		})
	}
	return out
}

func (b *memoryBackend) insertSimulation(stateID, gateID int64) SPResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.states[stateID]; !ok {
		return SPResult{Code: 404, Message: fmt.Sprintf("State with ID %d not found", stateID)}
	}
	if _, ok := b.gates[gateID]; !ok {
		return SPResult{Code: 404, Message: fmt.Sprintf("Gate with ID %d not found", gateID)}
	}
	id := b.nextSimID
	b.nextSimID++
	b.simulations[id] = simulationRow{SimID: id, StateID: stateID, GateID: gateID}
	return SPResult{Code: 201, Message: "Simulation created", ID: id}
}

func (b *memoryBackend) deleteSimulation(simID int64) SPResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.simulations[simID]; !ok {
		return SPResult{Code: 404, Message: fmt.Sprintf("Simulation with ID %d not found", simID)}
	}
	delete(b.simulations, simID)
	delete(b.shots, simID)
	return SPResult{Code: 200, Message: "Simulation deleted"}
}

func (b *memoryBackend) insertShot(simID int64, shot ShotRecord) SPResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.simulations[simID]; !ok {
		return SPResult{Code: 404, Message: fmt.Sprintf("Simulation with ID %d not found", simID)}
	}
	shot.ShotID = b.nextShotID
	b.nextShotID++
	shot.SimID = simID
	b.shots[simID] = append(b.shots[simID], shot)
	return SPResult{Code: 201, Message: "Shot recorded", ID: shot.ShotID}
}

func (b *memoryBackend) shotsBySimulation(simID int64) []ShotRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	shots := b.shots[simID]
	out := make([]ShotRecord, len(shots))
	copy(out, shots)
	return out
}
