package qcdb

import (
	"context"
	"database/sql"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Store is the repository over the States/Gates/Simulations/Shots schema.
// With a DSN it runs against Postgres through the stored-procedure surface;
// without one it falls back to a seeded in-memory backend so the service
// stays usable for local work and tests.
type Store struct {
	db  *sql.DB
	mem *memoryBackend

	shotCache *lru.Cache[int64, []ShotRecord]
}

func New() *Store {
	cache, _ := lru.New[int64, []ShotRecord](256)
	return &Store{
		mem:       newMemoryBackend(),
		shotCache: cache,
	}
}

func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[int64, []ShotRecord](256)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{
		db:        db,
		shotCache: cache,
	}, nil
}

// NewFromConfig prefers Postgres and silently degrades to memory when the DSN
// is empty or unreachable.
func NewFromConfig(dsn string) *Store {
	if strings.TrimSpace(dsn) == "" {
		return New()
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New()
	}
	return s
}

// Ping reports database connectivity; the memory backend is always up.
func (s *Store) Ping(ctx context.Context) error {
	if s.db != nil {
		return s.db.PingContext(ctx)
	}
	return nil
}

// DatabaseName returns the connected database's name, or "memory".
func (s *Store) DatabaseName(ctx context.Context) (string, error) {
	if s.db == nil {
		return "memory", nil
	}
	var name string
	if err := s.db.QueryRowContext(ctx, `SELECT current_database()`).Scan(&name); err != nil {
		return "", err
	}
	return name, nil
}

// Reset reloads the schema's sample data set.
func (s *Store) Reset(ctx context.Context) (SPResult, error) {
	s.shotCache.Purge()
	if s.db != nil {
		return s.resetDB(ctx)
	}
	return s.mem.reset(), nil
}

func (s *Store) ListStates(ctx context.Context) ([]StateRecord, error) {
	if s.db != nil {
		return s.listStatesDB(ctx)
	}
	return s.mem.listStates(), nil
}

func (s *Store) InsertState(ctx context.Context, in StateInput) (SPResult, error) {
	if s.db != nil {
		return s.insertStateDB(ctx, in)
	}
	return s.mem.insertState(in), nil
}

func (s *Store) EditState(ctx context.Context, in StateInput) (SPResult, error) {
	if s.db != nil {
		return s.editStateDB(ctx, in)
	}
	return s.mem.editState(in), nil
}

func (s *Store) DeleteState(ctx context.Context, stateID int64) (SPResult, error) {
	if s.db != nil {
		return s.deleteStateDB(ctx, stateID)
	}
	return s.mem.deleteState(stateID), nil
}

func (s *Store) ListGates(ctx context.Context) ([]GateRecord, error) {
	if s.db != nil {
		return s.listGatesDB(ctx)
	}
	return s.mem.listGates(), nil
}

// GateSymbol looks up a gate's stored (wrapped) symbol by ID.
func (s *Store) GateSymbol(ctx context.Context, gateID int64) (string, bool, error) {
	if s.db != nil {
		return s.gateSymbolDB(ctx, gateID)
	}
	sym, ok := s.mem.gateSymbol(gateID)
	return sym, ok, nil
}

// StateSymbol looks up a state's stored symbol by ID.
func (s *Store) StateSymbol(ctx context.Context, stateID int64) (string, bool, error) {
	if s.db != nil {
		return s.stateSymbolDB(ctx, stateID)
	}
	sym, ok := s.mem.stateSymbol(stateID)
	return sym, ok, nil
}

// StateAmplitudes returns the four amplitude components of a stored state.
func (s *Store) StateAmplitudes(ctx context.Context, stateID int64) (StateRecord, bool, error) {
	if s.db != nil {
		return s.stateAmplitudesDB(ctx, stateID)
	}
	rec, ok := s.mem.state(stateID)
	return rec, ok, nil
}

func (s *Store) ListSimulations(ctx context.Context) ([]SimulationView, error) {
	if s.db != nil {
		return s.listSimulationsDB(ctx)
	}
	return s.mem.listSimulations(), nil
}

func (s *Store) InsertSimulation(ctx context.Context, stateID, gateID int64) (SPResult, error) {
	if s.db != nil {
		return s.insertSimulationDB(ctx, stateID, gateID)
	}
	return s.mem.insertSimulation(stateID, gateID), nil
}

func (s *Store) DeleteSimulation(ctx context.Context, simID int64) (SPResult, error) {
	s.shotCache.Remove(simID)
	if s.db != nil {
		return s.deleteSimulationDB(ctx, simID)
	}
	return s.mem.deleteSimulation(simID), nil
}

func (s *Store) InsertShot(ctx context.Context, simID int64, shot ShotRecord) (SPResult, error) {
	s.shotCache.Remove(simID)
	if s.db != nil {
		return s.insertShotDB(ctx, simID, shot)
	}
	return s.mem.insertShot(simID, shot), nil
}

// ShotsBySimulation returns a simulation's shots in insertion order.
// Results are cached per simulation and invalidated on writes.
func (s *Store) ShotsBySimulation(ctx context.Context, simID int64) ([]ShotRecord, error) {
	if cached, ok := s.shotCache.Get(simID); ok {
		return cached, nil
	}

	var (
		shots []ShotRecord
		err   error
	)
	if s.db != nil {
		shots, err = s.shotsBySimulationDB(ctx, simID)
	} else {
		shots = s.mem.shotsBySimulation(simID)
	}
	if err != nil {
		return nil, err
	}
	s.shotCache.Add(simID, shots)
	return shots, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
