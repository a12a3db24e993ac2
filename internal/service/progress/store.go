// Package progress tracks background shot generation per simulation.
//
// The store owns all job state behind a single mutex; handlers poll it over
// HTTP and the websocket endpoint subscribes for push updates.
package progress

import (
	"context"
	"fmt"
	"sync"
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// Snapshot is the externally visible progress of one simulation job.
type Snapshot struct {
	SimID       int64  `json:"simID"`
	Current     int    `json:"current"`
	Total       int    `json:"total"`
	Pct         int    `json:"pct"`
	Status      Status `json:"status"`
	Message     string `json:"message"`
	StateSymbol string `json:"state_symbol"`
	GateSymbol  string `json:"gate_symbol"`
}

type job struct {
	current     int
	total       int
	status      Status
	message     string
	stateSymbol string
	gateSymbol  string
}

type Store struct {
	mu   sync.Mutex
	jobs map[int64]*job
	subs map[int64]map[chan Snapshot]struct{}
}

func NewStore() *Store {
	return &Store{
		jobs: make(map[int64]*job),
		subs: make(map[int64]map[chan Snapshot]struct{}),
	}
}

// Init registers a new job in the processing state.
func (s *Store) Init(simID int64, total int, stateSymbol, gateSymbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[simID] = &job{
		total:       total,
		status:      StatusProcessing,
		message:     fmt.Sprintf("Applying %s to %s", gateSymbol, stateSymbol),
		stateSymbol: stateSymbol,
		gateSymbol:  gateSymbol,
	}
	s.notifyLocked(simID)
}

// Update records the number of shots persisted so far.
func (s *Store) Update(simID int64, current int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[simID]; ok {
		j.current = current
		s.notifyLocked(simID)
	}
}

// Complete marks the job finished and pins current to total.
func (s *Store) Complete(simID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[simID]; ok {
		j.status = StatusComplete
		j.current = j.total
		j.message = "Complete"
		s.notifyLocked(simID)
	}
}

// Error marks the job failed with a caller-facing message.
func (s *Store) Error(simID int64, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[simID]; ok {
		j.status = StatusError
		j.message = message
		s.notifyLocked(simID)
	}
}

// Get returns the current snapshot, reporting ok=false for unknown jobs.
func (s *Store) Get(simID int64) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[simID]
	if !ok {
		return Snapshot{}, false
	}
	return snapshotLocked(simID, j), true
}

// Clear removes a job's tracking entry and closes its subscriptions.
func (s *Store) Clear(simID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, simID)
	for ch := range s.subs[simID] {
		close(ch)
	}
	delete(s.subs, simID)
}

// Subscribe streams snapshots for simID until ctx is done or the job is
// cleared. The current snapshot, if any, is delivered immediately. Slow
// consumers miss intermediate updates rather than blocking the producer.
func (s *Store) Subscribe(ctx context.Context, simID int64) <-chan Snapshot {
	ch := make(chan Snapshot, 16)

	s.mu.Lock()
	if s.subs[simID] == nil {
		s.subs[simID] = make(map[chan Snapshot]struct{})
	}
	s.subs[simID][ch] = struct{}{}
	if j, ok := s.jobs[simID]; ok {
		ch <- snapshotLocked(simID, j)
	}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		if set, ok := s.subs[simID]; ok {
			if _, live := set[ch]; live {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(s.subs, simID)
			}
		}
	}()

	return ch
}

func (s *Store) notifyLocked(simID int64) {
	j := s.jobs[simID]
	if j == nil {
		return
	}
	snap := snapshotLocked(simID, j)
	for ch := range s.subs[simID] {
		select {
		case ch <- snap:
		default:
		}
	}
}

func snapshotLocked(simID int64, j *job) Snapshot {
	pct := 0
	if j.total > 0 {
		pct = j.current * 100 / j.total
	}
	return Snapshot{
		SimID:       simID,
		Current:     j.current,
		Total:       j.total,
		Pct:         pct,
		Status:      j.status,
		Message:     j.message,
		StateSymbol: j.stateSymbol,
		GateSymbol:  j.gateSymbol,
	}
}
