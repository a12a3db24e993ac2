package server

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"qsim/internal/budget"
	"qsim/internal/handler"
	"qsim/internal/repository/qcdb"
	"qsim/internal/service/progress"
	"qsim/internal/service/simulation"
)

func newTestMux(t *testing.T) (http.Handler, *progress.Store) {
	t.Helper()

	store := qcdb.New()
	prog := progress.NewStore()
	svc := simulation.New(store, prog, nil).WithSource(func() rand.Source {
		return rand.NewSource(1)
	})
	sims := budget.NewCounter("simulations", 100).WithDir(t.TempDir())
	resets := budget.NewCounter("db_resets", 10).WithDir(t.TempDir())

	mux := NewMux(
		handler.NewHealthHandler(store),
		handler.NewAdminHandler(store, resets),
		handler.NewStatesHandler(store),
		handler.NewGatesHandler(store),
		handler.NewSimulationsHandler(store, svc, prog, sims),
		handler.NewShotsHandler(store),
		handler.NewProgressWSHandler(prog),
	)
	return mux, prog
}

func doJSON(t *testing.T, mux http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("%s %s: invalid JSON response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func TestHealthRoute(t *testing.T) {
	mux, _ := newTestMux(t)
	rec, body := doJSON(t, mux, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health: %d %s", rec.Code, rec.Body.String())
	}
	if body["ok"] != true {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestGatesRoute(t *testing.T) {
	mux, _ := newTestMux(t)
	rec, body := doJSON(t, mux, http.MethodGet, "/gates", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("gates: %d", rec.Code)
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 6 {
		t.Fatalf("expected 6 gates, got %v", body["data"])
	}
}

func TestStatesLifecycle(t *testing.T) {
	mux, _ := newTestMux(t)

	rec, _ := doJSON(t, mux, http.MethodPost, "/states",
		`{"stateName":"test","stateSymbol":"t","alphaReal":1,"description":"test state"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create state: %d %s", rec.Code, rec.Body.String())
	}

	// Non-normalized input is rejected with recommended values.
	rec, body := doJSON(t, mux, http.MethodPost, "/states",
		`{"stateName":"bad","stateSymbol":"b","alphaReal":1,"betaReal":1,"description":"not normalized"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad norm, got %d", rec.Code)
	}
	if body["data"] == nil {
		t.Fatalf("expected recommended values in response: %v", body)
	}

	rec, _ = doJSON(t, mux, http.MethodPut, "/states/5",
		`{"stateName":"renamed","stateSymbol":"t","betaReal":1,"description":"edited"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update state: %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, mux, http.MethodDelete, "/states/5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete state: %d %s", rec.Code, rec.Body.String())
	}
	rec, _ = doJSON(t, mux, http.MethodDelete, "/states/5", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestSimulationFlow(t *testing.T) {
	mux, prog := newTestMux(t)

	rec, body := doJSON(t, mux, http.MethodPost, "/simulations",
		`{"stateID":1,"gateID":1,"numShots":10}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("create simulation: %d %s", rec.Code, rec.Body.String())
	}
	simID := int64(body["simID"].(float64))
	if simID == 0 {
		t.Fatalf("missing simID in response: %v", body)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		if snap, ok := prog.Get(simID); ok && snap.Status == progress.StatusComplete {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("simulation did not complete")
		}
		time.Sleep(10 * time.Millisecond)
	}

	rec, body = doJSON(t, mux, http.MethodGet, fmt.Sprintf("/simulations/%d/progress", simID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("progress: %d", rec.Code)
	}
	if body["status"] != string(progress.StatusComplete) {
		t.Fatalf("unexpected progress body: %v", body)
	}

	rec, body = doJSON(t, mux, http.MethodGet, fmt.Sprintf("/shots/%d", simID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("shots: %d %s", rec.Code, rec.Body.String())
	}
	shots, ok := body["shot_data"].([]any)
	if !ok || len(shots) != 10 {
		t.Fatalf("expected 10 shots, got %v", body["shot_data"])
	}
	if body["sim_selected"] != true {
		t.Fatalf("sim_selected missing: %v", body)
	}
	summary, ok := body["summary"].(map[string]any)
	if !ok || summary["total"].(float64) != 10 {
		t.Fatalf("unexpected summary: %v", body["summary"])
	}

	rec, _ = doJSON(t, mux, http.MethodDelete, fmt.Sprintf("/simulations/%d/progress", simID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("clear progress: %d", rec.Code)
	}
	rec, _ = doJSON(t, mux, http.MethodGet, fmt.Sprintf("/simulations/%d/progress", simID), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after clear, got %d", rec.Code)
	}

	rec, _ = doJSON(t, mux, http.MethodDelete, fmt.Sprintf("/simulations/%d", simID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete simulation: %d %s", rec.Code, rec.Body.String())
	}
}

func TestSimulationValidationRoutes(t *testing.T) {
	mux, _ := newTestMux(t)

	rec, _ := doJSON(t, mux, http.MethodPost, "/simulations",
		`{"stateID":1,"gateID":1,"numShots":3}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for shot count, got %d", rec.Code)
	}

	rec, _ = doJSON(t, mux, http.MethodPost, "/simulations",
		`{"stateID":99,"gateID":1,"numShots":10}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown state, got %d", rec.Code)
	}
}

func TestShotsIndexRoute(t *testing.T) {
	mux, _ := newTestMux(t)
	rec, body := doJSON(t, mux, http.MethodGet, "/shots", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("shots index: %d", rec.Code)
	}
	if body["sim_selected"] != false {
		t.Fatalf("expected sim_selected=false, got %v", body)
	}
}

func TestResetRoute(t *testing.T) {
	mux, _ := newTestMux(t)

	rec, _ := doJSON(t, mux, http.MethodPost, "/states",
		`{"stateName":"temp","stateSymbol":"q","alphaReal":1,"description":"temp"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d", rec.Code)
	}

	rec, _ = doJSON(t, mux, http.MethodPost, "/reset", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reset: %d %s", rec.Code, rec.Body.String())
	}

	_, body := doJSON(t, mux, http.MethodGet, "/states", "")
	data := body["data"].([]any)
	if len(data) != 4 {
		t.Fatalf("expected seeded states after reset, got %d", len(data))
	}
}
