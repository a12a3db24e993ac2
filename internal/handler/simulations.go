package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"qsim/internal/budget"
	"qsim/internal/repository/qcdb"
	"qsim/internal/service/progress"
	"qsim/internal/service/simulation"
)

// SimulationsHandler owns the simulation lifecycle endpoints: listing,
// asynchronous creation, deletion and progress polling.
type SimulationsHandler struct {
	store    *qcdb.Store
	svc      *simulation.Service
	progress *progress.Store
	sims     *budget.Counter
}

func NewSimulationsHandler(store *qcdb.Store, svc *simulation.Service, prog *progress.Store, sims *budget.Counter) *SimulationsHandler {
	return &SimulationsHandler{store: store, svc: svc, progress: prog, sims: sims}
}

func (h *SimulationsHandler) List(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.ListSimulations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "OK", data)
}

// Create accepts the simulation request and returns 202 before the shots are
// generated. Clients follow up via /simulations/{simID}/progress or the
// websocket stream.
func (h *SimulationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in simulation.StartInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.sims != nil && !h.sims.Allow() {
		writeMessage(w, http.StatusServiceUnavailable, "Daily simulation limit reached. Try tomorrow.")
		return
	}

	res, err := h.svc.Start(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	if h.sims != nil {
		_ = h.sims.Increment()
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"message": "Simulation started",
		"simID":   res.SimID,
		"total":   res.Total,
	})
}

func (h *SimulationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	simID, ok := pathID(w, r, "simID")
	if !ok {
		return
	}
	res, err := h.svc.Delete(r.Context(), simID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSPResult(w, res)
}

func (h *SimulationsHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	simID, ok := pathID(w, r, "simID")
	if !ok {
		return
	}
	snap, found := h.progress.Get(simID)
	if !found {
		writeMessage(w, http.StatusNotFound, fmt.Sprintf("Progress not found for simulation ID %d", simID))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *SimulationsHandler) ClearProgress(w http.ResponseWriter, r *http.Request) {
	simID, ok := pathID(w, r, "simID")
	if !ok {
		return
	}
	h.progress.Clear(simID)
	w.WriteHeader(http.StatusNoContent)
}

func parseSimID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
