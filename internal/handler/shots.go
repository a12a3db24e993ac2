package handler

import (
	"net/http"

	"qsim/internal/repository/qcdb"
	"qsim/internal/service/histogram"
)

// ShotsHandler serves the results view: the simulation list plus, once a
// simulation is selected, its shot records and measurement summary.
type ShotsHandler struct {
	store *qcdb.Store
}

func NewShotsHandler(store *qcdb.Store) *ShotsHandler {
	return &ShotsHandler{store: store}
}

// Index returns the simulation list with no selection. The shape matches
// Selected so clients can render both from the same payload.
func (h *ShotsHandler) Index(w http.ResponseWriter, r *http.Request) {
	sims, err := h.store.ListSimulations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"simulations":  sims,
		"shot_data":    []qcdb.ShotRecord{},
		"sim_selected": false,
	})
}

func (h *ShotsHandler) Selected(w http.ResponseWriter, r *http.Request) {
	simID, ok := pathID(w, r, "simID")
	if !ok {
		return
	}

	sims, err := h.store.ListSimulations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var selected *qcdb.SimulationView
	for i := range sims {
		if sims[i].SimID == simID {
			selected = &sims[i]
			break
		}
	}
	if selected == nil {
		writeMessage(w, http.StatusNotFound, "Simulation not found")
		return
	}

	shots, err := h.store.ShotsBySimulation(r.Context(), simID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"simulations":  sims,
		"shot_data":    shots,
		"sim_selected": true,
		"simulation":   selected,
		"summary":      histogram.Build(shots),
	})
}
