package handler

import (
	"net/http"

	"qsim/internal/repository/qcdb"
)

// GatesHandler serves the gate catalog. Gates are read-only: they represent
// the standard operations plus seeded custom entries.
type GatesHandler struct {
	store *qcdb.Store
}

func NewGatesHandler(store *qcdb.Store) *GatesHandler {
	return &GatesHandler{store: store}
}

func (h *GatesHandler) List(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.ListGates(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "OK", data)
}
