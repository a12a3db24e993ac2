package handler

import (
	"net/http"

	"qsim/internal/budget"
	"qsim/internal/repository/qcdb"
)

type AdminHandler struct {
	store  *qcdb.Store
	resets *budget.Counter
}

func NewAdminHandler(store *qcdb.Store, resets *budget.Counter) *AdminHandler {
	return &AdminHandler{store: store, resets: resets}
}

// Reset reloads the sample data set, subject to the daily reset budget.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !h.resets.Allow() {
		writeMessage(w, http.StatusServiceUnavailable, "Daily reset limit reached. Try tomorrow.")
		return
	}

	res, err := h.store.Reset(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if res.OK() {
		_ = h.resets.Increment()
	}
	writeSPResult(w, res)
}
