package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"qsim/internal/repository/qcdb"
	"qsim/internal/service/states"
)

type StatesHandler struct {
	store *qcdb.Store
}

func NewStatesHandler(store *qcdb.Store) *StatesHandler {
	return &StatesHandler{store: store}
}

func (h *StatesHandler) List(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.ListStates(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "OK", data)
}

func (h *StatesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in states.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json body")
		return
	}

	payload, violation := states.Validate(in)
	if violation != nil {
		writeData(w, http.StatusBadRequest, violation.Message, violation.Recommended)
		return
	}

	res, err := h.store.InsertState(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSPResult(w, res)
}

func (h *StatesHandler) Update(w http.ResponseWriter, r *http.Request) {
	stateID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var in states.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json body")
		return
	}
	in.StateID = stateID

	payload, violation := states.Validate(in)
	if violation != nil {
		writeData(w, http.StatusBadRequest, violation.Message, violation.Recommended)
		return
	}

	res, err := h.store.EditState(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSPResult(w, res)
}

func (h *StatesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	stateID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.store.DeleteState(r.Context(), stateID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSPResult(w, res)
}

// pathID parses a numeric path segment, answering 400 itself on bad input.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		writeMessage(w, http.StatusBadRequest, name+" must be a valid number")
		return 0, false
	}
	return id, true
}
