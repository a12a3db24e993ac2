package qcdb

// Table and stored-procedure names of the quantum computing schema. Writes go
// through stored procedures returning (code, message[, id]) rows; reads are
// plain SELECTs.
const (
	tableStates      = "States"
	tableGates       = "Gates"
	tableSimulations = "Simulations"
	tableShots       = "Shots"

	spLoadQCDB          = "sp_load_qcdb"
	spInsertState       = "sp_insert_state"
	spEditState         = "sp_edit_state"
	spDeleteState       = "sp_delete_state"
	spInsertSimulation  = "sp_insert_simulation"
	spDeleteSimulation  = "sp_delete_simulation"
	spInsertShot        = "sp_insert_shot"
)

// SPResult is the business outcome row returned by the stored procedures.
// Code carries an HTTP-shaped status (201 created, 404 missing, 409 conflict).
type SPResult struct {
	Code    int
	Message string
	ID      int64
}

func (r SPResult) OK() bool {
	return r.Code >= 200 && r.Code < 300
}

type StateRecord struct {
	StateID     int64   `json:"stateID"`
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	AlphaReal   float64 `json:"alphaReal"`
	AlphaImgn   float64 `json:"alphaImgn"`
	BetaReal    float64 `json:"betaReal"`
	BetaImgn    float64 `json:"betaImgn"`
	Description string  `json:"description"`
}

type GateRecord struct {
	GateID      int64  `json:"gateID"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
}

// SimulationView is a simulation row joined with its state and gate symbols
// and the number of shots recorded so far.
type SimulationView struct {
	SimID        int64  `json:"simID"`
	InitialState string `json:"initialState"`
	GateSymbol   string `json:"gateSymbol"`
	NumShots     int    `json:"numOfShots"`
}

type ShotRecord struct {
	ShotID      int64   `json:"shotID"`
	SimID       int64   `json:"simID"`
	AlphaReal   float64 `json:"alphaReal"`
	AlphaImgn   float64 `json:"alphaImgn"`
	BetaReal    float64 `json:"betaReal"`
	BetaImgn    float64 `json:"betaImgn"`
	OutputState int     `json:"outputState"`
}

// StateInput is the validated payload for state inserts and edits. Symbol is
// stored wrapped in ket notation (`x` becomes `|x>`), matching the seeded
// rows.
type StateInput struct {
	StateID     int64
	Name        string
	Symbol      string
	AlphaReal   float64
	AlphaImgn   float64
	BetaReal    float64
	BetaImgn    float64
	Description string
}
