package qcdb

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *Store) resetDB(ctx context.Context) (SPResult, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT * FROM %s()`, spLoadQCDB))
	return scanSPResult(row)
}

func (s *Store) listStatesDB(ctx context.Context) ([]StateRecord, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT "stateID", "name", "symbol", "alphaReal", "alphaImgn", "betaReal", "betaImgn", "description"
FROM %q ORDER BY "stateID" ASC`, tableStates))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StateRecord, 0, 16)
	for rows.Next() {
		var rec StateRecord
		if err := rows.Scan(&rec.StateID, &rec.Name, &rec.Symbol,
			&rec.AlphaReal, &rec.AlphaImgn, &rec.BetaReal, &rec.BetaImgn, &rec.Description); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) insertStateDB(ctx context.Context, in StateInput) (SPResult, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT * FROM %s($1,$2,$3,$4,$5,$6,$7)`, spInsertState),
		in.Name, in.AlphaReal, in.AlphaImgn, in.BetaReal, in.BetaImgn, in.Symbol, in.Description)
	return scanSPResult(row)
}

func (s *Store) editStateDB(ctx context.Context, in StateInput) (SPResult, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT * FROM %s($1,$2,$3,$4,$5,$6,$7,$8)`, spEditState),
		in.StateID, in.Name, in.AlphaReal, in.AlphaImgn, in.BetaReal, in.BetaImgn, in.Symbol, in.Description)
	return scanSPResult(row)
}

func (s *Store) deleteStateDB(ctx context.Context, stateID int64) (SPResult, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT * FROM %s($1)`, spDeleteState), stateID)
	return scanSPResult(row)
}

func (s *Store) listGatesDB(ctx context.Context) ([]GateRecord, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT "gateID", "name", "symbol", "description" FROM %q ORDER BY "gateID" ASC`, tableGates))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]GateRecord, 0, 8)
	for rows.Next() {
		var rec GateRecord
		if err := rows.Scan(&rec.GateID, &rec.Name, &rec.Symbol, &rec.Description); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) gateSymbolDB(ctx context.Context, gateID int64) (string, bool, error) {
	var sym string
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT "symbol" FROM %q WHERE "gateID" = $1`, tableGates), gateID).Scan(&sym)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return sym, true, nil
}

func (s *Store) stateSymbolDB(ctx context.Context, stateID int64) (string, bool, error) {
	var sym string
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT "symbol" FROM %q WHERE "stateID" = $1`, tableStates), stateID).Scan(&sym)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return sym, true, nil
}

func (s *Store) stateAmplitudesDB(ctx context.Context, stateID int64) (StateRecord, bool, error) {
	var rec StateRecord
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT "stateID", "name", "symbol", "alphaReal", "alphaImgn", "betaReal", "betaImgn", "description"
FROM %q WHERE "stateID" = $1`, tableStates), stateID).Scan(
		&rec.StateID, &rec.Name, &rec.Symbol,
		&rec.AlphaReal, &rec.AlphaImgn, &rec.BetaReal, &rec.BetaImgn, &rec.Description)
	if err == sql.ErrNoRows {
		return StateRecord{}, false, nil
	}
	if err != nil {
		return StateRecord{}, false, err
	}
	return rec, true, nil
}

func (s *Store) listSimulationsDB(ctx context.Context) ([]SimulationView, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
SELECT %[1]q."simID", %[2]q."symbol", %[3]q."symbol", COUNT(%[4]q."shotID")
FROM %[1]q
INNER JOIN %[2]q ON %[1]q."stateID" = %[2]q."stateID"
INNER JOIN %[3]q ON %[1]q."gateID" = %[3]q."gateID"
LEFT JOIN %[4]q ON %[1]q."simID" = %[4]q."simID"
GROUP BY %[1]q."simID", %[2]q."symbol", %[3]q."symbol"
ORDER BY %[1]q."simID" ASC`,
		tableSimulations, tableStates, tableGates, tableShots))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SimulationView, 0, 16)
	for rows.Next() {
		var view SimulationView
		if err := rows.Scan(&view.SimID, &view.InitialState, &view.GateSymbol, &view.NumShots); err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, rows.Err()
}

func (s *Store) insertSimulationDB(ctx context.Context, stateID, gateID int64) (SPResult, error) {
	var res SPResult
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT * FROM %s($1,$2)`, spInsertSimulation),
		stateID, gateID).Scan(&res.Code, &res.Message, &res.ID)
	if err != nil {
		return SPResult{}, err
	}
	return res, nil
}

func (s *Store) deleteSimulationDB(ctx context.Context, simID int64) (SPResult, error) {
	// Shots are removed by the procedure via CASCADE.
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT * FROM %s($1)`, spDeleteSimulation), simID)
	return scanSPResult(row)
}

func (s *Store) insertShotDB(ctx context.Context, simID int64, shot ShotRecord) (SPResult, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT * FROM %s($1,$2,$3,$4,$5,$6)`, spInsertShot),
		simID, shot.AlphaReal, shot.AlphaImgn, shot.BetaReal, shot.BetaImgn, shot.OutputState)
	return scanSPResult(row)
}

func (s *Store) shotsBySimulationDB(ctx context.Context, simID int64) ([]ShotRecord, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT "shotID", "simID", "alphaReal", "alphaImgn", "betaReal", "betaImgn", "outputState"
FROM %q WHERE "simID" = $1 ORDER BY "shotID" ASC`, tableShots), simID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ShotRecord, 0, 32)
	for rows.Next() {
		var rec ShotRecord
		if err := rows.Scan(&rec.ShotID, &rec.SimID,
			&rec.AlphaReal, &rec.AlphaImgn, &rec.BetaReal, &rec.BetaImgn, &rec.OutputState); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanSPResult(row *sql.Row) (SPResult, error) {
	var res SPResult
	if err := row.Scan(&res.Code, &res.Message); err != nil {
		return SPResult{}, err
	}
	return res, nil
}
