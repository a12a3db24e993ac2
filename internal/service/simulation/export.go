package simulation

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"qsim/internal/quantum"
)

// archiveShots exports a completed run as a CSV object keyed by simulation.
func (s *Service) archiveShots(ctx context.Context, simID int64, stateSymbol, gateSymbol string, shots []quantum.Shot) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"shot", "alphaReal", "alphaImgn", "betaReal", "betaImgn", "outputState"}); err != nil {
		return err
	}
	for i, shot := range shots {
		record := []string{
			strconv.Itoa(i + 1),
			formatAmplitude(shot.AlphaReal),
			formatAmplitude(shot.AlphaImgn),
			formatAmplitude(shot.BetaReal),
			formatAmplitude(shot.BetaImgn),
			strconv.Itoa(shot.OutputState),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	key := ExportKey(simID, stateSymbol, gateSymbol)
	return s.archive.Put(ctx, key, buf.Bytes())
}

// ExportKey names a simulation's CSV export object.
func ExportKey(simID int64, stateSymbol, gateSymbol string) string {
	return fmt.Sprintf("simulations/%d/shots_%s_%s.csv",
		simID, sanitizeSymbol(stateSymbol), sanitizeSymbol(gateSymbol))
}

// sanitizeSymbol reduces a stored symbol like "|0>" or "|X|" to its bare
// character for use in object keys.
func sanitizeSymbol(symbol string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '|', '<', '>', '/':
			return -1
		}
		return r
	}, symbol)
}

// formatAmplitude prints amplitudes as fixed-point 8-digit strings, matching
// the DECIMAL(9,8) column precision.
func formatAmplitude(v float64) string {
	return strconv.FormatFloat(v, 'f', 8, 64)
}
