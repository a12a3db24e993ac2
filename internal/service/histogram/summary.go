// Package histogram summarizes measurement outcome distributions.
package histogram

import (
	"fmt"
	"math"

	"qsim/internal/repository/qcdb"
)

// Summary is the JSON replacement for the rendered outcome chart: raw counts,
// percentages and a plain-language reading of the distribution.
type Summary struct {
	Count0         int     `json:"count0"`
	Count1         int     `json:"count1"`
	Total          int     `json:"total"`
	Pct0           float64 `json:"pct0"`
	Pct1           float64 `json:"pct1"`
	Interpretation string  `json:"interpretation"`
}

func Build(shots []qcdb.ShotRecord) Summary {
	var count0, count1 int
	for _, s := range shots {
		if s.OutputState == 0 {
			count0++
		} else {
			count1++
		}
	}
	total := count0 + count1

	var pct0, pct1 float64
	if total > 0 {
		pct0 = float64(count0) / float64(total) * 100
		pct1 = float64(count1) / float64(total) * 100
	}

	return Summary{
		Count0:         count0,
		Count1:         count1,
		Total:          total,
		Pct0:           pct0,
		Pct1:           pct1,
		Interpretation: interpret(pct0, pct1, total),
	}
}

func interpret(pct0, pct1 float64, total int) string {
	if total == 0 {
		return ""
	}

	var distribution, outcome string
	switch {
	case math.Abs(pct0-pct1) < 5:
		distribution = "an approximately equal superposition"
		outcome = "roughly equal probability of measuring either |0⟩ or |1⟩"
	case pct0 > pct1 && pct0 > 90:
		distribution = "strongly biased toward |0⟩"
		outcome = fmt.Sprintf("a high probability (%.1f%%) of collapsing to the |0⟩ state", pct0)
	case pct0 > pct1:
		distribution = "biased toward |0⟩"
		outcome = fmt.Sprintf("a higher probability (%.1f%%) of measuring |0⟩ than |1⟩ (%.1f%%)", pct0, pct1)
	case pct1 > 90:
		distribution = "strongly biased toward |1⟩"
		outcome = fmt.Sprintf("a high probability (%.1f%%) of collapsing to the |1⟩ state", pct1)
	default:
		distribution = "biased toward |1⟩"
		outcome = fmt.Sprintf("a higher probability (%.1f%%) of measuring |1⟩ than |0⟩ (%.1f%%)", pct1, pct0)
	}

	return fmt.Sprintf(
		"This simulation ran %d measurement shots. The results show %s, indicating %s. "+
			"In quantum mechanics, each measurement causes the qubit's superposition to collapse "+
			"into one of the basis states (|0⟩ or |1⟩), with probabilities determined by the "+
			"amplitudes of the quantum state after the gate operation.",
		total, distribution, outcome)
}
