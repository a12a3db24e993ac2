package simulation

import (
	"context"
	"strings"
	"testing"

	"qsim/internal/archive"
	"qsim/internal/quantum"
	"qsim/internal/repository/qcdb"
	"qsim/internal/service/progress"
)

func TestExportKey(t *testing.T) {
	key := ExportKey(7, "|0>", "|X|")
	if key != "simulations/7/shots_0_X.csv" {
		t.Fatalf("unexpected key: %q", key)
	}
}

func TestArchiveShotsCSV(t *testing.T) {
	mem := archive.NewMemoryStore()
	svc := New(qcdb.New(), progress.NewStore(), mem)

	shots := []quantum.Shot{
		{AlphaReal: 0.00001, BetaReal: 0.99999, OutputState: 1},
		{AlphaReal: -0.00002, BetaReal: 1, OutputState: 1},
	}
	ctx := context.Background()
	if err := svc.archiveShots(ctx, 3, "|0>", "|X|", shots); err != nil {
		t.Fatalf("archiveShots: %v", err)
	}

	content, err := mem.Get(ctx, ExportKey(3, "|0>", "|X|"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "shot,alphaReal,alphaImgn,betaReal,betaImgn,outputState" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,0.00001000,") || !strings.HasSuffix(lines[1], ",1") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
}
