package states

import (
	"math"
	"strings"
	"testing"
)

func validInput() Input {
	return Input{
		Name:        "Plus state",
		Symbol:      "+",
		AlphaReal:   1 / math.Sqrt2,
		BetaReal:    1 / math.Sqrt2,
		Description: "Equal superposition of the basis states",
	}
}

func TestValidateAccepts(t *testing.T) {
	in := validInput()
	out, v := Validate(in)
	if v != nil {
		t.Fatalf("unexpected violation: %s", v.Message)
	}
	if out.Symbol != "|+>" {
		t.Fatalf("symbol not wrapped: %q", out.Symbol)
	}
	if out.Name != "Plus state" {
		t.Fatalf("unexpected name: %q", out.Name)
	}
}

func TestValidateAmplitudeRange(t *testing.T) {
	in := validInput()
	in.AlphaReal = 1.5
	if _, v := Validate(in); v == nil {
		t.Fatal("expected range violation")
	}
}

func TestValidateAllZero(t *testing.T) {
	in := validInput()
	in.AlphaReal, in.AlphaImgn, in.BetaReal, in.BetaImgn = 0, 0, 0, 0
	_, v := Validate(in)
	if v == nil || v.Recommended == nil {
		t.Fatal("expected violation with recommendation")
	}
	if v.Recommended.AlphaReal != 0.5 || v.Recommended.BetaImgn != 0.5 {
		t.Fatalf("unexpected recommendation: %+v", v.Recommended)
	}
}

func TestValidateNormRecommendation(t *testing.T) {
	in := validInput()
	in.AlphaReal, in.BetaReal = 1, 1
	_, v := Validate(in)
	if v == nil || v.Recommended == nil {
		t.Fatal("expected norm violation with recommendation")
	}
	rec := v.Recommended
	normSquared := rec.AlphaReal*rec.AlphaReal + rec.AlphaImgn*rec.AlphaImgn +
		rec.BetaReal*rec.BetaReal + rec.BetaImgn*rec.BetaImgn
	if math.Abs(normSquared-1) > 1e-6 {
		t.Fatalf("recommended values not normalized: %v", normSquared)
	}
}

func TestValidateFieldLengths(t *testing.T) {
	in := validInput()
	in.Name = strings.Repeat("x", 46)
	if _, v := Validate(in); v == nil {
		t.Fatal("expected name length violation")
	}

	in = validInput()
	in.Symbol = "ab"
	if _, v := Validate(in); v == nil {
		t.Fatal("expected symbol length violation")
	}

	in = validInput()
	in.Description = ""
	if _, v := Validate(in); v == nil {
		t.Fatal("expected description violation")
	}
}
