package sif

import (
	"errors"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	circuits := sampleCircuits()
	w := &Writer{}
	text, err := w.Generate(circuits)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	pc, ok := parsed[1]
	if !ok {
		t.Fatal("circuit 1 missing from parse result")
	}

	asm, err := circuits[1].Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if pc.Variables != asm.Tableau.Size() {
		t.Fatalf("Variables = %d; want %d", pc.Variables, asm.Tableau.Size())
	}
	for i := 0; i < asm.Tableau.Size(); i++ {
		for j := 0; j < asm.Tableau.Size(); j++ {
			if got, want := pc.B[i][j], asm.Tableau.StaticSymbol(i, j); got != want {
				t.Errorf("parsed B(%d,%d) = %q; want %q", i, j, got, want)
			}
			if got, want := pc.A[i][j], asm.Tableau.DynamicSymbol(i, j); got != want {
				t.Errorf("parsed A(%d,%d) = %q; want %q", i, j, got, want)
			}
		}
	}

	if len(pc.Names) != len(asm.Names) {
		t.Fatalf("parsed %d names; want %d", len(pc.Names), len(asm.Names))
	}
	for i, want := range asm.Names {
		if pc.Names[i] != want {
			t.Errorf("parsed name %d = %s; want %s", i+1, pc.Names[i], want)
		}
	}

	if got := pc.Sources[9]; got != "I1" {
		t.Errorf(`parsed source 9 = %q; want "I1"`, got)
	}
	if len(pc.Sources) != 1 {
		t.Errorf("parsed %d sources; want 1", len(pc.Sources))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "cell before declaration",
			text: "$ C.1.B(0,0) = -1\n",
		},
		{
			name: "cell outside matrix",
			text: "$ C.1.variables = 2\n$ C.1.B(2,0) = 1\n",
		},
		{
			name: "name index out of order",
			text: "$ C.1.variables = 2\n$ C.1.name.2 = \"i_R1\"\n",
		},
		{
			name: "no declarations",
			text: "! just a comment\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.text); err == nil {
				t.Error("Parse succeeded; want error")
			}
		})
	}
}

func TestParseIgnoresProse(t *testing.T) {
	text := "! banner\n$ Circuits = 1\n$ C.2.variables = 1\n$ C.2.B(0,0) = R1\nEnd\n"
	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	pc := parsed[2]
	if pc == nil || pc.B[0][0] != "R1" {
		t.Fatalf("parsed = %+v; want circuit 2 with B(0,0)=R1", pc)
	}
	if _, err := Parse(""); !errors.Is(err, ErrNoCircuits) {
		t.Errorf("Parse of empty text = %v; want ErrNoCircuits", err)
	}
}
