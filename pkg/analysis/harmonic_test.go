package analysis

import (
	"math"
	"testing"

	"github.com/XeuTap/elmer-circuitbuilder/pkg/circuit"
	"github.com/XeuTap/elmer-circuitbuilder/pkg/component"
)

func TestHarmonicResistiveCircuit(t *testing.T) {
	c := circuit.New(1)
	c.Add(component.NewVoltageSource("V1", 1, 2, 1))
	c.Add(component.NewResistor("R1", 2, 1, 1000))

	h := NewHarmonic(50)
	if err := h.Setup(c); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := h.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	results := h.GetResults()
	if got := results["FREQ"]; len(got) != 1 || got[0] != 50 {
		t.Fatalf("FREQ = %v; want [50]", got)
	}
	if got := results["i_R1_MAG"][0]; math.Abs(got-0.001) > 1e-9 {
		t.Errorf("|i_R1| = %g; want 0.001", got)
	}
	if got := results["u_2_circuit_1_MAG"][0]; math.Abs(got-1) > 1e-9 {
		t.Errorf("|u_2| = %g; want 1", got)
	}
}

func TestHarmonicRCFilterAtCutoff(t *testing.T) {
	c := circuit.New(1)
	c.Add(component.NewVoltageSource("V1", 1, 2, 1))
	c.Add(component.NewResistor("R1", 2, 3, 1000))
	c.Add(component.NewCapacitor("C1", 3, 1, 1e-6))

	cutoff := 1 / (2 * math.Pi * 1000 * 1e-6)
	h := NewHarmonic(cutoff)
	if err := h.Setup(c); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := h.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := h.GetResults()["u_3_circuit_1_MAG"][0]
	if math.Abs(got-1/math.Sqrt2) > 1e-9 {
		t.Errorf("|u_3| at cutoff = %g; want %g", got, 1/math.Sqrt2)
	}
}

func TestFrequencyPointGeneration(t *testing.T) {
	tests := []struct {
		name  string
		sweep *HarmonicSweep
		want  []float64
	}{
		{"single point", NewHarmonic(50), []float64{50}},
		{"decade", NewHarmonicSweep(1, 100, 3, Decade), []float64{1, 10, 100}},
		{"octave", NewHarmonicSweep(1, 4, 3, Octave), []float64{1, 2, 4}},
		{"linear", NewHarmonicSweep(10, 30, 3, Linear), []float64{10, 20, 30}},
	}

	c := circuit.New(1)
	c.Add(component.NewVoltageSource("V1", 1, 2, 1))
	c.Add(component.NewResistor("R1", 2, 1, 1000))

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.sweep.Setup(c); err != nil {
				t.Fatalf("Setup: %v", err)
			}
			got := tc.sweep.Frequencies()
			if len(got) != len(tc.want) {
				t.Fatalf("Frequencies() = %v; want %v", got, tc.want)
			}
			for i := range tc.want {
				if math.Abs(got[i]-tc.want[i]) > 1e-9 {
					t.Fatalf("Frequencies() = %v; want %v", got, tc.want)
				}
			}
		})
	}
}

func TestSweepRecordsEveryPoint(t *testing.T) {
	c := circuit.New(1)
	c.Add(component.NewVoltageSource("V1", 1, 2, 1))
	c.Add(component.NewResistor("R1", 2, 3, 1000))
	c.Add(component.NewCapacitor("C1", 3, 1, 1e-6))

	h := NewHarmonicSweep(10, 1000, 5, Decade)
	if err := h.Setup(c); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := h.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	results := h.GetResults()
	if len(results["FREQ"]) != 5 {
		t.Fatalf("recorded %d frequency points; want 5", len(results["FREQ"]))
	}
	mags := results["u_3_circuit_1_MAG"]
	if len(mags) != 5 {
		t.Fatalf("recorded %d magnitudes; want 5", len(mags))
	}
	for i := 1; i < len(mags); i++ {
		if mags[i] >= mags[i-1] {
			t.Errorf("low-pass response not monotonic: |u_3|[%d]=%g >= |u_3|[%d]=%g",
				i, mags[i], i-1, mags[i-1])
		}
	}
}

func TestSetupRejectsCoils(t *testing.T) {
	c := circuit.New(1)
	c.Add(component.NewCurrentSource("I1", 1, 2, 1))
	c.Add(component.NewCoil("W1", 2, 1, 1))

	if err := NewHarmonic(50).Setup(c); err == nil {
		t.Error("Setup of circuit with coils succeeded; want error")
	}
}
