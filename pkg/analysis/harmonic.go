// Package analysis runs numeric harmonic analyses on assembled
// circuits. It is a stand-alone check of the tableau systems; circuits
// with FEM-coupled coils cannot be analyzed here because their
// equation rows are completed by the field solver.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/XeuTap/elmer-circuitbuilder/pkg/circuit"
	"github.com/XeuTap/elmer-circuitbuilder/pkg/matrix"
)

// Sweep point spacings.
const (
	Decade = "DEC"
	Octave = "OCT"
	Linear = "LIN"
)

// HarmonicSweep solves a circuit over a range of frequencies and
// records magnitude and phase for every tableau unknown.
type HarmonicSweep struct {
	startFreq   float64
	stopFreq    float64
	numPoints   int
	pointsType  string
	frequencies []float64

	asm     *circuit.Assembly
	results map[string][]float64 // key: unknown name with _MAG/_PHASE suffix
}

// NewHarmonicSweep prepares a sweep of nPoints frequencies between
// fStart and fStop, spaced per pType (Decade, Octave or Linear).
func NewHarmonicSweep(fStart, fStop float64, nPoints int, pType string) *HarmonicSweep {
	return &HarmonicSweep{
		startFreq:  fStart,
		stopFreq:   fStop,
		numPoints:  nPoints,
		pointsType: pType,
		results:    make(map[string][]float64),
	}
}

// NewHarmonic prepares a single-frequency analysis.
func NewHarmonic(freq float64) *HarmonicSweep {
	return NewHarmonicSweep(freq, freq, 1, Linear)
}

func (h *HarmonicSweep) Setup(c *circuit.Circuit) error {
	if len(c.Coils()) > 0 {
		return fmt.Errorf("analysis: circuit %d has FEM-coupled coils", c.Index)
	}
	if h.numPoints < 1 {
		return fmt.Errorf("analysis: need at least one frequency point")
	}
	if h.numPoints > 1 && (h.startFreq <= 0 || h.stopFreq <= h.startFreq) &&
		h.pointsType != Linear {
		return fmt.Errorf("analysis: logarithmic sweep needs 0 < start < stop")
	}

	asm, err := c.Assemble()
	if err != nil {
		return err
	}
	h.asm = asm
	h.generateFrequencyPoints()
	return nil
}

func (h *HarmonicSweep) Execute() error {
	if h.asm == nil {
		return fmt.Errorf("analysis: circuit not set")
	}

	solver, err := matrix.NewSolver(h.asm.Tableau.Size())
	if err != nil {
		return err
	}
	for _, freq := range h.frequencies {
		solver.Clear()
		if err := solver.Load(h.asm.Tableau, freq); err != nil {
			return fmt.Errorf("analysis: loading system at f=%g: %w", freq, err)
		}
		solution, err := solver.Solve()
		if err != nil {
			return fmt.Errorf("analysis: solve at f=%g: %w", freq, err)
		}
		h.storeResult(freq, solution)
	}
	return nil
}

func (h *HarmonicSweep) storeResult(freq float64, solution []complex128) {
	h.results["FREQ"] = append(h.results["FREQ"], freq)
	for i, value := range solution {
		name := strings.Trim(h.asm.Names[i], "\"")
		h.results[name+"_MAG"] = append(h.results[name+"_MAG"], cmplx.Abs(value))
		h.results[name+"_PHASE"] = append(h.results[name+"_PHASE"],
			cmplx.Phase(value)*180.0/math.Pi)
	}
}

func (h *HarmonicSweep) generateFrequencyPoints() {
	h.frequencies = make([]float64, h.numPoints)
	if h.numPoints == 1 {
		h.frequencies[0] = h.startFreq
		return
	}

	switch h.pointsType {
	case Decade:
		logStart := math.Log10(h.startFreq)
		logStop := math.Log10(h.stopFreq)
		step := (logStop - logStart) / float64(h.numPoints-1)
		for i := range h.frequencies {
			h.frequencies[i] = math.Pow(10, logStart+float64(i)*step)
		}
	case Octave:
		logStart := math.Log2(h.startFreq)
		logStop := math.Log2(h.stopFreq)
		step := (logStop - logStart) / float64(h.numPoints-1)
		for i := range h.frequencies {
			h.frequencies[i] = math.Pow(2, logStart+float64(i)*step)
		}
	default: // Linear
		step := (h.stopFreq - h.startFreq) / float64(h.numPoints-1)
		for i := range h.frequencies {
			h.frequencies[i] = h.startFreq + float64(i)*step
		}
	}
}

// Frequencies returns the generated sweep points. Valid after Setup.
func (h *HarmonicSweep) Frequencies() []float64 {
	return h.frequencies
}

// UnknownNames returns the tableau unknown names without quoting.
// Valid after Setup.
func (h *HarmonicSweep) UnknownNames() []string {
	names := make([]string, len(h.asm.Names))
	for i, n := range h.asm.Names {
		names[i] = strings.Trim(n, "\"")
	}
	return names
}

func (h *HarmonicSweep) GetResults() map[string][]float64 {
	return h.results
}
