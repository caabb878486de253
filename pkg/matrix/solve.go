package matrix

import (
	"fmt"
	"math"

	"github.com/edp1096/sparse"
)

// Solver solves the assembled network equations (B + jwA)x = b at a
// fixed angular frequency. It is a validation aid for circuits that
// carry no FEM coil components; the real solve happens in the external
// FEM solver.
type Solver struct {
	size   int
	matrix *sparse.Matrix
	rhs    []float64
	irhs   []float64
	config *sparse.Configuration
}

func NewSolver(size int) (*Solver, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}

	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 true,
		SeparatedComplexVectors: true,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	m, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %v", err)
	}

	return &Solver{
		size:   size,
		matrix: m,
		rhs:    make([]float64, size+1), // 1-based indexing
		irhs:   make([]float64, size+1),
		config: config,
	}, nil
}

// Load transfers the numeric tableau into the sparse system at the
// given excitation frequency in Hz.
func (s *Solver) Load(t *Tableau, freq float64) error {
	if t.Size() != s.size {
		return fmt.Errorf("%w: tableau is %dx%d, solver expects %d unknowns",
			ErrBadSize, t.Size(), t.Size(), s.size)
	}

	omega := 2 * math.Pi * freq
	for i := 0; i < s.size; i++ {
		for j := 0; j < s.size; j++ {
			re := t.StaticAt(i, j)
			im := omega * t.DynamicAt(i, j)
			if re == 0 && im == 0 {
				continue
			}
			e := s.matrix.GetElement(int64(i+1), int64(j+1))
			e.Real += re
			e.Imag += im
		}
		b := t.SourceAt(i)
		s.rhs[i+1] += real(b)
		s.irhs[i+1] += imag(b)
	}
	return nil
}

// Solve factors and solves the loaded system. The solution is indexed
// by unknown, zero-based.
func (s *Solver) Solve() ([]complex128, error) {
	err := s.matrix.Factor()
	if err != nil {
		return nil, fmt.Errorf("matrix factorization failed: %v", err)
	}

	re, im, err := s.matrix.SolveComplex(s.rhs, s.irhs)
	if err != nil {
		return nil, fmt.Errorf("matrix solve failed: %v", err)
	}

	x := make([]complex128, s.size)
	for i := range x {
		x[i] = complex(re[i+1], im[i+1])
	}
	return x, nil
}

// Clear resets the system so another frequency can be loaded.
func (s *Solver) Clear() {
	s.matrix.Clear()
	for i := range s.rhs {
		s.rhs[i] = 0
		s.irhs[i] = 0
	}
}
