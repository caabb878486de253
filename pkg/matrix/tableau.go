// Package matrix holds the sparse-tableau coefficient matrices of a
// circuit network: the static (stiffness, "B" in Elmer) and dynamic
// (damping, "A" in Elmer) matrices plus the source vector. Every cell
// exists in two mirrored forms: a numeric value for the validation
// solve and a symbolic cell ("1", "-1" or a parameter name) for the
// definition file. An empty symbol is a zero cell.
package matrix

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrBadSize    = errors.New("matrix: size must be positive")
	ErrOutOfRange = errors.New("matrix: index out of range")
)

type Tableau struct {
	size       int
	static     *mat.Dense
	dynamic    *mat.Dense
	source     []complex128
	staticSym  [][]string
	dynamicSym [][]string
	sourceSym  []string
}

// New returns a zero-initialized size x size tableau.
func New(size int) (*Tableau, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}

	staticSym := make([][]string, size)
	dynamicSym := make([][]string, size)
	for i := range staticSym {
		staticSym[i] = make([]string, size)
		dynamicSym[i] = make([]string, size)
	}

	return &Tableau{
		size:       size,
		static:     mat.NewDense(size, size, nil),
		dynamic:    mat.NewDense(size, size, nil),
		source:     make([]complex128, size),
		staticSym:  staticSym,
		dynamicSym: dynamicSym,
		sourceSym:  make([]string, size),
	}, nil
}

func (t *Tableau) Size() int { return t.size }

func (t *Tableau) checkCell(i, j int) error {
	if i < 0 || j < 0 || i >= t.size || j >= t.size {
		return fmt.Errorf("%w: (%d,%d) in %dx%d tableau", ErrOutOfRange, i, j, t.size, t.size)
	}
	return nil
}

func (t *Tableau) checkRow(i int) error {
	if i < 0 || i >= t.size {
		return fmt.Errorf("%w: row %d in %dx%d tableau", ErrOutOfRange, i, t.size, t.size)
	}
	return nil
}

// StampStatic accumulates a coefficient into the static (stiffness) matrix.
func (t *Tableau) StampStatic(i, j int, value float64, symbol string) error {
	if err := t.checkCell(i, j); err != nil {
		return err
	}
	t.static.Set(i, j, t.static.At(i, j)+value)
	t.staticSym[i][j] += symbol
	return nil
}

// StampDynamic accumulates a coefficient into the dynamic (damping) matrix.
func (t *Tableau) StampDynamic(i, j int, value float64, symbol string) error {
	if err := t.checkCell(i, j); err != nil {
		return err
	}
	t.dynamic.Set(i, j, t.dynamic.At(i, j)+value)
	t.dynamicSym[i][j] += symbol
	return nil
}

// StampSource accumulates a source contribution into the right hand side.
func (t *Tableau) StampSource(i int, value complex128, symbol string) error {
	if err := t.checkRow(i); err != nil {
		return err
	}
	t.source[i] += value
	t.sourceSym[i] += symbol
	return nil
}

func (t *Tableau) StaticAt(i, j int) float64 { return t.static.At(i, j) }

func (t *Tableau) DynamicAt(i, j int) float64 { return t.dynamic.At(i, j) }

func (t *Tableau) SourceAt(i int) complex128 { return t.source[i] }

func (t *Tableau) StaticSymbol(i, j int) string { return t.staticSym[i][j] }

func (t *Tableau) DynamicSymbol(i, j int) string { return t.dynamicSym[i][j] }

func (t *Tableau) SourceSymbol(i int) string { return t.sourceSym[i] }

// SwapRows exchanges two rows across the static and dynamic matrices
// and the source vector.
func (t *Tableau) SwapRows(i, j int) error {
	if err := t.checkRow(i); err != nil {
		return err
	}
	if err := t.checkRow(j); err != nil {
		return err
	}
	if i == j {
		return nil
	}

	ri, rj := mat.Row(nil, i, t.static), mat.Row(nil, j, t.static)
	t.static.SetRow(i, rj)
	t.static.SetRow(j, ri)

	ri, rj = mat.Row(nil, i, t.dynamic), mat.Row(nil, j, t.dynamic)
	t.dynamic.SetRow(i, rj)
	t.dynamic.SetRow(j, ri)

	t.source[i], t.source[j] = t.source[j], t.source[i]
	t.staticSym[i], t.staticSym[j] = t.staticSym[j], t.staticSym[i]
	t.dynamicSym[i], t.dynamicSym[j] = t.dynamicSym[j], t.dynamicSym[i]
	t.sourceSym[i], t.sourceSym[j] = t.sourceSym[j], t.sourceSym[i]
	return nil
}

// ZeroRows returns the indices of rows that carry no equation: every
// static and dynamic cell and the source entry are zero.
func (t *Tableau) ZeroRows() []int {
	var rows []int
	for i := 0; i < t.size; i++ {
		if t.rowIsZero(i) {
			rows = append(rows, i)
		}
	}
	return rows
}

func (t *Tableau) rowIsZero(i int) bool {
	if t.source[i] != 0 || t.sourceSym[i] != "" {
		return false
	}
	for j := 0; j < t.size; j++ {
		if t.static.At(i, j) != 0 || t.staticSym[i][j] != "" {
			return false
		}
		if t.dynamic.At(i, j) != 0 || t.dynamicSym[i][j] != "" {
			return false
		}
	}
	return true
}
