package component

import (
	"github.com/XeuTap/elmer-circuitbuilder/pkg/matrix"
)

type CurrentSource struct {
	BaseComponent
}

func NewCurrentSource(name string, pin1, pin2 int, amps float64) *CurrentSource {
	return &CurrentSource{
		BaseComponent: BaseComponent{
			Name:     name,
			Pin1:     pin1,
			Pin2:     pin2,
			Value:    complex(amps, 0),
			HasValue: true,
		},
	}
}

// NewHarmonicCurrentSource declares a phasor-valued source for
// harmonic analysis. Its parameters are emitted as re/im/phase terms.
func NewHarmonicCurrentSource(name string, pin1, pin2 int, amps complex128) *CurrentSource {
	return &CurrentSource{
		BaseComponent: BaseComponent{
			Name:     name,
			Pin1:     pin1,
			Pin2:     pin2,
			Value:    amps,
			HasValue: true,
		},
	}
}

func (i *CurrentSource) GetKind() Kind { return KindCurrentSource }

// StampBranch pins the branch current to the source value: i = I.
func (i *CurrentSource) StampBranch(m matrix.BranchMatrix, pos BranchPos) error {
	if err := m.StampStatic(pos.Row, pos.CurrentCol, 1, "1"); err != nil {
		return err
	}
	return m.StampSource(pos.Row, i.Value, i.Name)
}
