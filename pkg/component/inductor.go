package component

import (
	"github.com/XeuTap/elmer-circuitbuilder/pkg/matrix"
)

type Inductor struct {
	BaseComponent
}

func NewInductor(name string, pin1, pin2 int, henries float64) *Inductor {
	return &Inductor{
		BaseComponent: BaseComponent{
			Name:     name,
			Pin1:     pin1,
			Pin2:     pin2,
			Value:    complex(henries, 0),
			HasValue: true,
		},
	}
}

func NewUnvaluedInductor(name string, pin1, pin2 int) *Inductor {
	return &Inductor{
		BaseComponent: BaseComponent{Name: name, Pin1: pin1, Pin2: pin2},
	}
}

func (l *Inductor) GetKind() Kind { return KindInductor }

// StampBranch writes v - L*di/dt = 0: a unit static coefficient on the
// voltage and -L in the damping matrix on the current.
func (l *Inductor) StampBranch(m matrix.BranchMatrix, pos BranchPos) error {
	if err := m.StampStatic(pos.Row, pos.VoltageCol, 1, "1"); err != nil {
		return err
	}
	return m.StampDynamic(pos.Row, pos.CurrentCol, -real(l.Value), "-"+l.Name)
}
