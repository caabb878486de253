package component

import (
	"github.com/XeuTap/elmer-circuitbuilder/pkg/matrix"
)

type Resistor struct {
	BaseComponent
}

func NewResistor(name string, pin1, pin2 int, ohms float64) *Resistor {
	return &Resistor{
		BaseComponent: BaseComponent{
			Name:     name,
			Pin1:     pin1,
			Pin2:     pin2,
			Value:    complex(ohms, 0),
			HasValue: true,
		},
	}
}

// NewUnvaluedResistor declares a resistor whose resistance parameter is
// assigned manually in the .sif file.
func NewUnvaluedResistor(name string, pin1, pin2 int) *Resistor {
	return &Resistor{
		BaseComponent: BaseComponent{Name: name, Pin1: pin1, Pin2: pin2},
	}
}

func (r *Resistor) GetKind() Kind { return KindResistor }

// StampBranch writes Ohm's law for the branch: R*i - v = 0.
func (r *Resistor) StampBranch(m matrix.BranchMatrix, pos BranchPos) error {
	if err := m.StampStatic(pos.Row, pos.CurrentCol, real(r.Value), r.Name); err != nil {
		return err
	}
	return m.StampStatic(pos.Row, pos.VoltageCol, -1, "-1")
}
