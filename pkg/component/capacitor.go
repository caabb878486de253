package component

import (
	"github.com/XeuTap/elmer-circuitbuilder/pkg/matrix"
)

type Capacitor struct {
	BaseComponent
}

func NewCapacitor(name string, pin1, pin2 int, farads float64) *Capacitor {
	return &Capacitor{
		BaseComponent: BaseComponent{
			Name:     name,
			Pin1:     pin1,
			Pin2:     pin2,
			Value:    complex(farads, 0),
			HasValue: true,
		},
	}
}

func NewUnvaluedCapacitor(name string, pin1, pin2 int) *Capacitor {
	return &Capacitor{
		BaseComponent: BaseComponent{Name: name, Pin1: pin1, Pin2: pin2},
	}
}

func (c *Capacitor) GetKind() Kind { return KindCapacitor }

// StampBranch writes the branch relation i - C*dv/dt = 0: a unit static
// coefficient on the current and -C in the damping matrix on the voltage.
func (c *Capacitor) StampBranch(m matrix.BranchMatrix, pos BranchPos) error {
	if err := m.StampStatic(pos.Row, pos.CurrentCol, 1, "1"); err != nil {
		return err
	}
	return m.StampDynamic(pos.Row, pos.VoltageCol, -real(c.Value), "-"+c.Name)
}
