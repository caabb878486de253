package component

import (
	"github.com/XeuTap/elmer-circuitbuilder/pkg/matrix"
)

type VoltageSource struct {
	BaseComponent
}

func NewVoltageSource(name string, pin1, pin2 int, volts float64) *VoltageSource {
	return &VoltageSource{
		BaseComponent: BaseComponent{
			Name:     name,
			Pin1:     pin1,
			Pin2:     pin2,
			Value:    complex(volts, 0),
			HasValue: true,
		},
	}
}

// NewHarmonicVoltageSource declares a phasor-valued source for
// harmonic analysis. Its parameters are emitted as re/im/phase terms.
func NewHarmonicVoltageSource(name string, pin1, pin2 int, volts complex128) *VoltageSource {
	return &VoltageSource{
		BaseComponent: BaseComponent{
			Name:     name,
			Pin1:     pin1,
			Pin2:     pin2,
			Value:    volts,
			HasValue: true,
		},
	}
}

func (v *VoltageSource) GetKind() Kind { return KindVoltageSource }

// StampBranch pins the branch voltage to the source value: v = V.
func (v *VoltageSource) StampBranch(m matrix.BranchMatrix, pos BranchPos) error {
	if err := m.StampStatic(pos.Row, pos.VoltageCol, 1, "1"); err != nil {
		return err
	}
	return m.StampSource(pos.Row, -v.Value, "-"+v.Name)
}
