// Package component models the lumped circuit elements that can appear
// in an Elmer circuit network. Each kind knows how to stamp its branch
// equation into the tableau matrices.
package component

import (
	"github.com/XeuTap/elmer-circuitbuilder/pkg/matrix"
)

type Kind int

const (
	KindResistor Kind = iota
	KindCapacitor
	KindInductor
	KindVoltageSource
	KindCurrentSource
	KindCoil
)

func (k Kind) String() string {
	switch k {
	case KindResistor:
		return "R"
	case KindCapacitor:
		return "C"
	case KindInductor:
		return "L"
	case KindVoltageSource:
		return "V"
	case KindCurrentSource:
		return "I"
	case KindCoil:
		return "coil"
	}
	return "unknown"
}

// BranchPos locates a component's equation row and its current/voltage
// unknown columns in the tableau.
type BranchPos struct {
	Row        int
	CurrentCol int
	VoltageCol int
}

type Component interface {
	GetName() string
	GetKind() Kind
	GetPins() (pos, neg int)
	// GetValue reports the declared SI value. A component without a
	// value gets its parameter assigned manually in the .sif file.
	GetValue() (complex128, bool)
	StampBranch(m matrix.BranchMatrix, pos BranchPos) error
}

type BaseComponent struct {
	Name     string
	Pin1     int // positive network node
	Pin2     int // negative network node
	Value    complex128
	HasValue bool
}

func (c *BaseComponent) GetName() string { return c.Name }

func (c *BaseComponent) GetPins() (int, int) { return c.Pin1, c.Pin2 }

func (c *BaseComponent) GetValue() (complex128, bool) { return c.Value, c.HasValue }

// IsSource reports whether a component is an ideal source whose value
// ends up in the Body Force block.
func IsSource(c Component) bool {
	k := c.GetKind()
	return k == KindVoltageSource || k == KindCurrentSource
}
