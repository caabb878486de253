package component

import (
	"github.com/XeuTap/elmer-circuitbuilder/pkg/matrix"
)

// CoilType selects the winding discretization used by the FEM solver.
type CoilType int

const (
	Massive CoilType = iota
	Stranded
	Foil
)

// String returns the exact Coil Type keyword expected by the solver.
func (t CoilType) String() string {
	switch t {
	case Stranded:
		return "Stranded"
	case Foil:
		return "Foil winding"
	}
	return "Massive"
}

// Coil is a circuit branch coupled to the finite-element field
// solution. Its voltage equation row is left empty: the solver
// completes it through the matching Component block.
type Coil struct {
	BaseComponent
	Number    int      // Component block index in the .sif file
	BodyIDs   []int    // master bodies by mesh body id
	BodyNames []string // master bodies by body name
	Sector    float64  // symmetry coefficient divisor, 1 = full geometry

	threeD     bool
	coilType   CoilType
	turns      float64
	resistance float64
	thickness  float64
	open       bool
	bnd1, bnd2 int
}

// NewCoil declares a 2D massive coil; use the setters for other
// winding types, 3D modeling and open terminals.
func NewCoil(name string, pin1, pin2, number int) *Coil {
	return &Coil{
		BaseComponent: BaseComponent{Name: name, Pin1: pin1, Pin2: pin2},
		Number:        number,
		Sector:        1,
		turns:         1,
	}
}

// SetMassive marks the coil as a solid conductor.
func (c *Coil) SetMassive() {
	c.coilType = Massive
}

// SetStranded marks the coil as a stranded winding with the given
// number of turns and single-turn resistance.
func (c *Coil) SetStranded(turns, resistance float64) {
	c.coilType = Stranded
	c.turns = turns
	c.resistance = resistance
}

// SetFoil marks the coil as a foil winding with the given number of
// turns and foil thickness.
func (c *Coil) SetFoil(turns, thickness float64) {
	c.coilType = Foil
	c.turns = turns
	c.thickness = thickness
}

// Set3D marks the coil as a three-dimensional conductor. 3D coils are
// closed by default; an open coil needs SetOpen.
func (c *Coil) Set3D() {
	c.threeD = true
}

// SetOpen declares the coil open between two terminal boundaries.
func (c *Coil) SetOpen(bnd1, bnd2 int) {
	c.open = true
	c.bnd1 = bnd1
	c.bnd2 = bnd2
}

// SetClosed declares the coil closed (no terminal boundaries, cuts are
// needed in the mesh).
func (c *Coil) SetClosed() {
	c.open = false
	c.bnd1, c.bnd2 = 0, 0
}

func (c *Coil) GetKind() Kind { return KindCoil }

func (c *Coil) Is3D() bool { return c.threeD }

func (c *Coil) CoilType() CoilType { return c.coilType }

func (c *Coil) Turns() float64 { return c.turns }

func (c *Coil) Resistance() float64 { return c.resistance }

func (c *Coil) Thickness() float64 { return c.thickness }

// Terminals returns the open-coil boundary pair; open is false for a
// closed coil.
func (c *Coil) Terminals() (bnd1, bnd2 int, open bool) {
	return c.bnd1, c.bnd2, c.open
}

// StampBranch is a no-op: the coil's voltage equation is completed by
// the FEM solver, so its rows stay empty in the assembled matrices.
func (c *Coil) StampBranch(m matrix.BranchMatrix, pos BranchPos) error {
	return nil
}
