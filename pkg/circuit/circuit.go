// Package circuit holds the declarative description of a lumped
// network and assembles it into the sparse-tableau matrices consumed
// by the definition serializer.
package circuit

import (
	"fmt"
	"math"
	"sort"

	"github.com/XeuTap/elmer-circuitbuilder/internal/consts"
	"github.com/XeuTap/elmer-circuitbuilder/pkg/component"
)

// Circuit is one KCL/KVL network, identified by its circuit index in
// the definition file. Components keep their declaration order; the
// unknown ordering of the assembled system follows from it.
type Circuit struct {
	Index      int
	RefNode    int // ground node, part of the network
	components []component.Component
}

func New(index int) *Circuit {
	return &Circuit{
		Index:   index,
		RefNode: consts.DefaultRefNode,
	}
}

// NewSet instantiates circuits 1..n, the way a model with n circuit
// blocks is declared.
func NewSet(n int) map[int]*Circuit {
	set := make(map[int]*Circuit, n)
	for i := 1; i <= n; i++ {
		set[i] = New(i)
	}
	return set
}

func (c *Circuit) Add(comps ...component.Component) {
	c.components = append(c.components, comps...)
}

func (c *Circuit) Components() []component.Component {
	return c.components
}

// NumEdges returns the number of branches; one per component.
func (c *Circuit) NumEdges() int {
	return len(c.components)
}

// NumNodes returns the number of distinct network nodes.
func (c *Circuit) NumNodes() int {
	seen := make(map[int]bool)
	for _, cmp := range c.components {
		p1, p2 := cmp.GetPins()
		seen[p1] = true
		seen[p2] = true
	}
	return len(seen)
}

// Coils returns the FEM coil components in declaration order.
func (c *Circuit) Coils() []*component.Coil {
	var coils []*component.Coil
	for _, cmp := range c.components {
		if coil, ok := cmp.(*component.Coil); ok {
			coils = append(coils, coil)
		}
	}
	return coils
}

// Sources returns the ideal voltage and current sources in declaration
// order.
func (c *Circuit) Sources() []component.Component {
	var sources []component.Component
	for _, cmp := range c.components {
		if component.IsSource(cmp) {
			sources = append(sources, cmp)
		}
	}
	return sources
}

// nonRefNodes returns the non-reference nodes in ascending order; the
// assembly uses this order for both incidence rows and potential
// unknown columns.
func (c *Circuit) nonRefNodes() []int {
	seen := make(map[int]bool)
	for _, cmp := range c.components {
		p1, p2 := cmp.GetPins()
		seen[p1] = true
		seen[p2] = true
	}
	delete(seen, c.RefNode)

	nodes := make([]int, 0, len(seen))
	for n := range seen {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)
	return nodes
}

// Validate checks the declaration against the error taxonomy: node
// references, duplicate names, value sanity and coil parameters. It
// does not require a coil; the serializer enforces that separately.
func (c *Circuit) Validate() error {
	if len(c.components) == 0 {
		return fmt.Errorf("circuit %d: %w", c.Index, ErrNoComponents)
	}

	nodes := make(map[int]bool)
	names := make(map[string]bool)
	coilNumbers := make(map[int]string)
	maxNode := 0

	for _, cmp := range c.components {
		name := cmp.GetName()
		if names[name] {
			return fmt.Errorf("circuit %d: component %q: %w", c.Index, name, ErrDuplicateName)
		}
		names[name] = true

		p1, p2 := cmp.GetPins()
		if p1 <= 0 || p2 <= 0 || p1 == p2 {
			return fmt.Errorf("circuit %d: component %q: pins (%d,%d): %w",
				c.Index, name, p1, p2, ErrBadPins)
		}
		nodes[p1] = true
		nodes[p2] = true
		if p1 > maxNode {
			maxNode = p1
		}
		if p2 > maxNode {
			maxNode = p2
		}

		if v, ok := cmp.GetValue(); ok {
			if math.IsNaN(real(v)) || math.IsInf(real(v), 0) ||
				math.IsNaN(imag(v)) || math.IsInf(imag(v), 0) {
				return fmt.Errorf("circuit %d: component %q: %w", c.Index, name, ErrBadValue)
			}
		}

		if coil, ok := cmp.(*component.Coil); ok {
			if err := c.validateCoil(coil, coilNumbers); err != nil {
				return err
			}
		}
	}

	// Node numbering must be contiguous 1..n so the incidence matrix
	// rows line up with the netlist numbering.
	for n := 1; n <= maxNode; n++ {
		if !nodes[n] {
			return fmt.Errorf("circuit %d: node %d missing from netlist numbering 1..%d: %w",
				c.Index, n, maxNode, ErrUnknownNode)
		}
	}
	if !nodes[c.RefNode] {
		return fmt.Errorf("circuit %d: reference node %d: %w", c.Index, c.RefNode, ErrUnknownNode)
	}

	return nil
}

func (c *Circuit) validateCoil(coil *component.Coil, numbers map[int]string) error {
	if coil.Number <= 0 {
		return fmt.Errorf("circuit %d: coil %q: component number %d must be positive: %w",
			c.Index, coil.Name, coil.Number, ErrBadCoil)
	}
	if other, taken := numbers[coil.Number]; taken {
		return fmt.Errorf("circuit %d: coil %q: component number %d already used by %q: %w",
			c.Index, coil.Name, coil.Number, other, ErrBadCoil)
	}
	numbers[coil.Number] = coil.Name

	if coil.Sector <= 0 {
		return fmt.Errorf("circuit %d: coil %q: sector must be positive: %w",
			c.Index, coil.Name, ErrBadCoil)
	}
	if t := coil.CoilType(); t == component.Stranded || t == component.Foil {
		if coil.Turns() <= 0 {
			return fmt.Errorf("circuit %d: coil %q: number of turns must be positive: %w",
				c.Index, coil.Name, ErrBadCoil)
		}
	}
	if bnd1, bnd2, open := coil.Terminals(); open && (bnd1 <= 0 || bnd2 <= 0) {
		return fmt.Errorf("circuit %d: coil %q: open coil needs two terminal boundaries: %w",
			c.Index, coil.Name, ErrBadCoil)
	}
	return nil
}
