package circuit

import (
	"fmt"

	"github.com/XeuTap/elmer-circuitbuilder/pkg/component"
	"github.com/XeuTap/elmer-circuitbuilder/pkg/matrix"
)

// Assembly is the fully stamped tableau system in Elmer's row
// convention, ready for serialization. Unknown ordering: branch
// currents in declaration order, branch voltages in declaration order,
// then non-reference node potentials in ascending node order.
type Assembly struct {
	Tableau  *matrix.Tableau
	Names    []string // one quoted-name binding per unknown
	NumNodes int
	NumEdges int

	// CoilVoltageRows are the rows left empty for the solver-completed
	// coil voltage equations (after the row exchange).
	CoilVoltageRows []int

	// FlipCols marks the current-unknown columns of ideal current
	// sources; KVL cells in these columns are emitted with their sign
	// flipped to match Elmer's source convention.
	FlipCols map[int]bool
}

// Assemble validates the declaration and builds the tableau system.
// No row of the result is left undetermined: each row is a KCL node
// balance, a KVL loop balance, a component branch relation, or one of
// the deliberately empty coil voltage rows.
func (c *Circuit) Assemble() (*Assembly, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	numEdges := c.NumEdges()
	numNodes := c.NumNodes()
	size := 2*numEdges + numNodes - 1

	t, err := matrix.New(size)
	if err != nil {
		return nil, fmt.Errorf("circuit %d: %w", c.Index, err)
	}

	// Potential unknown column per non-reference node.
	potCol := make(map[int]int)
	for i, node := range c.nonRefNodes() {
		potCol[node] = 2*numEdges + i
	}

	// KCL rows: one incidence row per non-reference node. The branch
	// current leaves pin1 and enters pin2.
	for edge, cmp := range c.components {
		p1, p2 := cmp.GetPins()
		if col, ok := potCol[p1]; ok {
			if err := t.StampStatic(col-2*numEdges, edge, 1, "1"); err != nil {
				return nil, err
			}
		}
		if col, ok := potCol[p2]; ok {
			if err := t.StampStatic(col-2*numEdges, edge, -1, "-1"); err != nil {
				return nil, err
			}
		}
	}

	// KVL rows: -v_edge plus the potential difference across the pins.
	for edge, cmp := range c.components {
		row := numNodes - 1 + edge
		if err := t.StampStatic(row, numEdges+edge, -1, "-1"); err != nil {
			return nil, err
		}
		p1, p2 := cmp.GetPins()
		if col, ok := potCol[p1]; ok {
			if err := t.StampStatic(row, col, 1, "1"); err != nil {
				return nil, err
			}
		}
		if col, ok := potCol[p2]; ok {
			if err := t.StampStatic(row, col, -1, "-1"); err != nil {
				return nil, err
			}
		}
	}

	// Component equation rows: each kind applies its fixed stamp.
	for edge, cmp := range c.components {
		pos := component.BranchPos{
			Row:        numNodes - 1 + numEdges + edge,
			CurrentCol: edge,
			VoltageCol: numEdges + edge,
		}
		if err := cmp.StampBranch(t, pos); err != nil {
			return nil, fmt.Errorf("circuit %d: stamping component %q: %w",
				c.Index, cmp.GetName(), err)
		}
	}

	asm := &Assembly{
		Tableau:  t,
		Names:    c.unknownNames(),
		NumNodes: numNodes,
		NumEdges: numEdges,
		FlipCols: make(map[int]bool),
	}

	// Coil voltage unknowns and current-source columns.
	var coilVoltageRows []int
	for edge, cmp := range c.components {
		switch cmp.GetKind() {
		case component.KindCoil:
			coilVoltageRows = append(coilVoltageRows, numEdges+edge)
		case component.KindCurrentSource:
			asm.FlipCols[edge] = true
		}
	}

	// The solver completes the coil voltage equations through the
	// Component blocks, so the rows at those unknown indices must be
	// empty: exchange them with the all-zero coil equation rows.
	zeroRows := t.ZeroRows()
	for i, vrow := range coilVoltageRows {
		if i >= len(zeroRows) {
			break
		}
		if err := t.SwapRows(zeroRows[i], vrow); err != nil {
			return nil, err
		}
	}
	asm.CoilVoltageRows = coilVoltageRows

	return asm, nil
}

// unknownNames builds the quoted degree-of-freedom names in unknown
// order: i_*, v_*, then u_<node>_circuit_<index>.
func (c *Circuit) unknownNames() []string {
	names := make([]string, 0, 2*len(c.components)+1)

	for _, cmp := range c.components {
		if coil, ok := cmp.(*component.Coil); ok {
			names = append(names, fmt.Sprintf("\"i_component(%d)\"", coil.Number))
			continue
		}
		names = append(names, fmt.Sprintf("\"i_%s\"", cmp.GetName()))
	}
	for _, cmp := range c.components {
		if coil, ok := cmp.(*component.Coil); ok {
			names = append(names, fmt.Sprintf("\"v_component(%d)\"", coil.Number))
			continue
		}
		names = append(names, fmt.Sprintf("\"v_%s\"", cmp.GetName()))
	}
	for _, node := range c.nonRefNodes() {
		names = append(names, fmt.Sprintf("\"u_%d_circuit_%d\"", node, c.Index))
	}

	return names
}
