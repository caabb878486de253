// Package sif renders assembled circuits into the circuit-definition
// grammar of the ElmerFEM solver input file: scalar parameter
// assignments, matrix declarations and cell assignments, Component
// blocks and Body Force source bindings. The output is a pure
// projection of the in-memory model; no numeric computation happens
// here and the full text is built before any file is touched.
package sif

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/XeuTap/elmer-circuitbuilder/internal/consts"
	"github.com/XeuTap/elmer-circuitbuilder/pkg/circuit"
	"github.com/XeuTap/elmer-circuitbuilder/pkg/component"
	"github.com/XeuTap/elmer-circuitbuilder/pkg/util"
)

var ErrNoCircuits = errors.New("sif: no circuits declared")

const rule = "! -----------------------------------------------------------------------------\n"

// Writer renders circuit definitions. The zero value omits the
// generation date; set Timestamp for the dated header. Now overrides
// the clock for reproducible output.
type Writer struct {
	Timestamp bool
	Now       func() time.Time
}

func NewWriter() *Writer {
	return &Writer{Timestamp: true}
}

// Generate renders the definition text for circuits 1..n. Any
// declaration error aborts before output exists.
func (w *Writer) Generate(circuits map[int]*circuit.Circuit) (string, error) {
	if len(circuits) == 0 {
		return "", ErrNoCircuits
	}

	var sb strings.Builder
	w.writeHeader(&sb, len(circuits))

	var bodyForces []string
	for i := 1; i <= len(circuits); i++ {
		c, ok := circuits[i]
		if !ok {
			return "", fmt.Errorf("sif: circuit indices must be contiguous 1..%d, missing %d",
				len(circuits), i)
		}
		if len(c.Coils()) == 0 {
			return "", fmt.Errorf("circuit %d: %w", c.Index, circuit.ErrNoCoil)
		}

		asm, err := c.Assemble()
		if err != nil {
			return "", err
		}

		writeParameters(&sb, c)
		writeMatrixInit(&sb, c, asm)
		writeUnknownVector(&sb, c, asm)
		writeSourceVector(&sb, c, asm)
		writeKCLEquations(&sb, c, asm)
		writeKVLEquations(&sb, c, asm)
		writeComponentEquations(&sb, c, asm)
		writeComponentBlocks(&sb, c)

		bodyForces = append(bodyForces, bodyForceLines(c)...)
	}

	writeBodyForces(&sb, bodyForces)
	return sb.String(), nil
}

// WriteFile renders the definition and writes it in one step, so a
// declaration error never leaves partial output behind.
func (w *Writer) WriteFile(path string, circuits map[int]*circuit.Circuit) error {
	text, err := w.Generate(circuits)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

func banner(sb *strings.Builder, title string) {
	sb.WriteString(rule)
	sb.WriteString("! " + title + "\n")
	sb.WriteString(rule)
}

func (w *Writer) writeHeader(sb *strings.Builder, numCircuits int) {
	if w.Timestamp {
		now := time.Now
		if w.Now != nil {
			now = w.Now
		}
		banner(sb, "ElmerFEM Circuit Generated: "+now().Format("January 02, 2006"))
		sb.WriteString("\n")
	}
	banner(sb, "Number of Circuits in Model")
	fmt.Fprintf(sb, "$ Circuits = %d\n", numCircuits)
}

func writeParameters(sb *strings.Builder, c *circuit.Circuit) {
	banner(sb, "Parameters")
	sb.WriteString("\n")

	sb.WriteString("! General Parameters \n")
	for _, cmp := range c.Components() {
		if cmp.GetKind() == component.KindCoil {
			continue
		}
		v, ok := cmp.GetValue()
		if !ok {
			// Value gets assigned manually in the .sif file.
			continue
		}
		name := cmp.GetName()
		if imag(v) != 0 {
			phase := util.Phase(v)
			fmt.Fprintf(sb, "! %s = re_%s+ j im_%s, phase_%s = %s(Deg)\n",
				name, name, name, name, util.FormatReal(util.Degrees(phase)))
			fmt.Fprintf(sb, "$ re_%s = %s\n", name, util.FormatReal(math.Abs(real(v))))
			fmt.Fprintf(sb, "$ im_%s = %s\n", name, util.FormatReal(math.Abs(imag(v))))
			fmt.Fprintf(sb, "$ phase_%s = %s\n", name, util.FormatReal(phase))
			continue
		}
		fmt.Fprintf(sb, "$ %s = %s\n", name, util.FormatReal(real(v)))
	}
	sb.WriteString("\n")

	for _, coil := range c.Coils() {
		fmt.Fprintf(sb, "! Parameters in Component %d: %s\n", coil.Number, coil.Name)
		switch coil.CoilType() {
		case component.Stranded:
			fmt.Fprintf(sb, "$ N_%s = %s\t ! Number of Turns\n", coil.Name, util.FormatReal(coil.Turns()))
			fmt.Fprintf(sb, "$ R_%s = %s\t ! Coil Resistance\n", coil.Name, util.FormatReal(coil.Resistance()))
		case component.Foil:
			fmt.Fprintf(sb, "$ N_%s = %s\t ! Number of Turns\n", coil.Name, util.FormatReal(coil.Turns()))
			fmt.Fprintf(sb, "$ L_%s = %s\t ! Coil Thickness\n", coil.Name, util.FormatReal(coil.Thickness()))
		}
		fmt.Fprintf(sb, "$ Ns_%s = %s\t ! Sector/Symmetry Coefficient (e.g. 4 is 1/4 of the domain)\n",
			coil.Name, util.FormatReal(coil.Sector))
		if coil.Is3D() {
			fmt.Fprintf(sb, "$ Ae_%s = %s\t ! Electrode Area (dummy for now change as required)\n",
				coil.Name, util.FormatReal(consts.ElectrodeArea))
		}
	}
}

func writeMatrixInit(sb *strings.Builder, c *circuit.Circuit, asm *circuit.Assembly) {
	banner(sb, "Matrix Size Declaration and Matrix Initialization")
	fmt.Fprintf(sb, "$ C.%d.variables = %d\n", c.Index, asm.Tableau.Size())
	fmt.Fprintf(sb, "$ C.%d.perm = zeros(C.%d.variables)\n", c.Index, c.Index)
	fmt.Fprintf(sb, "$ C.%d.A = zeros(C.%d.variables,C.%d.variables)\n", c.Index, c.Index, c.Index)
	fmt.Fprintf(sb, "$ C.%d.B = zeros(C.%d.variables,C.%d.variables)\n", c.Index, c.Index, c.Index)
	sb.WriteString("\n")
}

func writeUnknownVector(sb *strings.Builder, c *circuit.Circuit, asm *circuit.Assembly) {
	banner(sb, "Dof/Unknown Vector Definition")
	for i, name := range asm.Names {
		fmt.Fprintf(sb, "$ C.%d.name.%d = %s\n", c.Index, i+1, name)
	}
	sb.WriteString("\n")
}

func writeSourceVector(sb *strings.Builder, c *circuit.Circuit, asm *circuit.Assembly) {
	banner(sb, "Source Vector Definition")
	for i := 0; i < asm.Tableau.Size(); i++ {
		sym := asm.Tableau.SourceSymbol(i)
		if sym == "" {
			continue
		}
		fmt.Fprintf(sb, "$ C.%d.source.%d = \"%s\"\n", c.Index, i+1, strings.TrimPrefix(sym, "-"))
	}
	sb.WriteString("\n")
}

// writeCells emits one assignment line per non-zero symbolic cell of
// the named matrix over a row range.
func writeCells(sb *strings.Builder, c *circuit.Circuit, asm *circuit.Assembly,
	matrixName string, rowStart, rowEnd int, symbolAt func(i, j int) string) {
	for i := rowStart; i < rowEnd; i++ {
		for j := 0; j < asm.Tableau.Size(); j++ {
			sym := symbolAt(i, j)
			if sym == "" {
				continue
			}
			fmt.Fprintf(sb, "$ C.%d.%s(%d,%d) = %s\n", c.Index, matrixName, i, j, sym)
		}
	}
}

func writeKCLEquations(sb *strings.Builder, c *circuit.Circuit, asm *circuit.Assembly) {
	banner(sb, "KCL Equations")
	writeCells(sb, c, asm, "B", 0, asm.NumNodes-1, asm.Tableau.StaticSymbol)
	writeCells(sb, c, asm, "A", 0, asm.NumNodes-1, asm.Tableau.DynamicSymbol)
	sb.WriteString("\n")
}

func writeKVLEquations(sb *strings.Builder, c *circuit.Circuit, asm *circuit.Assembly) {
	banner(sb, "KVL Equations")
	// Elmer's source convention flips the sign of KVL coefficients in
	// ideal-current-source current columns.
	writeCells(sb, c, asm, "B", asm.NumNodes-1, asm.NumNodes-1+asm.NumEdges,
		func(i, j int) string {
			sym := asm.Tableau.StaticSymbol(i, j)
			if sym == "" || !asm.FlipCols[j] {
				return sym
			}
			return flipSign(sym)
		})
	writeCells(sb, c, asm, "A", asm.NumNodes-1, asm.NumNodes-1+asm.NumEdges,
		asm.Tableau.DynamicSymbol)
}

func writeComponentEquations(sb *strings.Builder, c *circuit.Circuit, asm *circuit.Assembly) {
	banner(sb, "Component Equations")
	rowStart := asm.NumNodes - 1 + asm.NumEdges
	rowEnd := rowStart + asm.NumEdges
	writeCells(sb, c, asm, "B", rowStart, rowEnd, asm.Tableau.StaticSymbol)
	sb.WriteString("\n")
	writeCells(sb, c, asm, "A", rowStart, rowEnd, asm.Tableau.DynamicSymbol)
	sb.WriteString("\n")
}

func writeComponentBlocks(sb *strings.Builder, c *circuit.Circuit) {
	banner(sb, "Additions in SIF file")
	for _, coil := range c.Coils() {
		writeCoilBlock(sb, coil)
	}
}

func writeCoilBlock(sb *strings.Builder, coil *component.Coil) {
	fmt.Fprintf(sb, "Component %d\n", coil.Number)
	fmt.Fprintf(sb, "  Name = \"%s\"\n", coil.Name)

	if len(coil.BodyNames) > 0 {
		fmt.Fprintf(sb, "  Master Bodies Name = %s\n", strings.Join(coil.BodyNames, ", "))
	}
	if len(coil.BodyIDs) > 0 {
		ids := make([]string, len(coil.BodyIDs))
		for i, id := range coil.BodyIDs {
			ids[i] = fmt.Sprintf("%d", id)
		}
		fmt.Fprintf(sb, "  Master Bodies(%d) = %s\n", len(ids), strings.Join(ids, ", "))
	}

	fmt.Fprintf(sb, "  Coil Type = \"%s\"\n", coil.CoilType())
	switch coil.CoilType() {
	case component.Stranded:
		fmt.Fprintf(sb, "  Number of Turns = Real $ N_%s\n", coil.Name)
		fmt.Fprintf(sb, "  Resistance = Real $ R_%s\n", coil.Name)
	case component.Foil:
		fmt.Fprintf(sb, "  Number of Turns = Real $ N_%s\n", coil.Name)
		fmt.Fprintf(sb, "  Coil Thickness = Real $ L_%s\n", coil.Name)
	}

	if coil.Is3D() {
		sb.WriteString("\n")
		sb.WriteString("  ! Additions for 3D Coil\n")
		_, _, open := coil.Terminals()
		switch coil.CoilType() {
		case component.Massive:
			writeWVector(sb, coil)
		case component.Stranded:
			if open {
				writeOpenTerminals(sb, coil)
			} else {
				writeWVector(sb, coil)
			}
		case component.Foil:
			if open {
				writeOpenTerminals(sb, coil)
			}
		}
	} else {
		fmt.Fprintf(sb, "  Symmetry Coefficient = Real $ 1/(Ns_%s)\n", coil.Name)
	}

	sb.WriteString("End \n")
}

func writeWVector(sb *strings.Builder, coil *component.Coil) {
	sb.WriteString("  Coil Use W Vector = Logical True\n")
	sb.WriteString("  W Vector Variable Name = String CoilCurrent e\n")
	fmt.Fprintf(sb, "  Electrode Area = Real $ Ae_%s\n", coil.Name)
}

func writeOpenTerminals(sb *strings.Builder, coil *component.Coil) {
	bnd1, bnd2, _ := coil.Terminals()
	fmt.Fprintf(sb, "  Electrode Boundaries(2) = Integer %d %d\n", bnd1, bnd2)
	sb.WriteString("  Circuit Equation Voltage Factor = Real 0.5 !(use for symmetry, e.g. half of the coil)\n")
}

// bodyForceLines renders the time or phasor source bindings of one
// circuit. Voltage sources enter the right hand side negated, hence
// the sign on their phasor terms.
func bodyForceLines(c *circuit.Circuit) []string {
	var lines []string
	for _, src := range c.Sources() {
		name := src.GetName()
		v, ok := src.GetValue()
		if ok && imag(v) != 0 {
			sign := ""
			if src.GetKind() == component.KindVoltageSource {
				sign = "-"
			}
			lines = append(lines,
				fmt.Sprintf("  %s_Source re = Real $ %sre_%s*cos(phase_%s)", name, sign, name, name),
				fmt.Sprintf("  %s_Source im = Real $ %sim_%s*sin(phase_%s)", name, sign, name, name))
			continue
		}
		lines = append(lines,
			fmt.Sprintf("  %s_Source = Variable \"time\" \n  \t Real MATC \"%s\"", name, name))
	}
	return lines
}

func writeBodyForces(sb *strings.Builder, lines []string) {
	banner(sb, "Sources in SIF ")
	sb.WriteString("\n")
	sb.WriteString("Body Force 1\n")
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("End\n")
	sb.WriteString("\n")
	banner(sb, "End of Circuit")
}

func flipSign(sym string) string {
	if strings.HasPrefix(sym, "-") {
		return sym[1:]
	}
	return "-" + sym
}

