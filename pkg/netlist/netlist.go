// Package netlist loads circuit declarations from YAML files, so a
// definition can be generated without writing Go code. Component
// values accept engineering suffixes (1k, 4.7u, 2meg).
package netlist

import (
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/XeuTap/elmer-circuitbuilder/internal/consts"
	"github.com/XeuTap/elmer-circuitbuilder/pkg/circuit"
	"github.com/XeuTap/elmer-circuitbuilder/pkg/component"
)

// Document is the top-level YAML schema.
type Document struct {
	Frequency float64       `yaml:"frequency,omitempty"`
	Circuits  []CircuitSpec `yaml:"circuits"`
}

// CircuitSpec declares one circuit. Index defaults to the position in
// the circuits list, RefNode to ground node 1.
type CircuitSpec struct {
	Index      int             `yaml:"index,omitempty"`
	RefNode    int             `yaml:"ref_node,omitempty"`
	Components []ComponentSpec `yaml:"components"`
}

// ComponentSpec declares one branch. Kind is one of R, C, L, V, I or
// coil. Value and Phase apply to the electrical kinds; the remaining
// fields describe coils.
type ComponentSpec struct {
	Kind  string  `yaml:"kind"`
	Name  string  `yaml:"name"`
	Pins  []int   `yaml:"pins"`
	Value string  `yaml:"value,omitempty"`
	Phase float64 `yaml:"phase,omitempty"` // degrees

	Component  int      `yaml:"component,omitempty"` // Component block index
	Bodies     []string `yaml:"bodies,omitempty"`
	BodyIDs    []int    `yaml:"body_ids,omitempty"`
	Sector     float64  `yaml:"sector,omitempty"`
	Dimension  int      `yaml:"dimension,omitempty"` // 2 (default) or 3
	Coil       string   `yaml:"coil,omitempty"`      // massive, stranded, foil
	Turns      string   `yaml:"turns,omitempty"`
	Resistance string   `yaml:"resistance,omitempty"`
	Thickness  string   `yaml:"thickness,omitempty"`
	Terminals  []int    `yaml:"terminals,omitempty"` // open-coil boundary pair
}

// Load reads a YAML document and builds the declared circuits. The
// returned frequency is the document's, or the default grid frequency
// when omitted.
func Load(r io.Reader) (map[int]*circuit.Circuit, float64, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, 0, fmt.Errorf("netlist: decoding document: %w", err)
	}
	if len(doc.Circuits) == 0 {
		return nil, 0, fmt.Errorf("netlist: document declares no circuits")
	}
	freq := doc.Frequency
	if freq == 0 {
		freq = consts.DefaultFrequency
	}

	circuits := make(map[int]*circuit.Circuit, len(doc.Circuits))
	for pos, spec := range doc.Circuits {
		index := spec.Index
		if index == 0 {
			index = pos + 1
		}
		if _, dup := circuits[index]; dup {
			return nil, 0, fmt.Errorf("netlist: duplicate circuit index %d", index)
		}
		c := circuit.New(index)
		if spec.RefNode != 0 {
			c.RefNode = spec.RefNode
		}
		for _, cs := range spec.Components {
			cmp, err := buildComponent(cs)
			if err != nil {
				return nil, 0, fmt.Errorf("netlist: circuit %d: %w", index, err)
			}
			c.Add(cmp)
		}
		circuits[index] = c
	}
	return circuits, freq, nil
}

// LoadFile reads the YAML document at path.
func LoadFile(path string) (map[int]*circuit.Circuit, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("netlist: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func buildComponent(cs ComponentSpec) (component.Component, error) {
	if cs.Name == "" {
		return nil, fmt.Errorf("component without a name")
	}
	if len(cs.Pins) != 2 {
		return nil, fmt.Errorf("component %s: need exactly 2 pins, got %d", cs.Name, len(cs.Pins))
	}
	p1, p2 := cs.Pins[0], cs.Pins[1]

	kind := strings.ToUpper(cs.Kind)
	if strings.EqualFold(cs.Kind, "coil") {
		return buildCoil(cs, p1, p2)
	}

	value, hasValue, err := parseSpecValue(cs)
	if err != nil {
		return nil, fmt.Errorf("component %s: %w", cs.Name, err)
	}

	switch kind {
	case "R":
		if !hasValue {
			return component.NewUnvaluedResistor(cs.Name, p1, p2), nil
		}
		return component.NewResistor(cs.Name, p1, p2, real(value)), nil
	case "C":
		if !hasValue {
			return component.NewUnvaluedCapacitor(cs.Name, p1, p2), nil
		}
		return component.NewCapacitor(cs.Name, p1, p2, real(value)), nil
	case "L":
		if !hasValue {
			return component.NewUnvaluedInductor(cs.Name, p1, p2), nil
		}
		return component.NewInductor(cs.Name, p1, p2, real(value)), nil
	case "V":
		if imag(value) != 0 {
			return component.NewHarmonicVoltageSource(cs.Name, p1, p2, value), nil
		}
		return component.NewVoltageSource(cs.Name, p1, p2, real(value)), nil
	case "I":
		if imag(value) != 0 {
			return component.NewHarmonicCurrentSource(cs.Name, p1, p2, value), nil
		}
		return component.NewCurrentSource(cs.Name, p1, p2, real(value)), nil
	}
	return nil, fmt.Errorf("component %s: unknown kind %q", cs.Name, cs.Kind)
}

func buildCoil(cs ComponentSpec, p1, p2 int) (component.Component, error) {
	coil := component.NewCoil(cs.Name, p1, p2, cs.Component)
	coil.BodyNames = cs.Bodies
	coil.BodyIDs = cs.BodyIDs
	if cs.Sector != 0 {
		coil.Sector = cs.Sector
	}
	if cs.Dimension == 3 {
		coil.Set3D()
	}

	switch strings.ToLower(cs.Coil) {
	case "", "massive":
		coil.SetMassive()
	case "stranded":
		turns, resistance, _, err := coilParams(cs)
		if err != nil {
			return nil, fmt.Errorf("coil %s: %w", cs.Name, err)
		}
		coil.SetStranded(turns, resistance)
	case "foil":
		turns, _, thickness, err := coilParams(cs)
		if err != nil {
			return nil, fmt.Errorf("coil %s: %w", cs.Name, err)
		}
		coil.SetFoil(turns, thickness)
	default:
		return nil, fmt.Errorf("coil %s: unknown coil type %q", cs.Name, cs.Coil)
	}

	if len(cs.Terminals) > 0 {
		if len(cs.Terminals) != 2 {
			return nil, fmt.Errorf("coil %s: terminals needs a boundary pair, got %d entries",
				cs.Name, len(cs.Terminals))
		}
		coil.SetOpen(cs.Terminals[0], cs.Terminals[1])
	}
	return coil, nil
}

func coilParams(cs ComponentSpec) (turns, resistance, thickness float64, err error) {
	turns = 1
	if cs.Turns != "" {
		if turns, err = ParseValue(cs.Turns); err != nil {
			return 0, 0, 0, fmt.Errorf("turns: %w", err)
		}
	}
	if cs.Resistance != "" {
		if resistance, err = ParseValue(cs.Resistance); err != nil {
			return 0, 0, 0, fmt.Errorf("resistance: %w", err)
		}
	}
	if cs.Thickness != "" {
		if thickness, err = ParseValue(cs.Thickness); err != nil {
			return 0, 0, 0, fmt.Errorf("thickness: %w", err)
		}
	}
	return turns, resistance, thickness, nil
}

func parseSpecValue(cs ComponentSpec) (complex128, bool, error) {
	if cs.Value == "" {
		if cs.Phase != 0 {
			return 0, false, fmt.Errorf("phase given without a value")
		}
		return 0, false, nil
	}
	magnitude, err := ParseValue(cs.Value)
	if err != nil {
		return 0, false, err
	}
	if cs.Phase == 0 {
		return complex(magnitude, 0), true, nil
	}
	return cmplx.Rect(magnitude, cs.Phase*math.Pi/180), true, nil
}

var unitMap = map[string]float64{
	"T":   1e12,  // tera
	"G":   1e9,   // giga
	"meg": 1e6,   // mega
	"K":   1e3,   // kilo
	"k":   1e3,   // kilo
	"m":   1e-3,  // milli
	"u":   1e-6,  // micro
	"n":   1e-9,  // nano
	"p":   1e-12, // pico
	"f":   1e-15, // femto
}

var valueRe = regexp.MustCompile(`^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)(meg|[TGMKkmunpf])?s?$`)

// ParseValue - Parse value and factor. 1k -> 1000
func ParseValue(val string) (float64, error) {
	matches := valueRe.FindStringSubmatch(strings.TrimSpace(val))
	if matches == nil {
		return 0, fmt.Errorf("invalid value format: %s", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}

	if matches[2] != "" {
		if multiplier, ok := unitMap[matches[2]]; ok {
			num *= multiplier
		}
	}
	return num, nil
}
