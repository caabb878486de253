package sif

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParsedCircuit holds the symbolic matrix content recovered from a
// rendered definition: enough to check a file against the model that
// produced it, or to inspect a definition written by another tool.
type ParsedCircuit struct {
	Variables int
	B         [][]string     // zero-based symbolic cells, "" means zero
	A         [][]string     // zero-based symbolic cells, "" means zero
	Names     []string       // unknown names in dof order, quotes kept
	Sources   map[int]string // one-based row index to source name
}

var (
	variablesRe = regexp.MustCompile(`^\$ C\.(\d+)\.variables = (\d+)$`)
	cellRe      = regexp.MustCompile(`^\$ C\.(\d+)\.([AB])\((\d+),(\d+)\) = (.+)$`)
	nameRe      = regexp.MustCompile(`^\$ C\.(\d+)\.name\.(\d+) = (.+)$`)
	sourceRe    = regexp.MustCompile(`^\$ C\.(\d+)\.source\.(\d+) = "(.+)"$`)
)

// Parse recovers the per-circuit matrix declarations from definition
// text. Lines that are not matrix, name or source assignments are
// ignored.
func Parse(text string) (map[int]*ParsedCircuit, error) {
	circuits := make(map[int]*ParsedCircuit)

	get := func(index int) (*ParsedCircuit, error) {
		pc, ok := circuits[index]
		if !ok {
			return nil, fmt.Errorf("sif: circuit %d used before its variables declaration", index)
		}
		return pc, nil
	}

	sc := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if m := variablesRe.FindStringSubmatch(line); m != nil {
			index, _ := strconv.Atoi(m[1])
			size, _ := strconv.Atoi(m[2])
			pc := &ParsedCircuit{
				Variables: size,
				B:         make([][]string, size),
				A:         make([][]string, size),
				Sources:   make(map[int]string),
			}
			for i := range pc.B {
				pc.B[i] = make([]string, size)
				pc.A[i] = make([]string, size)
			}
			circuits[index] = pc
			continue
		}

		if m := cellRe.FindStringSubmatch(line); m != nil {
			index, _ := strconv.Atoi(m[1])
			pc, err := get(index)
			if err != nil {
				return nil, err
			}
			row, _ := strconv.Atoi(m[3])
			col, _ := strconv.Atoi(m[4])
			if row >= pc.Variables || col >= pc.Variables {
				return nil, fmt.Errorf("sif: line %d: cell (%d,%d) outside %d unknowns",
					lineNo, row, col, pc.Variables)
			}
			if m[2] == "B" {
				pc.B[row][col] = m[5]
			} else {
				pc.A[row][col] = m[5]
			}
			continue
		}

		if m := nameRe.FindStringSubmatch(line); m != nil {
			index, _ := strconv.Atoi(m[1])
			pc, err := get(index)
			if err != nil {
				return nil, err
			}
			k, _ := strconv.Atoi(m[2])
			if k != len(pc.Names)+1 {
				return nil, fmt.Errorf("sif: line %d: name index %d out of order", lineNo, k)
			}
			pc.Names = append(pc.Names, m[3])
			continue
		}

		if m := sourceRe.FindStringSubmatch(line); m != nil {
			index, _ := strconv.Atoi(m[1])
			pc, err := get(index)
			if err != nil {
				return nil, err
			}
			k, _ := strconv.Atoi(m[2])
			pc.Sources[k] = m[3]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("sif: scanning definition: %w", err)
	}
	if len(circuits) == 0 {
		return nil, ErrNoCircuits
	}
	return circuits, nil
}
