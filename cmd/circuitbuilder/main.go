package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/cmplx"
	"sort"

	"github.com/XeuTap/elmer-circuitbuilder/pkg/analysis"
	"github.com/XeuTap/elmer-circuitbuilder/pkg/circuit"
	"github.com/XeuTap/elmer-circuitbuilder/pkg/netlist"
	"github.com/XeuTap/elmer-circuitbuilder/pkg/sif"
	"github.com/XeuTap/elmer-circuitbuilder/pkg/util"
)

func main() {
	input := flag.String("i", "", "circuit declaration file (YAML)")
	output := flag.String("o", "circuit.definitions", "output definition file")
	dated := flag.Bool("date", true, "stamp the generation date into the header")
	solve := flag.Bool("solve", false, "solve the circuits numerically instead of writing definitions")
	freq := flag.Float64("freq", 0, "harmonic frequency in Hz for -solve (default from the declaration file)")
	fstop := flag.Float64("fstop", 0, "sweep stop frequency in Hz; 0 solves a single point")
	points := flag.Int("points", 10, "number of sweep frequency points")
	spacing := flag.String("spacing", analysis.Decade, "sweep point spacing: DEC, OCT or LIN")
	flag.Parse()

	if *input == "" {
		log.Fatal("Usage: circuitbuilder -i <circuits.yaml> [-o <file>] [-solve] [-freq <Hz>]")
	}

	// 1. Load the circuit declarations
	circuits, declFreq, err := netlist.LoadFile(*input)
	if err != nil {
		log.Fatalf("Error reading circuits: %v", err)
	}

	// 2a. Numeric check of the assembled systems
	if *solve {
		f := *freq
		if f == 0 {
			f = declFreq
		}
		if err := solveCircuits(circuits, f, *fstop, *points, *spacing); err != nil {
			log.Fatalf("Error solving circuits: %v", err)
		}
		return
	}

	// 2b. Write the definition file in one pass
	w := sif.NewWriter()
	w.Timestamp = *dated
	if err := w.WriteFile(*output, circuits); err != nil {
		log.Fatalf("Error writing definitions: %v", err)
	}
	fmt.Printf("Wrote %d circuit(s) to %s\n", len(circuits), *output)
}

func solveCircuits(circuits map[int]*circuit.Circuit, freq, fstop float64, points int, spacing string) error {
	indices := make([]int, 0, len(circuits))
	for i := range circuits {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	for _, i := range indices {
		c := circuits[i]
		if len(c.Coils()) > 0 {
			// Coil equation rows are completed by the field solver,
			// so the stand-alone system is singular.
			fmt.Printf("\nCircuit %d: has FEM-coupled coils, skipping numeric solve\n", i)
			continue
		}

		sweep := analysis.NewHarmonic(freq)
		if fstop > 0 {
			sweep = analysis.NewHarmonicSweep(freq, fstop, points, spacing)
		}
		if err := sweep.Setup(c); err != nil {
			return fmt.Errorf("circuit %d: %w", i, err)
		}
		if err := sweep.Execute(); err != nil {
			return fmt.Errorf("circuit %d: %w", i, err)
		}
		printSweep(i, sweep)
	}
	return nil
}

func printSweep(index int, sweep *analysis.HarmonicSweep) {
	results := sweep.GetResults()
	names := sweep.UnknownNames()

	fmt.Printf("\nCircuit %d unknowns (magnitude<phase):\n", index)
	for row, freq := range results["FREQ"] {
		fmt.Printf("f=%s Hz\n", util.FormatReal(freq))
		for _, name := range names {
			mag := results[name+"_MAG"][row]
			phase := results[name+"_PHASE"][row]
			value := cmplx.Rect(mag, phase*math.Pi/180)
			fmt.Printf("  %s\n", util.FormatPhasor(name, value))
		}
	}
}
