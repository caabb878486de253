package matrix

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestSolveRealSystem(t *testing.T) {
	// 2x + y = 3, x + 3y = 5 -> x = 0.8, y = 1.4
	tab, _ := New(2)
	tab.StampStatic(0, 0, 2, "2")
	tab.StampStatic(0, 1, 1, "1")
	tab.StampStatic(1, 0, 1, "1")
	tab.StampStatic(1, 1, 3, "3")
	tab.StampSource(0, 3, "b0")
	tab.StampSource(1, 5, "b1")

	s, err := NewSolver(2)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	if err := s.Load(tab, 0); err != nil {
		t.Fatalf("Load: %v", err)
	}
	x, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	want := []complex128{complex(0.8, 0), complex(1.4, 0)}
	for i := range want {
		if cmplx.Abs(x[i]-want[i]) > 1e-9 {
			t.Errorf("x[%d] = %v; want %v", i, x[i], want[i])
		}
	}
}

func TestSolveComplexSystem(t *testing.T) {
	// (1 + j)x = 1 at w = 1 rad/s -> x = 0.5 - 0.5j
	tab, _ := New(1)
	tab.StampStatic(0, 0, 1, "1")
	tab.StampDynamic(0, 0, 1, "1")
	tab.StampSource(0, 1, "b0")

	s, err := NewSolver(1)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	freq := 1 / (2 * math.Pi) // omega = 1
	if err := s.Load(tab, freq); err != nil {
		t.Fatalf("Load: %v", err)
	}
	x, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	want := complex(0.5, -0.5)
	if cmplx.Abs(x[0]-want) > 1e-9 {
		t.Errorf("x[0] = %v; want %v", x[0], want)
	}
}

func TestLoadRejectsSizeMismatch(t *testing.T) {
	tab, _ := New(3)
	s, err := NewSolver(2)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	if err := s.Load(tab, 0); err == nil {
		t.Error("Load with mismatched size succeeded; want error")
	}
}

func TestSolverClearAllowsReload(t *testing.T) {
	tab, _ := New(1)
	tab.StampStatic(0, 0, 2, "2")
	tab.StampSource(0, 4, "b0")

	s, err := NewSolver(1)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	if err := s.Load(tab, 0); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := s.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	s.Clear()
	if err := s.Load(tab, 0); err != nil {
		t.Fatalf("Load after Clear: %v", err)
	}
	x, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve after Clear: %v", err)
	}
	if cmplx.Abs(x[0]-2) > 1e-9 {
		t.Errorf("x[0] = %v; want 2", x[0])
	}
}
