package matrix

import (
	"errors"
	"testing"
)

func TestNewRejectsBadSize(t *testing.T) {
	for _, size := range []int{0, -1, -10} {
		if _, err := New(size); !errors.Is(err, ErrBadSize) {
			t.Errorf("New(%d) error = %v; want ErrBadSize", size, err)
		}
	}
}

func TestStampAccumulates(t *testing.T) {
	tab, err := New(3)
	if err != nil {
		t.Fatalf("New(3): %v", err)
	}

	if err := tab.StampStatic(1, 2, 2.5, "R1"); err != nil {
		t.Fatalf("StampStatic: %v", err)
	}
	if err := tab.StampStatic(1, 2, -1.0, "-1"); err != nil {
		t.Fatalf("StampStatic: %v", err)
	}
	if got := tab.StaticAt(1, 2); got != 1.5 {
		t.Errorf("StaticAt(1,2) = %g; want 1.5", got)
	}
	if got := tab.StaticSymbol(1, 2); got != "R1-1" {
		t.Errorf("StaticSymbol(1,2) = %q; want %q", got, "R1-1")
	}

	if err := tab.StampDynamic(0, 0, -4.7e-6, "-C1"); err != nil {
		t.Fatalf("StampDynamic: %v", err)
	}
	if got := tab.DynamicAt(0, 0); got != -4.7e-6 {
		t.Errorf("DynamicAt(0,0) = %g; want -4.7e-06", got)
	}

	if err := tab.StampSource(2, complex(1, 1), "I1"); err != nil {
		t.Fatalf("StampSource: %v", err)
	}
	if got := tab.SourceAt(2); got != complex(1, 1) {
		t.Errorf("SourceAt(2) = %v; want (1+1i)", got)
	}
	if got := tab.SourceSymbol(2); got != "I1" {
		t.Errorf("SourceSymbol(2) = %q; want %q", got, "I1")
	}
}

func TestStampOutOfRange(t *testing.T) {
	tab, _ := New(2)

	if err := tab.StampStatic(2, 0, 1, "1"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("StampStatic(2,0) error = %v; want ErrOutOfRange", err)
	}
	if err := tab.StampDynamic(0, -1, 1, "1"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("StampDynamic(0,-1) error = %v; want ErrOutOfRange", err)
	}
	if err := tab.StampSource(5, 1, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("StampSource(5) error = %v; want ErrOutOfRange", err)
	}
	if err := tab.SwapRows(0, 2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SwapRows(0,2) error = %v; want ErrOutOfRange", err)
	}
}

func TestSwapRows(t *testing.T) {
	tab, _ := New(3)
	tab.StampStatic(0, 1, 1, "1")
	tab.StampDynamic(0, 2, -1, "-L1")
	tab.StampSource(0, 2, "V1")

	if err := tab.SwapRows(0, 2); err != nil {
		t.Fatalf("SwapRows: %v", err)
	}

	if got := tab.StaticAt(2, 1); got != 1 {
		t.Errorf("StaticAt(2,1) after swap = %g; want 1", got)
	}
	if got := tab.StaticSymbol(2, 1); got != "1" {
		t.Errorf("StaticSymbol(2,1) after swap = %q; want %q", got, "1")
	}
	if got := tab.DynamicSymbol(2, 2); got != "-L1" {
		t.Errorf("DynamicSymbol(2,2) after swap = %q; want %q", got, "-L1")
	}
	if got := tab.SourceSymbol(2); got != "V1" {
		t.Errorf("SourceSymbol(2) after swap = %q; want %q", got, "V1")
	}
	if tab.StaticAt(0, 1) != 0 || tab.StaticSymbol(0, 1) != "" || tab.SourceSymbol(0) != "" {
		t.Error("row 0 not cleared after swap")
	}
}

func TestZeroRows(t *testing.T) {
	tab, _ := New(4)
	tab.StampStatic(0, 0, 1, "1")
	tab.StampDynamic(2, 3, -1, "-C1")

	got := tab.ZeroRows()
	want := []int{1, 3}
	if len(got) != len(want) {
		t.Fatalf("ZeroRows() = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ZeroRows() = %v; want %v", got, want)
		}
	}
}

func TestZeroRowsSeesSourceOnlyRow(t *testing.T) {
	tab, _ := New(2)
	tab.StampSource(1, 1, "I1")

	got := tab.ZeroRows()
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("ZeroRows() = %v; want [0]", got)
	}
}
