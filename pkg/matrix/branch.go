package matrix

// BranchMatrix is the stamping surface handed to circuit components.
// Indices are zero-based tableau coordinates.
type BranchMatrix interface {
	StampStatic(i, j int, value float64, symbol string) error
	StampDynamic(i, j int, value float64, symbol string) error
	StampSource(i int, value complex128, symbol string) error
}

var _ BranchMatrix = (*Tableau)(nil)
