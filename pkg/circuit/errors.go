package circuit

import "errors"

// Declaration errors. All are surfaced before any output is written;
// callers match with errors.Is.
var (
	ErrNoComponents  = errors.New("circuit: no components declared")
	ErrUnknownNode   = errors.New("circuit: reference to undeclared node")
	ErrBadPins       = errors.New("circuit: component pins must be two distinct positive nodes")
	ErrDuplicateName = errors.New("circuit: duplicate component name")
	ErrBadValue      = errors.New("circuit: component value is not finite")
	ErrBadCoil       = errors.New("circuit: invalid coil declaration")
	ErrNoCoil        = errors.New("circuit: no FEM coil component declared")
)
