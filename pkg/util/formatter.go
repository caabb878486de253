package util

import (
	"fmt"
	"math"
	"strconv"
)

// FormatReal renders a float with the shortest exact representation so
// repeated serialization is byte-stable.
func FormatReal(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Phase returns the argument of a phasor value in radians.
func Phase(value complex128) float64 {
	return math.Atan2(imag(value), real(value))
}

// FormatPhasor renders a solved unknown as magnitude and phase for the
// validation solve report.
func FormatPhasor(name string, value complex128) string {
	mag := math.Hypot(real(value), imag(value))

	var magStr string
	if mag >= 1000 || (mag < 0.001 && mag != 0) {
		magStr = fmt.Sprintf("%8.2e", mag)
	} else {
		magStr = fmt.Sprintf("%8.3g", mag)
	}
	phaseStr := fmt.Sprintf("%6.1f", Degrees(Phase(value)))
	return fmt.Sprintf("%s=%s<%sdeg", name, magStr, phaseStr)
}

// FormatValueFactor renders a value with an engineering prefix.
func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case absValue >= 1:
		return fmt.Sprintf("%.3f %s", value, unit)
	case absValue >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	case absValue >= 1e-6:
		return fmt.Sprintf("%.3f u%s", value*1e6, unit)
	case absValue >= 1e-9:
		return fmt.Sprintf("%.3f n%s", value*1e9, unit)
	case absValue >= 1e-12:
		return fmt.Sprintf("%.3f p%s", value*1e12, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}
