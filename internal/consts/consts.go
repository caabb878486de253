package consts

const (
	ElectrodeArea    = 0.0025 // Placeholder electrode area for 3D coils (m^2)
	DefaultFrequency = 50.0   // Excitation frequency for the validation solve (Hz)
	DefaultRefNode   = 1      // Ground/reference node when none is declared
)
