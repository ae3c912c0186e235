package thermo

import "math"

// Mode selects between frozen-composition and shifting-equilibrium
// evaluation of thermodynamic states.
type Mode uint8

const (
	Frozen Mode = iota
	Equilibrium
)

var ModeNameMap = map[string]Mode{
	"frozen":      Frozen,
	"fr":          Frozen,
	"equilibrium": Equilibrium,
	"eq":          Equilibrium,
}

var modeNames = []string{"frozen", "equilibrium"}

func (m Mode) String() string {
	if int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// GasState is an immutable snapshot of a gas state as evaluated by a Model.
// Both sound speeds are computed at creation so that downstream code never
// needs to call back into the model for them.
type GasState struct {
	P            float64 // Pa
	T            float64 // K
	Rho          float64 // kg/m3
	AFrozen      float64 // frozen sound speed, m/s
	AEquilibrium float64 // equilibrium sound speed, m/s
	Entropy      float64 // specific entropy, J/(kg K)
	Enthalpy     float64 // specific enthalpy, J/kg
	Composition  string
}

// SoundSpeed selects the stored sound speed for the given mode.
func (g GasState) SoundSpeed(m Mode) float64 {
	if m == Equilibrium {
		return g.AEquilibrium
	}
	return g.AFrozen
}

func (g GasState) SpecificVolume() float64 {
	if g.Rho == 0 {
		return math.Inf(1)
	}
	return 1. / g.Rho
}

// Model is the gas state oracle: an equation-of-state / equilibrium engine
// able to evaluate the states the shock tube pipeline needs. All calls are
// synchronous and may fail with *EOSError on non-convergence.
//
// Implementations need not be safe for concurrent use. The matching
// pipeline evaluates the two wave families from parallel goroutines, but
// it gives each side its own Model handle; an engine that mutates a shared
// solution object between calls works unmodified.
type Model interface {
	// State evaluates the gas at the given temperature, pressure and
	// composition.
	State(T, P float64, composition string) (GasState, error)
	// EquilibrateUV returns the adiabatic constant-volume combustion state
	// of the mixture filled at (T, P).
	EquilibrateUV(T, P float64, composition string) (GasState, error)
	// CJSpeed returns the Chapman-Jouguet detonation speed for the mixture
	// filled at (P, T).
	CJSpeed(P, T float64, composition string) (float64, error)
	// PostShock returns the state behind a shock travelling at speed into
	// quiescent gas at (P, T), evaluated frozen or in equilibrium.
	PostShock(m Mode, speed, P, T float64, composition string) (GasState, error)
	// StateAtEntropyVolume returns the state at fixed specific entropy s
	// and specific volume v, equilibrating the composition when m is
	// Equilibrium.
	StateAtEntropyVolume(s, v float64, composition string, m Mode) (GasState, error)
}
