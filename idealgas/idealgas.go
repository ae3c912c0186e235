// Package idealgas implements the thermo.Model oracle with closed-form
// calorically perfect gas relations. Reactive mixtures carry an effective
// specific heat release (one-gamma detonation model): frozen evaluation
// ignores it, equilibrium evaluation burns it. Every call is exact, so the
// model is deterministic and safe for concurrent use.
package idealgas

import (
	"fmt"
	"math"

	"github.com/notargets/shocktube/thermo"
)

const RUniversal = 8.31446261815324 // J/(mol K)

// Mixture is a calorically perfect gas: fixed gamma, fixed molar mass, and
// an effective specific heat release liberated on burning. HeatRelease is
// an effective value tuned to the one-gamma model, not a heat of combustion
// from any thermochemical database.
type Mixture struct {
	Gamma       float64
	MolarMass   float64 // kg/mol
	HeatRelease float64 // J/kg, zero for inert mixtures
}

// R returns the specific gas constant.
func (mx Mixture) R() float64 { return RUniversal / mx.MolarMass }

func (mx Mixture) cv() float64 { return mx.R() / (mx.Gamma - 1.) }
func (mx Mixture) cp() float64 { return mx.Gamma * mx.R() / (mx.Gamma - 1.) }

type Model struct {
	Mixtures map[string]Mixture
}

// New returns a model seeded with the mixtures used by the shock tube
// demos. Register adds or replaces entries.
func New() (gm *Model) {
	gm = &Model{Mixtures: make(map[string]Mixture)}
	gm.Register("N2:1.0 O2:3.76", Mixture{Gamma: 1.4, MolarMass: 31.16e-3})
	gm.Register("O2:1.0 N2:3.76", Mixture{Gamma: 1.4, MolarMass: 28.85e-3})
	gm.Register("N2:1.0", Mixture{Gamma: 1.4, MolarMass: 28.013e-3})
	gm.Register("He:1.0", Mixture{Gamma: 5. / 3., MolarMass: 4.0026e-3})
	gm.Register("H2:1.0", Mixture{Gamma: 1.405, MolarMass: 2.016e-3})
	// Effective q chosen to put the constant volume burn near 3400 K
	gm.Register("C2H2:1.0 O2:2.5", Mixture{Gamma: 1.25, MolarMass: 30.3e-3, HeatRelease: 3.4e6})
	return
}

// Register adds or replaces a mixture. It is not safe to call while a
// solve is reading the table; register everything up front.
func (gm *Model) Register(composition string, mix Mixture) {
	gm.Mixtures[composition] = mix
}

func (gm *Model) lookup(op, composition string, params map[string]float64) (mix Mixture, err error) {
	var ok bool
	if mix, ok = gm.Mixtures[composition]; !ok {
		err = &thermo.EOSError{
			Op:          op,
			Composition: composition,
			Params:      params,
			Err:         fmt.Errorf("mixture not registered"),
		}
	}
	return
}

// state assembles the full GasState at (T, P). Frozen and equilibrium
// sound speeds coincide in the one-gamma model.
func (mx Mixture) state(T, P float64, composition string) thermo.GasState {
	var (
		R   = mx.R()
		a   = math.Sqrt(mx.Gamma * R * T)
		rho = P / (R * T)
	)
	return thermo.GasState{
		P:            P,
		T:            T,
		Rho:          rho,
		AFrozen:      a,
		AEquilibrium: a,
		Entropy:      mx.cp()*math.Log(T) - R*math.Log(P),
		Enthalpy:     mx.cp() * T,
		Composition:  composition,
	}
}

func (gm *Model) State(T, P float64, composition string) (st thermo.GasState, err error) {
	params := map[string]float64{"T": T, "P": P}
	mix, err := gm.lookup("state", composition, params)
	if err != nil {
		return
	}
	if T <= 0 || P <= 0 {
		err = &thermo.EOSError{Op: "state", Composition: composition, Params: params,
			Err: fmt.Errorf("temperature and pressure must be positive")}
		return
	}
	st = mix.state(T, P, composition)
	return
}

// EquilibrateUV burns the fill at constant volume: density is held, the
// heat release goes into internal energy.
func (gm *Model) EquilibrateUV(T, P float64, composition string) (st thermo.GasState, err error) {
	params := map[string]float64{"T": T, "P": P}
	mix, err := gm.lookup("equilibrate_uv", composition, params)
	if err != nil {
		return
	}
	if T <= 0 || P <= 0 {
		err = &thermo.EOSError{Op: "equilibrate_uv", Composition: composition, Params: params,
			Err: fmt.Errorf("temperature and pressure must be positive")}
		return
	}
	var (
		Tb = T + mix.HeatRelease/mix.cv()
		Pb = P * Tb / T // rho R Tb with rho = P/(R T)
	)
	st = mix.state(Tb, Pb, composition)
	return
}

// CJSpeed returns the Chapman-Jouguet speed from the one-gamma closed form
//
//	Mcj^2 = 1 + 2H + 2 sqrt(H (1+H)),  H = (gamma^2-1) q / (2 gamma R T)
func (gm *Model) CJSpeed(P, T float64, composition string) (speed float64, err error) {
	params := map[string]float64{"P": P, "T": T}
	mix, err := gm.lookup("cj_speed", composition, params)
	if err != nil {
		return
	}
	if mix.HeatRelease <= 0 {
		err = &thermo.EOSError{Op: "cj_speed", Composition: composition, Params: params,
			Err: fmt.Errorf("inert mixture has no self-sustaining detonation speed")}
		return
	}
	var (
		g  = mix.Gamma
		a1 = math.Sqrt(g * mix.R() * T)
		H  = (g*g - 1.) * mix.HeatRelease / (2. * g * mix.R() * T)
		M2 = 1. + 2.*H + 2.*math.Sqrt(H*(1.+H))
	)
	speed = a1 * math.Sqrt(M2)
	return
}

// PostShock solves the wave-frame jump for a shock of the given speed into
// quiescent gas at (P, T). With x = v2/v1, mass, momentum and energy
// conservation collapse to
//
//	x^2 - 2b x + c = 0
//	b = (1 + g M^2) / ((g+1) M^2)
//	c = (2 + (g-1) M^2 + 2 (g-1) Qh) / ((g+1) M^2),  Qh = q/a1^2
//
// For q = 0 the discriminant is (M^2-1)^2/((g+1)M^2)^2 and the smaller root
// is exactly the normal shock volume ratio; for q > 0 the same root is the
// strong detonation branch, and a negative discriminant means the wave is
// below the CJ speed.
func (gm *Model) PostShock(m thermo.Mode, speed, P, T float64, composition string) (st thermo.GasState, err error) {
	params := map[string]float64{"speed": speed, "P": P, "T": T}
	mix, err := gm.lookup("post_shock", composition, params)
	if err != nil {
		return
	}
	if T <= 0 || P <= 0 {
		err = &thermo.EOSError{Op: "post_shock", Composition: composition, Params: params,
			Err: fmt.Errorf("temperature and pressure must be positive")}
		return
	}
	var (
		g    = mix.Gamma
		R    = mix.R()
		a1   = math.Sqrt(g * R * T)
		M2   = speed * speed / (a1 * a1)
		rho1 = P / (R * T)
		q    float64
	)
	if m == thermo.Equilibrium {
		q = mix.HeatRelease
	}
	if M2 <= 1. {
		err = &thermo.EOSError{Op: "post_shock", Composition: composition, Params: params,
			Err: fmt.Errorf("wave speed %.4g m/s is subsonic (a1 = %.4g m/s)", speed, a1)}
		return
	}
	var (
		Qh   = q / (a1 * a1)
		b    = (1. + g*M2) / ((g + 1.) * M2)
		c    = (2. + (g-1.)*M2 + 2.*(g-1.)*Qh) / ((g + 1.) * M2)
		disc = b*b - c
	)
	if disc < 0 && disc > -1.e-10*c {
		// At exactly the CJ speed the discriminant is analytically zero;
		// don't let rounding turn the tangent case into a failure.
		disc = 0
	}
	if disc < 0 {
		err = &thermo.EOSError{Op: "post_shock", Composition: composition, Params: params,
			Err: fmt.Errorf("no steady solution: wave speed below the CJ speed for this mixture")}
		return
	}
	var (
		x  = b - math.Sqrt(disc)
		P2 = P + rho1*speed*speed*(1.-x)
		T2 = P2 * x / (rho1 * R)
	)
	st = mix.state(T2, P2, composition)
	return
}

// StateAtEntropyVolume inverts s = cv ln T + R ln v - R ln R for T, the
// isentrope parameterized by specific volume.
func (gm *Model) StateAtEntropyVolume(s, v float64, composition string, m thermo.Mode) (st thermo.GasState, err error) {
	params := map[string]float64{"s": s, "v": v}
	mix, err := gm.lookup("state_at_entropy_volume", composition, params)
	if err != nil {
		return
	}
	if v <= 0 {
		err = &thermo.EOSError{Op: "state_at_entropy_volume", Composition: composition, Params: params,
			Err: fmt.Errorf("specific volume must be positive")}
		return
	}
	var (
		R = mix.R()
		T = math.Exp((s + R*math.Log(R) - R*math.Log(v)) / mix.cv())
		P = R * T / v
	)
	st = mix.state(T, P, composition)
	return
}
