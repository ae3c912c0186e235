package shock_tube

import (
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/shocktube/thermo"
	"github.com/notargets/shocktube/utils"
)

// ShockFamily sweeps incident shock speeds from UStartFactor*a1 to
// UStopFactor*a1 and records the post-shock state behind each, giving the
// locus of driven gas states reachable through a single shock. Mass
// conservation across the shock sets the lab frame gas velocity,
//
//	u2 = U - rho1 U / rho2
//
// The sound speed stored on the curve is the frozen one for both driven
// modes.
func (tb *Tube) ShockFamily() (fc FamilyCurve, err error) {
	var (
		state1 thermo.GasState
		post   thermo.GasState
	)
	if state1, err = tb.DrivenModel.State(tb.Driven.T, tb.Driven.P, tb.Driven.Composition); err != nil {
		return
	}
	var (
		a1     = state1.SoundSpeed(thermo.Frozen)
		speeds = floats.Span(make([]float64, tb.Sweep.Points),
			tb.Sweep.UStartFactor*a1, tb.Sweep.UStopFactor*a1)
	)
	fc.Points = make([]FlowPoint, 0, len(speeds))
	for _, speed := range speeds {
		post, err = tb.DrivenModel.PostShock(tb.Driven.Mode, speed, tb.Driven.P,
			tb.Driven.T, tb.Driven.Composition)
		if err != nil {
			return
		}
		fc.Points = append(fc.Points, FlowPoint{
			U:   speed - state1.Rho*speed/post.Rho,
			P:   post.P,
			Rho: post.Rho,
			T:   post.T,
			A:   post.SoundSpeed(thermo.Frozen),
			Ws:  speed,
		})
	}
	return
}

// RayleighPressure is the momentum jump condition solved for the
// downstream pressure: the pressure behind a wave of speed ws carrying the
// upstream state to density rho2. Independent of the energy equation, so
// it cross-checks any matched post-shock state.
func RayleighPressure(upstream thermo.GasState, ws, rho2 float64) float64 {
	return upstream.P - utils.POW(upstream.Rho*ws, 2)*(1./rho2-1./upstream.Rho)
}
