package shock_tube

import (
	"github.com/notargets/shocktube/thermo"
)

// ExpansionFamily marches down the driver gas isentrope from the effective
// driver state, growing the specific volume by a fixed factor each step and
// integrating the unsteady expansion characteristic relation
//
//	du = -dP / (rho a)
//
// with the trapezoidal rule between successive states. The march stops once
// the gas velocity reaches uTarget, so the curve spans at least the
// velocity range of the shock family. A march that exhausts its step
// budget first returns an IterationBudgetError.
func (tb *Tube) ExpansionFamily(ds DriverState, uTarget float64) (fc FamilyCurve, err error) {
	var (
		mode = tb.driverMode()
		s4   = ds.Gas.Entropy
		gas  = ds.Gas
		u    = ds.U
		v    = gas.SpecificVolume()
	)
	fc.Points = append(fc.Points, FlowPoint{
		U: u, P: gas.P, Rho: gas.Rho, T: gas.T, A: gas.SoundSpeed(mode),
	})
	for steps := 0; u < uTarget; steps++ {
		if steps >= tb.Expansion.MaxSteps {
			err = &IterationBudgetError{
				Op:      "driver expansion march",
				Steps:   steps,
				Target:  uTarget,
				Reached: u,
				Last:    fc.Points[len(fc.Points)-1],
			}
			return
		}
		var next thermo.GasState
		v *= tb.Expansion.VolumeGrowth
		if next, err = tb.DriverModel.StateAtEntropyVolume(s4, v,
			tb.Driver.Composition, mode); err != nil {
			return
		}
		u -= 0.5 * (next.P - gas.P) *
			(1./(next.Rho*next.SoundSpeed(mode)) + 1./(gas.Rho*gas.SoundSpeed(mode)))
		gas = next
		fc.Points = append(fc.Points, FlowPoint{
			U: u, P: gas.P, Rho: gas.Rho, T: gas.T, A: gas.SoundSpeed(mode),
		})
	}
	return
}
