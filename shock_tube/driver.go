package shock_tube

import (
	"github.com/notargets/shocktube/thermo"
)

// DriverState is the effective state (4) the unsteady expansion starts
// from, after any combustion implied by the driver operation.
type DriverState struct {
	Gas     thermo.GasState
	U       float64 // initial driver gas velocity, m/s; zero unless detonation driven
	CJSpeed float64 // detonation speed, m/s; zero unless detonation driven
}

// driverMode selects the sound speed used along the driver expansion.
// Combustion products shift composition as they expand, so the uv and cj
// operations use the equilibrium speed; a nonreactive driver stays frozen.
func (tb *Tube) driverMode() thermo.Mode {
	if tb.Driver.Type == DRIVER_GAS {
		return thermo.Frozen
	}
	return thermo.Equilibrium
}

// DriverState evaluates the driver operation.
//
// gas: the fill state is used as is, at rest.
//
// uv: the fill gas burns at constant volume, approximating an ideal
// combustion driver; the burned gas is at rest.
//
// cj: a CJ detonation initiated at the diaphragm runs away from it; the
// expansion starts from the CJ burned state, whose lab frame velocity
// w3 - Dcj trails the wave and is never positive.
func (tb *Tube) DriverState() (ds DriverState, err error) {
	var (
		d = tb.Driver
	)
	switch d.Type {
	case DRIVER_GAS:
		ds.Gas, err = tb.DriverModel.State(d.T, d.P, d.Composition)
	case DRIVER_UV:
		ds.Gas, err = tb.DriverModel.EquilibrateUV(d.T, d.P, d.Composition)
	case DRIVER_CJ:
		var fill thermo.GasState
		if fill, err = tb.DriverModel.State(d.T, d.P, d.Composition); err != nil {
			return
		}
		if ds.CJSpeed, err = tb.DriverModel.CJSpeed(d.P, d.T, d.Composition); err != nil {
			return
		}
		if ds.Gas, err = tb.DriverModel.PostShock(thermo.Equilibrium, ds.CJSpeed,
			d.P, d.T, d.Composition); err != nil {
			return
		}
		w3 := ds.CJSpeed * fill.Rho / ds.Gas.Rho
		ds.U = w3 - ds.CJSpeed
	}
	return
}
