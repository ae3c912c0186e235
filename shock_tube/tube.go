// Package shock_tube solves the ideal shock tube matching problem: given a
// driven section at state (1) and a driver section at state (4), it builds
// the locus of post-shock states reachable in the driven gas and the locus
// of unsteady expansion states reachable in the driver gas, then intersects
// the two in the P-u plane to find the shock speed and the states (2) and
// (3) on either side of the contact surface.
//
// Three driver operations are supported: a pressurized nonreactive gas, a
// constant volume combustion driver, and a detonation driver with the CJ
// wave running away from the diaphragm. All gas properties come from a
// thermo.Model, so the same pipeline serves perfect gases and full
// equilibrium chemistry engines.
package shock_tube

import (
	"fmt"
	"sync"

	"github.com/notargets/shocktube/thermo"
	"github.com/notargets/shocktube/utils"
)

type DriverType uint8

const (
	DRIVER_GAS DriverType = iota // pressurized nonreactive driver
	DRIVER_UV                    // constant volume combustion driver
	DRIVER_CJ                    // detonation driver, initiation at the diaphragm
)

var DriverNameMap = map[string]DriverType{
	"gas": DRIVER_GAS,
	"uv":  DRIVER_UV,
	"cj":  DRIVER_CJ,
}

var driverNames = []string{"gas", "uv", "cj"}

func (dt DriverType) String() string {
	if int(dt) >= len(driverNames) {
		return "unknown"
	}
	return driverNames[dt]
}

// NewDriverType maps a label from an input deck to a DriverType.
func NewDriverType(label string) (dt DriverType, err error) {
	var ok bool
	if dt, ok = DriverNameMap[label]; !ok {
		err = &InputValidationError{
			Field:  "Driver.Type",
			Reason: fmt.Sprintf("unknown driver operation %q, want gas, uv or cj", label),
		}
	}
	return
}

// DrivenSection is the low pressure test gas ahead of the incident shock.
// Mechanism names a reaction mechanism for gas model backends that read
// one; the perfect gas backend ignores it.
type DrivenSection struct {
	P, T        float64 // fill pressure (Pa) and temperature (K)
	Composition string
	Mechanism   string
	Mode        thermo.Mode // frozen or equilibrium post-shock chemistry
}

// DriverSection is the high pressure side of the diaphragm. For the uv and
// cj operations P and T are the fill state before combustion.
type DriverSection struct {
	Type        DriverType
	P, T        float64
	Composition string
	Mechanism   string
}

// SweepParameters controls the incident shock speed sweep, expressed as
// multiples of the driven gas sound speed.
type SweepParameters struct {
	UStartFactor float64
	UStopFactor  float64
	Points       int
}

// ExpansionParameters controls the unsteady expansion march down the
// driver gas isentrope. TargetMargin is the multiple of the shock family's
// top velocity the march must reach before stopping; keeping it above 1
// holds the two curves apart at the top of the search bracket, so a sweep
// that stops short of the match reports no intersection instead of a
// near-coincidence at the bracket edge.
type ExpansionParameters struct {
	VolumeGrowth float64 // specific volume multiplier per step, > 1
	MaxSteps     int
	TargetMargin float64 // >= 1
}

// MatchParameters controls the curve intersection.
type MatchParameters struct {
	VelocityTolerance float64 // largest acceptable |u2-u3| at the match, m/s
	EdgeTolerance     float64 // edge pinning band as a fraction of the bracket width
	BracketFloor      float64 // lower bound of the P/P1 search bracket
}

// Tube is an immutable problem definition. Configure it once, then call
// Solve as many times as needed; Solve never mutates the Tube.
//
// The two model handles may point at the same object when the backend is
// stateless, but the shock sweep only ever calls DrivenModel and the driver
// build and expansion march only ever call DriverModel, so a stateful
// engine per side is safe even though the two sweeps run concurrently.
type Tube struct {
	Driven      DrivenSection
	Driver      DriverSection
	Sweep       SweepParameters
	Expansion   ExpansionParameters
	Match       MatchParameters
	DrivenModel thermo.Model
	DriverModel thermo.Model
}

// NewTube validates the section states and fills in the default sweep,
// expansion and matching parameters. Override individual fields on the
// returned Tube before calling Solve to change the heuristics.
func NewTube(drivenModel, driverModel thermo.Model, driven DrivenSection, driver DriverSection) (tb *Tube, err error) {
	tb = &Tube{
		Driven:      driven,
		Driver:      driver,
		DrivenModel: drivenModel,
		DriverModel: driverModel,
		Sweep: SweepParameters{
			UStartFactor: 1.01,
			UStopFactor:  8.,
			Points:       100,
		},
		Expansion: ExpansionParameters{
			VolumeGrowth: 1.01,
			MaxSteps:     10000,
			TargetMargin: 1.05,
		},
		Match: MatchParameters{
			VelocityTolerance: 0.5,
			EdgeTolerance:     1.e-3,
			BracketFloor:      1.01,
		},
	}
	if err = tb.Validate(); err != nil {
		tb = nil
	}
	return
}

// Validate re-checks the problem definition. Callers that override fields
// after NewTube can call it directly; Solve always does.
func (tb *Tube) Validate() error {
	switch {
	case tb.DrivenModel == nil:
		return &InputValidationError{Field: "DrivenModel", Reason: "no gas model supplied"}
	case tb.DriverModel == nil:
		return &InputValidationError{Field: "DriverModel", Reason: "no gas model supplied"}
	case tb.Driven.P <= 0:
		return &InputValidationError{Field: "Driven.P",
			Reason: fmt.Sprintf("fill pressure must be positive, got %g", tb.Driven.P)}
	case tb.Driven.T <= 0:
		return &InputValidationError{Field: "Driven.T",
			Reason: fmt.Sprintf("fill temperature must be positive, got %g", tb.Driven.T)}
	case len(tb.Driven.Composition) == 0:
		return &InputValidationError{Field: "Driven.Composition", Reason: "empty"}
	case tb.Driven.Mode != thermo.Frozen && tb.Driven.Mode != thermo.Equilibrium:
		return &InputValidationError{Field: "Driven.Mode",
			Reason: fmt.Sprintf("unknown mode %d", tb.Driven.Mode)}
	case int(tb.Driver.Type) >= len(driverNames):
		return &InputValidationError{Field: "Driver.Type",
			Reason: fmt.Sprintf("unknown driver operation %d", tb.Driver.Type)}
	case tb.Driver.P <= 0:
		return &InputValidationError{Field: "Driver.P",
			Reason: fmt.Sprintf("fill pressure must be positive, got %g", tb.Driver.P)}
	case tb.Driver.T <= 0:
		return &InputValidationError{Field: "Driver.T",
			Reason: fmt.Sprintf("fill temperature must be positive, got %g", tb.Driver.T)}
	case len(tb.Driver.Composition) == 0:
		return &InputValidationError{Field: "Driver.Composition", Reason: "empty"}
	case tb.Driver.Type == DRIVER_GAS && tb.Driver.P < tb.Driven.P*(1.-utils.NODETOL):
		// A nonreactive driver works at its fill pressure, so the inversion
		// is detectable before any gas model call. Combustion drivers raise
		// their fill pressure and are checked after the burn.
		return &InputValidationError{Field: "Driver.P",
			Reason: fmt.Sprintf("driver fill pressure %g Pa below driven pressure %g Pa",
				tb.Driver.P, tb.Driven.P)}
	case tb.Sweep.UStartFactor <= 1:
		return &InputValidationError{Field: "Sweep.UStartFactor",
			Reason: "sweep must start above the driven sound speed"}
	case tb.Sweep.UStopFactor <= tb.Sweep.UStartFactor:
		return &InputValidationError{Field: "Sweep.UStopFactor",
			Reason: "sweep must end above its start"}
	case tb.Sweep.Points < 2:
		return &InputValidationError{Field: "Sweep.Points",
			Reason: fmt.Sprintf("need at least 2 sweep points, got %d", tb.Sweep.Points)}
	case tb.Expansion.VolumeGrowth <= 1:
		return &InputValidationError{Field: "Expansion.VolumeGrowth",
			Reason: "volume growth factor must exceed 1"}
	case tb.Expansion.MaxSteps < 1:
		return &InputValidationError{Field: "Expansion.MaxSteps",
			Reason: fmt.Sprintf("need a positive step budget, got %d", tb.Expansion.MaxSteps)}
	case tb.Expansion.TargetMargin < 1:
		return &InputValidationError{Field: "Expansion.TargetMargin",
			Reason: "target margin must be at least 1"}
	case tb.Match.VelocityTolerance <= 0:
		return &InputValidationError{Field: "Match.VelocityTolerance",
			Reason: "velocity tolerance must be positive"}
	case tb.Match.EdgeTolerance <= 0 || tb.Match.EdgeTolerance >= 0.5:
		return &InputValidationError{Field: "Match.EdgeTolerance",
			Reason: "edge tolerance must lie in (0, 0.5)"}
	case tb.Match.BracketFloor < 1:
		return &InputValidationError{Field: "Match.BracketFloor",
			Reason: "bracket floor must be at least 1"}
	}
	return nil
}

// Solve runs the full pipeline: driver state, the two family curves built
// in parallel, the P-u intersection, and the report quantities.
func (tb *Tube) Solve() (sol *Solution, err error) {
	if err = tb.Validate(); err != nil {
		return
	}
	var (
		state1 thermo.GasState
		ds     DriverState
	)
	if state1, err = tb.DrivenModel.State(tb.Driven.T, tb.Driven.P, tb.Driven.Composition); err != nil {
		return
	}
	if ds, err = tb.DriverState(); err != nil {
		return
	}
	// The effective driver pressure must exceed the driven fill pressure
	// for a shock to form. Equal pressures with the driver gas at rest are
	// the degenerate no-wave setup, which has the closed-form acoustic
	// solution.
	if ds.Gas.P < state1.P*(1.-utils.NODETOL) {
		return nil, &InputValidationError{Field: "Driver.P",
			Reason: fmt.Sprintf("effective driver pressure %g Pa below driven pressure %g Pa",
				ds.Gas.P, state1.P)}
	}
	if ds.Gas.P <= state1.P*(1.+utils.NODETOL) && ds.U == 0 {
		return tb.trivialSolution(state1, ds), nil
	}
	var uTarget float64
	if uTarget, err = tb.sweepTargetVelocity(state1); err != nil {
		return
	}
	var (
		wg               = sync.WaitGroup{}
		shock, expansion FamilyCurve
		errShock, errExp error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		shock, errShock = tb.ShockFamily()
	}()
	go func() {
		defer wg.Done()
		expansion, errExp = tb.ExpansionFamily(ds, uTarget)
	}()
	wg.Wait()
	if errShock != nil {
		return nil, errShock
	}
	if errExp != nil {
		return nil, errExp
	}
	var mr MatchResult
	if mr, err = tb.matchCurves(&shock, &expansion, state1); err != nil {
		return
	}
	sol = buildSolution(tb, mr, state1, ds, shock, expansion)
	return
}

// sweepTargetVelocity returns the post-shock gas velocity at the top of
// the sweep, widened by the expansion target margin. The expansion march
// continues until it reaches this velocity, which guarantees the two
// curves overlap in u with clearance at the top of the search bracket.
func (tb *Tube) sweepTargetVelocity(state1 thermo.GasState) (uTarget float64, err error) {
	var (
		uStop = tb.Sweep.UStopFactor * state1.SoundSpeed(thermo.Frozen)
		post  thermo.GasState
	)
	post, err = tb.DrivenModel.PostShock(tb.Driven.Mode, uStop, tb.Driven.P, tb.Driven.T,
		tb.Driven.Composition)
	if err != nil {
		return
	}
	uTarget = tb.Expansion.TargetMargin * (uStop - state1.Rho*uStop/post.Rho)
	return
}

// trivialSolution handles the no-wave setup where the driver and driven
// pressures already balance: the contact surface is at rest and the only
// disturbance is an acoustic wave at the driven sound speed.
func (tb *Tube) trivialSolution(state1 thermo.GasState, ds DriverState) (sol *Solution) {
	var (
		a1 = state1.SoundSpeed(thermo.Frozen)
		a4 = ds.Gas.SoundSpeed(tb.driverMode())
	)
	sol = &Solution{
		Match: MatchResult{
			PRatio:     1.,
			ShockSpeed: a1,
			ShockMach:  1.,
			Driven: ContactState{
				P: state1.P, Rho: state1.Rho, T: state1.T, A: a1,
			},
			Driver: ContactState{
				P: ds.Gas.P, Rho: ds.Gas.Rho, T: ds.Gas.T, A: a4,
			},
		},
		Z:       state1.Rho * a1 / (ds.Gas.Rho * a4),
		Driven1: state1,
		Driver4: ds,
		tube:    tb,
	}
	return
}
