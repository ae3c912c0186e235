package shock_tube

import (
	"fmt"

	"github.com/notargets/shocktube/thermo"
)

// ContactState is an interpolated flow state at the matched contact
// surface pressure, one per side.
type ContactState struct {
	U    float64 // m/s
	P    float64 // Pa
	Rho  float64 // kg/m3
	T    float64 // K
	A    float64 // m/s
	Mach float64
}

// MatchResult is the intersection of the two family curves.
type MatchResult struct {
	PRatio     float64      // contact pressure over driven fill pressure
	ShockSpeed float64      // incident shock speed, m/s
	ShockMach  float64      // shock speed over the driven fill sound speed
	Residual   float64      // |u2 - u3| at the match, m/s
	Driven     ContactState // state (2), behind the incident shock
	Driver     ContactState // state (3), behind the expansion
}

// Solution packages the match together with the initial states and the
// sorted family curves it was interpolated from.
type Solution struct {
	Match           MatchResult
	Z               float64 // impedance ratio (rho a)2 / (rho a)3
	Driven1         thermo.GasState
	Driver4         DriverState
	ShockFamily     FamilyCurve
	ExpansionFamily FamilyCurve

	tube *Tube
}

func buildSolution(tb *Tube, mr MatchResult, state1 thermo.GasState, ds DriverState,
	shock, expansion FamilyCurve) (sol *Solution) {
	sol = &Solution{
		Match:           mr,
		Z:               mr.Driven.Rho * mr.Driven.A / (mr.Driver.Rho * mr.Driver.A),
		Driven1:         state1,
		Driver4:         ds,
		ShockFamily:     shock,
		ExpansionFamily: expansion,
		tube:            tb,
	}
	return
}

// Print writes the solution tabulation to standard output: fill states,
// matched shock, and the two contact surface states.
func (sol *Solution) Print() {
	var (
		tb = sol.tube
		mr = sol.Match
	)
	fmt.Printf("Driven State (1)\n")
	fmt.Printf("   Fill gas %s\n", sol.Driven1.Composition)
	fmt.Printf("   Pressure %g (kPa)\n", sol.Driven1.P/1.e3)
	fmt.Printf("   Temperature %g (K)\n", sol.Driven1.T)
	fmt.Printf("   Sound speed %.2f (m/s)\n", sol.Driven1.SoundSpeed(thermo.Frozen))
	fmt.Printf("   Density %.6f (kg/m3)\n", sol.Driven1.Rho)
	switch tb.Driver.Type {
	case DRIVER_CJ:
		fmt.Printf("Driver State (CJ)\n")
		fmt.Printf("   Fill gas %s\n", tb.Driver.Composition)
		fmt.Printf("   Fill Pressure %g (kPa)\n", tb.Driver.P/1.e3)
		fmt.Printf("   Fill Temperature %g (K)\n", tb.Driver.T)
		fmt.Printf("   CJ speed %.2f (m/s)\n", sol.Driver4.CJSpeed)
	case DRIVER_UV:
		fmt.Printf("Driver State (UV)\n")
		fmt.Printf("   Fill gas %s\n", tb.Driver.Composition)
		fmt.Printf("   Fill Pressure %g (kPa)\n", tb.Driver.P/1.e3)
		fmt.Printf("   Fill Temperature %g (K)\n", tb.Driver.T)
	default:
		fmt.Printf("Driver State (4)\n")
		fmt.Printf("   Fill gas %s\n", tb.Driver.Composition)
	}
	fmt.Printf("   Pressure %g (kPa)\n", sol.Driver4.Gas.P/1.e3)
	fmt.Printf("   Temperature %g (K)\n", sol.Driver4.Gas.T)
	fmt.Printf("   Sound speed %.2f (m/s)\n", sol.Driver4.Gas.SoundSpeed(tb.driverMode()))
	fmt.Printf("   Density %.6f (kg/m3)\n", sol.Driver4.Gas.Rho)
	fmt.Printf("Solution matching P-u for states 2 & 3\n")
	fmt.Printf("Shock speed %.2f (m/s)\n", mr.ShockSpeed)
	fmt.Printf("Shock Mach number %.4f\n", mr.ShockMach)
	fmt.Printf("Shock Pressure ratio %.4f\n", mr.PRatio)
	fmt.Printf("Postshock state (2) in driven section\n")
	printContact(mr.Driven)
	fmt.Printf("Expansion state (3) in driver section\n")
	printContact(mr.Driver)
	fmt.Printf("Impedance ratio at contact surface (rho a)2/(rho a)3 %.4f\n", sol.Z)
}

func printContact(cs ContactState) {
	fmt.Printf("   Pressure %g (kPa)\n", cs.P/1.e3)
	fmt.Printf("   Velocity %.2f (m/s)\n", cs.U)
	fmt.Printf("   Temperature %.2f (K)\n", cs.T)
	fmt.Printf("   Sound speed %.2f (m/s)\n", cs.A)
	fmt.Printf("   Density %.6f (kg/m3)\n", cs.Rho)
	fmt.Printf("   Mach number %.4f\n", cs.Mach)
}
