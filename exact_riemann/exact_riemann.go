// Package exact_riemann solves the classical two-gamma shock tube problem
// in closed form: a high pressure driver slab and a low pressure driven
// slab, both at rest, separated by a diaphragm at time zero. The star state
// comes from the implicit pressure ratio equation
//
//	P4/P1 = P21 [1 - (g4-1)(a1/a4)(P21-1) / sqrt(2 g1 (2 g1 + (g1+1)(P21-1)))]^(-2 g4/(g4-1))
//
// solved by a bracketed scalar root finder. It provides the reference
// values the matching pipeline is verified against for perfect gases.
package exact_riemann

import (
	"fmt"
	"math"
)

// GasSlab is one side of the diaphragm: a perfect gas at rest.
type GasSlab struct {
	Rho, P, Gamma float64
}

func (gs GasSlab) SoundSpeed() float64 {
	return math.Sqrt(gs.Gamma * gs.P / gs.Rho)
}

// Star is the similarity solution between the expansion tail and the shock.
type Star struct {
	P          float64 // pressure on both sides of the contact
	U          float64 // contact surface velocity
	ShockSpeed float64
	Mach       float64 // shock Mach number relative to the driven gas
	RhoLeft    float64 // density on the driver (isentrope) side
	RhoRight   float64 // density on the driven (Hugoniot) side
}

// Solve returns the star state for driver slab left and driven slab right.
func Solve(left, right GasSlab) (st Star, err error) {
	var (
		g1, g4 = right.Gamma, left.Gamma
		a1, a4 = right.SoundSpeed(), left.SoundSpeed()
		P41    = left.P / right.P
	)
	if left.P <= 0 || right.P <= 0 || left.Rho <= 0 || right.Rho <= 0 {
		err = fmt.Errorf("exact_riemann: slab pressures and densities must be positive")
		return
	}
	if P41 < 1 {
		err = fmt.Errorf("exact_riemann: driver pressure %g below driven pressure %g", left.P, right.P)
		return
	}
	var P21 float64
	if P41 == 1 {
		P21 = 1
	} else {
		// The residual is monotone on [1, P21vac): negative at 1, +Inf as
		// the bracket term vanishes at the vacuum expansion limit.
		coef := (g4 - 1.) * (a1 / a4)
		f := func(P21 float64) (y float64) {
			y = P21*math.Pow(1.-coef*(P21-1.)/
				math.Sqrt(2.*g1*(2.*g1+(g1+1.)*(P21-1.))), -2.*g4/(g4-1.)) - P41
			return
		}
		var (
			A    = coef * coef
			B    = 2. * g1 * (g1 + 1.)
			C    = 4. * g1 * g1
			yVac = (B + math.Sqrt(B*B+4.*A*C)) / (2. * A)
			hi   = math.Min(P41, 1.+yVac*(1.-1.e-12))
		)
		if P21, err = fzero(f, 1., hi); err != nil {
			return
		}
	}
	var (
		r = (g1 + 1.) / (g1 - 1.)
		W = a1 * math.Sqrt((g1+1.)/(2.*g1)*(P21-1.)+1.)
		u = a1 / g1 * (P21 - 1.) *
			math.Sqrt((2.*g1/(g1+1.))/(P21+(g1-1.)/(g1+1.)))
	)
	st = Star{
		P:          P21 * right.P,
		U:          u,
		ShockSpeed: W,
		Mach:       W / a1,
		RhoLeft:    left.Rho * math.Pow(P21*right.P/left.P, 1./g4),
		RhoRight:   right.Rho * (1. + r*P21) / (r + P21),
	}
	return
}

// fzero finds the root of f on [lo, hi] with a bracket-keeping secant,
// falling back to bisection whenever the secant step leaves the bracket.
func fzero(f func(float64) float64, lo, hi float64) (x float64, err error) {
	var (
		tol      = 1.e-12
		flo, fhi = f(lo), f(hi)
	)
	if flo == 0 {
		return lo, nil
	}
	if fhi == 0 {
		return hi, nil
	}
	if flo*fhi > 0 {
		err = fmt.Errorf("exact_riemann: root not bracketed on [%g, %g]", lo, hi)
		return
	}
	for iter := 0; iter < 200; iter++ {
		x = hi - fhi*(hi-lo)/(fhi-flo)
		if !(x > lo && x < hi) {
			x = 0.5 * (lo + hi)
		}
		fx := f(x)
		switch {
		case fx == 0 || hi-lo < tol*(1.+math.Abs(x)):
			return x, nil
		case flo*fx < 0:
			hi, fhi = x, fx
		default:
			lo, flo = x, fx
		}
	}
	return x, nil
}

// Profile samples the similarity solution at time t with the diaphragm at
// x0, placing a pair of samples astride each wave so the discontinuities
// plot as jumps. E is the specific internal energy of the local gas.
func Profile(left, right GasSlab, x0, xMin, xMax, t float64) (X, Rho, P, U, E []float64, err error) {
	var st Star
	if st, err = Solve(left, right); err != nil {
		return
	}
	if t <= 0 {
		err = fmt.Errorf("exact_riemann: profile requires t > 0")
		return
	}
	var (
		g4 = left.Gamma
		a4 = left.SoundSpeed()
		a3 = a4 - 0.5*(g4-1.)*st.U
		// Key positions: fan head, fan tail, contact, shock
		x1  = x0 - a4*t
		x2  = x0 + (st.U-a3)*t
		x3  = x0 + st.U*t
		x4  = x0 + st.ShockSpeed*t
		tol = 1.e-8 * (xMax - xMin)
	)
	X = []float64{
		xMin,
		x1 - tol, x1 + tol,
		x2 - tol, x2 + tol,
		x3 - tol, x3 + tol,
		x4 - tol, x4 + tol,
		xMax,
	}
	Rho = make([]float64, len(X))
	P = make([]float64, len(X))
	U = make([]float64, len(X))
	E = make([]float64, len(X))
	for i, x := range X {
		switch {
		case x < x1:
			Rho[i] = left.Rho
			P[i] = left.P
			U[i] = 0
		case x1 <= x && x <= x2:
			// Inside the centered fan the local sound speed follows the
			// characteristic through (x0, 0)
			u := 2. / (g4 + 1.) * (a4 + (x-x0)/t)
			c := a4 - 0.5*(g4-1.)*u
			Rho[i] = left.Rho * math.Pow(c/a4, 2./(g4-1.))
			P[i] = left.P * math.Pow(Rho[i]/left.Rho, g4)
			U[i] = u
		case x2 <= x && x <= x3:
			Rho[i] = st.RhoLeft
			P[i] = st.P
			U[i] = st.U
		case x3 <= x && x <= x4:
			Rho[i] = st.RhoRight
			P[i] = st.P
			U[i] = st.U
		default:
			Rho[i] = right.Rho
			P[i] = right.P
			U[i] = 0
		}
		gl := left.Gamma
		if x > x3 {
			gl = right.Gamma
		}
		E[i] = P[i] / ((gl - 1.) * Rho[i])
	}
	return
}
