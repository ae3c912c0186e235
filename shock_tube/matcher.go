package shock_tube

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/optimize"

	"github.com/notargets/shocktube/thermo"
)

// familyFuncs interpolates each stored flow quantity against the pressure
// ratio P/Pref using monotone piecewise cubics, which cannot overshoot the
// sampled curve between knots. Queries outside [Lo, Hi] clamp to the end
// values, so callers must range-check before trusting a prediction.
type familyFuncs struct {
	U, T, Rho, A, Ws interp.FritschButland
	Lo, Hi           float64 // sampled P/Pref range
}

func newFamilyFuncs(fc *FamilyCurve, pRef float64, withWs bool) (ff *familyFuncs, err error) {
	fc.SortByPressure()
	np := len(fc.Points)
	if np < 2 {
		err = fmt.Errorf("family curve has %d points after sorting, need at least 2", np)
		return
	}
	var (
		xs  = make([]float64, np)
		us  = make([]float64, np)
		ts  = make([]float64, np)
		rho = make([]float64, np)
		as  = make([]float64, np)
		ws  = make([]float64, np)
	)
	for i, pt := range fc.Points {
		xs[i] = pt.P / pRef
		us[i] = pt.U
		ts[i] = pt.T
		rho[i] = pt.Rho
		as[i] = pt.A
		ws[i] = pt.Ws
	}
	ff = &familyFuncs{Lo: xs[0], Hi: xs[np-1]}
	for _, fit := range []struct {
		f  *interp.FritschButland
		ys []float64
	}{
		{&ff.U, us}, {&ff.T, ts}, {&ff.Rho, rho}, {&ff.A, as},
	} {
		if err = fit.f.Fit(xs, fit.ys); err != nil {
			return nil, err
		}
	}
	if withWs {
		if err = ff.Ws.Fit(xs, ws); err != nil {
			return nil, err
		}
	}
	return
}

// contact evaluates the interpolated state at pressure ratio x.
func (ff *familyFuncs) contact(x, pRef float64) (cs ContactState) {
	cs = ContactState{
		U:   ff.U.Predict(x),
		P:   x * pRef,
		Rho: ff.Rho.Predict(x),
		T:   ff.T.Predict(x),
		A:   ff.A.Predict(x),
	}
	cs.Mach = cs.U / cs.A
	return
}

// matchCurves intersects the two family curves in the P-u plane. The
// objective (u2 - u3)^2 is scanned on a dense grid over the bracket
// [BracketFloor, max P2/P1], then polished with a bounded derivative-free
// minimization over the best grid cell. The candidate is rejected with a
// typed error when it pins to a bracket edge, leaves a curve's sampled
// range, or fails the velocity tolerance.
func (tb *Tube) matchCurves(shock, expansion *FamilyCurve, state1 thermo.GasState) (mr MatchResult, err error) {
	var (
		sf, xf *familyFuncs
	)
	if sf, err = newFamilyFuncs(shock, state1.P, true); err != nil {
		return mr, fmt.Errorf("shock family: %w", err)
	}
	if xf, err = newFamilyFuncs(expansion, state1.P, false); err != nil {
		return mr, fmt.Errorf("expansion family: %w", err)
	}
	var (
		lo, hi   = tb.Match.BracketFloor, sf.Hi
		mismatch = func(x float64) float64 {
			d := sf.U.Predict(x) - xf.U.Predict(x)
			return d * d
		}
	)
	if hi <= lo {
		return mr, &InputValidationError{Field: "Match.BracketFloor",
			Reason: fmt.Sprintf("floor %g at or above the top of the shock family range %g", lo, hi)}
	}

	const nScan = 512
	var (
		grid    = floats.Span(make([]float64, nScan), lo, hi)
		best    = 0
		bestVal = math.Inf(1)
	)
	for i, x := range grid {
		if val := mismatch(x); val < bestVal {
			best, bestVal = i, val
		}
	}
	xStar := tb.polish(mismatch, grid, best)

	// The residual check comes first: a sweep that stops short of the
	// crossing leaves a nonzero minimum pinned at the bracket's top, and
	// the actionable report for that is "no intersection, widen the
	// sweep", not an extrapolation complaint.
	residual := math.Abs(sf.U.Predict(xStar) - xf.U.Predict(xStar))
	if residual > tb.Match.VelocityTolerance {
		return mr, &NoIntersectionError{
			PRatio:    xStar,
			Residual:  residual,
			Tolerance: tb.Match.VelocityTolerance,
			Lo:        lo,
			Hi:        hi,
		}
	}
	var (
		edge = tb.Match.EdgeTolerance * (hi - lo)
	)
	switch {
	case xStar-lo <= edge || hi-xStar <= edge:
		return mr, &ExtrapolationError{PRatio: xStar, Lo: lo, Hi: hi, Curve: "bracket"}
	case xStar < sf.Lo || xStar > sf.Hi:
		return mr, &ExtrapolationError{PRatio: xStar, Lo: sf.Lo, Hi: sf.Hi, Curve: "shock"}
	case xStar < xf.Lo || xStar > xf.Hi:
		return mr, &ExtrapolationError{PRatio: xStar, Lo: xf.Lo, Hi: xf.Hi, Curve: "expansion"}
	}

	ws := sf.Ws.Predict(xStar)
	mr = MatchResult{
		PRatio:     xStar,
		ShockSpeed: ws,
		ShockMach:  ws / state1.SoundSpeed(thermo.Frozen),
		Residual:   residual,
		Driven:     sf.contact(xStar, state1.P),
		Driver:     xf.contact(xStar, state1.P),
	}
	return
}

// polish refines a grid minimum inside its neighboring cells. The single
// unknown is mapped through tanh so the minimizer explores an unbounded
// variable while the objective only ever sees points inside the cell pair.
func (tb *Tube) polish(objective func(float64) float64, grid []float64, best int) (xStar float64) {
	iLo, iHi := best-1, best+1
	if iLo < 0 {
		iLo = 0
	}
	if iHi > len(grid)-1 {
		iHi = len(grid) - 1
	}
	var (
		rlo, rhi = grid[iLo], grid[iHi]
		bound    = func(y float64) float64 {
			return rlo + (rhi-rlo)*0.5*(1.+math.Tanh(y))
		}
	)
	problem := optimize.Problem{
		Func: func(y []float64) float64 {
			return objective(bound(y[0]))
		},
	}
	settings := optimize.Settings{
		MajorIterations:   1000,
		GradientThreshold: 1e-6,
	}
	xStar = grid[best]
	result, err := optimize.Minimize(problem, []float64{0}, &settings, nil)
	if err == nil && result != nil {
		if x := bound(result.X[0]); objective(x) <= objective(xStar) {
			xStar = x
		}
	}
	return
}
