package shock_tube

import "sort"

// FlowPoint is one sample on a wave family curve: the state reached behind
// the wave together with the lab frame gas velocity there.
type FlowPoint struct {
	U   float64 // gas velocity behind the wave, m/s
	P   float64 // Pa
	Rho float64 // kg/m3
	T   float64 // K
	A   float64 // sound speed used for this family, m/s
	Ws  float64 // incident wave speed, m/s (shock family only)
}

// FamilyCurve is a locus of admissible post-wave states in the P-u plane,
// one per wave family. Curves are value types; builders return fresh ones
// and never mutate their inputs.
type FamilyCurve struct {
	Points []FlowPoint
}

// SortByPressure orders the points by ascending pressure and collapses
// duplicate pressures, leaving a strictly increasing abscissa for the
// monotone interpolants. Calling it again on sorted points is a no-op.
func (fc *FamilyCurve) SortByPressure() {
	sort.SliceStable(fc.Points, func(i, j int) bool {
		return fc.Points[i].P < fc.Points[j].P
	})
	var kept int
	for i, pt := range fc.Points {
		if i > 0 && pt.P-fc.Points[kept-1].P <= 1.e-12*pt.P {
			fc.Points[kept-1] = pt
			continue
		}
		fc.Points[kept] = pt
		kept++
	}
	fc.Points = fc.Points[:kept]
}

// MinPressure and MaxPressure assume the curve has been sorted.
func (fc *FamilyCurve) MinPressure() float64 { return fc.Points[0].P }

func (fc *FamilyCurve) MaxPressure() float64 { return fc.Points[len(fc.Points)-1].P }
