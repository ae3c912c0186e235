package exact_riemann

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSodStarState(t *testing.T) {
	var (
		left  = GasSlab{Rho: 1., P: 1., Gamma: 1.4}
		right = GasSlab{Rho: 0.125, P: 0.1, Gamma: 1.4}
	)
	st, err := Solve(left, right)
	assert.NoError(t, err)
	// Classical Sod values
	assert.InDelta(t, 0.30313, st.P, 1.e-5)
	assert.InDelta(t, 0.92745, st.U, 1.e-5)
	assert.InDelta(t, 1.75216, st.ShockSpeed, 1.e-5)
	assert.InDelta(t, 0.26557, st.RhoRight, 1.e-4)
	assert.InDelta(t, 0.42632, st.RhoLeft, 1.e-4)
}

func TestTwoGammaStarState(t *testing.T) {
	// Helium driving air: strong shock tube with unequal gamma
	var (
		left  = GasSlab{Rho: 4.8139, P: 3.e6, Gamma: 5. / 3.}
		right = GasSlab{Rho: 0.014992, P: 1200., Gamma: 1.4}
	)
	st, err := Solve(left, right)
	assert.NoError(t, err)
	var (
		g1, g4   = right.Gamma, left.Gamma
		a1, a4   = right.SoundSpeed(), left.SoundSpeed()
		P21      = st.P / right.P
		expected = P21 * math.Pow(1.-(g4-1.)*(a1/a4)*(P21-1.)/
			math.Sqrt(2.*g1*(2.*g1+(g1+1.)*(P21-1.))), -2.*g4/(g4-1.))
	)
	// The returned star pressure satisfies the shock tube equation
	assert.InEpsilon(t, left.P/right.P, expected, 1.e-9)
	// Strong but far below the diaphragm ratio
	assert.Greater(t, P21, 10.)
	assert.Less(t, P21, left.P/right.P)
	// Shock speed consistent with the star pressure ratio
	assert.InEpsilon(t, a1*math.Sqrt((g1+1.)/(2.*g1)*(P21-1.)+1.), st.ShockSpeed, 1.e-12)
	assert.Greater(t, st.Mach, 1.)
	// Contact velocity below the driver escape velocity
	assert.Less(t, st.U, 2.*a4/(g4-1.))
}

func TestStarPressureMonotonic(t *testing.T) {
	// Pressurizing the driver at a fixed fill temperature: density scales
	// with pressure, so the driver sound speed holds while the diaphragm
	// ratio climbs
	var (
		right    = GasSlab{Rho: 1.2, P: 1.e5, Gamma: 1.4}
		rhoPerPa = 1.605e-6 // helium at room temperature, kg/(m3 Pa)
		prev     = right.P
	)
	for _, P4 := range []float64{2.e5, 8.e5, 3.e6, 1.e7, 3.e7, 6.e7, 1.e8} {
		left := GasSlab{Rho: rhoPerPa * P4, P: P4, Gamma: 5. / 3.}
		st, err := Solve(left, right)
		assert.NoError(t, err)
		// The star pressure sits strictly between the two fills and
		// rises with the driver pressure
		assert.Greater(t, st.P, right.P)
		assert.Less(t, st.P, left.P)
		assert.Greater(t, st.P, prev)
		prev = st.P
	}
}

func TestDegenerateAndInvalidSlabs(t *testing.T) {
	// Equal pressures: no wave, the star state is the shared fill state
	{
		var (
			left  = GasSlab{Rho: 1., P: 1.e5, Gamma: 1.4}
			right = GasSlab{Rho: 1., P: 1.e5, Gamma: 1.4}
		)
		st, err := Solve(left, right)
		assert.NoError(t, err)
		assert.Equal(t, 1.e5, st.P)
		assert.Equal(t, 0., st.U)
		assert.InEpsilon(t, right.SoundSpeed(), st.ShockSpeed, 1.e-12)
	}
	// Driver below driven pressure is not a shock tube
	{
		_, err := Solve(GasSlab{Rho: 1., P: 1., Gamma: 1.4},
			GasSlab{Rho: 1., P: 2., Gamma: 1.4})
		assert.Error(t, err)
	}
	// Non-physical slabs are rejected
	{
		_, err := Solve(GasSlab{Rho: -1., P: 1., Gamma: 1.4},
			GasSlab{Rho: 1., P: 0.5, Gamma: 1.4})
		assert.Error(t, err)
	}
}

func TestProfile(t *testing.T) {
	var (
		left  = GasSlab{Rho: 1., P: 1., Gamma: 1.4}
		right = GasSlab{Rho: 0.125, P: 0.1, Gamma: 1.4}
	)
	st, err := Solve(left, right)
	assert.NoError(t, err)
	X, Rho, P, U, E, err := Profile(left, right, 0.5, 0., 1., 0.2)
	assert.NoError(t, err)
	assert.Equal(t, len(X), len(Rho))
	assert.Equal(t, len(X), len(P))
	assert.Equal(t, len(X), len(U))
	assert.Equal(t, len(X), len(E))
	// Ends carry the undisturbed fill states
	assert.Equal(t, left.Rho, Rho[0])
	assert.Equal(t, left.P, P[0])
	assert.Equal(t, 0., U[0])
	assert.Equal(t, right.Rho, Rho[len(X)-1])
	assert.Equal(t, right.P, P[len(X)-1])
	// Positions are nondecreasing and the star plateau appears between
	// the fan tail and the shock
	for i := 1; i < len(X); i++ {
		assert.True(t, X[i] >= X[i-1])
	}
	var (
		xContact = 0.5 + st.U*0.2
		xShock   = 0.5 + st.ShockSpeed*0.2
	)
	for i, x := range X {
		if x > xContact && x < xShock {
			assert.InDelta(t, st.P, P[i], 1.e-6)
			assert.InDelta(t, st.RhoRight, Rho[i], 1.e-6)
			assert.InDelta(t, st.U, U[i], 1.e-6)
		}
		assert.Greater(t, E[i], 0.)
	}
	// Profiles need a positive time
	_, _, _, _, _, err = Profile(left, right, 0.5, 0., 1., 0.)
	assert.Error(t, err)
}
