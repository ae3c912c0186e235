package shock_tube

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/shocktube/idealgas"
)

func TestShockFamily(t *testing.T) {
	var (
		gm      = idealgas.New()
		tb, err = NewTube(gm, gm,
			DrivenSection{P: 1200., T: 300., Composition: "N2:1.0 O2:3.76"},
			DriverSection{Type: DRIVER_GAS, P: 3.e6, T: 300., Composition: "He:1.0"})
	)
	assert.NoError(t, err)
	fc, err := tb.ShockFamily()
	assert.NoError(t, err)
	state1, err := gm.State(300., 1200., "N2:1.0 O2:3.76")
	assert.NoError(t, err)
	assert.Equal(t, tb.Sweep.Points, len(fc.Points))
	// The sweep spans wave speeds from just above sonic to the stop factor
	assert.InEpsilon(t, 1.01*state1.AFrozen, fc.Points[0].Ws, 1.e-12)
	assert.InEpsilon(t, 8.*state1.AFrozen, fc.Points[len(fc.Points)-1].Ws, 1.e-12)
	for i, pt := range fc.Points {
		if i > 0 {
			// Stronger shocks carry higher pressure and faster gas
			assert.Greater(t, pt.Ws, fc.Points[i-1].Ws)
			assert.Greater(t, pt.P, fc.Points[i-1].P)
			assert.Greater(t, pt.U, fc.Points[i-1].U)
		}
		// Mass conservation fixes the lab frame velocity behind the wave
		assert.InEpsilon(t, pt.Ws*(1.-state1.Rho/pt.Rho), pt.U, 1.e-12)
		// Momentum conservation pins each sample to its Rayleigh line
		assert.InEpsilon(t, RayleighPressure(state1, pt.Ws, pt.Rho), pt.P, 1.e-10)
		assert.Greater(t, pt.T, state1.T)
	}
}
