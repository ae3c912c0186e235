package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/shocktube/idealgas"
	"github.com/notargets/shocktube/shock_tube"
	"github.com/notargets/shocktube/thermo"
)

var heliumAirDeck = `
Title: "Helium driven air shock tube"
Driven:
  Pressure: 1200.
  Temperature: 300.
  Gas: "N2:1.0 O2:3.76"
  Mode: frozen
Driver:
  Type: gas
  Pressure: 3.e6
  Temperature: 300.
  Gas: "He:1.0"
`

func TestParse(t *testing.T) {
	tp := &TubeParameters{}
	assert.NoError(t, tp.Parse([]byte(heliumAirDeck)))
	assert.Equal(t, "Helium driven air shock tube", tp.Title)
	assert.Equal(t, 1200., tp.Driven.Pressure)
	assert.Equal(t, 300., tp.Driven.Temperature)
	assert.Equal(t, "N2:1.0 O2:3.76", tp.Driven.Gas)
	assert.Equal(t, "frozen", tp.Driven.Mode)
	assert.Equal(t, "gas", tp.Driver.Type)
	assert.Equal(t, 3.e6, tp.Driver.Pressure)
	assert.Equal(t, "He:1.0", tp.Driver.Gas)
	tp.Print()
}

func TestTube(t *testing.T) {
	// Deck sections left out keep the solver defaults
	{
		tp := &TubeParameters{}
		assert.NoError(t, tp.Parse([]byte(heliumAirDeck)))
		drivenModel, err := tp.NewModel(tp.Driven.Mechanism)
		assert.NoError(t, err)
		driverModel, err := tp.NewModel(tp.Driver.Mechanism)
		assert.NoError(t, err)
		tb, err := tp.Tube(drivenModel, driverModel)
		assert.NoError(t, err)
		assert.Equal(t, shock_tube.DRIVER_GAS, tb.Driver.Type)
		assert.Equal(t, thermo.Frozen, tb.Driven.Mode)
		assert.Equal(t, 1200., tb.Driven.P)
		assert.Equal(t, "He:1.0", tb.Driver.Composition)
		assert.Equal(t, 1.01, tb.Sweep.UStartFactor)
		assert.Equal(t, 8., tb.Sweep.UStopFactor)
		assert.Equal(t, 100, tb.Sweep.Points)
		assert.Equal(t, 1.01, tb.Expansion.VolumeGrowth)
		assert.Equal(t, 10000, tb.Expansion.MaxSteps)
		assert.Equal(t, 1.05, tb.Expansion.TargetMargin)
		assert.Equal(t, 0.5, tb.Match.VelocityTolerance)
		assert.Equal(t, 1.01, tb.Match.BracketFloor)
	}
	// Non-zero deck fields override individual defaults, leaving the
	// rest in place
	{
		deck := heliumAirDeck + `
Sweep:
  UStopFactor: 6.
  Points: 150
Expansion:
  TargetMargin: 1.1
Match:
  VelocityTolerance: 1.
`
		tp := &TubeParameters{}
		assert.NoError(t, tp.Parse([]byte(deck)))
		gm, err := tp.NewModel("")
		assert.NoError(t, err)
		tb, err := tp.Tube(gm, gm)
		assert.NoError(t, err)
		assert.Equal(t, 6., tb.Sweep.UStopFactor)
		assert.Equal(t, 1.01, tb.Sweep.UStartFactor)
		assert.Equal(t, 150, tb.Sweep.Points)
		assert.Equal(t, 1.1, tb.Expansion.TargetMargin)
		assert.Equal(t, 1.01, tb.Expansion.VolumeGrowth)
		assert.Equal(t, 1., tb.Match.VelocityTolerance)
	}
	// Unknown labels are rejected with the offending deck field
	{
		tp := &TubeParameters{}
		assert.NoError(t, tp.Parse([]byte(heliumAirDeck)))
		gm, err := tp.NewModel("")
		assert.NoError(t, err)
		tp.Driven.Mode = "adiabatic"
		_, err = tp.Tube(gm, gm)
		var ive *shock_tube.InputValidationError
		assert.ErrorAs(t, err, &ive)
		assert.Equal(t, "Driven.Mode", ive.Field)

		tp.Driven.Mode = "frozen"
		tp.Driver.Type = "piston"
		_, err = tp.Tube(gm, gm)
		assert.ErrorAs(t, err, &ive)
		assert.Equal(t, "Driver.Type", ive.Field)
	}
	// Inadmissible states are caught by the solver validation
	{
		tp := &TubeParameters{}
		assert.NoError(t, tp.Parse([]byte(heliumAirDeck)))
		gm, err := tp.NewModel("")
		assert.NoError(t, err)
		tp.Driver.Pressure = 600.
		_, err = tp.Tube(gm, gm)
		var ive *shock_tube.InputValidationError
		assert.ErrorAs(t, err, &ive)
		assert.Equal(t, "Driver.P", ive.Field)
	}
	// A parsed deck drives the full solve
	{
		tp := &TubeParameters{}
		assert.NoError(t, tp.Parse([]byte(heliumAirDeck)))
		drivenModel, err := tp.NewModel(tp.Driven.Mechanism)
		assert.NoError(t, err)
		driverModel, err := tp.NewModel(tp.Driver.Mechanism)
		assert.NoError(t, err)
		tb, err := tp.Tube(drivenModel, driverModel)
		assert.NoError(t, err)
		sol, err := tb.Solve()
		assert.NoError(t, err)
		assert.Greater(t, sol.Match.ShockMach, 1.)
		sol.Print()
	}
}

func TestMixtureRegistration(t *testing.T) {
	deck := `
Title: "Argon driver"
Model: idealgas
Driven:
  Pressure: 1000.
  Temperature: 300.
  Gas: "N2:1.0"
Driver:
  Type: gas
  Pressure: 1.e6
  Temperature: 300.
  Gas: "Ar:1.0"
Mixtures:
  "Ar:1.0":
    Gamma: 1.667
    MolarMass: 39.948e-3
`
	tp := &TubeParameters{}
	assert.NoError(t, tp.Parse([]byte(deck)))
	assert.Contains(t, tp.Mixtures, "Ar:1.0")
	assert.Equal(t, 1.667, tp.Mixtures["Ar:1.0"].Gamma)
	// NewModel seeds the backend with the deck mixtures
	model, err := tp.NewModel("")
	assert.NoError(t, err)
	st, err := model.State(300., 1.e6, "Ar:1.0")
	assert.NoError(t, err)
	assert.InEpsilon(t, 1.e6/(idealgas.RUniversal/39.948e-3*300.), st.Rho, 1.e-6)
	// Unknown backends are rejected
	tp.Model = "cantera"
	_, err = tp.NewModel("")
	var ive *shock_tube.InputValidationError
	assert.ErrorAs(t, err, &ive)
	assert.Equal(t, "Model", ive.Field)
}
