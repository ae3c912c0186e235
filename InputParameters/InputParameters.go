package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/shocktube/idealgas"
	"github.com/notargets/shocktube/shock_tube"
	"github.com/notargets/shocktube/thermo"
)

// Parameters obtained from the YAML input file
type TubeParameters struct {
	Title  string `yaml:"Title"`
	Model  string `yaml:"Model"` // gas model backend, default "idealgas"
	Driven struct {
		Pressure    float64 `yaml:"Pressure"`
		Temperature float64 `yaml:"Temperature"`
		Gas         string  `yaml:"Gas"`
		Mechanism   string  `yaml:"Mechanism"` // reaction mechanism for backends that read one
		Mode        string  `yaml:"Mode"`      // frozen (default) or equilibrium
	} `yaml:"Driven"`
	Driver struct {
		Type        string  `yaml:"Type"` // gas (default), uv or cj
		Pressure    float64 `yaml:"Pressure"`
		Temperature float64 `yaml:"Temperature"`
		Gas         string  `yaml:"Gas"`
		Mechanism   string  `yaml:"Mechanism"`
	} `yaml:"Driver"`
	Sweep     shock_tube.SweepParameters     `yaml:"Sweep"`
	Expansion shock_tube.ExpansionParameters `yaml:"Expansion"`
	Match     shock_tube.MatchParameters     `yaml:"Match"`
	Mixtures  map[string]idealgas.Mixture    `yaml:"Mixtures"` // extra perfect gas mixtures, keyed by composition
}

func (tp *TubeParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, tp)
}

func (tp *TubeParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", tp.Title)
	fmt.Printf("%8.5g\t\t= Driven Pressure (Pa)\n", tp.Driven.Pressure)
	fmt.Printf("%8.5g\t\t= Driven Temperature (K)\n", tp.Driven.Temperature)
	fmt.Printf("[%s]\t= Driven Gas\n", tp.Driven.Gas)
	fmt.Printf("[%s]\t\t\t= Driver Type\n", tp.Driver.Type)
	fmt.Printf("%8.5g\t\t= Driver Pressure (Pa)\n", tp.Driver.Pressure)
	fmt.Printf("%8.5g\t\t= Driver Temperature (K)\n", tp.Driver.Temperature)
	fmt.Printf("[%s]\t\t= Driver Gas\n", tp.Driver.Gas)
	keys := make([]string, len(tp.Mixtures))
	i := 0
	for k := range tp.Mixtures {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Mixtures[%s] = %+v\n", key, tp.Mixtures[key])
	}
}

// Tube assembles a solver from the deck. Deck sections left at zero keep
// the solver defaults; individual non-zero fields override them. The two
// model handles satisfy the one-handle-per-section contract of
// shock_tube.Tube; pass the same handle twice only for a stateless
// backend.
func (tp *TubeParameters) Tube(drivenModel, driverModel thermo.Model) (tb *shock_tube.Tube, err error) {
	driven := shock_tube.DrivenSection{
		P:           tp.Driven.Pressure,
		T:           tp.Driven.Temperature,
		Composition: tp.Driven.Gas,
		Mechanism:   tp.Driven.Mechanism,
	}
	if len(tp.Driven.Mode) != 0 {
		var ok bool
		if driven.Mode, ok = thermo.ModeNameMap[tp.Driven.Mode]; !ok {
			err = &shock_tube.InputValidationError{
				Field:  "Driven.Mode",
				Reason: fmt.Sprintf("unknown mode %q, want frozen or equilibrium", tp.Driven.Mode),
			}
			return
		}
	}
	driver := shock_tube.DriverSection{
		P:           tp.Driver.Pressure,
		T:           tp.Driver.Temperature,
		Composition: tp.Driver.Gas,
		Mechanism:   tp.Driver.Mechanism,
	}
	if len(tp.Driver.Type) != 0 {
		if driver.Type, err = shock_tube.NewDriverType(tp.Driver.Type); err != nil {
			return
		}
	}
	if tb, err = shock_tube.NewTube(drivenModel, driverModel, driven, driver); err != nil {
		return
	}
	if tp.Sweep.UStartFactor != 0 {
		tb.Sweep.UStartFactor = tp.Sweep.UStartFactor
	}
	if tp.Sweep.UStopFactor != 0 {
		tb.Sweep.UStopFactor = tp.Sweep.UStopFactor
	}
	if tp.Sweep.Points != 0 {
		tb.Sweep.Points = tp.Sweep.Points
	}
	if tp.Expansion.VolumeGrowth != 0 {
		tb.Expansion.VolumeGrowth = tp.Expansion.VolumeGrowth
	}
	if tp.Expansion.MaxSteps != 0 {
		tb.Expansion.MaxSteps = tp.Expansion.MaxSteps
	}
	if tp.Expansion.TargetMargin != 0 {
		tb.Expansion.TargetMargin = tp.Expansion.TargetMargin
	}
	if tp.Match.VelocityTolerance != 0 {
		tb.Match.VelocityTolerance = tp.Match.VelocityTolerance
	}
	if tp.Match.EdgeTolerance != 0 {
		tb.Match.EdgeTolerance = tp.Match.EdgeTolerance
	}
	if tp.Match.BracketFloor != 0 {
		tb.Match.BracketFloor = tp.Match.BracketFloor
	}
	if err = tb.Validate(); err != nil {
		tb = nil
	}
	return
}

// NewModel builds one gas model backend of the kind named in the deck and
// registers any extra mixtures the deck declares. Call it once per tube
// section so each side of the solve owns its own handle; mechanism is the
// section's reaction mechanism, which the perfect gas backend has no use
// for.
func (tp *TubeParameters) NewModel(mechanism string) (model thermo.Model, err error) {
	switch tp.Model {
	case "", "idealgas":
		gm := idealgas.New()
		for composition, mix := range tp.Mixtures {
			gm.Register(composition, mix)
		}
		model = gm
	default:
		err = &shock_tube.InputValidationError{
			Field:  "Model",
			Reason: fmt.Sprintf("unknown gas model backend %q", tp.Model),
		}
	}
	return
}
