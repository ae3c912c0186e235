/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/shocktube/InputParameters"
)

type ModelSolve struct {
	ICFile  string
	Driver  string
	Mode    string
	Profile bool
}

// SolveCmd represents the solve command
var SolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve the shock tube matching problem from a YAML input deck",
	Long: `Solve the shock tube matching problem from a YAML input deck,
reporting the incident shock and the states on both sides of the contact
surface`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("solve called")
		ms := &ModelSolve{}
		if ms.ICFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			panic(err)
		}
		ms.Driver, _ = cmd.Flags().GetString("driver")
		ms.Mode, _ = cmd.Flags().GetString("mode")
		ms.Profile, _ = cmd.Flags().GetBool("profile")
		tp := processInput(ms)
		RunSolve(ms, tp)
	},
}

func processInput(ms *ModelSolve) (tp *InputParameters.TubeParameters) {
	var (
		err error
	)
	if len(ms.ICFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Helium driven air shock tube"
Driven:
  Pressure: 1200.
  Temperature: 300.
  Gas: "N2:1.0 O2:3.76"
Driver:
  Type: gas # gas, uv or cj
  Pressure: 3.e6
  Temperature: 300.
  Gas: "He:1.0"
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(ms.ICFile); err != nil {
		panic(err)
	}
	tp = &InputParameters.TubeParameters{}
	if err = tp.Parse(data); err != nil {
		panic(err)
	}
	if len(ms.Driver) != 0 {
		tp.Driver.Type = ms.Driver
	}
	if len(ms.Mode) != 0 {
		tp.Driven.Mode = ms.Mode
	}
	tp.Print()
	return
}

func init() {
	rootCmd.AddCommand(SolveCmd)
	SolveCmd.Flags().StringP("inputFile", "I", "", "YAML input deck with the driven and driver fill states")
	SolveCmd.Flags().StringP("driver", "d", "", "override the deck driver operation: gas, uv or cj")
	SolveCmd.Flags().StringP("mode", "m", "", "override the driven post-shock chemistry: frozen or equilibrium")
	SolveCmd.Flags().Bool("profile", false, "write a CPU profile of the solve to the current directory")
}

func RunSolve(ms *ModelSolve, tp *InputParameters.TubeParameters) {
	if ms.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	// One model handle per tube section - the two wave family sweeps run
	// concurrently and must not share a stateful gas engine
	drivenModel, err := tp.NewModel(tp.Driven.Mechanism)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	driverModel, err := tp.NewModel(tp.Driver.Mechanism)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	tb, err := tp.Tube(drivenModel, driverModel)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	sol, err := tb.Solve()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	sol.Print()
}
