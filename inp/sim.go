// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/OilCoder/gores/mdl/fluid"
	"github.com/OilCoder/gores/mdl/rock"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/gores
	Encoder string `json:"encoder"` // encoder name; "gob" or "json"
}

// SolverData holds settings for the reduced implicit (Newton-Raphson) solver
type SolverData struct {
	NmaxIt    int     `json:"nmaxit"`    // number of max iterations
	FbTol     float64 `json:"fbtol"`     // tolerance for convergence on fb (inf-norm of residuals)
	DampFac   float64 `json:"dampfac"`   // damping factor applied to Newton increments
	WaterFrac float64 `json:"waterfrac"` // fraction of the non-oil saturation assigned to water
	MaxCuts   int     `json:"maxcuts"`   // max number of timestep cuts (dt halving) before a step fails
	Stab      float64 `json:"stab"`      // stabilisation constant added to the Jacobian diagonal
	ShowR     bool    `json:"showr"`     // show residuals
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	o.NmaxIt = 5
	o.FbTol = 1e-3 // loose on purpose: the well-cell reduction is an approximation
	o.DampFac = 0.001
	o.WaterFrac = 0.3
	o.MaxCuts = 0
	o.Stab = 1e-8
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name      string `json:"name"`      // "umfpack" or "mumps"
	Symmetric bool   `json:"symmetric"` // use symmetric solver
	Verbose   bool   `json:"verbose"`   // verbose?
	Timing    bool   `json:"timing"`    // show timing statistics
}

// SetDefault sets default values
func (o *LinSolData) SetDefault() {
	o.Name = "umfpack"
}

// GridData holds grid data: cell count and (uniform) cell volumes
type GridData struct {
	Ncells  int     `json:"ncells"`  // number of cells
	CellVol float64 `json:"cellvol"` // volume of each cell [m³]
}

// RockData holds rock properties
type RockData struct {
	Phi  float64 `json:"phi"`  // porosity [-]
	Perm float64 `json:"perm"` // permeability [m²]
}

// FluidData holds three-phase fluid properties
type FluidData struct {
	RhoW float64 `json:"rhow"` // water density [kg/m³]
	RhoO float64 `json:"rhoo"` // oil density [kg/m³]
	RhoG float64 `json:"rhog"` // gas density [kg/m³]
	MuW  float64 `json:"muw"`  // water viscosity [Pa·s]
	MuO  float64 `json:"muo"`  // oil viscosity [Pa·s]
	MuG  float64 `json:"mug"`  // gas viscosity [Pa·s]
	Ct   float64 `json:"ct"`   // total compressibility [1/Pa]
}

// IniData holds uniform initial conditions
type IniData struct {
	P0  float64 `json:"p0"`  // initial pressure [Pa]
	Sw0 float64 `json:"sw0"` // initial water saturation
	So0 float64 `json:"so0"` // initial oil saturation
	Sg0 float64 `json:"sg0"` // initial gas saturation
}

// WellData holds the definition of one well
type WellData struct {
	Name       string    `json:"name"`       // well name
	Control    string    `json:"control"`    // "bhp" or "rate"
	Cells      []int     `json:"cells"`      // completion cell indices
	WI         []float64 `json:"wi"`         // Peaceman well index per completion
	Target     float64   `json:"target"`     // target BHP [Pa] or total rate [m³/s]
	Sign       float64   `json:"sign"`       // +1 injector, -1 producer
	Qsrc       float64   `json:"qsrc"`       // source-term strength added to the material balance
	PhaseSplit []float64 `json:"phasesplit"` // rate-control composition [w,o,g]; may be absent
}

// StepData holds one schedule entry
type StepData struct {
	Dt   float64 `json:"dt"`   // timestep size [s]
	Ctrl int     `json:"ctrl"` // control index
}

// ScheduleData holds the production/injection schedule
type ScheduleData struct {
	Steps    []StepData `json:"steps"`    // ordered (dt, control) pairs
	Controls [][]string `json:"controls"` // active well names, per control index
}

// Simulation holds all simulation data read from a .sim file
type Simulation struct {

	// input
	Data     Data         `json:"data"`     // global data
	Solver   SolverData   `json:"solver"`   // nonlinear solver settings
	LinSol   LinSolData   `json:"linsol"`   // linear solver settings
	Grid     GridData     `json:"grid"`     // grid data
	Rock     RockData     `json:"rock"`     // rock data
	Fluid    FluidData    `json:"fluid"`    // fluid data
	Ini      IniData      `json:"ini"`      // initial conditions
	Wells    []*WellData  `json:"wells"`    // well definitions
	Schedule ScheduleData `json:"schedule"` // schedule

	// derived
	Key        string       // simulation key == filename without extension
	DirOut     string       // output directory
	EncType    string       // encoder type: "gob" or "json"
	RockModel  *rock.Model  // rock model built from Rock
	FluidModel *fluid.Model // fluid model built from Fluid
}

// ReadSim reads all simulation data from a .sim JSON file
//
//	Note: this function panics (like all input-layer loaders) because no
//	simulation is possible without valid input data
func ReadSim(simfilepath string, createDirOut bool) *Simulation {

	// new sim
	var o Simulation

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// set default values
	o.Solver.SetDefault()
	o.LinSol.SetDefault()

	// decode
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// filename key
	fn := filepath.Base(simfilepath)
	o.Key = io.FnKey(fn)

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/gores/" + o.Key
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// create directory
	if createDirOut {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			chk.Panic("ReadSim: cannot create directory for output results (%s): %v", o.DirOut, err)
		}
	}

	// material models
	o.RockModel = new(rock.Model)
	o.RockModel.Init(fun.Params{
		&fun.P{N: "phi", V: o.Rock.Phi},
		&fun.P{N: "perm", V: o.Rock.Perm},
	})
	o.FluidModel = new(fluid.Model)
	o.FluidModel.Init(fun.Params{
		&fun.P{N: "rhow", V: o.Fluid.RhoW},
		&fun.P{N: "rhoo", V: o.Fluid.RhoO},
		&fun.P{N: "rhog", V: o.Fluid.RhoG},
		&fun.P{N: "muw", V: o.Fluid.MuW},
		&fun.P{N: "muo", V: o.Fluid.MuO},
		&fun.P{N: "mug", V: o.Fluid.MuG},
		&fun.P{N: "ct", V: o.Fluid.Ct},
	})

	// check
	err = o.Check()
	if err != nil {
		chk.Panic("ReadSim: simulation file %q is invalid:\n%v", simfilepath, err)
	}
	return &o
}

// GetWell returns the well definition named name, or nil
func (o *Simulation) GetWell(name string) *WellData {
	for _, w := range o.Wells {
		if w.Name == name {
			return w
		}
	}
	return nil
}

// Check validates the input data once, before any solver is built
func (o *Simulation) Check() (err error) {
	if o.Grid.Ncells < 1 {
		return chk.Err("grid must have at least one cell. Ncells=%d is invalid", o.Grid.Ncells)
	}
	if o.Grid.CellVol <= 0 {
		return chk.Err("cell volume must be positive. CellVol=%g is invalid", o.Grid.CellVol)
	}
	if o.Solver.NmaxIt < 1 {
		return chk.Err("solver needs at least one iteration. NmaxIt=%d is invalid", o.Solver.NmaxIt)
	}
	if o.Solver.MaxCuts < 0 {
		return chk.Err("number of timestep cuts cannot be negative. MaxCuts=%d is invalid", o.Solver.MaxCuts)
	}
	for _, w := range o.Wells {
		if w.Control != "bhp" && w.Control != "rate" {
			return chk.Err("well %q: control must be \"bhp\" or \"rate\". %q is invalid", w.Name, w.Control)
		}
		if w.Sign != 1 && w.Sign != -1 {
			return chk.Err("well %q: sign must be +1 (injector) or -1 (producer). %g is invalid", w.Name, w.Sign)
		}
		if len(w.Cells) < 1 {
			return chk.Err("well %q has no completion cells", w.Name)
		}
		if len(w.WI) != len(w.Cells) {
			return chk.Err("well %q: len(wi)=%d must match len(cells)=%d", w.Name, len(w.WI), len(w.Cells))
		}
		for _, c := range w.Cells {
			if c < 0 || c >= o.Grid.Ncells {
				return chk.Err("well %q: completion cell %d is outside the grid", w.Name, c)
			}
		}
		if w.PhaseSplit != nil && len(w.PhaseSplit) != 3 {
			return chk.Err("well %q: phasesplit must have 3 components", w.Name)
		}
	}
	for i, stp := range o.Schedule.Steps {
		if stp.Dt <= 0 {
			return chk.Err("schedule step %d: dt must be positive. dt=%g is invalid", i, stp.Dt)
		}
		if stp.Ctrl < 0 || stp.Ctrl >= len(o.Schedule.Controls) {
			return chk.Err("schedule step %d: control index %d is out of range", i, stp.Ctrl)
		}
	}
	for i, names := range o.Schedule.Controls {
		for _, name := range names {
			if o.GetWell(name) == nil {
				return chk.Err("schedule control %d: cannot find well named %q", i, name)
			}
		}
	}
	return
}
