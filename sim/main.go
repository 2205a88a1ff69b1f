// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/OilCoder/gores/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// StepControl is one schedule entry: a timestep size and the index of the
// active well control
type StepControl struct {
	Dt   float64 // timestep size [s]
	Ctrl int     // control index
}

// Schedule holds the ordered timesteps and, per control index, the active
// well set. It is immutable input to the simulation.
type Schedule struct {
	Steps    []StepControl // ordered (dt, control) pairs
	Controls [][]*Well     // active wells, per control index
}

// Check validates the schedule once, before the time loop starts
func (o *Schedule) Check(ncells int) (err error) {
	for i, stp := range o.Steps {
		if stp.Dt <= 0 {
			return chk.Err("schedule step %d: dt must be positive. dt=%g is invalid", i, stp.Dt)
		}
		if stp.Ctrl < 0 || stp.Ctrl >= len(o.Controls) {
			return chk.Err("schedule step %d: control index %d is out of range", i, stp.Ctrl)
		}
	}
	for i, wells := range o.Controls {
		for _, w := range wells {
			for _, c := range w.Cells {
				if c < 0 || c >= ncells {
					return chk.Err("control %d: well %q completion cell %d is outside the grid", i, w.Name, c)
				}
			}
		}
	}
	return
}

// RunOptions holds run control options with explicit named fields
type RunOptions struct {
	Verbose         bool // show messages (default true)
	MaxTimestepCuts int  // max dt halvings before a step is declared failed (default 0)
	OutputMinisteps bool // accepted for input compatibility; the reduced solver takes no ministeps
}

// DefaultRunOptions returns the documented defaults
func DefaultRunOptions() *RunOptions {
	return &RunOptions{Verbose: true}
}

// Validate checks the options once at entry
func (o *RunOptions) Validate() (err error) {
	if o.MaxTimestepCuts < 0 {
		return chk.Err("number of timestep cuts cannot be negative. MaxTimestepCuts=%d is invalid", o.MaxTimestepCuts)
	}
	return
}

// Main holds all data for one simulation run: the extracted model data,
// the schedule, and the three parallel result sequences. Main owns every
// State; the solver and the well calculator only borrow them.
type Main struct {

	// input
	Md   *ModelData      // extracted model data (read-only)
	Sch  *Schedule       // schedule
	Opts *RunOptions     // run options
	Dat  *inp.SolverData // nonlinear solver settings
	Sim  *inp.Simulation // originating simulation input; may be nil

	// results: States has N+1 entries, the others N, where N = len(Sch.Steps)
	States   []*State          // accepted states; States[0] == state0
	WellSols [][]*WellSolution // per-step well solutions; zero-filled on failure
	Reports  []*StepReport     // per-step reports, success and failure alike

	// auxiliary
	ShowMsg bool              // show messages
	doms    []*Domain         // one reduced domain per control index
	solvers []*SolverImplicit // one solver per control index
}

// NewMain creates a simulation from an opaque model handle, an initial
// state and a schedule. A model-extraction failure is fatal and returned
// as an error before any timestep can run. dat and lindat may be nil, in
// which case the documented defaults are used.
func NewMain(model interface{}, state0 *State, sch *Schedule, dat *inp.SolverData, lindat *inp.LinSolData, opts *RunOptions) (o *Main, err error) {

	// options
	if opts == nil {
		opts = DefaultRunOptions()
	}
	err = opts.Validate()
	if err != nil {
		return
	}
	if dat == nil {
		dat = new(inp.SolverData)
		dat.SetDefault()
	}
	if lindat == nil {
		lindat = new(inp.LinSolData)
		lindat.SetDefault()
	}

	// extract model data; fatal on failure
	md, err := ExtractModelData(model)
	if err != nil {
		return nil, chk.Err("cannot extract model data:\n%v", err)
	}

	// check initial state and schedule
	if state0.Ncells() != md.Ncells {
		return nil, chk.Err("initial state has %d cells but the model has %d", state0.Ncells(), md.Ncells)
	}
	err = state0.CheckBounds()
	if err != nil {
		return nil, chk.Err("initial state is unphysical:\n%v", err)
	}
	err = sch.Check(md.Ncells)
	if err != nil {
		return
	}

	// allocate main structure
	o = new(Main)
	o.Md = md
	o.Sch = sch
	o.Opts = opts
	o.Dat = dat
	o.ShowMsg = opts.Verbose
	o.States = append(o.States, state0)

	// one reduced domain and solver per control index
	o.doms = make([]*Domain, len(sch.Controls))
	o.solvers = make([]*SolverImplicit, len(sch.Controls))
	for i, wells := range sch.Controls {
		o.doms[i] = NewDomain(md, wells, dat.Stab, lindat)
		o.solvers[i] = NewSolverImplicit(o.doms[i], dat)
	}

	// message
	if o.ShowMsg {
		io.Pf("> Initialisation step completed\n")
		io.Pf(">> ncells=%d, nsteps=%d, ncontrols=%d\n", md.Ncells, len(sch.Steps), len(sch.Controls))
	}
	return
}

// NewMainFromSim creates a simulation directly from input data: the
// initial state comes from the ini block, the schedule from the schedule
// block, and the Simulation itself is the model handle
func NewMainFromSim(sd *inp.Simulation, opts *RunOptions) (o *Main, err error) {

	// initial state
	state0 := NewState(sd.Grid.Ncells, sd.Ini.P0, sd.Ini.Sw0, sd.Ini.So0, sd.Ini.Sg0)

	// schedule
	sch := new(Schedule)
	for _, stp := range sd.Schedule.Steps {
		sch.Steps = append(sch.Steps, StepControl{Dt: stp.Dt, Ctrl: stp.Ctrl})
	}
	sch.Controls = make([][]*Well, len(sd.Schedule.Controls))
	for i, names := range sd.Schedule.Controls {
		for _, name := range names {
			wd := sd.GetWell(name)
			if wd == nil {
				return nil, chk.Err("control %d: cannot find well named %q", i, name)
			}
			w, e := NewWell(wd)
			if e != nil {
				return nil, e
			}
			sch.Controls[i] = append(sch.Controls[i], w)
		}
	}

	// options from input when not given
	if opts == nil {
		opts = DefaultRunOptions()
		opts.MaxTimestepCuts = sd.Solver.MaxCuts
	}

	o, err = NewMain(sd, state0, sch, &sd.Solver, &sd.LinSol, opts)
	if err != nil {
		return
	}
	o.Sim = sd
	return
}

// Run advances all scheduled timesteps. A failed step never aborts the
// run: the previous state is retained, a zero well solution and a failed
// report are recorded, and the next step starts from the retained state.
// The returned error is nil unless the run could not start at all.
func (o *Main) Run() (err error) {

	// message
	if o.ShowMsg {
		io.Pf("> Solving %d timesteps\n", len(o.Sch.Steps))
	}

	// time loop
	t := 0.0
	for i, stp := range o.Sch.Steps {

		// active control
		wells := o.Sch.Controls[stp.Ctrl]
		solver := o.solvers[stp.Ctrl]
		stOld := o.States[i]

		// solve one timestep, cutting dt on failure if allowed
		dt := stp.Dt
		cuts := 0
		var st *State
		var it int
		var status StepStatus
		var detail string
		for {
			st, it, status, detail = solver.Step(stOld, dt)
			if status == Converged || cuts >= o.Opts.MaxTimestepCuts {
				break
			}
			cuts++
			dt *= 0.5
			if o.ShowMsg {
				io.Pfred(". . . cutting timestep (%d): dt = %g . . .\n", cuts, dt)
			}
		}
		t += stp.Dt

		// record results
		if status == Converged {
			o.States = append(o.States, st)
			o.WellSols = append(o.WellSols, CalcWellSolutions(o.Md, st, wells))
			o.Reports = append(o.Reports, &StepReport{Iterations: it, Cuts: cuts})
			if o.ShowMsg {
				io.Pf("step %4d: t = %14.6e  it = %d\n", i+1, t, it)
			}
		} else {
			msg := status.String()
			if detail != "" {
				msg = io.Sf("%v: %v", status, detail)
			}
			o.States = append(o.States, stOld) // no progress: retain previous state
			o.WellSols = append(o.WellSols, ZeroWellSolutions(wells))
			o.Reports = append(o.Reports, &StepReport{Iterations: it, Cuts: cuts, Failed: true, Message: msg})
			if o.ShowMsg {
				io.Pfred("step %4d: t = %14.6e  FAILED: %v\n", i+1, t, msg)
			}
		}
	}
	return
}

// Free releases linear solver resources
func (o *Main) Free() {
	for _, d := range o.doms {
		d.Free()
	}
}
