// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"

	"github.com/OilCoder/gores/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// SolverImplicit advances the reservoir state over one timestep with
// Newton-Raphson iterations on the reduced material-balance system
type SolverImplicit struct {
	Dom *Domain         // reduced domain (equations + linear system)
	Dat *inp.SolverData // nonlinear solver settings
}

// NewSolverImplicit returns a new implicit solver
func NewSolverImplicit(dom *Domain, dat *inp.SolverData) *SolverImplicit {
	return &SolverImplicit{Dom: dom, Dat: dat}
}

// Step solves one timestep starting from stOld. It returns the new state,
// the number of iterations performed, the terminal status and a failure
// detail message (empty on success). stOld is never mutated; on failure
// the returned state must be discarded by the caller.
//
//	Note: dt must be positive; the schedule is validated before the time
//	loop starts, so a non-positive dt here is a programming error
func (o *SolverImplicit) Step(stOld *State, dt float64) (st *State, it int, status StepStatus, detail string) {

	// check
	if dt <= 0 {
		chk.Panic("Step: dt must be positive. dt=%g is invalid", dt)
	}

	// start from a copy of the previous accepted state
	st = stOld.GetCopy()
	dat := o.Dat

	// no unknowns: nothing to converge
	if o.Dom.Ny == 0 {
		status = Converged
		return
	}

	// message
	if dat.ShowR {
		io.Pf("\n%4s%23s\n", "it", "largFb")
	}

	// iterations
	var largFb float64
	for it = 0; it < dat.NmaxIt; it++ {

		// assemble right-hand side vector (fb) with negative of residuals
		la.VecFill(o.Dom.Fb, 0)
		err := o.Dom.AddToRhs(o.Dom.Fb, st, stOld, dt)
		if err != nil {
			chk.Panic("Step: cannot assemble residuals:\n%v", err)
		}

		// find largest absolute component of fb
		largFb = la.VecLargest(o.Dom.Fb, 1)
		if dat.ShowR {
			io.Pf("%4d%23.15e\n", it, largFb)
		}

		// check convergence before solving: an already-converged state is
		// accepted with the current iterate
		if largFb < dat.FbTol {
			status = Converged
			return
		}

		// assemble Jacobian matrix and solve for the correction
		err = o.Dom.AddToKb(dt)
		if err != nil {
			chk.Panic("Step: cannot assemble Jacobian:\n%v", err)
		}
		err = o.Dom.Solve()
		if err != nil {
			status = FailedLinearSolve
			detail = err.Error()
			return
		}
		for _, v := range o.Dom.Wb {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				status = FailedLinearSolve
				detail = "correction system produced a non-finite increment"
				return
			}
		}

		// apply damped, bounds-respecting update
		st = UpdateState(st, o.Dom.Cells, o.Dom.Wb, dat.DampFac, dat.WaterFrac)
		err = st.CheckBounds()
		if err != nil {
			status = FailedUnphysical
			detail = err.Error()
			return
		}
	}

	// iteration budget exhausted
	status = FailedNonconvergence
	detail = io.Sf("it = %d, largFb = %g", it, largFb)
	return
}
