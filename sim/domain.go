// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"sort"

	"github.com/OilCoder/gores/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Domain holds the reduced material-balance system restricted to
// well-affected cells. One equation (oil-phase accumulation) is assembled
// per completion cell; the full-field connectivity is deliberately not
// discretised, which keeps the linear system small (typically < 20
// unknowns). The Jacobian is diagonal; a small stabilisation constant is
// added uniformly to guarantee non-singularity.
type Domain struct {

	// data
	Md     *ModelData // read-only model data (lent by Main)
	Wells  []*Well    // active wells under this control
	LinDat *inp.LinSolData

	// equations
	Cells   []int       // sorted unique well-affected cell indices
	Cell2eq map[int]int // cell index → equation number
	Ny      int         // number of unknowns
	Stab    float64     // stabilisation constant on the Jacobian diagonal

	// linear system
	Kb       *la.Triplet // Jacobian == dRdy
	Fb       []float64   // negative of residuals
	Wb       []float64   // δy (Newton correction)
	LinSol   la.LinSol   // linear solver
	InitLSol bool        // linear solver needs to be initialised before use
}

// NewDomain allocates the reduced domain for one active well set
func NewDomain(md *ModelData, wells []*Well, stab float64, lindat *inp.LinSolData) (o *Domain) {

	// collect unique well cells, sorted for determinism
	o = new(Domain)
	o.Md = md
	o.Wells = wells
	o.LinDat = lindat
	o.Stab = stab
	o.Cell2eq = make(map[int]int)
	for _, w := range wells {
		for _, c := range w.Cells {
			if _, seen := o.Cell2eq[c]; !seen {
				o.Cell2eq[c] = -1 // mark; renumber after sorting
				o.Cells = append(o.Cells, c)
			}
		}
	}
	sort.Ints(o.Cells)
	for eq, c := range o.Cells {
		o.Cell2eq[c] = eq
	}

	// linear system and linear solver
	o.Ny = len(o.Cells)
	o.Kb = new(la.Triplet)
	o.Fb = make([]float64, o.Ny)
	o.Wb = make([]float64, o.Ny)
	if o.Ny > 0 {
		o.Kb.Init(o.Ny, o.Ny, o.Ny)
	}
	o.LinSol = la.GetSolver(lindat.Name)
	o.InitLSol = true
	return
}

// Free releases the linear solver resources
func (o *Domain) Free() {
	o.LinSol.Free()
}

// AddToRhs assembles fb with the negative of the residuals:
//
//	R(c) = φ(c)·ρo·(So(c) - SoOld(c))/dt - Σ qsrc·sign  over wells completing in c
//
// dt must be positive; dt == 0 is rejected here, before any division
func (o *Domain) AddToRhs(fb []float64, st, stOld *State, dt float64) (err error) {
	if dt <= 0 {
		return chk.Err("dt must be positive. dt=%g is invalid", dt)
	}
	ρo := o.Md.Flu.RhoO
	for eq, c := range o.Cells {
		r := o.Md.Phi[c] * ρo * (st.So[c] - stOld.So[c]) / dt
		fb[eq] = -r
	}
	for _, w := range o.Wells {
		for _, c := range w.Cells {
			fb[o.Cell2eq[c]] += w.Qsrc * w.Sign
		}
	}
	return
}

// AddToKb assembles the (diagonal) Jacobian matrix:
//
//	∂R/∂So ≈ φ(c)·ρo/dt + stab
func (o *Domain) AddToKb(dt float64) (err error) {
	if dt <= 0 {
		return chk.Err("dt must be positive. dt=%g is invalid", dt)
	}
	ρo := o.Md.Flu.RhoO
	o.Kb.Start()
	for eq, c := range o.Cells {
		o.Kb.Put(eq, eq, o.Md.Phi[c]*ρo/dt+o.Stab)
	}
	return
}

// Solve computes the Newton correction Wb from the assembled Kb and Fb
func (o *Domain) Solve() (err error) {

	// initialise linear solver
	if o.InitLSol {
		err = o.LinSol.InitR(o.Kb, o.LinDat.Symmetric, o.LinDat.Verbose, o.LinDat.Timing)
		if err != nil {
			return chk.Err("cannot initialise linear solver:\n%v", err)
		}
		o.InitLSol = false
	}

	// perform factorisation
	err = o.LinSol.Fact()
	if err != nil {
		return chk.Err("factorisation failed:\n%v", err)
	}

	// solve for wb := δy
	err = o.LinSol.SolveR(o.Wb, o.Fb, false)
	if err != nil {
		return chk.Err("solve failed:\n%v", err)
	}
	return
}
