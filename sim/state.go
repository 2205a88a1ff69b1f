// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sim implements the reduced implicit reservoir simulator: an
// implicit (Newton-Raphson) material-balance solve restricted to
// well-affected cells, advanced through a production/injection schedule
package sim

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// saturation sum tolerance
const satSumTol = 1e-9

// State holds the reservoir primary variables at one instant: pressure and
// the water/oil/gas saturations of every cell. States are treated as
// immutable snapshots: one is produced per accepted timestep and stored in
// the append-only history kept by Main.
type State struct {
	Pressure []float64 // [ncells] pressure [Pa]
	Sw       []float64 // [ncells] water saturation
	So       []float64 // [ncells] oil saturation
	Sg       []float64 // [ncells] gas saturation
}

// NewState creates a state with uniform initial values
func NewState(ncells int, p0, sw0, so0, sg0 float64) (o *State) {
	o = new(State)
	o.Pressure = make([]float64, ncells)
	o.Sw = make([]float64, ncells)
	o.So = make([]float64, ncells)
	o.Sg = make([]float64, ncells)
	for i := 0; i < ncells; i++ {
		o.Pressure[i] = p0
		o.Sw[i] = sw0
		o.So[i] = so0
		o.Sg[i] = sg0
	}
	return
}

// Ncells returns the number of cells
func (o *State) Ncells() int {
	return len(o.Pressure)
}

// GetCopy returns a deep copy of this state
func (o *State) GetCopy() (cpy *State) {
	n := o.Ncells()
	cpy = new(State)
	cpy.Pressure = make([]float64, n)
	cpy.Sw = make([]float64, n)
	cpy.So = make([]float64, n)
	cpy.Sg = make([]float64, n)
	copy(cpy.Pressure, o.Pressure)
	copy(cpy.Sw, o.Sw)
	copy(cpy.So, o.So)
	copy(cpy.Sg, o.Sg)
	return
}

// CheckBounds returns an error if any primary variable is unphysical:
// negative pressure, saturation outside [0,1], or a saturation triple not
// summing to one (within satSumTol). NaNs are rejected as well.
func (o *State) CheckBounds() (err error) {
	for i := 0; i < o.Ncells(); i++ {
		p := o.Pressure[i]
		if math.IsNaN(p) || p < 0 {
			return chk.Err("cell %d: pressure %g is unphysical", i, p)
		}
		sw, so, sg := o.Sw[i], o.So[i], o.Sg[i]
		for _, s := range []float64{sw, so, sg} {
			if math.IsNaN(s) || s < 0 || s > 1 {
				return chk.Err("cell %d: saturations [%g,%g,%g] are out of [0,1]", i, sw, so, sg)
			}
		}
		if math.Abs(sw+so+sg-1.0) > satSumTol {
			return chk.Err("cell %d: saturations [%g,%g,%g] do not sum to one", i, sw, so, sg)
		}
	}
	return
}
