// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rock implements a uniform porosity/permeability rock model
package rock

import (
	"github.com/cpmech/gosl/fun"
)

// Model holds rock properties, uniform over the grid
type Model struct {
	Phi  float64 // porosity [-]
	Perm float64 // absolute permeability [m²]
}

// Init initialises this structure
func (o *Model) Init(prms fun.Params) {
	for _, p := range prms {
		switch p.N {
		case "phi":
			o.Phi = p.V
		case "perm":
			o.Perm = p.V
		}
	}
}

// GetPrms gets (an example of) parameters
func (o Model) GetPrms(example bool) fun.Params {
	if example {
		return fun.Params{
			&fun.P{N: "phi", V: 0.2},    // [-]
			&fun.P{N: "perm", V: 1e-13}, // [m²] ≈ 100 mD
		}
	}
	return fun.Params{
		&fun.P{N: "phi", V: o.Phi},
		&fun.P{N: "perm", V: o.Perm},
	}
}

// Fill expands the uniform properties into per-cell arrays
func (o Model) Fill(ncells int) (phi, perm []float64) {
	phi = make([]float64, ncells)
	perm = make([]float64, ncells)
	for i := 0; i < ncells; i++ {
		phi[i] = o.Phi
		perm[i] = o.Perm
	}
	return
}
