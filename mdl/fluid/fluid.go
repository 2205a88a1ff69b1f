// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fluid implements a three-phase (water-oil-gas) fluid model
package fluid

import (
	"github.com/cpmech/gosl/fun"
)

// Model holds intrinsic properties of the three reservoir phases and the
// total compressibility of the system. Relative permeabilities follow the
// quadratic approximation kr = S².
type Model struct {

	// densities [kg/m³]
	RhoW float64 // water
	RhoO float64 // oil
	RhoG float64 // gas

	// viscosities [Pa·s]
	MuW float64 // water
	MuO float64 // oil
	MuG float64 // gas

	// compressibility
	Ct float64 // total compressibility [1/Pa]
}

// Init initialises this structure
func (o *Model) Init(prms fun.Params) {
	for _, p := range prms {
		switch p.N {
		case "rhow":
			o.RhoW = p.V
		case "rhoo":
			o.RhoO = p.V
		case "rhog":
			o.RhoG = p.V
		case "muw":
			o.MuW = p.V
		case "muo":
			o.MuO = p.V
		case "mug":
			o.MuG = p.V
		case "ct":
			o.Ct = p.V
		}
	}
}

// GetPrms gets (an example of) parameters
//
//	Input:
//	 example -- returns example of parameters; otherwise returns current parameters
func (o Model) GetPrms(example bool) fun.Params {
	if example {
		return fun.Params{
			&fun.P{N: "rhow", V: 1000.0}, // [kg/m³]
			&fun.P{N: "rhoo", V: 800.0},  // [kg/m³]
			&fun.P{N: "rhog", V: 1.2},    // [kg/m³]
			&fun.P{N: "muw", V: 1e-3},    // [Pa·s]
			&fun.P{N: "muo", V: 5e-3},    // [Pa·s]
			&fun.P{N: "mug", V: 2e-5},    // [Pa·s]
			&fun.P{N: "ct", V: 1e-9},     // [1/Pa]
		}
	}
	return fun.Params{
		&fun.P{N: "rhow", V: o.RhoW},
		&fun.P{N: "rhoo", V: o.RhoO},
		&fun.P{N: "rhog", V: o.RhoG},
		&fun.P{N: "muw", V: o.MuW},
		&fun.P{N: "muo", V: o.MuO},
		&fun.P{N: "mug", V: o.MuG},
		&fun.P{N: "ct", V: o.Ct},
	}
}

// Krel computes the quadratic relative permeability of one phase
func Krel(s float64) float64 {
	return s * s
}

// Mobility computes the mobility λ = kr/μ of all three phases
func (o Model) Mobility(sw, so, sg float64) (λw, λo, λg float64) {
	λw = Krel(sw) / o.MuW
	λo = Krel(so) / o.MuO
	λg = Krel(sg) / o.MuG
	return
}
