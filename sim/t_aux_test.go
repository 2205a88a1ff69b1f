// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/OilCoder/gores/inp"
	"github.com/OilCoder/gores/mdl/fluid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// testFluid returns the example fluid model
func testFluid() (flu fluid.Model) {
	flu.Init(flu.GetPrms(true))
	return
}

// testBundle returns a minimal model handle with uniform porosity
func testBundle(ncells int, phi float64) *Bundle {
	b := &Bundle{Ncells: ncells, Flu: testFluid()}
	b.CellVol = make([]float64, ncells)
	b.Phi = make([]float64, ncells)
	b.Perm = make([]float64, ncells)
	for i := 0; i < ncells; i++ {
		b.CellVol[i] = 1000.0
		b.Phi[i] = phi
		b.Perm[i] = 1e-13
	}
	return b
}

// testState returns a physical initial state
func testState(ncells int) *State {
	return NewState(ncells, 3.0e7, 0.3, 0.6, 0.1)
}

// testSolverData returns default solver settings
func testSolverData() *inp.SolverData {
	dat := new(inp.SolverData)
	dat.SetDefault()
	return dat
}

// testLinSolData returns default linear solver settings
func testLinSolData() *inp.LinSolData {
	dat := new(inp.LinSolData)
	dat.SetDefault()
	return dat
}
