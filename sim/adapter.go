// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/OilCoder/gores/inp"
	"github.com/OilCoder/gores/mdl/fluid"
	"github.com/OilCoder/gores/mdl/rock"
	"github.com/cpmech/gosl/chk"
)

// ModelData holds the read-only grid/rock/fluid data lent to the equation
// builder and the well solution calculator. It is extracted once at run
// start and never modified afterwards.
type ModelData struct {
	Ncells  int         // number of cells
	CellVol []float64   // [ncells] cell volumes [m³]
	Phi     []float64   // [ncells] porosity
	Perm    []float64   // [ncells] permeability [m²]
	Flu     fluid.Model // fluid properties
	Phases  []string    // phase names
}

// Model gathers grid geometry with rock and fluid models; one of the
// concrete representations accepted by ExtractModelData
type Model struct {
	Ncells  int
	CellVol []float64
	Rock    *rock.Model
	Flu     *fluid.Model
}

// Bundle is the minimal fallback representation: bare grid/rock/fluid
// fields with per-cell rock arrays
type Bundle struct {
	Ncells  int
	CellVol []float64
	Phi     []float64
	Perm    []float64
	Flu     fluid.Model
}

// extractor attempts to build ModelData from one concrete representation
type extractor func(m interface{}) (*ModelData, error)

// ExtractModelData interprets an opaque model handle. The known concrete
// representations are attempted in a fixed priority order and the first
// structurally valid extraction wins. Failure here is fatal to the run:
// no state can be simulated without model data.
func ExtractModelData(m interface{}) (md *ModelData, err error) {
	for _, try := range []extractor{fromSimulation, fromModel, fromBundle} {
		md, err = try(m)
		if err == nil {
			return
		}
	}
	return nil, chk.Err("cannot extract model data from %T", m)
}

// fromSimulation extracts from a full *inp.Simulation
func fromSimulation(m interface{}) (*ModelData, error) {
	sd, ok := m.(*inp.Simulation)
	if !ok {
		return nil, chk.Err("not an *inp.Simulation")
	}
	if sd.Grid.Ncells < 1 || sd.Grid.CellVol <= 0 {
		return nil, chk.Err("simulation grid block is invalid")
	}
	if sd.RockModel == nil || sd.FluidModel == nil {
		return nil, chk.Err("simulation material models are not initialised")
	}
	md := new(ModelData)
	md.Ncells = sd.Grid.Ncells
	md.CellVol = make([]float64, md.Ncells)
	for i := 0; i < md.Ncells; i++ {
		md.CellVol[i] = sd.Grid.CellVol
	}
	md.Phi, md.Perm = sd.RockModel.Fill(md.Ncells)
	md.Flu = *sd.FluidModel
	md.Phases = []string{"water", "oil", "gas"}
	return md, nil
}

// fromModel extracts from a *Model carrying material models
func fromModel(m interface{}) (*ModelData, error) {
	mm, ok := m.(*Model)
	if !ok {
		return nil, chk.Err("not a *Model")
	}
	if mm.Ncells < 1 || len(mm.CellVol) != mm.Ncells {
		return nil, chk.Err("model grid fields are invalid")
	}
	if mm.Rock == nil || mm.Flu == nil {
		return nil, chk.Err("model is missing rock or fluid data")
	}
	md := new(ModelData)
	md.Ncells = mm.Ncells
	md.CellVol = make([]float64, md.Ncells)
	copy(md.CellVol, mm.CellVol)
	md.Phi, md.Perm = mm.Rock.Fill(md.Ncells)
	md.Flu = *mm.Flu
	md.Phases = []string{"water", "oil", "gas"}
	return md, nil
}

// fromBundle extracts from the minimal bare-fields representation
func fromBundle(m interface{}) (*ModelData, error) {
	bb, ok := m.(*Bundle)
	if !ok {
		return nil, chk.Err("not a *Bundle")
	}
	if bb.Ncells < 1 {
		return nil, chk.Err("bundle has no cells")
	}
	if len(bb.CellVol) != bb.Ncells || len(bb.Phi) != bb.Ncells || len(bb.Perm) != bb.Ncells {
		return nil, chk.Err("bundle arrays do not match ncells=%d", bb.Ncells)
	}
	md := new(ModelData)
	md.Ncells = bb.Ncells
	md.CellVol = make([]float64, md.Ncells)
	md.Phi = make([]float64, md.Ncells)
	md.Perm = make([]float64, md.Ncells)
	copy(md.CellVol, bb.CellVol)
	copy(md.Phi, bb.Phi)
	copy(md.Perm, bb.Perm)
	md.Flu = bb.Flu
	md.Phases = []string{"water", "oil", "gas"}
	return md, nil
}
