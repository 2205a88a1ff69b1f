// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"

	"github.com/OilCoder/gores/inp"
	"github.com/cpmech/gosl/chk"
)

// MinBhp is the minimum physical bottom-hole pressure [Pa] (≈ 1 bar).
// All computed BHP values are floored at this bound.
const MinBhp = 1e5

// WellControl defines how a well is operated
type WellControl int

const (
	// BhpControl operates the well at a fixed bottom-hole pressure
	BhpControl WellControl = iota

	// RateControl operates the well at a fixed total rate
	RateControl
)

// String returns the name of the control mode
func (o WellControl) String() string {
	if o == RateControl {
		return "rate"
	}
	return "bhp"
}

// Well holds the definition of one well under one schedule control.
// Wells are read-only to the solver.
type Well struct {
	Name       string      // well name
	Control    WellControl // control mode
	Cells      []int       // completion cell indices
	WI         []float64   // Peaceman well index per completion
	Target     float64     // target BHP [Pa] or total rate [m³/s]
	Sign       float64     // +1 injector, -1 producer
	Qsrc       float64     // source-term strength in the material balance
	PhaseSplit []float64   // rate-control composition [w,o,g]; may be nil
}

// NewWell builds a Well from its input definition
func NewWell(wd *inp.WellData) (o *Well, err error) {
	o = new(Well)
	o.Name = wd.Name
	switch wd.Control {
	case "bhp":
		o.Control = BhpControl
	case "rate":
		o.Control = RateControl
	default:
		return nil, chk.Err("well %q: unknown control %q", wd.Name, wd.Control)
	}
	o.Cells = make([]int, len(wd.Cells))
	o.WI = make([]float64, len(wd.WI))
	copy(o.Cells, wd.Cells)
	copy(o.WI, wd.WI)
	o.Target = wd.Target
	o.Sign = wd.Sign
	o.Qsrc = wd.Qsrc
	if wd.PhaseSplit != nil {
		o.PhaseSplit = make([]float64, len(wd.PhaseSplit))
		copy(o.PhaseSplit, wd.PhaseSplit)
	}
	return
}

// WellSolution holds per-well production/injection results for one
// timestep. Producers carry negative rates, injectors non-negative ones.
type WellSolution struct {
	Name string  // well name
	Qw   float64 // water rate [m³/s]
	Qo   float64 // oil rate [m³/s]
	Qg   float64 // gas rate [m³/s]
	Bhp  float64 // bottom-hole pressure [Pa]
}

// CalcWellSolutions post-processes a converged state into per-well rates
// and bottom-hole pressures
func CalcWellSolutions(md *ModelData, st *State, wells []*Well) (res []*WellSolution) {
	res = make([]*WellSolution, len(wells))
	for i, w := range wells {
		res[i] = calcOneWell(md, st, w)
	}
	return
}

// ZeroWellSolutions returns all-zero solutions for a failed timestep;
// well names are retained so the output arrays stay aligned
func ZeroWellSolutions(wells []*Well) (res []*WellSolution) {
	res = make([]*WellSolution, len(wells))
	for i, w := range wells {
		res[i] = &WellSolution{Name: w.Name}
	}
	return
}

func calcOneWell(md *ModelData, st *State, w *Well) (ws *WellSolution) {
	ws = &WellSolution{Name: w.Name}
	switch w.Control {

	case BhpControl:
		// rates from drawdown at each completion; kr ≈ S², λ = kr/μ
		for j, c := range w.Cells {
			drawdown := st.Pressure[c] - w.Target
			λw, λo, λg := md.Flu.Mobility(st.Sw[c], st.So[c], st.Sg[c])
			ws.Qw += w.WI[j] * λw * drawdown
			ws.Qo += w.WI[j] * λo * drawdown
			ws.Qg += w.WI[j] * λg * drawdown
		}
		// sign convention: producers deliver negative rates, injectors
		// non-negative ones
		if w.Sign < 0 {
			ws.Qw = -math.Abs(ws.Qw)
			ws.Qo = -math.Abs(ws.Qo)
			ws.Qg = -math.Abs(ws.Qg)
		} else {
			ws.Qw = math.Max(ws.Qw, 0)
			ws.Qo = math.Max(ws.Qo, 0)
			ws.Qg = math.Max(ws.Qg, 0)
		}
		// BHP wells report the target as-is (the target is the operating
		// pressure, not a derived quantity)
		ws.Bhp = w.Target

	case RateControl:
		// distribute the total target rate across phases
		split := w.PhaseSplit
		if split == nil {
			split = []float64{0, 1, 0} // default: 100% oil
		}
		ws.Qw = w.Sign * w.Target * split[0]
		ws.Qo = w.Sign * w.Target * split[1]
		ws.Qg = w.Sign * w.Target * split[2]
		// back-compute BHP by inverting the Peaceman relation using the
		// oil mobility only; zero WI or zero mobility short-circuits to
		// the reservoir pressure instead of dividing by zero
		c := w.Cells[0]
		p := st.Pressure[c]
		_, λo, _ := md.Flu.Mobility(st.Sw[c], st.So[c], st.Sg[c])
		wi := w.WI[0]
		if wi == 0 || λo == 0 {
			ws.Bhp = p
		} else {
			ws.Bhp = p - w.Target/(wi*λo)*w.Sign
		}
		// floor computed values at the minimum physical bound
		ws.Bhp = math.Max(ws.Bhp, MinBhp)
	}
	return
}
