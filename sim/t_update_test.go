// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_update01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("update01. damped update with re-split")

	st := testState(3)
	cells := []int{1}
	δ := []float64{10.0}

	nu := UpdateState(st, cells, δ, 0.001, 0.3)

	// so perturbed by damp·δ = 0.01, then re-split and renormalised
	so := 0.6 + 0.001*10.0
	rem := 1.0 - so
	sw := 0.3 * rem
	sg := rem - sw
	sum := so + sw + sg
	chk.Scalar(tst, "so", 1e-15, nu.So[1], so/sum)
	chk.Scalar(tst, "sw", 1e-15, nu.Sw[1], sw/sum)
	chk.Scalar(tst, "sg", 1e-15, nu.Sg[1], sg/sum)
	chk.Scalar(tst, "sum", 1e-15, nu.Sw[1]+nu.So[1]+nu.Sg[1], 1.0)

	// untouched cells keep their values, pressure everywhere unchanged
	chk.Scalar(tst, "so cell 0", 1e-17, nu.So[0], 0.6)
	chk.Vector(tst, "pressure", 1e-15, nu.Pressure, st.Pressure)

	// input state not mutated
	chk.Scalar(tst, "input so", 1e-17, st.So[1], 0.6)
	chk.Scalar(tst, "input sw", 1e-17, st.Sw[1], 0.3)
}

func Test_update02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("update02. clamping at the saturation bounds")

	st := testState(1)
	cells := []int{0}

	// huge positive increment clamps at soMax
	nu := UpdateState(st, cells, []float64{1e6}, 0.001, 0.3)
	chk.Scalar(tst, "so clamped high", 1e-12, nu.So[0], 0.99)
	chk.Scalar(tst, "sum", 1e-15, nu.Sw[0]+nu.So[0]+nu.Sg[0], 1.0)
	if err := nu.CheckBounds(); err != nil {
		tst.Errorf("clamped state must be physical:\n%v", err)
		return
	}

	// huge negative increment clamps at soMin
	nu = UpdateState(st, cells, []float64{-1e6}, 0.001, 0.3)
	chk.Scalar(tst, "so clamped low", 1e-12, nu.So[0], 0.01)
	chk.Scalar(tst, "sw", 1e-12, nu.Sw[0], 0.3*0.99)
	chk.Scalar(tst, "sum", 1e-15, nu.Sw[0]+nu.So[0]+nu.Sg[0], 1.0)
}
