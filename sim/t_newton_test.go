// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_newton01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newton01. trivial convergence")

	md, err := ExtractModelData(testBundle(2, 0.2))
	if err != nil {
		tst.Errorf("extraction failed:\n%v", err)
		return
	}

	// no source terms: the accumulation residual vanishes at the previous
	// state and the step converges without a single linear solve
	w := &Well{Name: "P1", Control: BhpControl, Cells: []int{0}, WI: []float64{1e-11}, Target: 2e7, Sign: -1}
	dom := NewDomain(md, []*Well{w}, 1e-8, testLinSolData())
	defer dom.Free()
	solver := NewSolverImplicit(dom, testSolverData())

	stOld := testState(2)
	st, it, status, detail := solver.Step(stOld, 86400.0)
	io.Pforan("it=%d status=%v detail=%q\n", it, status, detail)

	chk.IntAssert(int(status), int(Converged))
	chk.IntAssert(it, 0)
	chk.StrAssert(detail, "")
	chk.Vector(tst, "so unchanged", 1e-15, st.So, stOld.So)

	// converged states satisfy the physical bounds
	if err := st.CheckBounds(); err != nil {
		tst.Errorf("accepted state must be physical:\n%v", err)
	}
}

func Test_newton02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newton02. nonconvergence within the iteration budget")

	md, err := ExtractModelData(testBundle(1, 0.2))
	if err != nil {
		tst.Errorf("extraction failed:\n%v", err)
		return
	}

	// a persistent source term keeps the residual above tolerance: the
	// damped update cannot remove it within NmaxIt iterations
	w := &Well{Name: "P1", Control: BhpControl, Cells: []int{0}, WI: []float64{1e-11}, Target: 2e7, Sign: -1, Qsrc: 1.0}
	dom := NewDomain(md, []*Well{w}, 1e-8, testLinSolData())
	defer dom.Free()
	dat := testSolverData()
	solver := NewSolverImplicit(dom, dat)

	stOld := testState(1)
	st, it, status, detail := solver.Step(stOld, 86400.0)
	io.Pforan("it=%d status=%v detail=%q\n", it, status, detail)

	chk.IntAssert(int(status), int(FailedNonconvergence))
	chk.IntAssert(it, dat.NmaxIt)
	if detail == "" {
		tst.Errorf("nonconvergence must carry a detail message")
		return
	}

	// the previous state is never mutated by a failed step
	chk.Scalar(tst, "stOld so untouched", 1e-17, stOld.So[0], 0.6)
	if st == stOld {
		tst.Errorf("Step must not return the input state")
	}
}

func Test_newton03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newton03. unphysical state detection")

	md, err := ExtractModelData(testBundle(1, 0.2))
	if err != nil {
		tst.Errorf("extraction failed:\n%v", err)
		return
	}
	w := &Well{Name: "P1", Control: BhpControl, Cells: []int{0}, WI: []float64{1e-11}, Target: 2e7, Sign: -1, Qsrc: 1.0}
	dom := NewDomain(md, []*Well{w}, 1e-8, testLinSolData())
	defer dom.Free()
	solver := NewSolverImplicit(dom, testSolverData())

	// a negative pressure survives the saturation-only update and must be
	// caught by the bounds check right after the first update
	stOld := testState(1)
	stOld.Pressure[0] = -5.0
	_, it, status, detail := solver.Step(stOld, 86400.0)
	io.Pforan("it=%d status=%v detail=%q\n", it, status, detail)

	chk.IntAssert(int(status), int(FailedUnphysical))
	chk.IntAssert(it, 0)
	if detail == "" {
		tst.Errorf("unphysical failure must carry a detail message")
	}
}

func Test_newton04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newton04. singular correction system")

	// zero porosity and zero stabilisation make the Jacobian diagonal
	// exactly zero; the source term keeps the residual nonzero, so the
	// step must fail at the linear solve, not converge
	md, err := ExtractModelData(testBundle(1, 0.0))
	if err != nil {
		tst.Errorf("extraction failed:\n%v", err)
		return
	}
	w := &Well{Name: "P1", Control: BhpControl, Cells: []int{0}, WI: []float64{1e-11}, Target: 2e7, Sign: -1, Qsrc: 1.0}
	dom := NewDomain(md, []*Well{w}, 0, testLinSolData())
	defer dom.Free()
	solver := NewSolverImplicit(dom, testSolverData())

	_, it, status, detail := solver.Step(testState(1), 86400.0)
	io.Pforan("it=%d status=%v detail=%q\n", it, status, detail)

	chk.IntAssert(int(status), int(FailedLinearSolve))
	chk.IntAssert(it, 0)
	if detail == "" {
		tst.Errorf("linear solve failure must carry a detail message")
	}
}
