// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

// StepStatus is the terminal state of one timestep solve
type StepStatus int

const (
	// Converging means the Newton loop is still running
	Converging StepStatus = iota

	// Converged means the residual inf-norm dropped below tolerance
	Converged

	// FailedLinearSolve means the correction system was singular or
	// otherwise unsolvable
	FailedLinearSolve

	// FailedUnphysical means the post-update state violated physical
	// bounds (negative pressure or saturation outside [0,1])
	FailedUnphysical

	// FailedNonconvergence means the iteration budget was exhausted
	FailedNonconvergence
)

// String returns a description of the status
func (o StepStatus) String() string {
	switch o {
	case Converging:
		return "converging"
	case Converged:
		return "converged"
	case FailedLinearSolve:
		return "linear solver failed"
	case FailedUnphysical:
		return "unphysical values detected"
	case FailedNonconvergence:
		return "max number of iterations reached"
	}
	return "unknown"
}

// StepReport records the outcome of one timestep. One report is always
// produced per scheduled step, on success and on failure alike.
type StepReport struct {
	Iterations int    // number of Newton iterations performed
	Cuts       int    // number of timestep cuts used
	Failed     bool   // step failed; the previous state was retained
	Message    string // failure message; empty on success
}
