// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

// saturation clamp bounds applied to the oil saturation after each update
const (
	soMin = 0.01
	soMax = 0.99
)

// UpdateState returns a new state with a damped Newton increment applied
// to the oil saturation of the well-affected cells. The increment is
// scaled by damp and the result clamped to [soMin, soMax]; the remaining
// saturation is re-split with waterFrac going to water and the rest to
// gas; the triple is then renormalised to sum to exactly one. Pressure is
// left unchanged by this reduced model. The input state is not mutated.
//
//	Note: the waterFrac re-split is a heuristic with no physical
//	derivation; it is a configurable placeholder, not a contract.
func UpdateState(st *State, cells []int, δ []float64, damp, waterFrac float64) (nu *State) {
	nu = st.GetCopy()
	for i, c := range cells {
		so := nu.So[c] + damp*δ[i]
		if so < soMin {
			so = soMin
		}
		if so > soMax {
			so = soMax
		}
		rem := 1.0 - so
		sw := waterFrac * rem
		sg := rem - sw
		sum := so + sw + sg
		nu.So[c] = so / sum
		nu.Sw[c] = sw / sum
		nu.Sg[c] = sg / sum
	}
	return
}
