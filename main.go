// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Gores runs a reduced implicit reservoir simulation from a (.sim) file:
// an implicit Newton-Raphson material-balance solve restricted to
// well-affected cells, advanced through a production/injection schedule.
package main

import (
	"github.com/OilCoder/gores/inp"
	"github.com/OilCoder/gores/sim"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			if chk.Verbose {
				for i := 5; i > 3; i-- {
					chk.CallerInfo(i)
				}
			}
		}
	}()

	// input arguments
	fnamepath, _ := io.ArgToFilename(0, "inp/data/res01", ".sim", true)
	verbose := io.ArgToBool(1, true)
	saveSummary := io.ArgToBool(2, true)

	// message
	if verbose {
		io.PfWhite("\nGores -- Reduced Implicit Reservoir Simulator\n")
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"save summary", "saveSummary", saveSummary,
		))
	}

	// read input data
	sd := inp.ReadSim(fnamepath, saveSummary)

	// allocate simulation
	opts := sim.DefaultRunOptions()
	opts.Verbose = verbose
	opts.MaxTimestepCuts = sd.Solver.MaxCuts
	m, err := sim.NewMainFromSim(sd, opts)
	if err != nil {
		chk.Panic("cannot allocate simulation:\n%v", err)
	}
	defer m.Free()

	// run simulation
	err = m.Run()
	if err != nil {
		chk.Panic("simulation failed:\n%v", err)
	}

	// report well solutions
	if verbose {
		io.Pf("\n%10s%6s%15s%15s%15s%15s\n", "well", "step", "Qw", "Qo", "Qg", "Bhp")
		for i, wsols := range m.WellSols {
			for _, ws := range wsols {
				io.Pf("%10s%6d%15.6e%15.6e%15.6e%15.6e\n", ws.Name, i+1, ws.Qw, ws.Qo, ws.Qg, ws.Bhp)
			}
		}
		nfail := 0
		for _, r := range m.Reports {
			if r.Failed {
				nfail++
			}
		}
		if nfail > 0 {
			io.Pfred("\n%d of %d steps failed\n", nfail, len(m.Reports))
		} else {
			io.Pfgreen("\nall %d steps converged\n", len(m.Reports))
		}
	}

	// save summary
	if saveSummary {
		sum := sim.NewSummary(sd.Data.Desc, m)
		err = sum.Save(sd.DirOut, sd.Key, sd.EncType)
		if err != nil {
			chk.Panic("cannot save summary:\n%v", err)
		}
		if verbose {
			io.Pf("summary saved to %s\n", sd.DirOut)
		}
	}
}
