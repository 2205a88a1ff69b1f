// Copyright 2026 The Gores Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Summary records the results of one run for later inspection: the full
// state history and the per-step well solutions and reports
type Summary struct {
	Desc     string            // description
	States   []*State          // accepted states, States[0] == state0
	WellSols [][]*WellSolution // per-step well solutions
	Reports  []*StepReport     // per-step reports
}

// NewSummary collects the results of a completed run
func NewSummary(desc string, m *Main) *Summary {
	return &Summary{Desc: desc, States: m.States, WellSols: m.WellSols, Reports: m.Reports}
}

// NFailed returns the number of failed steps
func (o *Summary) NFailed() (n int) {
	for _, r := range o.Reports {
		if r.Failed {
			n++
		}
	}
	return
}

// Save saves the summary under dirout with filename key fnkey, encoded
// with enctype ("gob" or "json")
func (o *Summary) Save(dirout, fnkey, enctype string) (err error) {
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return chk.Err("cannot create directory %q:\n%v", dirout, err)
	}
	fil, err := os.Create(filepath.Join(dirout, fnkey+".sum."+enctype))
	if err != nil {
		return chk.Err("cannot create summary file:\n%v", err)
	}
	defer fil.Close()
	enc := getEncoder(fil, enctype)
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}
	return
}

// Read reads a summary back
func (o *Summary) Read(dirout, fnkey, enctype string) (err error) {
	fil, err := os.Open(filepath.Join(dirout, fnkey+".sum."+enctype))
	if err != nil {
		return chk.Err("cannot open summary file:\n%v", err)
	}
	defer fil.Close()
	dec := getDecoder(fil, enctype)
	err = dec.Decode(o)
	if err != nil {
		return chk.Err("cannot decode summary:\n%v", err)
	}
	return
}

// getEncoder returns a new encoder
func getEncoder(w goio.Writer, enctype string) utl.Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// getDecoder returns a new decoder
func getDecoder(r goio.Reader, enctype string) utl.Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}
