// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package iodeck implements the ASCII/binary deck spec.md §6 lists: the
// PLOT3D-style structured-grid reader, the BC deck, the run Config record,
// and the residual log writer. Where the teacher reaches for gosl/io to
// read and report on its own .sim deck, this package does the same for the
// case deck this solver reads; where the format is PLOT3D's binary layout
// (a format none of the retrieved examples touch), it falls back to
// encoding/binary, justified in DESIGN.md.
package iodeck

import (
	"bytes"
	"encoding/json"

	"github.com/cpmech/cflow/errs"
	"github.com/cpmech/cflow/integrate"
	"github.com/cpmech/cflow/recon"
	"github.com/cpmech/cflow/thermo"
	"github.com/cpmech/gosl/io"
)

// Config is the single on-disk record spec.md §6 asks for: simulation name
// root, reference state, CFL/Δt schedule, output controls, turbulence
// model selection, linear-solver knobs and wall treatment. It is the JSON
// mirror of integrate.Config plus the fields that belong to the case deck
// rather than the driver itself.
type Config struct {
	Name string `json:"name"`

	Reference thermo.Reference `json:"reference"`
	Gamma     float64          `json:"gamma"`
	Pr        float64          `json:"pr"`

	Implicit           bool    `json:"implicit"`
	GlobalTimestepping bool    `json:"global_timestepping"`
	CFLInitial         float64 `json:"cfl_initial"`
	CFLMax             float64 `json:"cfl_max"`
	CFLRampFactor      float64 `json:"cfl_ramp_factor"`
	Limiter            string  `json:"limiter"`
	MaxRetries         int     `json:"max_retries"`
	TransientRetries   int     `json:"transient_retries"`
	L2RefWindow        int     `json:"l2_ref_window"`

	// TurbulenceModel is "none" (or ""), "wilcox" or "sst"; cmd/cflow maps
	// "sst-des" to the same turb.MenterSST as "sst" (DESFactor left at 0,
	// so no DES length-scale correction) and rejects any other name,
	// "wale-les" included.
	TurbulenceModel string `json:"turbulence_model"`
	WallLaw         bool   `json:"wall_law"`

	LinearSweeps int     `json:"linear_sweeps"`
	LinearTol    float64 `json:"linear_tol"`

	OutputFrequency int      `json:"output_frequency"`
	OutputVars      []string `json:"output_vars"`
	GridFile        string   `json:"grid_file"`
	BCFile          string   `json:"bc_file"`
}

var limiterByName = map[string]recon.LimiterKind{
	"minmod":    recon.Minmod,
	"vanalbada": recon.VanAlbada,
}

// ToIntegrateConfig translates the on-disk record into the driver's Config,
// resolving the string limiter name to its recon.LimiterKind.
func (c Config) ToIntegrateConfig() (integrate.Config, error) {
	kind, ok := limiterByName[c.Limiter]
	if !ok {
		return integrate.Config{}, errs.NewConfigError("iodeck: unknown limiter %q", c.Limiter)
	}
	cfg := integrate.DefaultConfig()
	cfg.Name = c.Name
	cfg.Implicit = c.Implicit
	cfg.GlobalTimestepping = c.GlobalTimestepping
	cfg.Limiter = kind
	if c.OutputFrequency > 0 {
		cfg.OutputFrequency = c.OutputFrequency
	}
	if c.CFLInitial > 0 {
		cfg.CFLInitial = c.CFLInitial
	}
	if c.CFLMax > 0 {
		cfg.CFLMax = c.CFLMax
	}
	if c.CFLRampFactor > 0 {
		cfg.CFLRampFactor = c.CFLRampFactor
	}
	if c.MaxRetries > 0 {
		cfg.MaxRetries = c.MaxRetries
	}
	if c.TransientRetries > 0 {
		cfg.TransientRetries = c.TransientRetries
	}
	if c.L2RefWindow > 0 {
		cfg.L2RefWindow = c.L2RefWindow
	}
	return cfg, nil
}

// NewGas builds the PerfectGasSutherland the case deck describes.
func (c Config) NewGas() *thermo.PerfectGasSutherland {
	gas := thermo.NewPerfectGasSutherland(c.Reference)
	if c.Gamma > 0 {
		gas.Gamma = c.Gamma
	}
	if c.Pr > 0 {
		gas.Pr = c.Pr
	}
	return gas
}

// ReadConfig parses a JSON case deck, the same "one record per case" shape
// gofem's .sim deck plays for the FE solver (spec.md §6).
func ReadConfig(fnamepath string) (Config, error) {
	b, err := io.ReadFile(fnamepath)
	if err != nil {
		return Config{}, errs.NewIOError("iodeck: cannot read config %q: %v", fnamepath, err)
	}
	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		return Config{}, errs.NewConfigError("iodeck: malformed config %q: %v", fnamepath, err)
	}
	return c, nil
}

// WriteConfig serializes c back to fnamepath, e.g. to snapshot the
// effective (post-default) config alongside a run's output.
func WriteConfig(fnamepath string, c Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errs.NewConfigError("iodeck: cannot marshal config: %v", err)
	}
	buf := bytes.NewBuffer(b)
	io.WriteFileV(fnamepath, buf)
	return nil
}
