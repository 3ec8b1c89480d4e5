/*
Copyright © 2019 the Ascent authors.
This file is part of Ascent.

Ascent is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Ascent is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Ascent.  If not, see <http://www.gnu.org/licenses/>.
*/

package ascent

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/ascent/science/eos"
	"github.com/spatialmodel/ascent/science/oxtox"
)

// Result is a computed dive.
type Result struct {
	Name     string
	Segments []DiveSegment
	Runtime  int

	// TTS is the time to surface [min] at the end of the last level.
	TTS int

	// DecoTime is the total time [min] spent at decompression stops.
	DecoTime int

	AlternativeAscents map[int][]DiveSegment

	// CNS [%] and OTU are the oxygen exposure at the end of the dive,
	// including what is left over from earlier dives.
	CNS, OTU float64

	// SurfaceGF is the highest compartment supersaturation on surfacing
	// as a fraction of the M-value gradient.
	SurfaceGF float64

	Usage []CylinderUsage
}

// Dive plans one or more dives for the same diver, carrying tissue
// loading and oxygen exposure from each dive to the next.
type Dive struct {
	planner  *Planner
	eos      eos.EquationOfState
	exposure oxtox.Exposure
}

// NewDive returns a Dive for a diver who has not been diving. e is used
// to turn gas usage into cylinder pressures.
func NewDive(cfg Config, e eos.EquationOfState, opts ...PlannerOption) (*Dive, error) {
	p, err := NewPlanner(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if e == nil {
		e = eos.Virial{}
	}
	return &Dive{planner: p, eos: e}, nil
}

// Planner returns the underlying planner.
func (d *Dive) Planner() *Planner { return d.planner }

// SurfaceInterval spends minutes at the surface breathing air.
func (d *Dive) SurfaceInterval(minutes int) error {
	if err := d.planner.SurfaceInterval(minutes); err != nil {
		return err
	}
	d.exposure.SurfaceInterval(float64(minutes))
	return nil
}

// Plan computes the ascent for plan, starting from the current tissue
// loading.
func (d *Dive) Plan(plan *DivePlan) (*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("ascent: %v", err)
	}
	byName, deco, first, err := plan.cylinders()
	if err != nil {
		return nil, fmt.Errorf("ascent: %v", err)
	}
	p := d.planner
	p.StartDive()
	p.SetDecoCylinders(deco)

	depth := 0.0
	for _, l := range plan.Levels {
		c, ok := byName[l.Cylinder]
		if !ok {
			c = first
		}
		travel := 0
		if l.Depth != depth {
			rate := p.cfg.DescentRate
			if l.Depth < depth {
				rate = p.cfg.AscentRate
			}
			travel = travelMinutes(l.Depth-depth, rate)
			if err := p.Travel(depth, l.Depth, c); err != nil {
				return nil, err
			}
		}
		if l.Minutes > travel {
			if err := p.AddFlat(l.Depth, c, l.Minutes-travel, false); err != nil {
				return nil, err
			}
		}
		depth = l.Depth
	}
	if len(p.segments) == 0 {
		return nil, ErrNoSegments
	}

	tts, err := p.CalculateTimeToSurface()
	if err != nil {
		return nil, err
	}
	if err := p.CalculateDecompression(0); err != nil {
		return nil, err
	}

	r := &Result{
		Name:               plan.Name,
		Segments:           p.Segments(),
		Runtime:            p.Runtime(),
		TTS:                tts,
		AlternativeAscents: p.AlternativeAscents(),
		SurfaceGF:          p.model.SurfaceGF(),
	}
	env := p.cfg.Environment
	for _, s := range r.Segments {
		d.exposure.Add(s.Cylinder.PPO2(env.Pressure(s.StartDepth)), s.Cylinder.PPO2(env.Pressure(s.EndDepth)),
			float64(s.Duration))
		if s.IsStop() {
			r.DecoTime += s.Duration
		}
	}
	r.CNS, r.OTU = d.exposure.CNS, d.exposure.OTU
	r.Usage, err = Consumption(r.Segments, env, p.cfg.BottomSAC, p.cfg.DecoSAC, d.eos)
	if err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{
		"dive":    plan.Name,
		"runtime": r.Runtime,
		"deco":    r.DecoTime,
		"tts":     r.TTS,
	}).Info("planned dive")
	return r, nil
}

// PlanSeries plans a series of dives for one diver, spending each
// plan's SurfaceInterval at the surface before every dive but the
// first.
func PlanSeries(cfg Config, e eos.EquationOfState, plans []*DivePlan, opts ...PlannerOption) ([]*Result, error) {
	d, err := NewDive(cfg, e, opts...)
	if err != nil {
		return nil, err
	}
	results := make([]*Result, len(plans))
	for i, plan := range plans {
		if i > 0 {
			if err := d.SurfaceInterval(plan.SurfaceInterval); err != nil {
				return nil, err
			}
		}
		if results[i], err = d.Plan(plan); err != nil {
			return nil, fmt.Errorf("ascent: dive %d: %w", i+1, err)
		}
	}
	return results, nil
}
