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

// Package ascent computes decompression schedules for open circuit
// scuba dives using the Bühlmann ZH-L16 model with gradient factors.
package ascent

import (
	"fmt"
	"io/ioutil"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/ascent/science/buhlmann"
	"github.com/spatialmodel/ascent/science/gas"
)

const (
	// gasSwitchInterval is the depth granularity [m] at which gas
	// switches are allowed.
	gasSwitchInterval = 3.0

	// maxStopMinutes bounds the time spent at a single stop and the
	// number of trial ascents while searching for the first stop.
	maxStopMinutes = 10000
)

// TTSUnavailable is returned by CalculateTimeToSurface when it is
// called while another time to surface is being calculated.
const TTSUnavailable = -1

// Planner builds a dive plan segment by segment while keeping track of
// tissue loading. A Planner is not safe for concurrent use.
type Planner struct {
	cfg   Config
	model *buhlmann.Model
	log   logrus.FieldLogger

	decoCylinders []gas.Cylinder

	segments     []DiveSegment
	alternatives map[int][]DiveSegment
	runtime      int

	calculatingTTS bool
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner) error

// WithModel makes the planner load tissues in m rather than in a new
// model. This is how residual loading is carried from one dive to the
// next.
func WithModel(m *buhlmann.Model) PlannerOption {
	return func(p *Planner) error {
		if m.Version() != p.cfg.Model {
			return fmt.Errorf("ascent: model version %s does not match configured version %s", m.Version(), p.cfg.Model)
		}
		p.model = m
		return nil
	}
}

// WithLogger sets the destination for log messages.
func WithLogger(l logrus.FieldLogger) PlannerOption {
	return func(p *Planner) error {
		p.log = l
		return nil
	}
}

// NewPlanner returns a planner for a diver who has not been diving.
func NewPlanner(cfg Config, opts ...PlannerOption) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	discard := logrus.New()
	discard.Out = ioutil.Discard
	p := &Planner{
		cfg:          cfg,
		log:          discard,
		alternatives: make(map[int][]DiveSegment),
	}
	for _, o := range opts {
		if err := o(p); err != nil {
			return nil, err
		}
	}
	if p.model == nil {
		m, err := buhlmann.New(cfg.Model, cfg.Environment, cfg.GFLow, cfg.GFHigh)
		if err != nil {
			return nil, err
		}
		p.model = m
	}
	return p, nil
}

// SetDecoCylinders sets the cylinders that may be switched to during
// the ascent.
func (p *Planner) SetDecoCylinders(c []gas.Cylinder) {
	p.decoCylinders = append([]gas.Cylinder(nil), c...)
}

// Segments returns a copy of the plan so far.
func (p *Planner) Segments() []DiveSegment {
	return append([]DiveSegment(nil), p.segments...)
}

// Runtime returns the elapsed dive time [min].
func (p *Planner) Runtime() int { return p.runtime }

// AlternativeAscents returns the ascents computed by
// CalculateTimeToSurface, keyed by the runtime at which they start.
func (p *Planner) AlternativeAscents() map[int][]DiveSegment {
	a := make(map[int][]DiveSegment, len(p.alternatives))
	for k, v := range p.alternatives {
		a[k] = v
	}
	return a
}

// Model returns the tissue model the planner is loading.
func (p *Planner) Model() *buhlmann.Model { return p.model }

// Config returns the planner settings.
func (p *Planner) Config() Config { return p.cfg }

// StartDive clears the plan and the clock for a new dive. Tissue
// loading is kept.
func (p *Planner) StartDive() {
	p.segments = nil
	p.alternatives = make(map[int][]DiveSegment)
	p.runtime = 0
}

// SurfaceInterval loads the tissues for minutes spent at the surface
// breathing air.
func (p *Planner) SurfaceInterval(minutes int) error {
	if minutes == 0 {
		return nil
	}
	surface := p.cfg.Environment.AtmosphericPressure
	if err := p.model.AddPressureChange(surface, surface, gas.Air, float64(minutes)); err != nil {
		return fmt.Errorf("ascent: surface interval: %w", err)
	}
	return nil
}

// ceilingDepth returns the current ceiling [m].
func (p *Planner) ceilingDepth() float64 {
	return p.cfg.Environment.Depth(p.model.Ceiling())
}

func (p *Planner) appendSegment(s DiveSegment) {
	s.Start = p.runtime
	s.Ceiling = math.Max(0, p.cfg.Environment.Depth(p.model.CurrentCeiling()))
	p.runtime += s.Duration
	p.segments = append(p.segments, s)
}

// AddFlat stays at depth [m] for the given minutes.
func (p *Planner) AddFlat(depth float64, c gas.Cylinder, minutes int, deco bool) error {
	pr := p.cfg.Environment.Pressure(depth)
	if err := p.model.AddPressureChange(pr, pr, c.Gas, float64(minutes)); err != nil {
		return fmt.Errorf("ascent: flat segment at %g m: %w", depth, err)
	}
	p.appendSegment(DiveSegment{
		Duration:   minutes,
		StartDepth: depth,
		EndDepth:   depth,
		Cylinder:   c,
		Deco:       deco,
	})
	return nil
}

// AddDepthChangePerMinute travels from start to end [m] over the given
// minutes. Tissues are loaded one minute at a time so that the
// nonlinear uptake during long ascents and descents is captured.
func (p *Planner) AddDepthChangePerMinute(start, end float64, c gas.Cylinder, minutes int, deco bool) error {
	if minutes <= 0 {
		return fmt.Errorf("ascent: depth change from %g m to %g m: %w: %d min",
			start, end, buhlmann.ErrInvalidDuration, minutes)
	}
	env := p.cfg.Environment
	perMinute := (end - start) / float64(minutes)
	for i := 0; i < minutes; i++ {
		d0 := start + perMinute*float64(i)
		d1 := d0 + perMinute
		if err := p.model.AddPressureChange(env.Pressure(d0), env.Pressure(d1), c.Gas, 1); err != nil {
			return err
		}
	}
	p.appendSegment(DiveSegment{
		Duration:   minutes,
		StartDepth: start,
		EndDepth:   end,
		Cylinder:   c,
		Deco:       deco,
	})
	return nil
}

// travelMinutes returns the whole minutes needed to cover distance [m]
// at rate [m min-1].
func travelMinutes(distance, rate float64) int {
	return int(math.Ceil(math.Abs(distance) / rate))
}

// Travel moves to depth at the configured ascent or descent rate.
func (p *Planner) Travel(from, to float64, c gas.Cylinder) error {
	if from == to {
		return nil
	}
	rate := p.cfg.DescentRate
	if to < from {
		rate = p.cfg.AscentRate
	}
	return p.AddDepthChangePerMinute(from, to, c, travelMinutes(to-from, rate), false)
}

// CurrentDepth returns the depth at the end of the plan so far.
func (p *Planner) CurrentDepth() float64 {
	if len(p.segments) == 0 {
		return 0
	}
	return p.segments[len(p.segments)-1].EndDepth
}

// CurrentCylinder returns the cylinder breathed at the end of the plan
// so far.
func (p *Planner) CurrentCylinder() (gas.Cylinder, error) {
	if len(p.segments) == 0 {
		return gas.Cylinder{}, ErrNoSegments
	}
	return p.segments[len(p.segments)-1].Cylinder, nil
}
