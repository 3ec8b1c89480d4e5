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
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/ascent/science/gas"
)

// bestCylinder returns the decompression cylinder with the most oxygen
// that can be breathed at depth, or current if none is better.
func (p *Planner) bestCylinder(depth float64, current gas.Cylinder) gas.Cylinder {
	best := current
	for _, c := range p.decoCylinders {
		if c.O2 > best.O2 && c.UsableAt(p.cfg.Environment, depth, p.cfg.MaxPPO2, p.cfg.MaxEND) {
			best = c
		}
	}
	return best
}

// roundStop rounds depth up to the stop grid. Stops between the surface
// and the last stop are moved to the last stop.
func (p *Planner) roundStop(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	r := math.Ceil(depth/p.cfg.DecoStepSize) * p.cfg.DecoStepSize
	if r > 0 && r < p.cfg.LastStopDepth {
		r = p.cfg.LastStopDepth
	}
	return r
}

// nextStop returns the stop after the one at depth, or toDepth if that
// is shallower.
func (p *Planner) nextStop(depth, toDepth float64) float64 {
	step := p.cfg.DecoStepSize
	n := (math.Ceil(depth/step) - 1) * step
	if n > 0 && n < p.cfg.LastStopDepth {
		n = p.cfg.LastStopDepth
	}
	if n >= depth {
		n = 0
	}
	return math.Max(n, toDepth)
}

// onSwitchGrid reports whether a gas switch may happen at depth.
func onSwitchGrid(depth float64) bool {
	return math.Mod(depth, gasSwitchInterval) == 0
}

// ascend travels from one depth to a shallower one. At every multiple
// of gasSwitchInterval on the way it checks for a better decompression
// gas, and a switch splits the ascent into separate segments. It
// returns the cylinder breathed on arrival.
func (p *Planner) ascend(from, to float64, c gas.Cylinder, deco bool) (gas.Cylinder, error) {
	start := from
	d := math.Floor(from/gasSwitchInterval) * gasSwitchInterval
	if d == from {
		d -= gasSwitchInterval
	}
	for ; d >= to; d -= gasSwitchInterval {
		best := p.bestCylinder(d, c)
		if best == c {
			continue
		}
		if start != d {
			if err := p.AddDepthChangePerMinute(start, d, c, travelMinutes(start-d, p.cfg.AscentRate), deco); err != nil {
				return c, err
			}
		}
		p.log.WithFields(logrus.Fields{
			"depth":   d,
			"runtime": p.runtime,
			"from":    c.Gas.String(),
			"to":      best.Gas.String(),
		}).Debug("gas switch")
		c = best
		start = d
	}
	if start != to {
		if err := p.AddDepthChangePerMinute(start, to, c, travelMinutes(start-to, p.cfg.AscentRate), deco); err != nil {
			return c, err
		}
	}
	return c, nil
}

// CalculateDecompression ascends from the end of the plan to toDepth
// [m], adding the decompression stops and gas switches required to
// stay below the ceiling.
func (p *Planner) CalculateDecompression(toDepth float64) error {
	if len(p.segments) == 0 {
		return ErrNoSegments
	}
	last := p.segments[len(p.segments)-1]
	current := last.EndDepth
	if toDepth > current {
		return &TargetDepthError{Current: current, Target: toDepth}
	}
	c := last.Cylinder
	if onSwitchGrid(current) {
		c = p.bestCylinder(current, c)
	}

	// Ascending changes the ceiling, so search for the shallowest first
	// stop that is still below the ceiling on arrival.
	target := math.Min(math.Max(p.roundStop(p.ceilingDepth()), toDepth), current)
	for i := 0; ; i++ {
		if i >= maxStopMinutes {
			return &PlanningError{Depth: target, Minutes: i}
		}
		r, err := p.Speculate(func() (interface{}, bool, error) {
			if _, err := p.ascend(current, target, c, false); err != nil {
				return nil, false, err
			}
			return math.Max(p.roundStop(p.ceilingDepth()), toDepth), false, nil
		})
		if err != nil {
			return err
		}
		if next := r.(float64); next < target {
			target = next
			continue
		}
		break
	}
	c, err := p.ascend(current, target, c, false)
	if err != nil {
		return err
	}
	current = target

	for current > toDepth {
		next := p.nextStop(current, toDepth)
		if onSwitchGrid(current) {
			c = p.bestCylinder(current, c)
		}
		if err := p.stop(current, next, c); err != nil {
			return err
		}
		if c, err = p.ascend(current, next, c, true); err != nil {
			return err
		}
		current = next
	}
	return nil
}

// stop waits at depth breathing c until the ceiling is no deeper than
// next, and adds the wait as a single decompression segment.
func (p *Planner) stop(depth, next float64, c gas.Cylinder) error {
	pr := p.cfg.Environment.Pressure(depth)
	minutes := 0
	for p.ceilingDepth() > next || (p.cfg.ForceMinimalDecoStopTime && minutes == 0) {
		if err := p.model.AddPressureChange(pr, pr, c.Gas, 1); err != nil {
			return fmt.Errorf("ascent: stop at %g m: %w", depth, err)
		}
		minutes++
		if minutes > maxStopMinutes {
			p.log.WithFields(logrus.Fields{
				"depth":   depth,
				"minutes": minutes,
			}).Error("decompression stop does not clear")
			return &PlanningError{Depth: depth, Minutes: minutes}
		}
	}
	if minutes == 0 {
		return nil
	}
	p.appendSegment(DiveSegment{
		Duration:   minutes,
		StartDepth: depth,
		EndDepth:   depth,
		Cylinder:   c,
		Deco:       true,
	})
	p.log.WithFields(logrus.Fields{
		"depth":   depth,
		"minutes": minutes,
		"gas":     c.Gas.String(),
	}).Debug("decompression stop")
	return nil
}

// CalculateTimeToSurface returns how long [min] it would take to
// surface, including stops, if the ascent started now. The plan is
// left unchanged apart from recording the ascent under the current
// runtime in AlternativeAscents. It returns TTSUnavailable if called
// from within another time to surface calculation.
func (p *Planner) CalculateTimeToSurface() (int, error) {
	if p.calculatingTTS {
		return TTSUnavailable, nil
	}
	p.calculatingTTS = true
	defer func() { p.calculatingTTS = false }()

	first := len(p.segments)
	r, err := p.Speculate(func() (interface{}, bool, error) {
		if err := p.CalculateDecompression(0); err != nil {
			return nil, false, err
		}
		return append([]DiveSegment(nil), p.segments[first:]...), false, nil
	})
	if err != nil {
		return 0, err
	}
	ascent := r.([]DiveSegment)
	p.alternatives[p.runtime] = ascent
	return Duration(ascent), nil
}
