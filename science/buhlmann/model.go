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

// Package buhlmann implements the Bühlmann ZH-L16 multi-compartment
// decompression model with gradient factors.
package buhlmann

import (
	"errors"
	"fmt"
	"math"

	"github.com/spatialmodel/ascent/science/gas"
	"github.com/spatialmodel/ascent/science/pressure"
)

// ErrInvalidDuration is returned when a pressure change is applied over
// a non-positive time.
var ErrInvalidDuration = errors.New("buhlmann: duration must be positive")

// MaxNoDecompressionLimit is the longest no-decompression limit [min]
// NoDecompressionLimit will search for.
const MaxNoDecompressionLimit = 999

// Compartment is the inert gas loading of one tissue [bar].
type Compartment struct {
	N2, He float64
}

// Total returns the total inert gas pressure.
func (c Compartment) Total() float64 { return c.N2 + c.He }

// coefficients returns the M-value coefficients for the current
// loading, weighting nitrogen and helium by their partial pressures.
func (c Compartment) coefficients(p Parameters) (a, b float64) {
	t := c.Total()
	a = (p.N2A*c.N2 + p.HeA*c.He) / t
	b = (p.N2B*c.N2 + p.HeB*c.He) / t
	return
}

// rawCeiling returns the tolerated ambient pressure for the compartment
// with its M-value reduced by gf.
func (c Compartment) rawCeiling(p Parameters, gf float64) float64 {
	a, b := c.coefficients(p)
	return (c.Total() - a*gf) / (gf/b + 1 - gf)
}

// Model holds the state of the 16 tissue compartments of one diver.
// A Model is not safe for concurrent use.
type Model struct {
	version       Version
	env           pressure.Environment
	gfLow, gfHigh float64
	params        [NumCompartments]Parameters
	compartments  [NumCompartments]Compartment

	// lowestCeiling is the deepest gfLow ceiling [bar] seen since the
	// last reset, or the surface pressure if none has been below the
	// surface. It anchors the low end of the gradient factor line.
	lowestCeiling float64
}

// New returns a model for a diver equilibrated with air at the surface
// of env. Gradient factors are fractions in (0, 1].
func New(v Version, env pressure.Environment, gfLow, gfHigh float64) (*Model, error) {
	table, err := v.Table()
	if err != nil {
		return nil, err
	}
	if gfLow <= 0 || gfLow > 1 || gfHigh <= 0 || gfHigh > 1 {
		return nil, fmt.Errorf("buhlmann: gradient factors %g/%g out of range (0, 1]", gfLow, gfHigh)
	}
	if env.AtmosphericPressure <= pressure.WaterVapour || env.Salinity <= 0 {
		return nil, fmt.Errorf("buhlmann: invalid environment %+v", env)
	}
	m := &Model{
		version: v,
		env:     env,
		gfLow:   gfLow,
		gfHigh:  gfHigh,
		params:  table,
	}
	m.Reset()
	return m, nil
}

// Reset saturates every compartment with air at the surface and clears
// the gradient factor anchor, as for a diver who has not dived recently.
func (m *Model) Reset() {
	n2 := pressure.Humidified(m.env.AtmosphericPressure, gas.Air.N2())
	for i := range m.compartments {
		m.compartments[i] = Compartment{N2: n2}
	}
	m.lowestCeiling = m.env.AtmosphericPressure
}

// Version returns the coefficient set in use.
func (m *Model) Version() Version { return m.version }

// Environment returns the environment the model was created for.
func (m *Model) Environment() pressure.Environment { return m.env }

// GradientFactors returns gfLow and gfHigh.
func (m *Model) GradientFactors() (low, high float64) { return m.gfLow, m.gfHigh }

// Compartments returns a copy of the compartment loadings, fastest first.
func (m *Model) Compartments() []Compartment {
	c := make([]Compartment, NumCompartments)
	copy(c, m.compartments[:])
	return c
}

// LowestCeiling returns the gradient factor anchor pressure [bar].
func (m *Model) LowestCeiling() float64 { return m.lowestCeiling }

// schreiner returns the inert gas pressure of a compartment after
// breathing fraction for t minutes while the ambient pressure changes
// linearly from start to end.
func schreiner(p0, start, end, fraction, t, halfTime float64) float64 {
	k := math.Ln2 / halfTime
	pi0 := pressure.Alveolar(start, fraction)
	r := (end - start) / t * fraction
	return pi0 + r*(t-1/k) - (pi0-p0-r/k)*math.Exp(-k*t)
}

// AddPressureChange loads every compartment for a linear change in
// ambient pressure from start to end [bar] over minutes while
// breathing g.
func (m *Model) AddPressureChange(start, end float64, g gas.Gas, minutes float64) error {
	if !(minutes > 0) {
		return fmt.Errorf("%w: %g min", ErrInvalidDuration, minutes)
	}
	fN2 := g.N2()
	for i, p := range m.params {
		c := &m.compartments[i]
		c.N2 = schreiner(c.N2, start, end, fN2, minutes, p.N2HalfTime)
		c.He = schreiner(c.He, start, end, g.He, minutes, p.HeHalfTime)
	}
	return nil
}

// Ceiling returns the shallowest ambient pressure [bar] the diver may
// ascend to, never less than the surface pressure. It also moves the
// gradient factor anchor down if the gfLow ceiling is deeper than any
// seen before.
func (m *Model) Ceiling() float64 { return m.ceiling(true) }

// CurrentCeiling is like Ceiling but leaves the gradient factor anchor
// where it is.
func (m *Model) CurrentCeiling() float64 { return m.ceiling(false) }

func (m *Model) ceiling(moveAnchor bool) float64 {
	maxRaw := math.Inf(-1)
	for i, c := range m.compartments {
		maxRaw = math.Max(maxRaw, c.rawCeiling(m.params[i], m.gfLow))
	}
	anchor := m.lowestCeiling
	if maxRaw > anchor {
		anchor = maxRaw
		if moveAnchor {
			m.lowestCeiling = maxRaw
		}
	}

	surface := m.env.AtmosphericPressure
	ceiling := surface
	for i, c := range m.compartments {
		a, b := c.coefficients(m.params[i])
		// Tolerated tissue pressures at the two ends of the GF line.
		high := surface + m.gfHigh*(a+surface/b-surface)
		low := anchor + m.gfLow*(a+anchor/b-anchor)
		var tolerated float64
		if anchor > surface && low > high {
			tolerated = surface + (c.Total()-high)*(anchor-surface)/(low-high)
		} else {
			// With the anchor at the surface, or so shallow that the
			// line would tolerate less at depth than at the surface,
			// only gfHigh applies.
			tolerated = c.rawCeiling(m.params[i], m.gfHigh)
		}
		ceiling = math.Max(ceiling, tolerated)
	}
	return ceiling
}

// SurfaceGF returns the highest supersaturation of any compartment at
// the surface as a fraction of its M-value gradient.
func (m *Model) SurfaceGF() float64 {
	surface := m.env.AtmosphericPressure
	var gf float64
	for i, c := range m.compartments {
		a, b := c.coefficients(m.params[i])
		mValue := a + surface/b
		gf = math.Max(gf, (c.Total()-surface)/(mValue-surface))
	}
	return gf
}

// NoDecompressionLimit returns the number of whole minutes the diver
// can stay at depth [m] breathing g without incurring a ceiling. The
// model is left unchanged.
func (m *Model) NoDecompressionLimit(depth float64, g gas.Gas) (int, error) {
	s := m.Snapshot()
	defer m.restore(s)

	surface := m.env.AtmosphericPressure
	p := m.env.Pressure(depth)
	for minutes := 0; minutes < MaxNoDecompressionLimit; minutes++ {
		if m.Ceiling() > surface {
			return minutes, nil
		}
		if err := m.AddPressureChange(p, p, g, 1); err != nil {
			return 0, err
		}
	}
	return MaxNoDecompressionLimit, nil
}
