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

// Package oxtox tracks oxygen toxicity as central nervous system (CNS)
// clock percentage and whole-body oxygen tolerance units (OTU).
package oxtox

import "math"

// threshold is the oxygen partial pressure [bar] below which neither
// CNS nor pulmonary toxicity accumulates.
const threshold = 0.5

// CNSHalfTime is the half-time [min] of the CNS clock at the surface.
const CNSHalfTime = 90.0

// CNSRate returns the CNS clock increment [% min-1] when breathing
// oxygen at partial pressure ppO2 [bar]. The rate is an exponential fit
// of the NOAA single exposure limits.
func CNSRate(ppO2 float64) float64 {
	if ppO2 <= threshold {
		return 0
	}
	mbar := ppO2 * 1000
	var perSecond float64
	if mbar <= 1500 {
		perSecond = math.Exp(-11.7853 + 0.00193873*mbar)
	} else {
		perSecond = math.Exp(-23.6349 + 0.00980829*mbar)
	}
	return perSecond * 60 * 100
}

// otuExponent is the exponent of the pulmonary dose-response curve.
const otuExponent = 5.0 / 6.0

// OTURate returns the oxygen tolerance units accumulated per minute at
// partial pressure ppO2 [bar].
func OTURate(ppO2 float64) float64 {
	if ppO2 <= threshold {
		return 0
	}
	return math.Pow((ppO2-threshold)/threshold, otuExponent)
}

// integrate applies rate over a linear change in partial pressure from
// p1 to p2, one minute at a time at the mean partial pressure of each
// minute.
func integrate(rate func(float64) float64, p1, p2, minutes float64) float64 {
	if minutes <= 0 {
		return 0
	}
	if p1 == p2 {
		return rate(p1) * minutes
	}
	slope := (p2 - p1) / minutes
	var sum float64
	for t := 0.0; t < minutes; t++ {
		dt := math.Min(1, minutes-t)
		start := p1 + slope*t
		end := start + slope*dt
		sum += rate((start+end)/2) * dt
	}
	return sum
}

// CNS returns the CNS clock increment [%] for breathing oxygen while
// its partial pressure changes linearly from p1 to p2 [bar].
func CNS(p1, p2, minutes float64) float64 { return integrate(CNSRate, p1, p2, minutes) }

// OTU returns the oxygen tolerance units for breathing oxygen while its
// partial pressure changes linearly from p1 to p2 [bar]. The dose
// curve is integrated exactly over the part of the change above the
// threshold.
func OTU(p1, p2, minutes float64) float64 {
	if minutes <= 0 {
		return 0
	}
	if p1 == p2 {
		return OTURate(p1) * minutes
	}
	lo, hi := math.Min(p1, p2), math.Max(p1, p2)
	if hi <= threshold {
		return 0
	}
	above := math.Max(lo, threshold)
	t := minutes * (hi - above) / (hi - lo)
	x := func(p float64) float64 { return math.Pow((p-threshold)/threshold, otuExponent+1) }
	return t * threshold / (otuExponent + 1) * (x(hi) - x(above)) / (hi - above)
}

// Exposure is the accumulated oxygen toxicity of a diver.
type Exposure struct {
	CNS float64 // percent of the CNS clock
	OTU float64
}

// Add accumulates a linear change in oxygen partial pressure.
func (e *Exposure) Add(p1, p2, minutes float64) {
	e.CNS += CNS(p1, p2, minutes)
	e.OTU += OTU(p1, p2, minutes)
}

// SurfaceInterval lets the CNS clock decay for the given minutes.
// OTU are carried over unchanged.
func (e *Exposure) SurfaceInterval(minutes float64) {
	e.CNS *= math.Pow(0.5, minutes/CNSHalfTime)
}
