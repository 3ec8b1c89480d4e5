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

// Package eos relates the fill pressure of a cylinder to the volume of
// gas, at surface pressure, that it holds.
package eos

import (
	"errors"
	"fmt"
	"math"

	"github.com/spatialmodel/ascent/science/gas"
)

// EquationOfState converts between cylinder pressure [bar] and free
// gas volume [L] for a cylinder with water volume size [L].
type EquationOfState interface {
	Volume(g gas.Gas, size, pressure float64) float64
	Pressure(g gas.Gas, size, volume float64) (float64, error)
}

// ErrNoConvergence is returned when the pressure solver does not settle.
var ErrNoConvergence = errors.New("eos: pressure iteration did not converge")

// Ideal is the ideal gas law. It underestimates the pressure of a
// helium fill and overestimates the volume of an air fill.
type Ideal struct{}

// Volume implements EquationOfState.
func (Ideal) Volume(_ gas.Gas, size, pressure float64) float64 {
	return size * pressure
}

// Pressure implements EquationOfState.
func (Ideal) Pressure(_ gas.Gas, size, volume float64) (float64, error) {
	if size <= 0 {
		return 0, fmt.Errorf("eos: invalid cylinder size %g", size)
	}
	return volume / size, nil
}

// Cubic virial coefficients [bar-1, bar-2, bar-3] of the
// compressibility of the three component gases.
var (
	o2Virial = [3]float64{-7.18092073703e-04, +2.81852572808e-06, -1.50290620492e-09}
	n2Virial = [3]float64{-2.19260353292e-04, +2.92844845532e-06, -2.07613482075e-09}
	heVirial = [3]float64{+4.87320026468e-04, -8.83632921053e-08, +5.33304543646e-11}
)

const (
	volumeTolerance      = 1.0e-6
	oscillationThreshold = 1.0e-9
	maxIterations        = 1000
)

// Virial models the compressibility of a gas mixture as a cubic
// polynomial in pressure.
type Virial struct{}

// Z returns the compressibility factor of g at pressure p [bar].
func (Virial) Z(g gas.Gas, p float64) float64 {
	c := func(coef [3]float64) float64 {
		return coef[0]*p + coef[1]*p*p + coef[2]*p*p*p
	}
	return 1 + g.O2*c(o2Virial) + g.N2()*c(n2Virial) + g.He*c(heVirial)
}

// Volume implements EquationOfState.
func (v Virial) Volume(g gas.Gas, size, pressure float64) float64 {
	if pressure == 0 {
		return 0
	}
	return size * pressure / v.Z(g, pressure)
}

// Pressure implements EquationOfState. There is no closed form, so the
// pressure is refined from the ideal gas estimate until the implied
// volume matches. The iteration stops early if it starts oscillating
// between two values.
func (v Virial) Pressure(g gas.Gas, size, volume float64) (float64, error) {
	p, err := Ideal{}.Pressure(g, size, volume)
	if err != nil || p == 0 {
		return p, err
	}
	var prevDiff float64
	for i := 0; i < maxIterations; i++ {
		diff := v.Volume(g, size, p) - volume
		if math.Abs(diff) < volumeTolerance {
			return p, nil
		}
		if i > 0 && math.Signbit(diff) == math.Signbit(prevDiff) &&
			math.Abs(diff-prevDiff) < oscillationThreshold {
			return p, nil
		}
		prevDiff = diff
		p = volume / size * v.Z(g, p)
	}
	return p, fmt.Errorf("%w: %s in %g L at %g L", ErrNoConvergence, g, size, volume)
}
