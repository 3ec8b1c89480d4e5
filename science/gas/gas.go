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

// Package gas describes open-circuit breathing gases and the cylinders
// they are carried in.
package gas

import (
	"errors"
	"fmt"
	"math"

	"github.com/spatialmodel/ascent/science/pressure"
)

// ErrInvalidFraction is returned when a gas is created with fractions
// outside [0, 1] or with oxygen and helium adding up to more than 1.
var ErrInvalidFraction = errors.New("gas: invalid gas fractions")

// Gas is a breathing gas mixture. The nitrogen fraction is whatever
// remains after oxygen and helium.
type Gas struct {
	O2, He float64
}

const fractionTolerance = 1.0e-9

// Air is the gas we all breathe.
var Air = Gas{O2: 0.21}

// Oxygen is pure oxygen.
var Oxygen = Gas{O2: 1}

// New returns a gas with the given oxygen and helium fractions.
func New(o2, he float64) (Gas, error) {
	if o2 <= 0 || o2 > 1 || he < 0 || he > 1 || o2+he > 1+fractionTolerance ||
		math.IsNaN(o2) || math.IsNaN(he) {
		return Gas{}, fmt.Errorf("%w: O2=%g, He=%g", ErrInvalidFraction, o2, he)
	}
	return Gas{O2: o2, He: he}, nil
}

// Nitrox returns an oxygen enriched air mixture.
func Nitrox(o2 float64) (Gas, error) { return New(o2, 0) }

// N2 returns the nitrogen fraction.
func (g Gas) N2() float64 {
	n2 := 1 - g.O2 - g.He
	if n2 < 0 {
		return 0
	}
	return n2
}

// PPO2 returns the oxygen partial pressure [bar] at ambient pressure p.
func (g Gas) PPO2(p float64) float64 { return pressure.Partial(p, g.O2) }

// MOD returns the maximum operating depth [m] for which the oxygen
// partial pressure stays at or below maxPPO2.
func (g Gas) MOD(env pressure.Environment, maxPPO2 float64) float64 {
	return env.Depth(maxPPO2 / g.O2)
}

// END returns the equivalent narcotic depth [m] when breathing g at the
// given depth, counting both nitrogen and oxygen as narcotic.
func (g Gas) END(env pressure.Environment, depth float64) float64 {
	return env.Depth(env.Pressure(depth) * (1 - g.He))
}

// UsableAt reports whether g can be breathed at depth without
// exceeding maxPPO2 or maxEND.
func (g Gas) UsableAt(env pressure.Environment, depth, maxPPO2, maxEND float64) bool {
	p := env.Pressure(depth)
	return g.PPO2(p) <= maxPPO2+fractionTolerance && g.END(env, depth) <= maxEND
}

// String returns the conventional name of the mixture, e.g. "Air",
// "EAN32" or "Tx18/45".
func (g Gas) String() string {
	o2 := int(math.Round(g.O2 * 100))
	he := int(math.Round(g.He * 100))
	switch {
	case he == 0 && o2 == 21:
		return "Air"
	case he == 0 && o2 == 100:
		return "Oxygen"
	case he == 0:
		return fmt.Sprintf("EAN%d", o2)
	case o2+he == 100:
		return fmt.Sprintf("Heliox%d/%d", o2, he)
	}
	return fmt.Sprintf("Tx%d/%d", o2, he)
}
