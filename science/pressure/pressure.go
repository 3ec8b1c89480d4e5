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

// Package pressure converts between water depth and ambient pressure and
// holds the partial pressure arithmetic used by the tissue model.
// Pressures are in bar and depths in meters unless otherwise noted.
package pressure

import (
	"fmt"
	"math"
)

const (
	// Gravity is standard gravitational acceleration [m s-2].
	Gravity = 9.80665

	// StandardAtmosphere is sea level atmospheric pressure [bar].
	StandardAtmosphere = 1.01325

	// WaterVapour is the alveolar water vapour pressure [bar] used by
	// the tissue model.
	WaterVapour = 0.0567

	pascalsPerBar = 1.0e5
)

// Salinity is the density of water [kg m-3].
type Salinity float64

// Water densities.
const (
	Fresh   Salinity = 1000
	EN13319 Salinity = 1020
	Salt    Salinity = 1030
)

func (s Salinity) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case EN13319:
		return "EN13319"
	case Salt:
		return "salt"
	}
	return fmt.Sprintf("%g kg/m3", float64(s))
}

// ParseSalinity returns the salinity matching name, which is
// "fresh", "en13319", or "salt".
func ParseSalinity(name string) (Salinity, error) {
	switch name {
	case "fresh", "Fresh":
		return Fresh, nil
	case "en13319", "EN13319":
		return EN13319, nil
	case "salt", "Salt":
		return Salt, nil
	}
	return 0, fmt.Errorf("pressure: invalid salinity %q", name)
}

// Environment is the water and atmosphere a dive takes place in.
type Environment struct {
	Salinity Salinity

	// AtmosphericPressure is the pressure at the water surface [bar].
	AtmosphericPressure float64
}

// DefaultEnvironment is salt water at sea level.
func DefaultEnvironment() Environment {
	return Environment{Salinity: Salt, AtmosphericPressure: StandardAtmosphere}
}

// NewEnvironment returns an environment, checking that both the water
// density and the surface pressure are positive.
func NewEnvironment(s Salinity, atmosphericPressure float64) (Environment, error) {
	if s <= 0 {
		return Environment{}, fmt.Errorf("pressure: invalid water density %g", float64(s))
	}
	if atmosphericPressure <= 0 {
		return Environment{}, fmt.Errorf("pressure: invalid atmospheric pressure %g bar", atmosphericPressure)
	}
	return Environment{Salinity: s, AtmosphericPressure: atmosphericPressure}, nil
}

// AltitudePressure returns the atmospheric pressure [bar] at the given
// altitude [m] according to the international barometric formula.
func AltitudePressure(altitude float64) float64 {
	return StandardAtmosphere * math.Pow(1-2.25577e-5*altitude, 5.25588)
}

// barPerMeter is the hydrostatic pressure gradient.
func (e Environment) barPerMeter() float64 {
	return float64(e.Salinity) * Gravity / pascalsPerBar
}

// Pressure returns the ambient pressure at depth.
func (e Environment) Pressure(depth float64) float64 {
	return e.AtmosphericPressure + depth*e.barPerMeter()
}

// Depth returns the depth at which the ambient pressure equals p.
func (e Environment) Depth(p float64) float64 {
	return (p - e.AtmosphericPressure) / e.barPerMeter()
}

// Partial returns the partial pressure of a component with the given
// volume fraction in a gas at ambient pressure.
func Partial(ambient, fraction float64) float64 {
	return ambient * fraction
}

// Alveolar returns the partial pressure of a component in the alveoli,
// which is its inspired partial pressure less the water vapour
// pressure. Components that are absent or would go negative give 0.
func Alveolar(ambient, fraction float64) float64 {
	if fraction <= 0 {
		return 0
	}
	return math.Max(ambient*fraction-WaterVapour, 0)
}

// Humidified returns the partial pressure of a component with the given
// fraction after water vapour has displaced part of the gas. Tissues of
// a diver who has not been diving hold nitrogen at this pressure.
func Humidified(ambient, fraction float64) float64 {
	return (ambient - WaterVapour) * fraction
}
