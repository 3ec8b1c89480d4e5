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

package pressure

import (
	"fmt"

	"github.com/ctessum/unit"
	"github.com/ctessum/unit/badunit"
)

const pascalsPerPSI = 6894.757293168

// Bar creates a new unit from a pressure in bar.
func Bar(v float64) *unit.Unit {
	return unit.New(v*pascalsPerBar, unit.Pascal)
}

// PSI creates a new unit from a pressure in pounds per square inch.
func PSI(v float64) *unit.Unit {
	return unit.New(v*pascalsPerPSI, unit.Pascal)
}

// Meter creates a new unit from a length in meters.
func Meter(v float64) *unit.Unit {
	return unit.New(v, unit.Meter)
}

// Foot creates a new unit from a length in feet.
func Foot(v float64) *unit.Unit {
	return badunit.Foot(v)
}

// Liter creates a new unit from a volume in liters.
func Liter(v float64) *unit.Unit {
	return unit.New(v/1000, unit.Meter3)
}

// CubicFoot creates a new unit from a volume in cubic feet.
func CubicFoot(v float64) *unit.Unit {
	return badunit.Foot3(v)
}

// ToBar returns the value of u in bar.
func ToBar(u *unit.Unit) (float64, error) {
	if err := u.Check(unit.Pascal); err != nil {
		return 0, fmt.Errorf("pressure: converting to bar: %v", err)
	}
	return u.Value() / pascalsPerBar, nil
}

// ToPSI returns the value of u in pounds per square inch.
func ToPSI(u *unit.Unit) (float64, error) {
	if err := u.Check(unit.Pascal); err != nil {
		return 0, fmt.Errorf("pressure: converting to psi: %v", err)
	}
	return u.Value() / pascalsPerPSI, nil
}

// ToMeters returns the value of u in meters.
func ToMeters(u *unit.Unit) (float64, error) {
	if err := u.Check(unit.Meter); err != nil {
		return 0, fmt.Errorf("pressure: converting to meters: %v", err)
	}
	return u.Value(), nil
}

// ToLiters returns the value of u in liters.
func ToLiters(u *unit.Unit) (float64, error) {
	if err := u.Check(unit.Meter3); err != nil {
		return 0, fmt.Errorf("pressure: converting to liters: %v", err)
	}
	return u.Value() * 1000, nil
}

// ToFeet returns the value of u in feet.
func ToFeet(u *unit.Unit) (float64, error) {
	m, err := ToMeters(u)
	if err != nil {
		return 0, err
	}
	return m / badunit.Foot(1).Value(), nil
}

// ToCubicFeet returns the value of u in cubic feet.
func ToCubicFeet(u *unit.Unit) (float64, error) {
	if err := u.Check(unit.Meter3); err != nil {
		return 0, fmt.Errorf("pressure: converting to cubic feet: %v", err)
	}
	return u.Value() / badunit.Foot3(1).Value(), nil
}
