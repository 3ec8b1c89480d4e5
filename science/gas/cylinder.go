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

package gas

import (
	"fmt"

	"github.com/google/uuid"
)

// Cylinder is a gas supply. Its ID stays the same when the cylinder is
// refilled or its contents change so that a plan can keep track of it.
type Cylinder struct {
	ID uuid.UUID
	Gas

	// Size is the water volume [L].
	Size float64

	// Pressure is the fill pressure [bar].
	Pressure float64
}

// NewCylinder returns a cylinder with a fresh ID.
func NewCylinder(g Gas, size, fillPressure float64) (Cylinder, error) {
	if size <= 0 {
		return Cylinder{}, fmt.Errorf("gas: invalid cylinder size %g L", size)
	}
	if fillPressure < 0 {
		return Cylinder{}, fmt.Errorf("gas: invalid cylinder pressure %g bar", fillPressure)
	}
	return Cylinder{ID: uuid.New(), Gas: g, Size: size, Pressure: fillPressure}, nil
}

// WithPressure returns a copy of c filled to p.
func (c Cylinder) WithPressure(p float64) Cylinder {
	c.Pressure = p
	return c
}

// WithGas returns a copy of c holding g.
func (c Cylinder) WithGas(g Gas) Cylinder {
	c.Gas = g
	return c
}

func (c Cylinder) String() string {
	return fmt.Sprintf("%s %gL@%gbar", c.Gas, c.Size, c.Pressure)
}
