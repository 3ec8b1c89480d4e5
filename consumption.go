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
	"github.com/gonum/floats"
	"github.com/spatialmodel/ascent/science/eos"
	"github.com/spatialmodel/ascent/science/gas"
	"github.com/spatialmodel/ascent/science/pressure"
)

// CylinderUsage is the gas taken from one cylinder during a dive.
type CylinderUsage struct {
	Cylinder gas.Cylinder

	// Used is the volume breathed [L at surface pressure].
	Used float64

	// Remaining is the cylinder pressure [bar] after the dive.
	Remaining float64

	// Exhausted is true if the plan needs more gas than the cylinder
	// holds.
	Exhausted bool
}

// Consumption returns the gas used from each cylinder in segments, in
// the order the cylinders are first breathed. Breathing rates are
// surface air consumption [L min-1] scaled by ambient pressure; deco
// segments use decoSAC.
func Consumption(segments []DiveSegment, env pressure.Environment, bottomSAC, decoSAC float64, e eos.EquationOfState) ([]CylinderUsage, error) {
	var order []gas.Cylinder
	used := make(map[gas.Cylinder][]float64)
	for _, s := range segments {
		sac := bottomSAC
		if s.Deco {
			sac = decoSAC
		}
		mean := env.Pressure((s.StartDepth + s.EndDepth) / 2)
		if _, ok := used[s.Cylinder]; !ok {
			order = append(order, s.Cylinder)
		}
		used[s.Cylinder] = append(used[s.Cylinder], sac*mean*float64(s.Duration))
	}
	usage := make([]CylinderUsage, len(order))
	for i, c := range order {
		u := CylinderUsage{Cylinder: c, Used: floats.Sum(used[c])}
		left := e.Volume(c.Gas, c.Size, c.Pressure) - u.Used
		if left <= 0 {
			u.Exhausted = true
		} else {
			var err error
			if u.Remaining, err = e.Pressure(c.Gas, c.Size, left); err != nil {
				return nil, err
			}
		}
		usage[i] = u
	}
	return usage, nil
}
