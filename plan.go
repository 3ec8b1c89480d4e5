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
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/ascent/science/gas"
)

// CylinderConfig describes a cylinder in a dive plan.
type CylinderConfig struct {
	Name string

	// O2 and He are volume fractions.
	O2, He float64

	// Size is the water volume [L] and Pressure the fill pressure [bar].
	Size, Pressure float64

	// Deco marks cylinders that are only switched to during the ascent.
	Deco bool
}

// Level is a depth the diver travels to and stays at. Minutes counts
// from leaving the previous level, so it includes the travel time.
type Level struct {
	Depth    float64
	Minutes  int
	Cylinder string
}

// DivePlan is the part of a dive the diver chooses. The ascent is
// computed.
type DivePlan struct {
	Name      string
	Cylinders []CylinderConfig
	Levels    []Level

	// SurfaceInterval is the time [min] spent at the surface before
	// this dive. It is ignored for the first dive in a series.
	SurfaceInterval int
}

// ReadPlans reads a series of dives from TOML, one [[Dive]] table per
// dive.
func ReadPlans(r io.Reader) ([]*DivePlan, error) {
	var f struct {
		Dive []*DivePlan
	}
	if _, err := toml.DecodeReader(r, &f); err != nil {
		return nil, fmt.Errorf("ascent: reading dive plans: %v", err)
	}
	if len(f.Dive) == 0 {
		return nil, fmt.Errorf("ascent: no dives in plan file")
	}
	for i, d := range f.Dive {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("ascent: dive %d: %v", i+1, err)
		}
	}
	return f.Dive, nil
}

// Validate checks that every level refers to a bottom cylinder.
func (d *DivePlan) Validate() error {
	if len(d.Levels) == 0 {
		return fmt.Errorf("dive plan has no levels")
	}
	bottom := make(map[string]bool)
	for _, c := range d.Cylinders {
		if _, err := gas.New(c.O2, c.He); err != nil {
			return fmt.Errorf("cylinder %q: %v", c.Name, err)
		}
		if !c.Deco {
			bottom[c.Name] = true
		}
	}
	if len(bottom) == 0 {
		return fmt.Errorf("dive plan has no bottom cylinder")
	}
	for _, l := range d.Levels {
		if l.Depth < 0 {
			return fmt.Errorf("invalid level depth %g m", l.Depth)
		}
		if l.Cylinder != "" && !bottom[l.Cylinder] {
			return fmt.Errorf("level at %g m uses unknown bottom cylinder %q", l.Depth, l.Cylinder)
		}
	}
	if d.SurfaceInterval < 0 {
		return fmt.Errorf("invalid surface interval %d min", d.SurfaceInterval)
	}
	return nil
}

// cylinders creates the cylinders of the plan. Levels that do not name
// a cylinder use the first bottom cylinder.
func (d *DivePlan) cylinders() (byName map[string]gas.Cylinder, deco []gas.Cylinder, first gas.Cylinder, err error) {
	byName = make(map[string]gas.Cylinder)
	haveFirst := false
	for _, cc := range d.Cylinders {
		g, err := gas.New(cc.O2, cc.He)
		if err != nil {
			return nil, nil, first, err
		}
		c, err := gas.NewCylinder(g, cc.Size, cc.Pressure)
		if err != nil {
			return nil, nil, first, err
		}
		if cc.Deco {
			deco = append(deco, c)
			continue
		}
		byName[cc.Name] = c
		if !haveFirst {
			first = c
			haveFirst = true
		}
	}
	return byName, deco, first, nil
}
