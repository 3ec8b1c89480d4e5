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

package eos

import (
	"fmt"
	"math"
	"testing"

	"github.com/spatialmodel/ascent/science/gas"
)

func mix(t *testing.T, o2, he float64) gas.Gas {
	g, err := gas.New(o2, he)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestVirialRoundTrip(t *testing.T) {
	gases := []gas.Gas{
		gas.Air,
		gas.Oxygen,
		mix(t, 0.5, 0),
		mix(t, 0.18, 0.45),
		mix(t, 0.1, 0.7),
		mix(t, 0.02, 0.98),
	}
	var v Virial
	for _, g := range gases {
		for _, p := range []float64{10, 50, 100, 200, 232, 300, 350} {
			t.Run(fmt.Sprintf("%s_%g", g, p), func(t *testing.T) {
				vol := v.Volume(g, 12, p)
				have, err := v.Pressure(g, 12, vol)
				if err != nil {
					t.Fatal(err)
				}
				if math.Abs(have-p) > 1.0e-5 {
					t.Errorf("have %g bar, want %g bar", have, p)
				}
			})
		}
	}
}

func TestVirialVolume(t *testing.T) {
	var v Virial
	have := v.Volume(gas.Air, 12, 200)
	const want = 2317.1267
	if math.Abs(have-want) > 1.0e-3 {
		t.Errorf("have %g, want %g", have, want)
	}
	if v.Volume(gas.Air, 12, 0) != 0 {
		t.Error("empty cylinder should hold no gas")
	}
}

func TestCompressibility(t *testing.T) {
	var v Virial
	if z := v.Z(gas.Air, 50); z >= 1 {
		t.Errorf("air at 50 bar: have Z=%g, want < 1", z)
	}
	if z := v.Z(gas.Air, 300); z <= 1 {
		t.Errorf("air at 300 bar: have Z=%g, want > 1", z)
	}
	heliox := mix(t, 0.01, 0.99)
	if z := v.Z(heliox, 200); z <= v.Z(gas.Air, 200) {
		t.Errorf("helium should be less compressible than air: %g", z)
	}
}

func TestIdeal(t *testing.T) {
	var i Ideal
	var e EquationOfState = i
	vol := e.Volume(gas.Air, 11.1, 207)
	p, err := e.Pressure(gas.Air, 11.1, vol)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p-207) > 1e-12 {
		t.Errorf("have %g, want 207", p)
	}
	if _, err := e.Pressure(gas.Air, 0, vol); err == nil {
		t.Error("zero size should be an error")
	}
}
