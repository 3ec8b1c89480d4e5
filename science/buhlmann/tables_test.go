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

package buhlmann

import "testing"

func TestTable(t *testing.T) {
	a, err := ZHL16A.Table()
	if err != nil {
		t.Fatal(err)
	}
	b, err := ZHL16B.Table()
	if err != nil {
		t.Fatal(err)
	}
	c, err := ZHL16C.Table()
	if err != nil {
		t.Fatal(err)
	}
	if a[0].N2HalfTime != 4 || b[0].N2HalfTime != 5 || c[0].N2HalfTime != 5 {
		t.Errorf("first half-times: %g, %g, %g", a[0].N2HalfTime, b[0].N2HalfTime, c[0].N2HalfTime)
	}
	if b[4].N2A != 0.6667 || c[4].N2A != 0.6200 {
		t.Errorf("compartment 5 a: %g, %g", b[4].N2A, c[4].N2A)
	}
	for i := 1; i < NumCompartments; i++ {
		if c[i].N2HalfTime <= c[i-1].N2HalfTime || c[i].HeHalfTime <= c[i-1].HeHalfTime {
			t.Errorf("compartment %d is not slower than %d", i, i-1)
		}
		if a[i].HeA != b[i].HeA || b[i].HeB != c[i].HeB {
			t.Errorf("helium coefficients of compartment %d should be shared", i)
		}
	}
}

func TestParseVersion(t *testing.T) {
	for _, v := range []Version{ZHL16A, ZHL16B, ZHL16C} {
		have, err := ParseVersion(v.String())
		if err != nil {
			t.Fatal(err)
		}
		if have != v {
			t.Errorf("have %v, want %v", have, v)
		}
	}
	if v, err := ParseVersion("c"); err != nil || v != ZHL16C {
		t.Errorf("have %v (%v), want ZH-L16C", v, err)
	}
	if _, err := ParseVersion("RGBM"); err == nil {
		t.Error("should be an error")
	}
}
