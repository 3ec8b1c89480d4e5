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
	"errors"
	"math"
	"testing"

	"github.com/spatialmodel/ascent/science/pressure"
)

func TestNew(t *testing.T) {
	tests := []struct {
		o2, he float64
		ok     bool
	}{
		{o2: 0.21, he: 0, ok: true},
		{o2: 1, he: 0, ok: true},
		{o2: 0.18, he: 0.45, ok: true},
		{o2: 0.5, he: 0.5, ok: true},
		{o2: 0.6, he: 0.5, ok: false},
		{o2: 0, he: 0.5, ok: false},
		{o2: 1.1, he: 0, ok: false},
		{o2: 0.21, he: -0.1, ok: false},
		{o2: math.NaN(), he: 0, ok: false},
	}
	for _, test := range tests {
		g, err := New(test.o2, test.he)
		if test.ok && err != nil {
			t.Errorf("O2=%g He=%g: %v", test.o2, test.he, err)
		}
		if !test.ok {
			if !errors.Is(err, ErrInvalidFraction) {
				t.Errorf("O2=%g He=%g: have error %v, want %v", test.o2, test.he, err, ErrInvalidFraction)
			}
			continue
		}
		if n2 := g.N2(); math.Abs(n2+g.O2+g.He-1) > 1e-12 {
			t.Errorf("fractions add to %g", n2+g.O2+g.He)
		}
	}
}

func TestString(t *testing.T) {
	ean32, _ := Nitrox(0.32)
	tx, _ := New(0.18, 0.45)
	heliox, _ := New(0.21, 0.79)
	for have, want := range map[Gas]string{
		Air:    "Air",
		Oxygen: "Oxygen",
		ean32:  "EAN32",
		tx:     "Tx18/45",
		heliox: "Heliox21/79",
	} {
		if have.String() != want {
			t.Errorf("have %s, want %s", have, want)
		}
	}
}

func TestMOD(t *testing.T) {
	env := pressure.Environment{Salinity: pressure.Salt, AtmosphericPressure: pressure.StandardAtmosphere}
	ean50, _ := Nitrox(0.5)
	mod := ean50.MOD(env, 1.6)
	if math.Abs(mod-21.6492) > 1e-3 {
		t.Errorf("have %g, want 21.6492", mod)
	}
	if !ean50.UsableAt(env, 21, 1.6, 30) {
		t.Error("EAN50 should be usable at 21 m")
	}
	if ean50.UsableAt(env, 24, 1.6, 30) {
		t.Error("EAN50 should not be usable at 24 m")
	}
}

func TestEND(t *testing.T) {
	env := pressure.Environment{Salinity: pressure.Fresh, AtmosphericPressure: pressure.StandardAtmosphere}
	if end := Air.END(env, 40); math.Abs(end-40) > 1e-9 {
		t.Errorf("air: have %g, want 40", end)
	}
	tx, _ := New(0.21, 0.35)
	end := tx.END(env, 60)
	want := env.Depth(env.Pressure(60) * 0.65)
	if math.Abs(end-want) > 1e-9 {
		t.Errorf("trimix: have %g, want %g", end, want)
	}
	if tx.UsableAt(env, 60, 1.6, 30) {
		t.Errorf("END %g should be too deep", end)
	}
}

func TestCylinder(t *testing.T) {
	c, err := NewCylinder(Air, 12, 200)
	if err != nil {
		t.Fatal(err)
	}
	ean32, _ := Nitrox(0.32)
	c2 := c.WithPressure(50).WithGas(ean32)
	if c2.ID != c.ID {
		t.Error("ID should persist across edits")
	}
	if c2.Pressure != 50 || c2.Gas != ean32 || c.Pressure != 200 {
		t.Errorf("unexpected cylinders %v and %v", c, c2)
	}
	other, _ := NewCylinder(Air, 12, 200)
	if other.ID == c.ID {
		t.Error("new cylinders should have unique IDs")
	}
	if _, err := NewCylinder(Air, 0, 200); err == nil {
		t.Error("zero size should be an error")
	}
}
