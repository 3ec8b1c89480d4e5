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

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/spatialmodel/ascent/science/gas"
	"github.com/spatialmodel/ascent/science/pressure"
)

const testTolerance = 1.0e-8

var salt = pressure.Environment{Salinity: pressure.Salt, AtmosphericPressure: pressure.StandardAtmosphere}

func newModel(t *testing.T, gfLow, gfHigh float64) *Model {
	m, err := New(ZHL16C, salt, gfLow, gfHigh)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func different(a, b float64) bool {
	return math.Abs(a-b) > testTolerance || math.IsNaN(a) || math.IsNaN(b)
}

func TestNew(t *testing.T) {
	for _, gf := range [][2]float64{{0, 0.7}, {0.3, 0}, {0.3, 1.1}, {-1, 0.5}} {
		if _, err := New(ZHL16C, salt, gf[0], gf[1]); err == nil {
			t.Errorf("gf %v should be an error", gf)
		}
	}
	if _, err := New(Version(7), salt, 0.3, 0.7); err == nil {
		t.Error("invalid version should be an error")
	}
	m := newModel(t, 0.3, 0.7)
	if c := m.Ceiling(); c != salt.AtmosphericPressure {
		t.Errorf("ceiling of a rested diver: have %g, want %g", c, salt.AtmosphericPressure)
	}
	if m.LowestCeiling() != salt.AtmosphericPressure {
		t.Errorf("anchor of a rested diver: have %g, want the surface", m.LowestCeiling())
	}
	want := pressure.Humidified(salt.AtmosphericPressure, 0.79)
	for i, c := range m.Compartments() {
		if different(c.N2, want) || c.He != 0 {
			t.Errorf("compartment %d: have %+v, want N2=%g", i, c, want)
		}
	}
}

func TestAddPressureChange(t *testing.T) {
	m := newModel(t, 0.3, 0.7)
	if err := m.AddPressureChange(1, 2, gas.Air, 0); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("have %v, want %v", err, ErrInvalidDuration)
	}
	if err := m.AddPressureChange(1, 2, gas.Air, -1); err == nil {
		t.Error("negative duration should be an error")
	}

	// Long exposure saturates every compartment.
	p := salt.Pressure(20)
	if err := m.AddPressureChange(p, p, gas.Air, 20000); err != nil {
		t.Fatal(err)
	}
	want := pressure.Alveolar(p, gas.Air.N2())
	for i, c := range m.Compartments() {
		if math.Abs(c.N2-want) > 1.0e-6 {
			t.Errorf("compartment %d: have %g, want %g", i, c.N2, want)
		}
	}
}

func TestCeiling(t *testing.T) {
	m := newModel(t, 0.3, 0.7)
	if err := m.AddPressureChange(salt.Pressure(0), salt.Pressure(30), gas.Air, 3); err != nil {
		t.Fatal(err)
	}
	if err := m.AddPressureChange(salt.Pressure(30), salt.Pressure(30), gas.Air, 30); err != nil {
		t.Fatal(err)
	}
	c := m.Compartments()
	if different(c[0].N2, 3.1071900815114066) {
		t.Errorf("fastest compartment: have %g, want %g", c[0].N2, 3.1071900815114066)
	}
	if different(c[15].N2, 0.8361661443783843) {
		t.Errorf("slowest compartment: have %g, want %g", c[15].N2, 0.8361661443783843)
	}
	const want = 2.3106941209020286
	if have := m.Ceiling(); different(have, want) {
		t.Errorf("ceiling: have %g, want %g", have, want)
	}
	if have := m.LowestCeiling(); different(have, want) {
		t.Errorf("lowest ceiling: have %g, want %g", have, want)
	}
}

func TestCeilingTrimix(t *testing.T) {
	m := newModel(t, 0.3, 0.7)
	tx, err := gas.New(0.18, 0.45)
	if err != nil {
		t.Fatal(err)
	}
	p := salt.Pressure(30)
	if err := m.AddPressureChange(p, p, tx, 20); err != nil {
		t.Fatal(err)
	}
	c := m.Compartments()[0]
	if different(c.N2, 1.39666415109375) || different(c.He, 1.7617711311397328) {
		t.Errorf("have %+v", c)
	}
	if different(c.Total(), c.N2+c.He) {
		t.Errorf("total %g should be the sum of the partial pressures", c.Total())
	}
	const want = 2.2603418894514835
	if have := m.Ceiling(); different(have, want) {
		t.Errorf("ceiling: have %g, want %g", have, want)
	}
}

func TestCeilingShallowAnchor(t *testing.T) {
	m := newModel(t, 0.3, 0.7)
	p := salt.Pressure(20)
	if err := m.AddPressureChange(salt.Pressure(0), p, gas.Air, 4); err != nil {
		t.Fatal(err)
	}
	if err := m.AddPressureChange(p, p, gas.Air, 16); err != nil {
		t.Fatal(err)
	}
	// The gfLow ceiling is below the surface, but too shallow for the
	// gradient factor line to be steeper than the gfHigh line alone.
	if c := m.Ceiling(); c != salt.AtmosphericPressure {
		t.Errorf("ceiling: have %g, want the surface", c)
	}
	const anchor = 1.499609711558902
	if have := m.LowestCeiling(); different(have, anchor) {
		t.Errorf("anchor: have %g, want %g", have, anchor)
	}
}

func TestNoDecompressionLimit(t *testing.T) {
	ean32, _ := gas.Nitrox(0.32)
	tests := []struct {
		gfLow, gfHigh, depth float64
		g                    gas.Gas
		want                 int
	}{
		{gfLow: 0.3, gfHigh: 0.7, depth: 12, g: gas.Air, want: 85},
		{gfLow: 0.3, gfHigh: 0.7, depth: 18, g: gas.Air, want: 29},
		{gfLow: 0.3, gfHigh: 0.7, depth: 30, g: gas.Air, want: 9},
		{gfLow: 0.3, gfHigh: 0.7, depth: 40, g: gas.Air, want: 6},
		{gfLow: 0.3, gfHigh: 0.7, depth: 30, g: ean32, want: 14},
		{gfLow: 1, gfHigh: 1, depth: 12, g: gas.Air, want: 181},
		{gfLow: 1, gfHigh: 1, depth: 18, g: gas.Air, want: 60},
		{gfLow: 1, gfHigh: 1, depth: 30, g: gas.Air, want: 17},
		{gfLow: 1, gfHigh: 1, depth: 40, g: gas.Air, want: 9},
		{gfLow: 1, gfHigh: 1, depth: 0, g: gas.Air, want: MaxNoDecompressionLimit},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%g_%g_%gm_%s", test.gfLow, test.gfHigh, test.depth, test.g), func(t *testing.T) {
			m := newModel(t, test.gfLow, test.gfHigh)
			before := m.Snapshot()
			have, err := m.NoDecompressionLimit(test.depth, test.g)
			if err != nil {
				t.Fatal(err)
			}
			if have != test.want {
				t.Errorf("have %d, want %d", have, test.want)
			}
			if m.Snapshot() != before {
				t.Error("model state should not change")
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	m := newModel(t, 0.3, 0.7)
	p := salt.Pressure(40)
	if err := m.AddPressureChange(p, p, gas.Air, 10); err != nil {
		t.Fatal(err)
	}
	m.Ceiling()
	s := m.Snapshot()
	if err := m.AddPressureChange(p, salt.Pressure(60), gas.Air, 5); err != nil {
		t.Fatal(err)
	}
	m.Ceiling()
	if m.Snapshot() == s {
		t.Fatal("state should have changed")
	}
	if err := m.Restore(s); err != nil {
		t.Fatal(err)
	}
	if m.Snapshot() != s {
		t.Errorf("have %+v, want %+v", m.Snapshot(), s)
	}

	other, err := New(ZHL16B, salt, 0.3, 0.7)
	if err != nil {
		t.Fatal(err)
	}
	err = other.Restore(s)
	var vErr VersionMismatchError
	if !errors.As(err, &vErr) {
		t.Fatalf("have %v, want VersionMismatchError", err)
	}
	if vErr.Have != ZHL16C || vErr.Want != ZHL16B {
		t.Errorf("unexpected error %+v", vErr)
	}

	m.Reset()
	fresh := newModel(t, 0.3, 0.7)
	if m.Snapshot() != fresh.Snapshot() {
		t.Error("reset should return the model to its initial state")
	}
}

func TestSurfaceGF(t *testing.T) {
	m := newModel(t, 1, 1)
	if gf := m.SurfaceGF(); gf > 0 {
		t.Errorf("rested diver: have %g, want <= 0", gf)
	}
	p := salt.Pressure(30)
	if err := m.AddPressureChange(p, p, gas.Air, 30); err != nil {
		t.Fatal(err)
	}
	if gf := m.SurfaceGF(); gf <= 1 {
		t.Errorf("diver in deco: have %g, want > 1", gf)
	}
}

func TestCurrentCeiling(t *testing.T) {
	m := newModel(t, 0.3, 0.7)
	p := salt.Pressure(45)
	if err := m.AddPressureChange(p, p, gas.Air, 25); err != nil {
		t.Fatal(err)
	}
	anchor := m.LowestCeiling()
	have := m.CurrentCeiling()
	if m.LowestCeiling() != anchor {
		t.Error("CurrentCeiling should not move the anchor")
	}
	if want := m.Ceiling(); have != want {
		t.Errorf("have %g, want %g", have, want)
	}
	if m.LowestCeiling() <= anchor {
		t.Error("Ceiling should move the anchor")
	}
}
