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
	"testing"

	"github.com/spatialmodel/ascent/science/eos"
)

func airPlan(name string, depth float64, minutes int, size, fill float64) *DivePlan {
	return &DivePlan{
		Name:      name,
		Cylinders: []CylinderConfig{{Name: "back", O2: 0.21, Size: size, Pressure: fill}},
		Levels:    []Level{{Depth: depth, Minutes: minutes}},
	}
}

func TestDivePlan(t *testing.T) {
	cfg := testConfig(fresh, 0.3, 0.7)
	d, err := NewDive(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	r, err := d.Plan(airPlan("reef", 20, 20, 12, 200))
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != "reef" || r.Runtime != 24 || r.TTS != 4 || r.DecoTime != 0 {
		t.Errorf("unexpected result: runtime %d, tts %d, deco %d", r.Runtime, r.TTS, r.DecoTime)
	}
	if len(r.Segments) != 3 {
		t.Errorf("have %d segments, want 3", len(r.Segments))
	}
	if different(r.CNS, 2.7319780963654883, 1.0e-6) {
		t.Errorf("CNS: have %g, want 2.732", r.CNS)
	}
	if different(r.OTU, 5.443382575419147, 1.0e-6) {
		t.Errorf("OTU: have %g, want 5.443", r.OTU)
	}
	if len(r.Usage) != 1 {
		t.Fatalf("have %d cylinders, want 1", len(r.Usage))
	}
	if different(r.Usage[0].Used, 1270.892, 1.0e-6) {
		t.Errorf("gas used: have %g L, want 1270.892 L", r.Usage[0].Used)
	}
	if r.SurfaceGF <= 0 || r.SurfaceGF >= 1 {
		t.Errorf("surfacing GF %g outside (0, 1)", r.SurfaceGF)
	}
	if _, ok := r.AlternativeAscents[20]; !ok {
		t.Errorf("no alternative ascent at 20 min: %v", r.AlternativeAscents)
	}
}

func TestDivePlanDecoGas(t *testing.T) {
	cfg := testConfig(salt, 0.3, 0.7)
	cfg.LastStopDepth = 6
	d, err := NewDive(cfg, eos.Virial{})
	if err != nil {
		t.Fatal(err)
	}
	plan := &DivePlan{
		Name: "wall",
		Cylinders: []CylinderConfig{
			{Name: "back", O2: 0.21, Size: 24, Pressure: 200},
			{Name: "stage", O2: 0.5, Size: 11.1, Pressure: 207, Deco: true},
		},
		Levels: []Level{{Depth: 30, Minutes: 30, Cylinder: "back"}},
	}
	r, err := d.Plan(plan)
	if err != nil {
		t.Fatal(err)
	}
	if r.Runtime != 50 || r.TTS != 20 || r.DecoTime != 12 {
		t.Errorf("unexpected result: runtime %d, tts %d, deco %d", r.Runtime, r.TTS, r.DecoTime)
	}
	if different(r.CNS, 11.656653093547098, 1.0e-6) {
		t.Errorf("CNS: have %g, want 11.657", r.CNS)
	}
	if different(r.OTU, 34.64108223062465, 1.0e-6) {
		t.Errorf("OTU: have %g, want 34.641", r.OTU)
	}
	want := []struct {
		gas             string
		used, remaining float64
	}{
		{gas: "Air", used: 2387.8462839, remaining: 92.98435185923107},
		{gas: "EAN50", used: 518.3180548875, remaining: 156.65954616285308},
	}
	if len(r.Usage) != len(want) {
		t.Fatalf("have %d cylinders, want %d", len(r.Usage), len(want))
	}
	for i, w := range want {
		u := r.Usage[i]
		if u.Cylinder.Gas.String() != w.gas {
			t.Errorf("cylinder %d: have %s, want %s", i, u.Cylinder.Gas, w.gas)
		}
		if different(u.Used, w.used, 1.0e-6) {
			t.Errorf("%s used: have %g L, want %g L", w.gas, u.Used, w.used)
		}
		if different(u.Remaining, w.remaining, 1.0e-4) {
			t.Errorf("%s remaining: have %g bar, want %g bar", w.gas, u.Remaining, w.remaining)
		}
		if u.Exhausted {
			t.Errorf("%s should not be exhausted", w.gas)
		}
	}
}

func TestPlanSeries(t *testing.T) {
	cfg := testConfig(fresh, 0.85, 0.85)
	cfg.AscentRate = 6
	first := airPlan("first", 30, 30, 12, 232)
	second := airPlan("second", 30, 30, 12, 232)
	second.SurfaceInterval = 30
	results, err := PlanSeries(cfg, nil, []*DivePlan{first, second})
	if err != nil {
		t.Fatal(err)
	}
	want := []struct{ runtime, tts int }{{45, 15}, {64, 34}}
	for i, w := range want {
		if results[i].Runtime != w.runtime || results[i].TTS != w.tts {
			t.Errorf("dive %d: have runtime %d tts %d, want %d and %d",
				i+1, results[i].Runtime, results[i].TTS, w.runtime, w.tts)
		}
	}
	if results[1].DecoTime <= results[0].DecoTime {
		t.Errorf("repetitive dive should need more deco: %d <= %d", results[1].DecoTime, results[0].DecoTime)
	}
	if different(results[1].CNS, 11.65653326155978, 1.0e-6) {
		t.Errorf("series CNS: have %g, want 11.657", results[1].CNS)
	}
	if different(results[1].OTU, 38.66697443764151, 1.0e-6) {
		t.Errorf("series OTU: have %g, want 38.667", results[1].OTU)
	}
}

func TestExhaustedCylinder(t *testing.T) {
	d, err := NewDive(testConfig(salt, 0.3, 0.7), eos.Ideal{})
	if err != nil {
		t.Fatal(err)
	}
	r, err := d.Plan(airPlan("deep", 40, 30, 3, 100))
	if err != nil {
		t.Fatal(err)
	}
	if !r.Usage[0].Exhausted || r.Usage[0].Remaining != 0 {
		t.Errorf("a 3 L cylinder should run out: %+v", r.Usage[0])
	}
}

func TestDivePlanErrors(t *testing.T) {
	d, err := NewDive(DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, plan := range []*DivePlan{
		{Name: "no levels", Cylinders: []CylinderConfig{{Name: "a", O2: 0.21, Size: 12, Pressure: 200}}},
		{Name: "no bottom gas", Cylinders: []CylinderConfig{{Name: "a", O2: 0.5, Size: 12, Pressure: 200, Deco: true}},
			Levels: []Level{{Depth: 10, Minutes: 10}}},
		{Name: "bad gas", Cylinders: []CylinderConfig{{Name: "a", O2: 0.8, He: 0.5, Size: 12, Pressure: 200}},
			Levels: []Level{{Depth: 10, Minutes: 10}}},
		{Name: "surface only", Cylinders: []CylinderConfig{{Name: "a", O2: 0.21, Size: 12, Pressure: 200}},
			Levels: []Level{{Depth: 0, Minutes: 0}}},
	} {
		if _, err := d.Plan(plan); err == nil {
			t.Errorf("%s: expected an error", plan.Name)
		}
	}
}
