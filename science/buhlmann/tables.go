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
	"fmt"
	"strings"
)

// NumCompartments is the number of tissue compartments in the model.
const NumCompartments = 16

// Version selects one of the ZH-L16 coefficient sets.
type Version int

// ZH-L16 coefficient sets. A is the original experimental set, B is
// intended for printed tables and C for dive computers.
const (
	ZHL16A Version = iota
	ZHL16B
	ZHL16C
)

func (v Version) String() string {
	switch v {
	case ZHL16A:
		return "ZH-L16A"
	case ZHL16B:
		return "ZH-L16B"
	case ZHL16C:
		return "ZH-L16C"
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// ParseVersion returns the version named s, e.g. "ZH-L16C" or "c".
func ParseVersion(s string) (Version, error) {
	switch strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "ZH-L16") {
	case "A":
		return ZHL16A, nil
	case "B":
		return ZHL16B, nil
	case "C":
		return ZHL16C, nil
	}
	return 0, fmt.Errorf("buhlmann: invalid model version %q", s)
}

// Parameters holds the half-times [min] and M-value coefficients of
// one compartment for nitrogen and helium.
type Parameters struct {
	N2HalfTime, N2A, N2B float64
	HeHalfTime, HeA, HeB float64
}

var (
	n2HalfTime = [NumCompartments]float64{5.0, 8.0, 12.5, 18.5, 27.0, 38.3, 54.3, 77.0,
		109.0, 146.0, 187.0, 239.0, 305.0, 390.0, 498.0, 635.0}
	n2AC = [NumCompartments]float64{1.1696, 1.0, 0.8618, 0.7562, 0.6200, 0.5043, 0.4410, 0.4000,
		0.3750, 0.3500, 0.3295, 0.3065, 0.2835, 0.2610, 0.2480, 0.2327}
	n2AB = [NumCompartments]float64{1.1696, 1.0, 0.8618, 0.7562, 0.6667, 0.5600, 0.4947, 0.4500,
		0.4187, 0.3798, 0.3497, 0.3223, 0.2850, 0.2737, 0.2523, 0.2327}
	n2AA = [NumCompartments]float64{1.2599, 1.0, 0.8618, 0.7562, 0.6667, 0.5933, 0.5282, 0.4701,
		0.4187, 0.3798, 0.3497, 0.3223, 0.2971, 0.2737, 0.2523, 0.2327}
	n2B = [NumCompartments]float64{0.5578, 0.6514, 0.7222, 0.7825, 0.8126, 0.8434, 0.8693, 0.8910,
		0.9092, 0.9222, 0.9319, 0.9403, 0.9477, 0.9544, 0.9602, 0.9653}

	heHalfTime = [NumCompartments]float64{1.88, 3.02, 4.72, 6.99, 10.21, 14.48, 20.53, 29.11,
		41.20, 55.19, 70.69, 90.34, 115.29, 147.42, 188.24, 240.03}
	heA = [NumCompartments]float64{1.6189, 1.3830, 1.1919, 1.0458, 0.9220, 0.8205, 0.7305, 0.6502,
		0.5950, 0.5545, 0.5333, 0.5189, 0.5181, 0.5176, 0.5172, 0.5119}
	heB = [NumCompartments]float64{0.4770, 0.5747, 0.6527, 0.7223, 0.7582, 0.7957, 0.8279, 0.8553,
		0.8757, 0.8903, 0.8997, 0.9073, 0.9122, 0.9171, 0.9217, 0.9267}
)

// Table returns the compartment parameters for version v.
func (v Version) Table() ([NumCompartments]Parameters, error) {
	var t [NumCompartments]Parameters
	var n2A *[NumCompartments]float64
	switch v {
	case ZHL16A:
		n2A = &n2AA
	case ZHL16B:
		n2A = &n2AB
	case ZHL16C:
		n2A = &n2AC
	default:
		return t, fmt.Errorf("buhlmann: invalid model version %d", int(v))
	}
	for i := range t {
		t[i] = Parameters{
			N2HalfTime: n2HalfTime[i], N2A: n2A[i], N2B: n2B[i],
			HeHalfTime: heHalfTime[i], HeA: heA[i], HeB: heB[i],
		}
	}
	if v == ZHL16A {
		// The fastest compartment of the original set is faster still.
		t[0].N2HalfTime = 4.0
		t[0].N2B = 0.5050
		t[0].HeHalfTime = 1.51
		t[0].HeA = 1.7424
		t[0].HeB = 0.4245
	}
	return t, nil
}
