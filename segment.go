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

	"github.com/spatialmodel/ascent/science/gas"
)

// SegmentType is the direction of travel during a segment.
type SegmentType int

// Segment types.
const (
	Flat SegmentType = iota
	Descent
	Ascent
)

func (t SegmentType) String() string {
	switch t {
	case Descent:
		return "descent"
	case Ascent:
		return "ascent"
	}
	return "flat"
}

// DiveSegment is one leg of a dive plan. Times are in whole minutes
// since the start of the dive and depths in meters.
type DiveSegment struct {
	Start, Duration      int
	StartDepth, EndDepth float64
	Cylinder             gas.Cylinder

	// Deco is true for segments added while decompressing.
	Deco bool

	// Ceiling is the decompression ceiling [m] at the end of the
	// segment.
	Ceiling float64
}

// Type returns whether the segment goes up, down, or neither.
func (s DiveSegment) Type() SegmentType {
	switch {
	case s.EndDepth > s.StartDepth:
		return Descent
	case s.EndDepth < s.StartDepth:
		return Ascent
	}
	return Flat
}

// End returns the runtime at the end of the segment.
func (s DiveSegment) End() int { return s.Start + s.Duration }

// IsStop reports whether s is a decompression stop.
func (s DiveSegment) IsStop() bool { return s.Deco && s.Type() == Flat }

func (s DiveSegment) String() string {
	return fmt.Sprintf("%3d %3d min %6s %5.1f→%5.1f m %s", s.Start, s.Duration, s.Type(),
		s.StartDepth, s.EndDepth, s.Cylinder.Gas)
}

// Duration returns the total duration of segments [min].
func Duration(segments []DiveSegment) int {
	var d int
	for _, s := range segments {
		d += s.Duration
	}
	return d
}
