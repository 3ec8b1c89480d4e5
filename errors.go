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
	"errors"
	"fmt"
)

// ErrNoSegments is returned when decompression is requested before any
// part of the dive has been planned.
var ErrNoSegments = errors.New("ascent: no dive segments to decompress from")

// TargetDepthError is returned when an ascent is requested to a depth
// deeper than the diver is.
type TargetDepthError struct {
	Current, Target float64
}

func (e *TargetDepthError) Error() string {
	return fmt.Sprintf("ascent: target depth %g m is deeper than the current depth %g m", e.Target, e.Current)
}

// PlanningError is returned when no schedule can be found with the
// current settings, for example because the ceiling never clears the
// next stop.
type PlanningError struct {
	Depth   float64
	Minutes int
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("ascent: cannot complete plan under current settings: "+
		"stop at %g m did not clear after %d minutes", e.Depth, e.Minutes)
}
