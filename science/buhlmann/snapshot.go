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

import "fmt"

// Snapshot is a saved copy of a Model's state.
type Snapshot struct {
	Version       Version
	Compartments  [NumCompartments]Compartment
	LowestCeiling float64
}

// VersionMismatchError is returned when restoring a snapshot taken from
// a model with a different coefficient set.
type VersionMismatchError struct {
	Have, Want Version
}

func (e VersionMismatchError) Error() string {
	return fmt.Sprintf("buhlmann: snapshot version %s is incompatible with model version %s", e.Have, e.Want)
}

// Snapshot returns a copy of the current state.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{
		Version:       m.version,
		Compartments:  m.compartments,
		LowestCeiling: m.lowestCeiling,
	}
}

// Restore replaces the current state with s.
func (m *Model) Restore(s Snapshot) error {
	if s.Version != m.version {
		return VersionMismatchError{Have: s.Version, Want: m.version}
	}
	m.restore(s)
	return nil
}

func (m *Model) restore(s Snapshot) {
	m.compartments = s.Compartments
	m.lowestCeiling = s.LowestCeiling
}
