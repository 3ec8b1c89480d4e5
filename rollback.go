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

import "github.com/spatialmodel/ascent/science/buhlmann"

// planState is everything a speculative calculation may change.
type planState struct {
	model        buhlmann.Snapshot
	segments     []DiveSegment
	alternatives map[int][]DiveSegment
	runtime      int
}

func (p *Planner) save() planState {
	s := planState{
		model:        p.model.Snapshot(),
		segments:     append([]DiveSegment(nil), p.segments...),
		alternatives: make(map[int][]DiveSegment, len(p.alternatives)),
		runtime:      p.runtime,
	}
	for k, v := range p.alternatives {
		s.alternatives[k] = v
	}
	return s
}

func (p *Planner) load(s planState) error {
	if err := p.model.Restore(s.model); err != nil {
		return err
	}
	p.segments = s.segments
	p.alternatives = s.alternatives
	p.runtime = s.runtime
	return nil
}

// Speculate runs body against the live plan and then puts the tissue
// loading, segments, alternative ascents, and clock back the way they
// were, unless body returns keep. The result of body is returned either
// way. If body fails the state is always restored.
func (p *Planner) Speculate(body func() (result interface{}, keep bool, err error)) (interface{}, error) {
	saved := p.save()
	result, keep, err := body()
	if err != nil || !keep {
		if lerr := p.load(saved); lerr != nil {
			return nil, lerr
		}
	}
	return result, err
}
