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

	"github.com/spatialmodel/ascent/science/buhlmann"
	"github.com/spatialmodel/ascent/science/pressure"
)

// Config holds the settings that control how a decompression plan is
// computed.
type Config struct {
	// Model is the ZH-L16 coefficient set.
	Model buhlmann.Version

	Environment pressure.Environment

	// AscentRate and DescentRate are travel speeds [m min-1].
	AscentRate, DescentRate float64

	// GFLow and GFHigh are the gradient factors as fractions.
	GFLow, GFHigh float64

	// DecoStepSize is the distance [m] between decompression stops.
	DecoStepSize float64

	// LastStopDepth is the depth [m] of the shallowest stop.
	LastStopDepth float64

	// ForceMinimalDecoStopTime makes every stop at least one minute long,
	// even when the ceiling has already cleared the next stop.
	ForceMinimalDecoStopTime bool

	// MaxPPO2 [bar] and MaxEND [m] limit which decompression gases may
	// be used at a given depth.
	MaxPPO2, MaxEND float64

	// BottomSAC and DecoSAC are surface air consumption rates [L min-1].
	BottomSAC, DecoSAC float64
}

// DefaultConfig returns ZH-L16C with gradient factors 30/70 in salt
// water at sea level.
func DefaultConfig() Config {
	return Config{
		Model:         buhlmann.ZHL16C,
		Environment:   pressure.DefaultEnvironment(),
		AscentRate:    5,
		DescentRate:   5,
		GFLow:         0.3,
		GFHigh:        0.7,
		DecoStepSize:  3,
		LastStopDepth: 3,
		MaxPPO2:       1.6,
		MaxEND:        30,
		BottomSAC:     20,
		DecoSAC:       15,
	}
}

// Validate checks that c describes a plan that can be computed.
func (c Config) Validate() error {
	if c.AscentRate <= 0 || c.DescentRate <= 0 {
		return fmt.Errorf("ascent: invalid ascent/descent rate %g/%g m/min", c.AscentRate, c.DescentRate)
	}
	if c.GFLow <= 0 || c.GFLow > 1 || c.GFHigh <= 0 || c.GFHigh > 1 {
		return fmt.Errorf("ascent: gradient factors %g/%g out of range (0, 1]", c.GFLow, c.GFHigh)
	}
	if c.DecoStepSize <= 0 {
		return fmt.Errorf("ascent: invalid decompression step size %g m", c.DecoStepSize)
	}
	if c.LastStopDepth <= 0 {
		return fmt.Errorf("ascent: invalid last stop depth %g m", c.LastStopDepth)
	}
	if c.MaxPPO2 <= 0 || c.MaxEND <= 0 {
		return fmt.Errorf("ascent: invalid gas limits ppO2=%g END=%g", c.MaxPPO2, c.MaxEND)
	}
	if c.BottomSAC < 0 || c.DecoSAC < 0 {
		return fmt.Errorf("ascent: invalid gas consumption %g/%g L/min", c.BottomSAC, c.DecoSAC)
	}
	return nil
}
