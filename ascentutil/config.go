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

package ascentutil

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/ascent"
	"github.com/spatialmodel/ascent/science/buhlmann"
	"github.com/spatialmodel/ascent/science/eos"
	"github.com/spatialmodel/ascent/science/pressure"
	"github.com/spf13/cast"
)

// PlannerConfig unmarshals planner settings and the display units from
// a viper configuration. Gradient factors are given in percent.
func PlannerConfig(cfg *viper.Viper) (ascent.Config, unitSystem, error) {
	c := ascent.DefaultConfig()
	u, err := parseUnits(cfg.GetString("units"))
	if err != nil {
		return c, u, err
	}
	if c.Model, err = buhlmann.ParseVersion(cfg.GetString("model")); err != nil {
		return c, u, err
	}
	s, err := pressure.ParseSalinity(strings.ToLower(cfg.GetString("salinity")))
	if err != nil {
		return c, u, err
	}
	altitude := cfg.GetFloat64("altitude")
	if altitude < 0 {
		return c, u, fmt.Errorf("ascent: altitude=%g but should be >=0", altitude)
	}
	if c.Environment, err = pressure.NewEnvironment(s, pressure.AltitudePressure(altitude)); err != nil {
		return c, u, err
	}
	c.GFLow = cfg.GetFloat64("gf_low") / 100
	c.GFHigh = cfg.GetFloat64("gf_high") / 100
	c.AscentRate = cfg.GetFloat64("ascent_rate")
	c.DescentRate = cfg.GetFloat64("descent_rate")
	c.DecoStepSize = cfg.GetFloat64("deco_step")
	c.LastStopDepth = cfg.GetFloat64("last_stop")
	c.ForceMinimalDecoStopTime = cfg.GetBool("force_min_stop")
	c.MaxPPO2 = cfg.GetFloat64("max_ppo2")
	c.MaxEND = cfg.GetFloat64("max_end")
	c.BottomSAC = cfg.GetFloat64("bottom_sac")
	c.DecoSAC = cfg.GetFloat64("deco_sac")
	if err := c.Validate(); err != nil {
		return c, u, err
	}
	return c, u, nil
}

// EquationOfState returns the equation of state selected by the
// "ideal" option.
func EquationOfState(cfg *viper.Viper) eos.EquationOfState {
	if cfg.GetBool("ideal") {
		return eos.Ideal{}
	}
	return eos.Virial{}
}

// toFloat64SliceE reads a list of numbers that may come from a
// configuration file array, a command-line flag, or a JSON string.
func toFloat64SliceE(s interface{}) ([]float64, error) {
	var vals []interface{}
	switch v := s.(type) {
	case []float64:
		return v, nil
	case []interface{}:
		vals = v
	case []string:
		for _, x := range v {
			vals = append(vals, strings.TrimSpace(x))
		}
	case string:
		var o []float64
		if err := json.Unmarshal([]byte(v), &o); err == nil {
			return o, nil
		}
		for _, x := range strings.Split(strings.Trim(v, "[]"), ",") {
			vals = append(vals, strings.TrimSpace(x))
		}
	default:
		return nil, fmt.Errorf("invalid list %#v", s)
	}
	o := make([]float64, len(vals))
	for i, v := range vals {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, err
		}
		o[i] = f
	}
	return o, nil
}

// unitSystem converts between the units used on the command line and
// the metric units used by the planner.
type unitSystem string

const (
	metric   unitSystem = "metric"
	imperial unitSystem = "imperial"
)

func parseUnits(s string) (unitSystem, error) {
	switch u := unitSystem(strings.ToLower(s)); u {
	case metric, imperial:
		return u, nil
	}
	return metric, fmt.Errorf("ascent: units must be metric or imperial, not %q", s)
}

// depth converts a user depth to meters.
func (u unitSystem) depth(v float64) (float64, error) {
	if u == imperial {
		return pressure.ToMeters(pressure.Foot(v))
	}
	return v, nil
}

// showDepth converts meters to the user depth unit.
func (u unitSystem) showDepth(m float64) (float64, error) {
	if u == imperial {
		return pressure.ToFeet(pressure.Meter(m))
	}
	return m, nil
}

// pressure converts a user cylinder pressure to bar.
func (u unitSystem) pressure(v float64) (float64, error) {
	if u == imperial {
		return pressure.ToBar(pressure.PSI(v))
	}
	return v, nil
}

// showPressure converts bar to the user pressure unit.
func (u unitSystem) showPressure(bar float64) (float64, error) {
	if u == imperial {
		return pressure.ToPSI(pressure.Bar(bar))
	}
	return bar, nil
}

// volume converts a user gas volume to liters.
func (u unitSystem) volume(v float64) (float64, error) {
	if u == imperial {
		return pressure.ToLiters(pressure.CubicFoot(v))
	}
	return v, nil
}

// showVolume converts liters to the user volume unit.
func (u unitSystem) showVolume(l float64) (float64, error) {
	if u == imperial {
		return pressure.ToCubicFeet(pressure.Liter(l))
	}
	return l, nil
}

func (u unitSystem) depthUnit() string {
	if u == imperial {
		return "ft"
	}
	return "m"
}

func (u unitSystem) pressureUnit() string {
	if u == imperial {
		return "psi"
	}
	return "bar"
}

func (u unitSystem) volumeUnit() string {
	if u == imperial {
		return "cuft"
	}
	return "L"
}
