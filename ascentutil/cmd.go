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

// Package ascentutil contains the command-line interface for the Ascent
// decompression planner.
package ascentutil

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/ascent"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	d := ascent.DefaultConfig()

	// Options are the configuration options available to Ascent.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "log_level",
			usage: `
              log_level is the minimum severity of log messages to print:
              debug, info, warning, or error. Gas switches and stops are
              logged at the debug level.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "units",
			usage: `
              units is either "metric" (meters, bar, liters) or "imperial"
              (feet, psi, cubic feet) for depths, cylinder pressures, and
              gas volumes given on the command line and printed in results.
              Cylinder sizes are always water volumes in liters, and
              planner settings such as rates and stop depths are always metric.`,
			defaultVal: "metric",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "model",
			usage: `
              model is the Bühlmann coefficient set: ZH-L16A, ZH-L16B, or ZH-L16C.`,
			defaultVal: d.Model.String(),
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "salinity",
			usage: `
              salinity is the water type: fresh, en13319, or salt.`,
			defaultVal: d.Environment.Salinity.String(),
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "altitude",
			usage: `
              altitude is the elevation of the water surface above sea level [m].
              It sets the atmospheric pressure.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "gf_low",
			usage: `
              gf_low is the gradient factor [%] that sets the first stop.`,
			defaultVal: d.GFLow * 100,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "gf_high",
			usage: `
              gf_high is the gradient factor [%] allowed on surfacing.`,
			defaultVal: d.GFHigh * 100,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "ascent_rate",
			usage: `
              ascent_rate is the ascent speed [m/min].`,
			defaultVal: d.AscentRate,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "descent_rate",
			usage: `
              descent_rate is the descent speed [m/min].`,
			defaultVal: d.DescentRate,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "deco_step",
			usage: `
              deco_step is the distance [m] between decompression stops.`,
			defaultVal: d.DecoStepSize,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "last_stop",
			usage: `
              last_stop is the depth [m] of the shallowest decompression stop.`,
			defaultVal: d.LastStopDepth,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "force_min_stop",
			usage: `
              force_min_stop specifies whether every stop on the way up
              is held for at least one minute, even if the ceiling allows
              the diver to continue.`,
			defaultVal: d.ForceMinimalDecoStopTime,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "max_ppo2",
			usage: `
              max_ppo2 is the highest oxygen partial pressure [bar] a
              decompression gas may be switched to.`,
			defaultVal: d.MaxPPO2,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "max_end",
			usage: `
              max_end is the deepest equivalent narcotic depth [m] a
              decompression gas may be switched to. Oxygen counts as narcotic.`,
			defaultVal: d.MaxEND,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "bottom_sac",
			usage: `
              bottom_sac is the surface air consumption [L/min] outside of
              decompression stops.`,
			defaultVal: d.BottomSAC,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "deco_sac",
			usage: `
              deco_sac is the surface air consumption [L/min] during the
              decompression part of the ascent.`,
			defaultVal: d.DecoSAC,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "ideal",
			usage: `
              ideal specifies whether to treat breathing gases as ideal
              gases when converting between cylinder pressure and gas
              volume. By default a virial equation of state is used.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "plan",
			usage: `
              plan is the path to a TOML file with one [[Dive]] table per
              dive. Can include environment variables.`,
			shorthand:  "p",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{planCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "xlsx",
			usage: `
              xlsx is the path of an Excel workbook to write the plan to.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{planCmd.Flags()},
		},
		{
			name: "png",
			usage: `
              png is the path of an image to draw the depth profile to.
              With more than one dive, the dive number is added to the name.
              The format follows the file extension (png, svg, pdf, ...).`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{planCmd.Flags()},
		},
		{
			name: "depth",
			usage: `
              depth is the dive depth.`,
			shorthand:  "d",
			defaultVal: 18.0,
			flagsets:   []*pflag.FlagSet{ndlCmd.Flags()},
		},
		{
			name: "o2",
			usage: `
              o2 is the oxygen fraction of the breathing gas.`,
			defaultVal: 0.21,
			flagsets:   []*pflag.FlagSet{ndlCmd.Flags(), gasCmd.Flags()},
		},
		{
			name: "he",
			usage: `
              he is the helium fraction of the breathing gas.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{ndlCmd.Flags(), gasCmd.Flags()},
		},
		{
			name: "size",
			usage: `
              size is the water volume of the cylinder [L].`,
			defaultVal: 12.0,
			flagsets:   []*pflag.FlagSet{gasCmd.Flags()},
		},
		{
			name: "pressure",
			usage: `
              pressure is the cylinder pressure. If it is zero, the pressure
              is calculated from --volume instead.`,
			defaultVal: 200.0,
			flagsets:   []*pflag.FlagSet{gasCmd.Flags()},
		},
		{
			name: "volume",
			usage: `
              volume is the amount of gas in the cylinder at surface
              pressure. It is only used when --pressure is zero.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{gasCmd.Flags()},
		},
		{
			name: "gf_lows",
			usage: `
              gf_lows is the list of low gradient factors [%] to plan with.`,
			defaultVal: []string{"20", "30", "40", "50"},
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "gf_highs",
			usage: `
              gf_highs is the list of high gradient factors [%] to plan with.`,
			defaultVal: []string{"70", "80", "85", "90"},
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "workers",
			usage: `
              workers is the number of plans computed at the same time.`,
			defaultVal: runtime.GOMAXPROCS(-1),
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("ASCENT")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
			case bool:
				set.Bool(option.name, option.defaultVal.(bool), option.usage)
			case int:
				set.Int(option.name, option.defaultVal.(int), option.usage)
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
		}
		Cfg.BindPFlag(option.name, option.flagsets[0].Lookup(option.name))
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(planCmd)
	Root.AddCommand(ndlCmd)
	Root.AddCommand(gasCmd)
	Root.AddCommand(sweepCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets up logging.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("ascent: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("log_level"))
	if err != nil {
		return fmt.Errorf("ascent: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
	})
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "ascent",
	Short: "A Bühlmann decompression planner.",
	Long: `Ascent plans decompression for open-circuit dives using the Bühlmann
ZH-L16 tissue model with gradient factors. Use the subcommands specified
below to access the planner functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'ASCENT_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of Ascent.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("Ascent v%s\n", ascent.Version)
	},
	DisableAutoGenTag: true,
}

// planCmd plans the dives in a plan file.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a series of dives.",
	Long: `plan computes the ascent for every dive in the file given by --plan,
carrying tissue loading and oxygen exposure from one dive to the next.
The schedule is printed to standard output and can additionally be saved
as a workbook (--xlsx) and a depth profile image (--png).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, u, err := PlannerConfig(Cfg)
		if err != nil {
			return err
		}
		return Plan(cmd.OutOrStdout(), c, EquationOfState(Cfg), u,
			Cfg.GetString("plan"), Cfg.GetString("xlsx"), Cfg.GetString("png"))
	},
	DisableAutoGenTag: true,
}

// ndlCmd prints the no-decompression limit.
var ndlCmd = &cobra.Command{
	Use:   "ndl",
	Short: "Print the no-decompression limit.",
	Long: `ndl prints how long a diver starting with surface-saturated tissues
can stay at --depth breathing the gas given by --o2 and --he before a
decompression stop becomes necessary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, u, err := PlannerConfig(Cfg)
		if err != nil {
			return err
		}
		return NDL(cmd.OutOrStdout(), c, u, Cfg.GetFloat64("depth"), Cfg.GetFloat64("o2"), Cfg.GetFloat64("he"))
	},
	DisableAutoGenTag: true,
}

// gasCmd converts between cylinder pressure and gas volume.
var gasCmd = &cobra.Command{
	Use:   "gas",
	Short: "Convert between cylinder pressure and gas volume.",
	Long: `gas prints the amount of gas in a cylinder of water volume --size
filled to --pressure, or, if --pressure is zero, the pressure a cylinder
holding --volume of gas is filled to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := parseUnits(Cfg.GetString("units"))
		if err != nil {
			return err
		}
		return Gas(cmd.OutOrStdout(), EquationOfState(Cfg), u, Cfg.GetFloat64("o2"), Cfg.GetFloat64("he"),
			Cfg.GetFloat64("size"), Cfg.GetFloat64("pressure"), Cfg.GetFloat64("volume"))
	},
	DisableAutoGenTag: true,
}

// sweepCmd plans a dive over a grid of gradient factors.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare gradient factors.",
	Long: `sweep plans the dives in the file given by --plan once for every
combination of --gf_lows and --gf_highs and prints the runtime and
decompression time of the last dive for each.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := PlannerConfig(Cfg)
		if err != nil {
			return err
		}
		lows, err := toFloat64SliceE(Cfg.Get("gf_lows"))
		if err != nil {
			return fmt.Errorf("ascent: reading 'gf_lows': %v", err)
		}
		highs, err := toFloat64SliceE(Cfg.Get("gf_highs"))
		if err != nil {
			return fmt.Errorf("ascent: reading 'gf_highs': %v", err)
		}
		return Sweep(context.Background(), cmd.OutOrStdout(), c, EquationOfState(Cfg),
			Cfg.GetString("plan"), lows, highs, Cfg.GetInt("workers"))
	},
	DisableAutoGenTag: true,
}
