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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/gonum/floats"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/ascent"
	"github.com/spatialmodel/ascent/science/buhlmann"
	"github.com/spatialmodel/ascent/science/eos"
	"github.com/spatialmodel/ascent/science/gas"
)

// readPlans reads the dive plan file at path, which can include
// environment variables.
func readPlans(path string) ([]*ascent.DivePlan, error) {
	if path == "" {
		return nil, fmt.Errorf("ascent: you need to specify a dive plan file (for example: --plan=dive.toml)")
	}
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("ascent: opening dive plan: %v", err)
	}
	defer f.Close()
	return ascent.ReadPlans(f)
}

// Plan plans the dives in planFile and writes the schedules to w. If
// xlsxFile or pngFile are not empty, the schedules are also saved there.
func Plan(w io.Writer, c ascent.Config, e eos.EquationOfState, u unitSystem, planFile, xlsxFile, pngFile string) error {
	plans, err := readPlans(planFile)
	if err != nil {
		return err
	}
	results, err := ascent.PlanSeries(c, e, plans, ascent.WithLogger(logrus.StandardLogger()))
	if err != nil {
		return err
	}
	for i, r := range results {
		if err := writeResult(w, i, r, u); err != nil {
			return err
		}
	}
	if xlsxFile != "" {
		if err := createAndWrite(os.ExpandEnv(xlsxFile), func(f io.Writer) error {
			return ascent.WriteXLSX(f, results)
		}); err != nil {
			return err
		}
	}
	if pngFile != "" {
		for i, r := range results {
			r := r
			name := profileFileName(os.ExpandEnv(pngFile), i, len(results))
			format := strings.TrimPrefix(filepath.Ext(name), ".")
			if err := createAndWrite(name, func(f io.Writer) error {
				return ascent.WriteProfile(f, r, format)
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// profileFileName adds the dive number to name when there is more than
// one dive.
func profileFileName(name string, i, n int) string {
	if n == 1 {
		return name
	}
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), i+1, ext)
}

func createAndWrite(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("ascent: %v", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeResult prints the schedule and summary of dive i.
func writeResult(w io.Writer, i int, r *ascent.Result, u unitSystem) error {
	name := r.Name
	if name == "" {
		name = fmt.Sprintf("dive %d", i+1)
	}
	fmt.Fprintf(w, "%s\n", name)
	tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	fmt.Fprintf(tw, "runtime\tminutes\tdepth (%s)\tgas\tstop\tceiling (%s)\n", u.depthUnit(), u.depthUnit())
	for _, s := range r.Segments {
		from, err := u.showDepth(s.StartDepth)
		if err != nil {
			return err
		}
		to, err := u.showDepth(s.EndDepth)
		if err != nil {
			return err
		}
		ceiling, err := u.showDepth(s.Ceiling)
		if err != nil {
			return err
		}
		depth := fmt.Sprintf("%.0f", to)
		if from != to {
			depth = fmt.Sprintf("%.0f-%.0f", from, to)
		}
		stop := ""
		if s.IsStop() {
			stop = "deco"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%.1f\n", s.End(), s.Duration, depth, s.Cylinder.Gas, stop, ceiling)
	}
	tw.Flush()
	fmt.Fprintf(w, "runtime %d min, deco %d min, time to surface %d min\n", r.Runtime, r.DecoTime, r.TTS)
	fmt.Fprintf(w, "CNS %.1f%%, OTU %.0f, surfacing GF %.0f%%\n", r.CNS, r.OTU, r.SurfaceGF*100)
	for _, cu := range r.Usage {
		used, err := u.showVolume(cu.Used)
		if err != nil {
			return err
		}
		if cu.Exhausted {
			fmt.Fprintf(w, "%s: %.0f %s used, EXHAUSTED\n", cu.Cylinder, used, u.volumeUnit())
			continue
		}
		left, err := u.showPressure(cu.Remaining)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %.0f %s used, %.0f %s left\n", cu.Cylinder, used, u.volumeUnit(), left, u.pressureUnit())
	}
	fmt.Fprintln(w)
	return nil
}

// NDL writes the no-decompression limit at depth for a gas with the
// given oxygen and helium fractions.
func NDL(w io.Writer, c ascent.Config, u unitSystem, depth, o2, he float64) error {
	g, err := gas.New(o2, he)
	if err != nil {
		return err
	}
	d, err := u.depth(depth)
	if err != nil {
		return err
	}
	if mod := g.MOD(c.Environment, c.MaxPPO2); d > mod {
		logrus.WithFields(logrus.Fields{
			"gas":   g.String(),
			"depth": d,
			"mod":   mod,
		}).Warn("depth is below the maximum operating depth")
	}
	m, err := buhlmann.New(c.Model, c.Environment, c.GFLow, c.GFHigh)
	if err != nil {
		return err
	}
	ndl, err := m.NoDecompressionLimit(d, g)
	if err != nil {
		return err
	}
	limit := fmt.Sprintf("%d min", ndl)
	if ndl >= buhlmann.MaxNoDecompressionLimit {
		limit = "no limit"
	}
	fmt.Fprintf(w, "%s at %g %s, %s GF %.0f/%.0f: %s\n", g, depth, u.depthUnit(), c.Model,
		c.GFLow*100, c.GFHigh*100, limit)
	return nil
}

// Gas writes the gas volume of a cylinder of water volume size [L]
// filled to cylinderPressure, or, if cylinderPressure is zero, the fill
// pressure of a cylinder holding volume.
func Gas(w io.Writer, e eos.EquationOfState, u unitSystem, o2, he, size, cylinderPressure, volume float64) error {
	g, err := gas.New(o2, he)
	if err != nil {
		return err
	}
	if !(size > 0) {
		return fmt.Errorf("ascent: size=%g but should be >0", size)
	}
	if cylinderPressure > 0 {
		bar, err := u.pressure(cylinderPressure)
		if err != nil {
			return err
		}
		v, err := u.showVolume(e.Volume(g, size, bar))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%g L of %s at %g %s holds %.1f %s\n", size, g, cylinderPressure, u.pressureUnit(), v, u.volumeUnit())
		return nil
	}
	if !(volume > 0) {
		return fmt.Errorf("ascent: either pressure or volume must be >0")
	}
	l, err := u.volume(volume)
	if err != nil {
		return err
	}
	bar, err := e.Pressure(g, size, l)
	if err != nil {
		return err
	}
	p, err := u.showPressure(bar)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%g %s of %s fills %g L to %.1f %s\n", volume, u.volumeUnit(), g, size, p, u.pressureUnit())
	return nil
}

// SweepResult is the last dive of a series planned with one pair of
// gradient factors [%].
type SweepResult struct {
	GFLow, GFHigh     float64
	Runtime, DecoTime int
	Err               error
}

// Sweep plans the dives in planFile for every combination of lows and
// highs [%] on the given number of workers and writes a table of
// runtime/deco time for the last dive to w.
func Sweep(ctx context.Context, w io.Writer, c ascent.Config, e eos.EquationOfState, planFile string, lows, highs []float64, workers int) error {
	plans, err := readPlans(planFile)
	if err != nil {
		return err
	}
	if workers < 1 {
		workers = 1
	}
	grid, err := SweepGradientFactors(ctx, c, e, plans, lows, highs, workers)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	fmt.Fprint(tw, "GF low \\ high")
	for _, h := range highs {
		fmt.Fprintf(tw, "\t%g", h)
	}
	fmt.Fprintln(tw)
	for i, l := range lows {
		fmt.Fprintf(tw, "%g", l)
		for j := range highs {
			r := grid[i][j]
			if r.Err != nil {
				fmt.Fprint(tw, "\tfailed")
				continue
			}
			fmt.Fprintf(tw, "\t%d/%d", r.Runtime, r.DecoTime)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
	fmt.Fprintln(w, "runtime/deco time [min] of the last dive")
	return nil
}

// SweepGradientFactors plans plans for every combination of lows and
// highs [%] in parallel. Combinations that cannot be planned, for
// example gradient factors above 100%, are reported in the Err field
// of their result.
func SweepGradientFactors(ctx context.Context, c ascent.Config, e eos.EquationOfState, plans []*ascent.DivePlan, lows, highs []float64, workers int) ([][]SweepResult, error) {
	if len(lows) == 0 || len(highs) == 0 {
		return nil, fmt.Errorf("ascent: no gradient factors to sweep")
	}
	lowFractions := append([]float64(nil), lows...)
	highFractions := append([]float64(nil), highs...)
	floats.Scale(0.01, lowFractions)
	floats.Scale(0.01, highFractions)

	cache := ascent.NewPlanCache(e, workers, len(lows)*len(highs))
	grid := make([][]SweepResult, len(lows))
	var wg sync.WaitGroup
	for i := range lows {
		grid[i] = make([]SweepResult, len(highs))
		for j := range highs {
			wg.Add(1)
			go func(i, j int) {
				defer wg.Done()
				r := SweepResult{GFLow: lows[i], GFHigh: highs[j]}
				cfg := c
				cfg.GFLow, cfg.GFHigh = lowFractions[i], highFractions[j]
				if err := cfg.Validate(); err != nil {
					r.Err = err
				} else if results, err := cache.Plan(ctx, cfg, plans); err != nil {
					r.Err = err
				} else {
					last := results[len(results)-1]
					r.Runtime, r.DecoTime = last.Runtime, last.DecoTime
				}
				if r.Err != nil {
					logrus.WithFields(logrus.Fields{
						"gf_low":  lows[i],
						"gf_high": highs[j],
					}).Warn(r.Err)
				}
				grid[i][j] = r
			}(i, j)
		}
	}
	wg.Wait()
	return grid, nil
}
