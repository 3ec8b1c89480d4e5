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
	"io"

	"github.com/tealeg/xlsx"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var segmentColumns = []string{"Start (min)", "Duration (min)", "Type", "Start depth (m)",
	"End depth (m)", "Gas", "Deco", "Ceiling (m)"}

func sheetName(r *Result, i int) string {
	name := r.Name
	if name == "" {
		name = fmt.Sprintf("Dive %d", i+1)
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

func addStringRow(s *xlsx.Sheet, values ...string) {
	row := s.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func addFloatRow(s *xlsx.Sheet, label string, v float64) {
	row := s.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetFloat(v)
}

// WriteXLSX writes a workbook with one worksheet per dive. Each
// worksheet lists the segments followed by a summary and the gas used
// from each cylinder.
func WriteXLSX(w io.Writer, results []*Result) error {
	f := xlsx.NewFile()
	for i, r := range results {
		sheet, err := f.AddSheet(sheetName(r, i))
		if err != nil {
			return fmt.Errorf("ascent: writing xlsx: %v", err)
		}
		addStringRow(sheet, segmentColumns...)
		for _, s := range r.Segments {
			row := sheet.AddRow()
			row.AddCell().SetInt(s.Start)
			row.AddCell().SetInt(s.Duration)
			row.AddCell().SetString(s.Type().String())
			row.AddCell().SetFloat(s.StartDepth)
			row.AddCell().SetFloat(s.EndDepth)
			row.AddCell().SetString(s.Cylinder.Gas.String())
			deco := ""
			if s.Deco {
				deco = "yes"
			}
			row.AddCell().SetString(deco)
			row.AddCell().SetFloat(s.Ceiling)
		}
		sheet.AddRow()
		addFloatRow(sheet, "Runtime (min)", float64(r.Runtime))
		addFloatRow(sheet, "Time to surface (min)", float64(r.TTS))
		addFloatRow(sheet, "Deco time (min)", float64(r.DecoTime))
		addFloatRow(sheet, "CNS (%)", r.CNS)
		addFloatRow(sheet, "OTU", r.OTU)
		addFloatRow(sheet, "Surface GF", r.SurfaceGF)
		sheet.AddRow()
		addStringRow(sheet, "Cylinder", "Used (L)", "Remaining (bar)")
		for _, u := range r.Usage {
			row := sheet.AddRow()
			row.AddCell().SetString(u.Cylinder.String())
			row.AddCell().SetFloat(u.Used)
			row.AddCell().SetFloat(u.Remaining)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("ascent: writing xlsx: %v", err)
	}
	return nil
}

// Profile plots depth and ceiling against runtime. Depths are drawn
// as negative numbers so that the surface is at the top.
func Profile(r *Result) (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.Title.Text = r.Name
	p.X.Label.Text = "Runtime (min)"
	p.Y.Label.Text = "Depth (m)"

	depth := make(plotter.XYs, 0, len(r.Segments)+1)
	ceiling := make(plotter.XYs, 0, len(r.Segments)+1)
	if len(r.Segments) > 0 {
		first := r.Segments[0]
		depth = append(depth, plotter.XY{X: float64(first.Start), Y: -first.StartDepth})
		ceiling = append(ceiling, plotter.XY{X: float64(first.Start), Y: 0})
	}
	for _, s := range r.Segments {
		depth = append(depth, plotter.XY{X: float64(s.End()), Y: -s.EndDepth})
		ceiling = append(ceiling, plotter.XY{X: float64(s.End()), Y: -s.Ceiling})
	}
	if err = plotutil.AddLines(p, "Depth", depth, "Ceiling", ceiling); err != nil {
		return nil, err
	}
	p.Y.Max = 0
	return p, nil
}

// WriteProfile writes the plot from Profile in the given format, e.g.
// "png" or "svg".
func WriteProfile(w io.Writer, r *Result, format string) error {
	p, err := Profile(r)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
