/*
 * plots.go, part of eeqbc.
 *
 * Copyright 2025 The eeqbc authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package plots regenerates the figures of the publication from the
// pivoted result tables: the cumulated-charge and relative-energy
// curves over the scan coordinate, with the fixed per-method colors
// and markers used throughout the paper.
package plots

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/grimme-lab/SI-EEQ-BC/tables"
)

// style holds the figure style of one method.
type style struct {
	color color.RGBA
	shape draw.GlyphDrawer
	label string
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// methodStyles fixes color, marker and legend label per method, as in
// the published figures.
var methodStyles = map[string]style{
	"EEQ":               {rgb(0xfc, 0xba, 0x00), draw.CircleGlyph{}, "EEQ"},
	"EEQ_DIELECTRIC":    {rgb(0xfc, 0xba, 0x00), draw.CircleGlyph{}, "EEQ (dielec)"},
	"EEQ_BC":            {rgb(0xd7, 0x73, 0xf0), draw.CrossGlyph{}, "EEQ-BC"},
	"EEQ_BC_DIELECTRIC": {rgb(0xd7, 0x73, 0xf0), draw.CrossGlyph{}, "EEQ-BC (dielec)"},
	"CEH-v2":            {rgb(0x07, 0x52, 0x9a), draw.RingGlyph{}, "CEH"},
	"GFN1-xTB":          {rgb(0x7a, 0xc2, 0x84), draw.BoxGlyph{}, "GFN1-xTB"},
	"GFN1-xTB_CPCM":     {rgb(0x7a, 0xc2, 0x84), draw.BoxGlyph{}, "GFN1-xTB (CPCM)"},
	"GFN2-xTB":          {rgb(0xc7, 0x3c, 0x5f), draw.PyramidGlyph{}, "GFN2-xTB"},
	"GFN2-xTB_CPCM":     {rgb(0xc7, 0x3c, 0x5f), draw.PyramidGlyph{}, "GFN2-xTB (CPCM)"},
	"wB97M-V":           {rgb(0x90, 0x90, 0x85), draw.TriangleGlyph{}, "ωB97M-V"},
	"wB97M-V_CPCM":      {rgb(0x90, 0x90, 0x85), draw.TriangleGlyph{}, "ωB97M-V (CPCM)"},
	"wB97M-V_dSCF":      {rgb(0x06, 0x76, 0x8d), draw.PlusGlyph{}, "ωB97M-V (UKS singlet)"},
	"wB97M-V_dSCF_CPCM": {rgb(0x06, 0x76, 0x8d), draw.PlusGlyph{}, "ωB97M-V (dSCF, CPCM)"},
}

// Options control the appearance of a figure. The zero value gives
// the figure dimensions of the publication.
type Options struct {
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
	//RefLine draws a vertical dotted line at the given scan
	//coordinate, e.g. the equilibrium C-O2 distance of 3.477 A.
	RefLine float64
}

func (o *Options) setDefaults() {
	if o.Width == 0 {
		o.Width = 8.5 * vg.Centimeter
	}
	if o.Height == 0 {
		o.Height = 6 * vg.Centimeter
	}
}

// Charges plots the cumulated-charge curve and saves it to filename.
// The format is deduced from the extension; the figures of the paper
// are SVG. Methods without a fixed style are an error.
func Charges(curve *tables.Curve, filename string, opts Options) error {
	opts.setDefaults()
	if opts.XLabel == "" {
		opts.XLabel = "distance / Å"
	}
	if opts.YLabel == "" {
		opts.YLabel = "cumulated atomic charge (q) / e-"
	}
	return curvePlot(curve, filename, opts)
}

// Energies plots the relative-energy curve and saves it to filename.
func Energies(curve *tables.Curve, filename string, opts Options) error {
	if opts.Height == 0 {
		opts.Height = 5 * vg.Centimeter
	}
	opts.setDefaults()
	if opts.XLabel == "" {
		opts.XLabel = "distance / Å"
	}
	if opts.YLabel == "" {
		opts.YLabel = "relative energy / kcal mol-1"
	}
	return curvePlot(curve, filename, opts)
}

func curvePlot(curve *tables.Curve, filename string, opts Options) error {
	if len(curve.Points) == 0 {
		return fmt.Errorf("nothing to plot: empty curve")
	}
	p := plot.New()
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	if opts.RefLine > 0 {
		if err := addRefLine(p, curve, opts.RefLine); err != nil {
			return err
		}
	}
	for _, method := range curve.Methods {
		st, ok := methodStyles[method]
		if !ok {
			return fmt.Errorf("unknown method: %s", method)
		}
		col, err := curve.Column(method)
		if err != nil {
			return err
		}
		pts := make(plotter.XYs, len(col))
		for i, v := range col {
			pts[i].X = curve.Points[i].X
			pts[i].Y = v
		}
		l, s, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("plotting %s: %w", method, err)
		}
		l.Color = st.color
		l.Width = vg.Points(1)
		s.GlyphStyle.Color = st.color
		s.GlyphStyle.Shape = st.shape
		s.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(l, s)
		p.Legend.Add(st.label, l, s)
	}
	if err := p.Save(opts.Width, opts.Height, filename); err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}
	return nil
}

// addRefLine draws a vertical dotted line spanning the data range at
// x, marking a reference distance.
func addRefLine(p *plot.Plot, curve *tables.Curve, x float64) error {
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, pt := range curve.Points {
		for _, m := range curve.Methods {
			v, ok := pt.Values[m]
			if !ok {
				continue
			}
			ymin = math.Min(ymin, v)
			ymax = math.Max(ymax, v)
		}
	}
	if ymin > ymax {
		return fmt.Errorf("no data for the reference line")
	}
	l, err := plotter.NewLine(plotter.XYs{{X: x, Y: ymin}, {X: x, Y: ymax}})
	if err != nil {
		return err
	}
	l.Color = rgb(0x90, 0x90, 0x85)
	l.Width = vg.Points(0.5)
	l.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	p.Add(l)
	return nil
}
