// Package render draws a synthesized topology with gonum/plot.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/encodeous/topogen/topology"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	serverColor = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	hubColor    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	edgeColor   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	rangeColor  = color.RGBA{R: 255, G: 0, B: 0, A: 96}
)

// circleSegments is the polyline resolution of a hub range circle
const circleSegments = 64

type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
	// HubRanges outlines the coverage area of every hub
	HubRanges bool
}

func DefaultOptions() Options {
	return Options{
		Width:     8 * vg.Inch,
		Height:    8 * vg.Inch,
		HubRanges: true,
	}
}

// Draw plots edges first, then servers and hubs on top. Positions are projected onto the x/y plane.
func Draw(t *topology.Topology, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("%s topology, %d nodes, %d links", t.Kind, len(t.Nodes), len(t.Edges))
	}
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	for _, e := range t.Edges {
		a, okA := t.Node(e.A)
		b, okB := t.Node(e.B)
		if !okA || !okB {
			return nil, fmt.Errorf("edge %d-%d references a missing node", e.A, e.B)
		}
		line, err := plotter.NewLine(plotter.XYs{
			{X: float64(a.X), Y: float64(a.Y)},
			{X: float64(b.X), Y: float64(b.Y)},
		})
		if err != nil {
			return nil, err
		}
		line.Color = edgeColor
		line.Width = vg.Points(0.5)
		p.Add(line)
	}

	if opts.HubRanges && t.HubRange > 0 {
		for _, h := range t.Hubs() {
			circle, err := plotter.NewLine(circle(float64(h.X), float64(h.Y), float64(t.HubRange)))
			if err != nil {
				return nil, err
			}
			circle.Color = rangeColor
			circle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			p.Add(circle)
		}
	}

	if err := scatter(p, t.Servers(), "servers", serverColor, draw.CircleGlyph{}, vg.Points(3)); err != nil {
		return nil, err
	}
	if err := scatter(p, t.Hubs(), "hubs", hubColor, draw.PyramidGlyph{}, vg.Points(5)); err != nil {
		return nil, err
	}
	return p, nil
}

func scatter(p *plot.Plot, nodes []topology.NodeInfo, name string, c color.Color, shape draw.GlyphDrawer, radius vg.Length) error {
	if len(nodes) == 0 {
		return nil
	}
	pts := make(plotter.XYs, len(nodes))
	for i, n := range nodes {
		pts[i].X = float64(n.X)
		pts[i].Y = float64(n.Y)
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("failed to create scatter for %s: %w", name, err)
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Shape = shape
	s.GlyphStyle.Radius = radius
	p.Add(s)
	p.Legend.Add(name, s)
	return nil
}

func circle(cx, cy, r float64) plotter.XYs {
	pts := make(plotter.XYs, circleSegments+1)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / circleSegments
		pts[i].X = cx + r*math.Cos(theta)
		pts[i].Y = cy + r*math.Sin(theta)
	}
	return pts
}

// Save draws the topology to path, the format follows the file extension
func Save(t *topology.Topology, path string, opts Options) error {
	p, err := Draw(t, opts)
	if err != nil {
		return err
	}
	return p.Save(opts.Width, opts.Height, path)
}

// WriteTo encodes the drawing in the given format (png, svg, pdf, ...)
func WriteTo(w io.Writer, t *topology.Topology, format string, opts Options) error {
	p, err := Draw(t, opts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(opts.Width, opts.Height, strings.TrimPrefix(format, "."))
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Format returns the image format implied by a file name
func Format(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "png"
	}
	return ext
}
