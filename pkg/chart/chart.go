// Package chart renders login attempt counters as PNG images
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/activecm/cowrie-analyzer/pkg/counter"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoData is returned when there is nothing to plot
var ErrNoData = errors.New("no data to plot")

type (
	// Spec names a chart and its axes
	Spec struct {
		Title  string
		XLabel string
		YLabel string
	}

	// Renderer writes charts into a single image directory
	Renderer struct {
		dir    string
		width  vg.Length
		height vg.Length
		bars   int
		out    io.Writer
	}
)

// NewRenderer creates a renderer writing width x height inch images into
// dir. Bar charts show at most bars categories.
func NewRenderer(dir string, width, height float64, bars int) *Renderer {
	if bars < 1 {
		bars = 10
	}
	return &Renderer{
		dir:    dir,
		width:  vg.Length(width) * vg.Inch,
		height: vg.Length(height) * vg.Inch,
		bars:   bars,
		out:    os.Stdout,
	}
}

// SetOutput redirects the "saving figure" lines
func (r *Renderer) SetOutput(w io.Writer) {
	r.out = w
}

// Dir returns the image directory
func (r *Renderer) Dir() string {
	return r.dir
}

// FileName turns a chart title into its image file name
func FileName(title string) string {
	return strings.ReplaceAll(title, " ", "_") + ".png"
}

// Line plots a time series as a connected line ordered by time
func (r *Renderer) Line(spec Spec, series *counter.Counter[time.Time]) (string, error) {
	if series.Len() == 0 {
		return "", ErrNoData
	}

	entries := series.Entries()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key.Before(entries[j].Key)
	})

	points := make(plotter.XYs, len(entries))
	for i, entry := range entries {
		points[i].X = float64(entry.Key.Unix())
		points[i].Y = float64(entry.Count)
	}

	p := r.newPlot(spec)
	p.X.Tick.Marker = plot.TimeTicks{
		Format: "2006-01-02",
		Time:   plot.UnixTimeIn(entries[0].Key.Location()),
	}
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	line, err := plotter.NewLine(points)
	if err != nil {
		return "", err
	}
	line.LineStyle.Color = color.RGBA{B: 255, A: 255}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line, plotter.NewGrid())

	return r.save(p, spec.Title)
}

// Bar plots the largest entries of a counter as a horizontal bar chart
// with the keys as category labels
func (r *Renderer) Bar(spec Spec, c *counter.Counter[string]) (string, error) {
	entries := BarEntries(c, r.bars)
	if len(entries) == 0 {
		return "", ErrNoData
	}

	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, entry := range entries {
		values[i] = float64(entry.Count)
		labels[i] = entry.Key
	}

	p := r.newPlot(spec)
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return "", err
	}
	bars.Horizontal = true
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(bars)
	p.NominalY(labels...)
	p.Y.Tick.Label.Rotation = math.Pi / 6

	return r.save(p, spec.Title)
}

// BarEntries sorts the counter ascending by count and keeps the last n
// entries, the largest ending up at the top of a horizontal chart
func BarEntries(c *counter.Counter[string], n int) []counter.Entry[string] {
	entries := c.Ascending()
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries
}

func (r *Renderer) newPlot(spec Spec) *plot.Plot {
	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	return p
}

func (r *Renderer) save(p *plot.Plot, title string) (string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("could not create image directory: %w", err)
	}

	name := FileName(title)
	path := filepath.Join(r.dir, name)
	fmt.Fprintf(r.out, "saving figure to %s\n", name)

	if err := p.Save(r.width, r.height, path); err != nil {
		return "", fmt.Errorf("could not save %s: %w", name, err)
	}
	return path, nil
}
