// Package export writes a one-shot snapshot of the session's annotations.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"InkOverlay/internal/applog"
	"InkOverlay/internal/geom"
	"InkOverlay/internal/ink"
	"InkOverlay/internal/layers"
	"InkOverlay/internal/state"
)

var ErrNothingToExport = errors.New("no annotations to export")

const (
	pageMargin = 10.0 // mm
	// Raster exports are rendered at this pixel ratio.
	exportRatio = 2
)

// PNG renders every path over the document area they cover and encodes it.
func PNG(w io.Writer, paths []*state.Path) error {
	area, ok := state.Bounds(paths)
	if !ok {
		return ErrNothingToExport
	}
	img := layers.Render(paths, area, exportRatio)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PDF writes the annotations on an A4 page, scaled to fit inside the
// margins. Ink-only histories are written as vector outlines; once an
// eraser is involved the page carries the replayed raster instead, since
// destination-out has no vector equivalent.
func PDF(w io.Writer, paths []*state.Path) error {
	area, ok := state.Bounds(paths)
	if !ok {
		return ErrNothingToExport
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle("InkOverlay annotations", true)
	p.SetCreator("InkOverlay", true)
	p.AddPage()

	pageW, pageH := p.GetPageSize()
	availW, availH := pageW-2*pageMargin, pageH-2*pageMargin
	scale := min(availW/float64(area.Width), availH/float64(area.Height))

	if hasEraser(paths) {
		var buf bytes.Buffer
		if err := png.Encode(&buf, layers.Render(paths, area, exportRatio)); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		p.RegisterImageOptionsReader("snapshot", opts, &buf)
		p.ImageOptions("snapshot", pageMargin, pageMargin,
			float64(area.Width)*scale, float64(area.Height)*scale, false, opts, 0, "")
	} else {
		space := geom.NewSpace()
		space.SetScroll(geom.Offset{X: area.X, Y: area.Y})
		for _, path := range paths {
			poly := ink.Outline(space.Project(path.Points()), float64(path.Style.Width), true)
			if len(poly) < 3 {
				continue
			}
			pts := make([]gofpdf.PointType, len(poly))
			for i, v := range poly {
				pts[i] = gofpdf.PointType{X: pageMargin + v.X*scale, Y: pageMargin + v.Y*scale}
			}
			c := path.Style.Color
			p.SetFillColor(int(c.R), int(c.G), int(c.B))
			p.SetAlpha(float64(c.A)/255, "Normal")
			p.Polygon(pts, "F")
		}
		p.SetAlpha(1, "Normal")
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	applog.For("export").Info("pdf exported", "paths", len(paths), "raster", hasEraser(paths))
	return nil
}

// Encode writes paths in the format named by a file extension: ".png" for
// PNG, ".pdf" or none for PDF.
func Encode(w io.Writer, ext string, paths []*state.Path) error {
	switch strings.ToLower(ext) {
	case ".png":
		return PNG(w, paths)
	case ".pdf", "":
		return PDF(w, paths)
	}
	return fmt.Errorf("unsupported export format %q", ext)
}

func hasEraser(paths []*state.Path) bool {
	for _, p := range paths {
		if p.Style.Tool == state.ToolEraser {
			return true
		}
	}
	return false
}
