package state

import (
	"errors"
	"fmt"
	"image/color"
)

// Point is a position in document space: the viewport position plus the
// scroll offset at the moment it was captured.
type Point struct{ X, Y float32 }

type Tool string

const (
	ToolMarker Tool = "marker"
	ToolEraser Tool = "eraser"
)

var ErrUnknownTool = errors.New("unknown tool")

// ParseTool maps a tool name onto a Tool.
func ParseTool(name string) (Tool, error) {
	switch t := Tool(name); t {
	case ToolMarker, ToolEraser:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// Style is stamped onto a Path when the stroke starts.
type Style struct {
	Tool      Tool
	ColorName string
	Color     color.NRGBA
	// Width is the stroke diameter in CSS pixels. For the eraser it is twice
	// the eraser radius.
	Width float32
}

// Path is one stroke. Points are appended while the stroke is active and the
// path is frozen once it is committed to History.
type Path struct {
	ID     string
	Style  Style
	points []Point
	frozen bool
}

// NewPath opens a path at its first point. A Path is never empty.
func NewPath(id string, style Style, first Point) *Path {
	return &Path{
		ID:     id,
		Style:  style,
		points: []Point{first},
	}
}

// Append adds a point to an active path. It reports false once the path has
// been frozen.
func (p *Path) Append(pt Point) bool {
	if p.frozen {
		return false
	}
	p.points = append(p.points, pt)
	return true
}

func (p *Path) Freeze()      { p.frozen = true }
func (p *Path) Frozen() bool { return p.frozen }
func (p *Path) Len() int     { return len(p.points) }

// Points returns a copy of the recorded points.
func (p *Path) Points() []Point {
	pts := make([]Point, len(p.points))
	copy(pts, p.points)
	return pts
}

func (p *Path) String() string {
	return fmt.Sprintf("%s(%s,%d points)", p.ID, p.Style.Tool, len(p.points))
}
