package advanced

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/cdt/dbg"
	"github.com/pkg/errors"
)

// This is for debugging purposes, and for the cdtedit tool

// Padding around the region so the border edges are visible
const dbgDrawPadding = 20

// Render the whole mesh to a PNG. Scaffolding triangles are drawn dim, faces
// filled, constrained edges red and framing edges cyan. Scale is in pixels
// per unit of the region.
func (t *Topology) DrawPNG(path string, scale float64) error {
	if scale <= 0 {
		return errors.Errorf("invalid scale %v", scale)
	}
	c := t.drawContext(scale)
	if err := c.SavePNG(path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	return nil
}

// Draw and print the mesh in the terminal (iTerm only) for debugging.
func (t *Topology) DbgDraw(scale float64) {
	path := filepath.Join(os.TempDir(), "topology.png")
	if err := t.DrawPNG(path, scale); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	imgcat.CatFile(path, os.Stdout)
}

func (t *Topology) drawContext(scale float64) *gg.Context {
	region := t.options.region
	size := region.Size()
	width := int(scale*size.X) + dbgDrawPadding*2
	height := int(scale*size.Y) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	c.Scale(scale, scale)
	c.Translate(-region.X.Lo, -region.Y.Lo)

	inside := t.insideEdges()
	for i := range t.edges {
		e := EdgeID(i)
		if !t.live(e) || !t.isTriangleRepresentative(e) || !inside.Test(uint(e)) {
			continue
		}
		tri := t.triangle(e)
		c.MoveTo(t.pos(t.origin(tri[0])).X, t.pos(t.origin(tri[0])).Y)
		for _, edge := range tri[1:] {
			p := t.pos(t.origin(edge))
			c.LineTo(p.X, p.Y)
		}
		c.ClosePath()
		c.SetRGB(0, 0.3, 0)
		c.Fill()
	}

	// Line widths are in pixels, so undo the scale for them
	for i := range t.edges {
		e := EdgeID(i)
		if !t.live(e) {
			continue
		}
		if twin := t.twin(e); twin != NoEdge && twin < e {
			continue
		}
		a, b := t.pos(t.origin(e)), t.pos(t.dest(e))
		switch {
		case t.isFraming(e):
			c.SetRGB(0, 1, 1)
			c.SetLineWidth(3 / scale)
		case t.edges[e].Constrained:
			c.SetRGB(1, 0.2, 0.2)
			c.SetLineWidth(3 / scale)
		case inside.Test(uint(e)) || (t.twin(e) != NoEdge && inside.Test(uint(t.twin(e)))):
			c.SetRGB(0.4, 1, 0.4)
			c.SetLineWidth(1 / scale)
		default:
			c.SetRGB(0.3, 0.3, 0.3)
			c.SetLineWidth(1 / scale)
		}
		c.DrawLine(a.X, a.Y, b.X, b.Y)
		c.Stroke()
	}

	c.SetRGB(1, 1, 1)
	for _, v := range t.vertices {
		c.DrawCircle(v.Position.X, v.Position.Y, 3/scale)
		c.Fill()
	}
	return c
}

// Colored name of a half-edge for debug output: cyan for framing edges, red
// for other constrained edges, green otherwise.
func (t *Topology) dbgString(e EdgeID) string {
	if !t.live(e) {
		return fmt.Sprintf("%s(dead)", dbg.Name(e))
	}
	name := dbg.Name(e)
	switch {
	case t.isFraming(e):
		name = aurora.Cyan(name).String()
	case t.edges[e].Constrained:
		name = aurora.Red(name).String()
	default:
		name = aurora.Green(name).String()
	}
	return fmt.Sprintf("%s(%v->%v)", name, t.origin(e), t.dest(e))
}
