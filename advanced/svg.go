package advanced

import (
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// This is not a full (or even correct) svg parser. It parses the SVG and then
// finds whatever the only polygon is, and converts that into a counterclockwise
// outline. Coordinates are taken as is, so the outline comes out mirrored
// vertically compared to how the SVG renders.
func ParseSVGPolygon(r io.Reader) ([]r2.Point, error) {
	rootEl, err := svgparser.Parse(r, true)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}

	polygons := rootEl.FindAll("polygon")
	if len(polygons) == 0 {
		return nil, errors.New("no polygons found")
	}
	if len(polygons) > 1 {
		return nil, errors.Errorf("%d polygons found, want 1", len(polygons))
	}

	pointString := polygons[0].Attributes["points"]
	var points []r2.Point
	for _, pointString := range strings.Fields(pointString) {
		coordinates := strings.Split(pointString, ",")
		if len(coordinates) != 2 {
			return nil, errors.Errorf("invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(coordinates[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x value %q", coordinates[0])
		}
		y, err := strconv.ParseFloat(coordinates[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y value %q", coordinates[1])
		}
		points = append(points, r2.Point{X: x, Y: y})
	}
	if len(points) < 3 {
		return nil, errors.Errorf("polygon has %d points", len(points))
	}

	// Ensure that the outline is CCW
	if polygonOrientSign(points) < 0 {
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}
	return points, nil
}
