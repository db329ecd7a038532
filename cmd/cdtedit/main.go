package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/logrusorgru/aurora"
	"github.com/osuushi/cdt/advanced"
	"github.com/osuushi/cdt/internal/script"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Command line tool for replaying edit scripts on a triangulation and looking
// at the result.
//
//	cdtedit run edits.yaml --png out.png
//	cdtedit points --imgcat < points.txt
//
// The points command reads newline separated points in the form "x y". Each
// group of points separated by a blank line is a closed outline whose edges
// are constrained.

var (
	app       = kingpin.New("cdtedit", "Edit and inspect constrained Delaunay triangulations.")
	verbose   = app.Flag("verbose", "Log every operation.").Short('v').Bool()
	selfCheck = app.Flag("self-check", "Check mesh invariants after every edit.").Bool()
	pngPath   = app.Flag("png", "Write a rendering of the mesh to this file.").String()
	showImage = app.Flag("imgcat", "Print a rendering of the mesh in the terminal.").Bool()
	scale     = app.Flag("scale", "Pixels per unit when rendering.").Default("500").Float64()

	runCmd     = app.Command("run", "Replay an edit script.")
	scriptPath = runCmd.Arg("script", "YAML edit script.").Required().ExistingFile()
	svgPath    = runCmd.Flag("svg", "Start from the polygon in this SVG file, as a constrained outline.").ExistingFile()

	pointsCmd = app.Command("points", "Triangulate outlines read from stdin.")
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	var topology *advanced.Topology
	switch command {
	case runCmd.FullCommand():
		topology, err = runScript(logger, *scriptPath, *svgPath)
	case pointsCmd.FullCommand():
		topology, err = runPoints(logger, os.Stdin)
	}
	if topology == nil {
		logger.Fatal("could not build a triangulation", zap.Error(err))
	}
	for _, stepErr := range multierr.Errors(err) {
		logger.Warn("edit rejected", zap.Error(stepErr))
	}

	printSummary(os.Stdout, topology)
	if *pngPath != "" {
		if err := topology.DrawPNG(*pngPath, *scale); err != nil {
			logger.Fatal("could not render", zap.Error(err))
		}
	}
	if *showImage {
		topology.DbgDraw(*scale)
	}
	if !*selfCheck {
		return
	}
	if err := topology.SelfCheck(); err != nil {
		for _, violation := range multierr.Errors(err) {
			logger.Error("invariant violated", zap.Error(violation))
		}
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Internal errors surface as panics carrying a TopologyError
func protect(fn func() error) (err error) {
	defer func() {
		if recoveredErr := advanced.HandleTopologyPanicRecover(recover()); recoveredErr != nil {
			err = recoveredErr
		}
	}()
	return fn()
}

func runScript(logger *zap.Logger, path, svg string) (*advanced.Topology, error) {
	s, err := script.Load(path)
	if err != nil {
		return nil, err
	}
	opts := append(s.Options(), advanced.WithLogger(logger), advanced.WithSelfCheck(*selfCheck))
	topology, err := advanced.New(opts...)
	if err != nil {
		return nil, err
	}

	if svg != "" {
		file, err := os.Open(svg)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		defer file.Close()
		outline, err := advanced.ParseSVGPolygon(file)
		if err != nil {
			return nil, err
		}
		if err := protect(func() error { return addOutline(topology, outline) }); err != nil {
			return nil, err
		}
	}

	var stepErr error
	if err := protect(func() error {
		stepErr = s.Apply(topology)
		return nil
	}); err != nil {
		return nil, err
	}
	return topology, stepErr
}

func runPoints(logger *zap.Logger, in io.Reader) (*advanced.Topology, error) {
	outlines, err := readOutlines(in)
	if err != nil {
		return nil, err
	}
	bounds := r2.EmptyRect()
	for _, outline := range outlines {
		for _, p := range outline {
			bounds = bounds.AddPoint(p)
		}
	}
	if bounds.IsEmpty() {
		return nil, errors.New("no points on stdin")
	}
	size := bounds.Size()
	margin := 0.05 * max(size.X, size.Y, 1)
	topology, err := advanced.New(
		advanced.WithRegion(bounds.ExpandedByMargin(margin)),
		advanced.WithLogger(logger),
		advanced.WithSelfCheck(*selfCheck),
	)
	if err != nil {
		return nil, err
	}

	var rejected error
	err = protect(func() error {
		for _, outline := range outlines {
			rejected = multierr.Append(rejected, addOutline(topology, outline))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return topology, rejected
}

// Add the points of a closed outline and constrain its edges
func addOutline(topology *advanced.Topology, outline []r2.Point) error {
	var err error
	first := topology.VertexCount()
	var indices []int
	for _, p := range outline {
		if !topology.AddVertex(advanced.Vertex{Position: p}) {
			err = multierr.Append(err, errors.Errorf("point %v rejected", p))
			continue
		}
		indices = append(indices, topology.VertexCount()-1)
	}
	if len(indices) < 2 {
		return err
	}
	// Two points make a single edge rather than a loop
	n := len(indices)
	if n == 2 {
		n = 1
	}
	for i := 0; i < n; i++ {
		a, b := indices[i], indices[(i+1)%len(indices)]
		if !topology.InsertConstrainedEdge(a, b) {
			err = multierr.Append(err, errors.Errorf("edge %d-%d rejected", a-first, b-first))
		}
	}
	return err
}

func readOutlines(in io.Reader) ([][]r2.Point, error) {
	var outlines [][]r2.Point
	var points []r2.Point
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		// A blank line ends the current outline
		if text == "" {
			if len(points) > 0 {
				outlines = append(outlines, points)
				points = nil
			}
			continue
		}

		parts := strings.Fields(text)
		if len(parts) != 2 {
			return nil, errors.Errorf("line %d: want \"x y\", got %q", line, text)
		}
		x, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		y, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		points = append(points, r2.Point{X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	// Handle trailing outline if any
	if len(points) > 0 {
		outlines = append(outlines, points)
	}
	return outlines, nil
}

func printSummary(out io.Writer, topology *advanced.Topology) {
	quality := topology.Quality()
	constrained := 0
	for _, e := range topology.ConstrainedEdges() {
		if !e.IsFraming {
			constrained++
		}
	}
	fmt.Fprintf(out, "%s %d\n", aurora.Bold("vertices:"), topology.VertexCount())
	fmt.Fprintf(out, "%s %d\n", aurora.Bold("faces:"), quality.Faces)
	fmt.Fprintf(out, "%s %d\n", aurora.Bold("ring:"), len(topology.Boundary()))
	fmt.Fprintf(out, "%s %d\n", aurora.Bold("constrained edges:"), constrained)
	if quality.Faces == 0 {
		return
	}

	minAngle := aurora.Green(fmt.Sprintf("%.2f°", quality.MinAngle))
	if quality.MinAngle < 5 {
		minAngle = aurora.Red(fmt.Sprintf("%.2f°", quality.MinAngle))
	}
	fmt.Fprintf(out, "%s %s (face %v)\n", aurora.Bold("min angle:"), minAngle, quality.SmallestAngle)
	fmt.Fprintf(out, "%s %.2f° ± %.2f°\n", aurora.Bold("mean min angle:"), quality.MeanMinAngle, quality.StdDevMinAngle)
	fmt.Fprintf(out, "%s %.6g\n", aurora.Bold("area:"), quality.TotalArea)
}
