// Edit scripts: a YAML description of a topology's options and a sequence of
// edits to replay on it. Used by cdtedit and by tests that want to describe a
// scenario as data.
//
//	region: {min: [0, 0], max: [10, 10]}
//	steps:
//	  - add: [1, 1]
//	  - add: [9, 1]
//	  - add: [5, 8]
//	  - constrain: [0, 2]
//	  - translate: {vertex: 1, by: [0, 1]}
//	  - remove: 2
//	  - hull: true
package script

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/golang/geo/r2"
	"github.com/osuushi/cdt/advanced"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type Region struct {
	Min [2]float64 `json:"min"`
	Max [2]float64 `json:"max"`
}

type Translation struct {
	Vertex int        `json:"vertex"`
	By     [2]float64 `json:"by"`
	UV     [2]float64 `json:"uv,omitempty"`
}

// One edit. Exactly one action field is set.
type Step struct {
	Add         *[2]float64  `json:"add,omitempty"`
	UV          *[2]float64  `json:"uv,omitempty"`
	Remove      *int         `json:"remove,omitempty"`
	Constrain   *[2]int      `json:"constrain,omitempty"`
	Unconstrain *[2]int      `json:"unconstrain,omitempty"`
	Translate   *Translation `json:"translate,omitempty"`
	Hull        bool         `json:"hull,omitempty"`
}

type Script struct {
	Region       *Region `json:"region,omitempty"`
	VertexRadius float64 `json:"vertexRadius,omitempty"`
	EdgeRadius   float64 `json:"edgeRadius,omitempty"`
	Steps        []Step  `json:"steps"`
}

// Error for a step the topology refused
type StepError struct {
	Index int
	Step  Step
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s) was rejected", e.Index, e.Step)
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading script %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing script %s", path)
	}
	return s, nil
}

func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.WithStack(err)
	}
	for i, step := range s.Steps {
		if n := step.actions(); n != 1 {
			return nil, errors.Errorf("step %d has %d actions, want exactly 1", i, n)
		}
		if step.UV != nil && step.Add == nil {
			return nil, errors.Errorf("step %d has a uv without an add", i)
		}
	}
	if s.Region != nil && (s.Region.Min[0] >= s.Region.Max[0] || s.Region.Min[1] >= s.Region.Max[1]) {
		return nil, errors.Errorf("region %v has no area", *s.Region)
	}
	return &s, nil
}

// Options for a topology matching the script's settings
func (s *Script) Options() []advanced.Option {
	var opts []advanced.Option
	if s.Region != nil {
		opts = append(opts, advanced.WithRegion(r2.RectFromPoints(point(s.Region.Min), point(s.Region.Max))))
	}
	if s.VertexRadius != 0 || s.EdgeRadius != 0 {
		opts = append(opts, advanced.WithHitTestRadii(s.VertexRadius, s.EdgeRadius))
	}
	return opts
}

// Replay every step on the topology. Steps the topology refuses are skipped,
// and reported together as StepErrors in the returned error.
func (s *Script) Apply(t *advanced.Topology) error {
	var err error
	for i, step := range s.Steps {
		if !step.apply(t) {
			err = multierr.Append(err, &StepError{Index: i, Step: step})
		}
	}
	return err
}

func (step Step) apply(t *advanced.Topology) bool {
	switch {
	case step.Add != nil:
		v := advanced.Vertex{Position: point(*step.Add)}
		if step.UV != nil {
			v.UV = point(*step.UV)
		}
		return t.AddVertex(v)
	case step.Remove != nil:
		return t.RemoveVertex(*step.Remove)
	case step.Constrain != nil:
		return t.InsertConstrainedEdge(step.Constrain[0], step.Constrain[1])
	case step.Unconstrain != nil:
		return t.RemoveConstrainedEdge(step.Unconstrain[0], step.Unconstrain[1])
	case step.Translate != nil:
		return t.TranslateVertex(step.Translate.Vertex, point(step.Translate.By), point(step.Translate.UV))
	case step.Hull:
		return t.ToConvexHull()
	}
	return false
}

func (step Step) actions() int {
	n := 0
	for _, set := range []bool{
		step.Add != nil,
		step.Remove != nil,
		step.Constrain != nil,
		step.Unconstrain != nil,
		step.Translate != nil,
		step.Hull,
	} {
		if set {
			n++
		}
	}
	return n
}

func (step Step) String() string {
	switch {
	case step.Add != nil:
		return fmt.Sprintf("add %v", *step.Add)
	case step.Remove != nil:
		return fmt.Sprintf("remove %d", *step.Remove)
	case step.Constrain != nil:
		return fmt.Sprintf("constrain %d-%d", step.Constrain[0], step.Constrain[1])
	case step.Unconstrain != nil:
		return fmt.Sprintf("unconstrain %d-%d", step.Unconstrain[0], step.Unconstrain[1])
	case step.Translate != nil:
		return fmt.Sprintf("translate %d by %v", step.Translate.Vertex, step.Translate.By)
	case step.Hull:
		return "hull"
	}
	return "empty"
}

func point(p [2]float64) r2.Point {
	return r2.Point{X: p[0], Y: p[1]}
}
