package advanced

import "go.uber.org/zap"

// The bounding figure is the quad of the editable region's corners. A real
// vertex placed exactly on a corner takes the corner's place in the mesh, and
// gives it back when it is removed.

// Which corner, if any, the real vertex sits on
func (t *Topology) cornerAt(index int) (int, bool) {
	p := t.vertices[index].Position
	for c, corner := range t.corners {
		if p == corner {
			return c, true
		}
	}
	return 0, false
}

func (t *Topology) promoteCorner(corner int, index int) {
	t.vertices[index].Position = t.corners[corner]
	t.relabel(Corner(corner), Real(index))
	t.logger.Debug("promoted corner", zap.Int("corner", corner), zap.Int("vertex", index))
}

// Hand a real vertex's place in the mesh back to its corner. Constraints
// touching the vertex are dropped, since synthetic vertices cannot carry them.
// Returns the edges that were unconstrained.
func (t *Topology) demoteCorner(corner int, index int) []EdgeID {
	var released []EdgeID
	for _, e := range t.outgoing(Real(index)) {
		for _, edge := range []EdgeID{e, t.prev(e)} {
			if t.edges[edge].Constrained {
				t.setConstrained(edge, false)
				released = append(released, edge)
			}
		}
	}
	t.relabel(Real(index), Corner(corner))
	t.logger.Debug("demoted corner", zap.Int("corner", corner), zap.Int("vertex", index))
	return released
}
