package main

import (
	"errors"
	"fmt"
	"math"
)

// ray is an origin plus a unit-length direction, both in the coordinate
// frame of the grid being traced. A ray is immutable for the duration of a
// trace call.
type ray struct {
	origin vec2
	dir    vec2
}

// at returns the point a given distance along the ray.
func (r ray) at(distance float64) vec2 {
	return r.origin.add(r.dir.scale(distance))
}

// hit describes the first occupied cell a ray reached: the distance along
// the ray, the point at that distance, the axis-aligned normal opposing the
// step that entered the cell, and the cell's material.
type hit struct {
	distance float64
	point    vec2
	normal   vec2
	material uint8
}

// tracePolicy selects how the shared traversal loop resolves hits.
type tracePolicy int

const (
	// policyExact stops at the first occupied cell and reports the entry
	// distance into it.
	policyExact tracePolicy = iota

	// policyNearest records the first occupied cell as a candidate, runs the
	// ray out to its distance bound, and accepts the candidate only when the
	// terminal point lies within hitTolerance of the cell center.
	policyNearest
)

// parseTracePolicy maps a -trace-policy flag value to its policy.
func parseTracePolicy(name string) (tracePolicy, error) {
	switch name {
	case "exact":
		return policyExact, nil
	case "nearest":
		return policyNearest, nil
	}
	return 0, fmt.Errorf("unknown trace policy %q (want exact or nearest)", name)
}

func (p tracePolicy) String() string {
	if p == policyNearest {
		return "nearest"
	}
	return "exact"
}

// infStep stands in for an infinite per-axis crossing distance when a ray
// direction component is zero. An explicit sentinel keeps the stepping
// arithmetic free of IEEE division-by-zero results.
const infStep = math.MaxFloat64

// gridWalker advances cell by cell along a ray using DDA stepping: each step
// crosses whichever axis boundary comes next along the ray. The walker knows
// nothing about occupancy or bounds; it only produces the visited cells,
// their entry distances, and the crossing normals.
type gridWalker struct {
	cellX, cellY   int
	stepX, stepY   int
	unitX, unitY   float64
	crossX, crossY float64
	normal         vec2
}

// newGridWalker derives per-axis step directions, unit crossing costs, and
// the distances to the first boundary crossings from the ray origin's
// position within its starting cell.
func newGridWalker(r ray) gridWalker {
	w := gridWalker{
		cellX:  int(math.Floor(r.origin.X)),
		cellY:  int(math.Floor(r.origin.Y)),
		unitX:  infStep,
		unitY:  infStep,
		crossX: infStep,
		crossY: infStep,
	}
	if r.dir.X > 0 {
		w.stepX = 1
		w.unitX = 1 / r.dir.X
		w.crossX = (float64(w.cellX+1) - r.origin.X) * w.unitX
	} else if r.dir.X < 0 {
		w.stepX = -1
		w.unitX = -1 / r.dir.X
		w.crossX = (r.origin.X - float64(w.cellX)) * w.unitX
	}
	if r.dir.Y > 0 {
		w.stepY = 1
		w.unitY = 1 / r.dir.Y
		w.crossY = (float64(w.cellY+1) - r.origin.Y) * w.unitY
	} else if r.dir.Y < 0 {
		w.stepY = -1
		w.unitY = -1 / r.dir.Y
		w.crossY = (r.origin.Y - float64(w.cellY)) * w.unitY
	}
	return w
}

// cell returns the cell the walker currently occupies.
func (w *gridWalker) cell() intPoint {
	return intPoint{w.cellX, w.cellY}
}

// step crosses the nearer axis boundary, moving into the adjacent cell, and
// returns the entry distance into that cell. The x axis wins exact ties so
// that traversal order is deterministic. Entry distances are monotonically
// non-decreasing across successive steps.
func (w *gridWalker) step() float64 {
	if w.crossX <= w.crossY {
		entry := w.crossX
		w.crossX += w.unitX
		w.cellX += w.stepX
		w.normal = vec2{X: float64(-w.stepX)}
		return entry
	}
	entry := w.crossY
	w.crossY += w.unitY
	w.cellY += w.stepY
	w.normal = vec2{Y: float64(-w.stepY)}
	return entry
}

var errDegenerateRay = errors.New("ray origin and direction must be finite and the direction unit length")

// validateTrace rejects contract violations before any traversal work.
func validateTrace(c *chunk, r ray, maxDistance float64) error {
	if c == nil || c.width <= 0 || c.height <= 0 {
		return errors.New("chunk must have positive extents")
	}
	if len(c.cells) != c.width*c.height {
		return fmt.Errorf("chunk cell buffer is %d cells, want %d", len(c.cells), c.width*c.height)
	}
	if !r.origin.finite() || !r.dir.finite() {
		return errDegenerateRay
	}
	if l := r.dir.length(); math.Abs(l-1) > 1e-4 {
		return errDegenerateRay
	}
	if math.IsNaN(maxDistance) || math.IsInf(maxDistance, 0) || maxDistance < 0 {
		return fmt.Errorf("max distance %v out of range", maxDistance)
	}
	return nil
}

// traceChunk walks the ray through the chunk's local cell grid and resolves
// the first occupied cell under the given policy. The ray must already be in
// the chunk's local frame. Absence of a hit is reported through the second
// return value; the error reports contract violations only.
func traceChunk(c *chunk, r ray, maxDistance float64, policy tracePolicy) (hit, bool, error) {
	if err := validateTrace(c, r, maxDistance); err != nil {
		return hit{}, false, err
	}

	w := newGridWalker(r)
	distance := 0.0
	var candidate intPoint
	var candidateNormal vec2
	candidateMat := materialEmpty

	// The iteration cap guarantees termination even for rays that would
	// otherwise shuffle along a boundary without progressing.
	maxIterations := c.width * c.height
	for i := 0; i <= maxIterations; i++ {
		cell := w.cell()
		if !c.inBounds(cell.x, cell.y) {
			// The ray left the grid before anything resolved.
			return hit{}, false, nil
		}
		if m := c.cells[cell.y*c.width+cell.x]; m != materialEmpty {
			if policy == policyExact {
				return hit{
					distance: distance,
					point:    r.at(distance),
					normal:   w.normal,
					material: m,
				}, true, nil
			}
			if candidateMat == materialEmpty {
				candidate = cell
				candidateNormal = w.normal
				candidateMat = m
			}
		}

		distance = w.step()
		if policy == policyExact {
			if distance > maxDistance {
				return hit{}, false, nil
			}
		} else if distance >= maxDistance {
			break
		}
	}

	if policy == policyExact {
		return hit{}, false, nil
	}
	return resolveNearest(c, r, maxDistance, candidate, candidateNormal, candidateMat)
}

// resolveNearest applies the tolerance-disk validation of the fixed-step
// policy once the traversal reached its distance bound. A recorded candidate
// is accepted only when the terminal point lies within hitTolerance of the
// candidate cell's center, which rejects rays that merely grazed a corner.
// Without a candidate, the cell at the terminal position decides.
func resolveNearest(c *chunk, r ray, maxDistance float64, candidate intPoint, candidateNormal vec2, candidateMat uint8) (hit, bool, error) {
	terminal := r.at(maxDistance)
	if candidateMat != materialEmpty {
		if chebyshev(terminal, candidate.center()) > hitTolerance {
			return hit{}, false, nil
		}
		return hit{
			distance: maxDistance,
			point:    terminal,
			normal:   candidateNormal,
			material: candidateMat,
		}, true, nil
	}

	tx := int(math.Floor(terminal.X))
	ty := int(math.Floor(terminal.Y))
	if m := c.materialAt(tx, ty); m != materialEmpty {
		return hit{
			distance: maxDistance,
			point:    terminal,
			material: m,
		}, true, nil
	}
	return hit{}, false, nil
}

// traceChunkWorld shifts a world-space ray into the chunk's local frame,
// traces it, and shifts the resulting hit point back into world space. The
// offset correction is a pure pre/post transform around the local tracer.
func traceChunkWorld(c *chunk, r ray, maxDistance float64, policy tracePolicy) (hit, bool, error) {
	origin := c.worldOrigin()
	local := ray{origin: r.origin.sub(origin), dir: r.dir}
	h, ok, err := traceChunk(c, local, maxDistance, policy)
	if ok {
		h.point = h.point.add(origin)
	}
	return h, ok, err
}
