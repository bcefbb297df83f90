package main

import (
	"math"
	"testing"
)

func buildChunk(t *testing.T, width, height int, solid map[intPoint]uint8) *chunk {
	t.Helper()
	c := newChunk(width, height, vec2{})
	for p, m := range solid {
		if !c.inBounds(p.x, p.y) {
			t.Fatalf("test cell (%d,%d) outside %dx%d chunk", p.x, p.y, width, height)
		}
		c.setMaterial(p.x, p.y, m)
	}
	return c
}

func normalizedRay(origin, toward vec2) ray {
	return ray{origin: origin, dir: toward.sub(origin).normalized()}
}

func TestTraceExactConcreteScenario(t *testing.T) {
	c := buildChunk(t, 4, 4, map[intPoint]uint8{{2, 1}: 1})
	r := ray{origin: vec2{0.5, 1.5}, dir: vec2{1, 0}}

	h, ok, err := traceChunk(c, r, 10, policyExact)
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(h.distance-1.5) > 1e-4 {
		t.Errorf("distance = %v, want 1.5", h.distance)
	}
	if math.Abs(h.point.X-2.0) > 1e-4 || math.Abs(h.point.Y-1.5) > 1e-4 {
		t.Errorf("point = %+v, want (2.0, 1.5)", h.point)
	}
	if h.normal != (vec2{-1, 0}) {
		t.Errorf("normal = %+v, want (-1, 0)", h.normal)
	}
	if h.material != 1 {
		t.Errorf("material = %d, want 1", h.material)
	}
}

func TestTraceExactAnalyticEntryDistance(t *testing.T) {
	target := intPoint{4, 2}
	c := buildChunk(t, 8, 8, map[intPoint]uint8{target: 3})
	origin := vec2{0.5, 0.5}
	r := normalizedRay(origin, target.center())

	h, ok, err := traceChunk(c, r, 20, policyExact)
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	// The ray enters the cell when it has crossed both of the cell's lower
	// boundaries; the later crossing is the entry distance.
	entryX := (float64(target.x) - origin.X) / r.dir.X
	entryY := (float64(target.y) - origin.Y) / r.dir.Y
	want := math.Max(entryX, entryY)
	if math.Abs(h.distance-want) > 1e-4 {
		t.Errorf("distance = %v, want %v", h.distance, want)
	}
	at := r.at(h.distance)
	if math.Abs(h.point.X-at.X) > 1e-9 || math.Abs(h.point.Y-at.Y) > 1e-9 {
		t.Errorf("point = %+v, want origin + dir*distance = %+v", h.point, at)
	}
}

func TestTraceVerticalRay(t *testing.T) {
	c := buildChunk(t, 8, 8, map[intPoint]uint8{{2, 3}: 2})
	r := ray{origin: vec2{2.5, 0.5}, dir: vec2{0, 1}}

	h, ok, err := traceChunk(c, r, 10, policyExact)
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(h.distance-2.5) > 1e-4 {
		t.Errorf("distance = %v, want 2.5", h.distance)
	}
	if h.normal != (vec2{0, -1}) {
		t.Errorf("normal = %+v, want (0, -1)", h.normal)
	}
}

func TestTraceEmptyGridNoHit(t *testing.T) {
	c := buildChunk(t, 8, 8, nil)
	r := ray{origin: vec2{4.2, 4.7}, dir: vec2{0.6, 0.8}}

	for _, policy := range []tracePolicy{policyExact, policyNearest} {
		h, ok, err := traceChunk(c, r, 2, policy)
		if err != nil {
			t.Fatalf("%v trace: %v", policy, err)
		}
		if ok {
			t.Errorf("%v: expected no hit, got %+v", policy, h)
		}
	}
}

func TestTraceBoundaryExitNoHit(t *testing.T) {
	c := buildChunk(t, 8, 8, map[intPoint]uint8{{6, 6}: 1})
	r := ray{origin: vec2{1.5, 1.5}, dir: vec2{-1, 0}}

	for _, policy := range []tracePolicy{policyExact, policyNearest} {
		_, ok, err := traceChunk(c, r, 100, policy)
		if err != nil {
			t.Fatalf("%v trace: %v", policy, err)
		}
		if ok {
			t.Errorf("%v: expected no hit for a ray leaving the grid", policy)
		}
	}
}

func TestTraceStartCellSolid(t *testing.T) {
	c := buildChunk(t, 8, 8, map[intPoint]uint8{{3, 3}: 4})
	r := ray{origin: vec2{3.5, 3.5}, dir: vec2{1, 0}}

	h, ok, err := traceChunk(c, r, 10, policyExact)
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit in the starting cell")
	}
	if h.distance != 0 {
		t.Errorf("distance = %v, want 0", h.distance)
	}
	if h.point != r.origin {
		t.Errorf("point = %+v, want the ray origin", h.point)
	}
}

func TestTraceExactRespectsMaxDistance(t *testing.T) {
	c := buildChunk(t, 8, 8, map[intPoint]uint8{{5, 1}: 1})
	r := ray{origin: vec2{0.5, 1.5}, dir: vec2{1, 0}}

	if _, ok, _ := traceChunk(c, r, 3, policyExact); ok {
		t.Error("expected no hit when the cell lies past the distance bound")
	}
	if _, ok, _ := traceChunk(c, r, 5, policyExact); !ok {
		t.Error("expected a hit when the bound covers the cell's entry distance")
	}
}

func TestTraceNearestToleranceDisk(t *testing.T) {
	c := buildChunk(t, 8, 8, map[intPoint]uint8{{4, 4}: 5})
	r := ray{origin: vec2{0.5, 4.5}, dir: vec2{1, 0}}

	// Terminal point 0.69 cells past the candidate's center: accepted.
	h, ok, err := traceChunk(c, r, 4.69, policyNearest)
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if !ok {
		t.Fatal("expected the candidate within tolerance to be accepted")
	}
	if h.material != 5 {
		t.Errorf("material = %d, want the candidate's 5", h.material)
	}
	if math.Abs(h.distance-4.69) > 1e-9 {
		t.Errorf("distance = %v, want the full bound 4.69", h.distance)
	}

	// Terminal point 0.71 past the center: the corner graze is rejected.
	if _, ok, _ := traceChunk(c, r, 4.71, policyNearest); ok {
		t.Error("expected the candidate outside tolerance to be rejected")
	}
}

func TestTraceNearestAcceptsBeforeCell(t *testing.T) {
	c := buildChunk(t, 8, 8, map[intPoint]uint8{{4, 4}: 5})
	r := ray{origin: vec2{0.5, 4.5}, dir: vec2{1, 0}}

	// The bound ends inside the candidate cell just short of its center,
	// well within the tolerance disk.
	h, ok, err := traceChunk(c, r, 3.95, policyNearest)
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if h.material != 5 {
		t.Errorf("material = %d, want 5", h.material)
	}
}

func TestTraceTieBreakPrefersX(t *testing.T) {
	c := buildChunk(t, 8, 8, map[intPoint]uint8{
		{1, 0}: 2,
		{0, 1}: 3,
	})
	d := math.Sqrt(2) / 2
	r := ray{origin: vec2{0.25, 0.25}, dir: vec2{d, d}}

	h, ok, err := traceChunk(c, r, 10, policyExact)
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if h.material != 2 {
		t.Errorf("material = %d, want 2: the x axis must win exact crossing ties", h.material)
	}
	if h.normal != (vec2{-1, 0}) {
		t.Errorf("normal = %+v, want (-1, 0)", h.normal)
	}
}

func TestWalkerEntryDistanceMonotonic(t *testing.T) {
	rays := []ray{
		{origin: vec2{3.7, 9.1}, dir: vec2{1, 0}},
		{origin: vec2{0.2, 0.9}, dir: vec2{0.6, 0.8}},
		{origin: vec2{12.5, 3.25}, dir: vec2{-0.38461538, 0.92307692}},
		{origin: vec2{5.5, 5.5}, dir: vec2{math.Sqrt(2) / 2, -math.Sqrt(2) / 2}},
	}
	for _, r := range rays {
		w := newGridWalker(r)
		prev := 0.0
		for i := 0; i < 200; i++ {
			entry := w.step()
			if entry < prev {
				t.Fatalf("ray %+v: entry %v after %v decreased at step %d", r, entry, prev, i)
			}
			prev = entry
		}
	}
}

func TestTraceIdempotent(t *testing.T) {
	c := buildChunk(t, 16, 16, map[intPoint]uint8{{9, 7}: 6, {3, 12}: 2})
	r := normalizedRay(vec2{1.25, 2.75}, vec2{9.5, 7.5})

	for _, policy := range []tracePolicy{policyExact, policyNearest} {
		h1, ok1, err1 := traceChunk(c, r, 12.5, policy)
		h2, ok2, err2 := traceChunk(c, r, 12.5, policy)
		if err1 != nil || err2 != nil {
			t.Fatalf("%v trace: %v / %v", policy, err1, err2)
		}
		if ok1 != ok2 || h1 != h2 {
			t.Errorf("%v: repeated traces differ: %+v/%v vs %+v/%v", policy, h1, ok1, h2, ok2)
		}
	}
}

func TestTraceContractViolations(t *testing.T) {
	c := buildChunk(t, 4, 4, nil)
	valid := ray{origin: vec2{1.5, 1.5}, dir: vec2{1, 0}}

	cases := []struct {
		name    string
		c       *chunk
		r       ray
		maxDist float64
	}{
		{"zero direction", c, ray{origin: vec2{1, 1}}, 10},
		{"non-unit direction", c, ray{origin: vec2{1, 1}, dir: vec2{2, 0}}, 10},
		{"nan origin", c, ray{origin: vec2{math.NaN(), 1}, dir: vec2{1, 0}}, 10},
		{"inf direction", c, ray{origin: vec2{1, 1}, dir: vec2{math.Inf(1), 0}}, 10},
		{"negative bound", c, valid, -1},
		{"nan bound", c, valid, math.NaN()},
		{"nil chunk", nil, valid, 10},
		{"zero extents", &chunk{}, valid, 10},
	}
	for _, tc := range cases {
		if _, _, err := traceChunk(tc.c, tc.r, tc.maxDist, policyExact); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

func TestParseTracePolicy(t *testing.T) {
	if p, err := parseTracePolicy("exact"); err != nil || p != policyExact {
		t.Errorf("exact -> %v, %v", p, err)
	}
	if p, err := parseTracePolicy("nearest"); err != nil || p != policyNearest {
		t.Errorf("nearest -> %v, %v", p, err)
	}
	if _, err := parseTracePolicy("fuzzy"); err == nil {
		t.Error("expected an error for an unknown policy name")
	}
}
