package main

import "time"

// Rendering and world configuration constants used throughout the
// application. These values define the framebuffer size, the chunk extents,
// and the traversal defaults of the top-down voxel ray tracer.
const (
	renderW, renderH = 480, 360
	windowScale      = 2

	chunkW, chunkH = 128, 128

	defaultViewHeight = 24.0
	minViewHeight     = 4.0
	maxViewHeight     = 160.0
	zoomStepFactor    = 0.9
	viewHeightKeyStep = 2.0

	playerSpeed = 10.0
	defaultTPS  = 60.0

	// hitTolerance is the Chebyshev acceptance radius around a candidate
	// cell's center under the nearest-candidate policy.
	hitTolerance   = 0.7
	contactEpsilon = 1e-6

	wallSegments          = 25
	wallMinLen            = 12
	wallMaxLen            = 100
	wallThicknessVariance = 2
	spawnExclusionRadius  = 6

	minBrushRadius = 0
	maxBrushRadius = 6

	pgoRecordDuration = 15 * time.Second
)
