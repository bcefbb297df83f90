package main

import "flag"

// Command-line flags that control the trace policy, renderer parallelism,
// world persistence, and optional runtime behavior.
var (
	// tracePolicyFlag selects how the traversal resolves hits: "exact"
	// stops at the first occupied cell, "nearest" validates the first
	// candidate against a tolerance disk at the distance bound.
	tracePolicyFlag = flag.String("trace-policy", "exact", "hit resolution policy: exact or nearest")

	// workersFlag sets the number of row-rendering goroutines; 0 means one per CPU.
	workersFlag = flag.Int("workers", 0, "render worker goroutines (0 = NumCPU)")

	// worldFlag loads a saved world file instead of generating a scene.
	worldFlag = flag.String("world", "", "load a world snapshot from the given path")

	// saveWorldFlag sets where F5 writes the world snapshot.
	saveWorldFlag = flag.String("save-world", "world.mpk", "path F5 saves the world snapshot to")

	// sceneSeedFlag fixes the procedural scene seed; 0 derives one from the clock.
	sceneSeedFlag = flag.Int64("scene-seed", 0, "seed for procedural scene generation (0 = time-based)")

	// shotDirFlag is the directory F10 writes PNG screenshots into.
	shotDirFlag = flag.String("shot-dir", ".", "directory for F10 screenshots")

	// shotScaleFlag scales screenshots before encoding.
	shotScaleFlag = flag.Float64("shot-scale", 1.0, "screenshot scale factor")

	// openclFlag routes frame tracing through the OpenCL kernel.
	openclFlag = flag.Bool("opencl", false, "trace frames on an OpenCL device (requires -tags opencl build)")

	// debugFlag enables the FPS and trace timing overlay.
	debugFlag = flag.Bool("debug", false, "show FPS, trace time, and policy overlay")

	// recordDefaultPGO wanders the player for 15s while capturing default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "wander for 15s while capturing default.pgo")
)
