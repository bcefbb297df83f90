package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()
	runtime.GOMAXPROCS(runtime.NumCPU())

	policy, err := parseTracePolicy(*tracePolicyFlag)
	if err != nil {
		log.Fatal(err)
	}

	var wld *world
	if *worldFlag != "" {
		wld, err = loadWorld(*worldFlag)
		if err != nil {
			log.Fatalf("Loading world failed: %v", err)
		}
		log.Printf("Loaded world with %d chunk(s) from %s", len(wld.chunks), *worldFlag)
	} else {
		wld = newWorld()
		generateScene(wld.chunks[0], *sceneSeedFlag)
	}

	workers := *workersFlag
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g := newGame(wld, policy, workers)
	if *recordDefaultPGO {
		stop, err := startPGORecording("default.pgo")
		if err != nil {
			log.Fatalf("Starting PGO recording failed: %v", err)
		}
		g.stopPGO = stop
		g.enableAutoPan(pgoRecordDuration)
		log.Printf("Recording default.pgo for %s while wandering", pgoRecordDuration)
	}

	ebiten.SetWindowSize(renderW*windowScale, renderH*windowScale)
	ebiten.SetWindowTitle("Top-Down Voxel Ray Tracer")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
