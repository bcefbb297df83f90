package main

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// worldFileVersion identifies the snapshot layout; bump on format changes.
const worldFileVersion = 1

// worldFile is the on-disk snapshot of the voxel world: chunk geometry and
// cells plus the palette colors the materials referenced when saving.
type worldFile struct {
	Version int         `msgpack:"version"`
	Chunks  []chunkFile `msgpack:"chunks"`
	Palette [][3]uint16 `msgpack:"palette"`
}

type chunkFile struct {
	Width  int     `msgpack:"width"`
	Height int     `msgpack:"height"`
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Cells  []byte  `msgpack:"cells"`
}

// saveWorld writes a msgpack snapshot of the world to the given path.
func saveWorld(path string, wld *world) error {
	file := worldFile{
		Version: worldFileVersion,
		Chunks:  make([]chunkFile, 0, len(wld.chunks)),
		Palette: make([][3]uint16, 0, len(palette)),
	}
	for _, c := range wld.chunks {
		cells := make([]byte, len(c.cells))
		copy(cells, c.cells)
		file.Chunks = append(file.Chunks, chunkFile{
			Width:  c.width,
			Height: c.height,
			X:      c.position.X,
			Y:      c.position.Y,
			Cells:  cells,
		})
	}
	for _, clr := range palette {
		file.Palette = append(file.Palette, packColor16(clr))
	}
	data, err := msgpack.Marshal(&file)
	if err != nil {
		return fmt.Errorf("encoding world snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing world snapshot: %w", err)
	}
	return nil
}

// loadWorld reads a msgpack snapshot back into a world, validating chunk
// geometry and material indices against the current palette.
func loadWorld(path string) (*world, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world snapshot: %w", err)
	}
	var file worldFile
	if err := msgpack.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding world snapshot: %w", err)
	}
	if file.Version != worldFileVersion {
		return nil, fmt.Errorf("unsupported world snapshot version %d", file.Version)
	}
	if len(file.Chunks) == 0 {
		return nil, fmt.Errorf("world snapshot contains no chunks")
	}
	wld := &world{chunks: make([]*chunk, 0, len(file.Chunks))}
	for i, cf := range file.Chunks {
		if cf.Width <= 0 || cf.Height <= 0 {
			return nil, fmt.Errorf("chunk %d has invalid extents %dx%d", i, cf.Width, cf.Height)
		}
		if len(cf.Cells) != cf.Width*cf.Height {
			return nil, fmt.Errorf("chunk %d has %d cells, want %d", i, len(cf.Cells), cf.Width*cf.Height)
		}
		c := newChunk(cf.Width, cf.Height, vec2{cf.X, cf.Y})
		for j, m := range cf.Cells {
			if int(m) >= len(palette) {
				return nil, fmt.Errorf("chunk %d cell %d references unknown material %d", i, j, m)
			}
			c.cells[j] = m
		}
		wld.chunks = append(wld.chunks, c)
	}
	return wld, nil
}
