package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/nfnt/resize"
)

// saveScreenshot encodes the framebuffer as a PNG in dir, scaling it by the
// given factor first. It returns the path of the written file.
func saveScreenshot(dir string, pixels []byte, width, height int, factor float64) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("framebuffer is %d bytes, want %d", len(pixels), width*height*4)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)

	var out image.Image = img
	if factor > 0 && factor != 1 {
		out = resize.Resize(uint(float64(width)*factor), 0, img, resize.Bilinear)
	}

	path := filepath.Join(dir, fmt.Sprintf("frame-%s.png", time.Now().Format("20060102-150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating screenshot file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, out); err != nil {
		return "", fmt.Errorf("encoding screenshot: %w", err)
	}
	return path, nil
}
