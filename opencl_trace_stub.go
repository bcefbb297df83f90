//go:build !opencl

package main

import "errors"

type openCLFrameTracer struct{}

func newOpenCLFrameTracer(frameW, frameH int, c *chunk) (*openCLFrameTracer, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (t *openCLFrameTracer) Trace(p frameParams, c *chunk, cellsDirty bool, pixels []byte) error {
	return errors.New("OpenCL frame tracer unavailable")
}

func (t *openCLFrameTracer) Close() {}

func (t *openCLFrameTracer) DeviceName() string { return "" }
