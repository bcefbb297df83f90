//go:build opencl

package main

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// openCLFrameTracer runs the exact-boundary DDA for every framebuffer pixel
// on an OpenCL device, mirroring the CPU traversal. Only the exact policy is
// implemented on the device; the CPU path remains the reference.
type openCLFrameTracer struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	cellsBuf   *cl.MemObject
	paletteBuf *cl.MemObject
	pixelsBuf  *cl.MemObject
	frameW     int
	frameH     int
	gridW      int
	gridH      int
	deviceName string
}

const traceKernelSource = `__kernel void trace_frame(
    const int frame_w,
    const int frame_h,
    const int grid_w,
    const int grid_h,
    const float cam_x,
    const float cam_y,
    const float half_height,
    const float aspect,
    const float origin_x,
    const float origin_y,
    const float bg_r,
    const float bg_g,
    const float bg_b,
    const int palette_len,
    __global const uchar* cells,
    __global const float* palette,
    __global uchar* pixels)
{
    int idx = get_global_id(0);
    if (idx >= frame_w * frame_h) {
        return;
    }
    int px = idx % frame_w;
    int py = idx / frame_w;

    float u = (((float)px + 0.5f) / (float)frame_w * 2.0f - 1.0f) * aspect;
    float v = ((float)py + 0.5f) / (float)frame_h * -2.0f + 1.0f;
    float wx = cam_x + u * half_height;
    float wy = cam_y + v * half_height;

    float dx = wx - origin_x;
    float dy = wy - origin_y;
    float dist = sqrt(dx * dx + dy * dy);

    int hit_m = 0;
    if (dist < 1e-6f) {
        int sx = (int)floor(wx);
        int sy = (int)floor(wy);
        if (sx >= 0 && sx < grid_w && sy >= 0 && sy < grid_h) {
            hit_m = cells[sy * grid_w + sx];
        }
    } else {
        float dirx = dx / dist;
        float diry = dy / dist;
        int cx = (int)floor(origin_x);
        int cy = (int)floor(origin_y);
        int step_x = 0;
        int step_y = 0;
        float unit_x = MAXFLOAT;
        float unit_y = MAXFLOAT;
        float cross_x = MAXFLOAT;
        float cross_y = MAXFLOAT;
        if (dirx > 0.0f) {
            step_x = 1;
            unit_x = 1.0f / dirx;
            cross_x = ((float)(cx + 1) - origin_x) * unit_x;
        } else if (dirx < 0.0f) {
            step_x = -1;
            unit_x = -1.0f / dirx;
            cross_x = (origin_x - (float)cx) * unit_x;
        }
        if (diry > 0.0f) {
            step_y = 1;
            unit_y = 1.0f / diry;
            cross_y = ((float)(cy + 1) - origin_y) * unit_y;
        } else if (diry < 0.0f) {
            step_y = -1;
            unit_y = -1.0f / diry;
            cross_y = (origin_y - (float)cy) * unit_y;
        }
        float t = 0.0f;
        int max_iter = grid_w * grid_h;
        for (int i = 0; i <= max_iter; i++) {
            if (cx < 0 || cx >= grid_w || cy < 0 || cy >= grid_h) {
                break;
            }
            uchar m = cells[cy * grid_w + cx];
            if (m != 0) {
                hit_m = m;
                break;
            }
            if (cross_x <= cross_y) {
                t = cross_x;
                cross_x += unit_x;
                cx += step_x;
            } else {
                t = cross_y;
                cross_y += unit_y;
                cy += step_y;
            }
            if (t > dist) {
                break;
            }
        }
        if (hit_m == 0) {
            int sx = (int)floor(wx);
            int sy = (int)floor(wy);
            if (sx >= 0 && sx < grid_w && sy >= 0 && sy < grid_h) {
                hit_m = cells[sy * grid_w + sx];
            }
        }
    }

    float r = bg_r;
    float g = bg_g;
    float b = bg_b;
    if (hit_m > 0 && hit_m < palette_len) {
        r = palette[hit_m * 3 + 0];
        g = palette[hit_m * 3 + 1];
        b = palette[hit_m * 3 + 2];
    }
    int base = idx * 4;
    pixels[base + 0] = (uchar)(r * 255.0f + 0.5f);
    pixels[base + 1] = (uchar)(g * 255.0f + 0.5f);
    pixels[base + 2] = (uchar)(b * 255.0f + 0.5f);
    pixels[base + 3] = 255;
}`

func newOpenCLFrameTracer(frameW, frameH int, c *chunk) (*openCLFrameTracer, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	var device *cl.Device
	for _, p := range platforms {
		devices, derr := p.GetDevices(cl.DeviceTypeGPU)
		if derr != nil && derr != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			device = devices[0]
			break
		}
	}
	if device == nil {
		for _, p := range platforms {
			devices, derr := p.GetDevices(cl.DeviceTypeCPU)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				device = devices[0]
				break
			}
		}
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	queue, err := context.CreateCommandQueue(device, 0)
	if err != nil {
		context.Release()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	program, err := context.CreateProgramWithSource([]string{traceKernelSource})
	if err != nil {
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		program.Release()
		queue.Release()
		context.Release()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	kernel, err := program.CreateKernel("trace_frame")
	if err != nil {
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}

	tracer := &openCLFrameTracer{
		context:    context,
		queue:      queue,
		program:    program,
		kernel:     kernel,
		frameW:     frameW,
		frameH:     frameH,
		gridW:      c.width,
		gridH:      c.height,
		deviceName: device.Name(),
	}

	cellsBuf, err := context.CreateEmptyBuffer(cl.MemReadOnly, c.width*c.height)
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("allocating cell buffer: %w", err)
	}
	tracer.cellsBuf = cellsBuf
	paletteBuf, err := context.CreateEmptyBuffer(cl.MemReadOnly, len(palette)*3*int(unsafe.Sizeof(float32(0))))
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("allocating palette buffer: %w", err)
	}
	tracer.paletteBuf = paletteBuf
	pixelsBuf, err := context.CreateEmptyBuffer(cl.MemWriteOnly, frameW*frameH*4)
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("allocating pixel buffer: %w", err)
	}
	tracer.pixelsBuf = pixelsBuf

	colors := make([]float32, 0, len(palette)*3)
	for _, clr := range palette {
		colors = append(colors, clr.R, clr.G, clr.B)
	}
	if _, err := queue.EnqueueWriteBufferFloat32(tracer.paletteBuf, true, 0, colors, nil); err != nil {
		tracer.Close()
		return nil, fmt.Errorf("writing palette buffer: %w", err)
	}

	return tracer, nil
}

// Trace renders one frame into pixels. The camera and ray origin are shifted
// into the chunk's local frame before the kernel runs, the same offset
// correction the CPU path applies around its local tracer.
func (t *openCLFrameTracer) Trace(p frameParams, c *chunk, cellsDirty bool, pixels []byte) error {
	if c.width != t.gridW || c.height != t.gridH {
		return fmt.Errorf("chunk extents changed to %dx%d", c.width, c.height)
	}
	if len(pixels) != t.frameW*t.frameH*4 {
		return fmt.Errorf("framebuffer is %d bytes, want %d", len(pixels), t.frameW*t.frameH*4)
	}
	if cellsDirty {
		ptr := unsafe.Pointer(&c.cells[0])
		if _, err := t.queue.EnqueueWriteBuffer(t.cellsBuf, false, 0, len(c.cells), ptr, nil); err != nil {
			return fmt.Errorf("writing cell buffer: %w", err)
		}
	}

	origin := c.worldOrigin()
	local := p.camera.position.sub(origin)
	localOrigin := p.origin.sub(origin)
	aspect := float32(t.frameW) / float32(t.frameH)
	if err := t.kernel.SetArgs(
		int32(t.frameW),
		int32(t.frameH),
		int32(t.gridW),
		int32(t.gridH),
		float32(local.X),
		float32(local.Y),
		float32(p.camera.viewHeight*0.5),
		aspect,
		float32(localOrigin.X),
		float32(localOrigin.Y),
		backgroundColor.R,
		backgroundColor.G,
		backgroundColor.B,
		int32(len(palette)),
		t.cellsBuf,
		t.paletteBuf,
		t.pixelsBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}

	global := []int{t.frameW * t.frameH}
	if _, err := t.queue.EnqueueNDRangeKernel(t.kernel, nil, global, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	ptr := unsafe.Pointer(&pixels[0])
	if _, err := t.queue.EnqueueReadBuffer(t.pixelsBuf, true, 0, len(pixels), ptr, nil); err != nil {
		return fmt.Errorf("reading pixel buffer: %w", err)
	}
	return nil
}

func (t *openCLFrameTracer) Close() {
	if t.pixelsBuf != nil {
		t.pixelsBuf.Release()
		t.pixelsBuf = nil
	}
	if t.paletteBuf != nil {
		t.paletteBuf.Release()
		t.paletteBuf = nil
	}
	if t.cellsBuf != nil {
		t.cellsBuf.Release()
		t.cellsBuf = nil
	}
	if t.kernel != nil {
		t.kernel.Release()
		t.kernel = nil
	}
	if t.program != nil {
		t.program.Release()
		t.program = nil
	}
	if t.queue != nil {
		t.queue.Release()
		t.queue = nil
	}
	if t.context != nil {
		t.context.Release()
		t.context = nil
	}
}

func (t *openCLFrameTracer) DeviceName() string {
	return t.deviceName
}
