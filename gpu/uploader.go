package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/blackbody"
)

var (
	// ErrUploaderDestroyed is returned by Upload after Destroy.
	ErrUploaderDestroyed = errors.New("gpu: uploader destroyed")

	// ErrNoDevice is returned by NewFieldUploader for a nil device or queue.
	ErrNoDevice = errors.New("gpu: nil device or queue")

	// ErrNilField is returned by Upload for a nil field.
	ErrNilField = errors.New("gpu: nil field")
)

// FieldUploader owns the GPU objects needed to draw colour fields with the
// grid shader: the shader module, bind group and pipeline layouts, and the
// uniform, cell and vertex buffers. Upload refreshes the buffers; the cell
// buffer grows when a larger field is uploaded.
//
// FieldUploader is not safe for concurrent use.
type FieldUploader struct {
	device hal.Device
	queue  hal.Queue
	space  blackbody.ColorSpace

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout

	uniformBuf hal.Buffer
	vertexBuf  hal.Buffer
	cellBuf    hal.Buffer
	cellCap    uint64

	side      int
	destroyed bool
}

// NewFieldUploader compiles the grid shader and creates the layouts and the
// fixed-size buffers on device. Cells are encoded as sRGB, matching a
// non-sRGB swapchain format; see SetColorSpace.
func NewFieldUploader(device hal.Device, queue hal.Queue) (*FieldUploader, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	u := &FieldUploader{device: device, queue: queue, space: blackbody.SRGB}
	if err := u.init(); err != nil {
		u.Destroy()
		return nil, err
	}
	return u, nil
}

func (u *FieldUploader) init() error {
	spirv, err := CompileGridShader()
	if err != nil {
		return err
	}

	u.shader, err = u.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "blackbody_grid_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("gpu: create grid shader: %w", err)
	}

	u.bindLayout, err = u.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "blackbody_grid_layout",
		Entries: GridBindGroupLayout(),
	})
	if err != nil {
		return fmt.Errorf("gpu: create bind group layout: %w", err)
	}

	u.pipeLayout, err = u.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "blackbody_grid_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{u.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: create pipeline layout: %w", err)
	}

	u.uniformBuf, err = u.createBuffer("blackbody_grid_uniform", GridUniformSize,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}

	quad := QuadVertices()
	u.vertexBuf, err = u.createBuffer("blackbody_grid_quad", uint64(len(quad)),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	if err := u.queue.WriteBuffer(u.vertexBuf, 0, quad); err != nil {
		return fmt.Errorf("gpu: write quad vertices: %w", err)
	}
	return nil
}

func (u *FieldUploader) createBuffer(label string, size uint64, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := u.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %s: %w", label, err)
	}
	return buf, nil
}

// SetColorSpace selects the encoding of uploaded cell colours. Use
// blackbody.Linear for sRGB swapchain formats that encode on write.
func (u *FieldUploader) SetColorSpace(space blackbody.ColorSpace) {
	u.space = space
}

// Upload writes f into the cell buffer and its side into the grid uniform.
func (u *FieldUploader) Upload(f *blackbody.Field[blackbody.RGB]) error {
	if u.destroyed {
		return ErrUploaderDestroyed
	}
	if f == nil {
		return ErrNilField
	}

	cells := FieldBytes(f, u.space)
	size := uint64(len(cells))
	if size > u.cellCap {
		if u.cellBuf != nil {
			u.device.DestroyBuffer(u.cellBuf)
			u.cellBuf = nil
			u.cellCap = 0
		}
		buf, err := u.createBuffer("blackbody_grid_cells", size,
			gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		u.cellBuf, u.cellCap = buf, size
	}

	if err := u.queue.WriteBuffer(u.cellBuf, 0, cells); err != nil {
		return fmt.Errorf("gpu: write cells: %w", err)
	}
	if err := u.queue.WriteBuffer(u.uniformBuf, 0, GridUniform(f.Side())); err != nil {
		return fmt.Errorf("gpu: write grid uniform: %w", err)
	}
	u.side = f.Side()

	blackbody.Logger().Debug("gpu: field uploaded", "side", u.side, "cells", f.Count(), "bytes", size)
	return nil
}

// Instances returns the instance count for the last uploaded field.
func (u *FieldUploader) Instances() uint32 {
	return uint32(u.side * u.side) //nolint:gosec // side is bounded by the field allocation
}

// ShaderModule returns the compiled grid shader.
func (u *FieldUploader) ShaderModule() hal.ShaderModule { return u.shader }

// BindGroupLayout returns the layout of bind group 0.
func (u *FieldUploader) BindGroupLayout() hal.BindGroupLayout { return u.bindLayout }

// PipelineLayout returns the pipeline layout for a grid render pipeline.
func (u *FieldUploader) PipelineLayout() hal.PipelineLayout { return u.pipeLayout }

// UniformBuffer returns the grid uniform buffer (binding 0).
func (u *FieldUploader) UniformBuffer() hal.Buffer { return u.uniformBuf }

// CellBuffer returns the cell storage buffer (binding 1), or nil before
// the first Upload.
func (u *FieldUploader) CellBuffer() hal.Buffer { return u.cellBuf }

// VertexBuffer returns the unit quad vertex buffer.
func (u *FieldUploader) VertexBuffer() hal.Buffer { return u.vertexBuf }

// Destroy releases all GPU objects. It is safe to call more than once.
func (u *FieldUploader) Destroy() {
	if u.device == nil || u.destroyed {
		return
	}
	u.destroyed = true

	for _, buf := range []hal.Buffer{u.cellBuf, u.vertexBuf, u.uniformBuf} {
		if buf != nil {
			u.device.DestroyBuffer(buf)
		}
	}
	u.cellBuf, u.vertexBuf, u.uniformBuf = nil, nil, nil
	u.cellCap = 0

	if u.pipeLayout != nil {
		u.device.DestroyPipelineLayout(u.pipeLayout)
		u.pipeLayout = nil
	}
	if u.bindLayout != nil {
		u.device.DestroyBindGroupLayout(u.bindLayout)
		u.bindLayout = nil
	}
	if u.shader != nil {
		u.device.DestroyShaderModule(u.shader)
		u.shader = nil
	}
}
