// Package gpu prepares colour fields for drawing on the GPU.
//
// A field is drawn as an instanced grid of quads: one instance per cell,
// with the cell colours in a read-only storage buffer and the grid side in
// a uniform. This package compiles the grid shader, describes its layouts,
// packs the buffers and uploads them through wgpu/hal. Pipeline creation
// and draw calls belong to the caller's renderer.
package gpu

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"

	"github.com/gogpu/blackbody"
	"github.com/gogpu/blackbody/spectrum"
)

//go:embed shaders/grid.wgsl
var gridShaderSource string

const (
	// QuadVertexStride is the byte stride of one quad corner (vec2<f32>).
	QuadVertexStride = 8

	// QuadVertexCount is the number of vertices per cell (two triangles).
	QuadVertexCount = 6

	// GridUniformSize is the size of the grid uniform, padded to 16 bytes.
	GridUniformSize = 16

	// CellStride is the byte stride of one cell in the storage buffer.
	CellStride = 16

	// Grid shader entry points.
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// ErrInvalidSPIRV is returned when compiled shader bytes are not a whole
// number of 32-bit words.
var ErrInvalidSPIRV = errors.New("gpu: invalid SPIR-V")

// GridShaderSource returns the WGSL source of the grid shader.
func GridShaderSource() string {
	return gridShaderSource
}

// CompileGridShader compiles the grid shader to SPIR-V words.
func CompileGridShader() ([]uint32, error) {
	return compileWGSL(gridShaderSource)
}

func compileWGSL(src string) ([]uint32, error) {
	spirv, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile shader: %w", err)
	}
	return spirvWords(spirv)
}

// spirvWords converts little-endian SPIR-V bytes to words.
func spirvWords(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSPIRV, len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words, nil
}

// GridBindGroupLayout returns the bind group 0 entries of the grid shader:
// the grid uniform at binding 0 and the cell storage buffer at binding 1.
func GridBindGroupLayout() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    1,
			Visibility: gputypes.ShaderStageVertex,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
		},
	}
}

// QuadVertexLayout returns the vertex buffer layout of the unit quad.
func QuadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: QuadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // corner
			},
		},
	}
}

// quadCorners are the two triangles of the unit cell.
var quadCorners = [QuadVertexCount][2]float32{
	{0, 0}, {1, 0}, {0, 1},
	{0, 1}, {1, 0}, {1, 1},
}

// QuadVertices returns the unit quad vertex buffer contents.
func QuadVertices() []byte {
	buf := make([]byte, 0, QuadVertexCount*QuadVertexStride)
	for _, c := range quadCorners {
		buf = appendFloat32(buf, c[0], c[1])
	}
	return buf
}

// GridUniform packs vec2<f32>(side, side) followed by 8 bytes of padding.
func GridUniform(side int) []byte {
	buf := make([]byte, 0, GridUniformSize)
	return appendFloat32(buf, float32(side), float32(side), 0, 0)
}

// FieldBytes packs f into the cell storage buffer: 4 float32 per cell in
// x-major order, channels encoded in space.
func FieldBytes(f *blackbody.Field[blackbody.RGB], space blackbody.ColorSpace) []byte {
	quads := blackbody.RGBAQuads(f, space)
	return appendFloat32(make([]byte, 0, len(quads)*4), quads...)
}

// SpectrumBytes packs spd as (wavelength, radiance) float32 pairs for a
// storage buffer of vec2<f32>.
func SpectrumBytes(spd *spectrum.SPD) []byte {
	pairs := spd.Interleaved()
	return appendFloat32(make([]byte, 0, len(pairs)*4), pairs...)
}

func appendFloat32(buf []byte, vs ...float32) []byte {
	for _, v := range vs {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}
