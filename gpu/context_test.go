// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "errors"

// fakeContext is a recording Context for tests. Setting lost simulates
// a context loss; every handle it issued before is considered stale.
type fakeContext struct {
	lost        bool
	wideIndices bool
	width       int
	height      int

	nextHandle uint32

	compiles    int
	links       int
	bufferDatas int
	bufferBinds int

	compileErr error
	linkErr    error

	usedPrograms     []Program
	boundBuffers     []Buffer
	deletedBuffers   []Buffer
	uploads          [][]byte
	drawnElements    []int
	drawnOffsets     []int
	drawnArrays      []int
	clears           int
	blends           int
	viewports        [][2]int
	boundFramebuffer Framebuffer

	uniformNames []string
	floats       map[string]float64
	matrices     map[string][9]float64
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		wideIndices: true,
		width:       800,
		height:      600,
		floats:      make(map[string]float64),
		matrices:    make(map[string][9]float64),
	}
}

func (c *fakeContext) handle() uint32 {
	c.nextHandle++
	return c.nextHandle
}

func (c *fakeContext) IsLost() bool          { return c.lost }
func (c *fakeContext) Has32BitIndices() bool { return c.wideIndices }
func (c *fakeContext) Size() (int, int)      { return c.width, c.height }

func (c *fakeContext) CreateBuffer() Buffer { return Buffer(c.handle()) }
func (c *fakeContext) BindBuffer(target BufferTarget, buffer Buffer) {
	c.bufferBinds++
	c.boundBuffers = append(c.boundBuffers, buffer)
}
func (c *fakeContext) BufferData(target BufferTarget, data []byte, usage BufferUsage) {
	c.bufferDatas++
	c.uploads = append(c.uploads, data)
}
func (c *fakeContext) DeleteBuffer(buffer Buffer) {
	c.deletedBuffers = append(c.deletedBuffers, buffer)
}

func (c *fakeContext) CompileShader(kind ShaderKind, source string) (ShaderHandle, error) {
	if c.compileErr != nil {
		return 0, c.compileErr
	}
	c.compiles++
	return ShaderHandle(c.handle()), nil
}
func (c *fakeContext) DeleteShader(shader ShaderHandle) {}
func (c *fakeContext) LinkProgram(vertex, fragment ShaderHandle) (Program, error) {
	if c.linkErr != nil {
		return 0, c.linkErr
	}
	c.links++
	return Program(c.handle()), nil
}
func (c *fakeContext) UseProgram(program Program) {
	c.usedPrograms = append(c.usedPrograms, program)
}
func (c *fakeContext) DeleteProgram(program Program) {}

func (c *fakeContext) GetUniformLocation(program Program, name string) UniformLocation {
	c.uniformNames = append(c.uniformNames, name)
	return UniformLocation(len(c.uniformNames))
}
func (c *fakeContext) GetAttribLocation(program Program, name string) AttribLocation {
	return AttribLocation(len(c.uniformNames))
}
func (c *fakeContext) EnableVertexAttrib(location AttribLocation, size, stride, offset int) {}
func (c *fakeContext) UniformFloat(location UniformLocation, value float64) {
	if int(location) >= 1 && int(location) <= len(c.uniformNames) {
		c.floats[c.uniformNames[location-1]] = value
	}
}
func (c *fakeContext) UniformMatrix(location UniformLocation, values [9]float64) {
	if int(location) >= 1 && int(location) <= len(c.uniformNames) {
		c.matrices[c.uniformNames[location-1]] = values
	}
}

func (c *fakeContext) DrawElements(count, offset int, wide bool) {
	c.drawnElements = append(c.drawnElements, count)
	c.drawnOffsets = append(c.drawnOffsets, offset)
}
func (c *fakeContext) DrawArrays(count int) {
	c.drawnArrays = append(c.drawnArrays, count)
}

func (c *fakeContext) Viewport(width, height int) {
	c.viewports = append(c.viewports, [2]int{width, height})
}
func (c *fakeContext) Clear(r, g, b, a float64) { c.clears++ }
func (c *fakeContext) BlendAlphaOver()          { c.blends++ }

func (c *fakeContext) CreateTexture(width, height int) Texture { return Texture(c.handle()) }
func (c *fakeContext) BindTexture(texture Texture)             {}
func (c *fakeContext) DeleteTexture(texture Texture)           {}

func (c *fakeContext) CreateFramebuffer(color Texture) Framebuffer {
	return Framebuffer(c.handle())
}
func (c *fakeContext) BindFramebuffer(framebuffer Framebuffer) {
	c.boundFramebuffer = framebuffer
}
func (c *fakeContext) DeleteFramebuffer(framebuffer Framebuffer) {}

var _ Context = (*fakeContext)(nil)

var errCompile = errors.New("syntax error")
