// Package shader manages the one linked GL program the engine renders with.
// User-supplied fragment sources are WebGL1-style GLSL; both stages are
// translated to GLSL 330 through the ANGLE shader translator before being
// handed to the driver, so the user-facing dialect matches what the
// validation and diagnostics in this package operate on.
package shader

import (
	"context"
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	gst "github.com/richinsley/goshadertranslator"

	"github.com/richinsley/goshaderpaint/resources"
)

// Manager owns the currently linked shader program. It has two states:
// Unlinked (no program, draws are skipped) and Active (exactly one linked
// program). A failed Compile never leaves Active state; the previous program
// is retained until a replacement links successfully.
type Manager struct {
	translator *gst.ShaderTranslator

	program        uint32
	fragmentSource string

	// original name -> translator-mapped name, merged from both stages
	mapped map[string]string
	// original name -> location, -1 once a lookup has missed
	uniforms map[string]int32
	attribs  map[string]int32
}

// NewManager starts the ANGLE translator. The manager begins Unlinked;
// call Compile to produce the first program.
func NewManager(ctx context.Context) (*Manager, error) {
	tr, err := gst.NewShaderTranslator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize shader translator: %w", err)
	}
	return &Manager{translator: tr}, nil
}

// Active reports whether a linked program exists.
func (m *Manager) Active() bool {
	return m.program != 0
}

// Program returns the current program handle, 0 when Unlinked.
func (m *Manager) Program() uint32 {
	return m.program
}

// FragmentSource returns the user source of the active program.
func (m *Manager) FragmentSource() string {
	return m.fragmentSource
}

// Compile translates, compiles and links the fixed vertex stage together
// with the given fragment source. The previously active program (and its
// location caches) are replaced only after the new program links; on any
// failure the old program stays bound-able and the structured error is
// returned to the caller.
func (m *Manager) Compile(fragmentSource string) error {
	vs, err := m.translator.TranslateShader(VertexSource, "vertex", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
	if err != nil {
		return &resources.CompileError{Stage: "vertex", Log: err.Error()}
	}
	fs, err := m.translator.TranslateShader(fragmentSource, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
	if err != nil {
		return &resources.CompileError{Stage: "fragment", Log: err.Error()}
	}

	vsObj, err := resources.CompileShader(gl.VERTEX_SHADER, vs.Code)
	if err != nil {
		return err
	}
	fsObj, err := resources.CompileShader(gl.FRAGMENT_SHADER, fs.Code)
	if err != nil {
		resources.DeleteShader(&vsObj)
		return err
	}

	program, err := resources.LinkProgram(vsObj, fsObj)
	// shader objects are not needed once linked
	resources.DeleteShader(&vsObj)
	resources.DeleteShader(&fsObj)
	if err != nil {
		return err
	}

	resources.DeleteProgram(&m.program)
	m.program = program
	m.fragmentSource = fragmentSource
	m.mapped = make(map[string]string)
	for name, v := range vs.Variables {
		m.mapped[name] = v.MappedName
	}
	for name, v := range fs.Variables {
		m.mapped[name] = v.MappedName
	}
	m.uniforms = make(map[string]int32)
	m.attribs = make(map[string]int32)
	return nil
}

// Use binds the active program as current. No-op when Unlinked.
func (m *Manager) Use() {
	if m.program == 0 {
		return
	}
	gl.UseProgram(m.program)
}

// glName resolves the name the driver knows a variable by. The translator
// rewrites user identifiers; variables it did not report keep their
// original spelling.
func (m *Manager) glName(name string) string {
	if mapped, ok := m.mapped[name]; ok && mapped != "" {
		return mapped
	}
	return name
}

// UniformLocation looks up (and caches) a uniform by its original source
// name. Returns -1 when the shader does not declare it; shaders are allowed
// to omit optional uniforms.
func (m *Manager) UniformLocation(name string) int32 {
	if m.program == 0 {
		return -1
	}
	if loc, ok := m.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(m.program, gl.Str(m.glName(name)+"\x00"))
	m.uniforms[name] = loc
	return loc
}

// AttribLocation looks up (and caches) a vertex attribute by its original
// source name. Returns -1 when absent.
func (m *Manager) AttribLocation(name string) int32 {
	if m.program == 0 {
		return -1
	}
	if loc, ok := m.attribs[name]; ok {
		return loc
	}
	loc := gl.GetAttribLocation(m.program, gl.Str(m.glName(name)+"\x00"))
	m.attribs[name] = loc
	return loc
}

// Uniform setters. A missing uniform is silently skipped. The program must
// already be in use; setters do not rebind it.

func (m *Manager) SetFloat(name string, v float32) {
	if loc := m.UniformLocation(name); loc != -1 {
		gl.Uniform1f(loc, v)
	}
}

func (m *Manager) SetVec2(name string, x, y float32) {
	if loc := m.UniformLocation(name); loc != -1 {
		gl.Uniform2f(loc, x, y)
	}
}

func (m *Manager) SetVec3(name string, x, y, z float32) {
	if loc := m.UniformLocation(name); loc != -1 {
		gl.Uniform3f(loc, x, y, z)
	}
}

func (m *Manager) SetVec4(name string, x, y, z, w float32) {
	if loc := m.UniformLocation(name); loc != -1 {
		gl.Uniform4f(loc, x, y, z, w)
	}
}

func (m *Manager) SetInt(name string, v int32) {
	if loc := m.UniformLocation(name); loc != -1 {
		gl.Uniform1i(loc, v)
	}
}

func (m *Manager) SetMat2(name string, mat mgl32.Mat2) {
	if loc := m.UniformLocation(name); loc != -1 {
		gl.UniformMatrix2fv(loc, 1, false, &mat[0])
	}
}

func (m *Manager) SetMat3(name string, mat mgl32.Mat3) {
	if loc := m.UniformLocation(name); loc != -1 {
		gl.UniformMatrix3fv(loc, 1, false, &mat[0])
	}
}

func (m *Manager) SetMat4(name string, mat mgl32.Mat4) {
	if loc := m.UniformLocation(name); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &mat[0])
	}
}

// Destroy releases the active program. Safe to call repeatedly; the manager
// returns to Unlinked state.
func (m *Manager) Destroy() {
	resources.DeleteProgram(&m.program)
	m.fragmentSource = ""
	m.mapped = nil
	m.uniforms = nil
	m.attribs = nil
}
