package primitives

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"nexus-landing/internal/ui"
)

// Registry caches unit meshes (cube, sphere) behind one lit material and draws glyphs
// from their part lists. Meshes are created on first use so that GPU resources are
// allocated after the window/OpenGL context exists.
type Registry struct {
	shapes   map[string][]PartDef
	meshes   map[string]rl.Mesh
	mtl      rl.Material
	ready    bool
	viewPos  [3]float32
	lightDir [3]float32
	light    Lighting
}

// NewRegistry returns a registry drawing the given glyph shapes.
func NewRegistry(shapes map[string][]PartDef) *Registry {
	return &Registry{
		shapes:   shapes,
		meshes:   make(map[string]rl.Mesh),
		lightDir: [3]float32{0.5, 1, 0.5},
		light:    DefaultLighting,
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// before drawing so lit parts get correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

const (
	sphereRings  = 12
	sphereSlices = 12
	// arcSegments is the number of cube pieces approximating a half ring.
	arcSegments = 18
)

func (r *Registry) ensureMaterial() {
	if r.ready {
		return
	}
	r.ready = true
	r.mtl = rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		r.mtl.Shader = shader
	}
}

func (r *Registry) mesh(kind string) (rl.Mesh, bool) {
	if m, ok := r.meshes[kind]; ok {
		return m, true
	}
	var m rl.Mesh
	switch kind {
	case "cube":
		m = rl.GenMeshCube(1, 1, 1)
	case "sphere":
		// Radius 0.5 so the unit mesh spans 1 like the cube.
		m = rl.GenMeshSphere(0.5, sphereRings, sphereSlices)
	default:
		return m, false
	}
	r.meshes[kind] = m
	return m, true
}

// drawMesh draws a unit mesh scaled, rotated (radians, XYZ) and translated, tinted c.
func (r *Registry) drawMesh(kind string, position, scale, rotation [3]float32, c rl.Color) {
	m, ok := r.mesh(kind)
	if !ok {
		return
	}
	r.ensureMaterial()
	if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = c
	}
	r.uniforms(r.mtl.Shader)
	scaleM := rl.MatrixScale(scale[0], scale[1], scale[2])
	rotM := rl.MatrixRotateXYZ(rl.NewVector3(rotation[0], rotation[1], rotation[2]))
	transM := rl.MatrixTranslate(position[0], position[1], position[2])
	rl.DrawMesh(m, r.mtl, rl.MatrixMultiply(rl.MatrixMultiply(scaleM, rotM), transM))
}

// DrawGlyph draws the glyph of the given kind at origin, scaled uniformly and faded by
// alpha. Must be called between BeginMode3D and EndMode3D. Unknown kinds are skipped.
func (r *Registry) DrawGlyph(kind string, origin [3]float32, scale, alpha float32) {
	for _, p := range r.shapes[kind] {
		c := partColor(p, alpha)
		pos := [3]float32{
			origin[0] + p.Offset[0]*scale,
			origin[1] + p.Offset[1]*scale,
			origin[2] + p.Offset[2]*scale,
		}
		rot := [3]float32{
			p.Rotation[0] * math32.Pi / 180,
			p.Rotation[1] * math32.Pi / 180,
			p.Rotation[2] * math32.Pi / 180,
		}
		switch p.Type {
		case "cube", "sphere":
			size := [3]float32{p.Size[0] * scale, p.Size[1] * scale, p.Size[2] * scale}
			r.drawMesh(p.Type, pos, size, rot, c)
		case "arc":
			r.drawArc(pos, p.Radius*scale, p.Thickness*scale, c)
		case "triangle":
			w, h := p.Size[0]*scale/2, p.Size[1]*scale/2
			rl.DrawTriangle3D(
				rl.NewVector3(pos[0]-w, pos[1]-h, pos[2]),
				rl.NewVector3(pos[0]+w, pos[1]-h, pos[2]),
				rl.NewVector3(pos[0], pos[1]+h, pos[2]),
				c,
			)
		}
	}
}

// drawArc draws an upper half ring in the XY plane centered at center.
func (r *Registry) drawArc(center [3]float32, radius, thickness float32, c rl.Color) {
	step := math32.Pi / arcSegments
	segLen := 2 * radius * math32.Sin(step/2)
	for i := 0; i < arcSegments; i++ {
		a := (float32(i) + 0.5) * step
		pos := [3]float32{center[0] + math32.Cos(a)*radius, center[1] + math32.Sin(a)*radius, center[2]}
		r.drawMesh("cube", pos, [3]float32{segLen, thickness, thickness}, [3]float32{0, 0, a + math32.Pi/2}, c)
	}
}

func partColor(p PartDef, alpha float32) rl.Color {
	c, ok := ui.ParseColor(p.Color)
	if !ok {
		c.R, c.G, c.B, c.A = 128, 128, 128, 255
	}
	op := p.Opacity
	if op == 0 {
		op = 1
	}
	return rl.NewColor(c.R, c.G, c.B, uint8(float32(c.A)*op*max(0, min(1, alpha))))
}

// Unload releases cached meshes and the material.
func (r *Registry) Unload() {
	for k, m := range r.meshes {
		rl.UnloadMesh(&m)
		delete(r.meshes, k)
	}
	if r.ready {
		rl.UnloadMaterial(r.mtl)
		r.ready = false
	}
}

// Lighting is the glyph light rig: an ambient term plus one directional light with a
// Blinn-Phong highlight.
type Lighting struct {
	Ambient   [3]float32
	Light     [3]float32
	Intensity float32
	Shininess float32
	Specular  float32
}

// DefaultLighting is a soft ambient fill under a bright white key light.
var DefaultLighting = Lighting{
	Ambient:   [3]float32{0.6, 0.6, 0.6},
	Light:     [3]float32{1, 1, 1},
	Intensity: 0.8,
	Shininess: 32,
	Specular:  0.25,
}

// uniforms pushes the view and light rig to the lit shader. Values are copied into local
// slices before crossing into C.
func (r *Registry) uniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	l := r.light
	vec3 := []struct {
		name string
		v    [3]float32
	}{
		{"viewPos", r.viewPos},
		{"lightDir", r.lightDir},
		{"ambient", l.Ambient},
		{"lightColor", l.Light},
	}
	for _, u := range vec3 {
		if loc := rl.GetShaderLocation(shader, u.name); loc >= 0 {
			v := u.v
			rl.SetShaderValueV(shader, loc, v[:], rl.ShaderUniformVec3, 1)
		}
	}
	floats := []struct {
		name string
		v    float32
	}{
		{"intensity", l.Intensity},
		{"shininess", l.Shininess},
		{"specular", l.Specular},
	}
	for _, u := range floats {
		if loc := rl.GetShaderLocation(shader, u.name); loc >= 0 {
			rl.SetShaderValue(shader, loc, []float32{u.v}, rl.ShaderUniformFloat)
		}
	}
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
out vec3 worldPos;
out vec3 normal;
void main() {
  worldPos = (matModel * vec4(vertexPosition, 1.0)).xyz;
  normal = mat3(matModel) * vertexNormal;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec3 worldPos;
in vec3 normal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec3 ambient;
uniform vec3 lightColor;
uniform float intensity;
uniform float shininess;
uniform float specular;
out vec4 finalColor;
void main() {
  vec3 n = normalize(normal);
  vec3 l = normalize(lightDir);
  float lambert = max(dot(n, l), 0.0);
  vec3 h = normalize(l + normalize(viewPos - worldPos));
  float spec = lambert > 0.0 ? pow(max(dot(n, h), 0.0), shininess) * specular : 0.0;
  vec3 rgb = colDiffuse.rgb * (ambient + lightColor * lambert * intensity) + lightColor * spec;
  finalColor = vec4(rgb, colDiffuse.a);
}
`
)
