package engine

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return gl.PtrOffset(n) }

// Renderer is the external-renderer collaborator for the desktop demo: it
// consumes RenderSnapshots and issues the draw calls the engine never makes
// itself. One streaming VBO of 8-float point sprites, a normal alpha pass
// for particles and an additive glow pass for the orb core.
type Renderer struct {
	spriteProg uint32
	glowProg   uint32
	vao        uint32
	vbo        uint32

	spUZoom       int32
	spUResolution int32
	spUOpacity    int32

	glowUZoom       int32
	glowUResolution int32

	zoom float64

	coreBuf []float32
}

func NewRenderer() (*Renderer, error) {
	spriteProg, err := linkProgram(spriteVertSrc, spriteFragSrc)
	if err != nil {
		return nil, fmt.Errorf("sprite program: %w", err)
	}
	glowProg, err := linkProgram(spriteVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(spriteProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}

	r := &Renderer{
		spriteProg: spriteProg,
		glowProg:   glowProg,
		zoom:       DefaultZoom,
	}

	// Streaming VBO: each sprite is 8 floats (x, y, z, size, r, g, b, a).
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(SpriteFloats * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxSpriteRender*int(stride), nil, gl.STREAM_DRAW)
	// aWorldPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(3*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))
	r.vao = vao
	r.vbo = vbo

	gl.UseProgram(spriteProg)
	r.spUZoom = gl.GetUniformLocation(spriteProg, gl.Str("uZoom\x00"))
	r.spUResolution = gl.GetUniformLocation(spriteProg, gl.Str("uResolution\x00"))
	r.spUOpacity = gl.GetUniformLocation(spriteProg, gl.Str("uOpacity\x00"))

	gl.UseProgram(glowProg)
	r.glowUZoom = gl.GetUniformLocation(glowProg, gl.Str("uZoom\x00"))
	r.glowUResolution = gl.GetUniformLocation(glowProg, gl.Str("uResolution\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	for _, id := range []uint32{r.spriteProg, r.glowProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Enable(gl.BLEND)

	gl.UseProgram(r.spriteProg)
	gl.Uniform1f(r.spUZoom, float32(r.zoom))
	gl.Uniform2f(r.spUResolution, float32(fbW), float32(fbH))

	gl.UseProgram(r.glowProg)
	gl.Uniform1f(r.glowUZoom, float32(r.zoom))
	gl.Uniform2f(r.glowUResolution, float32(fbW), float32(fbH))

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
}

func (r *Renderer) upload(buf []float32) int {
	count := len(buf) / SpriteFloats
	if count > MaxSpriteRender {
		count = MaxSpriteRender
		buf = buf[:count*SpriteFloats]
	}
	if count == 0 {
		return 0
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(buf)*4, gl.Ptr(&buf[0]))
	return count
}

// DrawParticles renders one pool layer, alpha blended, with the layer's
// crossfade opacity.
func (r *Renderer) DrawParticles(buf []float32, opacity float64) {
	count := r.upload(buf)
	if count == 0 {
		return
	}
	gl.UseProgram(r.spriteProg)
	gl.Uniform1f(r.spUOpacity, float32(opacity))
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
}

// DrawGlow renders additive glow sprites (the orb core).
func (r *Renderer) DrawGlow(buf []float32) {
	count := r.upload(buf)
	if count == 0 {
		return
	}
	gl.UseProgram(r.glowProg)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
}

// DrawOrbCore renders the orb itself from the snapshot: layered glow sprites
// under the sequencer transform, plus a small facet highlight whose orbit
// angle follows the rotation so spin steps stay readable on a round glow.
func (r *Renderer) DrawOrbCore(snap RenderSnapshot) {
	t := snap.Transform
	cx := float32(t.Pos[0])
	cy := float32(t.Pos[1])
	cz := float32(t.Pos[2])
	scale := float32(t.Scale)

	cr := float32(snap.Color.R) / 255.0
	cg := float32(snap.Color.G) / 255.0
	cb := float32(snap.Color.B) / 255.0
	brightness := float32(0.55 + 0.45*snap.Intensity)

	facetAng := t.Rot[1] + t.Rot[2]
	fx := cx + float32(math.Cos(facetAng))*float32(OrbRadius)*0.55*scale
	fy := cy + float32(math.Sin(facetAng)+t.Rot[0]*0.5)*float32(OrbRadius)*0.55*scale

	r.coreBuf = r.coreBuf[:0]
	r.coreBuf = append(r.coreBuf,
		// Outer halo.
		cx, cy, cz, float32(OrbRadius)*2.4*scale, cr*0.45*brightness, cg*0.45*brightness, cb*0.45*brightness, 1,
		// Body.
		cx, cy, cz, float32(OrbRadius)*1.3*scale, cr*brightness, cg*brightness, cb*brightness, 1,
		// Hot centre.
		cx, cy, cz, float32(OrbRadius)*0.5*scale, 1, 1, 1, 0.9,
		// Facet highlight.
		fx, fy, cz, float32(OrbRadius)*0.22*scale, 1, 1, 1, 0.6,
	)
	r.DrawGlow(r.coreBuf)
}

// DrawSnapshot renders a full frame: particle layers in snapshot order
// (outgoing first), then the orb core on top.
func (r *Renderer) DrawSnapshot(snap RenderSnapshot) {
	for i := range snap.Pools {
		p := &snap.Pools[i]
		r.DrawParticles(p.Sprites, p.Opacity)
	}
	r.DrawOrbCore(snap)
}
