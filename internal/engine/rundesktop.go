package engine

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// stateKeys maps number keys to emotional states for the demo.
var stateKeys = [...]struct {
	key   glfw.Key
	state string
}{
	{glfw.Key1, "neutral"},
	{glfw.Key2, "joy"},
	{glfw.Key3, "reflective"},
	{glfw.Key4, "curious"},
	{glfw.Key5, "excited"},
	{glfw.Key6, "empathetic"},
	{glfw.Key7, "calm"},
}

func RunDesktop() {
	runtime.LockOSThread()

	window, err := initWindow()
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	if err := InitAudio(); err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
	}

	// Seed from environment or clock.
	seed := uint64(glfw.GetTimerValue())
	if s := os.Getenv("ORB_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}

	eng, err := New(seed)
	if err != nil {
		panic(fmt.Errorf("engine: %w", err))
	}
	defer eng.Close()
	eng.OnQualityChange(func(em, cp float64) {
		fmt.Fprintf(os.Stderr, "orb: quality scales now emission=%.2f cap=%.2f\n", em, cp)
	})

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.02, 0.02, 0.04, 1.0)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()

	input := NewInput()
	intensity := 0.9

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		// State keys 1-7; -/= nudge intensity.
		for _, sk := range stateKeys {
			if input.JustPressed(window, sk.key) {
				eng.SetState(sk.state, intensity)
				PlayStateChime(eng.CurrentState())
			}
		}
		if input.JustPressed(window, glfw.KeyMinus) {
			intensity = clampF(intensity-0.1, 0, 1)
			eng.SetState(eng.CurrentState().String(), intensity)
		}
		if input.JustPressed(window, glfw.KeyEqual) {
			intensity = clampF(intensity+0.1, 0, 1)
			eng.SetState(eng.CurrentState().String(), intensity)
		}

		// Mouse: click bursts, hover attraction.
		cursor := CursorWorldPos(window, fbW, fbH)
		if input.JustClicked(window, glfw.MouseButtonLeft) {
			eng.HandleInteraction(InteractionClick, cursor)
		} else if math.Hypot(cursor.X, cursor.Y) < HoverPullRadius*2 {
			eng.HandleInteraction(InteractionHover, cursor)
		}

		eng.Tick(dt)
		if dt > 0 {
			eng.ReportFrameMetrics(1.0 / dt)
		}

		rend.BeginFrame(fbW, fbH)
		rend.DrawSnapshot(eng.Snapshot())
		window.SwapBuffers()
	}
}
