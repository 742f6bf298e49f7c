package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwPlatform holds the GLFW-specific window state.
type glfwPlatform struct {
	window *glfw.Window
}

// NewWindow creates a GLFW-backed Window with the specified options.
// Applies default values first, then each option in order. Must be called from the main goroutine,
// which must then run ProcessMessages.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newGLFWPlatform(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

// newGLFWPlatform creates the GLFW window and routes its callbacks into DOM events.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newGLFWPlatform(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// Frames are rasterised on the CPU, so no client API context is needed.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %v", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	w.platform = &glfwPlatform{window: win}

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		w.setModifiers(mods)
		if key == glfw.KeyEscape && action == glfw.Press {
			w.RequestClose()
			win.SetShouldClose(true)
			return
		}
		code := domKeyCode(int(key))
		if code == 0 {
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			w.keyChanged(code, true)
		case glfw.Release:
			w.keyChanged(code, false)
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.scrolled(xoff, yoff)
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		w.setModifiers(mods)
		w.buttonChanged(domButton(int(button)), action == glfw.Press)
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.cursorMoved(xpos, ypos)
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorEnterCallback
	win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			w.cursorLeft()
		}
	})

	// Client sizes are in screen coordinates so they line up with cursor positions.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetSizeCallback
	win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resize(width, height)
	})

	width, height := win.GetSize()
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()
	return nil
}

func (w *engineWindow) setModifiers(mods glfw.ModifierKey) {
	w.mods = modifiers{
		shift: mods&glfw.ModShift != 0,
		ctrl:  mods&glfw.ModControl != 0,
		meta:  mods&glfw.ModSuper != 0,
	}
}

// poll processes pending GLFW events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func (p *glfwPlatform) poll() bool {
	glfw.PollEvents()
	return !p.window.ShouldClose()
}

func (p *glfwPlatform) focus() {
	if p.window != nil {
		p.window.Focus()
	}
}

// close destroys the GLFW window and terminates the GLFW library.
func (p *glfwPlatform) close() error {
	if p.window == nil {
		return fmt.Errorf("window is not initialized")
	}
	p.window.SetShouldClose(true)
	p.window.Destroy()
	p.window = nil
	glfw.Terminate()
	return nil
}
