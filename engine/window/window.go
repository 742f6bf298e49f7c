package window

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/estomania/common"
	"github.com/Carmen-Shannon/estomania/engine/dom"
)

// Window is the main-goroutine surface the player interacts with. It implements dom.Element:
// platform input is translated into DOM-shaped events ("pointermove", "wheel", "keydown", ...)
// and dispatched to listeners, and "resize" fires whenever the client area changes.
type Window interface {
	dom.Element

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to stop. Safe to call from any goroutine.
	RequestClose()

	// Close closes the window and releases platform resources. Call it from the goroutine
	// that created the window, after ProcessMessages returns.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Title returns the window title.
	Title() string

	// Width returns the current client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// platform is the windowing backend behind an engineWindow.
type platform interface {
	// poll processes pending platform events and reports whether the window is still open.
	poll() bool
	focus()
	close() error
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, platform state and the translated input state.
type engineWindow struct {
	dom.EventDispatcher

	// title is the window title displayed in the title bar.
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	mu     sync.RWMutex
	width  int
	height int

	// cursor and modifier state carried into every event.
	cursorX, cursorY float64
	mods             modifiers
	captured         map[int]bool

	style map[string]string

	running  atomic.Bool
	platform platform

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()
}

type modifiers struct {
	shift, ctrl, meta bool
}

var _ Window = &engineWindow{}

// newEngineWindow applies defaults and options without creating a platform window.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "estomania",
		maxWidth:  1600,
		maxHeight: 1200,
		minWidth:  600,
		minHeight: 200,
		width:     1280,
		height:    720,
		captured:  make(map[int]bool),
		style:     map[string]string{},
	}
	for _, opt := range options {
		opt(w)
	}
	w.running.Store(true)
	return w
}

// NewHeadlessWindow creates a Window with no platform window behind it. Input is whatever is
// dispatched to it; the message loop runs until RequestClose.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the headless window
func NewHeadlessWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	w.platform = headlessPlatform{}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) IsRunning() bool {
	return w.running.Load()
}

func (w *engineWindow) RequestClose() {
	w.running.Store(false)
}

func (w *engineWindow) Close() error {
	w.running.Store(false)
	if w.platform == nil {
		return nil
	}
	return w.platform.close()
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if w.platform != nil && !w.platform.poll() {
			w.running.Store(false)
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Title() string {
	return w.title
}

func (w *engineWindow) Width() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.height
}

func (w *engineWindow) ClientWidth() float64 {
	return float64(w.Width())
}

func (w *engineWindow) ClientHeight() float64 {
	return float64(w.Height())
}

func (w *engineWindow) BoundingClientRect() dom.Rect {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return dom.NewRect(0, 0, float64(w.width), float64(w.height))
}

// SetPointerCapture records the capture. Platform windows keep delivering cursor events
// while a button is held, so nothing else is needed.
func (w *engineWindow) SetPointerCapture(pointerID int) {
	w.mu.Lock()
	w.captured[pointerID] = true
	w.mu.Unlock()
}

func (w *engineWindow) ReleasePointerCapture(pointerID int) {
	w.mu.Lock()
	delete(w.captured, pointerID)
	w.mu.Unlock()
}

func (w *engineWindow) Focus() {
	if w.platform != nil {
		w.platform.focus()
	}
}

func (w *engineWindow) Style() map[string]string {
	return w.style
}

// resize stores the new client size, clamped to the configured bounds, and fires "resize".
func (w *engineWindow) resize(width, height int) {
	width = common.Clamp(width, w.minWidth, w.maxWidth)
	height = common.Clamp(height, w.minHeight, w.maxHeight)
	w.mu.Lock()
	changed := width != w.width || height != w.height
	w.width, w.height = width, height
	w.mu.Unlock()
	if changed {
		w.DispatchEvent(&dom.Event{Type: "resize"})
	}
}

func (w *engineWindow) newEvent(eventType string) *dom.Event {
	return &dom.Event{
		Type:        eventType,
		CtrlKey:     w.mods.ctrl,
		MetaKey:     w.mods.meta,
		ShiftKey:    w.mods.shift,
		PointerType: "mouse",
		ClientX:     w.cursorX,
		ClientY:     w.cursorY,
		PageX:       w.cursorX,
		PageY:       w.cursorY,
	}
}

// cursorMoved fires pointermove and mousemove. Button is -1 as no button changed.
func (w *engineWindow) cursorMoved(x, y float64) {
	w.cursorX, w.cursorY = x, y
	for _, t := range []string{"pointermove", "mousemove"} {
		ev := w.newEvent(t)
		ev.Button = -1
		w.DispatchEvent(ev)
	}
}

// buttonChanged fires pointer and mouse down/up events for a DOM button number. A secondary
// button press also fires contextmenu.
func (w *engineWindow) buttonChanged(button int, pressed bool) {
	types := []string{"pointerup", "mouseup"}
	if pressed {
		types = []string{"pointerdown", "mousedown"}
	}
	for _, t := range types {
		ev := w.newEvent(t)
		ev.Button = button
		w.DispatchEvent(ev)
	}
	if pressed && button == 2 {
		w.DispatchEvent(w.newEvent("contextmenu"))
	}
}

// scrolled fires wheel. Platform offsets are positive for scrolling up; DOM deltas are
// positive for scrolling down, in pixels.
func (w *engineWindow) scrolled(xoff, yoff float64) {
	ev := w.newEvent("wheel")
	ev.DeltaX = -xoff * 100
	ev.DeltaY = -yoff * 100
	w.DispatchEvent(ev)
}

// keyChanged fires keydown (also for repeats) or keyup with a DOM key code.
func (w *engineWindow) keyChanged(keyCode int, pressed bool) {
	t := "keyup"
	if pressed {
		t = "keydown"
	}
	ev := w.newEvent(t)
	ev.KeyCode = keyCode
	w.DispatchEvent(ev)
}

// cursorLeft fires mouseout and mouseleave.
func (w *engineWindow) cursorLeft() {
	w.DispatchEvent(w.newEvent("mouseout"))
	w.DispatchEvent(w.newEvent("mouseleave"))
}

// GLFW key values that differ from their DOM key codes. Printable keys share ASCII codes.
const (
	glfwKeyEscape     = 256
	glfwKeyEnter      = 257
	glfwKeyBackspace  = 259
	glfwKeyRight      = 262
	glfwKeyLeft       = 263
	glfwKeyDown       = 264
	glfwKeyUp         = 265
	glfwKeyLeftShift  = 340
	glfwKeyRightShift = 344
)

// domKeyCode translates a GLFW key into a DOM key code, or 0 when there is no equivalent.
func domKeyCode(key int) int {
	switch key {
	case glfwKeyLeft:
		return common.KeyLeft
	case glfwKeyUp:
		return common.KeyUp
	case glfwKeyRight:
		return common.KeyRight
	case glfwKeyDown:
		return common.KeyDown
	case glfwKeyEscape:
		return common.KeyEsc
	case glfwKeyEnter:
		return common.KeyEnter
	case glfwKeyBackspace:
		return common.KeyBackspace
	case glfwKeyLeftShift, glfwKeyRightShift:
		return common.KeyShift
	}
	if key >= 32 && key <= 96 {
		return key
	}
	return 0
}

// domButton translates a GLFW mouse button (left 0, right 1, middle 2) into a DOM button
// (primary 0, auxiliary 1, secondary 2).
func domButton(button int) int {
	switch button {
	case 1:
		return 2
	case 2:
		return 1
	default:
		return button
	}
}

type headlessPlatform struct{}

// poll sleeps briefly so an idle headless loop does not spin.
func (headlessPlatform) poll() bool {
	time.Sleep(time.Millisecond)
	return true
}

func (headlessPlatform) focus()       {}
func (headlessPlatform) close() error { return nil }
