package common

// DOM virtual key codes carried in keydown envelopes (KeyboardEvent.keyCode).
// Only the navigation keys cross the proxy boundary; the rest are listed so the
// window layer can translate platform keys into the same code space.
// Reference: https://developer.mozilla.org/en-US/docs/Web/API/KeyboardEvent/keyCode
const (
	KeyLeft  = 37 // ArrowLeft
	KeyUp    = 38 // ArrowUp
	KeyRight = 39 // ArrowRight
	KeyDown  = 40 // ArrowDown

	KeyBackspace = 8
	KeyEnter     = 13
	KeyShift     = 16
	KeyEsc       = 27
	KeySpace     = 32
)

// NavigationKeys is the set of key codes that the main-thread keydown filter forwards to the worker.
var NavigationKeys = map[int]bool{
	KeyLeft:  true,
	KeyUp:    true,
	KeyRight: true,
	KeyDown:  true,
}
