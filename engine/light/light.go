package light

import "math"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no falloff that shines from its position
	// toward its target, like the sun over the map.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	LightTypePoint
)

// String returns the lowercase name of the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	color     [3]float32
	intensity float32
	target    [3]float32
	enabled   bool
}

// Light defines the interface for a light source in the scene.
//
// A Light carries only its photometric properties. Its placement comes from the
// GameObject it is attached to, so lights share the same identity index and
// add/remove path as every other scene object.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Target returns the world-space point a directional light shines toward.
	//
	// Returns:
	//   - [3]float32: the target point
	Target() [3]float32

	// Direction returns the normalised direction from a light at position toward its target.
	//
	// Parameters:
	//   - position: the world-space position of the owning object
	//
	// Returns:
	//   - [3]float32: the unit direction, or (0, -1, 0) when position equals the target
	Direction(position [3]float32) [3]float32

	// Enabled returns whether this light is active for rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with white color, unit intensity,
// and the world origin as its target.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		color:     [3]float32{1, 1, 1},
		intensity: 1.0,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Target() [3]float32 {
	return l.target
}

func (l *lightImpl) Direction(position [3]float32) [3]float32 {
	dx := l.target[0] - position[0]
	dy := l.target[1] - position[1]
	dz := l.target[2] - position[2]
	length := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
	if length < 1e-8 {
		return [3]float32{0, -1, 0}
	}
	return [3]float32{dx / length, dy / length, dz / length}
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
