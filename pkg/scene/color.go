package scene

// Color is an RGBA colour with components in [0, 1]
type Color struct {
	R, G, B, A float64
}

// UnpackColor converts a packed 0xRRGGBBAA value
func UnpackColor(packed uint32) Color {
	return Color{
		R: float64(byte(packed>>24)) / 255.0,
		G: float64(byte(packed>>16)) / 255.0,
		B: float64(byte(packed>>8)) / 255.0,
		A: float64(byte(packed)) / 255.0,
	}
}

// Highlight colours applied on top of an entity's own material.
var (
	SelectedColor    = Color{R: 0.1, G: 1, B: 1, A: 0.5}
	PreselectedColor = Color{R: 0.4, G: 1, B: 1, A: 0.5}
	White            = Color{R: 1, G: 1, B: 1, A: 1}
)

// State is the highlight state of an entity
type State int

const (
	StateNormal State = iota
	StatePreselected
	StateSelected
)

func (s State) String() string {
	switch s {
	case StatePreselected:
		return "preselected"
	case StateSelected:
		return "selected"
	default:
		return "normal"
	}
}

// Style is what a renderer needs to draw one entity
type Style struct {
	State    State
	Ambient  Color
	Diffuse  Color
	Emissive Color
	Specular Color
}

// materialStyle derives the style from the entity's colours.
// Four colours are ambient, diffuse, emissive, specular; a single colour is
// the older format and only tints the specular term.
func materialStyle(colors []Color) Style {
	if len(colors) == 4 {
		return Style{Ambient: colors[0], Diffuse: colors[1], Emissive: colors[2], Specular: colors[3]}
	}
	s := Style{Diffuse: White}
	if len(colors) > 0 {
		s.Specular = colors[0]
	}
	return s
}
