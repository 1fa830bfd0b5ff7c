package match

// Color is the on/off state of the three channels of the RGB indicator.
type Color struct {
	R bool
	G bool
	B bool
}

//nolint:gochecknoglobals // Named indicator colors.
var (
	// ColorOff is shown while idle or paused.
	ColorOff = Color{}
	// ColorTurnA is shown while player A's clock runs.
	ColorTurnA = Color{G: true}
	// ColorTurnB is shown while player B's clock runs.
	ColorTurnB = Color{B: true}
	// ColorAlert is shown during the boot banner and while a loss is announced.
	ColorAlert = Color{R: true}
)

// TurnColor returns the indicator color for the given running side.
func TurnColor(p Player) Color {
	if p == PlayerB {
		return ColorTurnB
	}

	return ColorTurnA
}

func (c Color) String() string {
	switch c {
	case ColorOff:
		return "off"
	case ColorTurnA:
		return "green"
	case ColorTurnB:
		return "blue"
	case ColorAlert:
		return "red"
	}

	name := ""

	for _, ch := range []struct {
		on   bool
		name string
	}{{c.R, "r"}, {c.G, "g"}, {c.B, "b"}} {
		if ch.on {
			name += ch.name
		}
	}

	return name
}
