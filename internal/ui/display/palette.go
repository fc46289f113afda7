package display

import (
	"image/color"

	"workouttimer/internal/core/plan"
)

// Phase colours. They match the terminal palette.
var (
	ColorPrep      = color.NRGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	ColorWork      = color.NRGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}
	ColorRest      = color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	ColorCooldown  = color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
	ColorFinish    = color.NRGBA{R: 0xa8, G: 0x55, B: 0xf7, A: 0xff}
	ColorIdle      = color.NRGBA{R: 0x64, G: 0x74, B: 0x8b, A: 0xff}
	ColorHighlight = color.NRGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff}
	ColorText      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// KindColor returns the background colour for a phase kind.
func KindColor(kind plan.Kind) color.NRGBA {
	switch kind {
	case plan.KindPrep:
		return ColorPrep
	case plan.KindWork:
		return ColorWork
	case plan.KindRest:
		return ColorRest
	case plan.KindCooldown:
		return ColorCooldown
	default:
		return ColorIdle
	}
}

func celebratePalette() []color.Color {
	return []color.Color{ColorFinish, ColorWork, ColorPrep, ColorRest}
}
