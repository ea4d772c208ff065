// Package render maps an assembled card onto the template model shared by the
// desktop and mobile card layouts.
package render

import "cardlink/internal/models"

// ShapeClass returns the container classes for a card shape.
// Hexagons render as rounded cards; there is no hexagon clipping.
func ShapeClass(shape string) string {
	switch shape {
	case models.ShapeRounded, models.ShapeHexagon:
		return "rounded-3xl"
	case models.ShapeCircle:
		return "rounded-full aspect-square"
	default:
		return "rounded-2xl"
	}
}

// AlignmentClass returns the flex and text alignment classes.
func AlignmentClass(alignment string) string {
	const base = "flex flex-col"
	switch alignment {
	case models.AlignLeft:
		return base + " items-start text-left"
	case models.AlignRight:
		return base + " items-end text-right"
	default:
		return base + " items-center text-center"
	}
}

// StyleClass returns the border and shadow weight for a layout style.
func StyleClass(style string) string {
	switch style {
	case models.StyleClassic:
		return "border-2 shadow-xl"
	case models.StyleMinimal:
		return "border border-gray-200 shadow-lg"
	case models.StyleCreative:
		return "shadow-2xl transform hover:scale-105 transition-transform duration-300"
	default:
		return "shadow-2xl border border-gray-100"
	}
}
