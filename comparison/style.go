package comparison

// Style is how a region (or the overlay) is drawn by the map layer.
type Style struct {
	FillColor   string  `json:"fill_color"`
	FillOpacity float64 `json:"fill_opacity"`
	Color       string  `json:"color"`
	Weight      int     `json:"weight"`
	Opacity     float64 `json:"opacity"`
}

const (
	referenceFillColor = "#ff4444"
	otherFillColor     = "#ffffff"
	strokeColor        = "#000000"
	overlayColor       = "#ff0000"
)

// OverlayStyle is used for the rescaled reference outline.
var OverlayStyle = Style{
	FillColor:   overlayColor,
	FillOpacity: 0.7,
	Color:       overlayColor,
	Weight:      4,
	Opacity:     1.0,
}

// StyleFor derives a region's style from its flags alone. Hover wins over
// highlight.
func StyleFor(isReference, hovered, highlighted bool) Style {
	style := Style{
		FillColor:   otherFillColor,
		FillOpacity: 0.3,
		Color:       strokeColor,
		Weight:      1,
		Opacity:     0.8,
	}
	if isReference {
		style.FillColor = referenceFillColor
		style.FillOpacity = 0.7
	}

	switch {
	case hovered:
		style.FillOpacity = 0.6
		style.Weight = 2
	case highlighted:
		style.FillOpacity = 0.5
		style.Weight = 2
	}

	return style
}

// BaselineStyle is the style with no hover and no highlight.
func BaselineStyle(isReference bool) Style {
	return StyleFor(isReference, false, false)
}
