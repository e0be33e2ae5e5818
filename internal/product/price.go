package product

import "math"

// BasePrice is the price per square metre of a family before the style
// multiplier.
func BasePrice(f Family) float64 {
	switch f {
	case Blind:
		return 40
	case Shade:
		return 60
	case Drape:
		return 120
	default:
		return 50
	}
}

// PriceMultiplier is the style surcharge applied to the family base price.
func PriceMultiplier(s Style) float64 {
	switch s := Canonical(s).(type) {
	case CurtainStyle:
		switch s {
		case Blackout:
			return 1.3
		case Velvet:
			return 1.8
		case Linen:
			return 1.2
		}
		return 1
	case BlindStyle:
		switch s {
		case Venetian:
			return 1.2
		case Vertical:
			return 1.4
		case Roman:
			return 1.6
		}
		return 1
	case ShadeStyle:
		switch s {
		case Pleated:
			return 1.2
		case Solar:
			return 1.1
		case Bamboo:
			return 1.4
		}
		return 1.5
	case DrapeStyle:
		switch s {
		case Modern:
			return 1.6
		case Luxury:
			return 3.5
		case Minimal:
			return 1.3
		}
		return 2.2
	}
	return 1
}

// Quote is the priced area of a configuration.
type Quote struct {
	Area  float64 // square metres
	Price int
}

// PriceFor quotes a style at the given dimensions. Dimensions are used as
// given; the UI owns their range.
func PriceFor(s Style, d Dimensions) Quote {
	s = Canonical(s)
	area := d.Area()
	return Quote{
		Area:  area,
		Price: int(math.Round(BasePrice(s.Family()) * PriceMultiplier(s) * area)),
	}
}
