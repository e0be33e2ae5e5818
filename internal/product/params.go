package product

import "math"

// MaxSlatTilt is the largest slat rotation of venetian and vertical blinds.
const MaxSlatTilt = math.Pi * 0.45

// Params is the constant table of one style. Fields that do not apply to a
// family are zero.
type Params struct {
	FoldCount    float64 // folds across the panel width (or height for shades/roman)
	FoldDepth    float64 // peak fold amplitude in unit-mesh depth
	FabricWeight float64 // how strongly the hem pulls the folds out
	PinchPleat   bool    // curtain pinch pleat near the rod
	PuddleAmount float64 // floor puddle bulge (drapes)

	// MinBunchRatio is the fraction of its full width a hanging panel keeps
	// when fully gathered.
	MinBunchRatio float64
}

// ParamsFor returns the constant table for s. Invalid styles resolve to the
// family default.
func ParamsFor(s Style) Params {
	switch s := Canonical(s).(type) {
	case CurtainStyle:
		return curtainParams(s)
	case DrapeStyle:
		return drapeParams(s)
	case BlindStyle:
		return blindParams(s)
	case ShadeStyle:
		return shadeParams(s)
	}
	return curtainParams(Sheer)
}

func curtainParams(s CurtainStyle) Params {
	switch s {
	case Velvet:
		return Params{FoldCount: 6, FoldDepth: 0.14, FabricWeight: 1.5, PinchPleat: true, MinBunchRatio: 0.28}
	case Blackout:
		return Params{FoldCount: 7, FoldDepth: 0.10, FabricWeight: 1.2, MinBunchRatio: 0.22}
	case Linen:
		return Params{FoldCount: 9, FoldDepth: 0.09, FabricWeight: 0.8, PinchPleat: true, MinBunchRatio: 0.16}
	default:
		return Params{FoldCount: 12, FoldDepth: 0.06, FabricWeight: 0.3, PinchPleat: true, MinBunchRatio: 0.12}
	}
}

func drapeParams(s DrapeStyle) Params {
	switch s {
	case Luxury:
		return Params{FoldCount: 6, FoldDepth: 0.20, PuddleAmount: 0.10, MinBunchRatio: 0.30}
	case Minimal:
		return Params{FoldCount: 12, FoldDepth: 0.05, PuddleAmount: 0, MinBunchRatio: 0.20}
	case Modern:
		return Params{FoldCount: 8, FoldDepth: 0.08, PuddleAmount: 0.02, MinBunchRatio: 0.20}
	default:
		return Params{FoldCount: 10, FoldDepth: 0.12, PuddleAmount: 0.05, MinBunchRatio: 0.20}
	}
}

func blindParams(s BlindStyle) Params {
	switch s {
	case Roman:
		return Params{FoldCount: 6, FoldDepth: 0.1}
	default:
		// Roller, venetian and vertical blinds carry no fold field.
		return Params{}
	}
}

func shadeParams(s ShadeStyle) Params {
	switch s {
	case Pleated, Honeycomb:
		return Params{FoldCount: 40, FoldDepth: 0.04}
	default:
		return Params{}
	}
}
