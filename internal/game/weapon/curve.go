package weapon

// Desirability curve shape constants. Distances are world units.
const (
	// Shotgun: dominant inside its sweet spot, useless past its reach.
	shotgunSweetRange = 10.0
	shotgunMaxRange   = 30.0

	// Assault rifle: weak up close, ramps to its plateau at range.
	rifleCloseScore   = 0.3
	riflePlateauScore = 0.9
	riflePlateauDist  = 40.0

	// Blaster: a fallback that is never the best pick at range but never
	// entirely undesirable.
	blasterCloseScore = 0.5
	blasterFloorScore = 0.1
	blasterFadeDist   = 50.0
)

// Curve maps an engagement distance to a desirability score.
//
// Every curve is total over [0, +inf) and non-negative.
type Curve func(dist float64) float64

// curveTable is the per-type scoring strategy table. Selection iterates the
// arsenal, not this table, so map order never affects the outcome.
var curveTable = map[Type]Curve{
	TypeBlaster:      blasterCurve,
	TypeShotgun:      shotgunCurve,
	TypeAssaultRifle: rifleCurve,
}

// CurveFor returns the desirability curve for t and whether t has one.
//
// Postcondition: ok is true iff t is a known Type.
func CurveFor(t Type) (Curve, bool) {
	c, ok := curveTable[t]
	return c, ok
}

func shotgunCurve(dist float64) float64 {
	switch {
	case dist <= shotgunSweetRange:
		return 1.0
	case dist >= shotgunMaxRange:
		return 0.0
	default:
		return 1.0 - (dist-shotgunSweetRange)/(shotgunMaxRange-shotgunSweetRange)
	}
}

func rifleCurve(dist float64) float64 {
	if dist >= riflePlateauDist {
		return riflePlateauScore
	}
	return rifleCloseScore + (riflePlateauScore-rifleCloseScore)*dist/riflePlateauDist
}

func blasterCurve(dist float64) float64 {
	if dist >= blasterFadeDist {
		return blasterFloorScore
	}
	return blasterCloseScore - (blasterCloseScore-blasterFloorScore)*dist/blasterFadeDist
}
