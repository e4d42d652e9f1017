package analyzer

import (
	"rhapsody/internal/domain/analysis"
	"rhapsody/internal/domain/board"
)

// The 19x19 opening points, as (row, col). All four corners mirrored.
var (
	starPoints = []board.Point{{Row: 3, Col: 3}, {Row: 3, Col: 15}, {Row: 15, Col: 3}, {Row: 15, Col: 15}}

	threeThreePoints = []board.Point{{Row: 2, Col: 2}, {Row: 2, Col: 16}, {Row: 16, Col: 2}, {Row: 16, Col: 16}}

	threeFourPoints = []board.Point{
		{Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 2, Col: 15}, {Row: 15, Col: 2},
		{Row: 3, Col: 16}, {Row: 16, Col: 3}, {Row: 15, Col: 16}, {Row: 16, Col: 15},
	}
)

// openingWindow is the number of leading moves eligible for the named
// opening-point labels on a 19x19 board.
const openingWindow = 20

func containsPoint(points []board.Point, p board.Point) bool {
	for _, candidate := range points {
		if candidate == p {
			return true
		}
	}
	return false
}

// classify assigns exactly one type label and its intensity tag. The
// rules form a strict decision list: the first match wins. Pass and
// rejected moves never reach this function.
func (g *Game) classify(f *findings, moveIndex int, row, col int, color board.Stone) (moveType, intensity string) {
	switch {
	case len(f.captures) > 0:
		return analysis.TypeCapture, analysis.IntensityPercussiveHit
	case len(f.atari) > 0:
		return analysis.TypeAtari, analysis.IntensityHighTension
	case f.cut:
		return analysis.TypeCut, analysis.IntensitySharpAccent
	case f.connection:
		return analysis.TypeConnection, analysis.IntensityBuildingTension
	case len(f.threats) > 0:
		return analysis.TypeAtariThreat, analysis.IntensityRisingTension
	case f.contact:
		return analysis.TypeContactMove, analysis.IntensityCloseEngagement
	}

	point := board.Point{Row: row, Col: col}
	if g.size == 19 && moveIndex < openingWindow {
		switch {
		case containsPoint(starPoints, point):
			return analysis.TypeStarPoint, analysis.IntensityResonantTone
		case containsPoint(threeThreePoints, point):
			return analysis.Type33Point, analysis.IntensityGroundedTone
		case containsPoint(threeFourPoints, point):
			return analysis.Type34Point, analysis.IntensityBalancedTone
		}
	}
	if g.size == 19 && f.corner >= 0 {
		if f.enclosure {
			return analysis.TypeCornerEnclosure, analysis.IntensitySettlingPhrase
		}
		if !g.firstCorner[color] {
			return analysis.TypeFirstCornerPlay, analysis.IntensityOpeningTheme
		}
	}

	if g.size == 19 && f.distFriendly != nil {
		switch {
		case *f.distFriendly < 2.5:
			return analysis.TypeSmallKnight, analysis.IntensityLightStep
		case *f.distFriendly == 2.0:
			return analysis.TypeOneSpaceJump, analysis.IntensitySteadyStep
		case *f.distFriendly == 3.0:
			return analysis.TypeTwoSpaceJump, analysis.IntensityFlowingStep
		}
	}

	if g.size == 19 && f.corner >= 0 {
		return analysis.TypeCornerPlay, analysis.IntensityTerritorialStep
	}

	return analysis.TypeNormalMove, analysis.IntensityBackgroundPulse
}
