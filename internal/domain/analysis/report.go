package analysis

import "rhapsody/internal/domain/board"

// Move type labels, in classification priority order.
const (
	TypePass            = "Pass"
	TypeCapture         = "Capture"
	TypeAtari           = "Atari"
	TypeCut             = "Cut"
	TypeConnection      = "Connection"
	TypeAtariThreat     = "Atari Threat"
	TypeContactMove     = "Contact Move"
	TypeStarPoint       = "Star Point"
	Type33Point         = "3-3 Point"
	Type34Point         = "3-4 Point"
	TypeCornerEnclosure = "Corner Enclosure"
	TypeFirstCornerPlay = "First Corner Play"
	TypeSmallKnight     = "Small Knight"
	TypeOneSpaceJump    = "One-Space Jump"
	TypeTwoSpaceJump    = "Two-Space Jump"
	TypeCornerPlay      = "Corner Play"
	TypeNormalMove      = "Normal Move"
	TypeIllegalMove     = "Illegal Move"
)

// Musical intensity tags consumed by the downstream renderer. The
// analyzer only emits them, nothing here interprets them further.
const (
	IntensityRest            = "rest"
	IntensityPercussiveHit   = "percussive_hit"
	IntensityHighTension     = "high_tension"
	IntensitySharpAccent     = "sharp_accent"
	IntensityBuildingTension = "building_tension"
	IntensityRisingTension   = "rising_tension"
	IntensityCloseEngagement = "close_engagement"
	IntensityResonantTone    = "resonant_tone"
	IntensityGroundedTone    = "grounded_tone"
	IntensityBalancedTone    = "balanced_tone"
	IntensitySettlingPhrase  = "settling_phrase"
	IntensityOpeningTheme    = "opening_theme"
	IntensityLightStep       = "light_step"
	IntensitySteadyStep      = "steady_step"
	IntensityFlowingStep     = "flowing_step"
	IntensityTerritorialStep = "territorial_step"
	IntensityBackgroundPulse = "background_pulse"
	IntensityDissonance      = "dissonance"
)

// MoveReport is the per-move output record. It is created once by the
// game driver and never mutated after being appended to the log.
type MoveReport struct {
	MoveNumber int    `json:"move_number" bson:"move_number"`
	Player     string `json:"player" bson:"player"`

	// Coords is nil for a pass.
	Coords    *board.Point `json:"coords" bson:"coords,omitempty"`
	SGFCoords string       `json:"sgf_coords" bson:"sgf_coords"`

	Type             string `json:"type" bson:"type"`
	MusicalIntensity string `json:"musical_intensity" bson:"musical_intensity"`

	Captures      []board.Point `json:"captures" bson:"captures"`
	CapturedCount int           `json:"captured_count" bson:"captured_count"`

	// Atari holds opponent groups left with exactly one liberty,
	// AtariThreats those with exactly two. Each group appears once,
	// sorted by row then column.
	Atari        [][]board.Point `json:"atari" bson:"atari"`
	AtariThreats [][]board.Point `json:"atari_threats" bson:"atari_threats"`

	IsContact    bool `json:"is_contact" bson:"is_contact"`
	IsCut        bool `json:"is_cut" bson:"is_cut"`
	IsConnection bool `json:"is_connection" bson:"is_connection"`
	KoDetected   bool `json:"ko_detected" bson:"ko_detected"`

	// Distances are Euclidean; nil when undefined (pass, or no
	// qualifying stone on the board).
	DistanceFromCenter                *float64 `json:"distance_from_center" bson:"distance_from_center,omitempty"`
	DistanceToNearestFriendlyStone    *float64 `json:"distance_to_nearest_friendly_stone" bson:"distance_to_nearest_friendly_stone,omitempty"`
	DistanceToNearestEnemyStone       *float64 `json:"distance_to_nearest_enemy_stone" bson:"distance_to_nearest_enemy_stone,omitempty"`
	DistanceFromPreviousFriendlyStone *float64 `json:"distance_from_previous_friendly_stone" bson:"distance_from_previous_friendly_stone,omitempty"`

	BoardBeforeMoveState [][]string `json:"board_before_move_state" bson:"board_before_move_state"`
	BoardAfterMoveState  [][]string `json:"board_after_move_state" bson:"board_after_move_state"`

	// Error is set only on a rejected (illegal) record; the board is
	// left unchanged and analysis continues with the next move.
	Error string `json:"error,omitempty" bson:"error,omitempty"`
}
