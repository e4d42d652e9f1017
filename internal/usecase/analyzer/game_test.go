package analyzer

import (
	"testing"

	"go.uber.org/zap"

	"rhapsody/internal/domain/analysis"
	"rhapsody/internal/domain/sgf"
)

func newTestGame(t *testing.T, size int) *Game {
	t.Helper()
	g, err := NewGame(size, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewGame(%d): %v", size, err)
	}
	return g
}

func placement(player string, row, col int) sgf.Move {
	return sgf.Move{Player: player, Row: row, Col: col, Coords: sgf.CoordsToString(row, col)}
}

func pass(player string) sgf.Move {
	return sgf.Move{Player: player, Pass: true}
}

func analyzeMoves(t *testing.T, size int, moves ...sgf.Move) []analysis.MoveReport {
	t.Helper()
	g := newTestGame(t, size)
	reports, err := g.Analyze(moves)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(reports) != len(moves) {
		t.Fatalf("expected %d reports, got %d", len(moves), len(reports))
	}
	return reports
}

func TestFirstMoveAtCenter(t *testing.T) {
	reports := analyzeMoves(t, 9, placement("B", 4, 4))

	report := reports[0]
	if report.MoveNumber != 1 {
		t.Errorf("move number: expected 1, got %d", report.MoveNumber)
	}
	if report.Type != analysis.TypeNormalMove {
		t.Errorf("type: expected %q, got %q", analysis.TypeNormalMove, report.Type)
	}
	if report.MusicalIntensity != analysis.IntensityBackgroundPulse {
		t.Errorf("intensity: expected %q, got %q", analysis.IntensityBackgroundPulse, report.MusicalIntensity)
	}
	if report.DistanceFromCenter == nil || *report.DistanceFromCenter != 0.0 {
		t.Errorf("distance from center: expected 0.0, got %v", report.DistanceFromCenter)
	}
	if report.CapturedCount != 0 || len(report.Atari) != 0 {
		t.Errorf("first move cannot capture or atari: %+v", report)
	}
	if report.DistanceToNearestFriendlyStone != nil {
		t.Errorf("no other friendly stone exists, got distance %v", *report.DistanceToNearestFriendlyStone)
	}
	if report.DistanceFromPreviousFriendlyStone != nil {
		t.Errorf("no previous move exists, got distance %v", *report.DistanceFromPreviousFriendlyStone)
	}
}

func TestPassReport(t *testing.T) {
	reports := analyzeMoves(t, 9,
		placement("B", 2, 2),
		pass("W"),
		placement("W", 6, 6),
	)

	passReport := reports[1]
	if passReport.Type != analysis.TypePass || passReport.MusicalIntensity != analysis.IntensityRest {
		t.Errorf("pass classification: got %q/%q", passReport.Type, passReport.MusicalIntensity)
	}
	if passReport.Coords != nil {
		t.Errorf("pass must have no coords, got %v", passReport.Coords)
	}
	for r := range passReport.BoardBeforeMoveState {
		for c := range passReport.BoardBeforeMoveState[r] {
			if passReport.BoardBeforeMoveState[r][c] != passReport.BoardAfterMoveState[r][c] {
				t.Fatalf("pass mutated the board at (%d,%d)", r, c)
			}
		}
	}

	// White's pass must not seed white's previous-move tracking.
	if reports[2].DistanceFromPreviousFriendlyStone != nil {
		t.Errorf("pass must not update previous-move state, got %v", *reports[2].DistanceFromPreviousFriendlyStone)
	}
}

func TestCaptureBeatsContact(t *testing.T) {
	// Black's third move captures the white corner stone and is also a
	// contact play; capture has absolute priority.
	reports := analyzeMoves(t, 9,
		placement("B", 0, 1),
		placement("W", 0, 0),
		placement("B", 1, 0),
	)

	report := reports[2]
	if !report.IsContact {
		t.Errorf("move should be flagged as contact")
	}
	if report.Type != analysis.TypeCapture {
		t.Errorf("type: expected %q, got %q", analysis.TypeCapture, report.Type)
	}
	if report.MusicalIntensity != analysis.IntensityPercussiveHit {
		t.Errorf("intensity: expected %q, got %q", analysis.IntensityPercussiveHit, report.MusicalIntensity)
	}
	if report.CapturedCount != 1 || len(report.Captures) != 1 {
		t.Fatalf("expected 1 capture, got %+v", report.Captures)
	}
	if report.Captures[0].Row != 0 || report.Captures[0].Col != 0 {
		t.Errorf("expected capture at (0,0), got %v", report.Captures[0])
	}
	if report.BoardAfterMoveState[0][0] != "E" {
		t.Errorf("captured stone still on the after snapshot")
	}
	if report.BoardBeforeMoveState[0][0] != "W" {
		t.Errorf("captured stone missing from the before snapshot")
	}
}

func TestAtariClassification(t *testing.T) {
	reports := analyzeMoves(t, 9,
		placement("B", 3, 3),
		placement("W", 0, 0),
		placement("B", 0, 1),
	)

	report := reports[2]
	if report.Type != analysis.TypeAtari {
		t.Errorf("type: expected %q, got %q", analysis.TypeAtari, report.Type)
	}
	if len(report.Atari) != 1 {
		t.Fatalf("expected one group in atari, got %v", report.Atari)
	}
}

func TestAtariThreatClassification(t *testing.T) {
	// White (0,1) starts with three liberties; black (1,1) leaves two.
	reports := analyzeMoves(t, 9,
		placement("B", 5, 5),
		placement("W", 0, 1),
		placement("B", 1, 1),
	)

	report := reports[2]
	if report.Type != analysis.TypeAtariThreat {
		t.Errorf("type: expected %q, got %q", analysis.TypeAtariThreat, report.Type)
	}
	if report.MusicalIntensity != analysis.IntensityRisingTension {
		t.Errorf("intensity: expected %q, got %q", analysis.IntensityRisingTension, report.MusicalIntensity)
	}
	if len(report.AtariThreats) != 1 {
		t.Fatalf("expected one threatened group, got %v", report.AtariThreats)
	}
}

func TestCutClassification(t *testing.T) {
	// Two white groups whose only shared liberty is (2,2); black takes
	// it. Neither group ends in atari, so the cut rule decides.
	reports := analyzeMoves(t, 9,
		placement("B", 1, 1),
		placement("W", 0, 2),
		placement("B", 7, 7),
		placement("W", 1, 2),
		placement("B", 6, 6),
		placement("W", 2, 0),
		placement("B", 5, 5),
		placement("W", 2, 1),
		placement("B", 2, 2),
	)

	report := reports[8]
	if !report.IsCut {
		t.Fatalf("move not flagged as cut: %+v", report)
	}
	if report.Type != analysis.TypeCut {
		t.Errorf("type: expected %q, got %q", analysis.TypeCut, report.Type)
	}
	if report.MusicalIntensity != analysis.IntensitySharpAccent {
		t.Errorf("intensity: expected %q, got %q", analysis.IntensitySharpAccent, report.MusicalIntensity)
	}
}

func TestConnectionClassification(t *testing.T) {
	reports := analyzeMoves(t, 9,
		placement("B", 2, 2),
		placement("W", 7, 7),
		placement("B", 2, 4),
		placement("W", 6, 6),
		placement("B", 2, 3),
	)

	report := reports[4]
	if !report.IsConnection {
		t.Fatalf("move not flagged as connection: %+v", report)
	}
	if report.Type != analysis.TypeConnection {
		t.Errorf("type: expected %q, got %q", analysis.TypeConnection, report.Type)
	}
}

func TestIllegalMoveDoesNotAbort(t *testing.T) {
	reports := analyzeMoves(t, 9,
		placement("B", 4, 4),
		placement("W", 4, 4), // occupied
		placement("B", 9, 9), // out of bounds
		placement("W", 0, 0),
	)

	occupied := reports[1]
	if occupied.Type != analysis.TypeIllegalMove || occupied.Error == "" {
		t.Errorf("occupied cell: expected illegal-move report, got %+v", occupied)
	}
	if occupied.BoardAfterMoveState[4][4] != "B" {
		t.Errorf("rejected move corrupted the board")
	}

	outOfBounds := reports[2]
	if outOfBounds.Type != analysis.TypeIllegalMove {
		t.Errorf("out of bounds: expected illegal-move report, got %q", outOfBounds.Type)
	}

	// Analysis continues past rejected records.
	last := reports[3]
	if last.Type == analysis.TypeIllegalMove {
		t.Errorf("legal follow-up move was rejected: %+v", last)
	}
	if last.BoardAfterMoveState[0][0] != "W" {
		t.Errorf("follow-up move not applied")
	}
}

func TestDistanceFromPreviousMove(t *testing.T) {
	reports := analyzeMoves(t, 9,
		placement("B", 0, 0),
		placement("W", 8, 8),
		placement("B", 3, 4),
	)

	report := reports[2]
	if report.DistanceFromPreviousFriendlyStone == nil {
		t.Fatalf("expected a previous-move distance")
	}
	if want := 5.0; *report.DistanceFromPreviousFriendlyStone != want {
		t.Errorf("previous-move distance: expected %v, got %v", want, *report.DistanceFromPreviousFriendlyStone)
	}
}

func TestKoDetectedOnRecapture(t *testing.T) {
	// Build the classic ko shape around (2,2)/(2,3) and let black
	// recapture the single white stone.
	reports := analyzeMoves(t, 9,
		placement("B", 1, 2),
		placement("W", 1, 3),
		placement("B", 3, 2),
		placement("W", 3, 3),
		placement("B", 2, 1),
		placement("W", 2, 4),
		placement("B", 2, 3),
		placement("W", 2, 2), // captures black (2,3)
		placement("B", 2, 3), // recaptures: ko
	)

	capture := reports[7]
	if capture.Type != analysis.TypeCapture || capture.CapturedCount != 1 {
		t.Fatalf("expected white to capture one stone, got %+v", capture)
	}
	if !capture.KoDetected {
		t.Errorf("ko not detected on the first single-stone capture")
	}

	recapture := reports[8]
	if recapture.Type != analysis.TypeCapture {
		t.Errorf("recapture type: expected %q, got %q", analysis.TypeCapture, recapture.Type)
	}
	if !recapture.KoDetected {
		t.Errorf("ko not detected on recapture")
	}
}

func TestOpeningPoints19(t *testing.T) {
	reports := analyzeMoves(t, 19,
		placement("B", 3, 3),
		placement("W", 2, 16),
		placement("B", 15, 16),
	)

	if reports[0].Type != analysis.TypeStarPoint {
		t.Errorf("(3,3): expected %q, got %q", analysis.TypeStarPoint, reports[0].Type)
	}
	if reports[1].Type != analysis.Type33Point {
		t.Errorf("(2,16): expected %q, got %q", analysis.Type33Point, reports[1].Type)
	}
	if reports[2].Type != analysis.Type34Point {
		t.Errorf("(15,16): expected %q, got %q", analysis.Type34Point, reports[2].Type)
	}
}

func TestFirstCornerPlayTrackedPerPlayer(t *testing.T) {
	reports := analyzeMoves(t, 19,
		placement("B", 1, 1),
		placement("W", 9, 9),
		placement("B", 17, 3),
	)

	if reports[0].Type != analysis.TypeFirstCornerPlay {
		t.Errorf("first corner entry: expected %q, got %q", analysis.TypeFirstCornerPlay, reports[0].Type)
	}
	if reports[1].Type != analysis.TypeNormalMove {
		t.Errorf("center move: expected %q, got %q", analysis.TypeNormalMove, reports[1].Type)
	}
	// Black already visited a corner, and no enclosure applies here.
	if reports[2].Type != analysis.TypeCornerPlay {
		t.Errorf("second corner entry: expected %q, got %q", analysis.TypeCornerPlay, reports[2].Type)
	}
}

func TestCornerEnclosure(t *testing.T) {
	reports := analyzeMoves(t, 19,
		placement("B", 2, 2),
		placement("W", 16, 16),
		placement("B", 3, 4),
	)

	report := reports[2]
	if report.Type != analysis.TypeCornerEnclosure {
		t.Errorf("expected %q, got %q", analysis.TypeCornerEnclosure, report.Type)
	}
	if report.MusicalIntensity != analysis.IntensitySettlingPhrase {
		t.Errorf("intensity: expected %q, got %q", analysis.IntensitySettlingPhrase, report.MusicalIntensity)
	}
}

func TestShapeHeuristics19(t *testing.T) {
	reports := analyzeMoves(t, 19,
		placement("B", 3, 3),
		placement("W", 16, 3),
		placement("B", 4, 5), // knight's distance from (3,3)
	)
	if reports[2].Type != analysis.TypeSmallKnight {
		t.Errorf("knight spacing: expected %q, got %q", analysis.TypeSmallKnight, reports[2].Type)
	}

	reports = analyzeMoves(t, 19,
		placement("B", 3, 3),
		placement("W", 16, 15),
		placement("B", 3, 6), // two-space jump from (3,3)
	)
	if reports[2].Type != analysis.TypeTwoSpaceJump {
		t.Errorf("two-space jump: expected %q, got %q", analysis.TypeTwoSpaceJump, reports[2].Type)
	}
}

func TestCornerRulesDisabledOffNineteen(t *testing.T) {
	// The corner/opening classification is a no-op on smaller boards.
	reports := analyzeMoves(t, 9, placement("B", 2, 2))
	if reports[0].Type != analysis.TypeNormalMove {
		t.Errorf("9x9 (2,2): expected %q, got %q", analysis.TypeNormalMove, reports[0].Type)
	}
}
