package analyzer

import (
	"fmt"

	"go.uber.org/zap"

	"rhapsody/internal/domain/analysis"
	"rhapsody/internal/domain/board"
	"rhapsody/internal/domain/sgf"
	errs "rhapsody/internal/errors"
)

// Game drives the analysis of one game: it owns the board and the
// per-color state carried between moves (previous placement, first
// corner visit). One Game analyzes one move sequence and is then
// discarded; independent games need independent Game values.
type Game struct {
	size  int
	board *board.Board
	log   *zap.SugaredLogger

	prevMove    map[board.Stone]*board.Point
	firstCorner map[board.Stone]bool
}

func NewGame(size int, log *zap.SugaredLogger) (*Game, error) {
	b, err := board.New(size)
	if err != nil {
		return nil, err
	}
	return &Game{
		size:        size,
		board:       b,
		log:         log,
		prevMove:    make(map[board.Stone]*board.Point),
		firstCorner: make(map[board.Stone]bool),
	}, nil
}

// Analyze folds over the move list in order and emits one report per
// record, numbered from 1. A rejected placement produces an
// illegal-move report and leaves the board unchanged; analysis
// continues with the next record.
func (g *Game) Analyze(moves []sgf.Move) ([]analysis.MoveReport, error) {
	reports := make([]analysis.MoveReport, 0, len(moves))

	for i, move := range moves {
		color, err := colorOf(move.Player)
		if err != nil {
			return nil, err
		}

		report := analysis.MoveReport{
			MoveNumber:   i + 1,
			Player:       move.Player,
			SGFCoords:    move.Coords,
			Captures:     []board.Point{},
			Atari:        [][]board.Point{},
			AtariThreats: [][]board.Point{},
		}
		report.BoardBeforeMoveState = g.board.Grid()

		if move.Pass {
			// No mutation, no previous-move update.
			report.Type = analysis.TypePass
			report.MusicalIntensity = analysis.IntensityRest
			report.BoardAfterMoveState = report.BoardBeforeMoveState
			reports = append(reports, report)
			continue
		}

		point := board.Point{Row: move.Row, Col: move.Col}
		report.Coords = &point
		if report.SGFCoords == "" {
			report.SGFCoords = sgf.CoordsToString(move.Row, move.Col)
		}

		beforeBoard := g.board.Clone()
		captured, err := g.board.Apply(move.Row, move.Col, color)
		if err != nil {
			g.log.Warnf("move %d rejected: %v", i+1, err)
			report.Type = analysis.TypeIllegalMove
			report.MusicalIntensity = analysis.IntensityDissonance
			report.Error = err.Error()
			report.BoardAfterMoveState = report.BoardBeforeMoveState
			reports = append(reports, report)
			continue
		}
		report.BoardAfterMoveState = g.board.Grid()

		f := g.examine(beforeBoard, g.board, move.Row, move.Col, color, captured)
		if f.captures == nil {
			f.captures = []board.Point{}
		}
		report.Captures = f.captures
		report.CapturedCount = len(f.captures)
		report.Atari = f.atari
		report.AtariThreats = f.threats
		report.IsContact = f.contact
		report.IsCut = f.cut
		report.IsConnection = f.connection
		report.KoDetected = f.ko
		report.DistanceFromCenter = &f.distCenter
		report.DistanceToNearestFriendlyStone = f.distFriendly
		report.DistanceToNearestEnemyStone = f.distEnemy
		report.DistanceFromPreviousFriendlyStone = f.distPrev

		report.Type, report.MusicalIntensity = g.classify(f, i, move.Row, move.Col, color)

		// Carry the per-color state forward only after a real placement.
		if f.corner >= 0 {
			g.firstCorner[color] = true
		}
		g.prevMove[color] = &point

		reports = append(reports, report)
	}
	return reports, nil
}

func colorOf(player string) (board.Stone, error) {
	switch player {
	case "B":
		return board.Black, nil
	case "W":
		return board.White, nil
	}
	return board.Empty, fmt.Errorf("%w: unknown player %q", errs.ErrMalformedMoveSequence, player)
}
