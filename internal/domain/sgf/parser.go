package sgf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	errs "rhapsody/internal/errors"
)

const defaultBoardSize = 19

// Move is one already-validated record of the main game line.
type Move struct {
	Player string `json:"player"` // "B" or "W"
	Pass   bool   `json:"pass"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Coords string `json:"coords"` // original SGF letter pair, "" for a pass
}

// GameRecord is the parsed main line of one SGF game.
type GameRecord struct {
	BoardSize int
	Moves     []Move
}

var (
	sizePattern = regexp.MustCompile(`(?i)SZ\[(\d+)\]`)
	movePattern = regexp.MustCompile(`(?i);\s*([BW])\s*\[\s*([a-z]{0,2})\s*\]`)
)

// ParseGame extracts the board size and the ordered B/W move sequence
// from raw SGF text. Variations are ignored; only move nodes matter
// here, game info properties other than SZ are skipped.
func ParseGame(sgfText string) (*GameRecord, error) {
	record := &GameRecord{BoardSize: defaultBoardSize}

	if m := sizePattern.FindStringSubmatch(sgfText); m != nil {
		size, err := strconv.Atoi(m[1])
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("%w: bad SZ property %q", errs.ErrMalformedMoveSequence, m[1])
		}
		record.BoardSize = size
	}

	for _, m := range movePattern.FindAllStringSubmatch(sgfText, -1) {
		player := strings.ToUpper(m[1])
		coords := strings.ToLower(m[2])

		move := Move{Player: player, Coords: coords}
		if isPassCoords(coords, record.BoardSize) {
			move.Pass = true
			move.Coords = ""
		} else {
			row, col, err := CoordsFromString(coords, record.BoardSize)
			if err != nil {
				return nil, err
			}
			move.Row, move.Col = row, col
		}
		record.Moves = append(record.Moves, move)
	}

	if len(record.Moves) == 0 {
		return nil, fmt.Errorf("%w: no B/W move nodes found", errs.ErrMalformedMoveSequence)
	}
	return record, nil
}

// isPassCoords: an empty coordinate means pass; so does "tt" on a
// 19x19 board by SGF convention.
func isPassCoords(coords string, boardSize int) bool {
	return coords == "" || (boardSize == 19 && coords == "tt")
}

// CoordsFromString converts an SGF letter pair to (row, col). The first
// letter is the column, the second the row, 'a' meaning 0.
func CoordsFromString(coords string, boardSize int) (row, col int, err error) {
	if len(coords) != 2 {
		return 0, 0, fmt.Errorf("%w: invalid SGF coordinate %q", errs.ErrMalformedMoveSequence, coords)
	}
	col = int(coords[0] - 'a')
	row = int(coords[1] - 'a')
	if row < 0 || row >= boardSize || col < 0 || col >= boardSize {
		return 0, 0, fmt.Errorf("%w: coordinate %q is out of bounds for board size %d",
			errs.ErrMalformedMoveSequence, coords, boardSize)
	}
	return row, col, nil
}

// CoordsToString converts (row, col) to the SGF letter pair,
// column letter first.
func CoordsToString(row, col int) string {
	return string(rune('a'+col)) + string(rune('a'+row))
}
