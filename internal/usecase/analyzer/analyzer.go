package analyzer

import (
	"math"

	"rhapsody/internal/domain/board"
)

// findings collects everything the tactical pass learns about one
// placement, before the classifier turns it into a single label.
type findings struct {
	captures []board.Point
	atari    [][]board.Point // opponent groups at exactly 1 liberty, after the move
	threats  [][]board.Point // opponent groups at exactly 2 liberties, after the move

	contact    bool
	cut        bool
	connection bool
	ko         bool

	corner    int // corner region index, -1 when not a corner move
	enclosure bool

	distCenter   float64
	distFriendly *float64
	distEnemy    *float64
	distPrev     *float64
}

// examine runs the full tactical analysis for a stone just placed at
// (row, col). beforeBoard is the position prior to the placement,
// afterBoard the position after capture removal.
func (g *Game) examine(beforeBoard, afterBoard *board.Board, row, col int, color board.Stone, captured []board.Point) *findings {
	f := &findings{
		captures: captured,
		atari:    [][]board.Point{},
		threats:  [][]board.Point{},
		corner:   cornerIndex(row, col, g.size),
	}

	f.atari, f.threats = adjacentOpponentLiberties(afterBoard, row, col, color)
	f.contact = isContact(beforeBoard, row, col, color)
	f.cut = isCut(beforeBoard, row, col, color)
	f.connection = isConnection(beforeBoard, afterBoard, row, col, color)
	f.ko = isKoShape(afterBoard, row, col, captured)
	if f.corner >= 0 {
		f.enclosure = hasFriendInCorner(beforeBoard, f.corner, color)
	}

	center := float64(g.size-1) / 2
	f.distCenter = euclid(float64(row), float64(col), center, center)
	f.distFriendly, f.distEnemy = nearestStones(afterBoard, row, col, color)
	if prev := g.prevMove[color]; prev != nil {
		d := euclid(float64(row), float64(col), float64(prev.Row), float64(prev.Col))
		f.distPrev = &d
	}
	return f
}

// adjacentOpponentLiberties inspects every distinct opponent group
// touching (row, col) and buckets it by liberty count: one liberty is
// atari, two is a threat. A group adjacent at several cells is
// reported once.
func adjacentOpponentLiberties(b *board.Board, row, col int, color board.Stone) (atari, threats [][]board.Point) {
	atari = [][]board.Point{}
	threats = [][]board.Point{}
	opponent := color.Opponent()
	seen := make(map[board.Point]struct{})

	for _, n := range b.Neighbors(row, col) {
		if s, _ := b.Get(n.Row, n.Col); s != opponent {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		group := b.GroupAt(n)
		for p := range group {
			seen[p] = struct{}{}
		}
		switch len(b.Liberties(group)) {
		case 1:
			atari = append(atari, group.Sorted())
		case 2:
			threats = append(threats, group.Sorted())
		}
	}
	return atari, threats
}

// isContact reports whether the move point touched an opponent stone
// before the move was played.
func isContact(beforeBoard *board.Board, row, col int, color board.Stone) bool {
	opponent := color.Opponent()
	for _, n := range beforeBoard.Neighbors(row, col) {
		if s, _ := beforeBoard.Get(n.Row, n.Col); s == opponent {
			return true
		}
	}
	return false
}

// isCut reports whether the move point was the sole shared liberty of
// two distinct opponent groups adjacent to it. Both groups and their
// liberties are taken from the position before the move.
func isCut(beforeBoard *board.Board, row, col int, color board.Stone) bool {
	opponent := color.Opponent()
	var groups []board.Group
	seen := make(map[board.Point]struct{})

	for _, n := range beforeBoard.Neighbors(row, col) {
		if s, _ := beforeBoard.Get(n.Row, n.Col); s != opponent {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		group := beforeBoard.GroupAt(n)
		for p := range group {
			seen[p] = struct{}{}
		}
		groups = append(groups, group)
	}
	if len(groups) < 2 {
		return false
	}

	movePoint := board.Point{Row: row, Col: col}
	for i := 0; i < len(groups); i++ {
		libsI := beforeBoard.Liberties(groups[i])
		for j := i + 1; j < len(groups); j++ {
			libsJ := beforeBoard.Liberties(groups[j])
			shared := 0
			sharedIsMove := false
			for p := range libsI {
				if _, ok := libsJ[p]; ok {
					shared++
					if p == movePoint {
						sharedIsMove = true
					}
				}
			}
			if shared == 1 && sharedIsMove {
				return true
			}
		}
	}
	return false
}

// isConnection reports whether the placed stone merged at least two
// friendly groups that were separate before the move.
func isConnection(beforeBoard, afterBoard *board.Board, row, col int, color board.Stone) bool {
	var friends []board.Point
	for _, n := range beforeBoard.Neighbors(row, col) {
		if s, _ := beforeBoard.Get(n.Row, n.Col); s == color {
			friends = append(friends, n)
		}
	}
	if len(friends) < 2 {
		return false
	}

	firstGroup := beforeBoard.GroupAt(friends[0])
	wereSeparate := false
	for _, friend := range friends[1:] {
		if !firstGroup.Contains(friend) {
			wereSeparate = true
			break
		}
	}
	if !wereSeparate {
		return false
	}

	merged := afterBoard.GroupAt(board.Point{Row: row, Col: col})
	for _, friend := range friends {
		if !merged.Contains(friend) {
			return false
		}
	}
	return true
}

// isKoShape flags the classic ko shape: a single stone was captured and
// the capturing stone sits alone with exactly one liberty, which is the
// captured point. Detection only; the move is never blocked.
func isKoShape(afterBoard *board.Board, row, col int, captured []board.Point) bool {
	if len(captured) != 1 {
		return false
	}
	group := afterBoard.GroupAt(board.Point{Row: row, Col: col})
	if len(group) != 1 {
		return false
	}
	liberties := afterBoard.Liberties(group)
	if len(liberties) != 1 {
		return false
	}
	_, ok := liberties[captured[0]]
	return ok
}

// cornerSpan bounds the corner neighborhood: lines 0 through 4 from
// each pair of edges.
const cornerSpan = 5

// cornerIndex maps (row, col) to a corner region (0 top-left, 1
// top-right, 2 bottom-left, 3 bottom-right) or -1 for a non-corner
// point.
func cornerIndex(row, col, size int) int {
	nearTop := row < cornerSpan
	nearBottom := row >= size-cornerSpan
	nearLeft := col < cornerSpan
	nearRight := col >= size-cornerSpan

	switch {
	case nearTop && nearLeft:
		return 0
	case nearTop && nearRight:
		return 1
	case nearBottom && nearLeft:
		return 2
	case nearBottom && nearRight:
		return 3
	}
	return -1
}

// hasFriendInCorner reports whether the given corner region already
// held a stone of color before the move.
func hasFriendInCorner(beforeBoard *board.Board, corner int, color board.Stone) bool {
	size := beforeBoard.Size()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if cornerIndex(r, c, size) != corner {
				continue
			}
			if s, _ := beforeBoard.Get(r, c); s == color {
				return true
			}
		}
	}
	return false
}

// nearestStones scans the whole board for the closest friendly and
// enemy stones to (row, col), excluding the point itself. A nil result
// means no such stone exists.
func nearestStones(b *board.Board, row, col int, color board.Stone) (friendly, enemy *float64) {
	opponent := color.Opponent()
	size := b.Size()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if r == row && c == col {
				continue
			}
			s, _ := b.Get(r, c)
			if s == board.Empty {
				continue
			}
			d := euclid(float64(row), float64(col), float64(r), float64(c))
			switch s {
			case color:
				if friendly == nil || d < *friendly {
					friendly = &d
				}
			case opponent:
				if enemy == nil || d < *enemy {
					enemy = &d
				}
			}
		}
	}
	return friendly, enemy
}

func euclid(r1, c1, r2, c2 float64) float64 {
	return math.Sqrt((r1-r2)*(r1-r2) + (c1-c2)*(c1-c2))
}
