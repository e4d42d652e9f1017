package board

import "sort"

// Group is a set of coordinates occupied by one color and mutually
// reachable through orthogonal same-color adjacency. Groups are derived
// values: stone removal invalidates them, so they are recomputed from
// the current board whenever needed, never stored.
type Group map[Point]struct{}

// GroupAt flood-fills from p and returns the maximal connected group
// containing it. An empty start cell yields an empty group.
func (b *Board) GroupAt(p Point) Group {
	group := make(Group)
	if !b.inBounds(p.Row, p.Col) {
		return group
	}
	color := b.at(p)
	if color == Empty {
		return group
	}

	stack := []Point{p}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := group[cur]; ok {
			continue
		}
		group[cur] = struct{}{}
		for _, n := range b.Neighbors(cur.Row, cur.Col) {
			if _, ok := group[n]; !ok && b.at(n) == color {
				stack = append(stack, n)
			}
		}
	}
	return group
}

// Liberties returns the set of distinct empty points orthogonally
// adjacent to any stone in the group.
func (b *Board) Liberties(group Group) map[Point]struct{} {
	liberties := make(map[Point]struct{})
	for p := range group {
		for _, n := range b.Neighbors(p.Row, p.Col) {
			if b.at(n) == Empty {
				liberties[n] = struct{}{}
			}
		}
	}
	return liberties
}

// Contains reports whether p belongs to the group.
func (g Group) Contains(p Point) bool {
	_, ok := g[p]
	return ok
}

// Sorted returns the group's points ordered by row, then column, so the
// same group always reports identically regardless of traversal order.
func (g Group) Sorted() []Point {
	out := make([]Point, 0, len(g))
	for p := range g {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}
