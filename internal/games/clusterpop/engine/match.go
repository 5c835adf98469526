package engine

// Match is a 4-connected region of same-colored items.
type Match struct {
	Tiles []*Tile
	Color Color
	Count int
}

// Positions returns the positions of the matched tiles in discovery order.
func (m *Match) Positions() []Pos {
	out := make([]Pos, len(m.Tiles))
	for i, t := range m.Tiles {
		out[i] = t.Pos()
	}
	return out
}

// FindConnectedRegion returns the region of items sharing origin's color that
// is reachable through orthogonal neighbors. Returns nil if origin is empty.
func FindConnectedRegion(g *Grid, origin *Tile) *Match {
	if g == nil || origin == nil || origin.item == nil {
		return nil
	}
	visited := make(map[Pos]bool)
	return flood(g, origin, visited)
}

// flood runs a breadth-first search from origin, marking every tile it
// reaches in visited.
func flood(g *Grid, origin *Tile, visited map[Pos]bool) *Match {
	color := origin.item.Color
	m := &Match{Color: color}

	queue := []*Tile{origin}
	visited[origin.Pos()] = true
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		m.Tiles = append(m.Tiles, t)

		for _, d := range Directions {
			p := t.Pos().Step(d)
			if visited[p] {
				continue
			}
			n := g.Get(p.Row, p.Col)
			if n == nil || n.item == nil || n.item.Color != color {
				continue
			}
			visited[p] = true
			queue = append(queue, n)
		}
	}
	m.Count = len(m.Tiles)
	return m
}

// IsValidMatch reports whether m is large enough to collect.
func IsValidMatch(m *Match, minCount int) bool {
	return m != nil && m.Count >= minCount
}

// HasPossibleMoves reports whether any existing region reaches minCount.
// Swaps that could create a region are not considered.
func HasPossibleMoves(g *Grid, minCount int) bool {
	visited := make(map[Pos]bool)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			t := g.Get(r, c)
			if t == nil || t.item == nil || visited[t.Pos()] {
				continue
			}
			if flood(g, t, visited).Count >= minCount {
				return true
			}
		}
	}
	return false
}
