package engine

import "math/rand"

// neighborLimit is the number of same-colored neighbors at which a color
// stops being a preferred candidate.
const neighborLimit = 2

// ColorBalancer picks colors for new items so that fresh spawns rarely
// extend large clusters.
type ColorBalancer struct {
	rng *rand.Rand
}

// NewColorBalancer creates a balancer drawing from rng.
func NewColorBalancer(rng *rand.Rand) *ColorBalancer {
	return &ColorBalancer{rng: rng}
}

// Pick chooses a color from palette for the slot at (row, col).
// Colors with fewer than two orthogonal neighbors of the same color are
// preferred; if none qualify, the least frequent neighbor colors are used.
func (b *ColorBalancer) Pick(g *Grid, row, col int, palette []Color) Color {
	if len(palette) == 0 {
		return ColorRed
	}

	counts := make(map[Color]int, len(palette))
	for _, c := range palette {
		counts[c] = 0
	}
	for _, d := range Directions {
		dr, dc := d.Delta()
		it := g.ItemAt(row+dr, col+dc)
		if it == nil {
			continue
		}
		if _, ok := counts[it.Color]; ok {
			counts[it.Color]++
		}
	}

	candidates := make([]Color, 0, len(palette))
	for _, c := range palette {
		if counts[c] < neighborLimit {
			candidates = append(candidates, c)
		}
	}

	if len(candidates) == 0 {
		least := -1
		for _, c := range palette {
			switch n := counts[c]; {
			case least < 0 || n < least:
				least = n
				candidates = append(candidates[:0], c)
			case n == least:
				candidates = append(candidates, c)
			}
		}
	}

	return candidates[b.rng.Intn(len(candidates))]
}
