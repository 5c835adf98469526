package engine

// Item is a colored piece occupying a tile.
// IDs are assigned by the Model and never reused within a level.
type Item struct {
	ID    uint64
	Color Color
}

// Tile is a fixed board slot that holds at most one item.
// Tiles never move; items migrate between them.
type Tile struct {
	row  int
	col  int
	item *Item
}

// NewTile creates an empty tile. Its position is stamped by Grid.Set.
func NewTile() *Tile {
	return &Tile{}
}

// Row returns the tile's row.
func (t *Tile) Row() int { return t.row }

// Col returns the tile's column.
func (t *Tile) Col() int { return t.col }

// Pos returns the tile's position.
func (t *Tile) Pos() Pos { return Pos{Row: t.row, Col: t.col} }

// Item returns the held item or nil.
func (t *Tile) Item() *Item { return t.item }

// HasItem reports whether the tile holds an item.
func (t *Tile) HasItem() bool { return t.item != nil }

// SetItem places an item on the tile, replacing any previous one.
func (t *Tile) SetItem(it *Item) { t.item = it }

// RemoveItem detaches and returns the held item.
func (t *Tile) RemoveItem() *Item {
	it := t.item
	t.item = nil
	return it
}

// Grid is a rows x cols matrix of tile slots.
// Slots start nil until a tile is Set into them (see Build).
type Grid struct {
	rows  int
	cols  int
	tiles [][]*Tile
}

// NewGrid creates a grid with empty slots.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	tiles := make([][]*Tile, rows)
	for r := range tiles {
		tiles[r] = make([]*Tile, cols)
	}
	return &Grid{rows: rows, cols: cols, tiles: tiles}
}

// Build places an empty tile into every slot.
func (g *Grid) Build() *Grid {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			g.Set(r, c, NewTile())
		}
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// IsValidPosition reports whether (row, col) lies inside the grid.
func (g *Grid) IsValidPosition(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Get returns the tile at (row, col), or nil when out of bounds or unset.
func (g *Grid) Get(row, col int) *Tile {
	if !g.IsValidPosition(row, col) {
		return nil
	}
	return g.tiles[row][col]
}

// Set stores a tile at (row, col) and stamps its position.
// Out-of-range positions are ignored.
func (g *Grid) Set(row, col int, t *Tile) {
	if !g.IsValidPosition(row, col) {
		return
	}
	if t != nil {
		t.row, t.col = row, col
	}
	g.tiles[row][col] = t
}

// ItemAt returns the item at (row, col) or nil.
func (g *Grid) ItemAt(row, col int) *Item {
	if t := g.Get(row, col); t != nil {
		return t.item
	}
	return nil
}

// Occupied reports whether (row, col) holds an item.
// Out-of-range positions and unset slots report true so compaction scans
// stop there.
func (g *Grid) Occupied(row, col int) bool {
	t := g.Get(row, col)
	if t == nil {
		return true
	}
	return t.item != nil
}

// MoveItem moves the item at "from" onto the empty tile at "to".
// Returns false when the move is not possible.
func (g *Grid) MoveItem(fromRow, fromCol, toRow, toCol int) bool {
	src, dst := g.Get(fromRow, fromCol), g.Get(toRow, toCol)
	if src == nil || dst == nil || src.item == nil || dst.item != nil {
		return false
	}
	dst.item = src.RemoveItem()
	return true
}

// ItemCount returns the number of items on the board.
func (g *Grid) ItemCount() int {
	n := 0
	g.eachTile(func(t *Tile) {
		if t.item != nil {
			n++
		}
	})
	return n
}

// IsEmpty reports whether no tile holds an item.
func (g *Grid) IsEmpty() bool {
	return g.ItemCount() == 0
}

// ClearItems removes every item and returns how many were removed.
func (g *Grid) ClearItems() int {
	n := 0
	g.eachTile(func(t *Tile) {
		if t.RemoveItem() != nil {
			n++
		}
	})
	return n
}

// Letters renders the board as one string per row using Color.Char,
// with '.' for empty tiles and ' ' for missing ones.
func (g *Grid) Letters() []string {
	out := make([]string, g.rows)
	for r := 0; r < g.rows; r++ {
		row := make([]rune, g.cols)
		for c := 0; c < g.cols; c++ {
			t := g.tiles[r][c]
			switch {
			case t == nil:
				row[c] = ' '
			case t.item == nil:
				row[c] = '.'
			default:
				row[c] = t.item.Color.Char()
			}
		}
		out[r] = string(row)
	}
	return out
}

func (g *Grid) eachTile(fn func(t *Tile)) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if t := g.tiles[r][c]; t != nil {
				fn(t)
			}
		}
	}
}
