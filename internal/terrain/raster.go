package terrain

// ColorGrid is a dense row-major grid of colours, indexed like HeightGrid.
type ColorGrid struct {
	Width  int
	Height int
	Cells  []RGB
}

// Stats counts cells per biome.
type Stats map[Biome]int

// Classifier turns heights into colours through a Ladder.
type Classifier struct {
	ladder *Ladder
	runner rowRunner
}

// NewClassifier returns a classifier over ladder (the default table when nil).
func NewClassifier(ladder *Ladder, workers int) *Classifier {
	if ladder == nil {
		ladder = &defaultLadder
	}
	return &Classifier{ladder: ladder, runner: rowRunner{workers: workers}}
}

// ClassifyGrid colours every cell of grid and counts the biomes it used.
func (c *Classifier) ClassifyGrid(grid *HeightGrid) (*ColorGrid, Stats) {
	biomes := make([]Biome, grid.Len())
	colors := &ColorGrid{
		Width:  grid.Width,
		Height: grid.Height,
		Cells:  make([]RGB, grid.Len()),
	}

	c.runner.forEachCell(grid.Width, grid.Height, func(_, _, idx int) {
		b := c.ladder.Biome(grid.Values[idx])
		biomes[idx] = b
		colors.Cells[idx] = b.Color()
	})

	stats := make(Stats)
	for _, b := range biomes {
		stats[b]++
	}
	return colors, stats
}

// Assemble flattens colors into row-major RGB8 bytes, exactly 3 per cell.
func Assemble(colors *ColorGrid) []byte {
	pix := make([]byte, 3*len(colors.Cells))
	for i, c := range colors.Cells {
		pix[3*i] = c[0]
		pix[3*i+1] = c[1]
		pix[3*i+2] = c[2]
	}
	return pix
}

// Raster is the finished RGB8 image of one generation pass.
type Raster struct {
	Width  int
	Height int
	// Pix holds 3*Width*Height bytes, R, G, B per cell, row-major.
	Pix   []byte
	Stats Stats
}

// RGBAt returns the colour of cell (x, y).
func (r *Raster) RGBAt(x, y int) RGB {
	i := 3 * (y*r.Width + x)
	return RGB{r.Pix[i], r.Pix[i+1], r.Pix[i+2]}
}

// Coverage returns the fraction of cells assigned to b.
func (r *Raster) Coverage(b Biome) float64 {
	total := r.Width * r.Height
	if total == 0 {
		return 0
	}
	return float64(r.Stats[b]) / float64(total)
}
