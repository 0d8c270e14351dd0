package terrain

import (
	"github.com/dgravesa/go-parallel/parallel"
)

// rowRunner runs body once per row index in [0, rows). Rows are disjoint
// slices of the grid, so bodies never share a write target.
type rowRunner struct {
	workers int
}

func (r rowRunner) forEachRow(rows int, body func(y int)) {
	if rows <= 0 {
		return
	}
	loop := func(y int) {
		body(y)
	}
	if r.workers > 0 {
		parallel.WithNumGoroutines(r.workers).For(rows, loop)
		return
	}
	parallel.For(rows, loop)
}

// forEachCell visits every (x, y, index) of a width*height grid, one row per task.
func (r rowRunner) forEachCell(width, height int, body func(x, y, idx int)) {
	r.forEachRow(height, func(y int) {
		row := y * width
		for x := 0; x < width; x++ {
			body(x, y, row+x)
		}
	})
}
