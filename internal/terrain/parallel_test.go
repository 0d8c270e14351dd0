package terrain

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowRunner_VisitsEveryRowOnce(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		rows    int
	}{
		{name: "default workers", workers: 0, rows: 37},
		{name: "bounded workers", workers: 3, rows: 37},
		{name: "more workers than rows", workers: 8, rows: 2},
		{name: "no rows", workers: 2, rows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visits := make([]int32, tt.rows)
			rowRunner{workers: tt.workers}.forEachRow(tt.rows, func(y int) {
				atomic.AddInt32(&visits[y], 1)
			})
			for y, n := range visits {
				assert.EqualValues(t, 1, n, "row %d", y)
			}
		})
	}
}

func TestRowRunner_ForEachCellIndexes(t *testing.T) {
	const width, height = 5, 4
	got := make([]int, width*height)

	rowRunner{workers: 2}.forEachCell(width, height, func(x, y, idx int) {
		got[idx] = y*width + x
	})

	for i, v := range got {
		assert.Equal(t, i, v)
	}
}
