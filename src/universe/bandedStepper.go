package universe

import (
	"sync"
)

/*
	Banded step strategy
	the field is splitted into the bands of rows each of which is computed by individual goroutine
	every band writes only its own rows of the back buffer so the result equals the serial one
*/

const (
	DefWorkers          = 10 //default workers
	DefMinRowsPerWorker = 3  //minimum rows for one worker
)

type bandedStepper struct {
	bands         []band
	rowsPerWorker int
}

//band describes the rows range computed by one worker
type band struct {
	y1     int
	y2     int
	births [2]int
}

func newBandedStepper(o Options) stepper {
	workers := DefWorkers
	rowsPerWorker := o.Height / workers
	if rowsPerWorker < DefMinRowsPerWorker {
		rowsPerWorker = DefMinRowsPerWorker
	} else if rowsPerWorker*workers < o.Height {
		rowsPerWorker++
	}
	bs := &bandedStepper{rowsPerWorker: rowsPerWorker}
	for y1 := 0; y1 < o.Height; y1 += rowsPerWorker {
		y2 := y1 + rowsPerWorker - 1
		if y2 > o.Height-1 {
			y2 = o.Height - 1
		}
		bs.bands = append(bs.bands, band{y1: y1, y2: y2})
	}
	return bs
}

//step starts goroutines, waits for finishing and sums the births
func (bs *bandedStepper) step(cur *Area, next *Area, mode Mode) (births [2]int) {
	var wg sync.WaitGroup
	for i := range bs.bands {
		b := &bs.bands[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			bs.calcBand(cur, next, mode, b)
		}()
	}
	wg.Wait()
	for _, b := range bs.bands {
		births[0] += b.births[0]
		births[1] += b.births[1]
	}
	return
}

//calcBand calculates new states for the cells inside the band
func (bs *bandedStepper) calcBand(cur *Area, next *Area, mode Mode, b *band) {
	b.births = [2]int{}
	for y := b.y1; y <= b.y2; y++ {
		for x := 0; x < cur.width; x++ {
			c, born := cellNextState(cur, x, y, mode)
			if born {
				b.births[slot(c)]++
			}
			next.cells[y*cur.width+x] = c
		}
	}
}

func (bs *bandedStepper) details() map[string]interface{} {
	return map[string]interface{}{
		"engine":          "banded",
		"Workers":         len(bs.bands),
		"Rows per worker": bs.rowsPerWorker,
	}
}
