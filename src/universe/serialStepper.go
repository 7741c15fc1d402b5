package universe

/*
	Serial step strategy with two buffers
	All cells state is calculated to the back buffer in one pass and then the buffers are swapped by the engine
*/
type serialStepper struct{}

func newSerialStepper(_ Options) stepper {
	return serialStepper{}
}

func (serialStepper) step(cur *Area, next *Area, mode Mode) (births [2]int) {
	for y := 0; y < cur.height; y++ {
		for x := 0; x < cur.width; x++ {
			c, born := cellNextState(cur, x, y, mode)
			if born {
				births[slot(c)]++
			}
			next.cells[y*cur.width+x] = c
		}
	}
	return
}

func (serialStepper) details() map[string]interface{} {
	return map[string]interface{}{"engine": "serial"}
}
