package universe

import "sort"

//cellNextState calculates the next occupant of x, y
//born reports that an empty cell came alive on this step
func cellNextState(a *Area, x int, y int, mode Mode) (next Cell, born bool) {
	p1, p2 := a.neighbors(x, y)
	live := p1 + p2
	cur := a.at(x, y)

	if cur != Empty {
		//survivors keep their owner
		if live == 2 || live == 3 {
			if mode == ModeClassic {
				return Alive, false
			}
			return cur, false
		}
		return Empty, false
	}

	if live != 3 {
		return Empty, false
	}
	if mode == ModeClassic {
		return Alive, true
	}
	if p1 >= p2 {
		return Player1, true
	}
	return Player2, true
}

//stepper computes the next generation of cur into next
//next must have the same dimensions, cur is never written
//returns the births attributed to player 1 and 2
type stepper interface {
	step(cur *Area, next *Area, mode Mode) (births [2]int)
	details() map[string]interface{}
}

//steppers is the registry of the step strategies
var steppers = map[string]func(o Options) stepper{
	"serial": newSerialStepper,
	"banded": newBandedStepper,
}

//Engines returns the names of the available step strategies
func Engines() []string {
	names := make([]string, 0, len(steppers))
	for k := range steppers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
