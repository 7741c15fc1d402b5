package universe

import "time"

//Universe is the engine surface used by the viewers and the runner
type Universe interface {
	Status() Status
	Options() Options
	Details() map[string]interface{}
	Area() *Area
	Cell(x int, y int) (Cell, error)
	Result() Result
	StateCh() chan Status
	RegisterViewer(v Viewer)
	UnregisterViewer(v Viewer)

	AddTemplate(tmpl Template)
	Templates() []Template
	SettleTemplate(name string) error

	PlaceOrRemoveCell(x int, y int) error
	ToggleCell(x int, y int) error
	ToggleRunning()
	SwitchPlayer()
	SwitchMode()
	ClearGrid()
	Randomize()
	Finish()
	AdvanceGeneration()
	Tick(delta time.Duration)
	SetSpeed(v float64)
	SetInterval(d time.Duration)
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
//viewers read the universe, the universe only calls Refresh
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//Template represent the seeding template which can used to settle the classic universe with predefined data
type Template struct {
	Name        string  `yaml:"name"`        //template name
	Descr       string  `yaml:"description"` //template descr
	Coordinates [][]int `yaml:"cells"`       //array of [x,y] coordinates
}
