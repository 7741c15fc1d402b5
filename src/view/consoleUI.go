package view

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"

	"lifeduel/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

type ConsoleUI struct {
	u   universe.Universe
	g   *gocui.Gui
	k   []keyBindings
	log *zap.Logger

	fillers    map[universe.Cell]string
	aliveFill  string
	speed      float64 //speed slider value in [0,1]
	nextTmpl   int
	lastResult universe.Result
}

const speedStep = 0.1

var (
	phaseDescr = map[universe.Phase]string{
		universe.PhaseIdle:     aurora.Colorize("waiting", aurora.BlueFg).String(),
		universe.PhaseSeeding:  aurora.Colorize("seeding", aurora.YellowFg).String(),
		universe.PhaseRunning:  aurora.Colorize("running", aurora.CyanFg).String(),
		universe.PhasePaused:   aurora.Colorize("paused", aurora.BlueFg).String(),
		universe.PhaseFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
	playerColor = map[universe.Cell]aurora.Color{
		universe.Player1: aurora.BlueFg,
		universe.Player2: aurora.RedFg,
	}
)

//NewViewTerminal creates the interactive terminal viewer
func NewViewTerminal(log *zap.Logger) (*ConsoleUI, error) {
	var err error
	t := ConsoleUI{
		log: log,
		fillers: map[universe.Cell]string{
			universe.Empty:   "░",
			universe.Player1: aurora.Blue("█").BgBrightBlue().String(),
			universe.Player2: aurora.Red("█").BgBrightRed().String(),
		},
		aliveFill: aurora.Green("█").BgBrightGreen().String(),
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("create terminal ui: %w", err)
	}

	t.g.Mouse = true
	t.k = t.keyBindings()
	t.g.SetManagerFunc(t.layout)

	if err := t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}

	return &t, nil
}

func (t *ConsoleUI) keyBindings() []keyBindings {
	return []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{gocui.KeySpace, "SPACE", "Start/Pause", t.cmdToggleRunning, ""},
		{'n', "N", "Next step", t.cmdNextStep, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Settle with random", t.cmdRandomize, ""},
		{'p', "P", "Switch player", t.cmdSwitchPlayer, ""},
		{'f', "F", "Finish", t.cmdFinish, ""},
		{'r', "R", "Close result", t.cmdCloseResult, ""},
		{'m', "M", "Switch mode", t.cmdSwitchMode, ""},
		{'t', "T", "Template", t.cmdTemplate, ""},
		{'+', "+", "Faster", t.cmdFaster, ""},
		{'-', "-", "Slower", t.cmdSlower, ""},
		{gocui.MouseLeft, "MOUSE", "Settle the cell", t.cmdMouseClick, "battlefield"},
	}
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return fmt.Errorf("bind %s: %w", kb.name, err)
		}
	}
	return nil
}

//Register takes the slider position from the configured interval, the interval is not changed
func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
	t.speed = sliderValue(u.Status().Interval)
}

//sliderValue is the reverse of universe.SliderInterval
func sliderValue(d time.Duration) float64 {
	v := 1 - d.Seconds()
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

//Start runs the terminal main loop until the user quits
func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		t.log.Error("terminal ui stopped", zap.Error(err))
	}
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	t.renderField(t.u.Area(), t.u.Status().Mode)
	t.renderConfiguration()
	t.renderStatus()
}

func (t *ConsoleUI) filler(c universe.Cell, mode universe.Mode) string {
	if c != universe.Empty && mode == universe.ModeClassic {
		return t.aliveFill
	}
	return t.fillers[c]
}

func (t *ConsoleUI) renderField(a *universe.Area, mode universe.Mode) {

	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("battlefield")
		if e != nil {
			return nil
		}
		//the entire field is redrawing at once
		v.Clear()

		crop := false
		maxW, maxH := v.Size()
		if a.Width() > maxW || a.Height() > maxH {
			crop = true
		}

		var b bytes.Buffer

		for i := 0; i < a.Height(); i++ {
			//discard the data outside the view area
			if i >= maxH {
				break
			}
			//line feed char
			if i != 0 {
				b.WriteByte(10)
			}
			if crop && i == (maxH-1) {
				b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
				break
			}
			for j, c := range a.Row(i) {
				if j >= maxW {
					break
				}
				b.WriteString(t.filler(c, mode))
			}
		}
		_, _ = fmt.Fprint(v, b.String())
		return nil
	})
}

func (t *ConsoleUI) renderStatus() {
	s := t.u.Status()
	o := t.u.Options()
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := t.g.View("status"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", s.Mode))
			_, _ = fmt.Fprintln(v, t.renderProp("Phase", "%v", phaseDescr[s.Phase]))
			_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.Generation))
			_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", s.Interval))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			if s.Mode == universe.ModePvP {
				for _, p := range []universe.Cell{universe.Player1, universe.Player2} {
					_, _ = fmt.Fprintln(v, t.renderPlayer(p, "%v (%v/%v)", s.ScoreOf(p), s.PlacedBy(p), o.CellsPerPlayer))
				}
				_, _ = fmt.Fprintln(v, t.renderProp("Current", "%v", t.playerName(s.CurrentPlayer)))
				if s.Result != universe.ResultNone {
					_, _ = fmt.Fprintln(v, " "+t.renderResult(s.Result))
				}
			}
		}
		if s.Result != t.lastResult {
			t.lastResult = s.Result
			if s.Result == universe.ResultNone {
				_ = g.DeleteView("result")
				return nil
			}
			return t.renderResultPanel(g, s)
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.u.Options()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Width, c.Height))
			_, _ = fmt.Fprintln(v, t.renderProp("Cells per player", "%v", c.CellsPerPlayer))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v..%v", c.MinInterval, c.MaxInterval))
			_, _ = fmt.Fprintln(v, t.renderProp("Speed", "%.0f%%", t.speed*100))
			for _, k := range sortedKeys(t.u.Details()) {
				_, _ = fmt.Fprintln(v, t.renderProp(k, "%v", t.u.Details()[k]))
			}
		}
		return nil
	})
}

//renderResultPanel pops up the round result over the battlefield
//must be called from the gui main loop
func (t *ConsoleUI) renderResultPanel(g *gocui.Gui, s universe.Status) error {
	maxX, maxY := g.Size()
	w, h := 30, 5
	x0, y0 := (maxX-w)/2, (maxY-h)/2
	v, err := g.SetView("result", x0, y0, x0+w, y0+h)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = "Result"
	v.Frame = true
	v.Clear()
	_, _ = fmt.Fprintln(v, " "+t.renderResult(s.Result))
	_, _ = fmt.Fprintf(v, " Player 1: %v\n", s.ScoreOf(universe.Player1))
	_, _ = fmt.Fprintf(v, " Player 2: %v\n", s.ScoreOf(universe.Player2))
	return nil
}

func (t *ConsoleUI) renderResult(r universe.Result) string {
	if c, ok := playerColor[r.Winner()]; ok {
		return aurora.Colorize(r.String(), c|aurora.BoldFm).String()
	}
	return aurora.Bold(r.String()).String()
}

func (t *ConsoleUI) playerName(p universe.Cell) string {
	return aurora.Colorize(fmt.Sprintf("Player %d", p), playerColor[p]).String()
}

func (t *ConsoleUI) renderPlayer(p universe.Cell, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+t.playerName(p)+": "+valueformat, values...)
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 30
	minWindowHeight := 24

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("battlefield")
		_ = g.DeleteView("result")
		return nil

	} else {
		if _, err := t.headerLayout(g, 3, "\"The Life\" duel"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/3+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus()
	}

	if v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Battle Field"
		v.Frame = true
		t.renderField(t.u.Area(), t.u.Status().Mode)
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdToggleRunning(_ *gocui.View) error {
	t.u.ToggleRunning()
	return nil
}

func (t *ConsoleUI) cmdNextStep(_ *gocui.View) error {
	t.u.AdvanceGeneration()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.u.ClearGrid()
	return nil
}

func (t *ConsoleUI) cmdRandomize(_ *gocui.View) error {
	t.u.Randomize()
	return nil
}

func (t *ConsoleUI) cmdSwitchPlayer(_ *gocui.View) error {
	t.u.SwitchPlayer()
	return nil
}

func (t *ConsoleUI) cmdFinish(_ *gocui.View) error {
	t.u.Finish()
	return nil
}

func (t *ConsoleUI) cmdSwitchMode(_ *gocui.View) error {
	t.u.SwitchMode()
	return nil
}

//cmdTemplate settles the next template in turn
func (t *ConsoleUI) cmdTemplate(_ *gocui.View) error {
	tmpls := t.u.Templates()
	if len(tmpls) == 0 {
		return nil
	}
	tmpl := tmpls[t.nextTmpl%len(tmpls)]
	t.nextTmpl++
	if err := t.u.SettleTemplate(tmpl.Name); err != nil {
		t.log.Warn("template rejected", zap.String("template", tmpl.Name), zap.Error(err))
	}
	return nil
}

//cmdCloseResult hides the result panel, the final field stays visible
func (t *ConsoleUI) cmdCloseResult(_ *gocui.View) error {
	if err := t.g.DeleteView("result"); err != nil && err != gocui.ErrUnknownView {
		return err
	}
	return nil
}

func (t *ConsoleUI) cmdFaster(_ *gocui.View) error {
	t.setSpeed(t.speed + speedStep)
	return nil
}

func (t *ConsoleUI) cmdSlower(_ *gocui.View) error {
	t.setSpeed(t.speed - speedStep)
	return nil
}

func (t *ConsoleUI) setSpeed(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	t.speed = v
	t.u.SetSpeed(v)
	t.renderConfiguration()
}

//cmdMouseClick translates the click to the cell, clicks outside the field are dropped
func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	ox, oy := v.Origin()
	x, y := cx+ox, cy+oy
	o := t.u.Options()
	if x < 0 || y < 0 || x >= o.Width || y >= o.Height {
		return nil
	}
	var err error
	if t.u.Status().Mode == universe.ModePvP {
		err = t.u.PlaceOrRemoveCell(x, y)
	} else {
		err = t.u.ToggleCell(x, y)
	}
	if err != nil {
		t.log.Error("cell click", zap.Int("x", x), zap.Int("y", y), zap.Error(err))
	}
	return nil
}
