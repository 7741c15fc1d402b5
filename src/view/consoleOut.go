package view

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"

	"lifeduel/src/universe"
)

//ConsoleOut reports the batch simulation progress to the writer
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	colors    aurora.Aurora
	startTime time.Time

	mu          sync.Mutex
	lastPrinted int
	wasRunning  bool
	lastPhase   universe.Phase
}

//NewConsoleOut creates the reporter, colors are used for the result banner only
func NewConsoleOut(w io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{w: w, colors: aurora.NewAurora(colors), lastPrinted: -1}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	c.mu.Lock()
	defer c.mu.Unlock()

	if st.Running && st.Generation%10 == 0 && st.Generation != c.lastPrinted {
		c.lastPrinted = st.Generation
		fmt.Fprintf(c.w, "  Iterations done: %v\n", st.Generation)
	}
	if c.wasRunning && !st.Running {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.Generation,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		fmt.Fprintln(c.w, "\nStopped:")
		c.printHashData(resultData)
	}
	if st.Phase == universe.PhaseFinished && c.lastPhase != universe.PhaseFinished {
		fmt.Fprintf(c.w, "\n%s\n", c.result(st.Result))
		c.printHashData(map[string]interface{}{
			"Player 1": st.ScoreOf(universe.Player1),
			"Player 2": st.ScoreOf(universe.Player2),
		})
	}
	c.wasRunning = st.Running
	c.lastPhase = st.Phase
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	fmt.Fprintln(c.w, "Running configuration:")
	fmt.Fprintf(c.w, "  Dimension: %v x %v\n", o.Width, o.Height)
	fmt.Fprintf(c.w, "  Mode: %v\n", c.u.Status().Mode)
	fmt.Fprintf(c.w, "  Cells per player: %v\n", o.CellsPerPlayer)
	fmt.Fprintf(c.w, "  Interval: %v\n", c.u.Status().Interval)
	fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps)
	c.printHashData(c.u.Details())
}

func (c *ConsoleOut) Start() {
	c.mu.Lock()
	c.startTime = time.Now()
	c.mu.Unlock()
	fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) result(r universe.Result) string {
	switch r.Winner() {
	case universe.Player1:
		return c.colors.Blue(r.String()).Bold().String()
	case universe.Player2:
		return c.colors.Red(r.String()).Bold().String()
	}
	return c.colors.Bold(r.String()).String()
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	for _, propName := range sortedKeys(d) {
		fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}

func sortedKeys(d map[string]interface{}) []string {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	return propNames
}
