package universe

import (
	"fmt"
	"strings"
	"time"
)

//Mode selects the rule set of the universe
type Mode int

const (
	ModeClassic Mode = iota
	ModePvP
)

func (m Mode) String() string {
	if m == ModePvP {
		return "pvp"
	}
	return "classic"
}

//ParseMode parses the mode name (classic or pvp)
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic", "single", "":
		return ModeClassic, nil
	case "pvp":
		return ModePvP, nil
	}
	return ModeClassic, fmt.Errorf("unknown mode %q", s)
}

//UnmarshalText allows to use the mode inside the config files
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

//Phase is the state of the round
//classic mode uses PhaseIdle and PhaseRunning only
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSeeding
	PhaseRunning
	PhasePaused
	PhaseFinished
)

var phaseNames = map[Phase]string{
	PhaseIdle:     "idle",
	PhaseSeeding:  "seeding",
	PhaseRunning:  "running",
	PhasePaused:   "paused",
	PhaseFinished: "finished",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

//Result is the outcome of the finished PvP round
type Result int

const (
	ResultNone Result = iota
	ResultPlayer1
	ResultPlayer2
	ResultTie
)

func (r Result) String() string {
	switch r {
	case ResultPlayer1:
		return "Player 1 Wins!"
	case ResultPlayer2:
		return "Player 2 Wins!"
	case ResultTie:
		return "It's a Tie!"
	}
	return ""
}

//Winner returns the winning player, Empty for a tie or no result
func (r Result) Winner() Cell {
	switch r {
	case ResultPlayer1:
		return Player1
	case ResultPlayer2:
		return Player2
	}
	return Empty
}

//resultOf compares the scores, the strictly greater one wins
func resultOf(score [2]int) Result {
	switch {
	case score[0] > score[1]:
		return ResultPlayer1
	case score[1] > score[0]:
		return ResultPlayer2
	}
	return ResultTie
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	SessionID     string
	Mode          Mode
	Phase         Phase
	Running       bool
	Generation    int
	CurrentPlayer Cell
	Placed        [2]int //cells committed by player 1 and 2 during seeding
	Score         [2]int //births attributed to player 1 and 2
	Population    [2]int //cells currently held by player 1 and 2
	LiveCells     int
	Result        Result
	Interval      time.Duration
	IterationTime time.Duration
}

func slot(p Cell) int {
	return int(p) - 1
}

//PlacedBy returns the count of cells placed by the player
func (s Status) PlacedBy(p Cell) int {
	if p != Player1 && p != Player2 {
		return 0
	}
	return s.Placed[slot(p)]
}

//ScoreOf returns the score of the player
func (s Status) ScoreOf(p Cell) int {
	if p != Player1 && p != Player2 {
		return 0
	}
	return s.Score[slot(p)]
}
