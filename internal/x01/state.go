package x01

import (
	"errors"
	"fmt"
)

// Turn is one committed visit of a player. The chain of ScoreAfter values
// across a player's history, seeded from the leg's starting score, is the
// ground truth every correction replays from.
type Turn struct {
	Darts      int  `json:"darts"`
	Total      int  `json:"total"`
	ScoreAfter int  `json:"scoreAfter"`
	Bust       bool `json:"bust,omitempty"`
}

// Achievements are per-match turn-score counters.
type Achievements struct {
	Count180s    int `json:"count_180s"`
	Count171s    int `json:"count_171s"`
	Count95s     int `json:"count_95s"`
	Count100Plus int `json:"count_100_plus"`
	Count120Plus int `json:"count_120_plus"`
	Count140Plus int `json:"count_140_plus"`
	Count160Plus int `json:"count_160_plus"`
}

func (a *Achievements) record(total int) {
	switch total {
	case 180:
		a.Count180s++
	case 171:
		a.Count171s++
	case 95:
		a.Count95s++
	}
	if total >= 100 {
		a.Count100Plus++
	}
	if total >= 120 {
		a.Count120Plus++
	}
	if total >= 140 {
		a.Count140Plus++
	}
	if total >= 160 {
		a.Count160Plus++
	}
}

// PlayerState is one side of the match.
type PlayerState struct {
	Name         string       `json:"name"`
	Score        int          `json:"score"`
	PreTurnScore int          `json:"preTurnScore"`
	LegScore     int          `json:"legScore"`
	LegDarts     int          `json:"legDarts"`
	LegAvg       float64      `json:"legAvg"`
	MatchScore   int          `json:"matchScore"`
	MatchDarts   int          `json:"matchDarts"`
	MatchAvg     float64      `json:"matchAvg"`
	LegWins      int          `json:"legWins"`
	SetWins      int          `json:"setWins"`
	History      []Turn       `json:"turnHistory"`
	Achievements Achievements `json:"achievements"`
}

func (ps *PlayerState) recalcAverages() {
	ps.LegAvg = 0
	if ps.LegDarts > 0 {
		ps.LegAvg = float64(ps.LegScore) / float64(ps.LegDarts) * 3
	}
	ps.MatchAvg = 0
	if ps.MatchDarts > 0 {
		ps.MatchAvg = float64(ps.MatchScore) / float64(ps.MatchDarts) * 3
	}
}

func (ps *PlayerState) resetLeg(startScore int) {
	ps.Score = startScore
	ps.PreTurnScore = startScore
	ps.LegScore = 0
	ps.LegDarts = 0
	ps.LegAvg = 0
	ps.History = nil
}

// LegPlayerRecord is one player's line in a finished leg.
type LegPlayerRecord struct {
	Name       string  `json:"name"`
	Turns      []Turn  `json:"turns"`
	LegDarts   int     `json:"legDarts"`
	LegAvg     float64 `json:"legAverage"`
	LegScore   int     `json:"legScore"`
	FinalScore int     `json:"finalScore"`
}

// LegRecord captures a completed leg for the match summary.
type LegRecord struct {
	LegNumber     int                `json:"legNumber"`
	SetNumber     int                `json:"setNumber"`
	Winner        Player             `json:"winner"`
	CheckoutScore int                `json:"checkoutScore"`
	CheckoutDarts int                `json:"checkoutDarts"`
	Players       [2]LegPlayerRecord `json:"players"`
}

// Phase is the match-level position in the leg/set/match state machine.
type Phase string

const (
	PhasePlaying   Phase = "playing"
	PhaseLegWon    Phase = "leg-won"
	PhaseSetWon    Phase = "set-won"
	PhaseMatchOver Phase = "match-over"
)

// Snapshot is a full, serializable copy of a match. Saving a snapshot after
// every mutation and restoring it later must reproduce identical behavior.
type Snapshot struct {
	Settings       Settings       `json:"settings"`
	Players        [2]PlayerState `json:"players"`
	CurrentPlayer  Player         `json:"currentPlayer"`
	Input          string         `json:"currentInput"`
	DartScores     []int          `json:"dartScores,omitempty"`
	TurnTotal      int            `json:"turnTotal"`
	VisitNumber    int            `json:"visitNumber"`
	CurrentSet     int            `json:"currentSet"`
	CurrentLeg     int            `json:"currentLeg"`
	LegStarter     Player         `json:"legStarter"`
	SetStarter     Player         `json:"setStarter"`
	Phase          Phase          `json:"phase"`
	AwaitingDarts  bool           `json:"awaitingDarts"`
	Editing        bool           `json:"isEditMode"`
	EditPlayer     Player         `json:"editModePlayer,omitempty"`
	EditTurnIndex  int            `json:"editModeTurnIndex,omitempty"`
	EditOriginal   int            `json:"editModeOriginalScore,omitempty"`
	SequentialUndo bool           `json:"isSequentialUndo,omitempty"`
	ResumePlayer   Player         `json:"resumePlayer,omitempty"`
	Winner         Player         `json:"winner,omitempty"`
	Draw           bool           `json:"draw,omitempty"`
	Forfeited      bool           `json:"forfeited,omitempty"`
	Legs           []LegRecord    `json:"allLegs,omitempty"`
}

// Match is the authoritative state of one X01 match plus the engines that
// mutate it. It is not safe for concurrent use; callers serialize access.
type Match struct {
	settings Settings
	staged   *Settings

	players [2]PlayerState
	current Player

	input      string
	dartScores []int
	turnTotal  int

	visitNumber int
	currentSet  int
	currentLeg  int
	legStarter  Player
	setStarter  Player

	phase         Phase
	awaitingDarts bool

	editing      bool
	editPlayer   Player
	editTurn     int
	editOriginal int
	sequential   bool
	resumePlayer Player

	winner    Player
	draw      bool
	forfeited bool

	legs []LegRecord

	subs []func(Snapshot)
}

// NewMatch creates a fresh match at the configured starting score.
func NewMatch(settings Settings, homeName, awayName string) (*Match, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if homeName == "" {
		homeName = "Home"
	}
	if awayName == "" {
		awayName = "Away"
	}
	m := &Match{
		settings:    settings,
		current:     settings.FirstStarter,
		legStarter:  settings.FirstStarter,
		setStarter:  settings.FirstStarter,
		visitNumber: 1,
		currentSet:  1,
		currentLeg:  1,
		phase:       PhasePlaying,
	}
	m.players[0].Name = homeName
	m.players[1].Name = awayName
	m.players[0].resetLeg(settings.StartScore)
	m.players[1].resetLeg(settings.StartScore)
	return m, nil
}

// Subscribe registers an observer called with a snapshot after every
// mutation. Observers must not call back into the match.
func (m *Match) Subscribe(fn func(Snapshot)) {
	m.subs = append(m.subs, fn)
}

func (m *Match) publish() {
	if len(m.subs) == 0 {
		return
	}
	snap := m.Snapshot()
	for _, fn := range m.subs {
		fn(snap)
	}
}

func (m *Match) player(p Player) *PlayerState { return &m.players[p.idx()] }

// State returns a copy of one player's state.
func (m *Match) State(p Player) PlayerState {
	ps := m.players[p.idx()]
	ps.History = append([]Turn(nil), ps.History...)
	return ps
}

func (m *Match) CurrentPlayer() Player { return m.current }
func (m *Match) Phase() Phase          { return m.phase }
func (m *Match) Settings() Settings    { return m.settings }
func (m *Match) VisitNumber() int      { return m.visitNumber }
func (m *Match) CurrentLeg() int       { return m.currentLeg }
func (m *Match) CurrentSet() int       { return m.currentSet }
func (m *Match) Input() string         { return m.input }
func (m *Match) Editing() bool         { return m.editing }
func (m *Match) Winner() Player        { return m.winner }
func (m *Match) Draw() bool            { return m.draw }
func (m *Match) Forfeited() bool       { return m.forfeited }

// Legs returns the records of every finished leg so far.
func (m *Match) Legs() []LegRecord { return append([]LegRecord(nil), m.legs...) }

// Snapshot copies the whole match state.
func (m *Match) Snapshot() Snapshot {
	snap := Snapshot{
		Settings:       m.settings,
		CurrentPlayer:  m.current,
		Input:          m.input,
		DartScores:     append([]int(nil), m.dartScores...),
		TurnTotal:      m.turnTotal,
		VisitNumber:    m.visitNumber,
		CurrentSet:     m.currentSet,
		CurrentLeg:     m.currentLeg,
		LegStarter:     m.legStarter,
		SetStarter:     m.setStarter,
		Phase:          m.phase,
		AwaitingDarts:  m.awaitingDarts,
		Editing:        m.editing,
		EditPlayer:     m.editPlayer,
		EditTurnIndex:  m.editTurn,
		EditOriginal:   m.editOriginal,
		SequentialUndo: m.sequential,
		ResumePlayer:   m.resumePlayer,
		Winner:         m.winner,
		Draw:           m.draw,
		Forfeited:      m.forfeited,
		Legs:           append([]LegRecord(nil), m.legs...),
	}
	for i := range m.players {
		snap.Players[i] = m.players[i]
		snap.Players[i].History = append([]Turn(nil), m.players[i].History...)
	}
	return snap
}

var ErrBadSnapshot = errors.New("invalid match snapshot")

// Restore rebuilds a match from a stored snapshot. The snapshot only has to
// be structurally valid; nothing beyond the data-model invariants is
// re-derived.
func Restore(snap Snapshot) (*Match, error) {
	if err := snap.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if !snap.CurrentPlayer.Valid() {
		return nil, fmt.Errorf("%w: current player %d", ErrBadSnapshot, snap.CurrentPlayer)
	}
	if snap.VisitNumber < 1 || snap.CurrentSet < 1 || snap.CurrentLeg < 1 {
		return nil, fmt.Errorf("%w: counters must be 1-based", ErrBadSnapshot)
	}
	switch snap.Phase {
	case PhasePlaying, PhaseLegWon, PhaseSetWon, PhaseMatchOver:
	case "":
		snap.Phase = PhasePlaying
	default:
		return nil, fmt.Errorf("%w: unknown phase %q", ErrBadSnapshot, snap.Phase)
	}
	m := &Match{
		settings:       snap.Settings,
		current:        snap.CurrentPlayer,
		input:          snap.Input,
		dartScores:     append([]int(nil), snap.DartScores...),
		turnTotal:      snap.TurnTotal,
		visitNumber:    snap.VisitNumber,
		currentSet:     snap.CurrentSet,
		currentLeg:     snap.CurrentLeg,
		legStarter:     snap.LegStarter,
		setStarter:     snap.SetStarter,
		phase:          snap.Phase,
		awaitingDarts:  snap.AwaitingDarts,
		editing:        snap.Editing,
		editPlayer:     snap.EditPlayer,
		editTurn:       snap.EditTurnIndex,
		editOriginal:   snap.EditOriginal,
		sequential:     snap.SequentialUndo,
		resumePlayer:   snap.ResumePlayer,
		winner:         snap.Winner,
		draw:           snap.Draw,
		forfeited:      snap.Forfeited,
		legs:           append([]LegRecord(nil), snap.Legs...),
	}
	for i := range snap.Players {
		m.players[i] = snap.Players[i]
		m.players[i].History = append([]Turn(nil), snap.Players[i].History...)
	}
	return m, nil
}

// ProvisionalScore is the not-yet-committed score shown while a turn is
// being entered: the active player's pre-turn score minus everything typed
// or accumulated so far. During an edit the active player is the edited one.
func (m *Match) ProvisionalScore() int {
	p := m.current
	if m.editing {
		p = m.editPlayer
	}
	total := 0
	for _, d := range m.dartScores {
		total += d
	}
	total += parseScore(m.input)
	return m.player(p).PreTurnScore - total
}
