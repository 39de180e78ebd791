package x01

import (
	"errors"
)

var (
	ErrNoPendingResult = errors.New("no leg or set result to continue from")
	ErrForfeitWinner   = errors.New("forfeit needs a winner or a draw")
)

// StageSettings stores a rules change to be applied at the next leg or set
// boundary. The running leg keeps the settings it started with.
func (m *Match) StageSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.staged = &s
	m.publish()
	return nil
}

func (m *Match) applyStaged() {
	if m.staged != nil {
		m.settings = *m.staged
		m.staged = nil
	}
}

// Continue advances past a finished leg or set. After a leg win it runs the
// set check: reaching the legs-to-win count awards the set, resets both leg
// tallies, and runs the match check in turn. After a set award a second call
// opens the next set.
func (m *Match) Continue() error {
	switch m.phase {
	case PhaseLegWon:
		winner := m.current
		if n := len(m.legs); n > 0 {
			winner = m.legs[n-1].Winner
		}
		if m.player(winner).LegWins >= m.settings.LegsToWin() {
			m.player(winner).SetWins++
			m.players[0].LegWins = 0
			m.players[1].LegWins = 0
			if m.player(winner).SetWins >= m.settings.SetsToWin() {
				m.winner = winner
				m.phase = PhaseMatchOver
				m.publish()
				return nil
			}
			m.phase = PhaseSetWon
			m.publish()
			return nil
		}
		m.startNewLeg()
		return nil
	case PhaseSetWon:
		m.startNextSet()
		return nil
	case PhaseMatchOver:
		return ErrMatchOver
	default:
		return ErrNoPendingResult
	}
}

// startNewLeg resets per-leg state within the current set. The opener
// alternates off the set starter by the parity of legs already played in
// this set.
func (m *Match) startNewLeg() {
	m.applyStaged()
	legsPlayed := m.players[0].LegWins + m.players[1].LegWins
	m.legStarter = m.setStarter
	if legsPlayed%2 != 0 {
		m.legStarter = m.setStarter.Other()
	}
	m.currentLeg++
	m.resetLeg()
}

// startNextSet opens a fresh set: the set starter alternates off the match's
// first starter by set parity and also opens the set's first leg.
func (m *Match) startNextSet() {
	m.applyStaged()
	m.currentSet++
	m.setStarter = m.settings.FirstStarter
	if (m.currentSet-1)%2 != 0 {
		m.setStarter = m.settings.FirstStarter.Other()
	}
	m.legStarter = m.setStarter
	m.currentLeg = 1
	m.resetLeg()
}

func (m *Match) resetLeg() {
	for i := range m.players {
		m.players[i].resetLeg(m.settings.StartScore)
	}
	m.current = m.legStarter
	m.visitNumber = 1
	m.input = ""
	m.dartScores = nil
	m.turnTotal = 0
	m.awaitingDarts = false
	m.exitEdit()
	m.phase = PhasePlaying
	m.publish()
}

// Leader reports which player is ahead, by set wins, then leg wins, then
// total points scored. NoPlayer means the match is level.
func (m *Match) Leader() Player {
	p1, p2 := &m.players[0], &m.players[1]
	switch {
	case p1.SetWins != p2.SetWins:
		if p1.SetWins > p2.SetWins {
			return Player1
		}
		return Player2
	case p1.LegWins != p2.LegWins:
		if p1.LegWins > p2.LegWins {
			return Player1
		}
		return Player2
	case p1.MatchScore != p2.MatchScore:
		if p1.MatchScore > p2.MatchScore {
			return Player1
		}
		return Player2
	}
	return NoPlayer
}

// Forfeit abandons the match with an explicit result: either a winner or a
// declared draw. Resolution of who that should be (the non-forfeiter, the
// leader, or nobody) is the caller's decision.
func (m *Match) Forfeit(winner Player, draw bool) error {
	if m.phase == PhaseMatchOver {
		return ErrMatchOver
	}
	if !draw && !winner.Valid() {
		return ErrForfeitWinner
	}
	if draw {
		winner = NoPlayer
	}
	m.forfeited = true
	m.draw = draw
	m.winner = winner
	m.awaitingDarts = false
	m.exitEdit()
	m.phase = PhaseMatchOver
	m.publish()
	return nil
}

// PlayerSummary is one player's final line in a finished match.
type PlayerSummary struct {
	Name         string       `json:"name"`
	SetWins      int          `json:"setWins"`
	LegWins      int          `json:"legWins"`
	MatchScore   int          `json:"matchScore"`
	MatchDarts   int          `json:"matchDarts"`
	MatchAvg     float64      `json:"matchAvg"`
	Achievements Achievements `json:"achievements"`
}

// Summary is the finished-match result handed to external consumers.
type Summary struct {
	Settings  Settings         `json:"settings"`
	Players   [2]PlayerSummary `json:"players"`
	Winner    Player           `json:"winner"`
	Draw      bool             `json:"draw"`
	Forfeited bool             `json:"forfeited"`
	Legs      []LegRecord      `json:"legs"`
}

// Summary builds the final result. Meaningful once the phase is match-over;
// earlier calls return the tallies as they stand.
func (m *Match) Summary() Summary {
	s := Summary{
		Settings:  m.settings,
		Winner:    m.winner,
		Draw:      m.draw,
		Forfeited: m.forfeited,
		Legs:      append([]LegRecord(nil), m.legs...),
	}
	for i := range m.players {
		ps := &m.players[i]
		s.Players[i] = PlayerSummary{
			Name:         ps.Name,
			SetWins:      ps.SetWins,
			LegWins:      ps.LegWins,
			MatchScore:   ps.MatchScore,
			MatchDarts:   ps.MatchDarts,
			MatchAvg:     ps.MatchAvg,
			Achievements: ps.Achievements,
		}
	}
	return s
}
