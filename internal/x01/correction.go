package x01

import (
	"errors"
	"fmt"
	"strconv"
)

// UndoResult tells the caller which of the undo paths fired.
type UndoResult string

const (
	UndoNone             UndoResult = "none"
	UndoDigit            UndoResult = "digit"
	UndoDart             UndoResult = "dart"
	UndoCheckoutCanceled UndoResult = "checkout-canceled"
	UndoEditEntered      UndoResult = "edit-entered"
	UndoTurnDeleted      UndoResult = "turn-deleted"
	UndoZeroSeeded       UndoResult = "zero-seeded"
)

var (
	ErrBadTurnIndex = errors.New("turn index out of range")
	ErrNotEditing   = errors.New("no edit in progress")
)

// EnterEdit puts the match into edit mode on one historical turn. The input
// buffer is seeded with the turn's original total and the edited player's
// preTurnScore is rebuilt from the turns before it, so the provisional score
// shown during the edit is correct whichever turn is being revised.
func (m *Match) EnterEdit(p Player, turnIndex int, sequential bool) error {
	if m.phase != PhasePlaying {
		return ErrLegNotRunning
	}
	if !p.Valid() {
		return fmt.Errorf("%w: player %d", ErrBadSettings, p)
	}
	player := m.player(p)
	if turnIndex < 0 || turnIndex >= len(player.History) {
		return fmt.Errorf("%w: %d of %d", ErrBadTurnIndex, turnIndex, len(player.History))
	}

	if !m.editing {
		m.resumePlayer = m.current
	}
	m.editing = true
	m.editPlayer = p
	m.editTurn = turnIndex
	m.editOriginal = player.History[turnIndex].Total
	m.sequential = sequential
	m.input = strconv.Itoa(m.editOriginal)
	m.dartScores = nil

	pre := m.settings.StartScore
	for _, t := range player.History[:turnIndex] {
		if !t.Bust {
			pre -= t.Total
		}
	}
	player.PreTurnScore = pre
	m.publish()
	return nil
}

// Undo is the single backspace-style entry point. Outside edit mode it peels
// back the in-progress input one digit (or one calculator dart) at a time and,
// once nothing is pending, chains into a sequential edit of the last committed
// turn. Inside edit mode it keeps stripping digits; emptying the input during
// a sequential undo deletes the turn outright, while a clicked edit bottoms
// out at "0".
func (m *Match) Undo() UndoResult {
	if m.awaitingDarts {
		m.awaitingDarts = false
		m.input = strconv.Itoa(m.turnTotal)
		m.turnTotal = 0
		m.publish()
		return UndoCheckoutCanceled
	}

	if m.editing {
		if m.input != "" {
			m.input = m.input[:len(m.input)-1]
			if m.input == "" && m.sequential {
				m.deleteTurn(m.editPlayer, m.editTurn)
				return UndoTurnDeleted
			}
			m.publish()
			return UndoDigit
		}
		if !m.sequential {
			m.input = "0"
			m.publish()
			return UndoZeroSeeded
		}
		// Sequential with an already-empty buffer: walk one turn further back.
		if m.editTurn > 0 {
			if err := m.EnterEdit(m.editPlayer, m.editTurn-1, true); err == nil {
				return UndoEditEntered
			}
		}
		other := m.editPlayer.Other()
		if n := len(m.player(other).History); n > 0 {
			if err := m.EnterEdit(other, n-1, true); err == nil {
				return UndoEditEntered
			}
		}
		m.exitEdit()
		m.publish()
		return UndoNone
	}

	if m.input != "" {
		m.input = m.input[:len(m.input)-1]
		m.publish()
		return UndoDigit
	}
	if len(m.dartScores) > 0 {
		m.dartScores = m.dartScores[:len(m.dartScores)-1]
		m.publish()
		return UndoDart
	}

	if m.phase != PhasePlaying {
		return UndoNone
	}
	// Nothing pending: step back into the most recent committed turn, which
	// belongs to whoever is not on throw.
	last := m.current.Other()
	if n := len(m.player(last).History); n > 0 {
		if err := m.EnterEdit(last, n-1, true); err == nil {
			return UndoEditEntered
		}
	}
	if n := len(m.player(m.current).History); n > 0 {
		if err := m.EnterEdit(m.current, n-1, true); err == nil {
			return UndoEditEntered
		}
	}
	return UndoNone
}

// ApplyEdit commits the edited value: the selected turn's total is replaced
// and the player's whole leg history is replayed from the starting score,
// reclassifying busts and rebuilding every aggregate. A replay that lands on
// exactly zero re-triggers the leg win for the edited player, reusing the
// turn's stored dart count.
func (m *Match) ApplyEdit() (Result, error) {
	if !m.editing {
		return Result{Outcome: OutcomeRejected}, ErrNotEditing
	}
	total := parseScore(m.input)
	if total < 0 || total > 180 {
		return Result{Outcome: OutcomeRejected}, fmt.Errorf("%w: got %d", ErrInvalidTotal, total)
	}

	p := m.editPlayer
	player := m.player(p)
	player.History[m.editTurn].Total = total
	m.replay(p)

	resume := m.resumePlayer
	m.exitEdit()

	if player.Score == 0 {
		// Leg win via edit. The finishing turn's dart count is reused, so no
		// checkout prompt fires on this path.
		player.LegWins++
		coTotal, coDarts := 0, 3
		for i := len(player.History) - 1; i >= 0; i-- {
			if !player.History[i].Bust {
				coTotal = player.History[i].Total
				coDarts = player.History[i].Darts
				break
			}
		}
		m.recordLeg(p, coTotal, coDarts)
		m.phase = PhaseLegWon
		m.publish()
		return Result{Outcome: OutcomeLegWon, Total: total, Caption: Caption(total)}, nil
	}

	if resume.Valid() {
		m.current = resume
	}
	cur := m.player(m.current)
	cur.PreTurnScore = cur.Score
	m.publish()
	return Result{Outcome: OutcomeTurn, Total: total}, nil
}

// deleteTurn removes one turn from history, replays the rest, and hands the
// throw back to the deleted turn's player as if they had not thrown yet. The
// visit counter is rebuilt from completed-round parity.
func (m *Match) deleteTurn(p Player, turnIndex int) {
	player := m.player(p)
	if turnIndex < 0 || turnIndex >= len(player.History) {
		return
	}
	player.History = append(player.History[:turnIndex], player.History[turnIndex+1:]...)
	m.replay(p)

	m.exitEdit()
	m.current = p
	player.PreTurnScore = player.Score
	m.visitNumber = min(len(m.players[0].History), len(m.players[1].History)) + 1
	m.publish()
}

func (m *Match) exitEdit() {
	m.editing = false
	m.editPlayer = NoPlayer
	m.editTurn = 0
	m.editOriginal = 0
	m.sequential = false
	m.resumePlayer = NoPlayer
	m.input = ""
	m.dartScores = nil
}

// replay rebuilds one player's leg state from a clean left-to-right pass over
// their turn history. Contributions from earlier, already-closed legs are
// preserved by carrying the match totals minus the current leg's share as the
// base. Replaying an unmodified history is a no-op.
func (m *Match) replay(p Player) {
	player := m.player(p)
	matchScoreBase := player.MatchScore - player.LegScore
	matchDartsBase := player.MatchDarts - player.LegDarts

	running := m.settings.StartScore
	legScore, legDarts := 0, 0
	for i := range player.History {
		t := &player.History[i]
		darts := t.Darts
		if darts == 0 {
			darts = 3
			t.Darts = 3
		}
		after := running - t.Total
		// Live-play busts are recorded with a zero total, so the flag is kept
		// rather than re-derived for them.
		bust := after < 0 || after == 1 ||
			(after == 0 && m.settings.FinishMode == DoubleOut) ||
			(t.Bust && t.Total == 0)
		if bust {
			t.Bust = true
			t.ScoreAfter = running
		} else {
			t.Bust = false
			t.ScoreAfter = after
			running = after
			legScore += t.Total
		}
		legDarts += darts
	}

	player.Score = running
	player.LegScore = legScore
	player.LegDarts = legDarts
	player.MatchScore = matchScoreBase + legScore
	player.MatchDarts = matchDartsBase + legDarts
	player.recalcAverages()

	var ach Achievements
	for _, rec := range m.legs {
		countAchievements(&ach, rec.Players[p.idx()].Turns)
	}
	countAchievements(&ach, player.History)
	player.Achievements = ach
}

// countAchievements accumulates the counters the same way live play does:
// normal committed turns only, never busts, never the finishing turn.
func countAchievements(a *Achievements, turns []Turn) {
	for _, t := range turns {
		if t.Bust || t.ScoreAfter == 0 {
			continue
		}
		a.record(t.Total)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
