package x01

import (
	"errors"
	"fmt"
	"strconv"
)

// Outcome classifies what a submitted turn did to the match.
type Outcome string

const (
	OutcomeNone     Outcome = ""
	OutcomeRejected Outcome = "rejected"
	OutcomeTurn     Outcome = "turn"
	OutcomeBust     Outcome = "bust"
	// OutcomeCheckout means the turn reached exactly zero; the caller must
	// follow up with Checkout to supply the finishing-dart detail.
	OutcomeCheckout Outcome = "checkout"
	OutcomeLegWon   Outcome = "leg-won"
)

// Result is the engine's answer to a turn submission.
type Result struct {
	Outcome Outcome
	Total   int
	Caption string
}

var (
	ErrMatchOver        = errors.New("match is over")
	ErrLegNotRunning    = errors.New("no leg in progress")
	ErrNothingEntered   = errors.New("nothing entered")
	ErrInvalidTotal     = errors.New("turn total must be between 0 and 180")
	ErrNotAwaitingDarts = errors.New("no checkout pending")
	ErrTooFewDarts      = errors.New("fewer darts than the checkout requires")
	ErrLegInProgress    = errors.New("leg already has scores")
)

func parseScore(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// AddDigit appends one digit to the in-progress input. Digits that would
// form an impossible dart score are dropped. In edit mode the first digit
// typed replaces the pre-seeded original value.
func (m *Match) AddDigit(d rune) {
	if d < '0' || d > '9' {
		return
	}
	if m.editing && m.input == strconv.Itoa(m.editOriginal) {
		m.input = string(d)
		m.publish()
		return
	}
	if len(m.input) >= 3 {
		return
	}
	next := m.input + string(d)
	if !ValidTurnScore(parseScore(next)) {
		return
	}
	m.input = next
	m.publish()
}

// AddDart moves the typed value into the calculator's per-dart list so the
// next dart can be typed ("+" on the pad).
func (m *Match) AddDart() error {
	if m.input == "" {
		return ErrNothingEntered
	}
	dart := parseScore(m.input)
	if dart < 0 || dart > 180 {
		m.input = ""
		m.publish()
		return ErrInvalidTotal
	}
	m.dartScores = append(m.dartScores, dart)
	m.input = ""
	m.publish()
	return nil
}

// MultiplyInput trebles the typed value and submits it ("×" on the pad).
func (m *Match) MultiplyInput() (Result, error) {
	n := parseScore(m.input)
	if m.input == "" || n < 0 || n > 60 {
		return Result{Outcome: OutcomeRejected}, ErrNothingEntered
	}
	m.input = strconv.Itoa(n * 3)
	return m.ConfirmScore()
}

// AppendZero tacks a trailing zero onto the typed value, or scores a miss
// when nothing is typed.
func (m *Match) AppendZero() (Result, error) {
	if m.input != "" {
		m.AddDigit('0')
		return Result{Outcome: OutcomeNone, Total: parseScore(m.input)}, nil
	}
	return m.Miss()
}

// QuickScore submits a preset total in one call (the 26/40/41/… shortcuts).
func (m *Match) QuickScore(total int) (Result, error) {
	if !ValidTurnScore(total) {
		return Result{Outcome: OutcomeRejected}, fmt.Errorf("%w: %d", ErrInvalidTotal, total)
	}
	m.input = strconv.Itoa(total)
	return m.ConfirmScore()
}

// Miss submits a zero turn.
func (m *Match) Miss() (Result, error) {
	m.input = "0"
	return m.ConfirmScore()
}

// ConfirmScore commits the entered turn total: sums any calculator darts
// plus the typed value, then routes to the bust, checkout, or normal-turn
// path. A checkout is not final until Checkout supplies the finishing darts.
func (m *Match) ConfirmScore() (Result, error) {
	if m.phase != PhasePlaying {
		return Result{Outcome: OutcomeRejected}, ErrLegNotRunning
	}
	if m.awaitingDarts {
		return Result{Outcome: OutcomeRejected}, ErrNotAwaitingDarts
	}
	if m.input == "" && len(m.dartScores) == 0 {
		return Result{Outcome: OutcomeRejected}, ErrNothingEntered
	}

	total := 0
	for _, d := range m.dartScores {
		total += d
	}
	total += parseScore(m.input)

	// Rejection leaves the buffer alone; the player backs out with undo.
	if total < 0 || total > 180 {
		return Result{Outcome: OutcomeRejected}, fmt.Errorf("%w: got %d", ErrInvalidTotal, total)
	}

	player := m.player(m.current)
	m.turnTotal = total
	m.input = ""
	m.dartScores = nil

	left := player.PreTurnScore - total
	switch {
	case left == 0:
		m.awaitingDarts = true
		m.publish()
		return Result{Outcome: OutcomeCheckout, Total: total}, nil
	case left < 0:
		m.bust()
		return Result{Outcome: OutcomeBust, Total: total}, nil
	case unfinishableLeftover(left, player.PreTurnScore):
		m.bust()
		return Result{Outcome: OutcomeBust, Total: total}, nil
	}

	m.commitTurn(total)
	return Result{Outcome: OutcomeTurn, Total: total, Caption: Caption(total)}, nil
}

// Bust forces the in-progress turn to be scored as a bust (the pad's BUST
// shortcut).
func (m *Match) Bust() error {
	if m.phase != PhasePlaying {
		return ErrLegNotRunning
	}
	m.turnTotal = 0
	m.input = ""
	m.dartScores = nil
	m.bust()
	return nil
}

// Checkout finalizes a zero-reaching turn. The caller supplies how many
// darts the finishing turn used (clamped to 1-3, rejected below the
// rule-determined minimum) and whether the final dart was a double. Under
// double-out a non-double zero is a bust, not a win.
func (m *Match) Checkout(darts int, onDouble bool) (Result, error) {
	if !m.awaitingDarts {
		return Result{Outcome: OutcomeRejected}, ErrNotAwaitingDarts
	}
	player := m.player(m.current)

	if m.settings.FinishMode == DoubleOut && !onDouble {
		m.awaitingDarts = false
		m.bust()
		return Result{Outcome: OutcomeBust, Total: m.turnTotal}, nil
	}

	if darts < 1 {
		darts = 1
	}
	if darts > 3 {
		darts = 3
	}
	if min := MinDartsToFinish(player.PreTurnScore); darts < min {
		return Result{Outcome: OutcomeRejected}, fmt.Errorf("%w: %d needs %d darts", ErrTooFewDarts, player.PreTurnScore, min)
	}

	m.awaitingDarts = false
	total := m.turnTotal

	player.LegScore += total
	player.MatchScore += total
	player.LegDarts += darts
	player.MatchDarts += darts
	player.recalcAverages()
	player.Score = 0
	player.LegWins++
	player.History = append(player.History, Turn{Darts: darts, Total: total, ScoreAfter: 0})

	m.recordLeg(m.current, total, darts)
	m.turnTotal = 0
	m.phase = PhaseLegWon
	m.publish()
	return Result{Outcome: OutcomeLegWon, Total: total, Caption: Caption(total)}, nil
}

// commitTurn books a normal three-dart visit and hands the throw over.
func (m *Match) commitTurn(total int) {
	player := m.player(m.current)
	player.LegDarts += 3
	player.MatchDarts += 3
	player.LegScore += total
	player.MatchScore += total
	player.Score = player.PreTurnScore - total
	player.recalcAverages()
	player.Achievements.record(total)
	player.History = append(player.History, Turn{Darts: 3, Total: total, ScoreAfter: player.Score})
	m.turnTotal = 0
	m.switchPlayer()
}

// bust reverts the score, still charges three darts, and hands over.
func (m *Match) bust() {
	player := m.player(m.current)
	player.LegDarts += 3
	player.MatchDarts += 3
	player.recalcAverages()
	player.History = append(player.History, Turn{
		Darts:      3,
		Total:      0,
		ScoreAfter: player.PreTurnScore,
		Bust:       true,
	})
	player.Score = player.PreTurnScore
	m.turnTotal = 0
	m.switchPlayer()
}

// switchPlayer flips the throw. The visit number ticks over when the throw
// returns to whoever started the leg.
func (m *Match) switchPlayer() {
	next := m.current.Other()
	if next == m.legStarter {
		m.visitNumber++
	}
	m.current = next
	m.player(next).PreTurnScore = m.player(next).Score
	m.publish()
}

// SetLegStarter changes who opens the leg. Only allowed while the leg is
// completely fresh.
func (m *Match) SetLegStarter(p Player) error {
	if !p.Valid() {
		return fmt.Errorf("%w: player %d", ErrBadSettings, p)
	}
	for i := range m.players {
		if m.players[i].LegScore != 0 || m.players[i].LegDarts != 0 {
			return ErrLegInProgress
		}
	}
	if m.input != "" || len(m.dartScores) > 0 {
		return ErrLegInProgress
	}
	m.current = p
	m.legStarter = p
	if m.currentLeg == 1 && m.currentSet == 1 {
		m.setStarter = p
		m.settings.FirstStarter = p
	}
	m.publish()
	return nil
}

// Caption names a notable turn score the way callers announce it.
func Caption(total int) string {
	switch {
	case total == 100:
		return "TON!"
	case total >= 110 && total <= 180:
		return fmt.Sprintf("TON%d!", total-100)
	case total >= 95:
		return fmt.Sprintf("%d!", total)
	}
	return ""
}

func (m *Match) recordLeg(winner Player, checkoutScore, checkoutDarts int) {
	rec := LegRecord{
		LegNumber:     len(m.legs) + 1,
		SetNumber:     m.currentSet,
		Winner:        winner,
		CheckoutScore: checkoutScore,
		CheckoutDarts: checkoutDarts,
	}
	for i := range m.players {
		ps := m.players[i]
		rec.Players[i] = LegPlayerRecord{
			Name:       ps.Name,
			Turns:      append([]Turn(nil), ps.History...),
			LegDarts:   ps.LegDarts,
			LegAvg:     ps.LegAvg,
			LegScore:   ps.LegScore,
			FinalScore: ps.Score,
		}
	}
	m.legs = append(m.legs, rec)
}
