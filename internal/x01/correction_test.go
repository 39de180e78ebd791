package x01

import (
	"reflect"
	"testing"
)

func assertReplayInvariant(t *testing.T, m *Match, p Player) {
	t.Helper()
	st := m.State(p)
	running := m.Settings().StartScore
	for _, turn := range st.History {
		if !turn.Bust {
			running -= turn.Total
		}
	}
	if running != st.Score {
		t.Fatalf("player %d: replayed score = %d, stored score = %d, history = %+v",
			p, running, st.Score, st.History)
	}
}

func TestSequentialUndoDeleteIsIdempotent(t *testing.T) {
	m := testMatch(t, 501, DoubleOut)
	mustScore(t, m, 60)  // Anna
	mustScore(t, m, 45)  // Boris
	mustScore(t, m, 100) // Anna
	want := m.Snapshot()

	if got := m.Undo(); got != UndoEditEntered {
		t.Fatalf("first undo = %v, want %v", got, UndoEditEntered)
	}
	if !m.Editing() || m.Input() != "100" {
		t.Fatalf("editing = %v input = %q, want sequential edit of the 100", m.Editing(), m.Input())
	}
	m.Undo() // "10"
	m.Undo() // "1"
	if got := m.Undo(); got != UndoTurnDeleted {
		t.Fatalf("emptying undo = %v, want %v", got, UndoTurnDeleted)
	}
	if m.CurrentPlayer() != Player1 {
		t.Fatalf("current = %v, want the deleted turn's player", m.CurrentPlayer())
	}
	if m.VisitNumber() != 2 {
		t.Fatalf("visit = %d, want 2 (completed rounds + 1)", m.VisitNumber())
	}
	assertReplayInvariant(t, m, Player1)

	mustScore(t, m, 100)
	got := m.Snapshot()
	if !reflect.DeepEqual(want, got) {
		t.Errorf("delete then re-enter did not reproduce state\nwant %+v\ngot  %+v", want, got)
	}
}

func TestClickedEditReplaysHistory(t *testing.T) {
	m := testMatch(t, 501, DoubleOut)
	mustScore(t, m, 100) // Anna
	mustScore(t, m, 60)  // Boris
	mustScore(t, m, 140) // Anna
	mustScore(t, m, 60)  // Boris

	if err := m.EnterEdit(Player1, 0, false); err != nil {
		t.Fatalf("EnterEdit() error = %v", err)
	}
	if m.Input() != "100" {
		t.Fatalf("seeded input = %q, want original %q", m.Input(), "100")
	}
	// First digit typed overwrites the seeded value.
	m.AddDigit('6')
	if m.Input() != "6" {
		t.Fatalf("input after overwrite = %q, want %q", m.Input(), "6")
	}
	m.AddDigit('0')
	res, err := m.ApplyEdit()
	if err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}
	if res.Outcome != OutcomeTurn {
		t.Fatalf("outcome = %v, want %v", res.Outcome, OutcomeTurn)
	}

	p := m.State(Player1)
	wantHistory := []Turn{
		{Darts: 3, Total: 60, ScoreAfter: 441},
		{Darts: 3, Total: 140, ScoreAfter: 301},
	}
	if !reflect.DeepEqual(p.History, wantHistory) {
		t.Errorf("history = %+v, want %+v", p.History, wantHistory)
	}
	if p.Score != 301 || p.LegScore != 200 || p.LegDarts != 6 {
		t.Errorf("score/legScore/legDarts = %d/%d/%d, want 301/200/6", p.Score, p.LegScore, p.LegDarts)
	}
	if p.Achievements.Count100Plus != 1 || p.Achievements.Count140Plus != 1 {
		t.Errorf("achievements not rebuilt: %+v", p.Achievements)
	}
	if m.CurrentPlayer() != Player1 {
		t.Errorf("current = %v, want restored %v", m.CurrentPlayer(), Player1)
	}
	if m.Editing() {
		t.Error("still in edit mode after apply")
	}
	assertReplayInvariant(t, m, Player1)
	assertReplayInvariant(t, m, Player2)
}

func TestEditToZero(t *testing.T) {
	setup := func(t *testing.T, finish FinishMode) *Match {
		m := testMatch(t, 170, finish)
		mustScore(t, m, 100) // Anna to 70
		mustScore(t, m, 26)  // Boris
		mustScore(t, m, 30)  // Anna to 40
		mustScore(t, m, 26)  // Boris
		if err := m.EnterEdit(Player1, 1, false); err != nil {
			t.Fatalf("EnterEdit() error = %v", err)
		}
		m.AddDigit('7')
		m.AddDigit('0')
		return m
	}

	t.Run("straight out wins the leg", func(t *testing.T) {
		m := setup(t, StraightOut)
		res, err := m.ApplyEdit()
		if err != nil {
			t.Fatalf("ApplyEdit() error = %v", err)
		}
		if res.Outcome != OutcomeLegWon {
			t.Fatalf("outcome = %v, want %v", res.Outcome, OutcomeLegWon)
		}
		p := m.State(Player1)
		if p.Score != 0 || p.LegWins != 1 {
			t.Errorf("score/legWins = %d/%d, want 0/1", p.Score, p.LegWins)
		}
		if m.Phase() != PhaseLegWon {
			t.Errorf("phase = %v, want %v", m.Phase(), PhaseLegWon)
		}
		legs := m.Legs()
		if len(legs) != 1 || legs[0].Winner != Player1 || legs[0].CheckoutDarts != 3 {
			t.Errorf("leg record = %+v, want win with reused dart count", legs)
		}
	})

	t.Run("double out marks the zero turn bust", func(t *testing.T) {
		m := setup(t, DoubleOut)
		res, err := m.ApplyEdit()
		if err != nil {
			t.Fatalf("ApplyEdit() error = %v", err)
		}
		if res.Outcome != OutcomeTurn {
			t.Fatalf("outcome = %v, want %v", res.Outcome, OutcomeTurn)
		}
		p := m.State(Player1)
		if p.Score != 70 {
			t.Errorf("score = %d, want 70 (zero turn reclassified bust)", p.Score)
		}
		if !p.History[1].Bust || p.History[1].Total != 70 {
			t.Errorf("edited turn = %+v, want bust with total kept", p.History[1])
		}
		if m.Phase() != PhasePlaying {
			t.Errorf("phase = %v, want still playing", m.Phase())
		}
		assertReplayInvariant(t, m, Player1)
	})
}

func TestEnterEditSeedsPreTurnScore(t *testing.T) {
	m := testMatch(t, 501, DoubleOut)
	mustScore(t, m, 100) // Anna
	mustScore(t, m, 60)  // Boris
	mustScore(t, m, 60)  // Anna

	if err := m.EnterEdit(Player1, 1, false); err != nil {
		t.Fatalf("EnterEdit() error = %v", err)
	}
	if got := m.State(Player1).PreTurnScore; got != 401 {
		t.Errorf("preTurnScore = %d, want 401", got)
	}
	if got := m.ProvisionalScore(); got != 341 {
		t.Errorf("provisional = %d, want 341", got)
	}
}

func TestEnterEditBadIndex(t *testing.T) {
	m := testMatch(t, 501, DoubleOut)
	if err := m.EnterEdit(Player1, 0, false); err == nil {
		t.Error("expected error for empty history")
	}
	mustScore(t, m, 60)
	if err := m.EnterEdit(Player1, 1, false); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestUndoOutsideEdit(t *testing.T) {
	t.Run("strips digits then noops at match start", func(t *testing.T) {
		m := testMatch(t, 501, DoubleOut)
		m.AddDigit('2')
		m.AddDigit('6')
		if got := m.Undo(); got != UndoDigit || m.Input() != "2" {
			t.Fatalf("undo = %v input = %q", got, m.Input())
		}
		m.Undo()
		if got := m.Undo(); got != UndoNone {
			t.Errorf("undo with no history = %v, want %v", got, UndoNone)
		}
	})

	t.Run("pops calculator darts", func(t *testing.T) {
		m := testMatch(t, 501, DoubleOut)
		m.AddDigit('6')
		m.AddDigit('0')
		if err := m.AddDart(); err != nil {
			t.Fatal(err)
		}
		if got := m.Undo(); got != UndoDart {
			t.Fatalf("undo = %v, want %v", got, UndoDart)
		}
		if got := m.ProvisionalScore(); got != 501 {
			t.Errorf("provisional = %d, want 501", got)
		}
	})

	t.Run("cancels a pending checkout", func(t *testing.T) {
		m := testMatch(t, 40, DoubleOut)
		mustScore(t, m, 40)
		if got := m.Undo(); got != UndoCheckoutCanceled {
			t.Fatalf("undo = %v, want %v", got, UndoCheckoutCanceled)
		}
		if m.Input() != "40" {
			t.Fatalf("input = %q, want restored %q", m.Input(), "40")
		}
		res, err := m.ConfirmScore()
		if err != nil || res.Outcome != OutcomeCheckout {
			t.Errorf("re-confirm = %v, %v, want pending checkout again", res.Outcome, err)
		}
	})
}

func TestClickedEditBottomsOutAtZero(t *testing.T) {
	m := testMatch(t, 501, DoubleOut)
	mustScore(t, m, 26)
	if err := m.EnterEdit(Player1, 0, false); err != nil {
		t.Fatal(err)
	}
	m.Undo() // "2"
	m.Undo() // ""
	if got := m.Undo(); got != UndoZeroSeeded || m.Input() != "0" {
		t.Fatalf("undo = %v input = %q, want zero seed", got, m.Input())
	}
	res, err := m.ApplyEdit()
	if err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}
	if res.Total != 0 {
		t.Fatalf("total = %d, want 0", res.Total)
	}
	if got := m.State(Player1).Score; got != 501 {
		t.Errorf("score = %d, want 501", got)
	}
	assertReplayInvariant(t, m, Player1)
}

func TestCorrectionsKeepReplayInvariant(t *testing.T) {
	m := testMatch(t, 501, DoubleOut)
	mustScore(t, m, 180) // Anna 321
	mustScore(t, m, 85)  // Boris 416
	mustScore(t, m, 180) // Anna 141
	mustScore(t, m, 60)  // Boris 356
	if res := mustScore(t, m, 140); res.Outcome != OutcomeBust {
		t.Fatalf("140 from 141 should leave 1 and bust, got %v", res.Outcome)
	}
	mustScore(t, m, 100) // Boris 256
	mustScore(t, m, 100) // Anna 41
	assertReplayInvariant(t, m, Player1)
	assertReplayInvariant(t, m, Player2)

	// Clicked edit deep in the opponent's history.
	if err := m.EnterEdit(Player2, 0, false); err != nil {
		t.Fatal(err)
	}
	m.AddDigit('4')
	m.AddDigit('5')
	if _, err := m.ApplyEdit(); err != nil {
		t.Fatal(err)
	}
	assertReplayInvariant(t, m, Player1)
	assertReplayInvariant(t, m, Player2)
	if got := m.State(Player2).Score; got != 296 {
		t.Errorf("edited score = %d, want 296", got)
	}

	// Sequential undo all the way to deletion.
	if got := m.Undo(); got != UndoEditEntered {
		t.Fatalf("undo = %v, want %v", got, UndoEditEntered)
	}
	for m.Editing() {
		m.Undo()
	}
	assertReplayInvariant(t, m, Player1)
	assertReplayInvariant(t, m, Player2)
	p := m.State(Player1)
	if len(p.History) != 3 || p.Score != 141 {
		t.Errorf("after deletion history = %+v score = %d, want 3 turns and 141", p.History, p.Score)
	}
	if m.VisitNumber() != 4 {
		t.Errorf("visit = %d, want 4", m.VisitNumber())
	}
}
