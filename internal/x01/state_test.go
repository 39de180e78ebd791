package x01

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNewMatchDefaults(t *testing.T) {
	m, err := NewMatch(DefaultSettings(), "", "")
	if err != nil {
		t.Fatalf("NewMatch() error = %v", err)
	}
	if got := m.State(Player1).Name; got != "Home" {
		t.Errorf("player 1 name = %q, want %q", got, "Home")
	}
	if got := m.State(Player2).Name; got != "Away" {
		t.Errorf("player 2 name = %q, want %q", got, "Away")
	}
	if m.CurrentPlayer() != Player1 || m.VisitNumber() != 1 || m.CurrentLeg() != 1 || m.CurrentSet() != 1 {
		t.Errorf("fresh match counters wrong: player=%v visit=%d leg=%d set=%d",
			m.CurrentPlayer(), m.VisitNumber(), m.CurrentLeg(), m.CurrentSet())
	}
	if m.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want %v", m.Phase(), PhasePlaying)
	}
}

func TestNewMatchRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{name: "start score too low", mutate: func(s *Settings) { s.StartScore = 1 }},
		{name: "zero legs", mutate: func(s *Settings) { s.TotalLegs = 0 }},
		{name: "zero sets", mutate: func(s *Settings) { s.TotalSets = 0 }},
		{name: "no first starter", mutate: func(s *Settings) { s.FirstStarter = NoPlayer }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if _, err := NewMatch(s, "a", "b"); err == nil {
				t.Error("expected settings validation error")
			}
		})
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := testMatch(t, 501, DoubleOut)
	mustScore(t, m, 140)
	mustScore(t, m, 60)
	mustScore(t, m, 180) // Anna to 181
	mustScore(t, m, 45)
	m.AddDigit('8')
	m.AddDigit('1')

	snap := m.Snapshot()

	// The snapshot must survive serialization.
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored, err := Restore(decoded)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if !reflect.DeepEqual(m.Snapshot(), restored.Snapshot()) {
		t.Fatalf("restored snapshot differs\nwant %+v\ngot  %+v", m.Snapshot(), restored.Snapshot())
	}

	// Identical inputs drive both matches to identical states.
	for _, match := range []*Match{m, restored} {
		if _, err := match.ConfirmScore(); err != nil {
			t.Fatalf("ConfirmScore() error = %v", err)
		}
		if _, err := match.QuickScore(26); err != nil {
			t.Fatalf("QuickScore() error = %v", err)
		}
	}
	if !reflect.DeepEqual(m.Snapshot(), restored.Snapshot()) {
		t.Error("restored match diverged from original after identical inputs")
	}
}

func TestRestoreRejectsBadSnapshots(t *testing.T) {
	m := testMatch(t, 501, DoubleOut)
	good := m.Snapshot()

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{name: "bad settings", mutate: func(s *Snapshot) { s.Settings.StartScore = 0 }},
		{name: "bad current player", mutate: func(s *Snapshot) { s.CurrentPlayer = NoPlayer }},
		{name: "zero visit", mutate: func(s *Snapshot) { s.VisitNumber = 0 }},
		{name: "unknown phase", mutate: func(s *Snapshot) { s.Phase = "halftime" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := good
			tt.mutate(&snap)
			if _, err := Restore(snap); err == nil {
				t.Error("expected restore error")
			}
		})
	}
}

func TestProvisionalScore(t *testing.T) {
	m := testMatch(t, 501, DoubleOut)
	if got := m.ProvisionalScore(); got != 501 {
		t.Fatalf("provisional = %d, want 501", got)
	}
	m.AddDigit('6')
	m.AddDigit('0')
	if got := m.ProvisionalScore(); got != 441 {
		t.Errorf("provisional = %d, want 441", got)
	}
	if err := m.AddDart(); err != nil {
		t.Fatal(err)
	}
	m.AddDigit('5')
	if got := m.ProvisionalScore(); got != 436 {
		t.Errorf("provisional = %d, want 436", got)
	}
}

func TestSubscribePublishesOnMutation(t *testing.T) {
	m := testMatch(t, 501, DoubleOut)
	var snaps []Snapshot
	m.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })

	m.AddDigit('2')
	m.AddDigit('6')
	if _, err := m.ConfirmScore(); err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 3 {
		t.Fatalf("observer called %d times, want 3", len(snaps))
	}
	last := snaps[len(snaps)-1]
	if last.Players[0].Score != 475 || last.CurrentPlayer != Player2 {
		t.Errorf("final snapshot = %+v, want committed 26 and hand-over", last)
	}
}
