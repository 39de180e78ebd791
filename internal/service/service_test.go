package service

import (
	"errors"
	"io"
	"testing"
	"time"

	"dartserver/internal/domain"
	"dartserver/internal/storage"
	"dartserver/internal/x01"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type fakePlayerStore struct {
	players []domain.Player
}

func (f *fakePlayerStore) ListPlayers() ([]domain.Player, error) {
	return append([]domain.Player(nil), f.players...), nil
}

func (f *fakePlayerStore) Get(id uuid.UUID) (domain.Player, error) {
	for _, p := range f.players {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Player{}, storage.ErrNotFound
}

func (f *fakePlayerStore) Add(p domain.Player) (domain.Player, error) {
	f.players = append(f.players, p)
	return p, nil
}

type fakeMatchStore struct {
	matches []domain.MatchSummary
}

func (f *fakeMatchStore) ListMatches() ([]domain.MatchSummary, error) {
	return append([]domain.MatchSummary(nil), f.matches...), nil
}

func (f *fakeMatchStore) Create(m domain.MatchSummary) (domain.MatchSummary, error) {
	m.ID = len(f.matches) + 1
	f.matches = append(f.matches, m)
	return m, nil
}

type fakeSnapshotStore struct {
	snaps map[string]domain.ActiveMatch
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{snaps: make(map[string]domain.ActiveMatch)}
}

func (f *fakeSnapshotStore) SaveSnapshot(m domain.ActiveMatch) error {
	f.snaps[m.Code] = m
	return nil
}

func (f *fakeSnapshotStore) GetSnapshot(code string) (domain.ActiveMatch, error) {
	m, ok := f.snaps[code]
	if !ok {
		return domain.ActiveMatch{}, storage.ErrNotFound
	}
	return m, nil
}

func (f *fakeSnapshotStore) DeleteSnapshot(code string) error {
	delete(f.snaps, code)
	return nil
}

type fakeNotifier struct {
	finished []domain.MatchSummary
}

func (f *fakeNotifier) NotifyMatchFinished(m domain.MatchSummary) error {
	f.finished = append(f.finished, m)
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testServices(t *testing.T) (*PlayerService, *MatchService, *fakeMatchStore, *fakeSnapshotStore, *fakeNotifier) {
	t.Helper()
	playerStore := &fakePlayerStore{}
	matchStore := &fakeMatchStore{}
	snapStore := newFakeSnapshotStore()
	notifier := &fakeNotifier{}
	log := testLogger()
	players := NewPlayerService(log, playerStore, matchStore)
	matches := NewMatchService(log, players, matchStore, snapStore, nil, notifier)
	matches.SetCommitDelay(0)
	return players, matches, matchStore, snapStore, notifier
}

func shortSettings() x01.Settings {
	s := x01.DefaultSettings()
	s.StartScore = 40
	s.FinishMode = x01.StraightOut
	s.TotalLegs = 1
	return s
}

func TestPlayerService_CreatePlayer(t *testing.T) {
	players, _, _, _, _ := testServices(t)
	created, err := players.CreatePlayer("  Anna   Smith ")
	if err != nil {
		t.Fatalf("CreatePlayer() error = %v", err)
	}
	if created.Name != "Anna Smith" {
		t.Errorf("CreatePlayer() name = %q, want %q", created.Name, "Anna Smith")
	}
	if _, err := players.CreatePlayer("ANNA SMITH"); !errors.Is(err, ErrPlayerExists) {
		t.Errorf("duplicate CreatePlayer() error = %v, want %v", err, ErrPlayerExists)
	}
	if _, err := players.CreatePlayer("   "); !errors.Is(err, ErrEmptyPlayerName) {
		t.Errorf("blank CreatePlayer() error = %v, want %v", err, ErrEmptyPlayerName)
	}
}

func TestPlayerService_GetRatings(t *testing.T) {
	players, _, matchStore, _, _ := testServices(t)
	anna, err := players.CreatePlayer("Anna")
	if err != nil {
		t.Fatal(err)
	}
	boris, err := players.CreatePlayer("Boris")
	if err != nil {
		t.Fatal(err)
	}
	day1 := time.Date(2026, time.March, 1, 20, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	for _, m := range []domain.MatchSummary{
		{Home: anna, Away: boris, Winner: anna, Date: day1},
		{Home: anna, Away: boris, Winner: anna, Date: day1},
		{Home: boris, Away: anna, Winner: anna, Date: day2},
	} {
		if _, err := matchStore.Create(m); err != nil {
			t.Fatal(err)
		}
	}

	rated, err := players.GetRatings()
	if err != nil {
		t.Fatalf("GetRatings() error = %v", err)
	}
	if len(rated) != 2 {
		t.Fatalf("GetRatings() returned %d players, want 2", len(rated))
	}
	if rated[0].ID != anna.ID {
		t.Fatalf("GetRatings() leader = %s, want Anna", rated[0].Name)
	}
	if rated[0].RatingRank != 1 || rated[1].RatingRank != 2 {
		t.Errorf("ranks = %d, %d, want 1, 2", rated[0].RatingRank, rated[1].RatingRank)
	}
	if rated[0].Rating <= rated[1].Rating {
		t.Errorf("winner rating %d not above loser rating %d", rated[0].Rating, rated[1].Rating)
	}
	if rated[0].GamesPlayed != 3 || rated[0].Wins != 3 {
		t.Errorf("leader games/wins = %d/%d, want 3/3", rated[0].GamesPlayed, rated[0].Wins)
	}
	if rated[1].Wins != 0 {
		t.Errorf("loser wins = %d, want 0", rated[1].Wins)
	}
}

func TestMatchService_Lifecycle(t *testing.T) {
	players, matches, matchStore, snapStore, notifier := testServices(t)
	anna, _ := players.CreatePlayer("Anna")
	boris, _ := players.CreatePlayer("Boris")

	active, err := matches.Create(anna.ID, boris.ID, shortSettings())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(active.Code) != 4 {
		t.Fatalf("connection code = %q, want 4 digits", active.Code)
	}
	code := active.Code

	// Anna scores 20, Boris misses, Anna checks out the remaining 20.
	if _, _, err := matches.QuickScore(code, 20); err != nil {
		t.Fatalf("QuickScore() error = %v", err)
	}
	if _, ok := snapStore.snaps[code]; !ok {
		t.Error("no auto-saved snapshot after a turn")
	}
	if _, _, err := matches.Miss(code); err != nil {
		t.Fatalf("Miss() error = %v", err)
	}
	res, _, err := matches.QuickScore(code, 20)
	if err != nil {
		t.Fatalf("QuickScore() error = %v", err)
	}
	if res.Outcome != x01.OutcomeCheckout {
		t.Fatalf("finishing score outcome = %q, want %q", res.Outcome, x01.OutcomeCheckout)
	}
	if _, _, err := matches.Checkout(code, 1, false); err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	snap, err := matches.Current(code)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Phase != x01.PhaseLegWon {
		t.Fatalf("phase = %v, want %v", snap.Phase, x01.PhaseLegWon)
	}
	if _, err := matches.Continue(code); err != nil {
		t.Fatalf("Continue() error = %v", err)
	}

	if len(matchStore.matches) != 1 {
		t.Fatalf("stored matches = %d, want 1", len(matchStore.matches))
	}
	stored := matchStore.matches[0]
	if stored.Winner.ID != anna.ID {
		t.Errorf("stored winner = %s, want Anna", stored.Winner.Name)
	}
	if stored.Result.Winner != x01.Player1 {
		t.Errorf("result winner = %v, want %v", stored.Result.Winner, x01.Player1)
	}
	if len(notifier.finished) != 1 {
		t.Errorf("notifications = %d, want 1", len(notifier.finished))
	}
	if _, ok := snapStore.snaps[code]; ok {
		t.Error("snapshot not deleted after match end")
	}
	if _, err := matches.Current(code); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("Current() after finish error = %v, want %v", err, ErrMatchNotFound)
	}
}

func TestMatchService_ConfirmGate(t *testing.T) {
	players, matches, _, _, _ := testServices(t)
	anna, _ := players.CreatePlayer("Anna")
	boris, _ := players.CreatePlayer("Boris")
	active, err := matches.Create(anna.ID, boris.ID, x01.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	matches.SetCommitDelay(time.Minute)

	if _, _, err := matches.QuickScore(active.Code, 60); err != nil {
		t.Fatalf("QuickScore() error = %v", err)
	}
	res, _, err := matches.QuickScore(active.Code, 60)
	if !errors.Is(err, ErrConfirmPending) {
		t.Fatalf("second QuickScore() error = %v, want %v", err, ErrConfirmPending)
	}
	if res.Outcome != x01.OutcomeRejected {
		t.Errorf("gated outcome = %q, want %q", res.Outcome, x01.OutcomeRejected)
	}
	snap, _ := matches.Current(active.Code)
	if got := snap.Players[1].Score; got != 501 {
		t.Errorf("second player score = %d, want untouched 501", got)
	}
}

func TestMatchService_ForfeitLeaderWins(t *testing.T) {
	players, matches, matchStore, _, _ := testServices(t)
	anna, _ := players.CreatePlayer("Anna")
	boris, _ := players.CreatePlayer("Boris")
	settings := shortSettings()
	settings.TotalLegs = 3
	active, err := matches.Create(anna.ID, boris.ID, settings)
	if err != nil {
		t.Fatal(err)
	}
	code := active.Code

	// Anna takes the first leg, then Boris gives up.
	if _, _, err := matches.QuickScore(code, 40); err != nil {
		t.Fatal(err)
	}
	if _, _, err := matches.Checkout(code, 2, false); err != nil {
		t.Fatal(err)
	}
	if _, err := matches.Continue(code); err != nil {
		t.Fatal(err)
	}
	snap, err := matches.Forfeit(code, x01.Player2, false)
	if err != nil {
		t.Fatalf("Forfeit() error = %v", err)
	}
	if snap.Phase != x01.PhaseMatchOver || snap.Winner != x01.Player1 {
		t.Fatalf("forfeit result phase=%v winner=%v, want match over won by player 1", snap.Phase, snap.Winner)
	}
	if len(matchStore.matches) != 1 {
		t.Fatalf("stored matches = %d, want 1", len(matchStore.matches))
	}
	stored := matchStore.matches[0]
	if !stored.Result.Forfeited {
		t.Error("stored result not marked forfeited")
	}
	if stored.Winner.ID != anna.ID {
		t.Errorf("stored winner = %s, want Anna", stored.Winner.Name)
	}
}

func TestMatchService_ForfeitDraw(t *testing.T) {
	players, matches, matchStore, _, _ := testServices(t)
	anna, _ := players.CreatePlayer("Anna")
	boris, _ := players.CreatePlayer("Boris")
	active, err := matches.Create(anna.ID, boris.ID, shortSettings())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := matches.Forfeit(active.Code, x01.NoPlayer, true); err != nil {
		t.Fatalf("Forfeit() error = %v", err)
	}
	if len(matchStore.matches) != 1 {
		t.Fatalf("stored matches = %d, want 1", len(matchStore.matches))
	}
	if !matchStore.matches[0].IsDraw() {
		t.Error("forfeit draw not stored as draw")
	}
}

func TestMatchService_Resume(t *testing.T) {
	players, matches, _, snapStore, _ := testServices(t)
	anna, _ := players.CreatePlayer("Anna")
	boris, _ := players.CreatePlayer("Boris")
	active, err := matches.Create(anna.ID, boris.ID, x01.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	code := active.Code
	if _, _, err := matches.QuickScore(code, 100); err != nil {
		t.Fatal(err)
	}
	before, _ := matches.Current(code)

	// A fresh service sees only the persisted snapshot.
	log := testLogger()
	playerStore := &fakePlayerStore{}
	for _, p := range []domain.Player{anna, boris} {
		if _, err := playerStore.Add(p); err != nil {
			t.Fatal(err)
		}
	}
	restarted := NewMatchService(log, NewPlayerService(log, playerStore, &fakeMatchStore{}), &fakeMatchStore{}, snapStore, nil, nil)
	resumed, err := restarted.Resume(code)
	if err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if resumed.Home.ID != anna.ID || resumed.Away.ID != boris.ID {
		t.Error("resumed match lost its players")
	}
	if resumed.State.Players[0].Score != before.Players[0].Score {
		t.Errorf("resumed score = %d, want %d", resumed.State.Players[0].Score, before.Players[0].Score)
	}
	if _, err := restarted.Resume("9999"); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("Resume(unknown) error = %v, want %v", err, ErrMatchNotFound)
	}
}
