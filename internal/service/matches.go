package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"dartserver/internal/domain"
	"dartserver/internal/storage"
	"dartserver/internal/x01"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrMatchNotFound  = errors.New("no match with this code")
	ErrConfirmPending = errors.New("previous turn is still being committed")
)

// Publisher pushes read-only snapshots to spectator displays. Pushes are
// fire-and-forget; a failing publisher must never block scoring.
type Publisher interface {
	Publish(code string, snap x01.Snapshot)
}

// Notifier is told about finished matches.
type Notifier interface {
	NotifyMatchFinished(domain.MatchSummary) error
}

// MatchService owns the in-progress matches, one per 4-digit connection
// code. It serializes all input per match, auto-saves a snapshot after every
// mutation, and records the summary when a match ends.
type MatchService struct {
	log          *logrus.Entry
	players      *PlayerService
	matchStorage storage.MatchStorage
	snapshots    storage.SnapshotStorage
	publisher    Publisher
	notifier     Notifier
	commitDelay  time.Duration

	mu     sync.Mutex
	active map[string]*game
}

type game struct {
	mu           sync.Mutex
	code         string
	home         domain.Player
	away         domain.Player
	match        *x01.Match
	pendingUntil time.Time
}

func NewMatchService(
	log *logrus.Logger,
	players *PlayerService,
	matches storage.MatchStorage,
	snapshots storage.SnapshotStorage,
	publisher Publisher,
	notifier Notifier,
) *MatchService {
	return &MatchService{
		log:          log.WithField("service", "matches"),
		players:      players,
		matchStorage: matches,
		snapshots:    snapshots,
		publisher:    publisher,
		notifier:     notifier,
		commitDelay:  300 * time.Millisecond,
		active:       make(map[string]*game),
	}
}

// SetCommitDelay overrides the cosmetic pause between turn commits.
func (s *MatchService) SetCommitDelay(d time.Duration) {
	s.commitDelay = d
}

// Create starts a new match between two rostered players and returns its
// connection code.
func (s *MatchService) Create(homeID, awayID uuid.UUID, settings x01.Settings) (domain.ActiveMatch, error) {
	home, err := s.players.Get(homeID)
	if err != nil {
		return domain.ActiveMatch{}, err
	}
	away, err := s.players.Get(awayID)
	if err != nil {
		return domain.ActiveMatch{}, err
	}
	match, err := x01.NewMatch(settings, home.Name, away.Name)
	if err != nil {
		return domain.ActiveMatch{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	code, err := s.newCode()
	if err != nil {
		return domain.ActiveMatch{}, err
	}
	g := &game{code: code, home: home, away: away, match: match}
	s.wire(g)
	s.active[code] = g
	s.log.WithField("code", code).Info("match created")
	return s.activeMatch(g), nil
}

// Resume rebuilds a match from its stored auto-save snapshot.
func (s *MatchService) Resume(code string) (domain.ActiveMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.active[code]; ok {
		return s.activeMatch(g), nil
	}
	stored, err := s.snapshots.GetSnapshot(code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.ActiveMatch{}, ErrMatchNotFound
		}
		return domain.ActiveMatch{}, err
	}
	match, err := x01.Restore(stored.State)
	if err != nil {
		return domain.ActiveMatch{}, err
	}
	home, err := s.players.Get(stored.Home.ID)
	if err != nil {
		return domain.ActiveMatch{}, err
	}
	away, err := s.players.Get(stored.Away.ID)
	if err != nil {
		return domain.ActiveMatch{}, err
	}
	g := &game{code: code, home: home, away: away, match: match}
	s.wire(g)
	s.active[code] = g
	s.log.WithField("code", code).Info("match resumed")
	return s.activeMatch(g), nil
}

// wire hooks auto-save and mirroring to the engine's observer interface
// and persists the current state right away, so a fresh match is joinable
// before the first throw. Collaborator failures are logged and never roll
// back a state change.
func (s *MatchService) wire(g *game) {
	g.match.Subscribe(func(snap x01.Snapshot) {
		s.persist(g, snap)
	})
	s.persist(g, g.match.Snapshot())
}

func (s *MatchService) persist(g *game, snap x01.Snapshot) {
	err := s.snapshots.SaveSnapshot(domain.ActiveMatch{
		Code:  g.code,
		Home:  g.home,
		Away:  g.away,
		State: snap,
	})
	if err != nil {
		s.log.WithField("code", g.code).WithError(err).Error("auto-save failed")
	}
	if s.publisher != nil {
		s.publisher.Publish(g.code, snap)
	}
}

func (s *MatchService) activeMatch(g *game) domain.ActiveMatch {
	return domain.ActiveMatch{
		Code:  g.code,
		Home:  g.home,
		Away:  g.away,
		State: g.match.Snapshot(),
	}
}

func (s *MatchService) newCode() (string, error) {
	for i := 0; i < 100; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10000))
		if err != nil {
			return "", err
		}
		code := fmt.Sprintf("%04d", n)
		if _, taken := s.active[code]; taken {
			continue
		}
		if _, err := s.snapshots.GetSnapshot(code); err == nil {
			continue
		}
		return code, nil
	}
	return "", errors.New("no free connection code")
}

func (s *MatchService) get(code string) (*game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.active[code]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return g, nil
}

// Current returns the present state of a running match.
func (s *MatchService) Current(code string) (x01.Snapshot, error) {
	g, err := s.get(code)
	if err != nil {
		return x01.Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.match.Snapshot(), nil
}

func (s *MatchService) Digit(code string, d rune) (x01.Snapshot, error) {
	g, err := s.get(code)
	if err != nil {
		return x01.Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.match.AddDigit(d)
	return g.match.Snapshot(), nil
}

func (s *MatchService) AddDart(code string) (x01.Snapshot, error) {
	g, err := s.get(code)
	if err != nil {
		return x01.Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.match.AddDart(); err != nil {
		return g.match.Snapshot(), err
	}
	return g.match.Snapshot(), nil
}

// Confirm submits the entered turn. Confirms arriving inside the commit
// delay window are rejected so a double tap cannot commit two turns.
func (s *MatchService) Confirm(code string) (x01.Result, x01.Snapshot, error) {
	return s.submit(code, func(m *x01.Match) (x01.Result, error) {
		return m.ConfirmScore()
	})
}

func (s *MatchService) QuickScore(code string, total int) (x01.Result, x01.Snapshot, error) {
	return s.submit(code, func(m *x01.Match) (x01.Result, error) {
		return m.QuickScore(total)
	})
}

func (s *MatchService) Miss(code string) (x01.Result, x01.Snapshot, error) {
	return s.submit(code, func(m *x01.Match) (x01.Result, error) {
		return m.Miss()
	})
}

func (s *MatchService) Multiply(code string) (x01.Result, x01.Snapshot, error) {
	return s.submit(code, func(m *x01.Match) (x01.Result, error) {
		return m.MultiplyInput()
	})
}

func (s *MatchService) AppendZero(code string) (x01.Result, x01.Snapshot, error) {
	return s.submit(code, func(m *x01.Match) (x01.Result, error) {
		return m.AppendZero()
	})
}

func (s *MatchService) submit(code string, op func(*x01.Match) (x01.Result, error)) (x01.Result, x01.Snapshot, error) {
	g, err := s.get(code)
	if err != nil {
		return x01.Result{}, x01.Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if time.Now().Before(g.pendingUntil) {
		return x01.Result{Outcome: x01.OutcomeRejected}, g.match.Snapshot(), ErrConfirmPending
	}
	res, err := op(g.match)
	if err == nil && res.Outcome != x01.OutcomeRejected && res.Outcome != x01.OutcomeNone {
		g.pendingUntil = time.Now().Add(s.commitDelay)
	}
	return res, g.match.Snapshot(), err
}

func (s *MatchService) Checkout(code string, darts int, onDouble bool) (x01.Result, x01.Snapshot, error) {
	g, err := s.get(code)
	if err != nil {
		return x01.Result{}, x01.Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	res, err := g.match.Checkout(darts, onDouble)
	return res, g.match.Snapshot(), err
}

func (s *MatchService) Bust(code string) (x01.Snapshot, error) {
	g, err := s.get(code)
	if err != nil {
		return x01.Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.match.Bust(); err != nil {
		return g.match.Snapshot(), err
	}
	return g.match.Snapshot(), nil
}

func (s *MatchService) Undo(code string) (x01.UndoResult, x01.Snapshot, error) {
	g, err := s.get(code)
	if err != nil {
		return x01.UndoNone, x01.Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	res := g.match.Undo()
	return res, g.match.Snapshot(), nil
}

func (s *MatchService) EnterEdit(code string, p x01.Player, turnIndex int) (x01.Snapshot, error) {
	g, err := s.get(code)
	if err != nil {
		return x01.Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.match.EnterEdit(p, turnIndex, false); err != nil {
		return g.match.Snapshot(), err
	}
	return g.match.Snapshot(), nil
}

func (s *MatchService) ApplyEdit(code string) (x01.Result, x01.Snapshot, error) {
	g, err := s.get(code)
	if err != nil {
		return x01.Result{}, x01.Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	res, err := g.match.ApplyEdit()
	return res, g.match.Snapshot(), err
}

// SetLegStarter overrides who throws first, for bull-up starts. Only allowed
// before the first score of the leg.
func (s *MatchService) SetLegStarter(code string, p x01.Player) (x01.Snapshot, error) {
	g, err := s.get(code)
	if err != nil {
		return x01.Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.match.SetLegStarter(p); err != nil {
		return g.match.Snapshot(), err
	}
	return g.match.Snapshot(), nil
}

func (s *MatchService) UpdateSettings(code string, settings x01.Settings) error {
	g, err := s.get(code)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.match.StageSettings(settings)
}

// Continue advances past a leg or set result. When it completes the match
// the summary is recorded and the match leaves the active table.
func (s *MatchService) Continue(code string) (x01.Snapshot, error) {
	g, err := s.get(code)
	if err != nil {
		return x01.Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.match.Continue(); err != nil {
		return g.match.Snapshot(), err
	}
	if g.match.Phase() == x01.PhaseMatchOver {
		return g.match.Snapshot(), s.finish(g)
	}
	return g.match.Snapshot(), nil
}

// Forfeit abandons a match. The result follows the house rule: a declared
// draw stands, otherwise the leader wins, and with nobody ahead the
// forfeiting player loses.
func (s *MatchService) Forfeit(code string, quitter x01.Player, draw bool) (x01.Snapshot, error) {
	g, err := s.get(code)
	if err != nil {
		return x01.Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if draw {
		if err := g.match.Forfeit(x01.NoPlayer, true); err != nil {
			return g.match.Snapshot(), err
		}
		return g.match.Snapshot(), s.finish(g)
	}
	if !quitter.Valid() {
		return g.match.Snapshot(), x01.ErrForfeitWinner
	}
	winner := quitter.Other()
	if leader := g.match.Leader(); leader != x01.NoPlayer {
		winner = leader
	}
	if err := g.match.Forfeit(winner, false); err != nil {
		return g.match.Snapshot(), err
	}
	return g.match.Snapshot(), s.finish(g)
}

func (s *MatchService) finish(g *game) error {
	result := g.match.Summary()
	summary := domain.MatchSummary{
		Home:   g.home,
		Away:   g.away,
		Date:   time.Now(),
		Result: result,
	}
	switch result.Winner {
	case x01.Player1:
		summary.Winner = g.home
	case x01.Player2:
		summary.Winner = g.away
	}
	summary, err := s.matchStorage.Create(summary)
	if err != nil {
		return err
	}
	if err := s.snapshots.DeleteSnapshot(g.code); err != nil {
		s.log.WithField("code", g.code).WithError(err).Error("snapshot cleanup failed")
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyMatchFinished(summary); err != nil {
			s.log.WithField("code", g.code).WithError(err).Error("notify failed")
		}
	}
	s.mu.Lock()
	delete(s.active, g.code)
	s.mu.Unlock()
	s.log.WithField("code", g.code).Info("match finished")
	return nil
}
