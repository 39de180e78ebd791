package service

import (
	"errors"
	"fmt"
	"time"

	"dartserver/internal/cache/mem"
	"dartserver/internal/domain"
	"dartserver/internal/normalize"
	"dartserver/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyPlayerName = errors.New("empty player name")
	ErrPlayerExists    = errors.New("player already exists")
	ErrPlayerNotFound  = errors.New("player not found")
)

type PlayerService struct {
	log           *logrus.Entry
	playerStorage storage.PlayerStorage
	matchStorage  storage.MatchStorage
	cache         *mem.Cache
}

func NewPlayerService(log *logrus.Logger, players storage.PlayerStorage, matches storage.MatchStorage) *PlayerService {
	return &PlayerService{
		log:           log.WithField("service", "players"),
		playerStorage: players,
		matchStorage:  matches,
		cache:         mem.New(),
	}
}

func (s *PlayerService) refresh() error {
	if s.cache.Valid() {
		return nil
	}
	players, err := s.playerStorage.ListPlayers()
	if err != nil {
		return err
	}
	s.cache.Update(players)
	return nil
}

func (s *PlayerService) ListPlayers() ([]domain.Player, error) {
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s.cache.ListPlayers(), nil
}

func (s *PlayerService) Get(id uuid.UUID) (domain.Player, error) {
	player, err := s.playerStorage.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Player{}, ErrPlayerNotFound
	}
	return player, err
}

func (s *PlayerService) GetByName(name string) (domain.Player, error) {
	if err := s.refresh(); err != nil {
		return domain.Player{}, err
	}
	player, ok := s.cache.GetPlayerByName(name)
	if !ok {
		return domain.Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
	}
	return player, nil
}

func (s *PlayerService) CreatePlayer(name string) (domain.Player, error) {
	name = normalize.Display(name)
	if name == "" {
		return domain.Player{}, ErrEmptyPlayerName
	}
	if _, err := s.GetByName(name); err == nil {
		return domain.Player{}, fmt.Errorf("%w: %s", ErrPlayerExists, name)
	}
	player := domain.Player{
		ID:           uuid.New(),
		Name:         name,
		RegisteredAt: time.Now(),
	}
	player, err := s.playerStorage.Add(player)
	if err != nil {
		return domain.Player{}, err
	}
	s.cache.Invalidate()
	s.log.WithField("player", player.Name).Info("player created")
	return player, nil
}

// GetMatches returns finished matches, newest first.
func (s *PlayerService) GetMatches() ([]domain.MatchSummary, error) {
	matches, err := s.matchStorage.ListMatches()
	if err != nil {
		return nil, err
	}
	reverse(matches)
	return matches, nil
}

func reverse(m []domain.MatchSummary) {
	for i, j := 0, len(m)-1; i < j; i, j = i+1, j-1 {
		m[i], m[j] = m[j], m[i]
	}
}
