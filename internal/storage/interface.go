package storage

import (
	"errors"

	"dartserver/internal/domain"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type PlayerStorage interface {
	ListPlayers() ([]domain.Player, error)
	Get(uuid.UUID) (domain.Player, error)
	Add(domain.Player) (domain.Player, error)
}

type MatchStorage interface {
	ListMatches() ([]domain.MatchSummary, error)
	Create(domain.MatchSummary) (domain.MatchSummary, error)
}

// SnapshotStorage keeps the auto-saved state of in-progress matches, one per
// connection code.
type SnapshotStorage interface {
	SaveSnapshot(domain.ActiveMatch) error
	GetSnapshot(code string) (domain.ActiveMatch, error)
	DeleteSnapshot(code string) error
}
