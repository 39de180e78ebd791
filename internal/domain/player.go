package domain

import (
	"time"

	"github.com/google/uuid"
)

type Player struct {
	ID           uuid.UUID
	Name         string
	RegisteredAt time.Time

	// Derived from stored match summaries, not persisted.
	GamesPlayed int
	Wins        int
	Rating      int
	RatingRank  int
}
