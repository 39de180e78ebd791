package domain

import (
	"time"

	"dartserver/internal/x01"

	"github.com/google/uuid"
)

// MatchSummary is one finished match as stored in history. Winner with a nil
// ID means the match was declared a draw.
type MatchSummary struct {
	ID     int
	Home   Player
	Away   Player
	Winner Player
	Date   time.Time

	Result x01.Summary
}

func (m MatchSummary) IsDraw() bool {
	return m.Winner.ID == uuid.Nil
}

// WinnerOf resolves the winning side from the engine result.
func (m MatchSummary) WinnerOf() Player {
	switch m.Result.Winner {
	case x01.Player1:
		return m.Home
	case x01.Player2:
		return m.Away
	}
	return Player{}
}

// ActiveMatch pairs an in-progress engine state with its connection code for
// resume and spectator pairing.
type ActiveMatch struct {
	Code      string
	Home      Player
	Away      Player
	State     x01.Snapshot
	UpdatedAt time.Time
}
