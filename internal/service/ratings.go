package service

import (
	"sort"

	"dartserver/internal/domain"

	"github.com/google/uuid"
	glicko "github.com/zelenin/go-glicko2"
)

// GetRatings replays the stored match history chronologically through
// glicko-2 rating periods, one period per calendar day, and returns the
// roster ranked by rating.
func (s *PlayerService) GetRatings() ([]domain.Player, error) {
	players, err := s.ListPlayers()
	if err != nil {
		return nil, err
	}
	matches, err := s.matchStorage.ListMatches()
	if err != nil {
		return nil, err
	}

	rated := make(map[uuid.UUID]*glicko.Player, len(players))
	games := make(map[uuid.UUID]int, len(players))
	wins := make(map[uuid.UUID]int, len(players))
	for _, p := range players {
		rated[p.ID] = glicko.NewPlayer(glicko.NewDefaultRating())
	}

	var period *glicko.RatingPeriod
	day := ""
	for _, m := range matches {
		home, okH := rated[m.Home.ID]
		away, okA := rated[m.Away.ID]
		if !okH || !okA {
			continue
		}
		if d := m.Date.Format("2006-01-02"); d != day {
			if period != nil {
				period.Calculate()
			}
			period = glicko.NewRatingPeriod()
			day = d
		}
		switch {
		case m.IsDraw():
			period.AddMatch(home, away, glicko.MATCH_RESULT_DRAW)
		case m.Winner.ID == m.Home.ID:
			period.AddMatch(home, away, glicko.MATCH_RESULT_WIN)
			wins[m.Home.ID]++
		default:
			period.AddMatch(home, away, glicko.MATCH_RESULT_LOSS)
			wins[m.Away.ID]++
		}
		games[m.Home.ID]++
		games[m.Away.ID]++
	}
	if period != nil {
		period.Calculate()
	}

	for i := range players {
		id := players[i].ID
		players[i].Rating = int(rated[id].Rating().R())
		players[i].GamesPlayed = games[id]
		players[i].Wins = wins[id]
	}
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Rating > players[j].Rating
	})
	for i := range players {
		players[i].RatingRank = i + 1
	}
	return players, nil
}
