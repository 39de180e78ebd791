package sqlite

import (
	"encoding/json"
	"fmt"

	"dartserver/gen/model"
	"dartserver/internal/domain"
	"dartserver/internal/x01"

	"github.com/google/uuid"
)

func convertPlayerToDomain(player model.Players) (domain.Player, error) {
	id, err := uuid.Parse(player.ID)
	if err != nil {
		return domain.Player{}, fmt.Errorf("player id: %w", err)
	}
	return domain.Player{
		ID:           id,
		Name:         player.Name,
		RegisteredAt: player.CreatedAt,
	}, nil
}

func convertPlayersToDomain(players []model.Players) ([]domain.Player, error) {
	converted := make([]domain.Player, 0, len(players))
	for _, player := range players {
		p, err := convertPlayerToDomain(player)
		if err != nil {
			return nil, err
		}
		converted = append(converted, p)
	}
	return converted, nil
}

func convertPlayerFromDomain(player domain.Player) model.Players {
	return model.Players{
		ID:        player.ID.String(),
		Name:      player.Name,
		CreatedAt: player.RegisteredAt,
	}
}

func convertMatchToDomain(match model.Matches) (domain.MatchSummary, error) {
	home, err := uuid.Parse(match.Home)
	if err != nil {
		return domain.MatchSummary{}, fmt.Errorf("match home id: %w", err)
	}
	away, err := uuid.Parse(match.Away)
	if err != nil {
		return domain.MatchSummary{}, fmt.Errorf("match away id: %w", err)
	}
	summary := domain.MatchSummary{
		ID:   int(match.ID),
		Home: domain.Player{ID: home},
		Away: domain.Player{ID: away},
		Date: match.CreatedAt,
	}
	if match.Winner != nil && *match.Winner != uuid.Nil.String() {
		winner, err := uuid.Parse(*match.Winner)
		if err != nil {
			return domain.MatchSummary{}, fmt.Errorf("match winner id: %w", err)
		}
		summary.Winner = domain.Player{ID: winner}
	}
	var result x01.Summary
	if err := json.Unmarshal([]byte(match.Detail), &result); err != nil {
		return domain.MatchSummary{}, fmt.Errorf("match detail: %w", err)
	}
	summary.Result = result
	return summary, nil
}

func convertMatchFromDomain(summary domain.MatchSummary) (model.Matches, error) {
	detail, err := json.Marshal(summary.Result)
	if err != nil {
		return model.Matches{}, fmt.Errorf("match detail: %w", err)
	}
	row := model.Matches{
		ID:        int32(summary.ID),
		Home:      summary.Home.ID.String(),
		Away:      summary.Away.ID.String(),
		Draw:      summary.Result.Draw,
		Forfeited: summary.Result.Forfeited,
		Detail:    string(detail),
		CreatedAt: summary.Date,
	}
	if summary.Winner.ID != uuid.Nil {
		winner := summary.Winner.ID.String()
		row.Winner = &winner
	}
	return row, nil
}

func convertSnapshotToDomain(row model.Snapshots) (domain.ActiveMatch, error) {
	var snap x01.Snapshot
	if err := json.Unmarshal([]byte(row.State), &snap); err != nil {
		return domain.ActiveMatch{}, fmt.Errorf("snapshot state: %w", err)
	}
	home, err := uuid.Parse(row.Home)
	if err != nil {
		return domain.ActiveMatch{}, fmt.Errorf("snapshot home id: %w", err)
	}
	away, err := uuid.Parse(row.Away)
	if err != nil {
		return domain.ActiveMatch{}, fmt.Errorf("snapshot away id: %w", err)
	}
	return domain.ActiveMatch{
		Code:      row.Code,
		Home:      domain.Player{ID: home},
		Away:      domain.Player{ID: away},
		State:     snap,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func convertSnapshotFromDomain(m domain.ActiveMatch) (model.Snapshots, error) {
	state, err := json.Marshal(m.State)
	if err != nil {
		return model.Snapshots{}, fmt.Errorf("snapshot state: %w", err)
	}
	return model.Snapshots{
		Code:      m.Code,
		Home:      m.Home.ID.String(),
		Away:      m.Away.ID.String(),
		State:     string(state),
		UpdatedAt: m.UpdatedAt,
	}, nil
}
