package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"dartserver/gen/model"
	"dartserver/gen/table"
	"dartserver/internal/domain"
	"dartserver/internal/storage"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
)

type Storage struct {
	db *sql.DB
}

var _ storage.PlayerStorage = (*Storage)(nil)
var _ storage.MatchStorage = (*Storage)(nil)
var _ storage.SnapshotStorage = (*Storage)(nil)

func New(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) ListPlayers() ([]domain.Player, error) {
	var players []model.Players
	err := table.Players.
		SELECT(table.Players.AllColumns).
		FROM(table.Players).
		Query(s.db, &players)
	if err != nil {
		return nil, err
	}
	return convertPlayersToDomain(players)
}

func (s *Storage) Get(id uuid.UUID) (domain.Player, error) {
	var player model.Players
	err := table.Players.
		SELECT(table.Players.AllColumns).
		FROM(table.Players).
		WHERE(table.Players.ID.EQ(sqlite.String(id.String()))).
		Query(s.db, &player)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.Player{}, storage.ErrNotFound
		}
		return domain.Player{}, err
	}
	return convertPlayerToDomain(player)
}

func (s *Storage) Add(player domain.Player) (domain.Player, error) {
	row := convertPlayerFromDomain(player)
	_, err := table.Players.
		INSERT(table.Players.AllColumns).
		MODEL(row).
		Exec(s.db)
	if err != nil {
		return domain.Player{}, err
	}
	return player, nil
}

func (s *Storage) ListMatches() ([]domain.MatchSummary, error) {
	var matches []model.Matches
	err := table.Matches.
		SELECT(table.Matches.AllColumns).
		FROM(table.Matches).
		ORDER_BY(table.Matches.CreatedAt.ASC(), table.Matches.ID.ASC()).
		Query(s.db, &matches)
	if err != nil {
		return nil, err
	}
	players, err := s.ListPlayers()
	if err != nil {
		return nil, err
	}
	playerMap := make(map[uuid.UUID]domain.Player, len(players))
	for _, p := range players {
		playerMap[p.ID] = p
	}
	summaries := make([]domain.MatchSummary, 0, len(matches))
	for _, m := range matches {
		summary, err := convertMatchToDomain(m)
		if err != nil {
			return nil, err
		}
		summary.Home = playerMap[summary.Home.ID]
		summary.Away = playerMap[summary.Away.ID]
		if summary.Winner.ID != uuid.Nil {
			summary.Winner = playerMap[summary.Winner.ID]
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *Storage) Create(summary domain.MatchSummary) (domain.MatchSummary, error) {
	row, err := convertMatchFromDomain(summary)
	if err != nil {
		return domain.MatchSummary{}, err
	}
	res, err := table.Matches.
		INSERT(table.Matches.MutableColumns).
		MODEL(row).
		Exec(s.db)
	if err != nil {
		return domain.MatchSummary{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.MatchSummary{}, err
	}
	summary.ID = int(id)
	return summary, nil
}

func (s *Storage) SaveSnapshot(m domain.ActiveMatch) error {
	row, err := convertSnapshotFromDomain(m)
	if err != nil {
		return err
	}
	row.UpdatedAt = time.Now()
	res, err := table.Snapshots.
		UPDATE(table.Snapshots.MutableColumns).
		MODEL(row).
		WHERE(table.Snapshots.Code.EQ(sqlite.String(row.Code))).
		Exec(s.db)
	if err != nil {
		return err
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if updated > 0 {
		return nil
	}
	_, err = table.Snapshots.
		INSERT(table.Snapshots.AllColumns).
		MODEL(row).
		Exec(s.db)
	return err
}

func (s *Storage) GetSnapshot(code string) (domain.ActiveMatch, error) {
	var row model.Snapshots
	err := table.Snapshots.
		SELECT(table.Snapshots.AllColumns).
		FROM(table.Snapshots).
		WHERE(table.Snapshots.Code.EQ(sqlite.String(code))).
		Query(s.db, &row)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.ActiveMatch{}, storage.ErrNotFound
		}
		return domain.ActiveMatch{}, err
	}
	return convertSnapshotToDomain(row)
}

func (s *Storage) DeleteSnapshot(code string) error {
	_, err := table.Snapshots.
		DELETE().
		WHERE(table.Snapshots.Code.EQ(sqlite.String(code))).
		Exec(s.db)
	return err
}
