package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"dartserver/bot/botstorage"
	dbmodel "dartserver/bot/gen/model"
	"dartserver/bot/gen/table"
	"dartserver/bot/model"
	"dartserver/internal/config"
	sqlite3 "dartserver/internal/migrate"

	"github.com/sirupsen/logrus"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ botstorage.BotStorage = (*Storage)(nil)

func New(l *logrus.Logger, cfg config.TgBot) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "bot-storage",
	})
	db, err := sql.Open("sqlite3", buildSource(cfg.SqliteFile))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = sqlite3.UpBotDB(db)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}
	log.Info("bot storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func buildSource(fileName string) string {
	return "file:" + fileName + "?cache=shared"
}

func (s *Storage) ListSubscribers() ([]model.Subscriber, error) {
	var rows []dbmodel.BotSubscribers
	err := table.BotSubscribers.
		SELECT(table.BotSubscribers.AllColumns).
		FROM(table.BotSubscribers).
		Query(s.db, &rows)
	if err != nil {
		return nil, err
	}
	subs := make([]model.Subscriber, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, convertSubscriberToDomain(row))
	}
	return subs, nil
}

func (s *Storage) Subscribe(sub model.Subscriber) error {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	var existing dbmodel.BotSubscribers
	err := table.BotSubscribers.
		SELECT(table.BotSubscribers.AllColumns).
		FROM(table.BotSubscribers).
		WHERE(table.BotSubscribers.ChatID.EQ(sqlite.Int(sub.ChatID))).
		Query(s.db, &existing)
	if err == nil {
		// already subscribed
		return nil
	}
	if !errors.Is(err, qrm.ErrNoRows) {
		return err
	}
	_, err = table.BotSubscribers.
		INSERT(table.BotSubscribers.AllColumns).
		MODEL(convertSubscriberFromDomain(sub)).
		Exec(s.db)
	return err
}

func (s *Storage) Unsubscribe(chatID int64) error {
	_, err := table.BotSubscribers.
		DELETE().
		WHERE(table.BotSubscribers.ChatID.EQ(sqlite.Int(chatID))).
		Exec(s.db)
	return err
}

func convertSubscriberFromDomain(sub model.Subscriber) dbmodel.BotSubscribers {
	return dbmodel.BotSubscribers{
		ChatID:    sub.ChatID,
		FirstName: sub.FirstName,
		Username:  sub.Username,
		CreatedAt: sub.CreatedAt,
	}
}

func convertSubscriberToDomain(sub dbmodel.BotSubscribers) model.Subscriber {
	return model.Subscriber{
		ChatID:    sub.ChatID,
		FirstName: sub.FirstName,
		Username:  sub.Username,
		CreatedAt: sub.CreatedAt,
	}
}
