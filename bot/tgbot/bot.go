package tgbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dartserver/bot/botstorage"
	botmodel "dartserver/bot/model"
	"dartserver/internal/config"
	"dartserver/internal/domain"
	"dartserver/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Bot struct {
	bot *tgbotapi.BotAPI

	botStorage botstorage.BotStorage
	log        *logrus.Entry

	// cancel func to stop the bot
	cancel func()

	subs mapset.Set[int64]

	commands *Commands
}

var ErrBadRequest = errors.New("unknown command, try /help")

func New(ps *service.PlayerService, bs botstorage.BotStorage, cfg config.Config, log *logrus.Logger) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TgBot.TelegramApiToken)
	if err != nil {
		return nil, fmt.Errorf("env TELEGRAM_APITOKEN: %w", err)
	}

	bot.Debug = cfg.Server.Debug
	_, err = bot.GetMe()
	if err != nil {
		return nil, err
	}
	subs := mapset.NewSet[int64]()
	subscribers, err := bs.ListSubscribers()
	if err != nil {
		return nil, err
	}
	for _, sub := range subscribers {
		subs.Add(sub.ChatID)
	}

	b := Bot{
		bot:        bot,
		botStorage: bs,
		log:        log.WithField("name", "tg_bot"),
		subs:       subs,
	}

	b.commands = NewCommands(
		ps,
		bs,
		func(id int64) { b.subs.Add(id) },
		func(id int64) { b.subs.Remove(id) },
	)

	return &b, nil
}

func (b *Bot) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			b.handleMessage(update)
		}
	}
}

func (b *Bot) handleMessage(update tgbotapi.Update) {
	if update.Message == nil { // ignore any non-Message updates
		return
	}
	tgUser := update.SentFrom()
	if tgUser == nil {
		return
	}
	log := b.log.WithFields(map[string]interface{}{
		"user_id": tgUser.ID,
		"text":    update.Message.Text,
	})

	sub := botmodel.Subscriber{
		ChatID:    update.Message.Chat.ID,
		FirstName: tgUser.FirstName,
		Username:  tgUser.UserName,
		CreatedAt: time.Now(),
	}

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	cmd, args := splitCommand(update.Message.Text)
	text, err := b.commands.RunCommand(sub, cmd, args)
	if err != nil {
		text = err.Error()
	}
	msg.Text = text
	if _, err := b.bot.Send(msg); err != nil {
		log.WithError(err).Error("send error")
	}
}

func splitCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd, args, _ := strings.Cut(strings.TrimPrefix(text, "/"), " ")
	// strip the @botname suffix used in group chats
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd, strings.TrimSpace(args)
}

func (b *Bot) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
}

// NotifyMatchFinished announces a finished match to every subscribed chat.
func (b *Bot) NotifyMatchFinished(m domain.MatchSummary) error {
	text := formatMatchResult(m)
	for _, chatID := range b.subs.ToSlice() {
		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := b.bot.Send(msg); err != nil {
			b.log.WithField("chat_id", chatID).WithError(err).Error("notification send error")
		}
	}
	return nil
}

func formatMatchResult(m domain.MatchSummary) string {
	var sb strings.Builder
	sb.WriteString("🎯 ")
	switch {
	case m.IsDraw():
		fmt.Fprintf(&sb, "%s and %s finished in a draw", m.Home.Name, m.Away.Name)
	default:
		loser := m.Away
		if m.Winner.ID == m.Away.ID {
			loser = m.Home
		}
		fmt.Fprintf(&sb, "%s beat %s", m.Winner.Name, loser.Name)
	}
	p1 := m.Result.Players[0]
	p2 := m.Result.Players[1]
	fmt.Fprintf(&sb, "\nSets %d:%d, legs %d:%d", p1.SetWins, p2.SetWins, p1.LegWins, p2.LegWins)
	fmt.Fprintf(&sb, "\nAverages: %.1f / %.1f", p1.MatchAvg, p2.MatchAvg)
	if m.Result.Forfeited {
		sb.WriteString("\nThe match was forfeited.")
	}
	return sb.String()
}
