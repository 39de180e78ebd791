package botstorage

import "dartserver/bot/model"

type BotStorage interface {
	ListSubscribers() ([]model.Subscriber, error)
	Subscribe(model.Subscriber) error
	Unsubscribe(chatID int64) error
}
