package tgbot

import (
	"dartserver/bot/botstorage"
	"dartserver/bot/model"
)

type UnsubCommand struct {
	botStorage botstorage.BotStorage
	unsub      func(int64)
}

func (c *UnsubCommand) Run(sub model.Subscriber, _ string) (string, error) {
	err := c.botStorage.Unsubscribe(sub.ChatID)
	if err != nil {
		return "", err
	}
	c.unsub(sub.ChatID)
	return "Unsubscribed. To get match results again: /sub", nil
}

func (c *UnsubCommand) Help() string {
	return "stop match announcements"
}
