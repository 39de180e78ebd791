package tgbot

import (
	"dartserver/bot/botstorage"
	"dartserver/bot/model"
)

type SubCommand struct {
	botStorage botstorage.BotStorage
	sub        func(int64)
}

func (c *SubCommand) Run(sub model.Subscriber, _ string) (string, error) {
	err := c.botStorage.Subscribe(sub)
	if err != nil {
		return "", err
	}
	c.sub(sub.ChatID)
	return "Subscribed, you will get match results here. To stop: /unsub", nil
}

func (c *SubCommand) Help() string {
	return "subscribe to match announcements"
}
