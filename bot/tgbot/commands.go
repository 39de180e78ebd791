package tgbot

import (
	"dartserver/bot/botstorage"
	"dartserver/bot/model"
	"dartserver/internal/service"
)

type Command interface {
	Run(sub model.Subscriber, args string) (string, error)
	Help() string
}

type Commands struct {
	list map[string]Command
}

func NewCommands(
	ps *service.PlayerService,
	bs botstorage.BotStorage,
	subFn func(id int64),
	unsubFn func(id int64),
) *Commands {
	hc := &HelpCommand{}
	uc := Commands{
		list: map[string]Command{
			"help":  hc,
			"start": hc,
			"top": &TopCommand{
				playerService: ps,
			},
			"last": &LastCommand{
				playerService: ps,
			},
			"sub": &SubCommand{
				botStorage: bs,
				sub:        subFn,
			},
			"unsub": &UnsubCommand{
				botStorage: bs,
				unsub:      unsubFn,
			},
		},
	}
	hc.commands = uc.list
	return &uc
}

func (uc *Commands) RunCommand(sub model.Subscriber, cmd string, args string) (string, error) {
	for s, command := range uc.list {
		if cmd == s {
			return command.Run(sub, args)
		}
	}
	return "", ErrBadRequest
}
