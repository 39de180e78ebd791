package tgbot

import (
	"sort"
	"strings"

	"dartserver/bot/model"
)

type HelpCommand struct {
	commands map[string]Command
}

func (c *HelpCommand) Run(_ model.Subscriber, _ string) (string, error) {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	sb.WriteString("Darts scoreboard bot.\n")
	for _, name := range names {
		sb.WriteString("/" + name + " - " + c.commands[name].Help() + "\n")
	}
	return sb.String(), nil
}

func (c *HelpCommand) Help() string {
	return "show this help"
}
