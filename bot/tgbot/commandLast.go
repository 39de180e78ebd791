package tgbot

import (
	"fmt"
	"strings"

	"dartserver/bot/model"
	"dartserver/internal/service"
)

type LastCommand struct {
	playerService *service.PlayerService
}

const lastListSize = 5

func (c *LastCommand) Run(_ model.Subscriber, _ string) (string, error) {
	matches, err := c.playerService.GetMatches()
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "No matches played yet.", nil
	}
	var sb strings.Builder
	sb.WriteString("Recent matches:\n")
	for i, m := range matches {
		if i >= lastListSize {
			break
		}
		p1 := m.Result.Players[0]
		p2 := m.Result.Players[1]
		switch {
		case m.IsDraw():
			fmt.Fprintf(&sb, "%s - %s: draw\n", m.Home.Name, m.Away.Name)
		default:
			fmt.Fprintf(&sb, "%s - %s: %d:%d\n", m.Home.Name, m.Away.Name, p1.LegWins, p2.LegWins)
		}
	}
	return sb.String(), nil
}

func (c *LastCommand) Help() string {
	return "show recent match results"
}
