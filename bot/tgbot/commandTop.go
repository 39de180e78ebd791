package tgbot

import (
	"fmt"
	"strings"

	"dartserver/bot/model"
	"dartserver/internal/service"
)

type TopCommand struct {
	playerService *service.PlayerService
}

const topListSize = 10

func (c *TopCommand) Run(_ model.Subscriber, _ string) (string, error) {
	rated, err := c.playerService.GetRatings()
	if err != nil {
		return "", err
	}
	if len(rated) == 0 {
		return "No players yet.", nil
	}
	var sb strings.Builder
	sb.WriteString("Rating top:\n")
	for i, p := range rated {
		if i >= topListSize {
			break
		}
		fmt.Fprintf(&sb, "%d. %s (%d), %d games\n", p.RatingRank, p.Name, p.Rating, p.GamesPlayed)
	}
	return sb.String(), nil
}

func (c *TopCommand) Help() string {
	return "show the rating top"
}
