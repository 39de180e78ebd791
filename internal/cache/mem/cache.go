package mem

import (
	"sort"
	"sync"

	"dartserver/internal/domain"
	"dartserver/internal/normalize"
)

type Cache struct {
	mu      sync.RWMutex
	valid   bool
	players map[string]domain.Player
}

func New() *Cache {
	return &Cache{
		players: make(map[string]domain.Player),
	}
}

func (c *Cache) Update(players []domain.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.players = make(map[string]domain.Player)
	for i := range players {
		name := normalize.Name(players[i].Name)
		c.players[name] = players[i]
	}
	c.valid = true
}

func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}

func (c *Cache) Valid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.valid
}

func (c *Cache) GetPlayerByName(name string) (domain.Player, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	name = normalize.Name(name)
	player, ok := c.players[name]
	if !ok {
		return domain.Player{}, false
	}
	return player, true
}

func (c *Cache) ListPlayers() []domain.Player {
	c.mu.RLock()
	defer c.mu.RUnlock()

	players := make([]domain.Player, 0, len(c.players))
	for _, player := range c.players {
		players = append(players, player)
	}
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})
	return players
}
