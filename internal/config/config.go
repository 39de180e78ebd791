package config

import (
	"os"

	"dartserver/internal/x01"

	"github.com/BurntSushi/toml"
)

type TgBot struct {
	TelegramApiToken string `toml:"telegram_api_token"`
	SqliteFile       string `toml:"sqlite_file"`
}

type Server struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	SqliteFile   string `toml:"sqlite_file"`
	TgBotEnabled bool   `toml:"tg_bot_enabled"`
	Debug        bool   `toml:"debug_mode"`
}

type Mirror struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

type Auth struct {
	ScorerPassword string `toml:"scorer_password"`
	Token          string `toml:"token"`
	Expiration     string `toml:"expiration"`
}

type Match struct {
	StartScore int  `toml:"start_score"`
	DoubleOut  bool `toml:"double_out"`
	Legs       int  `toml:"legs"`
	Sets       int  `toml:"sets"`
}

// Defaults builds the engine settings a new match starts from when the
// scorer doesn't override them.
func (m Match) Defaults() x01.Settings {
	s := x01.DefaultSettings()
	if m.StartScore > 0 {
		s.StartScore = m.StartScore
	}
	if !m.DoubleOut {
		s.FinishMode = x01.StraightOut
	}
	if m.Legs > 0 {
		s.TotalLegs = m.Legs
	}
	if m.Sets > 0 {
		s.TotalSets = m.Sets
	}
	return s
}

type Config struct {
	TgBot  TgBot
	Server Server
	Mirror Mirror
	Auth   Auth
	Match  Match
}

type serverFile struct {
	Server Server `toml:"server"`
	Mirror Mirror `toml:"mirror"`
	Auth   Auth   `toml:"auth"`
	Match  Match  `toml:"match"`
}

func New() (Config, error) {
	return NewFromFiles("configs/server.toml", "configs/bot.toml")
}

func NewFromFiles(serverPath, botPath string) (Config, error) {
	return parse(serverPath, botPath)
}

func parse(serverPath, botPath string) (Config, error) {
	var tgBotCfg TgBot
	_, err := toml.DecodeFile(botPath, &tgBotCfg)
	if err != nil {
		return Config{}, err
	}
	token := os.Getenv("TELEGRAM_APITOKEN")
	if token != "" {
		tgBotCfg.TelegramApiToken = token
	}

	var srv serverFile
	_, err = toml.DecodeFile(serverPath, &srv)
	if err != nil {
		return Config{}, err
	}
	if secret := os.Getenv("DARTSERVER_JWT_SECRET"); secret != "" {
		srv.Auth.Token = secret
	}
	if password := os.Getenv("DARTSERVER_SCORER_PASSWORD"); password != "" {
		srv.Auth.ScorerPassword = password
	}

	return Config{
		TgBot:  tgBotCfg,
		Server: srv.Server,
		Mirror: srv.Mirror,
		Auth:   srv.Auth,
		Match:  srv.Match,
	}, nil
}
