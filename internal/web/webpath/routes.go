package webpath

const (
	Home    = "/"
	Login   = "/login"
	Logout  = "/logout"
	Matches = "/matches-list"
	Players = "/players"
	New     = "/new"
	Game    = "/game/:code"
	Join    = "/join"

	Api          = "/api"
	ApiPlayers   = Api + "/players"
	ApiRatings   = Api + "/ratings"
	ApiMatches   = Api + "/matches"
	ApiGame      = Api + "/game/:code"
	ApiGameInput = Api + "/game/:code/input"
)

func Path() map[string]string {
	return map[string]string{
		"Home":       Home,
		"Login":      Login,
		"Logout":     Logout,
		"Matches":    Matches,
		"Players":    Players,
		"New":        New,
		"Join":       Join,
		"Api":        Api,
		"ApiPlayers": ApiPlayers,
		"ApiRatings": ApiRatings,
		"ApiMatches": ApiMatches,
	}
}

// GamePath resolves the scoreboard page for a connection code.
func GamePath(code string) string {
	return "/game/" + code
}
