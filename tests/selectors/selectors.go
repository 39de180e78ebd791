package sel

const (
	Heading = "h1"

	LoginFormPassword = "#password-field"
	LoginFormSubmit   = "#login-form-submit"

	NewPlayerFormName   = "#new-player-form-name"
	NewPlayerFormSubmit = "#new-player-form-submit"

	NewMatchFormHome   = "#new-match-form-home"
	NewMatchFormAway   = "#new-match-form-away"
	NewMatchFormSubmit = "#new-match-form-submit"
)
