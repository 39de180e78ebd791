package web

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	embedded "dartserver"
	"dartserver/internal/config"
	"dartserver/internal/service"
	"dartserver/internal/web/webpath"
	"dartserver/internal/x01"

	"github.com/google/uuid"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
)

type Server struct {
	players *service.PlayerService
	matches *service.MatchService
	auth    scorerAuth
	app     *fiber.App
	cfg     config.Config
}

func New(players *service.PlayerService, matches *service.MatchService, cfg config.Config) (*Server, error) {
	server := Server{
		players: players,
		matches: matches,
		auth:    scorerAuth{cfg: cfg.Auth},
		cfg:     cfg,
	}

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Server.Debug)
	engine.Debug(cfg.Server.Debug)
	engine.AddFunc("FormatDate", formatDate)

	app := fiber.New(fiber.Config{
		Views: engine,
	})

	app.Get(webpath.Login, server.handleLoginGet)
	app.Post(webpath.Login, server.handleLoginPost)
	app.Get(webpath.Logout, server.handleLogout)

	app.Get(webpath.Home, server.handleRatings)
	app.Get(webpath.Matches, server.handleMatches)
	app.Get(webpath.Players, server.handlePlayersGet)
	app.Post(webpath.Players, server.requireScorer, server.handlePlayersPost)
	app.Get(webpath.New, server.requireScorer, server.handleNewMatchGet)
	app.Post(webpath.New, server.requireScorer, server.handleNewMatchPost)
	app.Post(webpath.Join, server.handleJoin)
	app.Get(webpath.Game, server.handleGamePage)

	app.Get(webpath.ApiPlayers, server.handleApiPlayers)
	app.Get(webpath.ApiRatings, server.handleApiRatings)
	app.Get(webpath.ApiGame, server.handleApiGame)
	app.Post(webpath.ApiMatches, server.requireScorer, server.handleApiCreateMatch)
	app.Post(webpath.ApiGameInput, server.requireScorer, server.handleGameInput)

	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	return s.app.Listen(s.cfg.Server.Host + ":" + strconv.Itoa(s.cfg.Server.Port))
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// scorer reports whether the request carries a valid scorer session.
func (s *Server) scorer(ctx *fiber.Ctx) bool {
	return s.auth.Verify(ctx.Cookies("token")) == nil
}

func (s *Server) requireScorer(ctx *fiber.Ctx) error {
	if err := s.auth.Verify(ctx.Cookies("token")); err != nil {
		if ctx.Accepts("html", "json") == "json" {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		return ctx.Redirect(webpath.Login)
	}
	return ctx.Next()
}

func (s *Server) handleLoginGet(ctx *fiber.Ctx) error {
	return ctx.Render("login", newData("Scorer login"), "layouts/main")
}

func (s *Server) handleLoginPost(ctx *fiber.Ctx) error {
	if err := s.auth.Login(ctx.FormValue("password")); err != nil {
		return ctx.Render("login", newData("Scorer login").WithErrors(err), "layouts/main")
	}
	cookie, err := s.auth.GenerateJWTCookie(s.cfg.Server.Host)
	if err != nil {
		return err
	}
	ctx.Cookie(cookie)
	return ctx.Redirect(webpath.Home)
}

func (s *Server) handleLogout(ctx *fiber.Ctx) error {
	ctx.ClearCookie("token")
	return ctx.Redirect(webpath.Home)
}

func (s *Server) handleRatings(ctx *fiber.Ctx) error {
	rated, err := s.players.GetRatings()
	if err != nil {
		return err
	}
	return ctx.Render("index", newData("Ratings").
		WithScorer(s.scorer(ctx)).
		With("Button", "rating").
		With("Players", rated), "layouts/main")
}

func (s *Server) handleMatches(ctx *fiber.Ctx) error {
	matches, err := s.players.GetMatches()
	if err != nil {
		return err
	}
	return ctx.Render("matches", newData("Match history").
		WithScorer(s.scorer(ctx)).
		With("Button", "matches").
		With("Matches", matches), "layouts/main")
}

func (s *Server) handlePlayersGet(ctx *fiber.Ctx) error {
	players, err := s.players.ListPlayers()
	if err != nil {
		return err
	}
	return ctx.Render("players", newData("Players").
		WithScorer(s.scorer(ctx)).
		With("Button", "players").
		With("Players", players), "layouts/main")
}

func (s *Server) handlePlayersPost(ctx *fiber.Ctx) error {
	if _, err := s.players.CreatePlayer(ctx.FormValue("name")); err != nil {
		return err
	}
	return ctx.Redirect(webpath.Players)
}

func (s *Server) handleNewMatchGet(ctx *fiber.Ctx) error {
	players, err := s.players.ListPlayers()
	if err != nil {
		return err
	}
	return ctx.Render("newMatch", newData("New match").
		WithScorer(true).
		With("Players", players).
		With("Defaults", s.cfg.Match.Defaults()), "layouts/main")
}

func (s *Server) handleNewMatchPost(ctx *fiber.Ctx) error {
	req, err := s.matchRequestFromForm(ctx)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	active, err := s.matches.Create(req.Home, req.Away, req.Settings)
	if err != nil {
		return err
	}
	return ctx.Redirect(webpath.GamePath(active.Code))
}

func (s *Server) matchRequestFromForm(ctx *fiber.Ctx) (createMatch, error) {
	home, err := uuid.Parse(ctx.FormValue("home"))
	if err != nil {
		return createMatch{}, ErrMissingPlayer
	}
	away, err := uuid.Parse(ctx.FormValue("away"))
	if err != nil {
		return createMatch{}, ErrMissingPlayer
	}
	settings := s.cfg.Match.Defaults()
	if v, err := strconv.Atoi(ctx.FormValue("startScore")); err == nil && v > 0 {
		settings.StartScore = v
	}
	if v, err := strconv.Atoi(ctx.FormValue("legs")); err == nil && v > 0 {
		settings.TotalLegs = v
	}
	if v, err := strconv.Atoi(ctx.FormValue("sets")); err == nil && v > 0 {
		settings.TotalSets = v
	}
	settings.FinishMode = x01.StraightOut
	if ctx.FormValue("doubleOut") == "on" {
		settings.FinishMode = x01.DoubleOut
	}
	if ctx.FormValue("starter") == "away" {
		settings.FirstStarter = x01.Player2
	}
	return createMatch{Home: home, Away: away, Settings: settings}, nil
}

func (s *Server) handleJoin(ctx *fiber.Ctx) error {
	code := ctx.FormValue("code")
	if _, err := s.matches.Resume(code); err != nil {
		if errors.Is(err, service.ErrMatchNotFound) {
			return ctx.Render("index", newData("Ratings").
				WithScorer(s.scorer(ctx)).
				WithErrors(err), "layouts/main")
		}
		return err
	}
	return ctx.Redirect(webpath.GamePath(code))
}

func (s *Server) handleGamePage(ctx *fiber.Ctx) error {
	code := ctx.Params("code")
	active, err := s.matches.Resume(code)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}
	return ctx.Render("game", newData("Game "+code).
		WithScorer(s.scorer(ctx)).
		With("Code", code).
		With("Home", active.Home).
		With("Away", active.Away).
		With("State", active.State).
		With("QuickScores", quickScores).
		With("MirrorEnabled", s.cfg.Mirror.Enabled), "layouts/main")
}

func (s *Server) handleApiPlayers(ctx *fiber.Ctx) error {
	players, err := s.players.ListPlayers()
	if err != nil {
		return err
	}
	return ctx.JSON(players)
}

func (s *Server) handleApiRatings(ctx *fiber.Ctx) error {
	rated, err := s.players.GetRatings()
	if err != nil {
		return err
	}
	return ctx.JSON(rated)
}

func (s *Server) handleApiGame(ctx *fiber.Ctx) error {
	snap, err := s.matches.Current(ctx.Params("code"))
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(snap)
}

func (s *Server) handleApiCreateMatch(ctx *fiber.Ctx) error {
	var req createMatch
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.Settings == (x01.Settings{}) {
		req.Settings = s.cfg.Match.Defaults()
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	active, err := s.matches.Create(req.Home, req.Away, req.Settings)
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(fiber.Map{"code": active.Code})
}

type turnResult struct {
	Outcome x01.Outcome `json:"outcome"`
	Total   int         `json:"total"`
	Caption string      `json:"caption,omitempty"`
}

type gameResponse struct {
	Result *turnResult    `json:"result,omitempty"`
	Undo   x01.UndoResult `json:"undo,omitempty"`
	State  x01.Snapshot   `json:"state"`
}

func (s *Server) handleGameInput(ctx *fiber.Ctx) error {
	code := ctx.Params("code")
	var in gameInput
	if err := ctx.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := in.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var (
		resp gameResponse
		res  x01.Result
		snap x01.Snapshot
		err  error
	)
	switch in.Action {
	case actionDigit:
		snap, err = s.matches.Digit(code, in.digit())
	case actionDart:
		snap, err = s.matches.AddDart(code)
	case actionMultiply:
		res, snap, err = s.matches.Multiply(code)
		resp.Result = &turnResult{Outcome: res.Outcome, Total: res.Total, Caption: res.Caption}
	case actionZero:
		res, snap, err = s.matches.AppendZero(code)
		resp.Result = &turnResult{Outcome: res.Outcome, Total: res.Total, Caption: res.Caption}
	case actionMiss:
		res, snap, err = s.matches.Miss(code)
		resp.Result = &turnResult{Outcome: res.Outcome, Total: res.Total, Caption: res.Caption}
	case actionConfirm:
		res, snap, err = s.matches.Confirm(code)
		resp.Result = &turnResult{Outcome: res.Outcome, Total: res.Total, Caption: res.Caption}
	case actionQuick:
		res, snap, err = s.matches.QuickScore(code, in.Total)
		resp.Result = &turnResult{Outcome: res.Outcome, Total: res.Total, Caption: res.Caption}
	case actionCheckout:
		res, snap, err = s.matches.Checkout(code, in.Darts, in.OnDouble)
		resp.Result = &turnResult{Outcome: res.Outcome, Total: res.Total, Caption: res.Caption}
	case actionBust:
		snap, err = s.matches.Bust(code)
	case actionUndo:
		resp.Undo, snap, err = s.matches.Undo(code)
	case actionEdit:
		snap, err = s.matches.EnterEdit(code, in.player(), in.Turn)
	case actionApplyEdit:
		res, snap, err = s.matches.ApplyEdit(code)
		resp.Result = &turnResult{Outcome: res.Outcome, Total: res.Total, Caption: res.Caption}
	case actionContinue:
		snap, err = s.matches.Continue(code)
	case actionForfeit:
		snap, err = s.matches.Forfeit(code, in.player(), in.Draw)
	case actionStarter:
		snap, err = s.matches.SetLegStarter(code, in.player())
	case actionSettings:
		err = s.matches.UpdateSettings(code, *in.Settings)
		if err == nil {
			snap, err = s.matches.Current(code)
		}
	default:
		return fiber.NewError(fiber.StatusBadRequest, ErrUnknownAction.Error())
	}
	if err != nil {
		return mapServiceError(err)
	}
	resp.State = snap
	return ctx.JSON(resp)
}

// mapServiceError turns service failures into HTTP statuses.
func mapServiceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrMatchNotFound):
		return fiber.ErrNotFound
	case errors.Is(err, service.ErrConfirmPending):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPlayerNotFound):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, x01.ErrMatchOver),
		errors.Is(err, x01.ErrLegNotRunning),
		errors.Is(err, x01.ErrLegInProgress),
		errors.Is(err, x01.ErrNothingEntered),
		errors.Is(err, x01.ErrInvalidTotal),
		errors.Is(err, x01.ErrNotAwaitingDarts),
		errors.Is(err, x01.ErrTooFewDarts),
		errors.Is(err, x01.ErrBadTurnIndex),
		errors.Is(err, x01.ErrNotEditing),
		errors.Is(err, x01.ErrBadSettings),
		errors.Is(err, x01.ErrBadSnapshot),
		errors.Is(err, x01.ErrForfeitWinner),
		errors.Is(err, x01.ErrNoPendingResult):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}

// quickScores are the one-tap totals on the scorer keypad.
var quickScores = []int{26, 40, 41, 43, 45, 60, 81, 85, 100, 140, 180}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}
