package tests

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	sel "dartserver/tests/selectors"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/suite"
)

const baseURL = "http://0.0.0.0:3000"

type TestSuite1 struct {
	suite.Suite
	process *Process
}

var (
	serverConfigPath string
	botConfigPath    string
)

func init() {
	flag.StringVar(&serverConfigPath, "server-config", "", "path to server configs")
	flag.StringVar(&botConfigPath, "bot-config", "", "path to bot configs")
}

func (s *TestSuite1) SetupSuite() {
	fmt.Println("setupSuite")
	s.Require().NotEmpty(serverConfigPath, "-server-config MUST be set")
	s.Require().NotEmpty(botConfigPath, "-bot-config MUST be set")
	p := NewProcess(context.Background(), "../bin/server",
		"-server-config", serverConfigPath,
		"-bot-config", botConfigPath)
	s.process = p
	err := p.Start(context.Background())
	if err != nil {
		s.T().Errorf("cant start process: %v", err)
	}

	if err := waitForStartup(time.Second * 5); err != nil {
		s.T().Fatalf("unable to start app: %v", err)
	}
}

func waitForStartup(duration time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	ticker := time.NewTicker(time.Second / 2)
	for {
		select {
		case <-ticker.C:
			r, _ := http.Get(baseURL + "/")
			if r != nil && r.StatusCode == http.StatusOK {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *TestSuite1) TearDownSuite() {
	fmt.Println("teardown Suite1")
	exitCode, err := s.process.Stop()
	if err != nil {
		s.T().Logf("cant stop process: %v", err)
	}
	// TODO clean DB files
	s.T().Logf("process finished with code %d", exitCode)
}

func (s *TestSuite1) TestHandlers() {
	ctx, cancelTimeout := context.WithTimeout(context.Background(), time.Second*20)
	defer cancelTimeout()

	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var heading string
	err := chromedp.Run(ctx,
		s.CheckGuestAccessGranted(baseURL+"/"),
		s.CheckGuestAccessGranted(baseURL+"/matches-list"),
		s.CheckGuestAccessGranted(baseURL+"/players"),
		s.CheckGuestAccessGranted(baseURL+"/login"),
		s.CheckGuestRedirectedToLogin(baseURL+"/new"),
		chromedp.Navigate(baseURL+"/"),
		chromedp.Text(sel.Heading, &heading),
	)
	if err != nil {
		s.T().Fatal(err.Error())
	}
	s.Equal("Ratings", heading)
}

func (s *TestSuite1) TestScorerFlow() {
	ctx, cancelTimeout := context.WithTimeout(context.Background(), time.Second*40)
	defer cancelTimeout()

	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var gameHeading string
	err := chromedp.Run(ctx,
		// scorer logs in with the password from the test config
		chromedp.Navigate(baseURL+"/login"),
		chromedp.WaitVisible(sel.LoginFormPassword),
		chromedp.SendKeys(sel.LoginFormPassword, "test"),
		chromedp.Click(sel.LoginFormSubmit),
		chromedp.WaitVisible(sel.Heading),

		// add two players
		s.CreatePlayer("Anna"),
		s.CreatePlayer("Boris"),

		// start a match between them
		chromedp.Navigate(baseURL+"/new"),
		chromedp.WaitVisible(sel.NewMatchFormSubmit),
		// pick different opponents, both selects default to the first player
		chromedp.Evaluate(`document.querySelector("`+sel.NewMatchFormAway+`").selectedIndex = 1`, nil),
		chromedp.Click(sel.NewMatchFormSubmit),
		chromedp.WaitVisible(sel.Heading),
		chromedp.Text(sel.Heading, &gameHeading),
	)
	if err != nil {
		s.T().Fatal(err.Error())
	}
	s.True(strings.HasPrefix(gameHeading, "Board "), "expected the game screen, got %q", gameHeading)
}

func (s *TestSuite1) CreatePlayer(name string) chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.Navigate(baseURL + "/players"),
		chromedp.WaitVisible(sel.NewPlayerFormName),
		chromedp.SendKeys(sel.NewPlayerFormName, name),
		chromedp.Click(sel.NewPlayerFormSubmit),
		chromedp.WaitVisible(sel.Heading),
	}
}

func (s *TestSuite1) CheckGuestAccessGranted(path string) chromedp.Tasks {
	return []chromedp.Action{
		chromedp.ActionFunc(func(ctx context.Context) error {
			resp, err := chromedp.RunResponse(ctx,
				chromedp.Navigate(path))
			if err != nil {
				return err
			}
			if resp.Status != http.StatusOK {
				s.T().Errorf("guests should be able to open %s (status 200), server answered %d", path, resp.Status)
			}
			return nil
		}),
	}
}

// CheckGuestRedirectedToLogin opens a scorer-only page without a session and
// expects to land on the login form.
func (s *TestSuite1) CheckGuestRedirectedToLogin(path string) chromedp.Tasks {
	return []chromedp.Action{
		chromedp.ActionFunc(func(ctx context.Context) error {
			resp, err := chromedp.RunResponse(ctx,
				chromedp.Navigate(path))
			if err != nil {
				return err
			}
			if resp.Status != http.StatusOK {
				s.T().Errorf("opening %s as a guest should end on the login page, server answered %d", path, resp.Status)
			}
			var location string
			if err := chromedp.Location(&location).Do(ctx); err != nil {
				return err
			}
			if !strings.HasSuffix(location, "/login") {
				s.T().Errorf("opening %s as a guest should redirect to /login, ended on %s", path, location)
			}
			return nil
		}),
	}
}
