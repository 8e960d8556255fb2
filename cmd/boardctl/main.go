// Command boardctl is a terminal client for a liteboard store: it logs in,
// manages projects and drives one board through the same mutation and
// transfer rules a graphical client uses.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"liteboard/internal/board"
	"liteboard/internal/config"
	"liteboard/internal/domain"
	"liteboard/internal/remote"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.root().ExecuteContext(ctx); err != nil {
		app.reportError(err)
		os.Exit(1)
	}
}

// app holds the global flags and the streams commands talk to.
type app struct {
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	url       string
	session   string
	profile   string
	project   int64
	assumeYes bool
	debug     bool

	logger *slog.Logger
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut}
}

func (a *app) root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "boardctl",
		Short:         "Kanban boards from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.debug {
				a.logger = config.NewLogger(a.errOut, false, true)
			} else {
				a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
			}
		},
	}
	cmd.SetIn(a.in)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.url, "url", "", "store URL (default from profile, then http://localhost:8080)")
	flags.StringVar(&a.session, "session", "", "session token (default from profile)")
	flags.StringVar(&a.profile, "profile", "", "profile file (default ~/.config/liteboard/profile.yaml)")
	flags.Int64VarP(&a.project, "project", "p", 0, "project id for board commands")
	flags.BoolVarP(&a.assumeYes, "yes", "y", false, "answer yes to confirmations")
	flags.BoolVar(&a.debug, "debug", false, "log requests and board reloads to stderr")

	cmd.AddGroup(
		&cobra.Group{ID: "session", Title: "Session:"},
		&cobra.Group{ID: "board", Title: "Board:"},
	)
	cmd.AddCommand(
		a.loginCmd(), a.logoutCmd(), a.whoamiCmd(),
		a.projectsCmd(), a.projectCmd(),
		a.boardCmd(), a.listCmd(), a.cardCmd(), a.moveCmd(),
	)
	return cmd
}

func (a *app) profilePath() (string, error) {
	if a.profile != "" {
		return a.profile, nil
	}
	return config.DefaultProfilePath()
}

// loadProfile merges the profile file with the --url and --session flags.
func (a *app) loadProfile() (*config.Profile, string, error) {
	path, err := a.profilePath()
	if err != nil {
		return nil, "", err
	}
	p, err := config.LoadProfile(path)
	if err != nil {
		return nil, "", err
	}
	if a.url != "" {
		p.URL = a.url
	}
	if a.session != "" {
		p.Session = a.session
	}
	return p, path, nil
}

func (a *app) client() (*remote.Client, error) {
	p, _, err := a.loadProfile()
	if err != nil {
		return nil, err
	}
	return a.clientFor(p)
}

func (a *app) clientFor(p *config.Profile) (*remote.Client, error) {
	return remote.New(p.URL,
		remote.WithLogger(a.logger),
		remote.WithSessionToken(p.Session),
		remote.WithSessionExpiredHook(func() {
			fmt.Fprintln(a.errOut, "Your session has expired. Run `boardctl login <username>` to sign in again.")
		}),
	)
}

// openBoard loads the board selected with --project.
func (a *app) openBoard(ctx context.Context) (*board.Board, error) {
	if a.project <= 0 {
		return nil, errors.New("--project is required")
	}
	c, err := a.client()
	if err != nil {
		return nil, err
	}
	b := board.New(c, a.project,
		board.WithLogger(a.logger),
		board.WithNotifier(func(msg string) { fmt.Fprintln(a.errOut, msg) }),
		board.WithConfirm(a.confirm),
	)
	if err := b.Load(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// reportError prints what has not been shown yet. Board sync failures were
// already reported through the notifier and an expired session through its hook.
func (a *app) reportError(err error) {
	var syncErr *board.SyncError
	if errors.As(err, &syncErr) || errors.Is(err, domain.ErrSessionExpired) {
		return
	}
	fmt.Fprintln(a.errOut, "Error:", err)
}
