package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/theirongolddev/finboard/internal/api"
	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/config"
	"github.com/theirongolddev/finboard/internal/logger"
	"github.com/theirongolddev/finboard/internal/notify"
	"github.com/theirongolddev/finboard/internal/schedule"
	"github.com/theirongolddev/finboard/internal/session"
	"github.com/theirongolddev/finboard/internal/store"

	"github.com/spf13/cobra"
)

// app is the per-invocation wiring shared by every command.
type app struct {
	cfg    config.Config
	client *api.Client
	log    *logger.Logger
	notes  notify.Notifier
	timers *schedule.Timers
	kv     *store.KV
	nav    *navigator
	out    io.Writer
}

// navigator tracks the command being run as the current location. A
// login redirect becomes a hint on stderr.
type navigator struct {
	mu      sync.Mutex
	loc     string
	w       io.Writer
	visited []string
}

func (n *navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loc
}

func (n *navigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.loc = path
	n.visited = append(n.visited, path)
	if path == api.LoginPath {
		fmt.Fprintln(n.w, "  Run `finboard login` to sign in again.")
	}
}

func loadConfig() (config.Config, error) {
	if err := config.LoadDotEnv(flagEnvFile); err != nil {
		return config.Config{}, err
	}
	env := flagEnv
	if env == "" {
		env = buildEnv
	}
	cfg, err := config.Load(env)
	if err != nil {
		return cfg, err
	}
	config.ApplyEnv(&cfg)
	if flagEnv != "" {
		cfg.API.Environment = flagEnv
	}
	if flagBaseURL != "" {
		cfg.API.BaseURL = flagBaseURL
	}
	return cfg, nil
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	baseURL, err := config.ResolveBaseURL(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.Nop()
	if flagVerbose && !flagQuiet {
		log = logger.Console(cfg.API.Environment)
	}

	kv, err := store.Open(config.SessionPath())
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	cli.Apply(cli.ByName(cfg.Appearance.Theme))

	var notes notify.Notifier = notify.NewTerminal(os.Stderr, cli.Active().Palette())
	if flagQuiet || !cfg.Notifications.Enabled {
		notes = notify.Discard
	}

	a := &app{
		cfg:    cfg,
		log:    log,
		notes:  notes,
		timers: &schedule.Timers{},
		kv:     kv,
		nav:    &navigator{loc: "/" + cmd.Name(), w: os.Stderr},
		out:    cmd.OutOrStdout(),
	}
	a.client = api.New(api.Config{
		BaseURL:       baseURL,
		Timeout:       cfg.API.Timeout(),
		UploadTimeout: cfg.API.UploadTimeout(),
	},
		api.WithStore(session.NewDurable(kv)),
		api.WithNotifier(notes),
		api.WithNavigator(a.nav),
		api.WithScheduler(a.timers),
		api.WithLogger(log),
		api.WithNotFoundNotices(cfg.Notifications.NotFound),
	)
	a.client.RestoreSession(time.Now())
	return a, nil
}

// close waits for a pending login redirect, then releases the store.
func (a *app) close() {
	a.timers.Wait()
	if err := a.kv.Close(); err != nil {
		a.log.Warn("closing session store", logger.F("error", err.Error()))
	}
}

func (a *app) money(amount float64) string {
	return cli.FormatMoney(amount, a.cfg.Currency.Symbol)
}

// run adapts a command body to cobra, building and tearing down the app
// around it. The context is cancelled on interrupt.
func run(fn func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return fn(ctx, a, args)
	}
}
