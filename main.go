package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"safelogist/internal/config"
	"safelogist/internal/eventbus"
	"safelogist/internal/logging"
	"safelogist/internal/lookup"
	"safelogist/internal/search"
	"safelogist/internal/ui"
)

var version = "dev"

// rootOptions holds the flags shared by all commands
type rootOptions struct {
	configPath string
	endpoint   string
	logLevel   string
	locale     string
	basePath   string
	siteURL    string

	debounce   time.Duration
	minLength  int
	limit      int
	closeDelay time.Duration
	navMode    string
	logFile    string
	saveConfig bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&rootOptions{})
}

func buildRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safelogist",
		Short: "Live company search for SafeLogist reviews",
		Long: `safelogist opens an incremental company search box in the terminal.

Typing two or more characters looks companies up after a short pause. Pick a
result to open its review page, or press Enter to open the full search page.

Example usage:
  safelogist                                   # search against the configured endpoint
  safelogist --nav-mode print                  # print the chosen URL and exit
  safelogist lookup acme                       # one-shot lookup as a table
  safelogist serve --addr :8080 --latency 200ms  # local lookup endpoint`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/safelogist/config.toml)")
	pf.StringVar(&opts.endpoint, "endpoint", "", "company lookup endpoint URL")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	pf.StringVar(&opts.locale, "locale", "", "locale prefix of page paths, e.g. ru or en")
	pf.StringVar(&opts.basePath, "base-path", "", "page path prefix, overrides locale and section")
	pf.StringVar(&opts.siteURL, "site-url", "", "site origin used to print absolute URLs")

	f := cmd.Flags()
	f.DurationVar(&opts.debounce, "debounce", 0, "pause after typing before a lookup")
	f.IntVar(&opts.minLength, "min-length", 0, "minimum query length in characters")
	f.IntVar(&opts.limit, "limit", 0, "maximum suggestions per lookup")
	f.DurationVar(&opts.closeDelay, "close-delay", 0, "delay before a closed dropdown drops its results")
	f.StringVar(&opts.navMode, "nav-mode", "", "what opening a page does: pager or print")
	f.StringVar(&opts.logFile, "log-file", "", "log file of the interactive search")
	f.BoolVar(&opts.saveConfig, "save-config", false, "write the effective configuration back to the config file")

	cmd.AddCommand(newLookupCmd(opts), newServeCmd(opts))
	return cmd
}

// loadConfig reads the config file and applies the flags the user set
func loadConfig(cmd *cobra.Command, opts *rootOptions, bus eventbus.EventBus) (*config.Config, config.ConfigService, error) {
	svc := config.NewConfigServiceWithBus(opts.configPath, bus)
	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("endpoint") {
		cfg.Endpoint.URL = opts.endpoint
	}
	if changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if changed("locale") {
		cfg.Navigation.Locale = opts.locale
	}
	if changed("base-path") {
		cfg.Navigation.BasePath = opts.basePath
	}
	if changed("site-url") {
		cfg.Navigation.SiteURL = opts.siteURL
	}
	if changed("debounce") {
		cfg.Search.DebounceMs = int(opts.debounce / time.Millisecond)
	}
	if changed("min-length") {
		cfg.Search.MinQueryLength = opts.minLength
	}
	if changed("limit") {
		cfg.Search.Limit = opts.limit
	}
	if changed("close-delay") {
		cfg.Search.CloseDelayMs = int(opts.closeDelay / time.Millisecond)
	}
	if changed("nav-mode") {
		cfg.Navigation.Mode = opts.navMode
	}
	if changed("log-file") {
		cfg.Log.File = opts.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, svc, nil
}

func newLookupClient(cfg *config.Config) (*lookup.Client, error) {
	return lookup.NewClient(cfg.Endpoint.URL,
		lookup.WithTimeout(cfg.RequestTimeout()),
		lookup.WithUserAgent("safelogist/"+version),
	)
}

func runSearch(cmd *cobra.Command, opts *rootOptions) error {
	bus := eventbus.New()
	defer bus.Close()

	cfg, svc, err := loadConfig(cmd, opts, bus)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file
	closer, err := logging.Init(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Service: "safelogist",
	})
	if err != nil {
		return err
	}
	defer closer.Close()
	// drain the bus before the log file closes
	defer bus.Close()
	defer eventbus.LogEvents(bus, logging.Component("events"))()

	log := logging.Get()
	log.Info().Str("config", svc.Path()).Str("endpoint", cfg.Endpoint.URL).
		Str("base_path", cfg.BasePath()).Str("nav_mode", cfg.Navigation.Mode).Msg("starting search")

	if opts.saveConfig {
		if err := svc.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	client, err := newLookupClient(cfg)
	if err != nil {
		return err
	}

	modelOpts := []ui.ModelOption{ui.WithBus(bus)}
	var nav ui.Navigator
	var pager *ui.PagerNavigator
	if cfg.Navigation.Mode == "print" {
		nav = &ui.RecordNavigator{}
		modelOpts = append(modelOpts, ui.WithQuitOnNavigate())
	} else {
		pager = ui.NewPagerNavigator(client, cfg.BasePath(), cfg.Navigation.SiteURL, cfg.Navigation.PageLimit)
		nav = pager
	}

	ctx, stop := commandContext(cmd)
	defer stop()

	model := ui.NewModel(cfg, client, nav, modelOpts...)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if pager != nil {
		pager.SetProgram(p)
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error().Err(err).Msg("program failed")
		return fmt.Errorf("running program: %w", err)
	}
	log.Info().Msg("search exited")

	if route, ok := model.LastRoute(); ok && cfg.Navigation.Mode == "print" {
		fmt.Fprintln(cmd.OutOrStdout(), search.AbsoluteURL(cfg.Navigation.SiteURL, route))
	}
	return nil
}

// commandContext returns a context cancelled on interrupt
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
