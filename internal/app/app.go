package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/iamdavidjackson/prototype-base/internal/analytics"
	"github.com/iamdavidjackson/prototype-base/internal/backend"
	"github.com/iamdavidjackson/prototype-base/internal/config"
	"github.com/iamdavidjackson/prototype-base/internal/dom"
	"github.com/iamdavidjackson/prototype-base/internal/logging"
	"github.com/iamdavidjackson/prototype-base/internal/media"
	"github.com/iamdavidjackson/prototype-base/internal/module"
	"github.com/iamdavidjackson/prototype-base/internal/page"
)

// maxNotes bounds the status area.
const maxNotes = 10

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. It is watched for
	// changes while the application runs.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// Legacy forces the legacy body class when true.
	Legacy bool

	// Markup is the page document. DefaultMarkup is used when empty.
	Markup string

	// LogOutput replaces the configured log file when non-nil.
	LogOutput io.Writer

	// Env resolves environment variables. Defaults to os.LookupEnv.
	Env config.LookupFunc
}

// Application owns one page, its modules and the host loop.
type Application struct {
	mu sync.Mutex

	opts    Options
	cfg     config.Config
	logger  zerolog.Logger
	logFile io.Closer

	page     *page.Page
	registry *module.Registry
	tagger   *analytics.Tagger
	mounted  []module.Mounted
	backend  backend.Host
	notes    []string

	running      atomic.Bool
	cancel       context.CancelFunc
	watchDone    chan struct{}
	shutdownOnce sync.Once
}

// New loads configuration, sets up logging and builds the page. Modules
// are mounted when Run starts.
func New(opts Options) (*Application, error) {
	if opts.Env == nil {
		opts.Env = os.LookupEnv
	}
	if opts.Markup == "" {
		opts.Markup = DefaultMarkup
	}

	a := &Application{opts: opts}
	cfg, err := config.Load(a.configOptions()...)
	if err != nil {
		return nil, &OperationError{Op: "load config", Target: opts.ConfigPath, Err: err}
	}
	a.cfg = cfg

	out := opts.LogOutput
	if out == nil {
		out = io.Discard
		if cfg.Log.File != "" {
			f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, &OperationError{Op: "open log", Target: cfg.Log.File, Err: err}
			}
			out = f
			a.logFile = f
		}
	}
	// The logger passes everything; the global level filters.
	a.logger = logging.New(logging.Config{Level: zerolog.TraceLevel, Timestamp: true, NoColor: true, Output: out})
	a.applyLevel(cfg.Log.Level)

	markup := opts.Markup
	if cfg.Viewport.Legacy {
		markup = withLegacyBody(markup)
	}
	doc, err := dom.ParseString(markup)
	if err != nil {
		a.closeLog()
		return nil, &OperationError{Op: "parse markup", Err: err}
	}

	vp := media.NewViewport(media.WithPixelsPerEm(cfg.Breakpoints.PxPerEm))
	pageOpts := append(cfg.PageOptions(), page.WithLogger(a.logger))
	a.page = page.New(vp, doc, pageOpts...)

	a.tagger = analytics.NewTagger("", analytics.LogBeacon{Logger: a.logger.With().Str("component", "analytics").Logger()})
	a.registry = module.NewRegistry()
	if err := registerModules(a.registry, a.tagger, a.note); err != nil {
		a.closeLog()
		return nil, err
	}

	a.logger.Info().
		Str("config", opts.ConfigPath).
		Int("medium_min", cfg.Breakpoints.MediumMin).
		Int("large_min", cfg.Breakpoints.LargeMin).
		Bool("legacy", cfg.Viewport.Legacy).
		Msg("application created")
	return a, nil
}

// configOptions returns the loader layers for a.opts.
func (a *Application) configOptions() []config.Option {
	opts := []config.Option{config.WithEnv(a.opts.Env), config.WithOverride(a.applyFlags)}
	if a.opts.ConfigPath != "" {
		opts = append([]config.Option{config.WithFile(a.opts.ConfigPath)}, opts...)
	}
	return opts
}

func (a *Application) applyFlags(c *config.Config) {
	if a.opts.LogLevel != "" {
		c.Log.Level = a.opts.LogLevel
	}
	if a.opts.Legacy {
		c.Viewport.Legacy = true
	}
}

func (a *Application) applyLevel(name string) {
	if lvl, ok := logging.ParseLevel(name); ok {
		logging.SetLevel(lvl)
	}
}

// Config returns the configuration the application was built with.
func (a *Application) Config() config.Config {
	return a.cfg
}

// Page returns the application's page.
func (a *Application) Page() *page.Page {
	return a.page
}

// Mounted returns the modules mounted by Run.
func (a *Application) Mounted() []module.Mounted {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]module.Mounted(nil), a.mounted...)
}

// Notes returns the status messages, oldest first.
func (a *Application) Notes() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.notes...)
}

// SetBackend sets the host the application runs on.
func (a *Application) SetBackend(h backend.Host) error {
	if a.running.Load() {
		return ErrAlreadyRunning
	}
	a.backend = h
	return nil
}

// Run mounts the modules and blocks in the host loop until quit, context
// cancellation or Shutdown. A quit request is returned as ErrQuit.
func (a *Application) Run(ctx context.Context) error {
	if a.backend == nil {
		return ErrNoBackend
	}
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var watchDone chan struct{}
	if a.opts.ConfigPath != "" {
		watchDone = make(chan struct{})
	}
	a.mu.Lock()
	a.cancel = cancel
	a.watchDone = watchDone
	a.mu.Unlock()

	if watchDone != nil {
		go func() {
			defer close(watchDone)
			a.watchConfig(ctx)
		}()
		defer func() {
			cancel()
			<-watchDone
		}()
	}

	loop := &backend.Loop{
		Host:   a.backend,
		Page:   a.page,
		Quit:   isQuit,
		Start:  a.mount,
		Render: a.render,
		Logger: a.logger,
	}
	err := loop.Run(ctx)
	a.logger.Info().Err(err).Msg("loop stopped")
	return err
}

func (a *Application) mount(ctx context.Context) error {
	mounted, err := a.registry.Mount(ctx, a.page)
	a.mu.Lock()
	a.mounted = mounted
	a.mu.Unlock()
	if err != nil {
		return &OperationError{Op: "mount", Err: err}
	}
	a.logger.Info().Int("modules", len(mounted)).Msg("modules mounted")
	return nil
}

// watchConfig reloads the config file and applies the log level. Other
// settings need a restart.
func (a *Application) watchConfig(ctx context.Context) {
	err := config.Watch(ctx, a.opts.ConfigPath, func(cfg config.Config, err error) {
		if err != nil {
			a.logger.Warn().Err(err).Msg("config reload failed")
			return
		}
		a.applyLevel(cfg.Log.Level)
		a.logger.Info().Str("level", cfg.Log.Level).Msg("config reloaded")
	}, a.configOptions()...)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Warn().Err(err).Msg("config watch stopped")
	}
}

// Shutdown stops the loop and the config watcher, tears the page down and
// closes the log file. It is safe to call more than once.
func (a *Application) Shutdown() {
	a.shutdownOnce.Do(func() {
		a.mu.Lock()
		cancel := a.cancel
		watchDone := a.watchDone
		a.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		if watchDone != nil {
			<-watchDone
		}
		if err := a.page.Close(context.Background()); err != nil {
			a.logger.Warn().Err(err).Msg("page close")
		}
		a.logger.Info().Msg("shutdown")
		a.closeLog()
	})
}

func (a *Application) closeLog() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

func (a *Application) note(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Debug().Msg(msg)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.notes = append(a.notes, msg)
	if len(a.notes) > maxNotes {
		a.notes = a.notes[len(a.notes)-maxNotes:]
	}
}

func (a *Application) render(h backend.Host) {
	h.DrawText(0, 0, "prototype-base   q quit   n next link")

	state := "none"
	supported := false
	if engine, err := a.page.Breakpoints(); err == nil {
		if st, ok := engine.Current(); ok {
			state = st.String()
		}
		supported = engine.Supported()
	}
	h.DrawText(0, 1, fmt.Sprintf("viewport %dpx   breakpoint %s   media queries %t",
		a.page.Viewport().Width(), state, supported))

	for i, n := range a.Notes() {
		h.DrawText(0, 3+i, n)
	}
}

func isQuit(ev backend.Event) bool {
	if ev.Type != backend.EventKey {
		return false
	}
	return ev.Rune == 'q' || ev.Key == "Ctrl+C"
}
