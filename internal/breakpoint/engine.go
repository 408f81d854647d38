package breakpoint

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/iamdavidjackson/prototype-base/internal/event"
	"github.com/iamdavidjackson/prototype-base/internal/event/dispatch"
	"github.com/iamdavidjackson/prototype-base/internal/event/topic"
	"github.com/iamdavidjackson/prototype-base/internal/media"
	"github.com/iamdavidjackson/prototype-base/internal/scope"
)

var (
	statePattern = regexp.MustCompile(`^(small|medium|large)`)
	edgePattern  = regexp.MustCompile(`(entry|exit)$`)
)

// Engine is the breakpoint state machine. One engine serves a whole page.
type Engine struct {
	*event.Emitter

	host      media.Host
	bounds    Boundaries
	pxPerEm   float64
	supported bool
	queries   [len(States)]string
	lists     [len(States)]*media.QueryList
	watchers  [len(States)]media.ListenerID
	exec      *dispatch.Executor
	logger    zerolog.Logger
}

var (
	_ event.Target       = (*Engine)(nil)
	_ event.ListenerHook = (*Engine)(nil)
)

// New builds the engine's three queries and, when the host supports media
// queries, starts watching them.
func New(host media.Host, opts ...Option) (*Engine, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.bounds.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		Emitter: event.NewEmitter(
			event.WithSource("breakpoints"),
			event.WithPanicHandler(func(evt any, v any, _ []byte) {
				cfg.logger.Error().Interface("panic", v).Interface("event", evt).Msg("breakpoint handler panicked")
			}),
		),
		host:    host,
		bounds:  cfg.bounds,
		pxPerEm: cfg.pxPerEm,
		exec:    dispatch.NewExecutor(),
		logger:  cfg.logger,
	}
	e.supported = host.SupportsMediaQueries() && (cfg.probe == nil || cfg.probe())

	e.queries[Small] = fmt.Sprintf("(max-width: %s)", e.em(cfg.bounds.MediumMin-1))
	e.queries[Medium] = fmt.Sprintf("(min-width: %s) and (max-width: %s)", e.em(cfg.bounds.MediumMin), e.em(cfg.bounds.LargeMin-1))
	e.queries[Large] = fmt.Sprintf("(min-width: %s)", e.em(cfg.bounds.LargeMin))

	if !e.supported {
		e.logger.Info().Msg("media queries unsupported, viewport pinned to large")
		return e, nil
	}

	for _, st := range States {
		ql, err := host.MatchMedia(e.queries[st])
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("watch %s: %w", st, err)
		}
		e.lists[st] = ql
		e.watchers[st] = ql.AddListener(e.watch(st))
	}
	return e, nil
}

func (e *Engine) em(px int) string {
	return strconv.FormatFloat(float64(px)/e.pxPerEm, 'f', -1, 64) + "em"
}

// watch publishes S.entry or S.exit when state's query flips.
func (e *Engine) watch(st State) media.ListenerFunc {
	return func(ctx context.Context, c media.Change) error {
		edge := Exit
		if c.Matches {
			edge = Entry
		}
		e.logger.Debug().Str("state", st.String()).Str("edge", edge.String()).Msg("breakpoint transition")
		return e.Emit(ctx, Topic(st, edge), Transition{State: st, Edge: edge})
	}
}

// OnListenerAdded replays the current state to a new listener. The name
// must start with small, medium or large and end with entry or exit;
// anything else is ignored. With media-query support the state's query is
// evaluated live and h runs when an entry listener's state matches or an
// exit listener's state does not. Without support, only large entry and
// non-large exit listeners run.
func (e *Engine) OnListenerAdded(ctx context.Context, s scope.Subscriber, name topic.Topic, h event.Handler) error {
	m := statePattern.FindStringSubmatch(name.String())
	if m == nil {
		return nil
	}
	st, _ := ParseState(m[1])

	m = edgePattern.FindStringSubmatch(name.String())
	if m == nil {
		return nil
	}
	edge := Entry
	if m[1] == "exit" {
		edge = Exit
	}

	var fire bool
	if e.supported {
		matches := e.lists[st].Matches()
		fire = (matches && edge == Entry) || (!matches && edge == Exit)
	} else {
		fire = (edge == Entry && st == Large) || (edge == Exit && st != Large)
	}
	if !fire {
		return nil
	}

	e.logger.Debug().
		Str("owner", s.ScopeTag().String()).
		Str("state", st.String()).
		Str("edge", edge.String()).
		Msg("breakpoint replay")

	env := event.NewEnvelope(Topic(st, edge), Transition{State: st, Edge: edge, Replayed: true}, e.Source())
	res := e.exec.Execute(scope.WithSubscriber(ctx, s), env, h)
	if err := res.Err(); err != nil {
		return fmt.Errorf("replay %s: %w", env.Topic, err)
	}
	return nil
}

// OnListenerRemoved does nothing; the engine keeps no per-listener state.
func (e *Engine) OnListenerRemoved(context.Context, scope.Subscriber, topic.Topic) error {
	return nil
}

// Matches evaluates st's query live. Without media-query support only
// Large matches.
func (e *Engine) Matches(st State) bool {
	if !e.supported {
		return st == Large
	}
	return e.lists[st].Matches()
}

// Current returns the state whose query matches now. ok is false only if
// the host reports zero or several matching states.
func (e *Engine) Current() (st State, ok bool) {
	found := 0
	for _, s := range States {
		if e.Matches(s) {
			st = s
			found++
		}
	}
	return st, found == 1
}

// Query returns the media query text for st.
func (e *Engine) Query(st State) string {
	if int(st) >= len(e.queries) {
		return ""
	}
	return e.queries[st]
}

// Supported reports whether the engine tracks live media queries.
func (e *Engine) Supported() bool {
	return e.supported
}

// Boundaries returns the pixel boundaries.
func (e *Engine) Boundaries() Boundaries {
	return e.bounds
}

// Close stops publishing transitions and drops every subscription. Live
// queries keep working.
func (e *Engine) Close() {
	for st, ql := range e.lists {
		if ql != nil {
			ql.RemoveListener(e.watchers[st])
		}
	}
	e.Clear()
}
