package breakpoint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamdavidjackson/prototype-base/internal/binding"
	"github.com/iamdavidjackson/prototype-base/internal/dom"
	"github.com/iamdavidjackson/prototype-base/internal/event"
	"github.com/iamdavidjackson/prototype-base/internal/event/topic"
	"github.com/iamdavidjackson/prototype-base/internal/media"
	"github.com/iamdavidjackson/prototype-base/internal/scope"
)

var allTopics = []topic.Topic{
	"small.entry", "small.exit",
	"medium.entry", "medium.exit",
	"large.entry", "large.exit",
}

// recorder records every breakpoint event a subscriber receives.
type recorder struct {
	scope.Identity
	events []Transition
}

func newRecorder() *recorder {
	return &recorder{Identity: scope.NewIdentity()}
}

func (l *recorder) handler() event.Handler {
	return event.PayloadHandler(func(_ context.Context, tr Transition) error {
		l.events = append(l.events, tr)
		return nil
	})
}

func (l *recorder) topics() []string {
	out := make([]string, len(l.events))
	for i, tr := range l.events {
		out[i] = Topic(tr.State, tr.Edge).String()
	}
	return out
}

func newEngine(t *testing.T, width int, opts ...media.Option) (*Engine, *media.Viewport) {
	t.Helper()
	vp := media.NewViewport(append([]media.Option{media.WithWidth(width)}, opts...)...)
	e, err := New(vp)
	require.NoError(t, err)
	return e, vp
}

func TestQueries(t *testing.T) {
	e, _ := newEngine(t, 0)

	assert.Equal(t, "(max-width: 47.9375em)", e.Query(Small))
	assert.Equal(t, "(min-width: 48em) and (max-width: 59.9375em)", e.Query(Medium))
	assert.Equal(t, "(min-width: 60em)", e.Query(Large))
	assert.Empty(t, e.Query(State(9)))
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilHost)

	vp := media.NewViewport()
	_, err = New(vp, WithBoundaries(Boundaries{MediumMin: 900, LargeMin: 900}))
	assert.ErrorIs(t, err, ErrInvalidBoundaries)
	_, err = New(vp, WithBoundaries(Boundaries{MediumMin: 0, LargeMin: 900}))
	assert.ErrorIs(t, err, ErrInvalidBoundaries)
}

func TestMutualExclusionAndExhaustiveness(t *testing.T) {
	ctx := context.Background()
	e, vp := newEngine(t, 0)

	named := map[int]State{767: Small, 768: Medium, 959: Medium, 960: Large}
	for width := 0; width <= 2000; width++ {
		require.NoError(t, vp.Resize(ctx, width))

		matching := 0
		for _, st := range States {
			if e.Matches(st) {
				matching++
			}
		}
		require.Equal(t, 1, matching, "width %d", width)

		st, ok := e.Current()
		require.True(t, ok)
		require.Equal(t, DefaultBoundaries.Classify(width), st, "width %d", width)
		if want, ok := named[width]; ok {
			assert.Equal(t, want, st, "width %d", width)
		}
	}
}

func TestReplayGuarantee(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, 1200)
	d := binding.NewDispatcher()
	sub := newRecorder()

	for _, name := range []string{"small.entry", "medium.entry", "large.entry"} {
		_, err := d.Bind(ctx, sub, e, name, sub.handler())
		require.NoError(t, err)
	}

	require.Len(t, sub.events, 1)
	assert.Equal(t, Transition{State: Large, Edge: Entry, Replayed: true}, sub.events[0])
}

func TestReplayRunsBeforeBindReturns(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, 500)
	d := binding.NewDispatcher()
	sub := newRecorder()

	var owner scope.Subscriber
	returned := false
	_, err := d.Bind(ctx, sub, e, "small.entry", event.HandlerFunc(func(ctx context.Context, _ any) error {
		assert.False(t, returned, "replay must happen inside Bind")
		owner, _ = scope.FromContext(ctx)
		return nil
	}))
	returned = true
	require.NoError(t, err)

	require.NotNil(t, owner)
	assert.Equal(t, sub.ScopeTag(), owner.ScopeTag())
}

func TestReplayExitEdges(t *testing.T) {
	tests := []struct {
		width int
		want  []string
	}{
		{320, []string{"small.entry", "medium.exit", "large.exit"}},
		{800, []string{"small.exit", "medium.entry", "large.exit"}},
		{1024, []string{"small.exit", "medium.exit", "large.entry"}},
	}

	for _, tt := range tests {
		e, _ := newEngine(t, tt.width)
		d := binding.NewDispatcher()
		sub := newRecorder()

		for _, name := range allTopics {
			_, err := d.Bind(context.Background(), sub, e, name.String(), sub.handler())
			require.NoError(t, err)
		}
		assert.Equal(t, tt.want, sub.topics(), "width %d", tt.width)
	}
}

func TestReplayIgnoresOtherNames(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, 1200)
	sub := newRecorder()

	for _, name := range []topic.Topic{"large", "huge.entry", "large.resize", "entry"} {
		require.NoError(t, e.OnListenerAdded(ctx, sub, name, sub.handler()))
	}
	assert.Empty(t, sub.events)
}

func TestTransitionCorrectness(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, 800)
	sub := newRecorder()

	for _, name := range allTopics {
		_, err := e.Subscribe(sub, name, sub.handler())
		require.NoError(t, err)
	}

	// Medium's watcher flips from match to no match.
	require.NoError(t, e.watch(Medium)(ctx, media.Change{Query: e.Query(Medium), Matches: false}))

	require.Len(t, sub.events, 1)
	assert.Equal(t, Transition{State: Medium, Edge: Exit}, sub.events[0])
}

func TestResizePublishesTransitions(t *testing.T) {
	ctx := context.Background()
	e, vp := newEngine(t, 800)
	d := binding.NewDispatcher()
	sub := newRecorder()

	for _, name := range allTopics {
		_, err := d.Bind(ctx, sub, e, name.String(), sub.handler())
		require.NoError(t, err)
	}
	sub.events = nil

	require.NoError(t, vp.Resize(ctx, 1000))
	assert.Equal(t, []string{"medium.exit", "large.entry"}, sub.topics())

	sub.events = nil
	require.NoError(t, vp.Resize(ctx, 1100))
	assert.Empty(t, sub.events, "no transition inside a state")

	require.NoError(t, vp.Resize(ctx, 400))
	assert.Equal(t, []string{"small.entry", "large.exit"}, sub.topics())
	for _, tr := range sub.events {
		assert.False(t, tr.Replayed)
	}
}

func TestLegacyFallbackDeterminism(t *testing.T) {
	for _, width := range []int{0, 320, 800, 1200} {
		e, _ := newEngine(t, width, media.WithSupport(false))
		require.False(t, e.Supported())

		d := binding.NewDispatcher()
		sub := newRecorder()
		for _, name := range allTopics {
			_, err := d.Bind(context.Background(), sub, e, name.String(), sub.handler())
			require.NoError(t, err)
		}

		assert.Equal(t, []string{"small.exit", "medium.exit", "large.entry"}, sub.topics(), "width %d", width)

		st, ok := e.Current()
		assert.True(t, ok)
		assert.Equal(t, Large, st)
	}
}

func TestLegacyPublishesNothing(t *testing.T) {
	ctx := context.Background()
	e, vp := newEngine(t, 1200, media.WithSupport(false))
	sub := newRecorder()
	for _, name := range allTopics {
		_, err := e.Subscribe(sub, name, sub.handler())
		require.NoError(t, err)
	}

	require.NoError(t, vp.Resize(ctx, 300))
	assert.Empty(t, sub.events)
}

func TestDocumentProbe(t *testing.T) {
	legacy, err := dom.ParseString(`<html><body class="page lt-ie9"></body></html>`)
	require.NoError(t, err)
	modern, err := dom.ParseString(`<html><body class="page"></body></html>`)
	require.NoError(t, err)

	assert.False(t, DocumentProbe(legacy)())
	assert.True(t, DocumentProbe(modern)())

	e, err := New(media.NewViewport(media.WithWidth(300)), WithCapabilityProbe(DocumentProbe(legacy)))
	require.NoError(t, err)
	assert.False(t, e.Supported())
	assert.True(t, e.Matches(Large))
	assert.False(t, e.Matches(Small))
}

func TestReplayHandlerFailureIsReported(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, 1200)
	d := binding.NewDispatcher()
	sub := newRecorder()

	_, err := d.Bind(ctx, sub, e, "large.entry", event.HandlerFunc(func(context.Context, any) error {
		panic("boom")
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replay large.entry")
	assert.Equal(t, 1, e.Count(), "the binding survives a failed replay")
}

func TestCustomBoundaries(t *testing.T) {
	vp := media.NewViewport(media.WithWidth(700))
	e, err := New(vp, WithBoundaries(Boundaries{MediumMin: 600, LargeMin: 1024}))
	require.NoError(t, err)

	assert.Equal(t, "(max-width: 37.4375em)", e.Query(Small))
	assert.Equal(t, "(min-width: 64em)", e.Query(Large))
	st, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, Medium, st)
}

func TestCloseStopsTransitions(t *testing.T) {
	ctx := context.Background()
	e, vp := newEngine(t, 800)
	sub := newRecorder()
	_, err := e.Subscribe(sub, "large.entry", sub.handler())
	require.NoError(t, err)

	e.Close()
	require.NoError(t, vp.Resize(ctx, 1200))
	assert.Empty(t, sub.events)
	assert.Zero(t, e.Count())
	assert.True(t, e.Matches(Large))
}

func TestStateAndEdgeNames(t *testing.T) {
	assert.Equal(t, topic.Topic("medium.exit"), Topic(Medium, Exit))
	assert.Equal(t, "large.entry (replayed)", Transition{State: Large, Edge: Entry, Replayed: true}.String())

	st, ok := ParseState("small")
	assert.True(t, ok)
	assert.Equal(t, Small, st)
	_, ok = ParseState("tiny")
	assert.False(t, ok)
}
