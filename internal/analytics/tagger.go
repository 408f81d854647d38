// Package analytics assembles page-tracking variables and hands them to
// a Beacon.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// LinkTrackEvents is the fixed linkTrackEvents value.
const LinkTrackEvents = "None"

// trailingVars are appended to every linkTrackVars list.
var trailingVars = []string{"prop22", "channel", "hier1"}

// Tags are the variables of one page view.
type Tags struct {
	PageName string
	Channel  string
	Hier1    string

	// Props holds prop1..propN: each is the previous one plus the next
	// path segment.
	Props []string

	Extra           map[string]string
	LinkTrackVars   []string
	LinkTrackEvents string
}

// Vars flattens the tags into variable names and values. Extra keys
// override computed variables of the same name.
func (t Tags) Vars() map[string]string {
	vars := map[string]string{
		"pageName":        t.PageName,
		"channel":         t.Channel,
		"hier1":           t.Hier1,
		"linkTrackVars":   strings.Join(t.LinkTrackVars, ","),
		"linkTrackEvents": t.LinkTrackEvents,
	}
	for i, p := range t.Props {
		vars[fmt.Sprintf("prop%d", i+1)] = p
	}
	for k, v := range t.Extra {
		vars[k] = v
	}
	return vars
}

// Beacon delivers tags.
type Beacon interface {
	Send(ctx context.Context, tags Tags) error
}

// LogBeacon writes tags to a logger instead of the network.
type LogBeacon struct {
	Logger zerolog.Logger
}

// Send implements Beacon.
func (b LogBeacon) Send(_ context.Context, tags Tags) error {
	ev := b.Logger.Info().
		Str("page_name", tags.PageName).
		Strs("props", tags.Props).
		Strs("link_track_vars", tags.LinkTrackVars)
	for _, k := range sortedKeys(tags.Extra) {
		ev = ev.Str(k, tags.Extra[k])
	}
	ev.Msg("track")
	return nil
}

// Tagger builds Tags relative to a base path.
type Tagger struct {
	// Base is prefixed to every page name unless Track is given one.
	Base   string
	Beacon Beacon
}

// NewTagger creates a tagger.
func NewTagger(base string, beacon Beacon) *Tagger {
	return &Tagger{Base: base, Beacon: beacon}
}

// Track builds the tags for pageName, prefixed with base when given and
// with t.Base otherwise, and sends them to the beacon.
//
// The page name is split on "/". prop1 is "/" plus the second segment and
// every following prop appends one more segment. Extra keys are added in
// sorted order after the props, followed by prop22, channel and hier1.
func (t *Tagger) Track(ctx context.Context, pageName string, extra map[string]string, base *string) (Tags, error) {
	prefix := t.Base
	if base != nil {
		prefix = *base
	}
	tags := Build(prefix+pageName, extra)

	if t.Beacon != nil {
		if err := t.Beacon.Send(ctx, tags); err != nil {
			return tags, fmt.Errorf("send %s: %w", tags.PageName, err)
		}
	}
	return tags, nil
}

// Build assembles the tags for a full page name.
func Build(pageName string, extra map[string]string) Tags {
	segments := strings.Split(pageName, "/")

	tags := Tags{
		PageName:        pageName,
		Channel:         pageName,
		Hier1:           pageName,
		LinkTrackEvents: LinkTrackEvents,
	}

	first := ""
	if len(segments) > 1 {
		first = segments[1]
	}
	tags.Props = append(tags.Props, "/"+first)
	for i := 2; i < len(segments); i++ {
		tags.Props = append(tags.Props, tags.Props[i-2]+"/"+segments[i])
	}
	for i := range tags.Props {
		tags.LinkTrackVars = append(tags.LinkTrackVars, fmt.Sprintf("prop%d", i+1))
	}

	if len(extra) > 0 {
		tags.Extra = make(map[string]string, len(extra))
		for _, k := range sortedKeys(extra) {
			tags.Extra[k] = extra[k]
			tags.LinkTrackVars = append(tags.LinkTrackVars, k)
		}
	}
	tags.LinkTrackVars = append(tags.LinkTrackVars, trailingVars...)
	return tags
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
