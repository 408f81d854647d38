package topic

import "strings"

// Topic is a dot-separated event name or pattern.
type Topic string

const (
	// WildcardSingle matches exactly one segment.
	WildcardSingle = "*"

	// WildcardMulti matches zero or more segments.
	WildcardMulti = "**"

	// Separator separates topic segments.
	Separator = "."
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split on Separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// Head returns the first segment.
//
// Example: "medium.entry" -> "medium"
func (t Topic) Head() string {
	s := string(t)
	if idx := strings.Index(s, Separator); idx >= 0 {
		return s[:idx]
	}
	return s
}

// Base returns the last segment.
//
// Example: "medium.entry" -> "entry"
func (t Topic) Base() string {
	s := string(t)
	if idx := strings.LastIndex(s, Separator); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// Child appends a segment.
func (t Topic) Child(segment string) Topic {
	if t == "" {
		return Topic(segment)
	}
	return Topic(string(t) + Separator + segment)
}

// IsWildcard reports whether the topic contains a wildcard segment.
func (t Topic) IsWildcard() bool {
	return strings.Contains(string(t), WildcardSingle)
}

// IsValid reports whether the topic is non-empty, has no empty segments
// and contains no whitespace.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	if strings.ContainsAny(string(t), " \t\r\n") {
		return false
	}
	for _, seg := range t.Segments() {
		if seg == "" {
			return false
		}
	}
	return true
}

// Matches reports whether the topic matches pattern.
func (t Topic) Matches(pattern Topic) bool {
	return matchSegments(t.Segments(), pattern.Segments())
}

func matchSegments(topic, pattern []string) bool {
	ti := 0
	for pi := 0; pi < len(pattern); pi++ {
		switch pattern[pi] {
		case WildcardMulti:
			for skip := ti; skip <= len(topic); skip++ {
				if matchSegments(topic[skip:], pattern[pi+1:]) {
					return true
				}
			}
			return false
		case WildcardSingle:
			if ti >= len(topic) {
				return false
			}
		default:
			if ti >= len(topic) || pattern[pi] != topic[ti] {
				return false
			}
		}
		ti++
	}
	return ti == len(topic)
}

// Join joins segments into a topic.
func Join(segments ...string) Topic {
	return Topic(strings.Join(segments, Separator))
}

// Fields splits a whitespace-separated event spec into topics.
// Leading, trailing and repeated whitespace is ignored.
func Fields(spec string) []Topic {
	words := strings.Fields(spec)
	if len(words) == 0 {
		return nil
	}
	out := make([]Topic, len(words))
	for i, w := range words {
		out[i] = Topic(w)
	}
	return out
}
