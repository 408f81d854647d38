package event

import "testing"

func TestFilters(t *testing.T) {
	env := Envelope{Topic: "large.entry", Payload: 3, Metadata: Metadata{Source: "breakpoints"}}

	tests := []struct {
		name   string
		filter FilterFunc
		want   bool
	}{
		{"source match", FilterBySource("breakpoints"), true},
		{"source mismatch", FilterBySource("dom"), false},
		{"topic wildcard", FilterByTopic("large.*"), true},
		{"topic mismatch", FilterByTopic("small.*"), false},
		{"payload", FilterPayload(func(n int) bool { return n > 2 }), true},
		{"payload wrong type", FilterPayload(func(string) bool { return true }), false},
		{"not", Not(FilterBySource("dom")), true},
		{"and", And(FilterBySource("breakpoints"), FilterByTopic("*.entry")), true},
		{"and fails", And(FilterBySource("breakpoints"), FilterByTopic("*.exit")), false},
		{"or", Or(FilterBySource("dom"), FilterByTopic("*.entry")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter(env); got != tt.want {
				t.Errorf("filter = %v, want %v", got, tt.want)
			}
		})
	}

	if FilterBySource("breakpoints")("not an envelope") {
		t.Error("non-envelope should be rejected")
	}
}
