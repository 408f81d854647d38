// Package topic names pub/sub events.
//
// Topics are dot-separated: the breakpoint engine publishes "small.entry",
// "medium.exit" and so on. Subscriptions may use wildcard patterns:
//
//	large.*     large.entry, large.exit
//	*.entry     small.entry, medium.entry, large.entry
//	**          everything
//
// An event spec, as accepted by the binding layer, is a whitespace-separated
// list of topics; Fields splits it.
package topic
