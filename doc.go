// Package promtext generates Prometheus exposition text from caller-supplied
// metric definitions and observations.
//
// The package does not collect, aggregate, or serve metrics. Callers register
// a metric name together with its help text and type, then hand the final
// numeric (or string) value to one of the formatting operations. promtext
// renders syntactically correct exposition lines and, for the buffered path,
// guarantees the HELP/TYPE header pair is written at most once per metric per
// buffer lifetime.
//
// A Generator holds three pieces of state: the definition map (name to
// help/type), an append-only line buffer, and the set of names whose header
// has already been written into the current buffer. Clear drops the buffer
// and the header set together; definitions survive so metrics can be
// re-emitted without redefinition.
//
// Two escaping caveats are intentional and relied upon by consumers: only the
// double-quote character is escaped in label values (no backslash or newline
// handling), and values are never validated, so NaN and infinities pass
// through with their default string form. See FormatSample.
//
// A Generator performs no internal locking. One goroutine owns one Generator;
// callers that share an instance must serialize access themselves.
package promtext
