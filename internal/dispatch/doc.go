// Package dispatch implements the bounded-concurrency core of a spray run.
//
// A single controlling goroutine walks the proxy × target cross product,
// submits each scheme-compatible pair as an asynchronous probe, and drains
// completions by polling. At most Window probes are outstanding at any
// instant, a fixed SubmitDelay paces every submission regardless of window
// slack, and completions are detected on a fixed PollInterval rather than
// by event-driven wake-ups. The pacing is deliberate: it controls the
// request rate seen by upstream proxies, so it is configuration, not an
// implementation detail.
//
// Results are delivered through a callback as soon as a completion is
// observed. Beyond "no earlier than completion", no ordering is guaranteed;
// concurrent completions may be reported in any relative order.
package dispatch
