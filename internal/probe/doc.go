// Package probe issues the actual HTTP requests of a spray run.
//
// It provides three things: the scheme-compatibility predicate that decides
// whether a (proxy, target) pair is worth attempting, the HTTPProber that
// sends a single GET through a proxy and classifies the outcome, and a
// concurrent preflight check that reports proxies whose endpoints cannot
// even be dialed.
package probe
