// Package model defines the core data structures used throughout proxyspray.
//
// This package contains the following main types:
//   - Proxy: An upstream HTTP/HTTPS proxy with its originating scheme
//   - Result: The outcome of a single probe through a proxy to a target
//   - Run: A completed spray run with its results and configuration snapshot
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (input, dispatch, report, database) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
