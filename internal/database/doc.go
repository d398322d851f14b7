// Package database provides SQLite-based storage for proxyspray run history.
//
// When history saving is enabled, each completed spray run is stored with
// its configuration snapshot and every probe result, so working proxy/target
// combinations can be reviewed later with the history command.
//
// We use SQLite via modernc.org/sqlite: CGO-free, a single file under the
// XDG data directory, and more than fast enough for run-sized writes.
package database
