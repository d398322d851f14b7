// Package report renders spray results for humans and files.
//
// Two kinds of output live here. The LineReporter prints the streaming
// SUCCESS/FAILURE lines to stdout as the dispatcher produces results. The
// Writer implementations render an end-of-run summary of the whole run in
// Markdown or JSON.
package report
