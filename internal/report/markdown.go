package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/proxyspray/internal/model"
)

// MarkdownWriter outputs run summaries in Markdown format, designed for
// documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the run summary in Markdown format.
func (w *MarkdownWriter) Write(run *model.Run) (int, error) {
	md := markdown.NewMarkdown(w.output)
	summary := run.Summarize()

	w.writeHeader(md, run, summary)
	w.writeResults(md, run)

	return len(md.String()), md.Build()
}

// writeHeader writes the run overview table and a verdict alert.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.Run, summary model.Summary) {
	md.H1("Proxyspray Run Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", summary.Elapsed.Round(time.Millisecond).String()},
			{"Window", strconv.Itoa(run.Window)},
			{"Proxies", strconv.Itoa(run.ProxyCount)},
			{"Targets", strconv.Itoa(run.TargetCount)},
			{"Probes Attempted", strconv.Itoa(summary.Attempted)},
			{"Succeeded", strconv.Itoa(summary.Succeeded)},
			{"Failed", strconv.Itoa(summary.Failed)},
		},
	})
	md.PlainText("")

	switch {
	case summary.Attempted == 0:
		md.Note("No scheme-compatible (proxy, target) pairs were found; nothing was probed.")
	case summary.Succeeded == 0:
		md.Warningf("None of the %d probes succeeded.", summary.Attempted)
	default:
		md.Tip(fmt.Sprintf("%d of %d probes were forwarded successfully.", summary.Succeeded, summary.Attempted))
	}
	md.PlainText("")
}

// writeResults writes the per-probe result table.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, run *model.Run) {
	md.H2("Results")
	md.PlainText("")

	if len(run.Results) == 0 {
		md.PlainText("No probes were dispatched.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(run.Results))
	for _, res := range run.Results {
		rows = append(rows, []string{
			w.verdict(res),
			"`" + res.Target + "`",
			"`" + res.Proxy.Address + "`",
			w.detail(res),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Target", "Proxy", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")
}

// verdict renders a result's outcome column.
func (w *MarkdownWriter) verdict(res model.Result) string {
	if res.Success {
		return "✅ SUCCESS"
	}
	return "❌ FAILURE"
}

// detail renders a result's status or error column.
func (w *MarkdownWriter) detail(res model.Result) string {
	if res.Error != "" {
		return res.Error
	}
	if res.StatusCode > 0 {
		return "HTTP " + strconv.Itoa(res.StatusCode)
	}
	return ""
}
