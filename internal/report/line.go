package report

import (
	"fmt"
	"io"

	"github.com/nao1215/proxyspray/internal/model"
)

// LineReporter prints one line per result in the tool's classic format:
//
//	SUCCESS: http://target >--[VIA]--> http://proxy:8080
//
// Lines are printed in the order results are handed to Report, which is
// completion order, not submission order. FAILURE lines are suppressed
// unless displayFailures is set; SUCCESS lines always print.
type LineReporter struct {
	out             io.Writer
	displayFailures bool
}

// NewLineReporter creates a LineReporter writing to out.
func NewLineReporter(out io.Writer, displayFailures bool) *LineReporter {
	return &LineReporter{out: out, displayFailures: displayFailures}
}

// Report renders a single result.
func (r *LineReporter) Report(res model.Result) {
	line := res.Target + " >--[VIA]--> " + res.Proxy.Address
	if res.Success {
		fmt.Fprintln(r.out, "SUCCESS: "+line)
	} else if r.displayFailures {
		fmt.Fprintln(r.out, "FAILURE: "+line)
	}
}
