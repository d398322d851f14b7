package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/proxyspray/internal/model"
)

// JSONWriter outputs the full run, summary included, as indented JSON.
// This is the machine-readable counterpart to the Markdown summary.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// jsonRun is the serialized shape: the run plus its computed summary.
type jsonRun struct {
	*model.Run
	Summary model.Summary `json:"summary"`
}

// Write outputs the run in JSON format.
func (w *JSONWriter) Write(run *model.Run) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")

	if err := enc.Encode(jsonRun{Run: run, Summary: run.Summarize()}); err != nil {
		return 0, err
	}

	n, err := w.output.Write(buf.Bytes())
	return n, err
}
