package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/regplot/internal/model"
)

// JSONWriter outputs results in JSON format, one document per result.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because it's sufficient for a handful of numeric fields.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// FitJSON is the JSON representation of a fit result.
type FitJSON struct {
	Kind     string  `json:"kind"`
	A        float64 `json:"a"`
	B        float64 `json:"b"`
	RSquared float64 `json:"rSquared"`
	Points   int     `json:"points"`
	Equation string  `json:"equation"`
}

// NewFitJSON converts a result into its JSON representation.
func NewFitJSON(result model.FitResult) FitJSON {
	return FitJSON{
		Kind:     result.Spec.Kind.String(),
		A:        result.Spec.A,
		B:        result.Spec.B,
		RSquared: result.RSquared,
		Points:   result.N,
		Equation: result.Spec.Equation(),
	}
}

// Write outputs the result in JSON format.
func (w *JSONWriter) Write(result model.FitResult) (int, error) {
	return w.writeJSON(NewFitJSON(result))
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
