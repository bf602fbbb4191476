package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/regplot/internal/model"
)

// ParamsWriter outputs results in the parameters-file format:
//
//	<Kind>
//	<a> <b>
//	R-Squared: <r>
//
// The first two lines are what loader.ParseParams reads, so the output of
// `regplot fit` can be passed straight to `regplot`.
type ParamsWriter struct {
	baseWriter
}

// NewParamsWriter creates a ParamsWriter that outputs to the given writer.
func NewParamsWriter(output io.Writer) *ParamsWriter {
	return &ParamsWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs one result. Coefficients use the shortest representation
// that parses back to the same float64.
func (w *ParamsWriter) Write(result model.FitResult) (int, error) {
	var sb strings.Builder
	sb.WriteString(result.Spec.Kind.String())
	sb.WriteByte('\n')
	sb.WriteString(formatFloat(result.Spec.A))
	sb.WriteByte(' ')
	sb.WriteString(formatFloat(result.Spec.B))
	sb.WriteByte('\n')
	sb.WriteString("R-Squared: ")
	sb.WriteString(formatFloat(result.RSquared))
	sb.WriteByte('\n')

	return io.WriteString(w.output, sb.String())
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
