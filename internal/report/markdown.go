package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/regplot/internal/model"
)

// Thresholds used to pick the alert shown under each fit.
const (
	goodFitRSquared = 0.9
	poorFitRSquared = 0.5
)

// MarkdownWriter outputs results in Markdown format.
// Each Write appends one section, so several fits can share one document.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides type-safe tables and GitHub-flavored alerts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs one result as a Markdown section.
func (w *MarkdownWriter) Write(result model.FitResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H2(result.Spec.Kind.String() + " Regression")
	md.PlainText("")

	md.PlainTextf("`%s`", result.Spec.Equation())
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"a", formatFloat(result.Spec.A)},
			{"b", formatFloat(result.Spec.B)},
			{"R-Squared", strconv.FormatFloat(result.RSquared, 'f', 4, 64)},
			{"Data Points", strconv.Itoa(result.N)},
		},
	})
	md.PlainText("")

	w.writeAlert(md, result)

	return len(md.String()), md.Build()
}

// writeAlert writes an alert describing how well the curve fits.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result model.FitResult) {
	switch {
	case result.RSquared >= goodFitRSquared:
		md.Tip("The curve explains the data well.")
	case result.RSquared >= poorFitRSquared:
		md.Note("The curve explains the data moderately.")
	default:
		md.Warningf(
			"Poor fit: R-Squared is %.4f. Consider a different regression type.",
			result.RSquared,
		)
	}
	md.PlainText("")
}

// WriteHeader writes the document title. Call it once before the first Write.
func (w *MarkdownWriter) WriteHeader(dataPath string) error {
	md := markdown.NewMarkdown(w.output)
	md.H1("Regression Fit Report")
	md.PlainText("")
	md.PlainTextf("Data: `%s`", dataPath)
	md.PlainText("")
	return md.Build()
}
