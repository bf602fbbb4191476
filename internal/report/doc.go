// Package report provides output of fit results.
//
// This package contains writers for different output formats:
//   - ParamsWriter: The parameters-file format that regplot reads back
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: A Markdown summary for sharing and documentation
//
// Design decision: We separate report writing from the result data
// structures (which are in the model package). This allows adding new
// output formats without modifying the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
