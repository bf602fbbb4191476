// Package database provides SQLite-based storage for regplot.
//
// This package implements the HistoryDB, which records every successful
// render and fit: the regression kind, coefficients, R-squared (for fits),
// the number of data points, and the input and output paths.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
package database
