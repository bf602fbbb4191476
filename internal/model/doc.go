// Package model defines the core data structures used throughout regplot.
//
// This package contains the following main types:
//   - RegressionKind: The closed set of curve shapes (Linear, Power, Exponential)
//   - RegressionSpec: A kind plus its two coefficients, able to evaluate itself
//   - DataSet: Paired x/y samples loaded from a data-points file
//   - FitResult: Coefficients computed from a DataSet plus the R-squared statistic
//   - RenderRequest: Everything the renderer needs for one image
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The loader, fitter, renderer and report writers all exchange
// these types, so centralizing them prevents import cycles.
package model
