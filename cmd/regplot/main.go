// Package main provides the entry point for the regplot CLI.
//
// regplot draws a scatter plot of measured data points together with a
// fitted regression curve (Linear, Power or Exponential) and saves it as an
// image. It can also fit the curve itself and keeps an optional history of
// runs.
//
// Usage:
//
//	regplot <params-filepath> <data-filepath> <output-image-filepath>
//	regplot fit <data-filepath> --kind all
//
// See --help for all available options.
package main

// main is the entry point for regplot.
func main() {
	Execute()
}
