// Package render draws the data points and regression curve to an image file.
//
// Rendering is delegated to gonum/plot. This package only composes the plot
// (scatter, curve, labels, title, legend), picks an encoder from the output
// extension, and writes the result atomically.
package render

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/regplot/internal/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Fixed plot text.
const (
	XLabel        = "Atom Cluster Size"
	YLabel        = "Distinct Minima"
	DataLabel     = "True Data"
	titleFormat   = "Distinct Minima Vs. Atom Cluster Size (%s Regression)."
	curveLabelFmt = "%s Regression Line"
)

// ErrUnsupportedFormat is returned when the output extension has no encoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

var (
	// dataColor is the scatter marker color.
	dataColor = color.RGBA{R: 255, A: 255}

	// curveColor is the regression line color.
	curveColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
)

// rasterFormats are encoded at Options.DPI; every other supported format is vector.
var rasterFormats = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"tif":  true,
	"tiff": true,
}

// vectorFormats are handed to plot.WriterTo directly.
var vectorFormats = map[string]bool{
	"svg": true,
	"pdf": true,
	"eps": true,
}

// Options controls the image produced by a Renderer.
type Options struct {
	// DPI is the raster resolution.
	DPI int

	// Width and Height are the canvas size in inches.
	Width  float64
	Height float64

	// Samples is the number of points on the regression line.
	Samples int

	// RoundStart rounds the first x of the fit-line domain too.
	RoundStart bool
}

// Renderer renders RenderRequests to image files.
type Renderer struct {
	opts   Options
	logger *slog.Logger

	// out receives user-facing progress messages.
	out io.Writer
}

// NewRenderer creates a Renderer. A nil logger falls back to slog.Default();
// a nil out discards progress messages.
func NewRenderer(opts Options, logger *slog.Logger, out io.Writer) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = io.Discard
	}
	return &Renderer{opts: opts, logger: logger, out: out}
}

// FormatFromPath returns the lower-case image format for path's extension.
func FormatFromPath(path string) (string, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if rasterFormats[format] || vectorFormats[format] {
		return format, nil
	}
	if format == "" {
		return "", fmt.Errorf("%w: %s has no file extension", ErrUnsupportedFormat, path)
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Render validates the request, builds the plot and writes it to req.Output.
// Nothing is written unless every check passes; an existing file at
// req.Output is replaced only once the new image is fully encoded.
func (r *Renderer) Render(ctx context.Context, req model.RenderRequest) error {
	if err := req.Spec.Validate(); err != nil {
		return err
	}
	if err := req.Data.Validate(); err != nil {
		return err
	}

	format, err := FormatFromPath(req.Output)
	if err != nil {
		return err
	}

	p, err := r.BuildPlot(req.Spec, req.Data)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	r.logger.Debug("rendering plot",
		"kind", req.Spec.Kind.String(),
		"points", req.Data.Len(),
		"format", format,
		"output", req.Output,
	)

	fmt.Fprintln(r.out, "Saving plot please wait...")
	if err := r.save(p, format, req.Output); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Plot saved to: %s\n", req.Output)

	return nil
}

// BuildPlot composes the plot: scatter of the data, the regression curve over
// the fit-line domain, axis labels, title and legend, in that order.
func (r *Renderer) BuildPlot(spec model.RegressionSpec, data *model.DataSet) (*plot.Plot, error) {
	p := plot.New()

	points := make(plotter.XYs, data.Len())
	for i := range points {
		points[i].X = data.X[i]
		points[i].Y = data.Y[i]
	}
	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, fmt.Errorf("invalid data points: %w", err)
	}
	scatter.GlyphStyle.Color = dataColor
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(3)

	domain, err := model.FitDomain(data, r.opts.Samples, r.opts.RoundStart)
	if err != nil {
		return nil, err
	}
	curve := make(plotter.XYs, len(domain))
	for i, v := range domain {
		curve[i].X = v
		curve[i].Y = spec.Eval(v)
	}
	line, err := plotter.NewLine(curve)
	if err != nil {
		// NaN or Inf, e.g. a fractional power of a negative x.
		return nil, fmt.Errorf("%s regression is not finite over [%g, %g]: %w",
			spec.Kind, domain[0], domain[len(domain)-1], err)
	}
	line.LineStyle.Color = curveColor
	line.LineStyle.Width = vg.Points(1.5)

	p.Add(scatter, line)

	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel
	p.Title.Text = Title(spec.Kind)

	p.Legend.Add(DataLabel, scatter)
	p.Legend.Add(CurveLabel(spec.Kind), line)
	p.Legend.Top = true
	p.Legend.Left = true

	return p, nil
}

// Title returns the plot title for kind.
func Title(kind model.RegressionKind) string {
	return fmt.Sprintf(titleFormat, kind)
}

// CurveLabel returns the legend label of the regression line for kind.
func CurveLabel(kind model.RegressionKind) string {
	return fmt.Sprintf(curveLabelFmt, kind)
}

// writerTo returns an encoder for p in the given format.
func (r *Renderer) writerTo(p *plot.Plot, format string) (io.WriterTo, error) {
	w := vg.Length(r.opts.Width) * vg.Inch
	h := vg.Length(r.opts.Height) * vg.Inch

	if !rasterFormats[format] {
		return p.WriterTo(w, h, format)
	}

	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(r.opts.DPI))
	p.Draw(draw.New(c))

	switch format {
	case "png":
		return vgimg.PngCanvas{Canvas: c}, nil
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: c}, nil
	default:
		return vgimg.TiffCanvas{Canvas: c}, nil
	}
}

// save encodes p into a temporary file beside path and renames it into place.
func (r *Renderer) save(p *plot.Plot, format, path string) error {
	wt, err := r.writerTo(p, format)
	if err != nil {
		return fmt.Errorf("failed to prepare %s encoder: %w", format, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := wt.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil { //nolint:gosec // Images are meant to be shared
		return fmt.Errorf("failed to set image permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move image into place: %w", err)
	}
	committed = true

	r.logger.Debug("image written", "path", path, "format", format)
	return nil
}
