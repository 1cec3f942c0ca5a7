// Package plot draws chemical shifts against residue number, which is
// usually the first look at a new assignment.
package plot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/andrew-torda/nmrstar/pkg/table"
	"github.com/andrew-torda/nmrstar/pkg/views"
)

// ErrNoShifts means nothing was left to plot after filtering.
var ErrNoShifts = errors.New("no shifts to plot")

// Options for ShiftMap. Zero Width or Height get the defaults.
type Options struct {
	Width, Height int
	Atom          string // only plot this atom, like CA. Empty means all.
	Title         string
}

const (
	defWidth  = 800
	defHeight = 600
	margin    = 50
	fontSize  = 12
	dotSize   = 2 // half width of a point
)

var (
	bg        = color.White
	axisColor = color.Black
	atomColor = map[string]color.Color{
		"H": color.RGBA{200, 30, 30, 255},
		"C": color.RGBA{30, 150, 30, 255},
		"N": color.RGBA{30, 30, 200, 255},
	}
	otherColor = color.Gray{Y: 128}
)

var (
	fontOnce sync.Once
	goFont   *truetype.Font
	fontErr  error
)

func getFont() (*truetype.Font, error) {
	fontOnce.Do(func() { goFont, fontErr = freetype.ParseFont(goregular.TTF) })
	return goFont, fontErr
}

// selectAtom returns the shifts of one atom, or all of them.
func selectAtom(shifts []views.ChemShift, atom string) []views.ChemShift {
	if atom == "" {
		return shifts
	}
	var ret []views.ChemShift
	for _, c := range shifts {
		if c.AtomID == atom {
			ret = append(ret, c)
		}
	}
	return ret
}

// span returns min and max of column col, widened if they are equal so
// we never divide by zero.
func span(mat [][]float32, col int) (float32, float32) {
	lo, hi := mat[0][col], mat[0][col]
	for _, r := range mat[1:] {
		lo, hi = min(lo, r[col]), max(hi, r[col])
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return lo, hi
}

func dot(img *image.RGBA, x, y int, c color.Color) {
	r := image.Rect(x-dotSize, y-dotSize, x+dotSize+1, y+dotSize+1)
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// ShiftMap writes a PNG with residue (Seq_ID) along x and shift in ppm
// up y. Points are coloured by element.
func ShiftMap(w io.Writer, shifts []views.ChemShift, opts Options) error {
	if opts.Width <= 0 {
		opts.Width = defWidth
	}
	if opts.Height <= 0 {
		opts.Height = defHeight
	}
	if opts.Width <= 2*margin || opts.Height <= 2*margin {
		return fmt.Errorf("plot size %dx%d too small", opts.Width, opts.Height)
	}
	sel := selectAtom(shifts, opts.Atom)
	if len(sel) == 0 {
		return ErrNoShifts
	}
	mat, err := table.FromRecords(sel).Floats("Seq_ID", "Val")
	if err != nil {
		return fmt.Errorf("plotting shifts: %w", err)
	}
	xlo, xhi := span(mat.Mat, 0)
	ylo, yhi := span(mat.Mat, 1)

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	x0, y0 := margin, opts.Height-margin // origin of the axes
	x1, y1 := opts.Width-margin, margin
	draw.Draw(img, image.Rect(x0, y0, x1+1, y0+1), image.NewUniform(axisColor), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(x0, y1, x0+1, y0+1), image.NewUniform(axisColor), image.Point{}, draw.Src)

	xscale := float32(x1-x0) / (xhi - xlo)
	yscale := float32(y0-y1) / (yhi - ylo)
	for i, r := range mat.Mat {
		c, ok := atomColor[sel[i].AtomType]
		if !ok {
			c = otherColor
		}
		dot(img, x0+int((r[0]-xlo)*xscale), y0-int((r[1]-ylo)*yscale), c)
	}

	f, err := getFont()
	if err != nil {
		return err
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(fontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(axisColor))
	labels := []struct {
		s    string
		x, y int
	}{
		{opts.Title, x0, y1 - fontSize},
		{fmt.Sprintf("%g", xlo), x0, y0 + 2*fontSize},
		{fmt.Sprintf("%g", xhi), x1 - 2*fontSize, y0 + 2*fontSize},
		{"residue", (x0 + x1) / 2, y0 + 2*fontSize},
		{fmt.Sprintf("%.1f", ylo), 2, y0},
		{fmt.Sprintf("%.1f", yhi), 2, y1 + fontSize},
		{"ppm", 2, (y0 + y1) / 2},
	}
	for _, l := range labels {
		if l.s == "" {
			continue
		}
		if _, err := ctx.DrawString(l.s, freetype.Pt(l.x, l.y)); err != nil {
			return err
		}
	}
	return png.Encode(w, img)
}
