package plot

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-torda/nmrstar/pkg/table"
	"github.com/andrew-torda/nmrstar/pkg/views"
)

var shifts = []views.ChemShift{
	{EntityID: "1", SeqID: "1", AuthSeqID: "1", CompID: "MET", AtomID: "HA", AtomType: "H", Val: 4.395},
	{EntityID: "1", SeqID: "2", AuthSeqID: "2", CompID: "THR", AtomID: "N", AtomType: "N", Val: 118.5},
}

func TestShiftMap(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ShiftMap(&buf, shifts, Options{Title: "bmr15000"}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, defWidth, img.Bounds().Dx())
	assert.Equal(t, defHeight, img.Bounds().Dy())

	// lowest residue and shift sit on the origin, the highest in the far corner
	assert.Equal(t, color.RGBAModel.Convert(atomColor["H"]), color.RGBAModel.Convert(img.At(margin, defHeight-margin)))
	assert.Equal(t, color.RGBAModel.Convert(atomColor["N"]), color.RGBAModel.Convert(img.At(defWidth-margin, margin)))
	assert.Equal(t, color.RGBAModel.Convert(bg), color.RGBAModel.Convert(img.At(defWidth/2, defHeight/2)))
}

func TestShiftMapAtom(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ShiftMap(&buf, shifts, Options{Width: 300, Height: 200, Atom: "N"}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())

	err = ShiftMap(&buf, shifts, Options{Atom: "CB"})
	assert.True(t, errors.Is(err, ErrNoShifts))
	assert.True(t, errors.Is(ShiftMap(&buf, nil, Options{}), ErrNoShifts))
}

func TestShiftMapErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, ShiftMap(&buf, shifts, Options{Width: 60, Height: 60}))

	bad := []views.ChemShift{{SeqID: ".", AtomID: "HA", Val: 4}}
	err := ShiftMap(&buf, bad, Options{})
	assert.True(t, errors.Is(err, table.ErrNotNum))
}

// One point, so both ranges are empty and have to be widened
func TestShiftMapSinglePoint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ShiftMap(&buf, shifts[:1], Options{}))
	_, err := png.Decode(&buf)
	require.NoError(t, err)
}
