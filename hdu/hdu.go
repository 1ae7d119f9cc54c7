// Package hdu loads FITS header-data units and prepares their payloads for
// display: it classifies each unit, decodes image pixels to physical values,
// flattens tables to printable cells, and normalizes 2D data to an 8-bit
// grayscale bitmap.
package hdu

import (
	"fmt"
	"os"
	"strings"

	"github.com/astrogo/fitsio"
)

// Kind says how a header-data unit can be rendered.
type Kind int

const (
	Empty       Kind = iota // no payload
	Image                   // exactly two-dimensional numeric payload
	Table                   // ASCII or binary table payload
	Unsupported             // payload present but not displayable
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Image:
		return "Image"
	case Table:
		return "Table"
	case Unsupported:
		return "Unsupported"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Grid is a two-dimensional array of physical sample values in row-major
// order, len(Pix) == Width*Height. Values may contain NaN or infinities
// straight from the file; Normalize scrubs them.
type Grid struct {
	Width  int
	Height int
	Pix    []float64
}

// TableData holds a table payload with every cell already rendered to a
// string. Byte-array cells are decoded as text at load time.
type TableData struct {
	Names []string
	Rows  [][]string
}

// Unit is one header-data unit of a loaded file. Units are read-only after
// Load returns; Grid is set only for Image units and Table only for Table
// units.
type Unit struct {
	Index       int
	Name        string
	Kind        Kind
	HeaderLines []string
	Grid        *Grid
	Table       *TableData
}

// Classify reports how a FITS HDU should be rendered. It never touches the
// payload, only the type of the unit and its declared axes: tables are
// Table, an image extension without payload is Empty, an exactly
// two-dimensional payload is Image, and any other payload (1D vectors,
// 3D+ cubes, exotic units) is Unsupported rather than being misreported
// as Empty.
func Classify(h fitsio.HDU) Kind {
	switch h := h.(type) {
	case *fitsio.Table:
		return Table
	case fitsio.Image:
		axes := h.Header().Axes()
		if len(axes) == 0 {
			return Empty
		}
		for _, n := range axes {
			if n <= 0 {
				return Empty
			}
		}
		if len(axes) == 2 {
			return Image
		}
		return Unsupported
	}
	return Unsupported
}

// Load reads every HDU of the FITS file at path. A failure anywhere aborts
// the load of this file only; the caller decides what to tell the user.
func Load(path string) ([]*Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	ff, err := fitsio.Open(f)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	defer ff.Close()

	hdus := ff.HDUs()
	units := make([]*Unit, 0, len(hdus))
	for i, h := range hdus {
		u, err := newUnit(i, h)
		if err != nil {
			return nil, fmt.Errorf("%s: HDU %d: %w", path, i, err)
		}
		units = append(units, u)
	}
	return units, nil
}

func newUnit(index int, h fitsio.HDU) (*Unit, error) {
	u := &Unit{
		Index:       index,
		Name:        unitName(index, h),
		Kind:        Classify(h),
		HeaderLines: headerLines(h.Header()),
	}

	switch u.Kind {
	case Image:
		grid, err := decodeImage(h.(fitsio.Image))
		if err != nil {
			return nil, err
		}
		u.Grid = grid
	case Table:
		table, err := readTable(h.(*fitsio.Table))
		if err != nil {
			return nil, err
		}
		u.Table = table
	}
	return u, nil
}

// unitName prefers EXTNAME; the primary HDU of most files carries none.
func unitName(index int, h fitsio.HDU) string {
	name := strings.TrimSpace(h.Name())
	if name != "" {
		return name
	}
	if index == 0 {
		return "PRIMARY"
	}
	return fmt.Sprintf("HDU%d", index)
}

func headerLines(hdr *fitsio.Header) []string {
	keys := hdr.Keys()
	lines := make([]string, 0, len(keys))
	for i := 0; i < len(keys); i++ {
		card := hdr.Card(i)
		if card.Comment == "" {
			lines = append(lines, fmt.Sprintf("%8s: %8v", card.Name, card.Value))
		} else {
			lines = append(lines, fmt.Sprintf("%8s: %8v (%s)", card.Name, card.Value, card.Comment))
		}
	}
	return lines
}
