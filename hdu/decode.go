package hdu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/astrogo/fitsio"
)

// decodeImage converts the raw big-endian payload of an image HDU into
// physical values, applying the BZERO/BSCALE linear scaling from the header.
func decodeImage(img fitsio.Image) (*Grid, error) {
	hdr := img.Header()
	axes := hdr.Axes()
	if len(axes) != 2 {
		return nil, fmt.Errorf("payload has %d axes, want 2", len(axes))
	}
	width, height := axes[0], axes[1]
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("payload is %dx%d", width, height)
	}

	bitpix := hdr.Bitpix()
	pixBytes := abs(bitpix) / 8
	raw := img.Raw()
	n := width * height
	if len(raw) < n*pixBytes {
		return nil, fmt.Errorf("payload holds %d bytes, want %d for %dx%d BITPIX %d",
			len(raw), n*pixBytes, width, height, bitpix)
	}

	bzero := headerFloat(hdr, "BZERO", 0)
	bscale := headerFloat(hdr, "BSCALE", 1)

	pix := make([]float64, n)
	switch bitpix {
	case 8:
		for i := range pix {
			pix[i] = float64(raw[i])
		}
	case 16:
		for i := range pix {
			pix[i] = float64(int16(binary.BigEndian.Uint16(raw[2*i:])))
		}
	case 32:
		for i := range pix {
			pix[i] = float64(int32(binary.BigEndian.Uint32(raw[4*i:])))
		}
	case 64:
		for i := range pix {
			pix[i] = float64(int64(binary.BigEndian.Uint64(raw[8*i:])))
		}
	case -32:
		for i := range pix {
			pix[i] = float64(math.Float32frombits(binary.BigEndian.Uint32(raw[4*i:])))
		}
	case -64:
		for i := range pix {
			pix[i] = math.Float64frombits(binary.BigEndian.Uint64(raw[8*i:]))
		}
	default:
		return nil, fmt.Errorf("unsupported BITPIX %d", bitpix)
	}

	if bzero != 0 || bscale != 1 {
		for i, v := range pix {
			pix[i] = bzero + bscale*v
		}
	}
	return &Grid{Width: width, Height: height, Pix: pix}, nil
}

// headerFloat reads a numeric card, tolerating the integer and float forms
// headers use interchangeably.
func headerFloat(hdr *fitsio.Header, key string, fallback float64) float64 {
	card := hdr.Get(key)
	if card == nil {
		return fallback
	}
	switch v := card.Value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return fallback
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
