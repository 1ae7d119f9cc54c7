package hdu

import (
	"testing"

	"github.com/astrogo/fitsio"
)

func TestDecodeImageInt16(t *testing.T) {
	img := fitsio.NewImage(16, []int{2, 2})
	defer img.Close()
	data := []int16{0, 10, 20, 30}
	if err := img.Write(&data); err != nil {
		t.Fatalf("Write: %v", err)
	}

	grid, err := decodeImage(img)
	if err != nil {
		t.Fatalf("decodeImage: %v", err)
	}
	if grid.Width != 2 || grid.Height != 2 {
		t.Fatalf("grid is %dx%d, want 2x2", grid.Width, grid.Height)
	}
	want := []float64{0, 10, 20, 30}
	for i, w := range want {
		if grid.Pix[i] != w {
			t.Errorf("Pix[%d] = %v, want %v", i, grid.Pix[i], w)
		}
	}
}

func TestDecodeImageAppliesScaling(t *testing.T) {
	img := fitsio.NewImage(16, []int{2, 1})
	defer img.Close()
	err := img.Header().Append(
		fitsio.Card{Name: "BZERO", Value: 32768, Comment: "offset"},
		fitsio.Card{Name: "BSCALE", Value: 1, Comment: "scaling"},
	)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	data := []int16{-32768, 0}
	if err := img.Write(&data); err != nil {
		t.Fatalf("Write: %v", err)
	}

	grid, err := decodeImage(img)
	if err != nil {
		t.Fatalf("decodeImage: %v", err)
	}
	want := []float64{0, 32768}
	for i, w := range want {
		if grid.Pix[i] != w {
			t.Errorf("Pix[%d] = %v, want %v", i, grid.Pix[i], w)
		}
	}
}

func TestDecodeImageFloat32(t *testing.T) {
	img := fitsio.NewImage(-32, []int{3, 1})
	defer img.Close()
	data := []float32{-1.5, 0, 2.25}
	if err := img.Write(&data); err != nil {
		t.Fatalf("Write: %v", err)
	}

	grid, err := decodeImage(img)
	if err != nil {
		t.Fatalf("decodeImage: %v", err)
	}
	want := []float64{-1.5, 0, 2.25}
	for i, w := range want {
		if grid.Pix[i] != w {
			t.Errorf("Pix[%d] = %v, want %v", i, grid.Pix[i], w)
		}
	}
}

func TestDecodeImageRejectsNon2D(t *testing.T) {
	img := fitsio.NewImage(16, []int{4, 3, 2})
	defer img.Close()
	if _, err := decodeImage(img); err == nil {
		t.Fatalf("decodeImage accepted a 3D payload")
	}
}
