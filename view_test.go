package main

import (
	"image"
	"testing"
)

func grayFrom(w, h int, pix []uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	copy(img.Pix, pix)
	return img
}

func TestRotate90Clockwise(t *testing.T) {
	// 1 2        3 1
	// 3 4   ->   4 2
	src := grayFrom(2, 2, []uint8{1, 2, 3, 4})
	dst := rotate90(src)
	want := []uint8{3, 1, 4, 2}
	for i, w := range want {
		if dst.Pix[i] != w {
			t.Errorf("Pix[%d] = %d, want %d", i, dst.Pix[i], w)
		}
	}
}

func TestRotate90SwapsDimensions(t *testing.T) {
	src := grayFrom(3, 1, []uint8{10, 20, 30})
	dst := rotate90(src)
	b := dst.Bounds()
	if b.Dx() != 1 || b.Dy() != 3 {
		t.Fatalf("bounds = %v, want 1x3", b)
	}
	want := []uint8{10, 20, 30} // left end of the row becomes the top
	for i, w := range want {
		if dst.Pix[i] != w {
			t.Errorf("Pix[%d] = %d, want %d", i, dst.Pix[i], w)
		}
	}
}

func TestRotate90FourTimesIsIdentity(t *testing.T) {
	src := grayFrom(3, 2, []uint8{1, 2, 3, 4, 5, 6})
	dst := src
	for i := 0; i < 4; i++ {
		dst = rotate90(dst)
	}
	if dst.Bounds() != src.Bounds() {
		t.Fatalf("bounds changed: %v", dst.Bounds())
	}
	for i := range src.Pix {
		if dst.Pix[i] != src.Pix[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, dst.Pix[i], src.Pix[i])
		}
	}
}

func TestStretchPixIdentity(t *testing.T) {
	pix := []byte{0, 1, 100, 254, 255}
	want := []byte{0, 1, 100, 254, 255}
	stretchPix(pix, 0, 255)
	for i, w := range want {
		if pix[i] != w {
			t.Errorf("Pix[%d] = %d, want %d", i, pix[i], w)
		}
	}
}

func TestStretchPixWindow(t *testing.T) {
	pix := []byte{49, 50, 125, 200, 201}
	stretchPix(pix, 50, 200)
	want := []byte{0, 0, 128, 255, 255}
	for i, w := range want {
		if pix[i] != w {
			t.Errorf("Pix[%d] = %d, want %d", i, pix[i], w)
		}
	}
}

func TestStretchPixInvert(t *testing.T) {
	pix := []byte{0, 100, 255}
	stretchPix(pix, 255, 0)
	want := []byte{255, 155, 0}
	for i, w := range want {
		if pix[i] != w {
			t.Errorf("Pix[%d] = %d, want %d", i, pix[i], w)
		}
	}
}

func TestStretchPixThreshold(t *testing.T) {
	pix := []byte{0, 128, 129, 255}
	stretchPix(pix, 128, 128)
	want := []byte{0, 0, 255, 255}
	for i, w := range want {
		if pix[i] != w {
			t.Errorf("Pix[%d] = %d, want %d", i, pix[i], w)
		}
	}
}

func TestPixStdIgnoresClippedPixels(t *testing.T) {
	std, err := pixStd([]byte{0, 255, 10, 10, 10, 10})
	if err != nil {
		t.Fatalf("pixStd: %v", err)
	}
	if std != 0 {
		t.Errorf("std = %v, want 0 for constant mid-range pixels", std)
	}
}

func TestPixStdAllClipped(t *testing.T) {
	if _, err := pixStd([]byte{0, 0, 255, 255}); err == nil {
		t.Errorf("pixStd accepted a sample with no usable pixels")
	}
}
