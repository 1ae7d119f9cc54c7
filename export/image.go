// Package export writes the currently displayed payload to disk. The file
// extension picks the format: PNG, JPEG, BMP and TIFF for images, CSV, TSV
// and LaTeX for tables.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const jpegQuality = 95

func encoderFor(ext string) (func(io.Writer, image.Image) error, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: jpegQuality})
		}, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tiff", ".tif":
		return func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, nil)
		}, nil
	}
	return nil, fmt.Errorf("unsupported image format %q", ext)
}

// EncodeImage writes img to w in the format named by ext (".png", ".jpg",
// ".jpeg", ".bmp", ".tiff" or ".tif", case-insensitive).
func EncodeImage(w io.Writer, ext string, img image.Image) error {
	encode, err := encoderFor(ext)
	if err != nil {
		return err
	}
	if img == nil || img.Bounds().Empty() {
		return errors.New("no image to export")
	}
	return encode(w, img)
}

// Image writes img to path, picking the encoder from the file extension.
// The format is checked before the file is created.
func Image(path string, img image.Image) error {
	encode, err := encoderFor(filepath.Ext(path))
	if err != nil {
		return err
	}
	if img == nil || img.Bounds().Empty() {
		return errors.New("no image to export")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return f.Close()
}
