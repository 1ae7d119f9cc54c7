package main

import (
	"fmt"
	"image"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/montanaflynn/stats"
	"github.com/qdm12/reprint"

	"fitsview/hdu"
)

const (
	zoomStepIn  = 1.25
	zoomStepOut = 0.8
	zoomMax     = 32.0
	zoomMin     = 1.0 / 32.0
)

// View is one open file: its HDUs, the widgets that display them, and the
// zoom, rotation and contrast state of the image being shown. Each view
// lives in its own tab and fails independently of the others.
type View struct {
	filePath string
	units    []*hdu.Unit
	index    int

	content   *fyne.Container
	stack     *fyne.Container
	hduSelect *widget.Select

	imageScroll *container.Scroll
	imageCanvas *canvas.Image
	placeholder fyne.CanvasObject

	sliderBox   *fyne.Container
	blackSlider *widget.Slider
	whiteSlider *widget.Slider

	base     *image.Gray // normalized bitmap, kept pristine
	display  *image.Gray // rotated and stretched copy on screen
	zoom     float64
	rotation int // clockwise degrees: 0, 90, 180 or 270
}

func newView(path string) (*View, error) {
	units, err := hdu.Load(path)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("%s holds no HDUs", path)
	}

	v := &View{filePath: path, units: units, index: -1, zoom: 1}

	names := make([]string, len(units))
	for i, u := range units {
		names[i] = fmt.Sprintf("%d: %s (%s)", i, u.Name, u.Kind)
	}
	sel := widget.NewSelect(names, nil)
	sel.OnChanged = func(string) { v.loadHDU(sel.SelectedIndex()) }
	v.hduSelect = sel

	v.blackSlider = widget.NewSlider(0, 255)
	v.blackSlider.Orientation = 1
	v.blackSlider.Value = 0
	v.blackSlider.OnChanged = func(value float64) { v.refreshImage() }
	v.whiteSlider = widget.NewSlider(0, 255)
	v.whiteSlider.Orientation = 1
	v.whiteSlider.Value = 255
	v.whiteSlider.OnChanged = func(value float64) { v.refreshImage() }
	autoButton := widget.NewButton("Auto", func() { v.autoStretch() })
	v.sliderBox = container.NewBorder(autoButton, nil, nil, nil,
		container.NewHBox(v.blackSlider, v.whiteSlider))

	v.placeholder = widget.NewLabel("")
	v.imageScroll = container.NewScroll(widget.NewLabel(""))
	v.stack = container.NewStack(v.placeholder)

	toolbar := container.NewHBox(layout.NewSpacer(), widget.NewLabel("HDU"), v.hduSelect, layout.NewSpacer())
	v.content = container.NewBorder(toolbar, nil, nil, v.sliderBox, v.stack)

	sel.SetSelectedIndex(0)
	return v, nil
}

func (v *View) currentUnit() *hdu.Unit {
	if v.index < 0 || v.index >= len(v.units) {
		return nil
	}
	return v.units[v.index]
}

// displayedImage is the bitmap as shown: rotated and contrast stretched.
func (v *View) displayedImage() *image.Gray {
	return v.display
}

func (v *View) loadHDU(index int) {
	if index < 0 || index >= len(v.units) || index == v.index {
		return
	}
	v.index = index
	u := v.units[index]

	switch u.Kind {
	case hdu.Image:
		v.showImage(u)
	case hdu.Table:
		v.showTable(u)
	case hdu.Unsupported:
		v.showPlaceholder()
		dialog.ShowInformation("Unsupported HDU", "Cannot display this HDU.", myWin.parentWindow)
	default:
		v.showPlaceholder()
	}
	notifyKindChanged(v)
}

func (v *View) showImage(u *hdu.Unit) {
	base, err := hdu.Normalize(u.Grid)
	if err != nil {
		dialog.ShowError(fmt.Errorf("could not render %s: %w", u.Name, err), myWin.parentWindow)
		v.showPlaceholder()
		return
	}
	v.base = base
	v.zoom = 1
	v.rotation = 0
	v.blackSlider.Value = 0 // assign directly: SetValue would render once per slider
	v.whiteSlider.Value = 255
	v.blackSlider.Refresh()
	v.whiteSlider.Refresh()
	v.refreshImage()
	v.sliderBox.Show()
}

func (v *View) showTable(u *hdu.Unit) {
	v.base = nil
	v.display = nil
	t := u.Table
	table := widget.NewTable(
		func() (int, int) { return len(t.Rows), len(t.Names) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, cell fyne.CanvasObject) {
			cell.(*widget.Label).SetText(t.Rows[id.Row][id.Col])
		},
	)
	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject { return widget.NewLabel("") }
	table.UpdateHeader = func(id widget.TableCellID, cell fyne.CanvasObject) {
		if id.Row < 0 && id.Col >= 0 {
			cell.(*widget.Label).SetText(t.Names[id.Col])
		}
	}
	v.stack.Objects = []fyne.CanvasObject{table}
	v.stack.Refresh()
	v.sliderBox.Hide()
}

func (v *View) showPlaceholder() {
	v.base = nil
	v.display = nil
	v.stack.Objects = []fyne.CanvasObject{v.placeholder}
	v.stack.Refresh()
	v.sliderBox.Hide()
}

// refreshImage rebuilds the displayed bitmap from the pristine base:
// deep copy, rotate, then stretch in place.
func (v *View) refreshImage() {
	if v.base == nil {
		return
	}
	work := reprint.This(v.base).(*image.Gray)
	for turns := v.rotation / 90; turns > 0; turns-- {
		work = rotate90(work)
	}
	stretchPix(work.Pix, v.blackSlider.Value, v.whiteSlider.Value)
	v.display = work

	img := canvas.NewImageFromImage(work)
	img.FillMode = canvas.ImageFillContain
	v.imageCanvas = img
	v.applyZoom()
	v.imageScroll.Content = img
	v.imageScroll.Refresh()
	v.stack.Objects = []fyne.CanvasObject{v.imageScroll}
	v.stack.Refresh()
}

// applyZoom sizes the canvas so the scroll container shows the image at
// zoom times its pixel size.
func (v *View) applyZoom() {
	if v.imageCanvas == nil || v.display == nil {
		return
	}
	bounds := v.display.Bounds()
	v.imageCanvas.SetMinSize(fyne.NewSize(
		float32(float64(bounds.Dx())*v.zoom),
		float32(float64(bounds.Dy())*v.zoom)))
	v.imageCanvas.Refresh()
	v.imageScroll.Refresh()
}

func (v *View) setZoom(zoom float64) {
	if zoom > zoomMax {
		zoom = zoomMax
	}
	if zoom < zoomMin {
		zoom = zoomMin
	}
	v.zoom = zoom
	v.applyZoom()
}

func (v *View) rotate(degrees int) {
	v.rotation = ((v.rotation+degrees)%360 + 360) % 360
	v.refreshImage()
}

// autoStretch sets the display window from the pixel spread, three sigma
// below zero to five sigma above. The sliders clip to their 0..255 range.
func (v *View) autoStretch() {
	if v.base == nil {
		return
	}
	std, err := pixStd(v.base.Pix)
	if err != nil {
		fmt.Println(fmt.Errorf("pixStd(): %w", err))
		return
	}
	bot := -3 * std
	top := 5 * std
	if bot < 0 {
		bot = 0
	}
	if top > 255 {
		top = 255
	}
	v.blackSlider.SetValue(bot)
	v.whiteSlider.SetValue(top)
}

// pixStd is the standard deviation of the pixels, ignoring fully black and
// fully white ones so clipped regions do not dominate.
func pixStd(dataIn []byte) (float64, error) {
	var data []float64
	for i := 0; i < len(dataIn); i++ {
		if int(dataIn[i]) < 255 && int(dataIn[i]) > 0 {
			data = append(data, float64(dataIn[i]))
		}
	}
	return stats.StandardDeviation(data)
}

// stretchPix remaps pixel values so the black level maps to 0 and the white
// level to 255, clipping outside the window. Swapped levels invert the
// image. The slice is modified in place.
func stretchPix(pix []byte, black, white float64) {
	invert := black > white
	var scale float64
	if white > black {
		scale = 255 / (white - black)
	} else {
		scale = 255 / (black - white)
		black, white = white, black
	}

	for i := 0; i < len(pix); i++ {
		if float64(pix[i]) <= black {
			pix[i] = 0
		} else if float64(pix[i]) > white {
			pix[i] = 255
		} else {
			pix[i] = byte(math.Round(scale * (float64(pix[i]) - black)))
		}
		if invert {
			pix[i] = ^pix[i]
		}
	}
}

// rotate90 returns src turned a quarter turn clockwise.
func rotate90(src *image.Gray) *image.Gray {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewGray(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Pix[x*dst.Stride+(h-1-y)] = src.Pix[y*src.Stride+x]
		}
	}
	return dst
}

func currentImageView() *View {
	v := myWin.currentView
	if v == nil {
		return nil
	}
	if u := v.currentUnit(); u == nil || u.Kind != hdu.Image {
		return nil
	}
	return v
}

func zoomIn() {
	if v := currentImageView(); v != nil {
		v.setZoom(v.zoom * zoomStepIn)
	}
}

func zoomOut() {
	if v := currentImageView(); v != nil {
		v.setZoom(v.zoom * zoomStepOut)
	}
}

func zoomReset() {
	if v := currentImageView(); v != nil {
		v.setZoom(1)
	}
}

func rotateClockwise() {
	if v := currentImageView(); v != nil {
		v.rotate(90)
	}
}

func rotateAnticlockwise() {
	if v := currentImageView(); v != nil {
		v.rotate(-90)
	}
}
