package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"fitsview/hdu"
)

const histogramBins = 256

// showHistogram plots the pixel value distribution of the current image HDU
// in its own window, with summary statistics underneath.
func showHistogram() {
	v := myWin.currentView
	if v == nil {
		return
	}
	u := v.currentUnit()
	if u == nil || u.Kind != hdu.Image || u.Grid == nil {
		dialog.ShowInformation("Histogram", "No image data found!", myWin.parentWindow)
		return
	}

	values := hdu.Scrub(u.Grid.Pix)
	pngPath, err := buildHistogramPlot(values)
	if err != nil {
		dialog.ShowError(fmt.Errorf("could not build histogram: %w", err), myWin.parentWindow)
		return
	}

	pngWin := myWin.App.NewWindow("Histogram: " + u.Name)
	pngWin.Resize(fyne.Size{Height: 500, Width: 800})
	pngWin.SetOnClosed(func() { _ = os.Remove(pngPath) })

	plotImage := canvas.NewImageFromFile(pngPath)
	plotImage.FillMode = canvas.ImageFillContain
	summary := widget.NewLabel(summaryLine(values))
	pngWin.SetContent(container.NewBorder(nil, summary, nil, nil, plotImage))
	pngWin.CenterOnScreen()
	pngWin.Show()
}

// buildHistogramPlot writes a 256 bin histogram of values to a temporary
// PNG and returns its path. The caller removes the file when done with it.
func buildHistogramPlot(values []float64) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("no samples to plot")
	}

	plot.DefaultFont = font.Font{Typeface: "Liberation", Variant: "Sans", Style: 0, Weight: 3, Size: font.Points(14)}

	plt := plot.New()
	plt.Title.Text = "Pixel Intensity Histogram"
	plt.X.Label.Text = "Pixel Value"
	plt.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(values), histogramBins)
	if err != nil {
		return "", err
	}
	plt.Add(h)

	f, err := os.CreateTemp("", "fitsview-hist-*.png")
	if err != nil {
		return "", err
	}
	pngPath := f.Name()
	_ = f.Close()

	if err := plt.Save(8*vg.Inch, 5*vg.Inch, pngPath); err != nil {
		_ = os.Remove(pngPath)
		return "", err
	}
	return pngPath, nil
}

func summaryLine(values []float64) string {
	data := stats.Float64Data(values)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	stddev, _ := stats.StandardDeviation(data)
	return fmt.Sprintf("min: %.6g   max: %.6g   mean: %.6g   median: %.6g   stddev: %.6g",
		min, max, mean, median, stddev)
}
