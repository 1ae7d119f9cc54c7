package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"fitsview/export"
	"fitsview/hdu"
)

// exportCurrent saves whatever the current tab shows: the displayed image
// (rotation and stretch included) or the full table. The extension typed in
// the save dialog picks the output format.
func exportCurrent() {
	v := myWin.currentView
	if v == nil {
		dialog.ShowInformation("Export", "Nothing to export here", myWin.parentWindow)
		return
	}
	u := v.currentUnit()
	if u == nil {
		dialog.ShowInformation("Export", "Nothing to export here", myWin.parentWindow)
		return
	}
	switch u.Kind {
	case hdu.Image:
		exportImage(v)
	case hdu.Table:
		exportTable(v, u.Table)
	default:
		dialog.ShowInformation("Export", "Nothing to export here", myWin.parentWindow)
	}
}

func exportImage(v *View) {
	img := v.displayedImage()
	if img == nil {
		dialog.ShowInformation("No Image", "The current view does not contain a valid image.", myWin.parentWindow)
		return
	}
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, myWin.parentWindow)
			return
		}
		if writer == nil { // user cancelled
			return
		}
		path := writer.URI().Path()
		encodeErr := export.EncodeImage(writer, filepath.Ext(path), img)
		closeErr := writer.Close()
		finishExport(path, encodeErr, closeErr)
	}, myWin.parentWindow)
	fd.SetFileName(defaultExportName(v.filePath, ".png"))
	fd.Resize(fyne.Size{Height: 600, Width: 800})
	setExportLocation(fd)
	fd.Show()
}

func exportTable(v *View, t *hdu.TableData) {
	if t == nil || len(t.Rows) == 0 {
		dialog.ShowInformation("Empty Table", "The current table is empty.", myWin.parentWindow)
		return
	}
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, myWin.parentWindow)
			return
		}
		if writer == nil { // user cancelled
			return
		}
		path := writer.URI().Path()
		encodeErr := export.EncodeTable(writer, filepath.Ext(path), t)
		closeErr := writer.Close()
		finishExport(path, encodeErr, closeErr)
	}, myWin.parentWindow)
	fd.SetFileName(defaultExportName(v.filePath, ".csv"))
	fd.Resize(fyne.Size{Height: 600, Width: 800})
	setExportLocation(fd)
	fd.Show()
}

func finishExport(path string, encodeErr, closeErr error) {
	if encodeErr == nil {
		encodeErr = closeErr
	}
	if encodeErr != nil {
		dialog.ShowError(fmt.Errorf("could not export %s: %w", path, encodeErr), myWin.parentWindow)
		return
	}
	myWin.App.Preferences().SetString("lastExportFolder", filepath.Dir(path))
	dialog.ShowInformation("Export Successful", "Saved to:\n"+path, myWin.parentWindow)
}

// defaultExportName swaps the FITS extension for the export one.
func defaultExportName(fitsPath, ext string) string {
	base := filepath.Base(fitsPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

func setExportLocation(fd *dialog.FileDialog) {
	folder := myWin.App.Preferences().StringWithFallback("lastExportFolder", "")
	if folder == "" {
		return
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(folder))
	if err != nil {
		myWin.App.Preferences().SetString("lastExportFolder", "")
		return
	}
	fd.SetLocation(lister)
}
