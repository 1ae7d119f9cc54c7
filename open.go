package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/yargevad/filepathx"
)

// openPaths loads each file into its own tab. A file that fails to load
// reports its error and leaves the other files alone.
func openPaths(paths []string) {
	var last *container.TabItem
	for _, path := range paths {
		v, err := newView(path)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to open FITS file:\n%w", err), myWin.parentWindow)
			continue
		}
		item := container.NewTabItem(filepath.Base(path), v.content)
		myWin.views[item] = v
		myWin.tabs.Append(item)
		last = item
	}
	if last != nil {
		myWin.tabs.Select(last)
	}
}

func showOpenDialog() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		processFileSelection(reader, err)
	}, myWin.parentWindow)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".fits", ".fit", ".fts"}))
	fd.Resize(fyne.Size{Height: 600, Width: 800})

	lastFitsFolder := myWin.App.Preferences().StringWithFallback("lastFitsFolder", "")
	if lastFitsFolder != "" {
		uriOfLastFitsFolder := storage.NewFileURI(lastFitsFolder)
		fitsFolder, err := storage.ListerForURI(uriOfLastFitsFolder)
		if err == nil {
			fd.SetLocation(fitsFolder)
		} else {
			// The folder went away since it was saved; forget it
			myWin.App.Preferences().SetString("lastFitsFolder", "")
		}
	}
	fd.Show()
}

func processFileSelection(reader fyne.URIReadCloser, err error) {
	if err != nil {
		dialog.ShowError(err, myWin.parentWindow)
		return
	}
	if reader == nil { // user cancelled
		return
	}
	path := reader.URI().Path()
	_ = reader.Close() // the loader reopens the file by path
	myWin.App.Preferences().SetString("lastFitsFolder", filepath.Dir(path))
	openPaths([]string{path})
}

// expandArgs turns command line arguments into concrete file paths: a
// leading ~ expands to the home directory, a folder contributes every FITS
// file it holds, and glob patterns (including **) expand to their matches.
// Anything else passes through so the open step can report it.
func expandArgs(args []string) []string {
	var paths []string
	for _, arg := range args {
		path := expandHome(arg)
		if isDirectory(path) {
			paths = append(paths, listFitsFiles(path)...)
			continue
		}
		matches, err := filepathx.Glob(path)
		if err != nil || len(matches) == 0 {
			paths = append(paths, path)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return strings.Replace(path, "~", home, 1)
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// listFitsFiles returns the FITS files directly inside folder, in directory
// listing order.
func listFitsFiles(folder string) []string {
	entries, err := os.ReadDir(folder)
	if err != nil {
		log.Printf("could not read %s: %v", folder, err)
		return nil
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if hasFitsExtension(entry.Name()) {
			paths = append(paths, filepath.Join(folder, entry.Name()))
		}
	}
	return paths
}

func hasFitsExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".fits", ".fit", ".fts":
		return true
	}
	return false
}
