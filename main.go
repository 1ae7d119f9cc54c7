package main

import (
	_ "embed"
	"image/color"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"fitsview/hdu"
)

const version = " 1.0.1"

//go:embed help.txt
var helpText string

type Config struct {
	App          fyne.App
	parentWindow fyne.Window

	tabs        *container.DocTabs
	views       map[*container.TabItem]*View
	currentView *View

	exportItem    *fyne.MenuItem
	histogramItem *fyne.MenuItem
	headerItem    *fyne.MenuItem
	zoomInItem    *fyne.MenuItem
	zoomOutItem   *fyne.MenuItem
	zoomResetItem *fyne.MenuItem
	rotateCWItem  *fyne.MenuItem
	rotateCCWItem *fyne.MenuItem
	mainMenu      *fyne.MainMenu
}

var myWin Config

func main() {

	// We supply an ID (hopefully unique) because we need to use the preferences API
	myApp := app.NewWithID("com.github.fitsview")
	myWin.App = myApp

	myApp.Settings().SetTheme(&forcedVariant{Theme: theme.DefaultTheme(), variant: theme.VariantDark})

	w := myApp.NewWindow("FITS file viewer" + version)
	w.Resize(fyne.Size{Height: 600, Width: 800})

	myWin.parentWindow = w

	myWin.views = make(map[*container.TabItem]*View)
	myWin.tabs = container.NewDocTabs()
	myWin.tabs.OnSelected = func(item *container.TabItem) { handleTabSelected(item) }
	myWin.tabs.OnClosed = func(item *container.TabItem) { handleTabClosed(item) }

	buildMainMenu(w)

	w.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) { keyTyped(event) })

	w.SetContent(myWin.tabs)
	w.CenterOnScreen()

	// Every command line argument is a file, a folder, or a glob pattern
	if len(os.Args) > 1 {
		openPaths(expandArgs(os.Args[1:]))
	}

	w.ShowAndRun()
}

func buildMainMenu(w fyne.Window) {
	openItem := fyne.NewMenuItem("Open...", func() { showOpenDialog() })
	quitItem := fyne.NewMenuItem("Quit", func() { myWin.App.Quit() })
	quitItem.IsQuit = true
	fileMenu := fyne.NewMenu("File", openItem, fyne.NewMenuItemSeparator(), quitItem)

	myWin.exportItem = fyne.NewMenuItem("Export...", func() { exportCurrent() })
	myWin.histogramItem = fyne.NewMenuItem("Histogram", func() { showHistogram() })
	myWin.headerItem = fyne.NewMenuItem("FITS header", func() { showHeader() })
	editMenu := fyne.NewMenu("Edit", myWin.exportItem, myWin.histogramItem, myWin.headerItem)

	myWin.zoomInItem = fyne.NewMenuItem("Zoom in", func() { zoomIn() })
	myWin.zoomOutItem = fyne.NewMenuItem("Zoom out", func() { zoomOut() })
	myWin.zoomResetItem = fyne.NewMenuItem("Actual size", func() { zoomReset() })
	myWin.rotateCWItem = fyne.NewMenuItem("Rotate clockwise", func() { rotateClockwise() })
	myWin.rotateCCWItem = fyne.NewMenuItem("Rotate anticlockwise", func() { rotateAnticlockwise() })
	viewMenu := fyne.NewMenu("View",
		myWin.zoomInItem, myWin.zoomOutItem, myWin.zoomResetItem,
		fyne.NewMenuItemSeparator(),
		myWin.rotateCWItem, myWin.rotateCCWItem)

	helpMenu := fyne.NewMenu("Help", fyne.NewMenuItem("Show help", func() { showHelp() }))

	myWin.mainMenu = fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu)
	w.SetMainMenu(myWin.mainMenu)
	refreshMenuState()
}

// refreshMenuState enables exactly the actions that apply to the HDU shown
// in the current tab.
func refreshMenuState() {
	kind := hdu.Empty
	haveView := myWin.currentView != nil
	if haveView {
		if u := myWin.currentView.currentUnit(); u != nil {
			kind = u.Kind
		}
	}

	isImage := kind == hdu.Image
	myWin.zoomInItem.Disabled = !isImage
	myWin.zoomOutItem.Disabled = !isImage
	myWin.zoomResetItem.Disabled = !isImage
	myWin.rotateCWItem.Disabled = !isImage
	myWin.rotateCCWItem.Disabled = !isImage
	myWin.histogramItem.Disabled = !isImage
	myWin.exportItem.Disabled = !isImage && kind != hdu.Table
	myWin.headerItem.Disabled = !haveView
	myWin.mainMenu.Refresh()
}

// notifyKindChanged is called by a view whenever it switches HDU; the menus
// only follow the view the user is looking at.
func notifyKindChanged(v *View) {
	if v == myWin.currentView {
		refreshMenuState()
	}
}

func handleTabSelected(item *container.TabItem) {
	myWin.currentView = myWin.views[item]
	refreshMenuState()
}

func handleTabClosed(item *container.TabItem) {
	delete(myWin.views, item)
	if len(myWin.tabs.Items) == 0 {
		myWin.currentView = nil
		refreshMenuState()
	}
}

func keyTyped(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeyO:
		showOpenDialog()
	case fyne.KeyEqual:
		zoomIn()
	case fyne.KeyMinus:
		zoomOut()
	case fyne.Key0:
		zoomReset()
	case fyne.KeyComma:
		rotateAnticlockwise()
	case fyne.KeyPeriod:
		rotateClockwise()
	}
}

func showHeader() {
	v := myWin.currentView
	if v == nil {
		return
	}
	u := v.currentUnit()
	if u == nil {
		return
	}
	headerWin := myWin.App.NewWindow("FITS header: " + u.Name)
	headerWin.Resize(fyne.Size{Height: 600, Width: 700})
	scrollableText := container.NewVScroll(widget.NewRichTextWithText(strings.Join(u.HeaderLines, "\n")))
	headerWin.SetContent(scrollableText)
	headerWin.Show()
	headerWin.CenterOnScreen()
}

func showHelp() {
	helpWin := myWin.App.NewWindow("Help")
	helpWin.Resize(fyne.Size{Height: 450, Width: 700})
	scrollableText := container.NewVScroll(widget.NewRichTextWithText(helpText))
	helpWin.SetContent(scrollableText)
	helpWin.Show()
	helpWin.CenterOnScreen()
}

type forcedVariant struct {
	fyne.Theme

	variant fyne.ThemeVariant
}

func (f *forcedVariant) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return f.Theme.Color(name, f.variant)
}
