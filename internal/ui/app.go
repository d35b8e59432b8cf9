// Package ui is the desktop host of the annotation engine.
package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"InkOverlay/internal/applog"
	"InkOverlay/internal/engine"
	"InkOverlay/internal/export"
	"InkOverlay/internal/state"
)

// Dispatch runs f on the UI goroutine and waits for it. Remote commands go
// through here so the engine is only ever touched from one goroutine.
func Dispatch(f func()) {
	fyne.DoAndWait(f)
}

// Options configures the presenter window.
type Options struct {
	Engine    *engine.Engine
	ShareLink string
	// OnChange runs on the UI goroutine after the tool state or history
	// changed.
	OnChange func()
}

// Window is the assembled presenter window.
type Window struct {
	fyne.Window
	Overlay *Overlay
	Toolbar *Toolbar
}

// NewWindow lays out the board, overlay and toolbar in a new window of a.
func NewWindow(a fyne.App, opts Options) *Window {
	w := a.NewWindow("InkOverlay")
	w.Resize(fyne.NewSize(1024, 768))

	board := NewBoard(fyne.NewSize(1600, 4000), 50)
	o := NewOverlay(opts.Engine, board)
	tb := NewToolbar(o)
	if opts.OnChange != nil {
		o.Observe(opts.OnChange)
	}
	tb.OnExport = func() { showExport(w, o) }
	if opts.ShareLink != "" {
		tb.SetStatus("Remote: " + opts.ShareLink)
	}

	w.SetContent(container.NewBorder(tb.Object(), nil, nil, nil, o))
	bindShortcuts(w, o, tb)
	return &Window{Window: w, Overlay: o, Toolbar: tb}
}

// RunApp opens the presenter window and blocks until it is closed.
func RunApp(opts Options) {
	a := app.NewWithID("io.inkoverlay.presenter")
	w := NewWindow(a, opts)

	// Losing focus ends the stroke in progress.
	a.Lifecycle().SetOnExitedForeground(func() {
		w.Overlay.handle(engine.Sample{Kind: engine.Blur})
	})
	w.ShowAndRun()
}

func bindShortcuts(w fyne.Window, o *Overlay, tb *Toolbar) {
	undo := func(s fyne.Shortcut) {
		if cs, ok := s.(*desktop.CustomShortcut); ok {
			o.engine.HandleKey(string(cs.KeyName), modifiers(cs.Modifier))
		}
	}
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl}, undo)
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierSuper}, undo)

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape:
			o.engine.SetDrawingMode(false)
		case fyne.KeyD:
			o.engine.ToggleDrawingMode()
		case fyne.KeyE:
			tb.setTool(state.ToolEraser)
		case fyne.KeyM:
			tb.setTool(state.ToolMarker)
		}
	})
}

func modifiers(m fyne.KeyModifier) engine.Modifier {
	var mods engine.Modifier
	if m&fyne.KeyModifierShift != 0 {
		mods |= engine.ModShift
	}
	if m&fyne.KeyModifierControl != 0 {
		mods |= engine.ModControl
	}
	if m&fyne.KeyModifierAlt != 0 {
		mods |= engine.ModAlt
	}
	if m&fyne.KeyModifierSuper != 0 {
		mods |= engine.ModSuper
	}
	return mods
}

func showExport(w fyne.Window, o *Overlay) {
	paths := o.engine.History().Paths()
	if len(paths) == 0 {
		dialog.ShowInformation("Export", "Nothing to export yet.", w)
		return
	}
	save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if uc == nil {
			return
		}
		defer uc.Close()

		if err := export.Encode(uc, uc.URI().Extension(), paths); err != nil {
			applog.For("ui").Error("export failed", "uri", uc.URI().String(), "err", err)
			dialog.ShowError(fmt.Errorf("export: %w", err), w)
			return
		}
		dialog.ShowCustom("Export", "OK", widget.NewLabel("Saved "+uc.URI().Name()), w)
	}, w)
	save.SetFileName("annotations.pdf")
	save.Show()
}
