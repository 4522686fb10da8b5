//go:build js && wasm

// Command navwasm shows and hides a page's table of contents with touch
// gestures. Build with GOOS=js GOARCH=wasm and load it next to a page that
// has a #content element, a .toc panel and an optional .menu button.
//
// Swiping right on the content or clicking the menu shows the panel.
// Swiping left, tapping outside the panel or moving the mouse out of it
// hides it. The page styles react to the "navbar" class
// on the content element and the "hidden" class on the menu.
package main

import (
	"os"
	"syscall/js"

	"github.com/dshills/touchgesture/internal/gesture"
	"github.com/dshills/touchgesture/internal/logging"
	"github.com/dshills/touchgesture/internal/nav"
	"github.com/dshills/touchgesture/internal/platform/dom"
)

func main() {
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: os.Stderr, Prefix: "navwasm"})

	doc := dom.NewDocument()
	content, err := doc.Resolve("content")
	if err != nil {
		logger.Error("%v", err)
		return
	}

	page := js.Global().Get("document")
	toc := page.Call("querySelector", ".toc")
	menu := page.Call("querySelector", ".menu")
	if toc.IsNull() {
		if !menu.IsNull() {
			menu.Get("classList").Call("add", "hidden")
		}
		logger.Info("no table of contents, gestures disabled")
		return
	}

	n := nav.New(
		nav.WithLogger(logger),
		nav.WithInside(func(target any) bool {
			v, ok := target.(js.Value)
			return ok && toc.Call("contains", v).Bool()
		}),
		nav.WithOnChange(func(shown bool) {
			content.(*dom.Element).Value().Get("classList").Call("toggle", "navbar", shown)
			if !menu.IsNull() {
				menu.Get("classList").Call("toggle", "hidden", shown)
			}
		}),
	)

	reg := gesture.NewRegistry(gesture.WithLogger(logger))
	if err := n.Bind(reg, content); err != nil {
		logger.Error("binding gestures: %v", err)
		return
	}

	// Pointer fallbacks: the menu button opens the panel and leaving the
	// panel with the mouse closes it.
	if !menu.IsNull() {
		menu.Call("addEventListener", "click", js.FuncOf(func(js.Value, []js.Value) any {
			n.Show(nil)
			return nil
		}))
	}
	toc.Call("addEventListener", "mouseleave", js.FuncOf(func(js.Value, []js.Value) any {
		n.Hide(nil)
		return nil
	}))

	select {}
}
