// Package dom adapts browser elements to touch surfaces when the program
// is compiled to WebAssembly (GOOS=js GOARCH=wasm).
//
// Each Attach installs one DOM event listener with js.FuncOf; its detach
// function removes the listener and releases the callback. Start and move
// events carry the event's touches list, end events carry changedTouches,
// and positions are client coordinates in CSS pixels.
package dom
