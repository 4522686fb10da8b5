// Package script lets Lua page scripts register gestures.
//
// A Host runs scripts in a sandboxed gopher-lua state that exposes a single
// module, gesture:
//
//	gesture.swipe(surface, direction, fn [, opts]) -> ok, err
//	gesture.tap(surface, fn [, opts])              -> ok, err
//	gesture.unswipe(surface, direction [, fingers]) -> ok
//	gesture.untap(surface [, fingers])              -> ok
//
// Surfaces are referred to by name and resolved by the host. opts may set
// duration (milliseconds), threshold, restraint and fingers.
//
// Callbacks receive a table
//
//	{kind, fingers, dist_x, dist_y, duration, surface, target}
//
// and may return false to let the gesture fall through to the next binding
// on the surface:
//
//	gesture.tap("content", function(g)
//	  if not nav_visible then return false end
//	  hide_nav()
//	end)
//
// Only the base, table, string and math libraries are available; print
// writes to the host logger.
package script
