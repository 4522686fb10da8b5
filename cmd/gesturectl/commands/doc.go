// Package commands implements the gesturectl command line.
//
//	gesturectl check profile.toml...     validate profiles
//	gesturectl check --schema            print the profile JSON schema
//	gesturectl replay trace.json         feed a recorded trace through a profile
//	gesturectl demo [--record out.json]  drag with the mouse to make gestures
//	gesturectl watch profile.toml        revalidate a profile on every save
//
// replay and demo use the built-in navigation profile unless --config is
// given. Lua scripts passed with --script run after the profile.
package commands
