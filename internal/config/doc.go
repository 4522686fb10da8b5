// Package config loads gesture profiles.
//
// A profile names the gestures an application listens for and the action
// each one triggers. Profiles are TOML or YAML files, chosen by extension:
//
//	log_level = "info"
//
//	[swipe]
//	threshold = 120
//
//	[[bindings]]
//	surface = "content"
//	gesture = "swipe-right"
//	action  = "nav.show"
//
//	[[bindings]]
//	surface = "content"
//	gesture = "tap"
//	fingers = 2
//	action  = "zoom.reset"
//
// Every profile is validated against an embedded JSON schema before it is
// decoded. [Profile.Apply] registers the bindings on a gesture registry, and
// [Watch] reloads a profile whenever its file changes.
//
// Durations are given in milliseconds. Omitted constraints fall back to the
// profile's [swipe] and [tap] sections, then to the built-in defaults.
package config
