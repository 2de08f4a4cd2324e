// Package loader registers the HTTP features of the consolidator.
//
// Every feature (consolidate, sync, merge, clean, history) implements Feature:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The serve command registers all of them on a Manager and calls LoadAll, which
// mounts the routes of enabled features and logs the ones that are switched off
// in configuration. Registering the same name twice panics.
package loader
