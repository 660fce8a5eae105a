// Package loader registers optional HTTP features and mounts the enabled ones.
//
// A feature reports its own name and whether its configuration allows it to run:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager.LoadAll mounts enabled features in registration order and stops at the first
// Load error. Disabled features are logged and skipped, so `serve` still starts when,
// for example, no comparison target is configured yet.
package loader
