// Package core provides the runtime core tier of the object-composition engine.
// Options for configuring Recipe instances.
package core

// WithName sets a human-readable recipe name used in errors, logs and graphs.
func WithName(name string) Option {
	return func(r *Recipe) {
		r.name = name
	}
}

// WithInitRunner configures the Recipe with a custom InitRunner.
// Derived recipes inherit the runner unless they set their own.
func WithInitRunner(runner InitRunner) Option {
	return func(r *Recipe) {
		if runner != nil {
			r.runner = runner
		}
	}
}
