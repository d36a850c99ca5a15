package services

import "context"

// Checker is an external dependency whose availability gates readiness
type Checker interface {
	// Type returns the dependency type name ("postgres", "redis")
	Type() string

	// HealthCheck checks if the dependency is reachable
	HealthCheck(ctx context.Context) error
}

// CheckFunc adapts a function to the Checker interface
type CheckFunc struct {
	Kind  string
	Check func(ctx context.Context) error
}

// Type returns the dependency type
func (f CheckFunc) Type() string { return f.Kind }

// HealthCheck runs the wrapped function
func (f CheckFunc) HealthCheck(ctx context.Context) error { return f.Check(ctx) }
