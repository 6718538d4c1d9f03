// Package stage defines the contract between the workflow sequencer and the
// handlers that perform each pipeline step.
package stage

import "context"

// Handler performs one pipeline step against the filesystem.
type Handler interface {
	Execute(context.Context) error
	HealthCheck(context.Context) Health
}

// Func adapts plain functions to Handler. A nil Check reports healthy.
type Func struct {
	Name  string
	Run   func(context.Context) error
	Check func(context.Context) Health
}

// Execute runs the wrapped function.
func (f Func) Execute(ctx context.Context) error {
	if f.Run == nil {
		return nil
	}
	return f.Run(ctx)
}

// HealthCheck runs the wrapped check.
func (f Func) HealthCheck(ctx context.Context) Health {
	if f.Check == nil {
		return Healthy(f.Name)
	}
	return f.Check(ctx)
}
