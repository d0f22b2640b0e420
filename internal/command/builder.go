package command

import (
	"context"
	"time"
)

// Builder provides a fluent interface for assembling a Spec.
type Builder struct {
	ctx  context.Context
	spec Spec
}

// NewCommand creates a new Builder for the given command.
func NewCommand(name string, args ...string) *Builder {
	return &Builder{
		ctx:  context.Background(),
		spec: Spec{Name: name, Args: args},
	}
}

// WithArgs appends arguments.
func (cb *Builder) WithArgs(args ...string) *Builder {
	cb.spec.Args = append(cb.spec.Args, args...)
	return cb
}

// WithArgIf appends arg only when cond is true.
func (cb *Builder) WithArgIf(cond bool, arg string) *Builder {
	if cond {
		cb.spec.Args = append(cb.spec.Args, arg)
	}
	return cb
}

// WithInput sets the stdin payload for the command.
func (cb *Builder) WithInput(input string) *Builder {
	cb.spec.Input = &input
	return cb
}

// WithDir sets the working directory. An empty dir keeps the caller's.
func (cb *Builder) WithDir(dir string) *Builder {
	cb.spec.Dir = dir
	return cb
}

// WithTimeout sets the timeout for the command execution.
func (cb *Builder) WithTimeout(timeout time.Duration) *Builder {
	cb.spec.Timeout = timeout
	return cb
}

// WithContext sets the context for the command execution.
func (cb *Builder) WithContext(ctx context.Context) *Builder {
	cb.ctx = ctx
	return cb
}

// Spec returns a copy of the assembled Spec.
func (cb *Builder) Spec() Spec {
	spec := cb.spec
	spec.Args = append([]string(nil), cb.spec.Args...)
	return spec
}

// Run executes the assembled command.
func (cb *Builder) Run() (Result, error) {
	return Run(cb.ctx, cb.Spec())
}

// Argv returns the full argument vector, program name first.
func (cb *Builder) Argv() []string {
	return append([]string{cb.spec.Name}, cb.spec.Args...)
}
