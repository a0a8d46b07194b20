// Package stage names the batch jobs of the pipeline and resolves them by name.
package stage

import (
	"context"
	"fmt"
	"sort"
)

// Stage is one independently runnable batch job.
type Stage interface {
	Name() string
	Run(ctx context.Context) error
}

// Func adapts a function to Stage.
type Func struct {
	name string
	run  func(ctx context.Context) error
}

// NewFunc builds a named stage around run.
func NewFunc(name string, run func(ctx context.Context) error) Func {
	return Func{name: name, run: run}
}

// Name identifies the stage.
func (f Func) Name() string { return f.name }

// Run executes the stage.
func (f Func) Run(ctx context.Context) error { return f.run(ctx) }

// Registry keeps a mapping from stage names to their implementations.
type Registry struct {
	stages map[string]Stage
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{stages: map[string]Stage{}}
}

// Register adds or replaces a stage implementation.
func (r *Registry) Register(s Stage) {
	if r.stages == nil {
		r.stages = map[string]Stage{}
	}
	r.stages[s.Name()] = s
}

// Resolve returns a stage by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Stage, error) {
	if s, ok := r.stages[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("stage %s is not registered", name)
}

// Names lists registered stages alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.stages))
	for n := range r.stages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
