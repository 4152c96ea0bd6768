// Package dispatch models execution contexts: where a continuation resumes
// after a suspension.
//
// A continuation captured while a given [Dispatcher] was active must resume
// on that same dispatcher if the resuming notification arrives somewhere
// else; otherwise it runs inline. [Resume] is that rule, made explicit.
// The active dispatcher travels with the computation on its
// [context.Context] via [With] and [From]; there is no global registry.
package dispatch

import "context"

// A Dispatcher is an execution context: somewhere a function can be
// scheduled to run.
type Dispatcher interface {
	Post(f func())
}

// Resume runs f on the dispatcher that was captured at the suspension
// point. When no dispatcher was captured, or the dispatcher active at
// delivery is the captured one, f runs inline; otherwise f is posted to
// the captured dispatcher.
func Resume(captured, active Dispatcher, f func()) {
	if captured == nil || captured == active {
		f()
		return
	}
	captured.Post(f)
}

type dispatcherKey struct{}

// With returns a context that records d as the active execution context.
func With(ctx context.Context, d Dispatcher) context.Context {
	return context.WithValue(ctx, dispatcherKey{}, d)
}

// From reports the execution context recorded in ctx, or nil if none is.
func From(ctx context.Context) Dispatcher {
	d, _ := ctx.Value(dispatcherKey{}).(Dispatcher)
	return d
}
