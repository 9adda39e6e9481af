// Package events defines the event types and handler interfaces that
// decouple the API surface from background task creation. The learn
// endpoint emits a TaskRequestEvent without knowing which handler turns
// it into a queued task, which keeps the api and task packages free of
// direct dependencies on each other.
//
// The primary components are:
// - TaskRequestEvent: a request to create a background task
// - EventHandler: components that can process events
// - EventEmitter: components that can publish events
package events
