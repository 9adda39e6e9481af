// Package store defines the persistence interfaces consumed by the match
// engine, along with the sentinel errors their implementations return.
// The engine depends only on these narrow contracts; concrete
// implementations live under internal/platform.
package store
