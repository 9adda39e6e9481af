// Package mocks provides hand-written test doubles for the store and
// oracle interfaces consumed by the matching services. Each mock exposes
// optional Fn fields for custom behavior, default response values, and
// call tracking for verification.
package mocks
