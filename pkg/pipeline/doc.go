// Package pipeline provides the event-driven, non-blocking byte-pipeline
// runtime shared by every protocol handler in this module: a Channel
// abstraction carrying an ordered handler chain, write-once Promises, and
// buffered writes.
//
// The teacher this module grew out of drives NFS connections with one
// blocking goroutine per socket. This package keeps that shape — one
// goroutine owns a channel for its lifetime — but turns it into a
// cooperative event loop: a single task queue per Channel serializes every
// handler callback, so handler code never needs its own locking, and a
// Promise's completion can safely hop back onto the owning channel's queue
// from any goroutine (a timer, another channel, an asynchronous
// filesystem).
package pipeline
