// Package stream applies per-channel bandstop filtering to multi-stream,
// multi-channel sample blocks.
//
// A Stream descriptor names a group of channels that share a sample rate.
// The Engine keeps one Bank per stream, with one notch filter per channel;
// Reconcile rebuilds all banks from a descriptor list, while
// ProposeCutoffChange retunes a single stream's band edges in place with the
// validate-or-revert behavior expected by a parameter UI.
//
// ProcessBlock is lock-free and allocation-free so it can run on a real-time
// acquisition thread while control operations happen elsewhere.
package stream
