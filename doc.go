// Package trackcore implements the tracker core of an online multi-object
// video tracking pipeline: per-target motion estimation, a gated
// multi-feature cost model, global per-frame assignment, and track
// lifecycle management (birth, confirmation, coasting, termination).
//
// Frame acquisition, stabilization, detection, and sinks live outside this
// package; Tracker.Step is the single entry point the surrounding pipeline
// drives once per frame, in strict monotonic timestamp order.
package trackcore
