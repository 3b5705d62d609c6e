// Package pprof provides optional runtime profiling for the clj command.
//
// This package integrates [github.com/pkg/profile] to provide runtime
// profiling capabilities with conditional compilation support. Profiling
// is optional and must be enabled at build time using the "pprof" build
// tag. When built with profiling disabled (default), all operations are
// no-ops with zero runtime overhead.
//
// Supported modes when built with the pprof tag: block, cpu, clock,
// goroutine, mem, allocs, heap, mutex, thread, trace. Use [Modes] to
// retrieve the list programmatically.
//
//	p := pprof.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	ctrl := p.Start()
//	defer ctrl.Stop()
package pprof

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
