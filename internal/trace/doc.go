// Package trace provides a tracing subsystem for the rill toolchain.
//
// Tracing tracks batch loading, reporting and rendering to help diagnose
// performance issues and hangs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	rill diag --trace=- --trace-level=phase out/batches
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer for crash dumps
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: Only crash dumps
//   - LevelPhase: Run and stage boundaries
//   - LevelDetail: Batch-level events
//   - LevelDebug: Everything including conflict records
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeRun: Top-level CLI operations
//   - ScopeStage: Pipeline stages (load, report, render)
//   - ScopeBatch: Per-batch processing
//   - ScopeRecord: Conflict record level (future)
//
// # Context Propagation
//
// Tracers are propagated through the pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeStage, "report", parentID)
//	defer span.End("")
package trace
