// Package modelsync keeps an editor buffer's language attribute, the
// typed language service's view of that buffer, and the external
// workspace record in agreement.
//
// # Architecture
//
// The package is organized around the Engine, which owns the process-wide
// slots (the registered sync callback and the workspace accessor) and the
// scheduling/logging dependencies. Operations are stateless beyond those
// slots:
//
//   - Apply: reassign a buffer's language and drive the service to agree,
//     with one bounded retry.
//   - SyncWithWorkspace: reconcile the buffer with the workspace's active
//     record, falling back to pure classification when no record exists.
//   - ForceRevalidate: force the service to re-analyze a buffer after a
//     language change.
//   - DeepRepair: a fixed ladder of remedies for the symptomatic
//     cross-language diagnostic, executed rung by rung until it clears.
//   - RecoverWorker: the setup-time ladder for a service whose worker
//     handle cannot be obtained at all.
//
// # Failure Semantics
//
// No operation panics or returns an error to its caller. Failures degrade
// to "leave current state, log a warning": a disposed buffer aborts
// silently, an unavailable worker downgrades to a boolean failure, a
// reassignment that does not take effect is retried once and then
// accepted. Residual diagnostics stay visible in the editor; there is no
// fatal path.
//
// # Concurrency
//
// Scheduled continuations run on timer goroutines and re-check buffer
// liveness before acting; that re-check is the sole defense against
// acting on a torn-down buffer. Concurrent operations on the same buffer
// are not serialized: last write wins on the language attribute, and the
// repair ladders tolerate interleaving.
package modelsync
