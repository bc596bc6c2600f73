// Package editor abstracts the hosting code-editor component.
//
// The synchronization engine treats the editor as a black box: buffers are
// opaque handles whose lifetime the host owns, the typed language service
// and its worker are external processes of unknown reliability, and
// diagnostic markers are a shared bulletin board written by several owners.
// This package captures that surface as interfaces and supplies an
// in-memory implementation used by the CLI and by tests.
//
// # Architecture
//
//   - Buffer: one open text model. The host may dispose it at any moment;
//     callers re-check liveness with IsLive before every mutation that
//     follows an asynchronous boundary.
//   - Host: the editor component itself. Creates buffers, routes the
//     active-buffer pointer, stores markers per (buffer, owner), and holds
//     the completion/hover provider registries.
//   - LanguageService: the typed-language service defaults. Compiler and
//     diagnostics options, the eager-sync flag, ambient declaration
//     sources, and asynchronous access to the backing Worker.
//   - Worker: the language service's background analyzer. Obtaining it can
//     fail outright, which is what the recovery ladder exists for.
//
// # Thread Safety
//
// The in-memory implementations are safe for concurrent use. Interface
// implementations provided by other hosts must be as well: scheduled
// continuations in the engine run on timer goroutines.
package editor
