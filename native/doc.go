// Package native models the C ABI of the closed-source market-data runtime:
// opaque handle types, out-parameter functions, and integer status codes
// where 0 means success. The public mdx package wraps these handles in
// ownership-aware types and never exposes them to callers.
//
// The package is backed by an in-process emulated runtime. The emulation
// implements the same handle lifetimes, reference-count discipline, queue
// semantics and dispatch ordering the real runtime documents, which is what
// lets the binding layer and its tests run without the vendor library. A
// build linking the vendor library replaces the function bodies, not the
// surface.
//
// Functions in this package are not safe for concurrent use on the same
// handle unless the handle is one of the reference-counted kinds (Event,
// Message, Identity).
package native
