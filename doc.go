// Package mdx provides a memory-safe interface to a market-data runtime:
// sessions, services, requests, subscriptions, and the dynamically-typed
// element trees its messages carry.
//
// The package wraps the low-level handle functions in mdx/native. Values
// returned here own or borrow their native handles with Go lifetimes;
// callers never see a raw handle and never manage a refcount by hand.
// Fallible operations return errors rather than status codes, and the data
// accessors are generic over the scalar types an element can hold.
//
// Struct-directed decoding of element trees lives in mdx/decode.
package mdx
