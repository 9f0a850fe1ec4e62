// Package domain contains the core rules of sumline: which inputs are
// accepted, how an accepted input is transformed, and how the digest of a
// transformed string is computed.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (sockets, consoles, logging) and
// contains only pure functions.
//
// # Rules
//
//   - [Validate]: 1 to [MaxInputLen] ASCII decimal digits
//   - [Transform]: digits sorted descending, even digits replaced by [Marker]
//   - [Digest]: sum of the decimal digit values in a string
//
// # Design Principles
//
// Everything here is:
//   - Deterministic and free of side effects
//   - Safe for concurrent use without locking
//   - Testable without mocks or external systems
package domain
