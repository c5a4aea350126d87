// Package domain defines the core business entities for HopeQure.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A tagged text unit indexed for retrieval
//   - Patient, Doctor, Session, RiskLog: Clinical records
//   - Event, Envelope, Subscriber: Webhook notification types
//   - Answer: The typed outcome of a retrieval-augmented query
//
// It also holds the webhook signature scheme (canonical JSON plus
// HMAC-SHA256), which is a pure function over domain types.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
