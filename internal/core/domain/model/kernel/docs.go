// Package kernel holds the value objects shared by every aggregate of the ordering
// domain:
//   - UUID: entity identifiers
//   - Money: non-negative decimal currency amounts
//   - Address: order shipping destinations
//   - Role and Actor: who performs an operation
//
// Values are immutable and must be built through their constructors; zero values fail
// Validate.
package kernel
