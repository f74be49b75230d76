// Package order implements the Order aggregate of the franchise supply service.
//
// The package includes:
//   - Order: lines, money totals, loyalty discount and the lifecycle state machine
//   - Item: an immutable order line priced from the catalogue
//   - Status: the eight lifecycle states and the (from, to, role) transition table
//   - StatusChange: audit rows produced by every transition
//
// Key business rules:
//   - total = Σ line totals + effective delivery fee − loyalty discount
//   - only admins and owners confirm orders and set the delivery fee
//   - only the system actor marks an order paid, after signature verification
//   - cancellation after confirmation needs an explicit administrative override
package order
